package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Rehab-Center/Admin-Service/internal/configuration"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registrar mounts a group of endpoints under /api.
type Registrar interface {
	Register(api *gin.RouterGroup)
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	CheckConnection(ctx context.Context) error
}

type Deps struct {
	// Auth guards everything under /api except health.
	Auth        gin.HandlerFunc
	Handlers    []Registrar
	Checks      map[string]HealthChecker
	Diagnostics *configuration.Diagnostics
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, PATCH, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	// Enable CORS for preflight requests
	r.Use(corsMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/health", healthCheck(deps.Checks))

	protected := api.Group("")
	if deps.Auth != nil {
		protected.Use(deps.Auth)
	}
	protected.GET("/diagnostics", diagnostics(deps.Diagnostics))
	for _, h := range deps.Handlers {
		h.Register(protected)
	}
}

func healthCheck(checks map[string]HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		results := gin.H{}
		for name, check := range checks {
			if err := check.CheckConnection(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{"status": overall, "checks": results})
	}
}

// diagnostics exposes the masked configuration while debug mode is on.
func diagnostics(diag *configuration.Diagnostics) gin.HandlerFunc {
	return func(c *gin.Context) {
		dump := diag.Dump()
		if dump == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Diagnostics disabled"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"config": dump, "keys": diag.Keys()})
	}
}
