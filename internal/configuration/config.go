package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Database DatabaseConfig
	MinIO    MinIOConfig
	Server   ServerConfig
	Auth     AuthConfig
	Scan     ScanConfig
	DataAPI  DataAPIConfig
	Tracing  TracingConfig
	NATSURL  string

	OverdueSchedule string
	PresignTTL      time.Duration
	Debug           bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
}

type ServerConfig struct {
	Port string
}

type AuthConfig struct {
	Disabled    bool
	KeycloakURL string
	ClientIDs   []string
}

type ScanConfig struct {
	Enabled   bool
	ClamAVURL string
}

// DataAPIConfig points at a remote record listing service. An empty URL
// means records are read from the local database.
type DataAPIConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
}

type TracingConfig struct {
	Enabled bool
	Service string
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "rehab"),
			Password: getEnv("DB_PASSWORD", "rehabpassword"),
			DBName:   getEnv("DB_NAME", "rehab_admin"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		MinIO: MinIOConfig{
			Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
			BucketName: getEnv("MINIO_BUCKET", "admin-files"),
			UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Auth: AuthConfig{
			Disabled:    getEnvBool("AUTH_DISABLED", false),
			KeycloakURL: getEnv("KEYCLOAK_URL", "http://localhost:8081/realms/rehab"),
			ClientIDs:   getEnvList("OIDC_CLIENT_ID", []string{"admin-dashboard"}),
		},
		Scan: ScanConfig{
			Enabled:   getEnvBool("SCAN_ENABLED", true),
			ClamAVURL: getEnv("CLAMAV_URL", "tcp://localhost:3310"),
		},
		DataAPI: DataAPIConfig{
			URL:     getEnv("DATA_API_URL", ""),
			Token:   getEnv("DATA_API_TOKEN", ""),
			Timeout: getEnvDuration("DATA_API_TIMEOUT", 10*time.Second),
		},
		Tracing: TracingConfig{
			Enabled: getEnvBool("DD_ENABLED", false),
			Service: getEnv("DD_SERVICE", "rehab-admin-service"),
		},
		NATSURL:         getEnv("NATS_URL", "nats://localhost:4222"),
		OverdueSchedule: getEnv("OVERDUE_SCHEDULE", "0 0 2 * * *"),
		PresignTTL:      getEnvDuration("PRESIGN_TTL", 15*time.Minute),
		Debug:           getEnvBool("DEBUG", false),
	}
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs := getEnvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
