package configuration

import (
	"log"
	"sort"
	"strings"
)

// Diagnostics carries the debug switch and a redacted view of the loaded
// configuration. It is built once in main and handed to whoever logs.
type Diagnostics struct {
	enabled bool
	env     map[string]string
}

// NewDiagnostics snapshots cfg. Secrets are masked.
func NewDiagnostics(cfg *Config) *Diagnostics {
	return &Diagnostics{
		enabled: cfg.Debug,
		env: map[string]string{
			"DB_HOST":          cfg.Database.Host,
			"DB_NAME":          cfg.Database.DBName,
			"DB_PASSWORD":      mask(cfg.Database.Password),
			"MINIO_ENDPOINT":   cfg.MinIO.Endpoint,
			"MINIO_BUCKET":     cfg.MinIO.BucketName,
			"MINIO_SECRET_KEY": mask(cfg.MinIO.SecretKey),
			"NATS_URL":         cfg.NATSURL,
			"KEYCLOAK_URL":     cfg.Auth.KeycloakURL,
			"OIDC_CLIENT_ID":   strings.Join(cfg.Auth.ClientIDs, ","),
			"CLAMAV_URL":       cfg.Scan.ClamAVURL,
			"DATA_API_URL":     cfg.DataAPI.URL,
			"DATA_API_TOKEN":   mask(cfg.DataAPI.Token),
			"OVERDUE_SCHEDULE": cfg.OverdueSchedule,
			"PRESIGN_TTL":      cfg.PresignTTL.String(),
			"SERVER_PORT":      cfg.Server.Port,
		},
	}
}

// Enabled reports whether debug output is on. A nil Diagnostics is off.
func (d *Diagnostics) Enabled() bool {
	return d != nil && d.enabled
}

// Debugf logs only when debugging is enabled.
func (d *Diagnostics) Debugf(format string, args ...any) {
	if !d.Enabled() {
		return
	}
	log.Printf("[DEBUG] "+format, args...)
}

// Dump returns the redacted settings, or nil when debugging is off.
func (d *Diagnostics) Dump() map[string]string {
	if !d.Enabled() {
		return nil
	}
	out := make(map[string]string, len(d.env))
	for k, v := range d.env {
		out[k] = v
	}
	return out
}

// Keys lists the dumped setting names in order.
func (d *Diagnostics) Keys() []string {
	keys := make([]string, 0, len(d.env))
	for k := range d.env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "****"
}
