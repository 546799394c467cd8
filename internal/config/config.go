package config

import (
	"os"
	"strings"
)

type Config struct {
	Env      string // dev|prod
	HTTPAddr string

	DBDriver string
	DBDSN    string

	JWTSecret string

	// Base directory for uploaded question images.
	MediaDir string

	// Emails that become admins on registration. Everyone else is a student.
	AdminEmails []string

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		Env:         envOr("ENV", "dev"),
		HTTPAddr:    envOr("HTTP_ADDR", ":8080"),
		DBDriver:    envOr("DB_DRIVER", "sqlite"),
		DBDSN:       envOr("DB_DSN", ""),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		MediaDir:    envOr("MEDIA_DIR", "./media"),
		AdminEmails: lowerAll(csvOr("ADMIN_EMAILS", "")),
		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

// IsAdminEmail reports whether an email is on the admin whitelist.
func (c Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
