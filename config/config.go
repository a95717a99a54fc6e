package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds every environment-driven setting the server needs.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// AdminEmails are the bootstrap admin accounts: registering with one of
	// these emails (case-insensitive) assigns the admin role.
	AdminEmails map[string]bool
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		Port:                os.Getenv("PORT"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		AdminEmails:         parseAdminEmails(os.Getenv("ADMIN_EMAILS")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}

	return cfg, nil
}

// IsAdminEmail reports whether email belongs to the bootstrap admin set.
func (c *Config) IsAdminEmail(email string) bool {
	return c.AdminEmails[strings.ToLower(strings.TrimSpace(email))]
}

func parseAdminEmails(raw string) map[string]bool {
	emails := make(map[string]bool)
	for _, e := range strings.Split(raw, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			emails[e] = true
		}
	}
	return emails
}
