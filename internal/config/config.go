package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds application configuration
type Config struct {
	Addr           string
	DBConn         string
	JWTSecret      string
	AllowedOrigins []string
	LogLevel       string
	PublicBaseURL  string
	DigestSchedule string

	// SMTP settings are optional; email notifications are disabled
	// when SMTPHost is empty.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:8000"),
		DigestSchedule: getEnv("DIGEST_SCHEDULE", "0 8 * * *"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   os.Getenv("SMTP_USERNAME"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		SenderEmail:    os.Getenv("SENDER_EMAIL"),
	}

	var err error
	if cfg.Addr, err = requireEnv("ADDR"); err != nil {
		return nil, err
	}
	if cfg.DBConn, err = requireEnv("DB_CONN"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	origins, err := requireEnv("ALLOWED_ORIGINS")
	if err != nil {
		return nil, err
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("ALLOWED_ORIGINS must list at least one origin")
	}

	return cfg, nil
}

// SMTPEnabled reports whether enough SMTP settings are present to send mail.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}
