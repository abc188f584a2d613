package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL connection settings for the export history.
// History is optional: an empty Host disables it.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// Enabled reports whether a database host was configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// AuthConfig holds the signing settings for issued access tokens.
type AuthConfig struct {
	Secret        string
	ExpirationSec int
	Issuer        string
	Subject       string
}

// Expiration returns the token lifetime as a duration.
func (c AuthConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationSec) * time.Second
}

// PDFConfig holds the tunables of the PDF renderer that are exposed via env.
type PDFConfig struct {
	// MaxRows caps rendered rows. Zero renders everything.
	MaxRows int
	// FontRegular and FontBold are TTF file paths. Empty keeps the embedded fonts.
	FontRegular string
	FontBold    string
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	Timezone    string
	BodyLimitMB int
	Swagger     bool
	Auth        AuthConfig
	PDF         PDFConfig
	Log         LogConfig
	Database    DatabaseConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 32),
		Swagger:     getEnvBool("SWAGGER_ENABLED", true),
		Auth: AuthConfig{
			// dev default only; set JWT_SECRET in any shared environment
			Secret:        getEnv("JWT_SECRET", "dev-secret-key"),
			ExpirationSec: getEnvInt("JWT_EXPIRATION_SEC", 3600),
			Issuer:        getEnv("JWT_ISSUER", "export-service"),
			Subject:       getEnv("JWT_SUBJECT", "web-client"),
		},
		PDF: PDFConfig{
			MaxRows:     getEnvInt("PDF_MAX_ROWS", 0),
			FontRegular: getEnv("PDF_FONT_REGULAR", ""),
			FontBold:    getEnv("PDF_FONT_BOLD", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
	}
}

// Location resolves Timezone, falling back to UTC for unknown names.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
