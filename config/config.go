package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port   string
	AppEnv string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DBLogLevel  string

	JWTSecret     string
	AdminAuthorID string

	CloudinaryURL string
	UploadFolder  string

	CorsAllowedOrigins []string
	TrustedProxies     []string
	AdminUIDir         string

	TracesExporter string
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		AppEnv:             getEnv("APP_ENV", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", ""),
		DBName:             getEnv("DB_NAME", ""),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		DBLogLevel:         getEnv("DB_LOG_LEVEL", "warn"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AdminAuthorID:      getEnv("ADMIN_AUTHOR_ID", ""),
		CloudinaryURL:      getEnv("CLOUDINARY_URL", ""),
		UploadFolder:       getEnv("UPLOAD_FOLDER", "services"),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),
		TrustedProxies:     splitCSV(getEnv("TRUSTED_PROXIES", "")),
		AdminUIDir:         getEnv("ADMIN_UI_DIR", ""),
		TracesExporter:     getEnv("OTEL_TRACES_EXPORTER", "none"),
	}
}

// Validate reports every missing setting the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.DatabaseURL == "" && c.DBName == "" {
		errs = append(errs, errors.New("DATABASE_URL or DB_NAME is required"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultVal string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultVal
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
