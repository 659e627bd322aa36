package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Email    EmailConfig
	Enquiry  EnquiryConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name    string
	Version string
	Debug   bool
	Port    string
	Host    string
}

// DatabaseConfig holds MongoDB configuration
type DatabaseConfig struct {
	URI  string
	Name string
}

// AuthConfig holds admin authentication configuration
type AuthConfig struct {
	SecretKey          string
	TokenExpiryMinutes int
	AdminEmail         string
	AdminPasswordHash  string // bcrypt hash
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// EmailConfig holds email service configuration
type EmailConfig struct {
	Enabled     bool
	SMTPHost    string
	SMTPPort    int
	Username    string
	Password    string
	FromEmail   string
	FromName    string
	AdminEmail  string // operator mailbox for enquiry notifications
	SendTimeout time.Duration
}

// EnquiryConfig holds enquiry listing limits
type EnquiryConfig struct {
	ListLimit int // default and maximum page size for enquiry listings
}

var globalConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "Meditech API"),
			Version: getEnv("APP_VERSION", "1.0.0"),
			Debug:   getEnvAsBool("DEBUG", false),
			Port:    getEnv("PORT", "8000"),
			Host:    getEnv("HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Name: getEnv("MONGO_DB", "meditech"),
		},
		Auth: AuthConfig{
			SecretKey:          getEnv("SECRET_KEY", "your-secret-key-change-in-production"),
			TokenExpiryMinutes: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60),
			AdminEmail:         getEnv("ADMIN_EMAIL", ""),
			AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
			AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:         86400,
		},
		Email: EmailConfig{
			Enabled:     getEnvAsBool("EMAIL_ENABLED", false),
			SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:    getEnvAsInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			FromEmail:   getEnv("EMAIL_FROM", "noreply@meditech.local"),
			FromName:    getEnv("EMAIL_FROM_NAME", "Meditech"),
			AdminEmail:  getEnv("EMAIL_ADMIN", ""),
			SendTimeout: time.Duration(getEnvAsInt("EMAIL_SEND_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Enquiry: EnquiryConfig{
			ListLimit: getEnvAsInt("ENQUIRY_LIST_LIMIT", 200),
		},
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	globalConfig = config
	return config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if cfg.Database.URI == "" {
		return fmt.Errorf("MONGO_URI must be set")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("MONGO_DB must be set")
	}
	if cfg.Auth.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY must be set")
	}
	if cfg.Auth.TokenExpiryMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be greater than 0")
	}
	if cfg.Email.Enabled && cfg.Email.AdminEmail == "" {
		return fmt.Errorf("EMAIL_ADMIN must be set when EMAIL_ENABLED is true")
	}
	if cfg.Enquiry.ListLimit <= 0 {
		return fmt.Errorf("ENQUIRY_LIST_LIMIT must be greater than 0")
	}
	return nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		// Load default config if not loaded
		config, _ := Load()
		return config
	}
	return globalConfig
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
