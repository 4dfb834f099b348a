package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store kinds
const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
)

// Config holds all configuration for the portal
type Config struct {
	AppMode  string
	Port     string
	Upstream UpstreamConfig
	Session  SessionConfig
	Cookie   CookieConfig
	Database DatabaseConfig
}

// UpstreamConfig holds AgriLoan API client configuration
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds portal session configuration
type SessionConfig struct {
	Secret      string
	TTL         time.Duration
	Store       string
	JanitorSpec string
}

// CookieConfig holds session cookie configuration
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite string
	Domain   string
}

// DatabaseConfig holds session store database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Upstream: loadUpstreamConfig(),
		Session:  loadSessionConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Database: loadDatabaseConfig(appMode),
	}

	if config.Session.Store != StoreMemory && config.Session.Store != StoreMySQL {
		return nil, fmt.Errorf("invalid SESSION_STORE: '%s' (must be 'memory' or 'mysql')", config.Session.Store)
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadUpstreamConfig loads the AgriLoan API client config
func loadUpstreamConfig() UpstreamConfig {
	timeoutSecs, _ := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "15"))
	if timeoutSecs <= 0 {
		timeoutSecs = 15
	}

	return UpstreamConfig{
		BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "https://agri-loan-api.onrender.com"), "/"),
		Timeout: time.Duration(timeoutSecs) * time.Second,
	}
}

// loadSessionConfig loads session config based on mode
func loadSessionConfig(mode string) SessionConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	ttlHours, _ := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "12"))
	if ttlHours <= 0 {
		ttlHours = 12
	}

	return SessionConfig{
		Secret:      getEnv(prefix+"SESSION_SECRET", "default_session_secret"),
		TTL:         time.Duration(ttlHours) * time.Hour,
		Store:       getEnv("SESSION_STORE", StoreMemory),
		JanitorSpec: getEnv("SESSION_JANITOR_SPEC", "@every 15m"),
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Name:     getEnv("COOKIE_NAME", "portal_session"),
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadDatabaseConfig loads session store database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "agriloan_portal"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origin
		return "https://portal.agriloan.mw"
	}
	return origins
}
