package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	S3         S3Config
	Store      StoreConfig
	Geocoding  GeocodingConfig
	Payment    PaymentConfig
	Messaging  MessagingConfig
	Catalog    CatalogConfig
	Media      MediaConfig
	DotEnvFile string
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration for admin routes.
type AuthConfig struct {
	APIKey string
}

// S3Config holds AWS S3 configuration for catalogue seed files and uploads.
type S3Config struct {
	Enabled     bool
	Bucket      string
	Region      string
	Prefix      string // Catalogue seed prefix within bucket (e.g., "catalog/")
	MediaPrefix string // Upload prefix within bucket (e.g., "uploads/")
}

// StoreConfig locates the shop that deliveries are priced from.
type StoreConfig struct {
	Lat float64
	Lng float64

	// CalculatorURL points at a remote quote endpoint. Empty prices locally.
	CalculatorURL string
}

// GeocodingConfig configures address lookups. OpenCage is tried first when
// a key is set, then Nominatim.
type GeocodingConfig struct {
	OpenCageKey  string
	OpenCageURL  string
	NominatimURL string
	UserAgent    string
	CountryCode  string
	Timeout      time.Duration
}

// PaymentConfig configures Paystack transaction verification.
type PaymentConfig struct {
	PaystackSecret string
	PaystackURL    string
	Timeout        time.Duration
}

// MessagingConfig configures the order events broker. An empty URL disables
// publishing.
type MessagingConfig struct {
	AMQPURL string
	Queue   string
}

// CatalogConfig lists product seed files loaded at startup.
type CatalogConfig struct {
	SeedFiles []string
}

// MediaConfig configures local image uploads.
type MediaConfig struct {
	UploadDir string
}

// Load loads configuration from environment variables. Values from a .env
// file in the working directory are used for variables not already set.
func Load() (*Config, error) {
	dotenv, err := loadDotEnv(getEnv("DOTENV_FILE", ".env"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ShutdownTimeout: getEnvAsSeconds("SERVER_SHUTDOWN_TIMEOUT", 30),
			AllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "crunchycruise"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		S3: S3Config{
			Enabled:     getEnvAsBool("S3_ENABLED", false),
			Bucket:      getEnv("S3_BUCKET", ""),
			Region:      getEnv("S3_REGION", "us-east-1"),
			Prefix:      getEnv("S3_PREFIX", "catalog/"),
			MediaPrefix: getEnv("S3_MEDIA_PREFIX", ""),
		},
		Store: StoreConfig{
			Lat:           getEnvAsFloat("STORE_LAT", 7.3775),
			Lng:           getEnvAsFloat("STORE_LNG", 3.9470),
			CalculatorURL: getEnv("DISTANCE_CALCULATOR_URL", ""),
		},
		Geocoding: GeocodingConfig{
			OpenCageKey:  getEnv("OPENCAGE_API_KEY", ""),
			OpenCageURL:  getEnv("OPENCAGE_URL", "https://api.opencagedata.com"),
			NominatimURL: getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
			UserAgent:    getEnv("GEOCODER_USER_AGENT", "crunchy-cruise/1.0"),
			CountryCode:  getEnv("GEOCODER_COUNTRY_CODE", "ng"),
			Timeout:      getEnvAsSeconds("GEOCODER_TIMEOUT", 10),
		},
		Payment: PaymentConfig{
			PaystackSecret: getEnv("PAYSTACK_SECRET_KEY", ""),
			PaystackURL:    getEnv("PAYSTACK_URL", "https://api.paystack.co"),
			Timeout:        getEnvAsSeconds("PAYSTACK_TIMEOUT", 15),
		},
		Messaging: MessagingConfig{
			AMQPURL: getEnv("AMQP_URL", ""),
			Queue:   getEnv("AMQP_QUEUE", "order_events"),
		},
		Catalog: CatalogConfig{
			SeedFiles: getEnvAsList("CATALOG_SEED_FILES", nil),
		},
		Media: MediaConfig{
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		},
		DotEnvFile: dotenv,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv applies path if it exists and returns the file used.
func loadDotEnv(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load %s: %w", path, err)
	}
	return path, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if math.IsNaN(c.Store.Lat) || c.Store.Lat < -90 || c.Store.Lat > 90 ||
		math.IsNaN(c.Store.Lng) || c.Store.Lng < -180 || c.Store.Lng > 180 {
		return fmt.Errorf("invalid store location: %v, %v", c.Store.Lat, c.Store.Lng)
	}

	if c.Geocoding.NominatimURL == "" && c.Geocoding.OpenCageKey == "" {
		return fmt.Errorf("a geocoding provider is required (set OPENCAGE_API_KEY or NOMINATIM_URL)")
	}

	if c.Geocoding.Timeout <= 0 {
		return fmt.Errorf("geocoder timeout must be positive")
	}

	if c.Payment.Timeout <= 0 {
		return fmt.Errorf("payment timeout must be positive")
	}

	if c.Messaging.AMQPURL != "" && c.Messaging.Queue == "" {
		return fmt.Errorf("AMQP queue is required when AMQP_URL is set")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsSeconds retrieves a whole number of seconds as a duration.
func getEnvAsSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}

// getEnvAsList splits a comma separated variable, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
