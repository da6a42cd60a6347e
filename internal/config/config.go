package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Redis    RedisConfig
	R2       R2Config
	Session  SessionConfig
	AI       AIConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	Env            string
	AllowedOrigins []string // CORS origins, "*" for any
}

type LogConfig struct {
	Level      string
	File       string // rotating log file, empty for stdout only
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type DatabaseConfig struct {
	Driver   string // postgres or sqlite3
	URL      string // Full database URL
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite file
}

// StorageConfig selects the key-value backend holding visitor carts and wishlists
type StorageConfig struct {
	Driver      string // memory, file, postgres, sqlite, redis, s3
	Dir         string // file backend directory, also the fallback for remote backends
	UseFallback bool

	// in-memory visitor cache in front of the backend
	CacheIdleTTL     time.Duration
	CacheMaxVisitors int
}

type RedisConfig struct {
	URL string
	TTL time.Duration
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	Endpoint        string
	Prefix          string
}

type SessionConfig struct {
	Secret string
	MaxAge int
	Secure bool
}

type AIConfig struct {
	APIKey       string
	TextModel    string
	ReasonModel  string
	ImageModel   string
	RateLimit    int
	RateWindow   time.Duration
	MaxImageEdge int
}

type CatalogConfig struct {
	Count     int
	Seed      uint64
	StartYear int
}

type CheckoutConfig struct {
	ProcessingDelay time.Duration
	ServiceFee      int
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),

			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
		},
		Database: parseDatabaseConfig(),
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", "memory")),
			Dir:         getEnv("STORAGE_DIR", "data/state"),
			UseFallback: getEnvAsBool("STORAGE_FALLBACK", true),

			CacheIdleTTL:     getEnvAsDuration("STATE_IDLE_TTL", 30*time.Minute),
			CacheMaxVisitors: getEnvAsInt("STATE_MAX_VISITORS", 10000),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
			TTL: getEnvAsDuration("REDIS_TTL", 0),
		},
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", "zenmarket-state"),
			Region:          getEnv("R2_REGION", "auto"),
			Endpoint:        getEnv("R2_ENDPOINT", ""),
			Prefix:          getEnv("R2_PREFIX", "state/"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 86400*30),
			Secure: getEnvAsBool("SESSION_SECURE", false),
		},
		AI: AIConfig{
			APIKey:       firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("API_KEY")),
			TextModel:    getEnv("AI_TEXT_MODEL", "gemini-3-flash-preview"),
			ReasonModel:  getEnv("AI_REASON_MODEL", "gemini-3-pro-preview"),
			ImageModel:   getEnv("AI_IMAGE_MODEL", "imagen-4.0-generate-001"),
			RateLimit:    getEnvAsInt("AI_RATE_LIMIT", 30),
			RateWindow:   getEnvAsDuration("AI_RATE_WINDOW", time.Minute),
			MaxImageEdge: getEnvAsInt("AI_MAX_IMAGE_EDGE", 1280),
		},
		Catalog: CatalogConfig{
			Count:     getEnvAsInt("CATALOG_COUNT", 450),
			Seed:      uint64(getEnvAsInt("CATALOG_SEED", 0)),
			StartYear: getEnvAsInt("CATALOG_START_YEAR", time.Now().Year()),
		},
		Checkout: CheckoutConfig{
			ProcessingDelay: getEnvAsDuration("CHECKOUT_DELAY", 2*time.Second),
			ServiceFee:      getEnvAsInt("CHECKOUT_SERVICE_FEE", 45),
		},
	}

	return config, nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func parseDatabaseConfig() DatabaseConfig {
	driver := strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	path := getEnv("SQLITE_PATH", "data/zenmarket.db")

	// Check if DATABASE_URL is provided
	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL != "" {
		config := parseDatabaseURL(databaseURL)
		config.Driver = driver
		config.Path = path
		return config
	}

	// Fall back to individual environment variables
	return DatabaseConfig{
		Driver:   driver,
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvAsInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "zenmarket"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
		Path:     path,
	}
}

func parseDatabaseURL(databaseURL string) DatabaseConfig {
	config := DatabaseConfig{
		URL: databaseURL,
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		// If parsing fails, return the URL as-is
		return config
	}

	config.Host = u.Hostname()
	if u.Port() != "" {
		config.Port, _ = strconv.Atoi(u.Port())
	} else {
		config.Port = 5432 // Default PostgreSQL port
	}

	if u.User != nil {
		config.User = u.User.Username()
		config.Password, _ = u.User.Password()
	}

	config.DBName = strings.TrimPrefix(u.Path, "/")

	config.SSLMode = u.Query().Get("sslmode")
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated value, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
