package config

import (
	"errors"  // Validation errors
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For TTLs

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string        // Application port
	DBDriver    string        // "mysql" or "sqlite"
	DBUser      string        // Database user
	DBPassword  string        // Database password
	DBHost      string        // Database host
	DBPort      string        // Database port
	DBName      string        // Database name
	DBPath      string        // SQLite file path
	JWTSecret   string        // JWT secret key
	RedisAddr   string        // Redis server address, empty disables caching
	RedisPass   string        // Redis password
	RedisDB     int           // Redis database number
	CacheTTL    time.Duration // Expense list cache TTL
	IsProd      bool          // Is production environment
	LogLevel    string        // logrus level
	LogFormat   string        // "text" or "json"
	CORSOrigins []string      // Allowed browser origins
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	ttl, err := strconv.Atoi(os.Getenv("CACHE_TTL_SECONDS"))
	if err != nil || ttl <= 0 {
		ttl = 60
	}
	return &Config{
		AppPort:     getEnv("APP_PORT", "3000"),
		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBHost:      getEnv("DB_HOST", "127.0.0.1"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBName:      os.Getenv("DB_NAME"),
		DBPath:      getEnv("DB_PATH", "expense_tracker.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPass:   os.Getenv("REDIS_PASS"),
		RedisDB:     redisDB,
		CacheTTL:    time.Duration(ttl) * time.Second,
		IsProd:      os.Getenv("IS_PROD") == "true",
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

// DSN builds the MySQL Data Source Name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "mysql":
		if c.DBUser == "" || c.DBName == "" {
			return errors.New("DB_USER and DB_NAME are required for mysql")
		}
	case "sqlite":
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for sqlite")
		}
	default:
		return errors.New("DB_DRIVER must be mysql or sqlite")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
