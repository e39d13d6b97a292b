package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL string

	MaxConcurrency  int
	RateLimitMs     int
	RequestTimeoutS int

	// InsecureTLS disables certificate verification for the target
	// host. The site's certificate chain does not validate against
	// default trust stores, so this override ships enabled, but it is
	// an explicit policy knob rather than hard-wired client behaviour.
	InsecureTLS bool

	CSVOutputPath string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BaseURL: getEnv("BASE_URL", "https://aptekonline.az"),

		MaxConcurrency:  getEnvInt("MAX_CONCURRENCY", 5),
		RateLimitMs:     getEnvInt("RATE_LIMIT_MS", 500),
		RequestTimeoutS: getEnvInt("REQUEST_TIMEOUT_S", 30),

		InsecureTLS: getEnvBool("INSECURE_TLS", true),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/aptekonline.csv"),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "pharmacy_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
