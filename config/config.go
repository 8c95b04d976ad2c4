package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SearchURL       string
	FallbackURL     string
	FallbackSize    int
	PrimaryTimeout  time.Duration
	FallbackTimeout time.Duration
	MaxRetries      int
	RetryBaseDelay  time.Duration
	FetchMode       string
	ChromeBin       string
	DefaultCurrency string
	RaceSources     bool

	OutputDir string
	CSVFile   string
	JSONFile  string
	Debug     bool

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SearchURL:       getEnv("SEARCH_URL", "https://www.booking.com/searchresults.html"),
		FallbackURL:     getEnv("FALLBACK_URL", "https://random-data-api.com/api/v2/hotels"),
		FallbackSize:    getEnvInt("FALLBACK_SIZE", 12),
		PrimaryTimeout:  getEnvSeconds("PRIMARY_TIMEOUT_SEC", 20),
		FallbackTimeout: getEnvSeconds("FALLBACK_TIMEOUT_SEC", 15),
		MaxRetries:      getEnvInt("MAX_RETRIES", 4),
		RetryBaseDelay:  time.Duration(getEnvInt("RETRY_BASE_MS", 500)) * time.Millisecond,
		FetchMode:       strings.ToLower(getEnv("FETCH_MODE", FetchModeHTTP)),
		ChromeBin:       getEnv("CHROME_BIN", ""),
		DefaultCurrency: strings.ToUpper(getEnv("DEFAULT_CURRENCY", "USD")),
		RaceSources:     getEnvBool("RACE_SOURCES", false),

		OutputDir: getEnv("OUTPUT_DIR", "."),
		CSVFile:   getEnv("CSV_FILE", "budget_hotels.csv"),
		JSONFile:  getEnv("JSON_FILE", "budget_hotels.json"),
		Debug:     getEnvBool("DEBUG", false),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scout"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scout123"),
		PostgresDB:       getEnv("POSTGRES_DB", "hotel_db"),
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

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}
