package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Auth0Domain string
	APIAudience string
	JWKSURL     string
	JWKSTimeout time.Duration

	LogLevel       string
	LogFormat      string
	CORSOrigins    []string
	SeedCategories bool
	GinMode        string
}

// Load reads configuration from the environment, after loading the first
// env file found among config.env and .env.
func Load() *Config {
	for _, path := range []string{"config.env", ".env"} {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}

	domain := getEnv("AUTH0_DOMAIN", "udacitytrivia.auth0.com")
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "trivia"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		ServerPort:   getEnv("SERVER_PORT", "8080"),
		ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
		WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),

		Auth0Domain: domain,
		APIAudience: getEnv("API_AUDIENCE", "trivia"),
		JWKSURL:     getEnv("JWKS_URL", fmt.Sprintf("https://%s/.well-known/jwks.json", domain)),
		JWKSTimeout: getDuration("JWKS_TIMEOUT", 5*time.Second),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		CORSOrigins:    getList("CORS_ORIGINS", []string{"*"}),
		SeedCategories: getBool("SEED_CATEGORIES", false),
		GinMode:        getEnv("GIN_MODE", "release"),
	}
}

// Issuer is the token issuer expected from the identity provider.
func (c *Config) Issuer() string {
	return "https://" + c.Auth0Domain + "/"
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

func getList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
