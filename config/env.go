package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	CatalogSourceEmbedded = "embedded"
	CatalogSourcePostgres = "postgres"
	CatalogSourceRedis    = "redis"
)

type Config struct {
	AppEnv              string
	Port                string
	OrderAPIURL         string
	QRServiceURL        string
	QRImageSize         int
	SessionSecret       string
	SessionExpiry       time.Duration
	CatalogFetchTimeout time.Duration
	CatalogSource       string
	CatalogCacheTTL     time.Duration
	DatabaseURL         string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSSLMode           string
	RedisURL            string
	RedisAddr           string
	RedisPassword       string
	AllowedOrigins      []string

	envFileMissing bool
}

var AppConfig *Config

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func LoadConfig() *Config {
	envErr := godotenv.Load()

	AppConfig = &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("APP_PORT", getEnv("PORT", "8082")),
		OrderAPIURL:         getEnv("ORDER_API_URL", "http://localhost:3000"),
		QRServiceURL:        getEnv("QR_SERVICE_URL", "https://api.qrserver.com/v1/create-qr-code/"),
		QRImageSize:         getEnvInt("QR_IMAGE_SIZE", 200),
		SessionSecret:       getEnv("SESSION_SECRET", "secret"),
		SessionExpiry:       getEnvDuration("SESSION_EXPIRY", 2*time.Hour),
		CatalogFetchTimeout: getEnvDuration("CATALOG_FETCH_TIMEOUT", 10*time.Second),
		CatalogSource:       getEnv("CATALOG_SOURCE", CatalogSourceEmbedded),
		CatalogCacheTTL:     getEnvDuration("CATALOG_CACHE_TTL", 24*time.Hour),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "storefront"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		RedisURL:            os.Getenv("REDIS_URL"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		AllowedOrigins:      getEnvList("ORIGIN_URL"),
	}

	if envErr != nil {
		// Logged after the fact so the logger can honor APP_ENV.
		AppConfig.envFileMissing = true
	}

	return AppConfig
}

func (c *Config) LogSummary(logger *zap.Logger) {
	if c.envFileMissing {
		logger.Warn(".env file not found, using system environment variables")
	}
	logger.Info("configuration loaded",
		zap.String("environment", c.AppEnv),
		zap.String("port", c.Port),
		zap.String("order_api_url", c.OrderAPIURL),
		zap.String("catalog_source", c.CatalogSource),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string) []string {
	var values []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
