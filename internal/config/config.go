package config

import (
	"os"
	"strconv"
)

// StorageConfig selects and parameterizes the slot-store backend.
// Mode is one of: memory, sqlite, postgres, minio.
type StorageConfig struct {
	Mode       string
	SQLitePath string
}

// DatabaseConfig holds PostgreSQL connection settings for the postgres
// slot-store backend.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for the minio slot-store backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// APIConfig holds settings for the remote service variant. When UseAPI is
// false the application runs against local storage only.
type APIConfig struct {
	BaseURL         string
	TimeoutSec      int
	ProbeTimeoutSec int
	Token           string
	UseAPI          bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Storage  StorageConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	API      APIConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Storage: StorageConfig{
			Mode:       getEnv("STORAGE_MODE", "sqlite"),
			SQLitePath: getEnv("SQLITE_PATH", "bizplan.db"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		API: APIConfig{
			BaseURL:         getEnv("API_BASE_URL", "http://localhost:8080"),
			TimeoutSec:      getEnvInt("API_TIMEOUT_SEC", 10),
			ProbeTimeoutSec: getEnvInt("API_PROBE_TIMEOUT_SEC", 3),
			Token:           getEnv("API_TOKEN", ""),
			UseAPI:          getEnvBool("USE_API", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
