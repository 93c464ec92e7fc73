package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Blob     BlobConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// SettleWindow is how long freshly inserted expense rows are considered
	// immutable. Mirrors the write-buffering constraint of streaming-insert
	// backends; zero disables the check.
	SettleWindow time.Duration
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
}

// BlobConfig points at an S3-compatible object store (AWS S3 or MinIO).
// Object URLs are built as {PublicBaseURL}/{Bucket}/{key}.
type BlobConfig struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine, environment variables may be set directly
	// (useful for Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	settleWindow, _ := strconv.Atoi(getEnv("EXPENSE_SETTLE_WINDOW_SECONDS", "0"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			DBName:       getEnv("DB_NAME", "nomad_nest"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			SettleWindow: time.Duration(settleWindow) * time.Second,
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
		},
		Blob: BlobConfig{
			Endpoint:      getEnv("BLOB_ENDPOINT", "http://localhost:9000"),
			Region:        getEnv("BLOB_REGION", "us-east-1"),
			AccessKey:     getEnv("BLOB_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("BLOB_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("BLOB_BUCKET", "nomad-nest-media"),
			PublicBaseURL: getEnv("BLOB_PUBLIC_BASE_URL", "http://localhost:9000"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
