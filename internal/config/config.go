package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	Storage   StorageConfig
	Auth      AuthConfig
	Thumbnail ThumbnailConfig
}

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// StorageConfig selects the content store backend: "minio" or "fs".
// FolderPath is only used by the fs backend.
type StorageConfig struct {
	Backend    string
	FolderPath string
}

type AuthConfig struct {
	TokenTTL time.Duration
}

type ThumbnailConfig struct {
	Queue string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5000"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "filevault"),
			Password: getEnv("DB_PASSWORD", "filevault_secret"),
			Name:     getEnv("DB_NAME", "filevault"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "filevault"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "filevault_secret"),
			Bucket:    getEnv("MINIO_BUCKET", "filevault"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		Storage: StorageConfig{
			Backend:    getEnv("STORAGE_BACKEND", "minio"),
			FolderPath: getEnv("FOLDER_PATH", "/tmp/files_manager"),
		},
		Auth: AuthConfig{
			TokenTTL: getEnvAsDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		},
		Thumbnail: ThumbnailConfig{
			Queue: getEnv("THUMBNAIL_QUEUE", "thumbnail_jobs"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
