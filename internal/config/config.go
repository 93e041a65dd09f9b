package config

import (
	"os"
)

type Config struct {
	Port       string
	GinMode    string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	StorageProvider string
	StorageFolder   string
	StorageID       string
	StorageSecret   string
	StorageRegion   string
	StorageBucket   string
	StorageEndpoint string
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "todouser"),
		DBPassword: getEnv("DB_PASSWORD", "todopassword"),
		DBName:     getEnv("DB_NAME", "todo_backend"),
		DBPath:     getEnv("DB_PATH", "todo.db"),

		StorageProvider: getEnv("STORAGE_PROVIDER", "filesystem"),
		StorageFolder:   getEnv("STORAGE_FOLDER", "uploads"),
		StorageID:       getEnv("STORAGE_ID", ""),
		StorageSecret:   getEnv("STORAGE_SECRET", ""),
		StorageRegion:   getEnv("STORAGE_REGION", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),
		StorageEndpoint: getEnv("STORAGE_ENDPOINT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
