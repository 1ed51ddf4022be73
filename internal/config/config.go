package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server struct {
		Port     string
		GinMode  string
		LogLevel string
	}

	Storage struct {
		// Backend selects the persistence backend: memory, localdir, postgres or minio.
		Backend string
		DataDir string
	}

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Minio struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}

	Share struct {
		// BaseURL is the public URL share links are built on.
		BaseURL string
		// Ref holds a snapshot id the process was started to view. When set,
		// the record store comes up in read-only mode.
		Ref string
	}

	Invite struct {
		Domain       string
		Organization string
		TokenSecret  string
	}

	Upload struct {
		MaxFileSize int64
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")
	config.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	config.Storage.Backend = getEnv("STORAGE_BACKEND", "localdir")
	config.Storage.DataDir = getEnv("DATA_DIR", "./data")

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "baatometrics")
	config.DB.Password = getEnv("DB_PASSWORD", "baatometrics_password")
	config.DB.Name = getEnv("DB_NAME", "baatometrics_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	config.Minio.Endpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	config.Minio.AccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	config.Minio.SecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	config.Minio.Bucket = getEnv("MINIO_BUCKET", "baatometrics")
	config.Minio.UseSSL = getEnvAsBool("MINIO_USE_SSL", false)

	config.Share.BaseURL = getEnv("SHARE_BASE_URL", "http://localhost:8080")
	config.Share.Ref = getEnv("SHARE_REF", "")

	config.Invite.Domain = getEnv("INVITE_DOMAIN", "https://app.baato.io")
	config.Invite.Organization = getEnv("INVITE_ORGANIZATION", "BaatoMetrics")
	config.Invite.TokenSecret = getEnv("INVITE_TOKEN_SECRET", "dev-invite-secret")

	config.Upload.MaxFileSize = getEnvAsInt64("MAX_FILE_SIZE", 10485760)

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 gets an environment variable as int64 or returns a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
