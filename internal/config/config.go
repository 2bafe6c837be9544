// Package config loads process configuration from the environment.
//
// Everything the server needs — listen port, database path, the admin
// identity, the JWT signing secret, the storage backend — is read once at
// startup into an immutable Config value that main passes to the components
// that need it. Nothing reads os.Getenv after startup, which is what makes
// the auth and storage layers testable with injected fake values.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// StorageLocal stores uploaded images on disk under UploadDir and
	// serves them from /uploads/.
	StorageLocal = "local"
	// StorageS3 stores uploaded images in an S3 bucket and references
	// them by absolute URL.
	StorageS3 = "s3"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Admin   AdminConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	Path string
}

// AdminConfig is the single configured admin identity plus the token
// signing secret. There is no multi-user admin model.
type AdminConfig struct {
	Username     string
	PasswordHash string // bcrypt hash, generated with cmd/hashpass
	JWTSecret    string
}

type StorageConfig struct {
	Backend   string // "local" or "s3"
	UploadDir string // local backend: directory for stored images
	S3Bucket  string
	S3Region  string
	S3Prefix  string // optional key prefix inside the bucket
	S3BaseURL string // optional public base URL (CDN); default is the bucket endpoint
}

// Load reads a .env file if present, then the environment, and validates
// the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("PORT", 5000),
			AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "*")},
		},
		DB: DBConfig{
			Path: getEnv("DB_PATH", "data/portfolio.db"),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET", ""),
		},
		Storage: StorageConfig{
			Backend:   getEnv("STORAGE_BACKEND", StorageLocal),
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
			S3Bucket:  getEnv("S3_BUCKET", ""),
			S3Region:  getEnv("S3_REGION", ""),
			S3Prefix:  getEnv("S3_PREFIX", "uploads"),
			S3BaseURL: getEnv("S3_BASE_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Admin.Username == "" {
		return fmt.Errorf("ADMIN_USERNAME is required")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required (generate one with cmd/hashpass)")
	}
	if c.Admin.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	switch c.Storage.Backend {
	case StorageLocal:
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for the local storage backend")
		}
	case StorageS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 storage backend")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q",
			StorageLocal, StorageS3, c.Storage.Backend)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("invalid %s value %q, using default %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
