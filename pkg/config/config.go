package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Detector DetectorConfig
	Storage  StorageConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type UploadConfig struct {
	UploadsDir  string
	ResultsDir  string
	WorkDir     string
	MaxFileSize int64 // bytes
}

type DetectorConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	Driver   string // "local" or "s3"
	S3Bucket string
	S3Region string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "3000"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Env:  getEnv("APP_ENV", "production"),
		},
		Upload: UploadConfig{
			UploadsDir:  getEnv("UPLOAD_DIR", "static/uploads"),
			ResultsDir:  getEnv("RESULTS_DIR", "static/results"),
			WorkDir:     getEnv("WORK_DIR", "static/work"),
			MaxFileSize: getEnvAsInt64("UPLOAD_MAX_FILE_SIZE", 50*1024*1024), // 50MB
		},
		Detector: DetectorConfig{
			BaseURL: getEnv("DETECTOR_URL", "http://localhost:8500"),
			Timeout: getEnvAsDuration("DETECTOR_TIMEOUT", 10*time.Minute),
		},
		Storage: StorageConfig{
			Driver:   getEnv("STORAGE_DRIVER", "local"),
			S3Bucket: getEnv("S3_BUCKET", ""),
			S3Region: getEnv("S3_REGION", "eu-central-1"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "uav_detector"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// EnsureDirs creates the uploads, results and work areas. Uploads and
// intermediate artifacts are never purged; see DESIGN.md.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Upload.UploadsDir, c.Upload.ResultsDir, c.Upload.WorkDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create %s: %w", dir, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
