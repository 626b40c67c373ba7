package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
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

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// UploadConfig limits resume uploads.
type UploadConfig struct {
	ResumeMaxBytes int64
}

// AppConfig is the centralized configuration struct for the API server.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	TimeZone    string
	CORSOrigins string
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Auth        AuthConfig
	Upload      UploadConfig
}

// ClientConfig configures the jobctl terminal client.
type ClientConfig struct {
	APIURL    string
	TokenFile string
	Timeout   time.Duration
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		TimeZone:    getEnv("APP_TIMEZONE", "UTC"),
		CORSOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
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
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			TokenTTL:   getEnvDuration("JWT_TTL", 7*24*time.Hour),
			BcryptCost: getEnvInt("BCRYPT_COST", 10),
		},
		Upload: UploadConfig{
			ResumeMaxBytes: int64(getEnvInt("RESUME_MAX_BYTES", 5*1024*1024)),
		},
	}
}

// LoadClient reads the jobctl settings. TokenFile may contain a leading ~.
func LoadClient() *ClientConfig {
	return &ClientConfig{
		APIURL:    getEnv("JOBBOARD_API_URL", "http://localhost:8080/api"),
		TokenFile: getEnv("JOBBOARD_TOKEN_FILE", "~/.jobboard/token"),
		Timeout:   getEnvDuration("JOBBOARD_TIMEOUT", 30*time.Second),
	}
}

// Location resolves TimeZone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
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

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
