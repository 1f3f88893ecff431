package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// HTTP listener and lifecycle.
	AppHost         string        `mapstructure:"APP_HOST"`
	AppPort         int           `mapstructure:"APP_PORT"`
	PortRetryLimit  int           `mapstructure:"PORT_RETRY_LIMIT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	CORSOrigins     []string      `mapstructure:"CORS_ORIGINS"`

	// Document store.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Login.
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenTTL      time.Duration `mapstructure:"TOKEN_TTL"`
	AdminEmail    string        `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string        `mapstructure:"ADMIN_PASSWORD"`

	// Media host.
	MediaBackend   string `mapstructure:"MEDIA_BACKEND"`
	MediaFolder    string `mapstructure:"MEDIA_FOLDER"`
	MaxUploadBytes int64  `mapstructure:"MAX_UPLOAD_BYTES"`

	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	MinioPublicURL string `mapstructure:"MINIO_PUBLIC_URL"`

	// Redis configuration (upload ledger and sweep queue).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	UploadSweepInterval time.Duration `mapstructure:"UPLOAD_SWEEP_INTERVAL"`
	UploadStaleAfter    time.Duration `mapstructure:"UPLOAD_STALE_AFTER"`
	SweepDeletesPerSec  float64       `mapstructure:"SWEEP_DELETES_PER_SEC"`
}

var defaults = map[string]any{
	"ENV":                   "development",
	"LOG_LEVEL":             "info",
	"APP_HOST":              "0.0.0.0",
	"APP_PORT":              5000,
	"PORT_RETRY_LIMIT":      10,
	"SHUTDOWN_TIMEOUT":      "10s",
	"CORS_ORIGINS":          "*",
	"DATABASE_URL":          "mongodb://localhost:27017",
	"DATABASE_NAME":         "sitecms",
	"JWT_SECRET":            "",
	"TOKEN_TTL":             "2400h",
	"ADMIN_EMAIL":           "admin@example.com",
	"ADMIN_PASSWORD":        "admin123",
	"MEDIA_BACKEND":         "cloudinary",
	"MEDIA_FOLDER":          "sitecms",
	"MAX_UPLOAD_BYTES":      5 << 20,
	"CLOUDINARY_CLOUD_NAME": "",
	"CLOUDINARY_API_KEY":    "",
	"CLOUDINARY_API_SECRET": "",
	"MINIO_ENDPOINT":        "",
	"MINIO_ACCESS_KEY":      "",
	"MINIO_SECRET_KEY":      "",
	"MINIO_BUCKET":          "sitecms",
	"MINIO_USE_SSL":         false,
	"MINIO_PUBLIC_URL":      "",
	"REDIS_ADDR":            "localhost:6379",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"UPLOAD_SWEEP_INTERVAL": "15m",
	"UPLOAD_STALE_AFTER":    "1h",
	"SWEEP_DELETES_PER_SEC": 5.0,
}

// LoadConfig reads .env, an optional config.yaml and the environment, in that order of precedence
// (environment wins).
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode: %w", err)
	}
	cfg.CORSOrigins = splitList(cfg.CORSOrigins)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_BYTES must be positive")
	}
	if c.PortRetryLimit < 1 {
		c.PortRetryLimit = 1
	}
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("config: JWT_SECRET is required in production")
		}
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("config: failed to generate JWT secret: %w", err)
		}
		log.Println("WARNING: JWT_SECRET is not set; using a random per-process secret")
		c.JWTSecret = secret
	}
	switch c.MediaBackend {
	case "cloudinary", "minio":
	default:
		return fmt.Errorf("config: unknown MEDIA_BACKEND %q", c.MediaBackend)
	}
	return nil
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
