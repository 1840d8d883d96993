package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Storage StorageConfig
	Email   EmailConfig
	Log     LogConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// StorageConfig holds object storage settings for both backend variants.
// Backend selects the variant: "minio" (local proxy) or "s3" (cloud).
type StorageConfig struct {
	Backend              string        `mapstructure:"backend"`
	Bucket               string        `mapstructure:"bucket"`
	Region               string        `mapstructure:"region"`
	Endpoint             string        `mapstructure:"endpoint"`
	PublicEndpoint       string        `mapstructure:"public_endpoint"`
	AccessKey            string        `mapstructure:"access_key"`
	SecretKey            string        `mapstructure:"secret_key"`
	UseSSL               bool          `mapstructure:"use_ssl"`
	MaxUploadSizeMB      int64         `mapstructure:"max_upload_size_mb"`
	PresignExpiryMinutes int           `mapstructure:"presign_expiry_minutes"`
	AllowedImageTypes    []string      `mapstructure:"allowed_image_types"`
	OpTimeout            time.Duration `mapstructure:"op_timeout"`
}

// MaxUploadSizeBytes returns the configured upload cap in bytes.
func (s *StorageConfig) MaxUploadSizeBytes() int64 {
	return s.MaxUploadSizeMB * 1024 * 1024
}

// PresignExpiry returns the presigned URL lifetime as a duration.
func (s *StorageConfig) PresignExpiry() time.Duration {
	return time.Duration(s.PresignExpiryMinutes) * time.Minute
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the SARTOR_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SARTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "sartor")
	v.SetDefault("db.password", "sartor_secret")
	v.SetDefault("db.name", "sartor_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "sartor")

	// Storage defaults: local MinIO for development
	v.SetDefault("storage.backend", "minio")
	v.SetDefault("storage.bucket", "sartor-order-images")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.public_endpoint", "")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.max_upload_size_mb", 10)
	v.SetDefault("storage.presign_expiry_minutes", 360)
	v.SetDefault("storage.allowed_image_types", "image/jpeg,image/png,image/gif,image/webp")
	v.SetDefault("storage.op_timeout", "30s")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@sartor.example")
	v.SetDefault("email.from_name", "Sartor")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "SARTOR_SERVER_PORT",
		"server.read_timeout":            "SARTOR_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "SARTOR_SERVER_WRITE_TIMEOUT",
		"server.environment":             "SARTOR_SERVER_ENVIRONMENT",
		"db.host":                        "SARTOR_DB_HOST",
		"db.port":                        "SARTOR_DB_PORT",
		"db.user":                        "SARTOR_DB_USER",
		"db.password":                    "SARTOR_DB_PASSWORD",
		"db.name":                        "SARTOR_DB_NAME",
		"db.sslmode":                     "SARTOR_DB_SSLMODE",
		"db.max_open":                    "SARTOR_DB_MAX_OPEN",
		"db.max_idle":                    "SARTOR_DB_MAX_IDLE",
		"jwt.secret":                     "SARTOR_JWT_SECRET",
		"jwt.access_expiry":              "SARTOR_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "SARTOR_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "SARTOR_JWT_ISSUER",
		"storage.backend":                "SARTOR_STORAGE_BACKEND",
		"storage.bucket":                 "SARTOR_STORAGE_BUCKET",
		"storage.region":                 "SARTOR_STORAGE_REGION",
		"storage.endpoint":               "SARTOR_STORAGE_ENDPOINT",
		"storage.public_endpoint":        "SARTOR_STORAGE_PUBLIC_ENDPOINT",
		"storage.access_key":             "SARTOR_STORAGE_ACCESS_KEY",
		"storage.secret_key":             "SARTOR_STORAGE_SECRET_KEY",
		"storage.use_ssl":                "SARTOR_STORAGE_USE_SSL",
		"storage.max_upload_size_mb":     "SARTOR_STORAGE_MAX_UPLOAD_SIZE_MB",
		"storage.presign_expiry_minutes": "SARTOR_STORAGE_PRESIGN_EXPIRY_MINUTES",
		"storage.allowed_image_types":    "SARTOR_STORAGE_ALLOWED_IMAGE_TYPES",
		"storage.op_timeout":             "SARTOR_STORAGE_OP_TIMEOUT",
		"email.provider":                 "SARTOR_EMAIL_PROVIDER",
		"email.region":                   "SARTOR_EMAIL_REGION",
		"email.from_address":             "SARTOR_EMAIL_FROM_ADDRESS",
		"email.from_name":                "SARTOR_EMAIL_FROM_NAME",
		"log.level":                      "SARTOR_LOG_LEVEL",
		"log.format":                     "SARTOR_LOG_FORMAT",
		"cors.allowed_origins":           "SARTOR_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SARTOR_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SARTOR_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Storage = StorageConfig{
		Backend:              v.GetString("storage.backend"),
		Bucket:               v.GetString("storage.bucket"),
		Region:               v.GetString("storage.region"),
		Endpoint:             v.GetString("storage.endpoint"),
		PublicEndpoint:       v.GetString("storage.public_endpoint"),
		AccessKey:            v.GetString("storage.access_key"),
		SecretKey:            v.GetString("storage.secret_key"),
		UseSSL:               v.GetBool("storage.use_ssl"),
		MaxUploadSizeMB:      v.GetInt64("storage.max_upload_size_mb"),
		PresignExpiryMinutes: v.GetInt("storage.presign_expiry_minutes"),
		AllowedImageTypes:    splitCSV(v.GetString("storage.allowed_image_types")),
		OpTimeout:            v.GetDuration("storage.op_timeout"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}

	if cfg.Storage.Backend != "minio" && cfg.Storage.Backend != "s3" {
		return nil, fmt.Errorf("unknown storage backend %q (expected minio or s3)", cfg.Storage.Backend)
	}

	return cfg, nil
}

// splitCSV parses a comma-separated string into a trimmed slice.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
