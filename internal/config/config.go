package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"geobike_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Stock policy names accepted by ORDER_STOCK_POLICY and SALE_STOCK_POLICY.
const (
	StockPolicyNone    = "none"
	StockPolicyEnforce = "enforce"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Auth     AuthConfig
	Stock    StockConfig
	Storage  StorageConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MaxRetries    int
	MaxRetryDelay time.Duration
	AutoMigrate   bool
}

// AppConfig holds application configuration
type AppConfig struct {
	Environment        string
	Port               string
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string
}

type AuthConfig struct {
	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string
}

// StockConfig selects per channel whether stock is checked and decremented.
type StockConfig struct {
	OrderPolicy       string
	SalePolicy        string
	LowStockThreshold int
}

type StorageConfig struct {
	S3Bucket      string
	AWSRegion     string
	AssetsBaseURL string
	MaxImageBytes int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:          utils.Getenv("DB_HOST", "localhost"),
			Port:          utils.Getenv("DB_PORT", "5432"),
			User:          utils.Getenv("DB_USER", "geobike"),
			Password:      utils.Getenv("DB_PASSWORD", "geobike"),
			DBName:        utils.Getenv("DB_NAME", "geobike_shield"),
			SSLMode:       utils.Getenv("DB_SSLMODE", "disable"),
			MaxRetries:    utils.GetenvInt("DB_MAX_RETRIES", 5),
			MaxRetryDelay: utils.GetenvDuration("DB_MAX_RETRY_DELAY", 30*time.Second),
			AutoMigrate:   utils.GetenvBool("DB_AUTO_MIGRATE", true),
		},
		App: AppConfig{
			Environment:        utils.Getenv("APP_ENV", "development"),
			Port:               utils.Getenv("PORT", "8080"),
			LogLevel:           utils.Getenv("LOG_LEVEL", "info"),
			LogFormat:          utils.Getenv("LOG_FORMAT", "console"),
			CORSAllowedOrigins: utils.GetenvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:4200", "http://localhost:3000"}),
		},
		Auth: AuthConfig{
			JWTSecret:     utils.Getenv("JWT_SECRET", ""),
			JWTTTL:        utils.GetenvDuration("JWT_TTL", utils.DefaultAccessTokenTTL),
			AdminEmail:    utils.Getenv("ADMIN_EMAIL", ""),
			AdminPassword: utils.Getenv("ADMIN_PASSWORD", ""),
		},
		Stock: StockConfig{
			OrderPolicy:       strings.ToLower(utils.Getenv("ORDER_STOCK_POLICY", StockPolicyNone)),
			SalePolicy:        strings.ToLower(utils.Getenv("SALE_STOCK_POLICY", StockPolicyEnforce)),
			LowStockThreshold: utils.GetenvInt("LOW_STOCK_THRESHOLD", 5),
		},
		Storage: StorageConfig{
			S3Bucket:      utils.Getenv("S3_BUCKET", ""),
			AWSRegion:     utils.Getenv("AWS_REGION", utils.Getenv("AWS_DEFAULT_REGION", "eu-central-1")),
			AssetsBaseURL: utils.Getenv("ASSETS_BASE_URL", ""),
			MaxImageBytes: utils.GetenvInt("MAX_IMAGE_BYTES", 5<<20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		if c.App.Environment != "development" {
			return errors.New("JWT_SECRET must be set outside development")
		}
		c.Auth.JWTSecret = "geobike-development-secret"
	}
	for name, policy := range map[string]string{"ORDER_STOCK_POLICY": c.Stock.OrderPolicy, "SALE_STOCK_POLICY": c.Stock.SalePolicy} {
		if policy != StockPolicyNone && policy != StockPolicyEnforce {
			return fmt.Errorf("%s must be %q or %q, got %q", name, StockPolicyNone, StockPolicyEnforce, policy)
		}
	}
	if c.Database.MaxRetries < 0 {
		return fmt.Errorf("DB_MAX_RETRIES must not be negative")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
