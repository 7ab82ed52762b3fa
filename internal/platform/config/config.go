package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/isp_bookkeeping_app/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// StoreDriver selects where the application state is persisted.
type StoreDriver string

const (
	StoreMemory   StoreDriver = "memory"
	StoreFile     StoreDriver = "file"
	StorePostgres StoreDriver = "postgres"
	StoreSQLite   StoreDriver = "sqlite"
	StoreMongo    StoreDriver = "mongo"
)

// Valid reports whether d is a supported driver.
func (d StoreDriver) Valid() bool {
	switch d {
	case StoreMemory, StoreFile, StorePostgres, StoreSQLite, StoreMongo:
		return true
	default:
		return false
	}
}

const (
	defaultJWTSecret     = "a-very-secret-key-should-be-longer-and-random"
	defaultAdminPassword = "admin"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	StoreDriver    StoreDriver
	DatabaseURL    string
	MigrationsPath string
	SQLitePath     string
	DataFilePath   string
	MongoURI       string
	MongoDatabase  string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	AdminUsername     string
	AdminPasswordHash string

	AllowedOrigins []string
	LoginRateLimit string // ulule/limiter format, e.g. "5-M"
	APIRateLimit   string

	PosthogAPIKey string
	PosthogHost   string

	SnowflakeNode int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORE_DRIVER", string(StoreFile))
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("SQLITE_PATH", "data/bookkeeping.db")
	viper.SetDefault("DATA_FILE_PATH", "data/bookkeeping.json")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "isp_bookkeeping")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "isp-bookkeeping-app")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("API_RATE_LIMIT", "300-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_HOST", "https://eu.i.posthog.com")
	viper.SetDefault("SNOWFLAKE_NODE", 1)

	viper.AutomaticEnv()

	cfg := &Config{
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		StoreDriver:    StoreDriver(strings.ToLower(viper.GetString("STORE_DRIVER"))),
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		SQLitePath:     viper.GetString("SQLITE_PATH"),
		DataFilePath:   viper.GetString("DATA_FILE_PATH"),
		MongoURI:       viper.GetString("MONGO_URI"),
		MongoDatabase:  viper.GetString("MONGO_DATABASE"),
		JWTIssuer:      viper.GetString("JWT_ISSUER"),
		AdminUsername:  viper.GetString("ADMIN_USERNAME"),
		LoginRateLimit: viper.GetString("LOGIN_RATE_LIMIT"),
		APIRateLimit:   viper.GetString("API_RATE_LIMIT"),
		PosthogAPIKey:  viper.GetString("POSTHOG_API_KEY"),
		PosthogHost:    viper.GetString("POSTHOG_HOST"),
		SnowflakeNode:  viper.GetInt64("SNOWFLAKE_NODE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if !cfg.StoreDriver.Valid() {
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver == StorePostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL must be set when STORE_DRIVER is %s", StorePostgres)
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			// tokens do not survive a restart
			cfg.JWTSecret, err = utils.NewSigningSecret()
			if err != nil {
				return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
			}
			log.Println("Warning: JWT_SECRET not set in production. Using a random per-process secret.")
		} else {
			cfg.JWTSecret = defaultJWTSecret
			log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
		}
	}

	cfg.AdminPasswordHash = viper.GetString("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		if cfg.IsProduction {
			return nil, errors.New("ADMIN_PASSWORD_HASH must be set in production")
		}
		cfg.AdminPasswordHash, err = utils.HashPassword(defaultAdminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash default admin password: %w", err)
		}
		log.Println("Warning: ADMIN_PASSWORD_HASH not set. The administrator password is the insecure default.")
	} else if err := utils.ValidatePasswordHash(cfg.AdminPasswordHash); err != nil {
		return nil, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
	}

	for _, origin := range strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}
