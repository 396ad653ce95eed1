package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	StorageDriver string

	JWTSecret string
	JWTIssuer string

	RateLimit          string // ulule limiter format, e.g. "100-M"
	CORSAllowedOrigins []string

	// Banking aggregation provider; sync is disabled when BridgeClientID is empty.
	BridgeBaseURL      string `mapstructure:"BRIDGE_BASE_URL"`
	BridgeTokenURL     string `mapstructure:"BRIDGE_TOKEN_URL"`
	BridgeClientID     string `mapstructure:"BRIDGE_CLIENT_ID"`
	BridgeClientSecret string `mapstructure:"BRIDGE_CLIENT_SECRET"`
	BridgeVersion      string `mapstructure:"BRIDGE_VERSION"`
	BridgeTimeout      time.Duration

	CategorizerRulesFile    string
	PreserveRealizedHistory bool
}

// BridgeEnabled reports whether bank synchronization is configured.
func (c *Config) BridgeEnabled() bool {
	return c.BridgeClientID != "" && c.BridgeClientSecret != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "money-forecast")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("BRIDGE_BASE_URL", "https://api.bridgeapi.io")
	viper.SetDefault("BRIDGE_TOKEN_URL", "")
	viper.SetDefault("BRIDGE_CLIENT_ID", "")
	viper.SetDefault("BRIDGE_CLIENT_SECRET", "")
	viper.SetDefault("BRIDGE_VERSION", "2021-06-01")
	viper.SetDefault("BRIDGE_TIMEOUT", "15s")
	viper.SetDefault("CATEGORIZER_RULES_FILE", "")
	viper.SetDefault("PRESERVE_REALIZED_HISTORY", true)

	// Values from .env are now in the process environment and can be overridden by it.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.StorageDriver = strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPostgres)
		cfg.StorageDriver = StorageDriverPostgres
	}
	if cfg.StorageDriver == StorageDriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.BridgeBaseURL = strings.TrimRight(viper.GetString("BRIDGE_BASE_URL"), "/")
	cfg.BridgeTokenURL = viper.GetString("BRIDGE_TOKEN_URL")
	if cfg.BridgeTokenURL == "" {
		cfg.BridgeTokenURL = cfg.BridgeBaseURL + "/v2/authenticate"
	}
	cfg.BridgeClientID = viper.GetString("BRIDGE_CLIENT_ID")
	cfg.BridgeClientSecret = viper.GetString("BRIDGE_CLIENT_SECRET")
	cfg.BridgeVersion = viper.GetString("BRIDGE_VERSION")

	timeoutStr := viper.GetString("BRIDGE_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 15 * time.Second
		log.Printf("Warning: Invalid value for BRIDGE_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout.String())
	}
	cfg.BridgeTimeout = timeout
	if !cfg.BridgeEnabled() {
		log.Println("Warning: BRIDGE_CLIENT_ID or BRIDGE_CLIENT_SECRET not set. Bank synchronization is disabled.")
	}

	cfg.CategorizerRulesFile = viper.GetString("CATEGORIZER_RULES_FILE")
	cfg.PreserveRealizedHistory = viper.GetBool("PRESERVE_REALIZED_HISTORY")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
