package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// FinMate API
	APIBaseURL  string
	WSURL       string
	HTTPTimeout time.Duration
	PageSize    int

	// Identity provider (password grant)
	TokenURL     string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	// StaticToken bypasses the identity provider when set (tooling/tests).
	StaticToken string

	// Stub server
	StubPort      string
	StubJWTSecret string
	StubJWTExpiry time.Duration
	StubIssuer    string
	StubSeedEmail string
	StubSeedPass  string
	StubSeedCount int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("FINMATE_API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("FINMATE_WS_URL", "ws://localhost:8080/ws")
	viper.SetDefault("FINMATE_HTTP_TIMEOUT", "15s")
	viper.SetDefault("FINMATE_PAGE_SIZE", 20)
	viper.SetDefault("FINMATE_TOKEN_URL", "")
	viper.SetDefault("FINMATE_CLIENT_ID", "")
	viper.SetDefault("FINMATE_CLIENT_SECRET", "")
	viper.SetDefault("FINMATE_USERNAME", "")
	viper.SetDefault("FINMATE_PASSWORD", "")
	viper.SetDefault("FINMATE_STATIC_TOKEN", "")
	viper.SetDefault("STUB_PORT", "8080")
	viper.SetDefault("STUB_JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("STUB_JWT_EXPIRY", "1h")
	viper.SetDefault("STUB_ISSUER", "finmate-stub")
	viper.SetDefault("STUB_SEED_EMAIL", "demo@finmate.local")
	viper.SetDefault("STUB_SEED_PASSWORD", "demo-password")
	viper.SetDefault("STUB_SEED_COUNT", 45)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.APIBaseURL = viper.GetString("FINMATE_API_BASE_URL")
	cfg.WSURL = viper.GetString("FINMATE_WS_URL")

	timeoutStr := viper.GetString("FINMATE_HTTP_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 15 * time.Second
		log.Printf("Warning: Invalid value for FINMATE_HTTP_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.HTTPTimeout = timeout

	cfg.PageSize = viper.GetInt("FINMATE_PAGE_SIZE")
	if cfg.PageSize < 1 {
		cfg.PageSize = 20
		log.Printf("Warning: Invalid FINMATE_PAGE_SIZE. Defaulting to %d.\n", cfg.PageSize)
	}

	cfg.TokenURL = viper.GetString("FINMATE_TOKEN_URL")
	cfg.ClientID = viper.GetString("FINMATE_CLIENT_ID")
	cfg.ClientSecret = viper.GetString("FINMATE_CLIENT_SECRET")
	cfg.Username = viper.GetString("FINMATE_USERNAME")
	cfg.Password = viper.GetString("FINMATE_PASSWORD")
	cfg.StaticToken = viper.GetString("FINMATE_STATIC_TOKEN")
	if cfg.StaticToken == "" && cfg.TokenURL == "" {
		log.Println("Warning: Neither FINMATE_STATIC_TOKEN nor FINMATE_TOKEN_URL set; authenticated calls will fail.")
	}

	cfg.StubPort = viper.GetString("STUB_PORT")

	stubSecret := viper.GetString("STUB_JWT_SECRET")
	if stubSecret == "" {
		stubSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: STUB_JWT_SECRET not set. Using default insecure key.")
	}
	cfg.StubJWTSecret = stubSecret

	stubExpiryStr := viper.GetString("STUB_JWT_EXPIRY")
	stubExpiry, err := time.ParseDuration(stubExpiryStr)
	if err != nil {
		stubExpiry = time.Hour
		if stubExpiryStr != "" {
			log.Printf("Warning: Invalid value for STUB_JWT_EXPIRY ('%s'). Defaulting to %s.\n", stubExpiryStr, stubExpiry)
		}
	}
	cfg.StubJWTExpiry = stubExpiry

	cfg.StubIssuer = viper.GetString("STUB_ISSUER")
	cfg.StubSeedEmail = viper.GetString("STUB_SEED_EMAIL")
	cfg.StubSeedPass = viper.GetString("STUB_SEED_PASSWORD")
	cfg.StubSeedCount = viper.GetInt("STUB_SEED_COUNT")
	if cfg.StubSeedCount < 0 {
		cfg.StubSeedCount = 0
	}

	return cfg, nil
}
