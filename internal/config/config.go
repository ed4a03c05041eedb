package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Predictor modes.
const (
	PredictorHTTP = "http"
	PredictorFile = "file"
)

type Config struct {
	Port               string        `mapstructure:"PORT"`
	Env                string        `mapstructure:"ENV"`
	DatabaseURL        string        `mapstructure:"DATABASE_URL"`
	DBMaxConns         int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns         int32         `mapstructure:"DB_MIN_CONNS"`
	RedisURL           string        `mapstructure:"REDIS_URL"`
	JWTSigningKey      string        `mapstructure:"JWT_SIGNING_KEY"`
	JWTIssuer          string        `mapstructure:"JWT_ISSUER"`
	TokenTTL           time.Duration `mapstructure:"TOKEN_TTL"`
	PredictorMode      string        `mapstructure:"PREDICTOR_MODE"`
	PredictorURL       string        `mapstructure:"PREDICTOR_URL"`
	PredictorModelPath string        `mapstructure:"PREDICTOR_MODEL_PATH"`
	PredictorTimeout   time.Duration `mapstructure:"PREDICTOR_TIMEOUT"`
	PredictorRetries   int           `mapstructure:"PREDICTOR_RETRIES"`
	CORSOrigins        []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS       float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst     int           `mapstructure:"RATE_LIMIT_BURST"`
	BodyLimit          string        `mapstructure:"BODY_LIMIT"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

// devSigningKey is only accepted when ENV=development.
const devSigningKey = "cvdss-development-signing-key"

var keys = []string{
	"PORT", "ENV", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "REDIS_URL",
	"JWT_SIGNING_KEY", "JWT_ISSUER", "TOKEN_TTL",
	"PREDICTOR_MODE", "PREDICTOR_URL", "PREDICTOR_MODEL_PATH", "PREDICTOR_TIMEOUT", "PREDICTOR_RETRIES",
	"CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "BODY_LIMIT", "REQUEST_TIMEOUT",
}

// Load reads .env (if present) and the process environment. It does not
// validate; commands call Validate or RequireDatabase for what they need.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("JWT_ISSUER", "cvdss")
	v.SetDefault("TOKEN_TTL", "12h")
	v.SetDefault("PREDICTOR_MODE", PredictorHTTP)
	v.SetDefault("PREDICTOR_TIMEOUT", "5s")
	v.SetDefault("PREDICTOR_RETRIES", 0)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("BODY_LIMIT", "1M")
	v.SetDefault("REQUEST_TIMEOUT", "30s")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	for i := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(cfg.CORSOrigins[i])
	}
	cfg.PredictorMode = strings.ToLower(strings.TrimSpace(cfg.PredictorMode))

	if cfg.JWTSigningKey == "" && cfg.IsDev() {
		cfg.JWTSigningKey = devSigningKey
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks the predictor and token settings the server depends on.
func (c *Config) Validate() error {
	if err := c.ValidatePredictor(); err != nil {
		return err
	}

	if c.JWTSigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY is required when ENV=%q", c.Env)
	}
	if !c.IsDev() && c.JWTSigningKey == devSigningKey {
		return fmt.Errorf("JWT_SIGNING_KEY must not be the development key when ENV=%q", c.Env)
	}
	if !c.IsDev() && len(c.JWTSigningKey) < 32 {
		return fmt.Errorf("JWT_SIGNING_KEY must be at least 32 bytes outside development")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must not be negative")
	}
	return nil
}

// ValidatePredictor checks only the PREDICTOR_* settings. The evaluate
// command needs nothing else.
func (c *Config) ValidatePredictor() error {
	switch c.PredictorMode {
	case PredictorHTTP:
		if c.PredictorURL == "" {
			return fmt.Errorf("PREDICTOR_URL is required when PREDICTOR_MODE is %q", PredictorHTTP)
		}
	case PredictorFile:
		if c.PredictorModelPath == "" {
			return fmt.Errorf("PREDICTOR_MODEL_PATH is required when PREDICTOR_MODE is %q", PredictorFile)
		}
	default:
		return fmt.Errorf("PREDICTOR_MODE must be %q or %q, got %q", PredictorHTTP, PredictorFile, c.PredictorMode)
	}
	if c.PredictorTimeout <= 0 {
		return fmt.Errorf("PREDICTOR_TIMEOUT must be positive")
	}
	if c.PredictorRetries < 0 {
		return fmt.Errorf("PREDICTOR_RETRIES must not be negative")
	}
	return nil
}

// RequireDatabase is called by the commands that open a pool.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}
