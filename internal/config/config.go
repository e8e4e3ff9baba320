package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	apperrors "github.com/ZanzyTHEbar/flowdesk-ml/internal/errors"
)

type Config struct {
	Server    ServerConfig
	Models    ModelConfig
	Embedding EmbeddingConfig
	Redis     RedisConfig
	Env       string `validate:"oneof=development staging production test"`
	LogLevel  string `validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
}

type ServerConfig struct {
	Port            string        `validate:"required,numeric"`
	CORSOrigins     []string      `validate:"min=1,dive,required"`
	RequestTimeout  time.Duration `validate:"gt=0"`
	MaxBodyBytes    int64         `validate:"gt=0"`
	RateLimitPerMin int           `validate:"min=1"`
	CacheTTL        time.Duration `validate:"min=0"`
	EnableHSTS      bool
}

type ModelConfig struct {
	Dir               string `validate:"required"`
	ConfidenceVariant string `validate:"oneof=canonical transport"`
}

type EmbeddingConfig struct {
	Provider  string `validate:"oneof=hashing ollama openai"`
	Dimension int    `validate:"min=8"`
	URL       string `validate:"omitempty,url"`
	Model     string
	APIKey    string
	BaseURL   string        `validate:"omitempty,url"`
	Timeout   time.Duration `validate:"gt=0"`
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int `validate:"min=0"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// Load reads the environment into a validated Config. A .env file is only
// consulted in development.
func Load() (*Config, error) {
	env := getEnv("FLOWDESK_ENV", "development")
	if env == "development" {
		_ = godotenv.Load()
	}

	dimension, err := getEnvInt("EMBEDDING_DIMENSION", 256)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	perMin, err := getEnvInt("RATE_LIMIT_PER_MIN", 60)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvDuration("CACHE_TTL", 0)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	embedTimeout, err := getEnvDuration("EMBEDDING_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	maxBody, err := getEnvInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:      env,
		LogLevel: strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
			RequestTimeout:  timeout,
			MaxBodyBytes:    int64(maxBody),
			RateLimitPerMin: perMin,
			CacheTTL:        cacheTTL,
			EnableHSTS:      getEnv("ENABLE_HSTS", "false") == "true",
		},
		Models: ModelConfig{
			Dir:               getEnv("MODEL_DIR", "models"),
			ConfidenceVariant: getEnv("RISK_CONFIDENCE_VARIANT", "canonical"),
		},
		Embedding: EmbeddingConfig{
			Provider:  getEnv("EMBEDDING_PROVIDER", "hashing"),
			Dimension: dimension,
			URL:       os.Getenv("EMBEDDING_SERVICE_URL"),
			Model:     os.Getenv("EMBEDDING_MODEL"),
			APIKey:    os.Getenv("OPENAI_API_KEY"),
			BaseURL:   os.Getenv("OPENAI_BASE_URL"),
			Timeout:   embedTimeout,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the struct tags and the cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return apperrors.NewConfigurationError("invalid configuration", err)
	}
	if c.Embedding.Provider == "openai" && c.Embedding.APIKey == "" && c.Embedding.BaseURL == "" {
		return apperrors.NewConfigurationError("openai embeddings need OPENAI_API_KEY or OPENAI_BASE_URL", nil)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperrors.NewConfigurationError(fmt.Sprintf("%s must be an integer", key), err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, apperrors.NewConfigurationError(fmt.Sprintf("%s must be a duration", key), err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
