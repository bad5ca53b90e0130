package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port     string `mapstructure:"port" validate:"required,numeric"`
	GinMode  string `mapstructure:"gin_mode" validate:"oneof=debug release test"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	// LogFormat is "json" or "console".
	LogFormat string `mapstructure:"log_format" validate:"oneof=json console"`

	KnowledgeBaseSource string `mapstructure:"kb_source" validate:"oneof=file postgres"`
	KnowledgeBasePath   string `mapstructure:"kb_path"`

	EnableDB    bool   `mapstructure:"enable_db"`
	DatabaseURL string `mapstructure:"database_url"`

	SessionBackend string        `mapstructure:"session_backend" validate:"oneof=memory redis"`
	SessionTTL     time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
	RedisAddress   string        `mapstructure:"redis_addr" validate:"required_if=SessionBackend redis"`
	RedisPassword  string        `mapstructure:"redis_password"`
	RedisDB        int           `mapstructure:"redis_db" validate:"gte=0"`

	StaticRoot string `mapstructure:"static_root"`
}

// NeedsDB reports whether a Postgres connection must be opened at startup.
func (c *Config) NeedsDB() bool {
	return c.EnableDB || c.KnowledgeBaseSource == "postgres"
}

var defaults = map[string]interface{}{
	"port":            "8080",
	"gin_mode":        "release",
	"log_level":       "info",
	"log_format":      "json",
	"kb_source":       "file",
	"kb_path":         "knowledge_base.json",
	"enable_db":       false,
	"database_url":    "",
	"session_backend": "memory",
	"session_ttl":     "24h",
	"redis_addr":      "",
	"redis_password":  "",
	"redis_db":        0,
	"static_root":     "",
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.KnowledgeBaseSource = strings.ToLower(strings.TrimSpace(cfg.KnowledgeBaseSource))
	cfg.SessionBackend = strings.ToLower(strings.TrimSpace(cfg.SessionBackend))

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}
	if cfg.KnowledgeBaseSource == "postgres" && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when KB_SOURCE=postgres")
	}
	if cfg.KnowledgeBaseSource == "file" && cfg.KnowledgeBasePath == "" {
		return fmt.Errorf("KB_PATH is required when KB_SOURCE=file")
	}
	return nil
}
