package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"marketplace-console/internal/domain"
)

const (
	AuthModeNone    = "none"
	AuthModeAPIKey  = "api_key"
	AuthModeCognito = "cognito"
)

type Config struct {
	BackendBaseURL    string        `yaml:"backend_base_url" validate:"required,url"`
	Port              string        `yaml:"port" validate:"required,numeric"`
	LogLevel          string        `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	NotifyDuration    time.Duration `yaml:"notify_duration" validate:"gt=0"`
	BackendTimeout    time.Duration `yaml:"backend_timeout" validate:"gte=0"`
	AuthMode          string        `yaml:"auth_mode" validate:"oneof=none api_key cognito"`
	ConsoleAPIKey     string        `yaml:"console_api_key" validate:"required_if=AuthMode api_key"`
	CognitoUserPoolID string        `yaml:"cognito_user_pool_id" validate:"required_if=AuthMode cognito"`
	AWSRegion         string        `yaml:"aws_region" validate:"required_if=AuthMode cognito"`
	XRayEnabled       bool          `yaml:"xray_enabled"`
}

func Defaults() Config {
	return Config{
		BackendBaseURL: domain.DefaultBaseURL,
		Port:           "8080",
		LogLevel:       "info",
		NotifyDuration: 2 * time.Second,
		AuthMode:       AuthModeNone,
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONSOLE_CONFIG, and then environment variables, in that order.
func Load() (Config, error) {
	cfg := Defaults()
	if path := strings.TrimSpace(os.Getenv("CONSOLE_CONFIG")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	env := &envReader{}
	cfg.BackendBaseURL = envOr("BACKEND_BASE_URL", cfg.BackendBaseURL)
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.LogLevel = strings.ToLower(envOr("LOG_LEVEL", cfg.LogLevel))
	cfg.NotifyDuration = env.durationOr("NOTIFY_DURATION", cfg.NotifyDuration)
	cfg.BackendTimeout = env.durationOr("BACKEND_TIMEOUT", cfg.BackendTimeout)
	cfg.AuthMode = strings.ToLower(envOr("AUTH_MODE", cfg.AuthMode))
	cfg.ConsoleAPIKey = envOr("CONSOLE_API_KEY", cfg.ConsoleAPIKey)
	cfg.CognitoUserPoolID = envOr("COGNITO_USER_POOL_ID", cfg.CognitoUserPoolID)
	cfg.AWSRegion = envOr("AWS_REGION", cfg.AWSRegion)
	cfg.XRayEnabled = env.boolOr("XRAY_ENABLED", cfg.XRayEnabled)
	if len(env.invalid) > 0 {
		return Config{}, fmt.Errorf("invalid env vars: %s", strings.Join(env.invalid, ", "))
	}
	cfg.BackendBaseURL = strings.TrimRight(cfg.BackendBaseURL, "/")

	if err := validator.New().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			invalid := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				invalid = append(invalid, fe.Field())
			}
			return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(invalid, ", "))
		}
		return Config{}, fmt.Errorf("validate configuration: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

// envReader parses typed env values, recording keys whose values do not parse.
type envReader struct {
	invalid []string
}

func (r *envReader) durationOr(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		r.invalid = append(r.invalid, key)
		return fallback
	}
	return duration
}

func (r *envReader) boolOr(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		r.invalid = append(r.invalid, key)
		return fallback
	}
}
