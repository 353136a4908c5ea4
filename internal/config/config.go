package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"
	defaultHTTPAddr  = ":8080"
	defaultDSN       = "gym.db"
)

type Config struct {
	AppEnv   string `yaml:"app_env" envconfig:"APP_ENV"`
	HTTPAddr string `yaml:"http_addr" envconfig:"HTTP_ADDR"`
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	DatabaseURL string `yaml:"database_url" envconfig:"DATABASE_URL"`

	JWTSecret string        `yaml:"-" envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `yaml:"jwt_ttl" envconfig:"JWT_TTL"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" envconfig:"CORS_ALLOWED_ORIGINS"`
	PhoneRegion        string   `yaml:"phone_region" envconfig:"PHONE_REGION"`

	ReminderInterval      time.Duration `yaml:"reminder_interval" envconfig:"REMINDER_INTERVAL"`
	ReminderWindow        time.Duration `yaml:"reminder_window" envconfig:"REMINDER_WINDOW"`
	DashboardPushInterval time.Duration `yaml:"dashboard_push_interval" envconfig:"DASHBOARD_PUSH_INTERVAL"`

	AuthRatePerMinute int `yaml:"auth_rate_per_minute" envconfig:"AUTH_RATE_PER_MINUTE"`
	AuthRateBurst     int `yaml:"auth_rate_burst" envconfig:"AUTH_RATE_BURST"`

	DevProxyAddr   string `yaml:"dev_proxy_addr" envconfig:"DEV_PROXY_ADDR"`
	DevProxyTarget string `yaml:"dev_proxy_target" envconfig:"DEV_PROXY_TARGET"`
}

func defaults() *Config {
	return &Config{
		AppEnv:   "dev",
		HTTPAddr: defaultHTTPAddr,
		LogLevel: "info",

		DatabaseURL: defaultDSN,

		JWTSecret: defaultJWTSecret,
		JWTTTL:    24 * time.Hour,

		CORSAllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		PhoneRegion: "KZ",

		ReminderInterval:      5 * time.Minute,
		ReminderWindow:        time.Hour,
		DashboardPushInterval: 15 * time.Second,

		AuthRatePerMinute: 30,
		AuthRateBurst:     10,

		DevProxyAddr:   ":8000",
		DevProxyTarget: "http://localhost:8080",
	}
}

// Load reads .env, then the optional YAML file named by CONFIG_FILE, then
// environment variables. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("REMINDER_INTERVAL must be > 0")
	}
	if c.ReminderWindow <= 0 {
		return fmt.Errorf("REMINDER_WINDOW must be > 0")
	}
	if c.DashboardPushInterval <= 0 {
		return fmt.Errorf("DASHBOARD_PUSH_INTERVAL must be > 0")
	}

	if c.AuthRatePerMinute <= 0 || c.AuthRateBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_PER_MINUTE and AUTH_RATE_BURST must be > 0")
	}

	if c.IsProd() {
		if isEmptyOrDefault(c.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func (c *Config) IsProd() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
