package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env       string          `yaml:"env"`
	Web       WebConfig       `yaml:"web"`
	API       APIConfig       `yaml:"api"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Admin     AdminConfig     `yaml:"admin"`
	OAuth     OAuthConfig     `yaml:"oauth"`
	Assistant AssistantConfig `yaml:"assistant"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type WebConfig struct {
	Addr        string        `yaml:"addr"`
	DatabaseURL string        `yaml:"database_url"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
	BaseURL     string        `yaml:"base_url"`
}

type APIConfig struct {
	Addr           string   `yaml:"addr"`
	DatabaseURL    string   `yaml:"database_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type GatewayConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type AdminConfig struct {
	Username     string `yaml:"username"`
	// PasswordHash is a bcrypt hash. When empty, Password is hashed at startup.
	PasswordHash string `yaml:"password_hash"`
	Password     string `yaml:"password"`
}

type OAuthConfig struct {
	GoogleKey     string   `yaml:"google_key"`
	GoogleSecret  string   `yaml:"google_secret"`
	DiscordKey    string   `yaml:"discord_key"`
	DiscordSecret string   `yaml:"discord_secret"`
	SessionSecret string   `yaml:"session_secret"`
	AllowedEmails []string `yaml:"allowed_emails"`
}

type AssistantConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type RateLimitConfig struct {
	ChatPerMinute int `yaml:"chat_per_minute"`
	ChatBurst     int `yaml:"chat_burst"`
}

func Default() *Config {
	return &Config{
		Env: "development",
		Web: WebConfig{
			Addr:        ":8080",
			DatabaseURL: "pbvsi_web.db?_journal_mode=WAL",
			SessionTTL:  24 * time.Hour,
			BaseURL:     "http://localhost:8080",
		},
		API: APIConfig{
			Addr:           ":3000",
			DatabaseURL:    "pbvsi_api.db?_journal_mode=WAL",
			AllowedOrigins: []string{"*"},
		},
		Gateway: GatewayConfig{
			BaseURL: "http://localhost:3000/api",
			Timeout: 2000 * time.Millisecond,
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin",
		},
		Assistant: AssistantConfig{
			Model:   "gemini-2.5-flash",
			BaseURL: "https://generativelanguage.googleapis.com/",
			Timeout: 20 * time.Second,
		},
		RateLimit: RateLimitConfig{
			ChatPerMinute: 10,
			ChatBurst:     3,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when missing), then a .env file, then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v := os.Getenv(key); v != "" {
			var out []string
			for _, part := range strings.Split(v, ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
			*dst = out
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", key, err)
		}
		*dst = d
		return nil
	}
	num := func(key string, dst *int) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("ENV", &c.Env)
	str("WEB_ADDR", &c.Web.Addr)
	str("WEB_DATABASE_URL", &c.Web.DatabaseURL)
	str("WEB_BASE_URL", &c.Web.BaseURL)
	str("API_ADDR", &c.API.Addr)
	str("API_DATABASE_URL", &c.API.DatabaseURL)
	list("API_ALLOWED_ORIGINS", &c.API.AllowedOrigins)
	str("API_BASE_URL", &c.Gateway.BaseURL)
	str("ADMIN_USERNAME", &c.Admin.Username)
	str("ADMIN_PASSWORD", &c.Admin.Password)
	str("ADMIN_PASSWORD_HASH", &c.Admin.PasswordHash)
	str("GOOGLE_KEY", &c.OAuth.GoogleKey)
	str("GOOGLE_SECRET", &c.OAuth.GoogleSecret)
	str("DISCORD_KEY", &c.OAuth.DiscordKey)
	str("DISCORD_SECRET", &c.OAuth.DiscordSecret)
	str("SESSION_SECRET", &c.OAuth.SessionSecret)
	list("ADMIN_EMAILS", &c.OAuth.AllowedEmails)
	str("GEMINI_API_KEY", &c.Assistant.APIKey)
	str("GEMINI_MODEL", &c.Assistant.Model)

	if err := dur("SESSION_TTL", &c.Web.SessionTTL); err != nil {
		return err
	}
	if err := dur("API_TIMEOUT", &c.Gateway.Timeout); err != nil {
		return err
	}
	if err := dur("GEMINI_TIMEOUT", &c.Assistant.Timeout); err != nil {
		return err
	}
	if err := num("CHAT_RATE_PER_MINUTE", &c.RateLimit.ChatPerMinute); err != nil {
		return err
	}
	return num("CHAT_RATE_BURST", &c.RateLimit.ChatBurst)
}

func (c *Config) IsProduction() bool { return c.Env == "production" }
