package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"aved-web"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`
	// Directory holding the images/ tree served under /images
	PublicDir string `env:"PUBLIC_DIR" envDefault:"public"`

	// Backend content API
	BackendBaseURL string        `env:"BACKEND_BASE_URL" envDefault:"http://localhost:1900/api/v1"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`

	// Cache Configuration. An empty REDIS_URL selects the in-memory store.
	RedisURL        string        `env:"REDIS_URL"`
	ContentCacheTTL time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"5m"`
	SubmitGuardTTL  time.Duration `env:"SUBMIT_GUARD_TTL" envDefault:"30s"`

	// Static pages are refreshed in the background this often. Zero disables it.
	ContentWarmInterval time.Duration `env:"CONTENT_WARM_INTERVAL" envDefault:"4m"`

	// reCAPTCHA Configuration. Verification is skipped when the secret is empty.
	RecaptchaSecretKey string  `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaSiteKey   string  `env:"RECAPTCHA_SITE_KEY"`
	RecaptchaMinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`

	// Telegram alerts for new inquiries. Disabled unless both are set.
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`

	// Contact form limits
	ContactRateRPS   int `env:"CONTACT_RATE_RPS" envDefault:"1"`
	ContactRateBurst int `env:"CONTACT_RATE_BURST" envDefault:"5"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Company contact details shown on the contact-us page
	Support SupportConfig `envPrefix:"SUPPORT_"`
}

// SupportConfig holds the public contact channels of the company
type SupportConfig struct {
	Email    string   `env:"EMAIL" envDefault:"info@aved-sa.com"`
	Phones   []string `env:"PHONES" envSeparator:"," envDefault:"+966 56 658 9443,+966 53 111 3537"`
	Location string   `env:"LOCATION" envDefault:"Jeddah | Prince Sultan Rd, AVED Building"`
	MapEmbed string   `env:"MAP_EMBED_URL"`
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overrides variables that are already set
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds the configuration from the current process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.BackendBaseURL = strings.TrimRight(cfg.BackendBaseURL, "/")
	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL must not be empty")
	}
	if cfg.ContactRateRPS <= 0 || cfg.ContactRateBurst <= 0 {
		return nil, fmt.Errorf("contact rate limit must be positive (rps=%d burst=%d)", cfg.ContactRateRPS, cfg.ContactRateBurst)
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/web.log"
		} else {
			cfg.LogFile = "./logs/web.log"
		}
	}

	return cfg, nil
}
