package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/eventpass/internal/passes/service"
	"github.com/aussiebroadwan/eventpass/pkg/jwtx"
	"github.com/aussiebroadwan/eventpass/pkg/whatsapp"
)

type Config struct {
	JWTSecret string        // Required: HMAC secret for bearer tokens, at least 32 bytes
	Issuer    string        // Optional: issuer claim for tokens (default: eventpass)
	TokenTTL  time.Duration // Optional: bearer token lifetime (default: 24h)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./passes.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 3000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	OnePassPerUser bool // Optional: reject a second pass for the same user and event (default: false)

	WhatsAppAPIURL        string // Optional: Cloud API base URL
	WhatsAppPhoneNumberID string // Optional: sender phone number id; delivery is disabled without it
	WhatsAppAccessToken   string // Optional: Cloud API bearer token
	WhatsAppTemplate      string // Optional: template sent when no image URL is available (default: pass_notification)

	PublicBaseURL string        // Optional: externally reachable base URL for /media links; template-only delivery without it
	MediaDir      string        // Optional: directory for uploaded pass images (default: ./media)
	RedisAddr     string        // Optional: keep uploaded images in redis instead of MediaDir
	RedisPassword string        // Optional
	MediaTTL      time.Duration // Optional: lifetime of uploaded images (default: 24h)
	TempDir       string        // Optional: scratch directory for rendered cards (default: os.TempDir())

	DispatchMinDelay time.Duration // Optional: minimum pause between batch sends (default: 1s)
	DispatchMaxDelay time.Duration // Optional: maximum pause between batch sends (default: 4s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret: os.Getenv("JWT_SECRET"),
		Issuer:    getEnvOrDefault("JWT_ISSUER", "eventpass"),
		TokenTTL:  getEnvDurationOrDefault("TOKEN_TTL", jwtx.DefaultTokenTTL),

		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "passes.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 3000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		OnePassPerUser: getEnvBoolOrDefault("ONE_PASS_PER_USER", false),

		WhatsAppAPIURL:        getEnvOrDefault("WHATSAPP_API_URL", "https://graph.facebook.com/v17.0"),
		WhatsAppPhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
		WhatsAppAccessToken:   os.Getenv("WHATSAPP_ACCESS_TOKEN"),
		WhatsAppTemplate:      getEnvOrDefault("WHATSAPP_TEMPLATE", whatsapp.DefaultTemplate),

		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		MediaDir:      getEnvOrDefault("MEDIA_DIR", "media"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		MediaTTL:      getEnvDurationOrDefault("MEDIA_TTL", 24*time.Hour),
		TempDir:       getEnvOrDefault("TEMP_DIR", os.TempDir()),

		DispatchMinDelay: getEnvDurationOrDefault("DISPATCH_MIN_DELAY", service.DefaultMinDelay),
		DispatchMaxDelay: getEnvDurationOrDefault("DISPATCH_MAX_DELAY", service.DefaultMaxDelay),
	}
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Validate reports the first setting the service cannot start with.
func (c Config) Validate() error {
	if len(c.JWTSecret) < jwtx.MinSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", jwtx.MinSecretLen)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if c.DispatchMinDelay < 0 || c.DispatchMaxDelay < c.DispatchMinDelay {
		return fmt.Errorf("DISPATCH_MIN_DELAY %s and DISPATCH_MAX_DELAY %s do not form a range",
			c.DispatchMinDelay, c.DispatchMaxDelay)
	}
	return nil
}

// WhatsAppEnabled reports whether outbound delivery is configured.
func (c Config) WhatsAppEnabled() bool {
	return c.WhatsAppPhoneNumberID != "" && c.WhatsAppAccessToken != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
