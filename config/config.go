package config

import (
	"os"
	"strconv"
	"strings"
)

// AuthMode is how the admin surface is protected. It is chosen once at
// startup; handlers never branch on raw environment values.
type AuthMode int

const (
	// AuthModeOpen leaves the admin surface unauthenticated (demo mode).
	AuthModeOpen AuthMode = iota
	// AuthModeSharedSecret requires the X-Admin-Key header to match.
	AuthModeSharedSecret
)

type AdminAuth struct {
	Mode AuthMode
	Key  string
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != ""
}

// Config holds all process configuration, read from the environment
// exactly once in Load and injected everywhere else.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret      string
	JWTExpiryHours int

	AdminAuth AdminAuth

	AppURL              string
	StripeSecretKey     string
	StripeWebhookSecret string

	Twilio TwilioConfig

	AllowedOrigins []string
}

func Load() *Config {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DB_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTExpiryHours:      24,
		AppURL:              getEnv("APP_URL", "http://localhost:3000"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Twilio: TwilioConfig{
			AccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
			PhoneNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
			WhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		},
	}

	if h, err := strconv.Atoi(os.Getenv("JWT_EXPIRY_HOURS")); err == nil && h > 0 {
		cfg.JWTExpiryHours = h
	}

	if key := os.Getenv("ADMIN_API_KEY"); key != "" {
		cfg.AdminAuth = AdminAuth{Mode: AuthModeSharedSecret, Key: key}
	} else {
		cfg.AdminAuth = AdminAuth{Mode: AuthModeOpen}
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	return cfg
}

// Demo reports whether the admin surface runs unauthenticated.
func (c *Config) Demo() bool {
	return c.AdminAuth.Mode == AuthModeOpen
}

// StripeEnabled reports whether a live billing key is configured.
// The placeholder key ships in .env templates and counts as absent.
func (c *Config) StripeEnabled() bool {
	return c.StripeSecretKey != "" && c.StripeSecretKey != "sk_test_placeholder"
}

func (c *Config) StripeWebhookEnabled() bool {
	return c.StripeWebhookSecret != "" && c.StripeWebhookSecret != "whsec_placeholder"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
