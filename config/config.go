package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is the development signing secret. Load refuses it in production.
const DefaultJWTSecret = "bulletproof-saas-secret-2025"

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName   string
	Env       string // development, staging, production
	Port      string
	GinMode   string
	APIPrefix string

	// JWT
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTTTL      time.Duration

	// Credentials and seed data
	BcryptCost      int
	SeedPassword    string
	SeedSampleNotes bool

	// Redis (rate limiting); empty RedisAddr disables it
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Rate limits, requests per window
	LoginRateLimit  int
	APIRateLimit    int
	RateLimitWindow time.Duration

	// CORS
	CORSAllowedOrigins string // comma-separated; empty allows any origin

	// Trust CF-Connecting-IP / X-Forwarded-For for the client address
	TrustProxyHeaders bool

	// RabbitMQ domain events; empty RabbitMQURL disables publishing
	RabbitMQURL         string
	RabbitMQEventsQueue string

	// Mailgun (event worker)
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// Email sending toggle
	MailSendEnabled bool

	// Debug metrics (/debug/vars and /metrics)
	DebugMetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName:   getenv("APP_NAME", "multitenant-notes"),
		Env:       getenv("APP_ENV", "development"),
		Port:      getenv("PORT", "8080"),
		GinMode:   getenv("GIN_MODE", "release"),
		APIPrefix: getenv("API_PREFIX", ""),

		JWTSecret:   getenv("JWT_SECRET", DefaultJWTSecret),
		JWTIssuer:   getenv("JWT_ISSUER", "bulletproof-saas-api"),
		JWTAudience: getenv("JWT_AUDIENCE", "saas-users"),
		JWTTTL:      getdur("JWT_TTL", 24*time.Hour),

		BcryptCost:      getint("BCRYPT_COST", 12),
		SeedPassword:    getenv("SEED_PASSWORD", "password"),
		SeedSampleNotes: getbool("SEED_SAMPLE_NOTES", false),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		LoginRateLimit:  getint("RATE_LIMIT_LOGIN", 50),
		APIRateLimit:    getint("RATE_LIMIT_API", 1000),
		RateLimitWindow: getdur("RATE_LIMIT_WINDOW", 15*time.Minute),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),
		TrustProxyHeaders:  getbool("TRUST_PROXY_HEADERS", false),

		RabbitMQURL:         getenv("RABBITMQ_URL", ""),
		RabbitMQEventsQueue: getenv("RABBITMQ_EVENTS_QUEUE", "notes-events"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		MailSendEnabled: getbool("MAIL_SEND_ENABLED", false),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),

		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// Validate rejects settings the server must not start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be set")
	}
	if c.Env == "production" && c.JWTSecret == DefaultJWTSecret {
		return errors.New("config: JWT_SECRET must be changed when APP_ENV=production")
	}
	if c.JWTTTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if c.SeedPassword == "" {
		return errors.New("config: SEED_PASSWORD must be set")
	}
	return nil
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

// MailgunConfigured reports whether all Mailgun settings are present.
func (c *Config) MailgunConfigured() bool {
	return c.MailgunDomain != "" && c.MailgunAPIKey != "" && c.MailgunSender != ""
}
