package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// NotifyConfig selects and tunes the notification adapters.
type NotifyConfig struct {
	NATSURL       string
	SubjectPrefix string
	Timeout       time.Duration
}

// DatabasePoolConfig sizes the pgx connection pool. Zero values keep the pgx defaults.
type DatabasePoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL     string
	DatabasePool    DatabasePoolConfig
	Port            string
	LogLevel        string
	LogFormat       string
	JWTSecret       string
	TokenTTL        time.Duration
	RateLimitIntake RateLimitConfig
	Notify          NotifyConfig
	AllowedOrigins  []string
	BodyLimit       string
	AutoMigrate     bool
	PhoneRegion     string
	// TrustedProxies lists the networks whose X-Forwarded-For header is believed. Empty means
	// the client address is always the TCP peer.
	TrustedProxies []*net.IPNet
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "json")),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		Notify: NotifyConfig{
			NATSURL:       os.Getenv("NATS_URL"),
			SubjectPrefix: getEnv("NOTIFY_SUBJECT_PREFIX", "bondspire.intake"),
			Timeout:       parseDuration(getEnv("NOTIFY_TIMEOUT", "5s"), 5*time.Second),
		},
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "https://wearebondspire.com")),
		BodyLimit:      getEnv("BODY_LIMIT", "64K"),
		AutoMigrate:    parseBool(getEnv("AUTO_MIGRATE", "true"), true),
		PhoneRegion:    strings.ToUpper(strings.TrimSpace(getEnv("PHONE_REGION", "US"))),
		DatabasePool: DatabasePoolConfig{
			MaxConns:        int32(parseInt(getEnv("DB_MAX_CONNS", "10"), 10)),
			MinConns:        int32(parseInt(getEnv("DB_MIN_CONNS", "0"), 0)),
			MaxConnLifetime: parseDuration(getEnv("DB_MAX_CONN_LIFETIME", "1h"), time.Hour),
			MaxConnIdleTime: parseDuration(getEnv("DB_MAX_CONN_IDLE_TIME", "15m"), 15*time.Minute),
		},
	}

	if cfg.DatabasePool.MinConns > cfg.DatabasePool.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", cfg.DatabasePool.MinConns, cfg.DatabasePool.MaxConns)
	}

	if len(cfg.PhoneRegion) != 2 {
		return nil, fmt.Errorf("invalid PHONE_REGION value: %q", cfg.PhoneRegion)
	}

	proxies, err := parseNetworks(os.Getenv("TRUSTED_PROXIES"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES value: %w", err)
	}
	cfg.TrustedProxies = proxies

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_INTAKE", "20/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_INTAKE value: %w", err)
	}
	cfg.RateLimitIntake = rl

	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return nil, fmt.Errorf("invalid LOG_FORMAT value: %q", cfg.LogFormat)
	}

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(input string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(input))
	if err != nil {
		return fallback
	}
	return b
}

func parseInt(input string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// parseNetworks reads a comma list of CIDR blocks or bare addresses.
func parseNetworks(input string) ([]*net.IPNet, error) {
	var out []*net.IPNet
	for _, entry := range splitList(input) {
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("not an IP address or CIDR: %q", entry)
			}
			bits := 128
			if ip4 := ip.To4(); ip4 != nil {
				ip, bits = ip4, 32
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, network)
	}
	return out, nil
}

func splitList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
