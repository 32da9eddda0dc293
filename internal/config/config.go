package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"moneroreq/internal/codec/envelope"
	"moneroreq/internal/domain/request"
	"moneroreq/internal/paymentcode"
	"moneroreq/internal/validation"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port string
	Env  string

	DB    DBConfig
	Redis RedisConfig

	// JWTSecret enables bearer auth on the issuing endpoint when set.
	JWTSecret   string
	CORSOrigins string

	DefaultLabel    string
	DefaultVersion  string
	WalletPolicy    validation.WalletPolicy
	MaxPayloadBytes int64
}

type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the configuration from the environment. Call LoadEnv first
// to pick up a .env file.
func Load() *Config {
	return &Config{
		Port: GetEnv("PORT", "3000"),
		Env:  GetEnv("ENV", "development"),
		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "moneroreq"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
			TTL:      GetDurationEnv("CACHE_TTL", 24*time.Hour),
		},
		JWTSecret:       GetEnv("JWT_SECRET", ""),
		CORSOrigins:     GetEnv("CORS_ORIGINS", "*"),
		DefaultLabel:    GetEnv("DEFAULT_LABEL", request.DefaultLabel),
		DefaultVersion:  GetEnv("DEFAULT_VERSION", envelope.VersionV1),
		MaxPayloadBytes: int64(GetIntEnv("MAX_PAYLOAD_BYTES", envelope.DefaultMaxPayloadBytes)),
		WalletPolicy: validation.WalletPolicy{
			AllowStandard:   GetBoolEnv("ALLOW_STANDARD_ADDRESS", true),
			AllowIntegrated: GetBoolEnv("ALLOW_INTEGRATED_ADDRESS", true),
			AllowSubaddress: GetBoolEnv("ALLOW_SUBADDRESS", false),
		},
	}
}

// DSN returns the postgres connection string.
func (c DBConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode
}

// PaymentCode returns the codec configuration. Clock and random source are
// left nil so the codec picks the system ones.
func (c *Config) PaymentCode() paymentcode.Config {
	pc := paymentcode.DefaultConfig()
	pc.DefaultLabel = c.DefaultLabel
	pc.DefaultVersion = c.DefaultVersion
	pc.WalletPolicy = c.WalletPolicy
	if c.MaxPayloadBytes > 0 {
		pc.MaxPayloadBytes = c.MaxPayloadBytes
	}
	return pc
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AuthEnabled reports whether issuing requires a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return defaultVal
}

// GetDurationEnv accepts Go durations ("90s") or bare seconds.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
