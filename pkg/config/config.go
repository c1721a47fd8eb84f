package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Cache     CacheConfig
	Scheduler SchedulerConfig
	Notifier  NotifierConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig governs the Redis response cache for catalogue listings.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// SchedulerConfig tunes the schedule assembly engine.
type SchedulerConfig struct {
	// ExhaustThreshold bounds the component cross-product size the engine
	// is willing to enumerate exhaustively.
	ExhaustThreshold int
	// MaxSchedules caps the number of valid schedules collected during
	// backtracking before the search stops descending.
	MaxSchedules int
	// BiweeklyPolicy decides how alternating-week meetings reconcile:
	// "parity", "always", or "never".
	BiweeklyPolicy string
	// Timeout is the per-request deadline around schedule assembly.
	Timeout time.Duration
}

// NotifierConfig configures the best-effort webhook dispatcher.
type NotifierConfig struct {
	WebhookURL string
	Workers    int
	MaxRetries int
	Timeout    time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_RESPONSE_CACHE"),
		TTL:     parseDuration(v.GetString("RESPONSE_CACHE_TTL"), time.Hour),
	}

	cfg.Scheduler = SchedulerConfig{
		ExhaustThreshold: v.GetInt("SCHEDULER_EXHAUST_THRESHOLD"),
		MaxSchedules:     v.GetInt("SCHEDULER_MAX_SCHEDULES"),
		BiweeklyPolicy:   v.GetString("SCHEDULER_BIWEEKLY_POLICY"),
		Timeout:          parseDuration(v.GetString("SCHEDULER_TIMEOUT"), 20*time.Second),
	}

	cfg.Notifier = NotifierConfig{
		WebhookURL: v.GetString("NOTIFIER_WEBHOOK_URL"),
		Workers:    v.GetInt("NOTIFIER_WORKERS"),
		MaxRetries: v.GetInt("NOTIFIER_MAX_RETRIES"),
		Timeout:    parseDuration(v.GetString("NOTIFIER_TIMEOUT"), 10*time.Second),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "cataloguedb")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_RESPONSE_CACHE", false)
	v.SetDefault("RESPONSE_CACHE_TTL", "1h")

	v.SetDefault("SCHEDULER_EXHAUST_THRESHOLD", 500000)
	v.SetDefault("SCHEDULER_MAX_SCHEDULES", 125000)
	v.SetDefault("SCHEDULER_BIWEEKLY_POLICY", "parity")
	v.SetDefault("SCHEDULER_TIMEOUT", "20s")

	v.SetDefault("NOTIFIER_WEBHOOK_URL", "")
	v.SetDefault("NOTIFIER_WORKERS", 1)
	v.SetDefault("NOTIFIER_MAX_RETRIES", 2)
	v.SetDefault("NOTIFIER_TIMEOUT", "10s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
