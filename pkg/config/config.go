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

	Upstream   UpstreamConfig
	Allocation AllocationConfig
	Documents  DocumentsConfig
	Exports    ExportsConfig
	Redis      RedisConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Log        LogConfig
}

// UpstreamConfig points the gateway at the hostel REST service.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
	// ReportsPath is the authoritative allocation report path. The legacy
	// web client probed several candidate paths; here it is a single
	// configured value.
	ReportsPath string
}

// AllocationConfig tunes the allocation status watcher.
type AllocationConfig struct {
	PollInterval     time.Duration
	SnapshotCacheTTL time.Duration
}

// DocumentsConfig bounds upload validation performed before any upstream call.
type DocumentsConfig struct {
	PassportMaxBytes int64
	ReceiptMaxBytes  int64
}

// ExportsConfig controls locally rendered allocation reports.
type ExportsConfig struct {
	StorageDir string
	ResultTTL  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
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

	cfg.Upstream = UpstreamConfig{
		BaseURL:     strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout:     parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 30*time.Second),
		ReportsPath: v.GetString("UPSTREAM_REPORTS_PATH"),
	}

	cfg.Allocation = AllocationConfig{
		PollInterval:     parseDuration(v.GetString("ALLOCATION_POLL_INTERVAL"), 2*time.Second),
		SnapshotCacheTTL: parseDuration(v.GetString("ALLOCATION_SNAPSHOT_TTL"), 30*time.Second),
	}

	passportMax := v.GetInt64("DOCUMENTS_PASSPORT_MAX_BYTES")
	if passportMax <= 0 {
		passportMax = 2 * 1024 * 1024
	}
	receiptMax := v.GetInt64("DOCUMENTS_RECEIPT_MAX_BYTES")
	if receiptMax <= 0 {
		receiptMax = 5 * 1024 * 1024
	}
	cfg.Documents = DocumentsConfig{
		PassportMaxBytes: passportMax,
		ReceiptMaxBytes:  receiptMax,
	}

	cfg.Exports = ExportsConfig{
		StorageDir: v.GetString("EXPORTS_STORAGE_DIR"),
		ResultTTL:  parseDuration(v.GetString("EXPORTS_RESULT_TTL"), 24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{Secret: v.GetString("JWT_SECRET")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:5000/api")
	v.SetDefault("UPSTREAM_TIMEOUT", "30s")
	v.SetDefault("UPSTREAM_REPORTS_PATH", "/allocation/report")

	v.SetDefault("ALLOCATION_POLL_INTERVAL", "2s")
	v.SetDefault("ALLOCATION_SNAPSHOT_TTL", "30s")

	v.SetDefault("DOCUMENTS_PASSPORT_MAX_BYTES", 2*1024*1024)
	v.SetDefault("DOCUMENTS_RECEIPT_MAX_BYTES", 5*1024*1024)

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_RESULT_TTL", "24h")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
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
