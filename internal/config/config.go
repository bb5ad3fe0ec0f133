package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Billing BillingConfig
	SMS     SMSConfig
	S3      S3Config
	CORS    CORSConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
	MaxSessionsPerUser int           `mapstructure:"max_sessions_per_user"`
}

// BillingConfig holds the agricultural billing constants.
//
// Chargeable weight ADDS danda and tut back onto the base net weight; that
// is the domain rule for banana intake billing, not a sign error.
type BillingConfig struct {
	BoxWeightKg      float64 `mapstructure:"box_weight_kg"`
	DandaPercent     float64 `mapstructure:"danda_percent"`
	WeightScale      int     `mapstructure:"weight_scale"`
	MoneyScale       int     `mapstructure:"money_scale"`
	TrackOverpayment bool    `mapstructure:"track_overpayment"`
}

// SMSConfig holds SMS delivery settings.
type SMSConfig struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
}

// S3Config holds object storage settings for bill images.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the BANANABILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BANANABILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "bananabill")
	v.SetDefault("db.password", "bananabill_secret")
	v.SetDefault("db.name", "bananabill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "bananabill")
	v.SetDefault("jwt.max_sessions_per_user", 5)

	// Billing defaults
	v.SetDefault("billing.box_weight_kg", 1.0)
	v.SetDefault("billing.danda_percent", 0.07)
	v.SetDefault("billing.weight_scale", 2)
	v.SetDefault("billing.money_scale", 2)
	v.SetDefault("billing.track_overpayment", true)

	// SMS defaults
	v.SetDefault("sms.provider", "noop")
	v.SetDefault("sms.api_key", "")
	v.SetDefault("sms.base_url", "https://www.fast2sms.com/dev/bulkV2")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "bananabill-images")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "BANANABILL_SERVER_PORT",
		"server.read_timeout":       "BANANABILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "BANANABILL_SERVER_WRITE_TIMEOUT",
		"server.environment":        "BANANABILL_SERVER_ENVIRONMENT",
		"db.host":                   "BANANABILL_DB_HOST",
		"db.port":                   "BANANABILL_DB_PORT",
		"db.user":                   "BANANABILL_DB_USER",
		"db.password":               "BANANABILL_DB_PASSWORD",
		"db.name":                   "BANANABILL_DB_NAME",
		"db.sslmode":                "BANANABILL_DB_SSLMODE",
		"db.max_open":               "BANANABILL_DB_MAX_OPEN",
		"db.max_idle":               "BANANABILL_DB_MAX_IDLE",
		"jwt.secret":                "BANANABILL_JWT_SECRET",
		"jwt.access_expiry":         "BANANABILL_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":        "BANANABILL_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                "BANANABILL_JWT_ISSUER",
		"jwt.max_sessions_per_user": "BANANABILL_JWT_MAX_SESSIONS_PER_USER",
		"billing.box_weight_kg":     "BANANABILL_BILLING_BOX_WEIGHT_KG",
		"billing.danda_percent":     "BANANABILL_BILLING_DANDA_PERCENT",
		"billing.weight_scale":      "BANANABILL_BILLING_WEIGHT_SCALE",
		"billing.money_scale":       "BANANABILL_BILLING_MONEY_SCALE",
		"billing.track_overpayment": "BANANABILL_BILLING_TRACK_OVERPAYMENT",
		"sms.provider":              "BANANABILL_SMS_PROVIDER",
		"sms.api_key":               "BANANABILL_SMS_API_KEY",
		"sms.base_url":              "BANANABILL_SMS_BASE_URL",
		"s3.region":                 "BANANABILL_S3_REGION",
		"s3.bucket":                 "BANANABILL_S3_BUCKET",
		"s3.endpoint":               "BANANABILL_S3_ENDPOINT",
		"s3.access_key":             "BANANABILL_S3_ACCESS_KEY",
		"s3.secret_key":             "BANANABILL_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "BANANABILL_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":         "BANANABILL_S3_PRESIGN_EXPIRY",
		"cors.allowed_origins":      "BANANABILL_CORS_ALLOWED_ORIGINS",
		"log.level":                 "BANANABILL_LOG_LEVEL",
		"log.format":                "BANANABILL_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BANANABILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BANANABILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
		MaxSessionsPerUser: v.GetInt("jwt.max_sessions_per_user"),
	}
	cfg.Billing = BillingConfig{
		BoxWeightKg:      v.GetFloat64("billing.box_weight_kg"),
		DandaPercent:     v.GetFloat64("billing.danda_percent"),
		WeightScale:      v.GetInt("billing.weight_scale"),
		MoneyScale:       v.GetInt("billing.money_scale"),
		TrackOverpayment: v.GetBool("billing.track_overpayment"),
	}
	cfg.SMS = SMSConfig{
		Provider: v.GetString("sms.provider"),
		APIKey:   v.GetString("sms.api_key"),
		BaseURL:  v.GetString("sms.base_url"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
