package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port        int              `json:"port"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	LogConfig   logger.LogConfig `json:"log_config"`
	Database    DatabaseConfig   `json:"database"`
	Redis       RedisConfig      `json:"redis"`
	Resend      ResendConfig     `json:"resend"`
	OTP         OTPConfig        `json:"otp"`
	ReportStore FileStoreConfig  `json:"report_store"`
	CORSOrigins []string         `json:"cors_origins"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// ResendConfig configures the transactional email provider. The send interval
// is the process-wide pacing of the outbound queue: one send per interval.
// Running more than one instance of this service against the same queue
// breaks that pacing and the FIFO ordering guarantee.
type ResendConfig struct {
	APIURL              string `json:"api_url"`
	APIKey              string `json:"api_key"`
	SenderEmail         string `json:"sender_email"`
	SendIntervalSeconds int    `json:"send_interval_seconds"`
	TimeoutSeconds      int    `json:"timeout_seconds"`
}

func (c ResendConfig) SendInterval() time.Duration {
	return time.Duration(c.SendIntervalSeconds) * time.Second
}

func (c ResendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type OTPConfig struct {
	ExpirationMinutes    int `json:"expiration_minutes"`
	RequestWindowSeconds int `json:"request_window_seconds"`
}

func (c OTPConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationMinutes) * time.Minute
}

// RequestWindow is the minimum gap enforced between code requests from the
// same client for the same route.
func (c OTPConfig) RequestWindow() time.Duration {
	return time.Duration(c.RequestWindowSeconds) * time.Second
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis.addr is required")
	}
	if cfg.Resend.APIURL == "" {
		cfg.Resend.APIURL = "https://api.resend.com/emails"
	}
	if cfg.Resend.APIKey == "" {
		return nil, fmt.Errorf("resend.api_key is required")
	}
	if cfg.Resend.SenderEmail == "" {
		return nil, fmt.Errorf("resend.sender_email is required")
	}
	if cfg.Resend.SendIntervalSeconds == 0 {
		cfg.Resend.SendIntervalSeconds = 2
	}
	if cfg.Resend.TimeoutSeconds == 0 {
		cfg.Resend.TimeoutSeconds = 30
	}
	if cfg.OTP.ExpirationMinutes == 0 {
		cfg.OTP.ExpirationMinutes = 5
	}
	if cfg.OTP.RequestWindowSeconds == 0 {
		cfg.OTP.RequestWindowSeconds = 60
	}
	if cfg.ReportStore.Type == "" {
		cfg.ReportStore.Type = "local"
		cfg.ReportStore.Data = map[string]interface{}{"dir": "./reports"}
	}
	return &cfg, nil
}
