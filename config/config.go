package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config 进程级配置，启动时加载一次；签名密钥等必填项缺失直接失败
type Config struct {
	ServerPort   string        `validate:"required"`
	LogLevel     string        `validate:"required"`
	SecretKey    string        `validate:"required"`
	Algorithm    string        `validate:"required,oneof=HS256 HS384 HS512"`
	DatabaseURL  string        `validate:"required"`
	RedisAddr    string        `validate:"required"`
	TokenTTL     time.Duration `validate:"gt=0"`
	CacheTTL     time.Duration `validate:"gt=0"`
	SentryDSN    string
	OTLPEndpoint string
}

// Load 从环境变量（可选 .env 文件）读取配置并校验
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	// .env 不存在时忽略，仅用环境变量
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALGORITHM", "HS256")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("TOKEN_TTL", "1h")
	v.SetDefault("CACHE_TTL", "5m")

	cfg := &Config{
		ServerPort:   v.GetString("SERVER_PORT"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		SecretKey:    v.GetString("SECRET_KEY"),
		Algorithm:    v.GetString("ALGORITHM"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		RedisAddr:    v.GetString("REDIS_ADDR"),
		TokenTTL:     v.GetDuration("TOKEN_TTL"),
		CacheTTL:     v.GetDuration("CACHE_TTL"),
		SentryDSN:    v.GetString("SENTRY_DSN"),
		OTLPEndpoint: v.GetString("OTLP_ENDPOINT"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
