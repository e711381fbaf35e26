package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress  = "localhost:8080"
	defaultLogLevel       = "info"
	defaultEnv            = "prod"
	defaultConfigDir      = ".querytrack"
	defaultRequestTimeout = 30 * time.Second
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	ServerAddress  string        `mapstructure:"server_address"`
	LogLevel       string        `mapstructure:"log_level"`
	ConfigDir      string        `mapstructure:"config_dir"`
	TokenPath      string        `mapstructure:"token_path"`
	EnableTLS      bool          `mapstructure:"enable_tls"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// MustLoad загружает конфигурацию клиента из .env и окружения.
func MustLoad() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	cfg, err := Load(viper.GetViper())
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	if err := os.MkdirAll(cfg.ConfigDir, 0700); err != nil {
		fmt.Printf("Ошибка создания директории конфигурации: %v\n", err)
	}

	return cfg
}

// Load собирает конфигурацию из v. Пути по умолчанию строятся от домашней директории.
func Load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("ENABLE_TLS", false)
	v.SetDefault("REQUEST_TIMEOUT", defaultRequestTimeout)

	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	tokenPath := v.GetString("TOKEN_PATH")
	if tokenPath == "" {
		tokenPath = filepath.Join(configDir, "session.json")
	}

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		ServerAddress:  v.GetString("SERVER_ADDRESS"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		TokenPath:      tokenPath,
		EnableTLS:      v.GetBool("ENABLE_TLS"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout должен быть положительным")
	}
	return nil
}

// BaseURL возвращает адрес сервера со схемой.
func (c *Config) BaseURL() string {
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + c.ServerAddress
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
