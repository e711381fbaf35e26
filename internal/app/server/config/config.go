package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath = ".env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultRunAddress        = ":8080"
	defaultMigrationsPath    = "migrations/postgres"
	defaultSessionTTL        = 24 * time.Hour
	defaultSummarizerTimeout = 30 * time.Second
)

type Config struct {
	Env        string
	DB         db
	Server     server
	Logger     logger
	Session    session
	Summarizer summarizer
}

type db struct {
	Driver      string `env:"DATABASE_DRIVER"`
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress     string   `env:"RUN_ADDRESS"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type session struct {
	TTL time.Duration `env:"SESSION_TTL"`
}

type summarizer struct {
	URL     string        `env:"SUMMARIZER_URL"`
	APIKey  string        `env:"SUMMARIZER_API_KEY"`
	Timeout time.Duration `env:"SUMMARIZER_TIMEOUT"`
}

// MustLoad читает .env (если есть) и переменные окружения.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return Load(viper.New())
}

// Load собирает конфигурацию из переданного экземпляра viper.
func Load(v *viper.Viper) *Config {
	v.AutomaticEnv()

	v.SetDefault("app_env", EnvProd)
	v.SetDefault("run_address", defaultRunAddress)
	v.SetDefault("database_driver", DriverPostgres)
	v.SetDefault("migrations_path", defaultMigrationsPath)
	v.SetDefault("log_level", "info")
	v.SetDefault("session_ttl", defaultSessionTTL)
	v.SetDefault("summarizer_timeout", defaultSummarizerTimeout)
	v.SetDefault("cors_allowed_origins", "*")

	return &Config{
		Env: v.GetString("app_env"),
		DB: db{
			Driver:      strings.ToLower(v.GetString("database_driver")),
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: server{
			RunAddress:     v.GetString("run_address"),
			AllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		},
		Logger:  logger{LogLevel: v.GetString("log_level")},
		Session: session{TTL: v.GetDuration("session_ttl")},
		Summarizer: summarizer{
			URL:     v.GetString("summarizer_url"),
			APIKey:  v.GetString("summarizer_api_key"),
			Timeout: v.GetDuration("summarizer_timeout"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
