// cmd/client/cmd/root.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"querytrack/cmd/client/cmd/types"
	"querytrack/cmd/client/cmd/ui"
	"querytrack/internal/app/client"
	"querytrack/internal/app/client/config"
	serverconfig "querytrack/internal/app/server/config"
	"querytrack/internal/utils/logger"
)

var (
	cfgFile   string
	cfg       *config.Config
	debug     bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "querytrack",
	Short: "QueryTrack - клиент для учета запросов",
	Long: `QueryTrack - консольный клиент сервиса учета запросов.

Позволяет вести запросы и их типы, искать и фильтровать их,
импортировать таблицы, выгружать CSV/xlsx и строить сводные отчеты
по датам и типам.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", ui.Failure("Ошибка:"), ui.Notify(err))
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log := newLogger()

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(types.WithApp(cmd.Context(), app))
	return nil
}

// newLogger - без --debug клиент молчит, чтобы логи не смешивались с выводом команд.
func newLogger() *slog.Logger {
	if !debug {
		return logger.Discard()
	}
	return logger.New(serverconfig.EnvLocal)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		viper.AddConfigPath(filepath.Join(home, ".querytrack"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	return config.MustLoad(), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера QueryTrack (host:port)")
}
