// cmd/client/cmd/init.go
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"querytrack/cmd/client/cmd/auth"
	"querytrack/cmd/client/cmd/qtype"
	"querytrack/cmd/client/cmd/query"
	"querytrack/cmd/client/cmd/types"
	"querytrack/cmd/client/cmd/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Проверить настройки клиента QueryTrack",
	Long: `Команда init выполняет первоначальную проверку клиента:
	1. Создает директорию конфигурации
	2. Проверяет соединение с сервером
	3. Показывает состояние сессии`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("=== Инициализация QueryTrack ===")
		fmt.Println()
		fmt.Printf("Директория конфигурации: %s\n", cfg.ConfigDir)
		fmt.Printf("Сервер: %s\n", cfg.BaseURL())

		fmt.Println("Проверка соединения с сервером...")
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := app.CheckConnection(ctx); err != nil {
			fmt.Printf("%s не удалось подключиться к серверу: %s\n", ui.Warning("Предупреждение:"), ui.Notify(err))
		} else {
			fmt.Println(ui.Success("✓ Соединение с сервером установлено"))
		}

		if s := app.Session(); s.Authenticated() {
			fmt.Printf("Вы вошли как %s\n", s.Login)
			return nil
		}

		fmt.Println()
		fmt.Println("Что дальше:")
		fmt.Println("1. Зарегистрируйтесь на сервере: querytrack auth register")
		fmt.Println("2. Войдите в систему: querytrack auth login")
		fmt.Println("3. Создайте первый запрос: querytrack query add")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.WhoAmICmd)

	rootCmd.AddCommand(query.QueryCmd)
	query.QueryCmd.AddCommand(query.ListCmd)
	query.QueryCmd.AddCommand(query.AddCmd)
	query.QueryCmd.AddCommand(query.EditCmd)
	query.QueryCmd.AddCommand(query.StatusCmd)
	query.QueryCmd.AddCommand(query.DeleteCmd)
	query.QueryCmd.AddCommand(query.SummarizeCmd)
	query.QueryCmd.AddCommand(query.ImportCmd)
	query.QueryCmd.AddCommand(query.ExportCmd)
	query.QueryCmd.AddCommand(query.ReportCmd)
	query.QueryCmd.AddCommand(query.StatsCmd)

	rootCmd.AddCommand(qtype.TypeCmd)
	qtype.TypeCmd.AddCommand(qtype.ListCmd)
	qtype.TypeCmd.AddCommand(qtype.AddCmd)
	qtype.TypeCmd.AddCommand(qtype.DeleteCmd)
}
