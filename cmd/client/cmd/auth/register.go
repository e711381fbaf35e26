// cmd/client/cmd/auth/register.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"querytrack/cmd/client/cmd/types"
	"querytrack/cmd/client/cmd/ui"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя на сервере QueryTrack.

Логин: 3-32 символа (буквы, цифры, '_', '-', '.').
Пароль: не короче 8 символов, заглавная и строчная буква, цифра и спецсимвол.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("=== Регистрация нового пользователя ===")
		fmt.Println()

		login, err := ui.Prompt("Login: ")
		if err != nil {
			return err
		}

		password, err := ui.Secret("Пароль: ")
		if err != nil {
			return err
		}
		passwordConfirm, err := ui.Secret("Повторите пароль: ")
		if err != nil {
			return err
		}

		if password != passwordConfirm {
			return fmt.Errorf("пароли не совпадают")
		}

		fmt.Println("Регистрация...")
		if _, err := app.Register(cmd.Context(), login, password); err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Println()
		fmt.Println(ui.Success("✅ Регистрация успешно завершена!"))
		fmt.Println("Теперь вы можете войти в систему: querytrack auth login")

		return nil
	},
}
