// cmd/client/cmd/auth/login.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"querytrack/cmd/client/cmd/types"
	"querytrack/cmd/client/cmd/ui"
)

var loginFlag string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему QueryTrack",
	Long: `Аутентификация на сервере QueryTrack.

После входа токен сохраняется локально для последующих операций.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		login := loginFlag
		if login == "" {
			if login, err = ui.Prompt("Login: "); err != nil {
				return err
			}
		}

		password, err := ui.Secret("Пароль: ")
		if err != nil {
			return err
		}

		if err := app.Login(cmd.Context(), login, password); err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		fmt.Println(ui.Success("✅ Вход выполнен успешно!"))
		return nil
	},
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		if err := app.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Println(ui.Success("✓ Сессия завершена"))
		return nil
	},
}

var WhoAmICmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать текущего пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		p, err := app.WhoAmI(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s\n", ui.Header("Login:"), p.Login)
		fmt.Printf("ID:     %s\n", ui.Muted(p.UserID))
		fmt.Printf("С:      %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginFlag, "login", "l", "", "логин пользователя")
}
