// cmd/client/cmd/query/status.go
package query

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"querytrack/cmd/client/cmd/types"
	"querytrack/cmd/client/cmd/ui"
	"querytrack/internal/domain/query"
)

var StatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Сменить статус запроса",
	Long: `Меняет статус запроса: pending, in_progress, resolved, closed.
При первом переходе в resolved или closed фиксируется время решения.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		id, err := resolveID(cmd.Context(), app, args[0])
		if err != nil {
			return err
		}

		q, err := app.SetStatus(cmd.Context(), id, query.Status(strings.ToLower(args[1])))
		if err != nil {
			return fmt.Errorf("ошибка смены статуса: %w", err)
		}

		fmt.Printf("%s %s\n", ui.Success("✓ Новый статус:"), ui.Status(q.Status))
		return nil
	},
}

var deleteForce bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить запрос",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		id, err := resolveID(cmd.Context(), app, args[0])
		if err != nil {
			return err
		}

		if !deleteForce {
			answer, err := ui.Prompt(fmt.Sprintf("Удалить запрос %s? [y/N]: ", shortID(id)))
			if err != nil {
				return err
			}
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Println("Отменено")
				return nil
			}
		}

		if err := app.DeleteQuery(cmd.Context(), id); err != nil {
			return fmt.Errorf("ошибка удаления запроса: %w", err)
		}

		fmt.Println(ui.Success("✓ Запрос удален"))
		return nil
	},
}

var SummarizeCmd = &cobra.Command{
	Use:   "summarize <id>",
	Short: "Получить краткое описание запроса",
	Long:  `Запрашивает у сервера краткое описание запроса и сохраняет его в запросе.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		id, err := resolveID(cmd.Context(), app, args[0])
		if err != nil {
			return err
		}

		fmt.Println("Генерация описания...")
		text, err := app.Summarize(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("ошибка генерации описания: %w", err)
		}

		fmt.Println()
		fmt.Println(text)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "не спрашивать подтверждение")
}
