// cmd/client/cmd/query/import.go
package query

import (
	"fmt"

	"github.com/spf13/cobra"

	"querytrack/cmd/client/cmd/types"
	"querytrack/cmd/client/cmd/ui"
)

var ImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Импортировать запросы из таблицы",
	Long: `Импортирует запросы с первого листа xlsx-файла.

Первая строка - заголовки. Распознаются колонки title, description,
type, status, priority (без учета регистра), остальные игнорируются.
Тип сопоставляется по имени; неизвестный тип оставляет запрос без типа.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		n, err := app.ImportFile(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка импорта: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("✅ Импортировано запросов: %d", n)))
		return nil
	},
}
