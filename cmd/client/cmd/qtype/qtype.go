// Package qtype - команды управления типами запросов.
package qtype

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"querytrack/cmd/client/cmd/types"
	"querytrack/cmd/client/cmd/ui"
)

var TypeCmd = &cobra.Command{
	Use:   "type",
	Short: "Управление типами запросов",
	Long:  `Типы группируют запросы и образуют колонки сводного отчета.`,
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать типы",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		list, err := app.Types(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("Типы не созданы")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tИМЯ\tЦВЕТ")
		for _, t := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Color)
		}
		return w.Flush()
	},
}

var addColor string

var AddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Создать тип",
	Long: `Создает тип запроса. Цвет задается в формате #RRGGBB.

Пример:
  querytrack type add Bug --color "#ef4444"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		t, err := app.AddType(cmd.Context(), args[0], addColor)
		if err != nil {
			return fmt.Errorf("ошибка создания типа: %w", err)
		}

		fmt.Printf("%s %s (%s)\n", ui.Success("✅ Тип создан:"), t.Name, t.ID)
		return nil
	},
}

var DeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Удалить тип",
	Long:  `Удаляет тип. Запросы этого типа остаются и становятся без типа.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		list, err := app.Types(cmd.Context())
		if err != nil {
			return err
		}

		id := args[0]
		for _, t := range list {
			if strings.EqualFold(t.Name, args[0]) {
				id = t.ID
				break
			}
		}

		if err := app.DeleteType(cmd.Context(), id); err != nil {
			return fmt.Errorf("ошибка удаления типа: %w", err)
		}

		fmt.Println(ui.Success("✓ Тип удален"))
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&addColor, "color", "c", "", "цвет типа (#RRGGBB)")
}
