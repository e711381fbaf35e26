// cmd/client/cmd/query/list.go
package query

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"querytrack/cmd/client/cmd/types"
	"querytrack/cmd/client/cmd/ui"
	"querytrack/internal/domain/query"
)

var (
	listStatus string
	listSearch string
	listFormat string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать список запросов",
	Long: `Показывает запросы, новые первыми.

Примеры:
  querytrack query list
  querytrack query list --status pending
  querytrack query list --search "login page" --format json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		queries, err := app.ListQueries(cmd.Context(), listStatus, listSearch)
		if err != nil {
			return err
		}

		switch listFormat {
		case "json":
			return printJSON(os.Stdout, queries)
		case "table":
			if len(queries) == 0 {
				fmt.Println("Запросы не найдены")
				return nil
			}
			printTable(os.Stdout, queries)
			fmt.Printf("\nВсего: %d\n", len(queries))
			return nil
		default:
			return fmt.Errorf("неизвестный формат %q (table, json)", listFormat)
		}
	},
}

func printJSON(w io.Writer, queries []query.Query) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(queries)
}

func printTable(out io.Writer, queries []query.Query) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tЗАГОЛОВОК\tТИП\tСТАТУС\tПРИОРИТЕТ\tСОЗДАН")

	for _, q := range queries {
		typeName := q.TypeName()
		if typeName == "" {
			typeName = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(q.ID),
			ui.Truncate(q.Title, 40),
			typeName,
			ui.Status(q.Status),
			ui.Priority(q.Priority),
			q.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	_ = w.Flush()
}

func init() {
	ListCmd.Flags().StringVarP(&listStatus, "status", "s", "all", "фильтр по статусу (all, pending, in_progress, resolved, closed)")
	ListCmd.Flags().StringVarP(&listSearch, "search", "q", "", "поиск по заголовку и описанию")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "формат вывода (table, json)")
}
