// cmd/client/cmd/query/export.go
package query

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"querytrack/cmd/client/cmd/types"
	"querytrack/cmd/client/cmd/ui"
)

var (
	exportFormat string
	exportDir    string
	exportStatus string
	exportSearch string
)

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Выгрузить запросы в CSV или xlsx",
	Long: `Выгружает отфильтрованные запросы в файл queries-YYYY-MM-DD.<csv|xlsx>.

Примеры:
  querytrack query export
  querytrack query export --format xlsx --status resolved --dir ~/reports`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		path, err := app.Export(cmd.Context(), strings.ToLower(exportFormat), exportDir, exportStatus, exportSearch)
		if err != nil {
			return fmt.Errorf("ошибка выгрузки: %w", err)
		}

		fmt.Printf("%s %s\n", ui.Success("✓ Файл сохранен:"), path)
		return nil
	},
}

var (
	reportFormat string
	reportDir    string
	reportStatus string
	reportSearch string
	reportPrint  bool
)

var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Построить сводный отчет по датам и типам",
	Long: `Строит сводку: строки - даты создания, колонки - типы, с итогами.
Без --format сводка выводится в терминал.

Примеры:
  querytrack query report
  querytrack query report --format html --print
  querytrack query report --format xlsx --dir ~/reports`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		if reportFormat == "" {
			summary, err := app.Summary(cmd.Context(), reportStatus, reportSearch)
			if err != nil {
				return err
			}
			if summary.GrandTotal == 0 {
				fmt.Println("Нет данных для отчета")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "Дата\t%s\tИтого\t\n", strings.Join(summary.Types, "\t"))
			for _, row := range summary.Rows() {
				fmt.Fprintf(w, "%s\t%s\t%d\t\n", row.Date, joinInts(row.Counts), row.Total)
			}
			fmt.Fprintf(w, "Итого\t%s\t%d\t\n", joinInts(summary.Totals()), summary.GrandTotal)
			return w.Flush()
		}

		path, err := app.Report(cmd.Context(), strings.ToLower(reportFormat), reportDir, reportStatus, reportSearch, reportPrint)
		if err != nil {
			return fmt.Errorf("ошибка построения отчета: %w", err)
		}

		fmt.Printf("%s %s\n", ui.Success("✓ Отчет сохранен:"), path)
		if reportPrint && reportFormat == "html" {
			fmt.Println("Отчет открыт в браузере для печати")
		}
		return nil
	},
}

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Количество запросов по типам",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		stats, err := app.Stats(cmd.Context())
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("Типы не созданы")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ТИП\tЦВЕТ\tЗАПРОСОВ")
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%s\t%d\n", s.Name, s.Color, s.Count)
		}
		return w.Flush()
	},
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, "\t")
}

func init() {
	ExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "формат файла (csv, xlsx)")
	ExportCmd.Flags().StringVar(&exportDir, "dir", ".", "директория для файла")
	ExportCmd.Flags().StringVarP(&exportStatus, "status", "s", "all", "фильтр по статусу")
	ExportCmd.Flags().StringVarP(&exportSearch, "search", "q", "", "поиск по заголовку и описанию")

	ReportCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "формат файла (html, xlsx); пусто - вывод в терминал")
	ReportCmd.Flags().StringVar(&reportDir, "dir", ".", "директория для файла")
	ReportCmd.Flags().StringVarP(&reportStatus, "status", "s", "all", "фильтр по статусу")
	ReportCmd.Flags().StringVarP(&reportSearch, "search", "q", "", "поиск по заголовку и описанию")
	ReportCmd.Flags().BoolVar(&reportPrint, "print", false, "открыть html-отчет для печати")
}
