package report

import "time"

// ExportFileName - имя файла плоской выгрузки, например queries-2024-01-05.csv.
func ExportFileName(ext string, now time.Time) string {
	return "queries-" + now.Format(dateLayout) + "." + ext
}

// SummaryFileName - имя файла сводного отчета, например query-summary-2024-01-05.xlsx.
func SummaryFileName(ext string, now time.Time) string {
	return "query-summary-" + now.Format(dateLayout) + "." + ext
}
