package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

var exportHeader = []string{"Title", "Description", "Type", "Status", "Priority", "Created"}

func (r Row) values(loc *time.Location) []string {
	return []string{r.Title, r.Description, r.TypeName, r.Status, r.Priority, DateKey(r.Created, loc)}
}

// WriteCSV пишет плоскую выгрузку. Каждое значение оборачивается в кавычки,
// кавычки внутри значений не экранируются.
func WriteCSV(w io.Writer, rows []Row, loc *time.Location) error {
	var b strings.Builder

	b.WriteString(strings.Join(exportHeader, ","))
	for _, r := range rows {
		b.WriteByte('\n')
		for i, v := range r.values(loc) {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(v)
			b.WriteByte('"')
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
