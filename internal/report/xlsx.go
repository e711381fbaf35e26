package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheet  = "Queries"
	summarySheet = "Summary"
	totalLabel   = "Total"
)

// WriteXLSX пишет ту же выгрузку, что и WriteCSV, в виде книги xlsx.
func WriteXLSX(w io.Writer, rows []Row, loc *time.Location) error {
	f, err := newBook(exportSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := setRow(f, exportSheet, 1, toAny(exportHeader)); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, exportSheet, i+2, toAny(r.values(loc))); err != nil {
			return err
		}
	}

	return writeBook(f, w)
}

// WriteSummaryXLSX пишет матрицу с итоговой строкой и колонкой Total.
func WriteSummaryXLSX(w io.Writer, s Summary) error {
	f, err := newBook(summarySheet)
	if err != nil {
		return err
	}
	defer f.Close()

	header := []any{"Date"}
	for _, t := range s.Types {
		header = append(header, t)
	}
	header = append(header, totalLabel)
	if err := setRow(f, summarySheet, 1, header); err != nil {
		return err
	}

	line := 2
	for _, r := range s.Rows() {
		cells := []any{r.Date}
		for _, c := range r.Counts {
			cells = append(cells, c)
		}
		cells = append(cells, r.Total)
		if err := setRow(f, summarySheet, line, cells); err != nil {
			return err
		}
		line++
	}

	footer := []any{totalLabel}
	for _, c := range s.Totals() {
		footer = append(footer, c)
	}
	footer = append(footer, s.GrandTotal)
	if err := setRow(f, summarySheet, line, footer); err != nil {
		return err
	}

	return writeBook(f, w)
}

func newBook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, line int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", line, err)
	}
	return nil
}

func writeBook(f *excelize.File, w io.Writer) error {
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
