package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"querytrack/internal/domain/query"
)

var ErrNoData = errors.New("no data found in file")

// ReadImportRows читает первый лист книги. Первая строка - заголовок,
// нераспознанные колонки и пустые строки пропускаются.
func ReadImportRows(r io.Reader) ([]query.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoData
	}

	table, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(table) < 2 {
		return nil, ErrNoData
	}

	columns := make(map[int]query.Column, len(table[0]))
	for i, header := range table[0] {
		if c, ok := query.ParseColumn(header); ok {
			columns[i] = c
		}
	}

	rows := make([]query.ImportRow, 0, len(table)-1)
	for _, cells := range table[1:] {
		row := query.ImportRow{}
		for i, v := range cells {
			if c, ok := columns[i]; ok {
				row[c] = v
			}
		}
		if row.Blank() {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoData
	}

	return rows, nil
}
