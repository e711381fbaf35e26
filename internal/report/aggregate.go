package report

import (
	"sort"
	"strings"
	"time"
)

// Untyped - метка колонки для запросов без типа.
const Untyped = "Untyped"

const dateLayout = "2006-01-02"

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04Z07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	dateLayout,
}

// ParseTimestamp разбирает метку времени в одном из поддерживаемых форматов.
// Метки без зоны трактуются как время в loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// DateKey возвращает дату метки в формате YYYY-MM-DD или пустую строку,
// если метку разобрать не удалось.
func DateKey(created string, loc *time.Location) string {
	t, ok := ParseTimestamp(created, loc)
	if !ok {
		return ""
	}
	return t.Format(dateLayout)
}

// Summary - матрица дата x тип с итогами.
type Summary struct {
	Dates        []string                  `json:"dates"`
	Types        []string                  `json:"types"`
	Counts       map[string]map[string]int `json:"counts"`
	RowTotals    map[string]int            `json:"row_totals"`
	ColumnTotals map[string]int            `json:"column_totals"`
	GrandTotal   int                       `json:"grand_total"`
}

// SummaryRow - строка матрицы: счетчики идут в порядке Summary.Types.
type SummaryRow struct {
	Date   string
	Counts []int
	Total  int
}

// Aggregate группирует строки по дате создания (в loc) и типу.
// Строки с неразбираемой датой не учитываются.
func Aggregate(rows []Row, loc *time.Location) Summary {
	s := Summary{
		Dates:        []string{},
		Types:        []string{},
		Counts:       map[string]map[string]int{},
		RowTotals:    map[string]int{},
		ColumnTotals: map[string]int{},
	}

	for _, r := range rows {
		date := DateKey(r.Created, loc)
		if date == "" {
			continue
		}

		label := r.TypeName
		if label == "" {
			label = Untyped
		}

		if s.Counts[date] == nil {
			s.Counts[date] = map[string]int{}
			s.Dates = append(s.Dates, date)
		}
		if _, seen := s.ColumnTotals[label]; !seen {
			s.Types = append(s.Types, label)
		}

		s.Counts[date][label]++
		s.RowTotals[date]++
		s.ColumnTotals[label]++
		s.GrandTotal++
	}

	sort.Strings(s.Dates)
	sort.Strings(s.Types)

	return s
}

// Count возвращает число запросов за дату date с меткой типа label.
func (s Summary) Count(date, label string) int {
	return s.Counts[date][label]
}

// Rows раскладывает матрицу в порядке отображения.
func (s Summary) Rows() []SummaryRow {
	out := make([]SummaryRow, 0, len(s.Dates))
	for _, d := range s.Dates {
		row := SummaryRow{Date: d, Counts: make([]int, len(s.Types)), Total: s.RowTotals[d]}
		for i, label := range s.Types {
			row.Counts[i] = s.Count(d, label)
		}
		out = append(out, row)
	}
	return out
}

// Totals возвращает итоги по колонкам в порядке Summary.Types.
func (s Summary) Totals() []int {
	out := make([]int, len(s.Types))
	for i, label := range s.Types {
		out[i] = s.ColumnTotals[label]
	}
	return out
}
