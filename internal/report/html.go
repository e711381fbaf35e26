package report

import (
	"fmt"
	"html/template"
	"io"
	"time"
)

var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Query Summary Report</title>
<style>
  body { font-family: Arial, sans-serif; margin: 20px; color: #111827; }
  h1 { font-size: 20px; margin-bottom: 4px; }
  p.generated { color: #6b7280; font-size: 12px; margin-top: 0; }
  table { border-collapse: collapse; width: 100%; margin-top: 16px; }
  th, td { border: 1px solid #d1d5db; padding: 6px 10px; text-align: center; }
  th { background: #f3f4f6; }
  td.date { text-align: left; }
  tr.total td, td.total { font-weight: bold; background: #f9fafb; }
  @media print { body { margin: 0; } }
</style>
</head>
<body onload="window.print()">
<h1>Query Summary Report</h1>
<p class="generated">Generated {{.Generated}}</p>
<table>
  <thead>
    <tr><th>Date</th>{{range .Types}}<th>{{.}}</th>{{end}}<th>Total</th></tr>
  </thead>
  <tbody>
{{- range .Rows}}
    <tr><td class="date">{{.Date}}</td>{{range .Counts}}<td>{{.}}</td>{{end}}<td class="total">{{.Total}}</td></tr>
{{- end}}
    <tr class="total"><td class="date">Total</td>{{range .Totals}}<td>{{.}}</td>{{end}}<td>{{.GrandTotal}}</td></tr>
  </tbody>
</table>
</body>
</html>
`))

type summaryView struct {
	Generated  string
	Types      []string
	Rows       []SummaryRow
	Totals     []int
	GrandTotal int
}

// WriteSummaryHTML рендерит самодостаточный документ для печати:
// стили встроены, при загрузке вызывается window.print().
func WriteSummaryHTML(w io.Writer, s Summary, generatedAt time.Time) error {
	view := summaryView{
		Generated:  generatedAt.Format("2006-01-02 15:04"),
		Types:      s.Types,
		Rows:       s.Rows(),
		Totals:     s.Totals(),
		GrandTotal: s.GrandTotal,
	}

	if err := summaryTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}
