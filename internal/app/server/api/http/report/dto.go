package report

import "querytrack/internal/report"

type statsOutput struct {
	Body []report.TypeCount
}

type exportInput struct {
	Format string `query:"format" enum:"csv,xlsx" default:"csv"`
	Status string `query:"status" enum:"all,pending,in_progress,resolved,closed"`
	Search string `query:"search"`
	TZ     string `query:"tz" doc:"Часовой пояс для группировки по датам, по умолчанию UTC"`
}

type summaryInput struct {
	Format string `query:"format" enum:"json,html,xlsx" default:"json"`
	Status string `query:"status" enum:"all,pending,in_progress,resolved,closed"`
	Search string `query:"search"`
	TZ     string `query:"tz" doc:"Часовой пояс для группировки по датам, по умолчанию UTC"`
}

// fileOutput отдает документ как есть, с заголовками скачивания.
type fileOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}
