package report

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) statsOp() huma.Operation {
	return huma.Operation{
		OperationID: "stats",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Количество запросов по типам",
		Tags:        []string{"reports"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) exportOp() huma.Operation {
	return huma.Operation{
		OperationID: "queries-export",
		Method:      http.MethodGet,
		Path:        "/api/export",
		Summary:     "Выгрузка запросов в CSV или xlsx",
		Tags:        []string{"reports"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) summaryOp() huma.Operation {
	return huma.Operation{
		OperationID: "reports-summary",
		Method:      http.MethodGet,
		Path:        "/api/reports/summary",
		Summary:     "Сводка по датам и типам",
		Description: "json - матрица с итогами, html - документ для печати, xlsx - таблица",
		Tags:        []string{"reports"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
