package query

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "queries-list",
		Method:      http.MethodGet,
		Path:        "/api/queries",
		Summary:     "Список запросов",
		Description: "Новые первыми, с фильтром по статусу и строке поиска",
		Tags:        []string{"queries"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "queries-create",
		Method:        http.MethodPost,
		Path:          "/api/queries",
		Summary:       "Создать запрос",
		Tags:          []string{"queries"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "queries-update",
		Method:      http.MethodPatch,
		Path:        "/api/queries/{id}",
		Summary:     "Изменить запрос",
		Tags:        []string{"queries"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "queries-delete",
		Method:      http.MethodDelete,
		Path:        "/api/queries/{id}",
		Summary:     "Удалить запрос",
		Tags:        []string{"queries"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) importOp() huma.Operation {
	return huma.Operation{
		OperationID:   "queries-import",
		Method:        http.MethodPost,
		Path:          "/api/queries/import",
		Summary:       "Импорт запросов",
		Description:   "Все строки создаются в одной транзакции",
		Tags:          []string{"queries"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) summaryOp() huma.Operation {
	return huma.Operation{
		OperationID: "summaries-create",
		Method:      http.MethodPost,
		Path:        "/api/summaries",
		Summary:     "Сгенерировать краткое описание",
		Tags:        []string{"queries"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
