package qtype

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "types-list",
		Method:      http.MethodGet,
		Path:        "/api/types",
		Summary:     "Список типов запросов",
		Tags:        []string{"types"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "types-create",
		Method:        http.MethodPost,
		Path:          "/api/types",
		Summary:       "Создать тип",
		Tags:          []string{"types"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "types-delete",
		Method:      http.MethodDelete,
		Path:        "/api/types/{id}",
		Summary:     "Удалить тип",
		Description: "Запросы удаленного типа остаются без типа",
		Tags:        []string{"types"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
