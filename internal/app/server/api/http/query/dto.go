package query

import "querytrack/internal/domain/query"

type listInput struct {
	Status string `query:"status" enum:"all,pending,in_progress,resolved,closed" doc:"Фильтр по статусу"`
	Search string `query:"search" doc:"Подстрока в заголовке, описании или имени типа"`
}

type listOutput struct {
	Body []query.Query
}

type createInput struct {
	Body query.CreateRequest
}

type queryOutput struct {
	Body *query.Query
}

type updateInput struct {
	ID   string `path:"id"`
	Body query.UpdateRequest
}

type deleteInput struct {
	ID string `path:"id"`
}

type deleteOutput struct {
	Body queryResponse
}

type queryResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type importInput struct {
	Body struct {
		Rows []map[string]string `json:"rows" doc:"Строки таблицы: заголовок колонки -> значение"`
	}
}

type importOutput struct {
	Body struct {
		Imported int `json:"imported"`
	}
}

type summaryInput struct {
	Body struct {
		Title       string  `json:"title" minLength:"1"`
		Description *string `json:"description,omitempty"`
	}
}

type summaryOutput struct {
	Body struct {
		Summary string `json:"summary"`
	}
}
