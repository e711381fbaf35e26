package report

import (
	"time"

	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
)

// Row - плоское представление запроса для выгрузки и агрегации.
// Created хранит исходную метку времени; разбирается она при агрегации.
type Row struct {
	Title       string
	Description string
	TypeName    string
	Status      string
	Priority    string
	Created     string
}

// Rows строит строки отчета. Имя типа берется из присоединенного типа,
// затем из списка types по TypeID; иначе строка остается без типа.
func Rows(queries []query.Query, types []qtype.Type) []Row {
	names := make(map[string]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}

	rows := make([]Row, 0, len(queries))
	for _, q := range queries {
		r := Row{
			Title:    q.Title,
			Status:   string(q.Status),
			Priority: string(q.Priority),
		}
		if q.Description != nil {
			r.Description = *q.Description
		}
		switch {
		case q.Type != nil:
			r.TypeName = q.Type.Name
		case q.TypeID != nil:
			r.TypeName = names[*q.TypeID]
		}
		if !q.CreatedAt.IsZero() {
			r.Created = q.CreatedAt.Format(time.RFC3339Nano)
		}
		rows = append(rows, r)
	}

	return rows
}
