package query

import "strings"

// Filter оставляет запросы с подходящим статусом, у которых строка поиска
// (без учета регистра) входит в заголовок, описание или имя типа.
// Порядок входного списка сохраняется.
func Filter(queries []Query, status, search string) []Query {
	needle := strings.ToLower(search)

	out := make([]Query, 0, len(queries))
	for _, q := range queries {
		if status != "" && status != StatusAll && string(q.Status) != status {
			continue
		}
		if needle != "" && !matches(q, needle) {
			continue
		}
		out = append(out, q)
	}

	return out
}

func matches(q Query, needle string) bool {
	if strings.Contains(strings.ToLower(q.Title), needle) {
		return true
	}
	if q.Description != nil && strings.Contains(strings.ToLower(*q.Description), needle) {
		return true
	}
	if q.Type != nil && strings.Contains(strings.ToLower(q.Type.Name), needle) {
		return true
	}
	return false
}
