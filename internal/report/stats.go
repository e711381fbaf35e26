package report

import (
	"sort"

	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
)

type TypeCount struct {
	TypeID string `json:"type_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Count  int    `json:"count"`
}

// CountByType считает запросы каждого типа. Типы идут по имени,
// запросы без типа не учитываются.
func CountByType(types []qtype.Type, queries []query.Query) []TypeCount {
	perType := make(map[string]int, len(types))
	for _, q := range queries {
		if q.TypeID != nil {
			perType[*q.TypeID]++
		}
	}

	sorted := make([]qtype.Type, len(types))
	copy(sorted, types)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	out := make([]TypeCount, 0, len(sorted))
	for _, t := range sorted {
		out = append(out, TypeCount{TypeID: t.ID, Name: t.Name, Color: t.Color, Count: perType[t.ID]})
	}
	return out
}
