package qtype

import "querytrack/internal/domain/qtype"

type listOutput struct {
	Body []qtype.Type
}

type createInput struct {
	Body struct {
		Name  string `json:"name" minLength:"1" doc:"Имя типа"`
		Color string `json:"color,omitempty" doc:"Цвет в формате #RRGGBB"`
	}
}

type createOutput struct {
	Body *qtype.Type
}

type deleteInput struct {
	ID string `path:"id"`
}

type deleteOutput struct {
	Body typeResponse
}

type typeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
