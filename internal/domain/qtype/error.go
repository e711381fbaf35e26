package qtype

import "errors"

var (
	ErrNotFound     = errors.New("query type not found")
	ErrInvalidInput = errors.New("invalid query type input")
)
