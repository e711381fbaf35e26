package query

import "errors"

var (
	ErrNotFound     = errors.New("query not found")
	ErrInvalidInput = errors.New("invalid query input")
	ErrUnknownType  = errors.New("query type does not exist")
	ErrEmptyImport  = errors.New("no rows to import")
)
