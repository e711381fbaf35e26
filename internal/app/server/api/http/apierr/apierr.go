// Package apierr переводит доменные ошибки в ответы huma.
package apierr

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
	"querytrack/internal/domain/session"
	"querytrack/internal/domain/summary"
	"querytrack/internal/domain/user"
	"querytrack/internal/report"
)

// From возвращает huma-ошибку со статусом, соответствующим err.
// Неизвестные ошибки логируются и превращаются в 500 без подробностей.
func From(log *slog.Logger, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, query.ErrNotFound),
		errors.Is(err, qtype.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, query.ErrInvalidInput),
		errors.Is(err, qtype.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, summary.ErrInvalidInput),
		errors.Is(err, report.ErrNoData):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, user.ErrLoginTaken):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, user.ErrInvalidAuth),
		errors.Is(err, session.ErrInvalidSession):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, summary.ErrUnavailable):
		return huma.Error503ServiceUnavailable(err.Error())
	}

	log.Error("unhandled error", "error", err)
	return huma.Error500InternalServerError("internal server error")
}
