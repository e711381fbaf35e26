package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"querytrack/internal/app/server/api/http/apierr"
	"querytrack/internal/app/server/api/http/middleware/auth"
	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
	"querytrack/internal/report"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)

type Handler struct {
	queries    query.Servicer
	types      qtype.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	now        func() time.Time
}

func NewHandler(queries query.Servicer, types qtype.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		queries:    queries,
		types:      types,
		log:        log,
		middleware: mws,
		now:        time.Now,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.statsOp(), h.stats)
	huma.Register(api, h.exportOp(), h.export)
	huma.Register(api, h.summaryOp(), h.summary)
}

func (h *Handler) stats(ctx context.Context, _ *struct{}) (*statsOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	queries, types, err := h.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &statsOutput{Body: report.CountByType(types, queries)}, nil
}

func (h *Handler) export(ctx context.Context, input *exportInput) (*fileOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	loc, err := location(input.TZ)
	if err != nil {
		return nil, err
	}

	queries, types, err := h.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows := report.Rows(query.Filter(queries, input.Status, input.Search), types)

	var (
		buf         bytes.Buffer
		contentType string
	)
	switch input.Format {
	case "xlsx":
		err = report.WriteXLSX(&buf, rows, loc)
		contentType = contentTypeXLSX
	default:
		input.Format = "csv"
		err = report.WriteCSV(&buf, rows, loc)
		contentType = contentTypeCSV
	}
	if err != nil {
		return nil, apierr.From(h.log, fmt.Errorf("render export: %w", err))
	}

	return &fileOutput{
		ContentType:        contentType,
		ContentDisposition: attachment(report.ExportFileName(input.Format, h.now().In(loc))),
		Body:               buf.Bytes(),
	}, nil
}

func (h *Handler) summary(ctx context.Context, input *summaryInput) (*fileOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	loc, err := location(input.TZ)
	if err != nil {
		return nil, err
	}

	queries, types, err := h.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := report.Aggregate(report.Rows(query.Filter(queries, input.Status, input.Search), types), loc)
	now := h.now().In(loc)

	var buf bytes.Buffer
	out := &fileOutput{}
	switch input.Format {
	case "html":
		err = report.WriteSummaryHTML(&buf, summary, now)
		out.ContentType = contentTypeHTML
		out.ContentDisposition = inline(report.SummaryFileName("html", now))
	case "xlsx":
		err = report.WriteSummaryXLSX(&buf, summary)
		out.ContentType = contentTypeXLSX
		out.ContentDisposition = attachment(report.SummaryFileName("xlsx", now))
	default:
		err = json.NewEncoder(&buf).Encode(summary)
		out.ContentType = contentTypeJSON
	}
	if err != nil {
		return nil, apierr.From(h.log, fmt.Errorf("render summary: %w", err))
	}

	out.Body = buf.Bytes()
	return out, nil
}

func (h *Handler) load(ctx context.Context, userID string) ([]query.Query, []qtype.Type, error) {
	queries, err := h.queries.List(ctx, userID)
	if err != nil {
		return nil, nil, apierr.From(h.log, err)
	}

	types, err := h.types.List(ctx, userID)
	if err != nil {
		return nil, nil, apierr.From(h.log, err)
	}

	return queries, types, nil
}

// location по умолчанию UTC: у сервера нет часового пояса пользователя.
func location(tz string) (*time.Location, error) {
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(fmt.Sprintf("unknown time zone %q", tz))
	}
	return loc, nil
}

func attachment(name string) string {
	return "attachment; filename=" + name
}

func inline(name string) string {
	return "inline; filename=" + name
}
