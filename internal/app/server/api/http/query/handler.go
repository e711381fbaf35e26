package query

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"querytrack/internal/app/server/api/http/apierr"
	"querytrack/internal/app/server/api/http/middleware/auth"
	"querytrack/internal/domain/query"
	"querytrack/internal/domain/summary"
)

type Handler struct {
	service    query.Servicer
	summary    summary.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service query.Servicer, summary summary.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		summary:    summary,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.importOp(), h.importRows)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.summaryOp(), h.summarize)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	queries, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &listOutput{
		Body: query.Filter(queries, input.Status, input.Search),
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*queryOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	q, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &queryOutput{Body: q}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*queryOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	q, err := h.service.Update(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &queryOutput{Body: q}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &deleteOutput{
		Body: queryResponse{ID: input.ID, Status: "Ok"},
	}, nil
}

func (h *Handler) importRows(ctx context.Context, input *importInput) (*importOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	n, err := h.service.Import(ctx, userID, toImportRows(input.Body.Rows))
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	out := &importOutput{}
	out.Body.Imported = n
	return out, nil
}

func (h *Handler) summarize(ctx context.Context, input *summaryInput) (*summaryOutput, error) {
	if _, ok := auth.GetUserID(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	text, err := h.summary.Generate(ctx, input.Body.Title, input.Body.Description)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	out := &summaryOutput{}
	out.Body.Summary = text
	return out, nil
}

// toImportRows оставляет только распознанные колонки и пропускает пустые строки.
func toImportRows(raw []map[string]string) []query.ImportRow {
	rows := make([]query.ImportRow, 0, len(raw))
	for _, r := range raw {
		row := make(query.ImportRow, len(r))
		for header, value := range r {
			if c, ok := query.ParseColumn(header); ok {
				row[c] = value
			}
		}
		if row.Blank() {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
