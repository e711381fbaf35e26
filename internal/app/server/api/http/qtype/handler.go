package qtype

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"querytrack/internal/app/server/api/http/apierr"
	"querytrack/internal/app/server/api/http/middleware/auth"
	"querytrack/internal/domain/qtype"
)

type Handler struct {
	service    qtype.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service qtype.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	types, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &listOutput{Body: types}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	t, err := h.service.Create(ctx, userID, input.Body.Name, input.Body.Color)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &createOutput{Body: t}, nil
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
		Body: typeResponse{ID: input.ID, Status: "Ok"},
	}, nil
}
