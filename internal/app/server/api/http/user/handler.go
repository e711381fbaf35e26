package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"querytrack/internal/app/server/api/http/apierr"
	"querytrack/internal/app/server/api/http/middleware/auth"
	"querytrack/internal/domain/session"
	"querytrack/internal/domain/user"
)

type Handler struct {
	service user.Servicer
	session session.Servicer
	log     *slog.Logger
	public  huma.Middlewares
	private huma.Middlewares
}

// NewHandler: public - цепочка для регистрации и входа, private - для операций с сессией.
func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, public, private huma.Middlewares) *Handler {
	return &Handler{
		service: service,
		session: session,
		log:     log,
		public:  public,
		private: private,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.meOp(), h.me)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &registerOutput{
		Body: RegisterResponse{ID: userID, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &loginOutput{
		Body: LoginResponse{
			UserID: u.ID,
			Token:  token,
			Status: "Ok",
		},
	}, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*logoutOutput, error) {
	token, ok := auth.GetToken(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.session.Revoke(ctx, token); err != nil {
		return nil, apierr.From(h.log, err)
	}

	out := &logoutOutput{}
	out.Body.Status = "Ok"
	return out, nil
}

func (h *Handler) me(ctx context.Context, _ *struct{}) (*meOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	u, err := h.service.Get(ctx, userID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &meOutput{
		Body: MeResponse{UserID: u.ID, Login: u.Login, CreatedAt: u.CreatedAt},
	}, nil
}
