package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/exp/slog"

	"querytrack/internal/app/client/config"
	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
	"querytrack/internal/domain/user"
	"querytrack/internal/report"
)

// Profile - данные текущего пользователя.
type Profile struct {
	UserID    string    `json:"user_id"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"created_at"`
}

// Gateway - единственная граница с сервером. Все операции, кроме входа
// и регистрации, получают сессию явно и без нее возвращают ErrUnauthenticated.
type Gateway interface {
	Health(ctx context.Context) error
	Register(ctx context.Context, login, password string) (string, error)
	Login(ctx context.Context, login, password string) (Session, error)
	Logout(ctx context.Context, s Session) error
	Me(ctx context.Context, s Session) (Profile, error)

	ListTypes(ctx context.Context, s Session) ([]qtype.Type, error)
	CreateType(ctx context.Context, s Session, name, color string) (*qtype.Type, error)
	DeleteType(ctx context.Context, s Session, id string) error

	ListQueries(ctx context.Context, s Session) ([]query.Query, error)
	CreateQuery(ctx context.Context, s Session, req query.CreateRequest) (*query.Query, error)
	UpdateQuery(ctx context.Context, s Session, id string, req query.UpdateRequest) (*query.Query, error)
	DeleteQuery(ctx context.Context, s Session, id string) error
	ImportQueries(ctx context.Context, s Session, rows []query.ImportRow) (int, error)

	RequestSummary(ctx context.Context, s Session, title string, description *string) (string, error)
	Stats(ctx context.Context, s Session) ([]report.TypeCount, error)
}

type httpGateway struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPGateway(cfg *config.Config, log *slog.Logger) Gateway {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &httpGateway{
		client:    client,
		log:       log.With("component", "gateway"),
		baseURL:   cfg.BaseURL(),
		userAgent: "QueryTrack-Client/1.0",
	}
}

// Health проверяет доступность сервера
func (g *httpGateway) Health(ctx context.Context) error {
	resp, err := g.doRequest(ctx, http.MethodGet, "/api/v1/health", "", nil)
	if err != nil {
		return err
	}
	return g.parseResponse(resp, nil)
}

func (g *httpGateway) Register(ctx context.Context, login, password string) (string, error) {
	resp, err := g.doRequest(ctx, http.MethodPost, "/user/register", "", user.BaseRequest{
		Login:    login,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	var out struct {
		UserID string `json:"user_id"`
	}
	if err := g.parseResponse(resp, &out); err != nil {
		return "", err
	}

	return out.UserID, nil
}

func (g *httpGateway) Login(ctx context.Context, login, password string) (Session, error) {
	resp, err := g.doRequest(ctx, http.MethodPost, "/user/login", "", user.BaseRequest{
		Login:    login,
		Password: password,
	})
	if err != nil {
		return Session{}, err
	}

	var out struct {
		UserID string `json:"user_id"`
		Token  string `json:"token"`
	}
	if err := g.parseResponse(resp, &out); err != nil {
		return Session{}, err
	}
	if out.Token == "" {
		return Session{}, fmt.Errorf("%w: empty token in response", ErrUnavailable)
	}

	return Session{Token: out.Token, UserID: out.UserID, Login: login}, nil
}

func (g *httpGateway) Logout(ctx context.Context, s Session) error {
	return g.call(ctx, s, http.MethodPost, "/user/logout", nil, nil)
}

func (g *httpGateway) Me(ctx context.Context, s Session) (Profile, error) {
	var p Profile
	err := g.call(ctx, s, http.MethodGet, "/api/me", nil, &p)
	return p, err
}

func (g *httpGateway) ListTypes(ctx context.Context, s Session) ([]qtype.Type, error) {
	var types []qtype.Type
	if err := g.call(ctx, s, http.MethodGet, "/api/types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (g *httpGateway) CreateType(ctx context.Context, s Session, name, color string) (*qtype.Type, error) {
	body := map[string]string{"name": name}
	if color != "" {
		body["color"] = color
	}

	var t qtype.Type
	if err := g.call(ctx, s, http.MethodPost, "/api/types", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (g *httpGateway) DeleteType(ctx context.Context, s Session, id string) error {
	return g.call(ctx, s, http.MethodDelete, "/api/types/"+url.PathEscape(id), nil, nil)
}

func (g *httpGateway) ListQueries(ctx context.Context, s Session) ([]query.Query, error) {
	var queries []query.Query
	if err := g.call(ctx, s, http.MethodGet, "/api/queries", nil, &queries); err != nil {
		return nil, err
	}
	return queries, nil
}

func (g *httpGateway) CreateQuery(ctx context.Context, s Session, req query.CreateRequest) (*query.Query, error) {
	var q query.Query
	if err := g.call(ctx, s, http.MethodPost, "/api/queries", req, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (g *httpGateway) UpdateQuery(ctx context.Context, s Session, id string, req query.UpdateRequest) (*query.Query, error) {
	var q query.Query
	if err := g.call(ctx, s, http.MethodPatch, "/api/queries/"+url.PathEscape(id), req, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (g *httpGateway) DeleteQuery(ctx context.Context, s Session, id string) error {
	return g.call(ctx, s, http.MethodDelete, "/api/queries/"+url.PathEscape(id), nil, nil)
}

func (g *httpGateway) ImportQueries(ctx context.Context, s Session, rows []query.ImportRow) (int, error) {
	raw := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		m := make(map[string]string, len(r))
		for c, v := range r {
			m[string(c)] = v
		}
		raw = append(raw, m)
	}

	var out struct {
		Imported int `json:"imported"`
	}
	body := map[string]any{"rows": raw}
	if err := g.call(ctx, s, http.MethodPost, "/api/queries/import", body, &out); err != nil {
		return 0, err
	}
	return out.Imported, nil
}

func (g *httpGateway) RequestSummary(ctx context.Context, s Session, title string, description *string) (string, error) {
	body := struct {
		Title       string  `json:"title"`
		Description *string `json:"description,omitempty"`
	}{Title: title, Description: description}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := g.call(ctx, s, http.MethodPost, "/api/summaries", body, &out); err != nil {
		return "", err
	}
	if out.Summary == "" {
		return "", fmt.Errorf("%w: no summary generated", ErrUnavailable)
	}
	return out.Summary, nil
}

func (g *httpGateway) Stats(ctx context.Context, s Session) ([]report.TypeCount, error) {
	var stats []report.TypeCount
	if err := g.call(ctx, s, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// call выполняет авторизованный запрос. Без токена сеть не трогается.
func (g *httpGateway) call(ctx context.Context, s Session, method, path string, body, result any) error {
	if !s.Authenticated() {
		return ErrUnauthenticated
	}

	resp, err := g.doRequest(ctx, method, path, s.Token, body)
	if err != nil {
		return err
	}

	return g.parseResponse(resp, result)
}

func (g *httpGateway) doRequest(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", g.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	g.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return resp, nil
}

func (g *httpGateway) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	g.log.Debug("received response", "status", resp.StatusCode, "size", len(body))

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, body)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
		}
	}

	return nil
}

// statusError переводит ответ сервера в ошибку клиента, сохраняя текст сервера.
func statusError(status int, body []byte) error {
	var kind error
	switch {
	case status == http.StatusUnauthorized:
		kind = ErrUnauthenticated
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status == http.StatusConflict:
		kind = ErrConflict
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		kind = ErrValidation
	default:
		kind = ErrUnavailable
	}

	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Errors []struct {
			Message  string `json:"message"`
			Location string `json:"location"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &problem); err != nil {
		return fmt.Errorf("%w: status %d", kind, status)
	}

	msg := problem.Detail
	if msg == "" {
		msg = problem.Title
	}
	for _, e := range problem.Errors {
		msg += "; " + e.Location + " " + e.Message
	}
	if msg == "" {
		return fmt.Errorf("%w: status %d", kind, status)
	}

	return fmt.Errorf("%w: %s", kind, msg)
}
