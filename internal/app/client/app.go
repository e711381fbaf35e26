package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/singleflight"

	"querytrack/internal/app/client/config"
	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
	"querytrack/internal/domain/user"
	"querytrack/internal/report"
)

type App struct {
	gateway  Gateway
	sessions *SessionStore
	cache    *Cache
	printer  report.Printer
	log      *slog.Logger

	// мутации с одинаковым ключом, пришедшие во время выполнения, присоединяются к ней
	flight singleflight.Group

	loc *time.Location
	now func() time.Time
}

// New собирает клиент поверх HTTP Gateway с сессией из cfg.TokenPath.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	sessions, err := NewSessionStore(cfg.TokenPath, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки сессии: %w", err)
	}

	return NewApp(NewHTTPGateway(cfg, log), sessions, report.NewBrowserPrinter(log), log), nil
}

func NewApp(gateway Gateway, sessions *SessionStore, printer report.Printer, log *slog.Logger) *App {
	a := &App{
		gateway:  gateway,
		sessions: sessions,
		cache:    NewCache(),
		printer:  printer,
		log:      log.With("component", "client_app"),
		loc:      time.Local,
		now:      time.Now,
	}

	// данные другого пользователя не должны пережить смену сессии
	sessions.Subscribe(func(Session) {
		a.cache.Clear()
	})

	return a
}

func (a *App) Session() Session {
	return a.sessions.Current()
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.gateway.Health(ctx)
}

func (a *App) Register(ctx context.Context, login, password string) (string, error) {
	if err := user.NewPasswordValidator().ValidateRegister(login, password); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return a.gateway.Register(ctx, login, password)
}

func (a *App) Login(ctx context.Context, login, password string) error {
	if strings.TrimSpace(login) == "" || password == "" {
		return fmt.Errorf("%w: login and password are required", ErrValidation)
	}

	s, err := a.gateway.Login(ctx, login, password)
	if err != nil {
		return err
	}

	if err := a.sessions.SignIn(s); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	a.log.Info("signed in", "login", login)
	return nil
}

// Logout завершает сессию на сервере и локально. Просроченная сессия
// все равно удаляется локально.
func (a *App) Logout(ctx context.Context) error {
	s := a.sessions.Current()
	if !s.Authenticated() {
		return ErrUnauthenticated
	}

	if err := a.gateway.Logout(ctx, s); err != nil && !errors.Is(err, ErrUnauthenticated) {
		return err
	}

	return a.sessions.SignOut()
}

func (a *App) WhoAmI(ctx context.Context) (Profile, error) {
	return a.gateway.Me(ctx, a.sessions.Current())
}

// Types возвращает типы по имени, из кэша если он актуален.
func (a *App) Types(ctx context.Context) ([]qtype.Type, error) {
	types, gen, ok := a.cache.Types()
	if ok {
		return types, nil
	}

	types, err := a.gateway.ListTypes(ctx, a.sessions.Current())
	if err != nil {
		return nil, err
	}

	if !a.cache.SetTypes(gen, types) {
		// пока шла загрузка, мутация сбросила кэш: список может быть устаревшим
		return a.Types(ctx)
	}
	return types, nil
}

// Queries возвращает все запросы пользователя, новые первыми.
func (a *App) Queries(ctx context.Context) ([]query.Query, error) {
	queries, gen, ok := a.cache.Queries()
	if ok {
		return queries, nil
	}

	queries, err := a.gateway.ListQueries(ctx, a.sessions.Current())
	if err != nil {
		return nil, err
	}

	if !a.cache.SetQueries(gen, queries) {
		return a.Queries(ctx)
	}
	return queries, nil
}

func (a *App) ListQueries(ctx context.Context, status, search string) ([]query.Query, error) {
	if status != "" && status != query.StatusAll {
		if err := query.Status(status).Validate(); err != nil {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
		}
	}

	queries, err := a.Queries(ctx)
	if err != nil {
		return nil, err
	}

	return query.Filter(queries, status, search), nil
}

func (a *App) AddQuery(ctx context.Context, req query.CreateRequest) (*query.Query, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	v, err := a.mutate("create-query", req, func(s Session) (any, error) {
		q, err := a.gateway.CreateQuery(ctx, s, req)
		if err != nil {
			return nil, err
		}
		a.cache.InvalidateQueries()
		return q, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*query.Query), nil
}

func (a *App) EditQuery(ctx context.Context, id string, req query.UpdateRequest) (*query.Query, error) {
	if req.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	payload := struct {
		ID  string
		Req query.UpdateRequest
	}{id, req}

	v, err := a.mutate("update-query", payload, func(s Session) (any, error) {
		q, err := a.gateway.UpdateQuery(ctx, s, id, req)
		if err != nil {
			return nil, err
		}
		a.cache.InvalidateQueries()
		return q, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*query.Query), nil
}

func (a *App) SetStatus(ctx context.Context, id string, status query.Status) (*query.Query, error) {
	if err := status.Validate(); err != nil {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, string(status))
	}

	return a.EditQuery(ctx, id, query.UpdateRequest{Status: &status})
}

func (a *App) DeleteQuery(ctx context.Context, id string) error {
	_, err := a.mutate("delete-query", id, func(s Session) (any, error) {
		if err := a.gateway.DeleteQuery(ctx, s, id); err != nil {
			return nil, err
		}
		a.cache.InvalidateQueries()
		return nil, nil
	})
	return err
}

// Summarize запрашивает краткое описание запроса и сохраняет его в запросе.
func (a *App) Summarize(ctx context.Context, id string) (string, error) {
	queries, err := a.Queries(ctx)
	if err != nil {
		return "", err
	}

	var target *query.Query
	for i := range queries {
		if queries[i].ID == id {
			target = &queries[i]
			break
		}
	}
	if target == nil {
		return "", fmt.Errorf("%w: query %s", ErrNotFound, id)
	}

	text, err := a.gateway.RequestSummary(ctx, a.sessions.Current(), target.Title, target.Description)
	if err != nil {
		return "", err
	}

	if _, err := a.EditQuery(ctx, id, query.UpdateRequest{AISummary: &text}); err != nil {
		return "", err
	}

	return text, nil
}

// ImportFile читает xlsx и создает запросы одной пачкой.
func (a *App) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	defer f.Close()

	rows, err := report.ReadImportRows(f)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	v, err := a.mutate("import-queries", rows, func(s Session) (any, error) {
		n, err := a.gateway.ImportQueries(ctx, s, rows)
		if err != nil {
			return 0, err
		}
		a.cache.InvalidateQueries()
		return n, nil
	})
	if err != nil {
		return 0, err
	}

	return v.(int), nil
}

func (a *App) AddType(ctx context.Context, name, color string) (*qtype.Type, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	v, err := a.mutate("create-type", []string{name, color}, func(s Session) (any, error) {
		t, err := a.gateway.CreateType(ctx, s, name, color)
		if err != nil {
			return nil, err
		}
		a.cache.InvalidateTypes()
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*qtype.Type), nil
}

// DeleteType удаляет тип; запросы этого типа становятся Untyped,
// поэтому сбрасываются обе коллекции.
func (a *App) DeleteType(ctx context.Context, id string) error {
	_, err := a.mutate("delete-type", id, func(s Session) (any, error) {
		if err := a.gateway.DeleteType(ctx, s, id); err != nil {
			return nil, err
		}
		a.cache.InvalidateTypes()
		a.cache.InvalidateQueries()
		return nil, nil
	})
	return err
}

func (a *App) Stats(ctx context.Context) ([]report.TypeCount, error) {
	return a.gateway.Stats(ctx, a.sessions.Current())
}

// Summary строит сводку по отфильтрованным запросам в локальном часовом поясе.
func (a *App) Summary(ctx context.Context, status, search string) (report.Summary, error) {
	rows, err := a.rows(ctx, status, search)
	if err != nil {
		return report.Summary{}, err
	}
	return report.Aggregate(rows, a.loc), nil
}

// Export пишет плоскую выгрузку в dir и возвращает путь к файлу.
func (a *App) Export(ctx context.Context, format, dir, status, search string) (string, error) {
	rows, err := a.rows(ctx, status, search)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	switch format {
	case "csv":
		err = report.WriteCSV(&buf, rows, a.loc)
	case "xlsx":
		err = report.WriteXLSX(&buf, rows, a.loc)
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", ErrValidation, format)
	}
	if err != nil {
		return "", err
	}

	return writeFile(dir, report.ExportFileName(format, a.now().In(a.loc)), buf.Bytes())
}

// Report пишет сводку в dir. Для html с doPrint документ дополнительно
// отправляется на печать; ошибки печати не возвращаются.
func (a *App) Report(ctx context.Context, format, dir, status, search string, doPrint bool) (string, error) {
	summary, err := a.Summary(ctx, status, search)
	if err != nil {
		return "", err
	}

	now := a.now().In(a.loc)

	var buf bytes.Buffer
	switch format {
	case "html":
		err = report.WriteSummaryHTML(&buf, summary, now)
	case "xlsx":
		err = report.WriteSummaryXLSX(&buf, summary)
	default:
		return "", fmt.Errorf("%w: unsupported report format %q", ErrValidation, format)
	}
	if err != nil {
		return "", err
	}

	path, err := writeFile(dir, report.SummaryFileName(format, now), buf.Bytes())
	if err != nil {
		return "", err
	}

	if doPrint && format == "html" {
		a.printer.Print(buf.Bytes())
	}

	return path, nil
}

func (a *App) rows(ctx context.Context, status, search string) ([]report.Row, error) {
	queries, err := a.ListQueries(ctx, status, search)
	if err != nil {
		return nil, err
	}

	types, err := a.Types(ctx)
	if err != nil {
		return nil, err
	}

	return report.Rows(queries, types), nil
}

// mutate выполняет изменение от имени текущей сессии. Повторный вызов с тем же
// op и payload, пока первый не завершился, получает его результат.
func (a *App) mutate(op string, payload any, fn func(Session) (any, error)) (any, error) {
	s := a.sessions.Current()
	if !s.Authenticated() {
		return nil, ErrUnauthenticated
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", op, err)
	}

	v, err, shared := a.flight.Do(op+":"+string(data), func() (any, error) {
		return fn(s)
	})
	if shared {
		a.log.Debug("joined in-flight mutation", "op", op)
	}

	return v, err
}

func writeFile(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	return path, nil
}
