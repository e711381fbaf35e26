//регистрация и аутентификация пользователей;
//учет запросов и их типов;
//сводные отчеты и выгрузки.

//GET    /api/v1/health             # Проверка (публичный)
//POST   /user/register             # Регистрация (публичный)
//POST   /user/login                # Логин (публичный)
//POST   /user/logout               # Выход (auth)
//GET    /api/me                    # Текущий пользователь (auth)
//GET    /api/types                 # Список типов (auth)
//POST   /api/types                 # Создать тип (auth)
//DELETE /api/types/{id}            # Удалить тип (auth)
//GET    /api/queries               # Список запросов (auth)
//POST   /api/queries               # Создать запрос (auth)
//PATCH  /api/queries/{id}          # Изменить запрос (auth)
//DELETE /api/queries/{id}          # Удалить запрос (auth)
//POST   /api/queries/import        # Импорт (auth)
//POST   /api/summaries             # Краткое описание (auth)
//GET    /api/stats                 # Счетчики по типам (auth)
//GET    /api/export                # Выгрузка CSV/xlsx (auth)
//GET    /api/reports/summary       # Сводка json/html/xlsx (auth)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/exp/slog"

	"querytrack/internal/app/server/api/http/health"
	"querytrack/internal/app/server/api/http/middleware"
	"querytrack/internal/app/server/api/http/middleware/auth"
	"querytrack/internal/app/server/api/http/middleware/logger"
	qtypeAPI "querytrack/internal/app/server/api/http/qtype"
	queryAPI "querytrack/internal/app/server/api/http/query"
	reportAPI "querytrack/internal/app/server/api/http/report"
	userAPI "querytrack/internal/app/server/api/http/user"
	"querytrack/internal/app/server/config"
	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
	"querytrack/internal/domain/session"
	"querytrack/internal/domain/summary"
	"querytrack/internal/domain/user"
	"querytrack/internal/infrastructure/storage"
)

type Handlers struct {
	Health *health.Handler
	User   *userAPI.Handler
	Type   *qtypeAPI.Handler
	Query  *queryAPI.Handler
	Report *reportAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register.
// summarizer может быть nil: тогда /api/summaries отвечает 503.
func New(store storage.Storage, cfg *config.Config, summarizer summary.Summarizer, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}).Handler)

	humaConfig := huma.DefaultConfig("QueryTrack API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(store, cfg, summarizer, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Type.SetupRoutes(API)
	h.Query.SetupRoutes(API)
	h.Report.SetupRoutes(API)

	return mux
}

func handlers(store storage.Storage, cfg *config.Config, summarizer summary.Summarizer, log *slog.Logger) *Handlers {
	sessionService := session.NewService(store.Sessions(), cfg.Session.TTL, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	// logger первым, чтобы в лог попадали и отклоненные auth запросы
	middlewares.Add(loggerMW.Middleware())
	healthHandler := health.NewHandler(store, log, middlewares.GetAllAndClear())

	userService := user.NewService(store.Users(), user.NewPasswordValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, public, middlewares.GetAllAndClear())

	typeService := qtype.NewService(store.Types(), log)
	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	typeHandler := qtypeAPI.NewHandler(typeService, log, middlewares.GetAllAndClear())

	queryService := query.NewService(store.Queries(), typeService, log)
	summaryService := summary.NewService(summarizer, log)
	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	queryHandler := queryAPI.NewHandler(queryService, summaryService, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	reportHandler := reportAPI.NewHandler(queryService, typeService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Type:   typeHandler,
		Query:  queryHandler,
		Report: reportHandler,
	}
}
