package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pribylovaa/hobby-sections/internal/http/handlers"
	"github.com/pribylovaa/hobby-sections/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger         *slog.Logger
	Timeout        time.Duration
	BasePath       string   // например, "/api"; если пустой — роуты регистрируются на корне.
	AllowedOrigins []string // пустой список — CORS не подключается.
	Metrics        *middleware.Metrics
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Metrics != nil {
		root.Use(opts.Metrics.Middleware())
	}
	if len(opts.AllowedOrigins) > 0 {
		root.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.HeaderRequestID},
			ExposedHeaders: []string{middleware.HeaderRequestID, "Location"},
			MaxAge:         300,
		}))
	}
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	if opts.BasePath != "" && opts.BasePath != "/" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// profiles
	r.Get("/profiles/{user_id}", h.GetProfile)
	r.Put("/profiles/{user_id}", h.SaveProfile)

	// sections
	r.Post("/profiles/{user_id}/sections", h.CreateSection)
	r.Get("/profiles/{user_id}/sections", h.ListSections)
	r.Get("/sections", h.ListSections)
	r.Get("/sections/{websafe_key}", h.GetSection)
	r.Put("/sections/{websafe_key}", h.UpdateSection)
	r.Delete("/sections/{websafe_key}", h.DeleteSection)
	r.Get("/sections/{websafe_key}/debug", h.DebugSection)
}
