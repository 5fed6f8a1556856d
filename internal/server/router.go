package server

import (
	"net/http"

	"github.com/cloo-solutions/secubot/internal/api"
	"github.com/cloo-solutions/secubot/internal/api/handlers"
	"github.com/cloo-solutions/secubot/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	ReviewHandler *handlers.ReviewHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/reviews", cfg.ReviewHandler.Create)

	return r
}
