package routers

import (
	"log/slog"

	"agendaveiro/internal/transport/httpServer/handlers"
	myMiddleware "agendaveiro/internal/transport/httpServer/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	log          *slog.Logger
	eventHandler *handlers.EventHandler
}

func NewRouter(log *slog.Logger, eventHandler *handlers.EventHandler) *Router {
	return &Router{
		log:          log,
		eventHandler: eventHandler,
	}
}

func (r *Router) Mount(mux *chi.Mux) {

	mux.Use(middleware.RequestID)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(myMiddleware.New(r.log))
	mux.Use(middleware.Heartbeat("/ping"))

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/api", func(mux chi.Router) {
		mux.Route("/v1", func(mux chi.Router) {
			mux.Get("/events", r.eventHandler.GetEvents)
			mux.Get("/stats", r.eventHandler.GetStats)
		})
	})
}
