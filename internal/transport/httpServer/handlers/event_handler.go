package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"agendaveiro/internal/transport/httpServer/handlers/dto"
	"agendaveiro/internal/utils"
	"agendaveiro/internal/utils/logger/sl"
)

type EventHandler struct {
	repository EventRepository
	log        *slog.Logger
}

func NewEventHandler(log *slog.Logger, repo EventRepository) *EventHandler {
	return &EventHandler{
		repository: repo,
		log:        log,
	}
}

// GetEvents handles GET /api/v1/events and returns the future-events
// view: everything dated today or later, plus dateless events.
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.GetEvents()"
	log := h.log.With(slog.String("op", op))

	events, err := h.repository.FutureEvents(r.Context())
	if err != nil {
		h.respondError(log, fmt.Errorf("failed to get events: %w", err), w, http.StatusInternalServerError)
		return
	}

	response := dto.MapDomainToEventListResponse(events)

	if err := utils.Json(w, http.StatusOK, response); err != nil {
		log.Error("error encoding response", sl.Err(err))
	}
}

// GetStats handles GET /api/v1/stats.
func (h *EventHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	op := "httpServer.handlers.EventHandler.GetStats()"
	log := h.log.With(slog.String("op", op))

	stats, err := h.repository.Stats(r.Context())
	if err != nil {
		h.respondError(log, fmt.Errorf("failed to get stats: %w", err), w, http.StatusInternalServerError)
		return
	}

	if err := utils.Json(w, http.StatusOK, dto.MapStatsToResponse(stats)); err != nil {
		log.Error("error encoding response", sl.Err(err))
	}
}

func (h *EventHandler) respondError(log *slog.Logger, err error, w http.ResponseWriter, status int) {
	log.Error("request failed", sl.Err(err))

	if encErr := utils.Json(w, status, map[string]string{"error": err.Error()}); encErr != nil {
		log.Error("error encoding error response", sl.Err(encErr))
	}
}
