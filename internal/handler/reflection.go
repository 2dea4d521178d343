package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"memoir/internal/config"
	"memoir/internal/domain/services"
	"memoir/internal/handler/sse"
	"memoir/internal/httputil"
)

// ReflectionHandler serves stored surprise reflections and the live
// notification stream.
type ReflectionHandler struct {
	reflections services.ReflectionService
	hub         services.NotificationHub
	sseConfig   *sse.Config
	logger      *slog.Logger
}

// NewReflectionHandler creates a new reflection handler. A nil sseConfig
// uses sse.DefaultConfig.
func NewReflectionHandler(
	reflections services.ReflectionService,
	hub services.NotificationHub,
	sseConfig *sse.Config,
	logger *slog.Logger,
) *ReflectionHandler {
	if sseConfig == nil {
		sseConfig = sse.DefaultConfig()
	}
	return &ReflectionHandler{
		reflections: reflections,
		hub:         hub,
		sseConfig:   sseConfig,
		logger:      logger,
	}
}

// ListReflections handles GET /api/reflections?limit=20
func (h *ReflectionHandler) ListReflections(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	limit, err := httputil.QueryInt(r, "limit", config.DefaultReflectionPageSize)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reflections, err := h.reflections.ListReflections(r.Context(), userID, limit)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, reflections)
}

// MarkShown handles POST /api/reflections/{id}/shown
func (h *ReflectionHandler) MarkShown(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "reflection")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.reflections.MarkShown(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stream handles GET /api/reflections/stream.
// Pushes surprise and traits_updated notifications until the client leaves.
func (h *ReflectionHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel := h.hub.Subscribe(userID)
	defer cancel()

	sse.SetHeaders(w)
	writer := sse.NewWriter(w, flusher)
	if err := writer.WriteKeepAlive(); err != nil {
		return
	}

	keepAlive := sse.NewTickerKeepAlive(h.sseConfig.KeepAliveInterval)
	stopped := keepAlive.Start(writer, h.logger)
	defer keepAlive.Stop()

	h.logger.Debug("notification stream opened", "user_id", userID)
	defer h.logger.Debug("notification stream closed", "user_id", userID)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-stopped:
			return
		case n, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(n)
			if err != nil {
				h.logger.Error("encode notification", "user_id", userID, "error", err)
				continue
			}
			if err := writer.WriteEvent(string(n.Type), data); err != nil {
				h.logger.Debug("client disconnected", "user_id", userID, "error", err)
				return
			}
		}
	}
}
