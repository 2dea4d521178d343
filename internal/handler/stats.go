package handler

import (
	"log/slog"
	"net/http"

	"memoir/internal/domain/services"
	"memoir/internal/httputil"
)

const defaultSeriesDays = 30

// StatsHandler serves the derived analytics views
type StatsHandler struct {
	analytics services.AnalyticsService
	logger    *slog.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(analytics services.AnalyticsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		analytics: analytics,
		logger:    logger,
	}
}

// Dashboard handles GET /api/stats/dashboard
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	dashboard, err := h.analytics.Dashboard(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, dashboard)
}

// Streak handles GET /api/stats/streak
func (h *StatsHandler) Streak(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := h.analytics.Streak(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, summary)
}

// Moods handles GET /api/stats/moods
func (h *StatsHandler) Moods(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	dist, err := h.analytics.Moods(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, dist)
}

// Series handles GET /api/stats/series?days=30&metric=count|mood
func (h *StatsHandler) Series(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	days, err := httputil.QueryInt(r, "days", defaultSeriesDays)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	metric := services.SeriesMetric(r.URL.Query().Get("metric"))

	buckets, err := h.analytics.Series(r.Context(), userID, days, metric)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, buckets)
}

// Lenses handles GET /api/stats/lenses
func (h *StatsHandler) Lenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, trend, err := h.analytics.Lenses(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"summary": summary,
		"trend":   trend,
	})
}

// Themes handles GET /api/stats/themes
func (h *StatsHandler) Themes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	themes, err := h.analytics.Themes(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, themes)
}
