package handler

import (
	"net/http"

	"github.com/mealpath/mealpath/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	stats, err := h.statsService.Stats(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err, "failed to load stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}
