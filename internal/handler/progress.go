package handler

import (
	"net/http"

	"github.com/mealpath/mealpath/internal/model"
	"github.com/mealpath/mealpath/internal/service"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

type setProgressRequest struct {
	UserID string `json:"userId"`
	model.ProgressPatch
}

// Get returns today's progress, rolling the row over when the day changed.
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	progress, err := h.progressService.GetOrReset(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err, "failed to load daily progress")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"progress": progress})
}

// Set overwrites today's accumulators.
func (h *ProgressHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setProgressRequest
	err := parseJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.UserID == "" || req.Calories == nil {
		writeError(w, http.StatusBadRequest, "userId and calories are required")
		return
	}

	progress, err := h.progressService.Set(r.Context(), req.UserID, req.ProgressPatch)
	if err != nil {
		handleServiceError(w, r, err, "failed to update daily progress")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"progress": progress,
		"message":  "Daily progress updated successfully",
	})
}

func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	summary, err := h.progressService.Summary(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err, "failed to load progress summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *ProgressHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	limit := intQuery(r, "limit", service.DefaultHistoryLimit)

	items, err := h.progressService.History(r.Context(), userID, limit)
	if err != nil {
		handleServiceError(w, r, err, "failed to load progress history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
