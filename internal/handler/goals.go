package handler

import (
	"net/http"

	"github.com/mealpath/mealpath/internal/model"
	"github.com/mealpath/mealpath/internal/service"
)

type GoalsHandler struct {
	goalsService *service.GoalsService
}

func NewGoalsHandler(goalsService *service.GoalsService) *GoalsHandler {
	return &GoalsHandler{
		goalsService: goalsService,
	}
}

func (h *GoalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	goals, err := h.goalsService.Goals(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err, "failed to load goals")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

// Put replaces the user's targets; omitted nutrients have no goal.
func (h *GoalsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req model.Goals
	err := parseJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	goals, err := h.goalsService.SetGoals(r.Context(), req.UserID, req)
	if err != nil {
		handleServiceError(w, r, err, "failed to save goals")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}
