package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mealpath/mealpath/internal/handler"
	"github.com/mealpath/mealpath/internal/model"
	"github.com/mealpath/mealpath/internal/repository"
	"github.com/mealpath/mealpath/internal/repository/memory"
	"github.com/mealpath/mealpath/internal/service"
)

func ptr(v float64) *float64 { return &v }

var testNow = time.Date(2026, 2, 8, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store    *memory.Store
	progress *handler.ProgressHandler
	goals    *handler.GoalsHandler
	stats    *handler.StatsHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()

	progressService := service.NewProgressService(store.Progress(), store.Goals(), store.Stats(), store.History(), time.UTC)
	progressService.SetClock(func() time.Time { return testNow })

	return &fixture{
		store:    store,
		progress: handler.NewProgressHandler(progressService),
		goals:    handler.NewGoalsHandler(service.NewGoalsService(store.Goals())),
		stats:    handler.NewStatsHandler(service.NewStatsService(store.Stats())),
	}
}

func do(h http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	err := json.Unmarshal(rec.Body.Bytes(), dst)
	if err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestGetProgress(t *testing.T) {
	f := newFixture(t)

	t.Run("missing userId", func(t *testing.T) {
		rec := do(f.progress.Get, http.MethodGet, "/api/progress", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("new user gets empty row", func(t *testing.T) {
		rec := do(f.progress.Get, http.MethodGet, "/api/progress?userId=u1", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Progress model.DailyProgress `json:"progress"`
		}
		decode(t, rec, &resp)
		if resp.Progress.UserID != "u1" || resp.Progress.LastResetDate != "2026-02-08" {
			t.Errorf("progress = %+v", resp.Progress)
		}
		if resp.Progress.Calories != 0 {
			t.Errorf("calories = %v, want 0", resp.Progress.Calories)
		}
	})
}

func TestGetProgressRollsOverStaleDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_ = f.store.Goals().Upsert(ctx, &model.Goals{UserID: "u1", Calories: ptr(2000), Protein: ptr(100)})
	_ = f.store.Progress().Create(ctx, &model.DailyProgress{
		UserID:        "u1",
		Nutrients:     model.Nutrients{Calories: 1900, Protein: 70},
		LastResetDate: "2026-02-07",
	})

	rec := do(f.progress.Get, http.MethodGet, "/api/progress?userId=u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Progress model.DailyProgress `json:"progress"`
	}
	decode(t, rec, &resp)
	if resp.Progress.Calories != 0 || resp.Progress.Protein != 0 {
		t.Errorf("accumulators not reset: %+v", resp.Progress.Nutrients)
	}
	if resp.Progress.LastResetDate != "2026-02-08" {
		t.Errorf("lastResetDate = %q", resp.Progress.LastResetDate)
	}

	rec = do(f.stats.Get, http.MethodGet, "/api/stats?userId=u1", nil)
	var statsResp struct {
		Stats model.Stats `json:"stats"`
	}
	decode(t, rec, &statsResp)
	if statsResp.Stats.Points != 150 {
		t.Errorf("points = %d, want 150", statsResp.Stats.Points)
	}

	rec = do(f.progress.History, http.MethodGet, "/api/progress/history?userId=u1", nil)
	var historyResp struct {
		Items []model.HistoryEntry `json:"items"`
	}
	decode(t, rec, &historyResp)
	if len(historyResp.Items) != 1 || historyResp.Items[0].Day != "2026-02-07" || historyResp.Items[0].PointsAwarded != 150 {
		t.Errorf("history = %+v", historyResp.Items)
	}
}

func TestSetProgress(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"invalid json", "{not json", http.StatusBadRequest},
		{"missing userId", map[string]any{"calories": 100}, http.StatusBadRequest},
		{"missing calories", map[string]any{"userId": "u1", "protein": 10}, http.StatusBadRequest},
		{"negative value", map[string]any{"userId": "u1", "calories": 100, "fat": -1}, http.StatusBadRequest},
		{"ok", map[string]any{"userId": "u1", "calories": 500, "protein": 20}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec := do(f.progress.Set, http.MethodPost, "/api/progress", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestSetProgressResponse(t *testing.T) {
	f := newFixture(t)

	rec := do(f.progress.Set, http.MethodPost, "/api/progress", map[string]any{
		"userId": "u1", "calories": 500, "protein": 20,
	})

	var resp struct {
		Progress model.DailyProgress `json:"progress"`
		Message  string              `json:"message"`
	}
	decode(t, rec, &resp)
	if resp.Message == "" {
		t.Error("expected a message")
	}
	if resp.Progress.Calories != 500 || resp.Progress.Protein != 20 || resp.Progress.Carbs != 0 {
		t.Errorf("progress = %+v", resp.Progress.Nutrients)
	}
}

func TestProgressStorageFailure(t *testing.T) {
	failing := &failingProgressRepo{err: errors.New("connection refused")}
	store := memory.New()
	h := handler.NewProgressHandler(service.NewProgressService(failing, store.Goals(), store.Stats(), store.History(), time.UTC))

	rec := do(h.Get, http.MethodGet, "/api/progress?userId=u1", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("storage detail leaked: %s", rec.Body.String())
	}
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_ = f.store.Goals().Upsert(ctx, &model.Goals{UserID: "u1", Calories: ptr(2000)})
	_ = f.store.Progress().Create(ctx, &model.DailyProgress{
		UserID:        "u1",
		Nutrients:     model.Nutrients{Calories: 1500},
		LastResetDate: "2026-02-08",
	})

	rec := do(f.progress.Summary, http.MethodGet, "/api/progress/summary?userId=u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp service.ProgressSummary
	decode(t, rec, &resp)
	if len(resp.Breakdown) != 1 {
		t.Fatalf("breakdown = %+v", resp.Breakdown)
	}
	if resp.Breakdown[0].Zone != service.ZoneYellow || resp.ProjectedPoints != 50 {
		t.Errorf("breakdown = %+v, projected = %d", resp.Breakdown[0], resp.ProjectedPoints)
	}
}

func TestGoals(t *testing.T) {
	f := newFixture(t)

	rec := do(f.goals.Get, http.MethodGet, "/api/goals?userId=u1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status before put = %d, want 404", rec.Code)
	}

	rec = do(f.goals.Put, http.MethodPut, "/api/goals", map[string]any{"userId": "u1", "calories": 2000, "protein": 120})
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = do(f.goals.Get, http.MethodGet, "/api/goals?userId=u1", nil)
	var resp struct {
		Goals model.Goals `json:"goals"`
	}
	decode(t, rec, &resp)
	if resp.Goals.Calories == nil || *resp.Goals.Calories != 2000 {
		t.Errorf("calories goal = %v", resp.Goals.Calories)
	}
	if resp.Goals.Fat != nil {
		t.Errorf("fat goal = %v, want unset", *resp.Goals.Fat)
	}

	rec = do(f.goals.Put, http.MethodPut, "/api/goals", map[string]any{"userId": "u1", "calories": -5})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative goal status = %d, want 400", rec.Code)
	}
}

func TestStatsDefaultsToZero(t *testing.T) {
	f := newFixture(t)

	rec := do(f.stats.Get, http.MethodGet, "/api/stats?userId=nobody", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Stats model.Stats `json:"stats"`
	}
	decode(t, rec, &resp)
	if resp.Stats.Points != 0 || resp.Stats.UserID != "nobody" {
		t.Errorf("stats = %+v", resp.Stats)
	}
}

func TestHealth(t *testing.T) {
	rec := do(handler.NewHealthHandler(nil).Health, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("memory status = %d", rec.Code)
	}

	rec = do(handler.NewHealthHandler(pingerFunc(func(context.Context) error {
		return errors.New("down")
	})).Health, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("failing db status = %d, want 503", rec.Code)
	}
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

type failingProgressRepo struct {
	err error
}

var _ repository.ProgressRepository = (*failingProgressRepo)(nil)

func (r *failingProgressRepo) ByUserID(ctx context.Context, userID string) (*model.DailyProgress, error) {
	return nil, r.err
}

func (r *failingProgressRepo) Create(ctx context.Context, p *model.DailyProgress) error {
	return r.err
}

func (r *failingProgressRepo) Update(ctx context.Context, p *model.DailyProgress) error {
	return r.err
}
