package routes

import (
	"net/http"

	"github.com/mealpath/mealpath/internal/app"
	"github.com/mealpath/mealpath/internal/handler"
	"github.com/mealpath/mealpath/internal/middleware"
)

// SetupRoutes builds the API mux. The returned limiter must be closed on
// shutdown.
func SetupRoutes(app *app.App) (http.Handler, *middleware.RateLimiter) {
	// Handlers
	progress := handler.NewProgressHandler(app.ProgressService)
	goals := handler.NewGoalsHandler(app.GoalsService)
	stats := handler.NewStatsHandler(app.StatsService)

	var health *handler.HealthHandler
	if app.DB != nil {
		health = handler.NewHealthHandler(app.DB)
	} else {
		health = handler.NewHealthHandler(nil)
	}

	// Writes are rate limited per client IP
	limiter := middleware.NewRateLimiter(app.Cfg.RateLimitWrites, app.Cfg.RateLimitWindow)
	limitWrites := middleware.RateLimit(limiter)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", health.Health)

	// Daily progress
	mux.HandleFunc("GET /api/progress", progress.Get)
	mux.Handle("POST /api/progress", limitWrites(http.HandlerFunc(progress.Set)))
	mux.HandleFunc("GET /api/progress/summary", progress.Summary)
	mux.HandleFunc("GET /api/progress/history", progress.History)

	// Goals and points
	mux.HandleFunc("GET /api/goals", goals.Get)
	mux.Handle("PUT /api/goals", limitWrites(http.HandlerFunc(goals.Put)))
	mux.HandleFunc("GET /api/stats", stats.Get)

	// Apply global middleware
	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.Recover,
	), limiter
}
