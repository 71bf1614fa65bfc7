// Package memory implements the repositories in process memory for
// development (DB_DRIVER=memory) and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mealpath/mealpath/internal/model"
	"github.com/mealpath/mealpath/internal/repository"
)

// Store holds every table behind one mutex. Each repository returned from it
// shares that state.
type Store struct {
	mu       sync.Mutex
	progress map[string]model.DailyProgress
	goals    map[string]model.Goals
	stats    map[string]model.Stats
	history  []model.HistoryEntry
}

// New creates an empty store.
func New() *Store {
	return &Store{
		progress: make(map[string]model.DailyProgress),
		goals:    make(map[string]model.Goals),
		stats:    make(map[string]model.Stats),
	}
}

// Ensure interfaces are met.
var _ repository.ProgressRepository = (*ProgressRepo)(nil)
var _ repository.GoalsRepository = (*GoalsRepo)(nil)
var _ repository.StatsRepository = (*StatsRepo)(nil)
var _ repository.HistoryRepository = (*HistoryRepo)(nil)

func (s *Store) Progress() *ProgressRepo { return &ProgressRepo{s: s} }
func (s *Store) Goals() *GoalsRepo       { return &GoalsRepo{s: s} }
func (s *Store) Stats() *StatsRepo       { return &StatsRepo{s: s} }
func (s *Store) History() *HistoryRepo   { return &HistoryRepo{s: s} }

// --- ProgressRepository ---

type ProgressRepo struct {
	s *Store
}

func (r *ProgressRepo) ByUserID(ctx context.Context, userID string) (*model.DailyProgress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.progress[userID]
	if !ok {
		return nil, repository.ErrProgressNotFound
	}
	return &p, nil
}

func (r *ProgressRepo) Create(ctx context.Context, progress *model.DailyProgress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := *progress
	p.UpdatedAt = p.UpdatedAt.UTC()
	r.s.progress[p.UserID] = p
	return nil
}

func (r *ProgressRepo) Update(ctx context.Context, progress *model.DailyProgress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.progress[progress.UserID]; !ok {
		return repository.ErrProgressNotFound
	}
	p := *progress
	p.UpdatedAt = p.UpdatedAt.UTC()
	r.s.progress[p.UserID] = p
	return nil
}

// --- GoalsRepository ---

type GoalsRepo struct {
	s *Store
}

func (r *GoalsRepo) ByUserID(ctx context.Context, userID string) (*model.Goals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.goals[userID]
	if !ok {
		return nil, repository.ErrGoalsNotFound
	}
	return cloneGoals(g), nil
}

func (r *GoalsRepo) Upsert(ctx context.Context, goals *model.Goals) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g := *cloneGoals(*goals)
	g.UpdatedAt = g.UpdatedAt.UTC()
	r.s.goals[g.UserID] = g
	return nil
}

// cloneGoals copies the target pointers so callers never share them with the store.
func cloneGoals(g model.Goals) *model.Goals {
	cp := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		x := *v
		return &x
	}
	g.Calories = cp(g.Calories)
	g.Protein = cp(g.Protein)
	g.Carbs = cp(g.Carbs)
	g.Fat = cp(g.Fat)
	g.Fiber = cp(g.Fiber)
	g.Sugar = cp(g.Sugar)
	g.Cholesterol = cp(g.Cholesterol)
	return &g
}

// --- StatsRepository ---

type StatsRepo struct {
	s *Store
}

func (r *StatsRepo) ByUserID(ctx context.Context, userID string) (*model.Stats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.stats[userID]
	if !ok {
		return nil, repository.ErrStatsNotFound
	}
	return &st, nil
}

func (r *StatsRepo) Upsert(ctx context.Context, stats *model.Stats) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st := *stats
	st.UpdatedAt = st.UpdatedAt.UTC()
	r.s.stats[st.UserID] = st
	return nil
}

// --- HistoryRepository ---

type HistoryRepo struct {
	s *Store
}

func (r *HistoryRepo) Create(ctx context.Context, entry *model.HistoryEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	e := *entry
	e.CreatedAt = e.CreatedAt.UTC()
	r.s.history = append(r.s.history, e)
	return nil
}

func (r *HistoryRepo) ByUserID(ctx context.Context, userID string, limit int) ([]*model.HistoryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*model.HistoryEntry
	for i := range r.s.history {
		if r.s.history[i].UserID == userID {
			e := r.s.history[i]
			result = append(result, &e)
		}
	}

	// newest day first, same ordering as the SQL query
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Day != result[j].Day {
			return result[i].Day > result[j].Day
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
