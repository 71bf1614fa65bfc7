package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mealpath/mealpath/internal/model"
	"github.com/mealpath/mealpath/internal/repository"
)

func TestProgressRepo(t *testing.T) {
	repo := New().Progress()
	ctx := context.Background()

	_, err := repo.ByUserID(ctx, "u1")
	if !errors.Is(err, repository.ErrProgressNotFound) {
		t.Fatalf("err = %v", err)
	}

	err = repo.Update(ctx, &model.DailyProgress{UserID: "u1"})
	if !errors.Is(err, repository.ErrProgressNotFound) {
		t.Errorf("Update missing row: err = %v", err)
	}

	p := &model.DailyProgress{UserID: "u1", Nutrients: model.Nutrients{Calories: 10}, LastResetDate: "2026-02-08"}
	_ = repo.Create(ctx, p)

	// Mutating the caller's copy must not touch the store.
	p.Calories = 999
	got, _ := repo.ByUserID(ctx, "u1")
	if got.Calories != 10 {
		t.Errorf("calories = %v, want 10", got.Calories)
	}
}

func TestGoalsRepoClonesPointers(t *testing.T) {
	repo := New().Goals()
	ctx := context.Background()

	cal := 2000.0
	_ = repo.Upsert(ctx, &model.Goals{UserID: "u1", Calories: &cal})
	cal = 1

	got, err := repo.ByUserID(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if *got.Calories != 2000 {
		t.Errorf("calories = %v, want 2000", *got.Calories)
	}

	*got.Calories = 5
	again, _ := repo.ByUserID(ctx, "u1")
	if *again.Calories != 2000 {
		t.Errorf("store changed through returned pointer: %v", *again.Calories)
	}
}

func TestHistoryRepoOrderAndLimit(t *testing.T) {
	repo := New().History()
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	entries := []model.HistoryEntry{
		{UserID: "u1", Day: "2026-02-01", CreatedAt: base},
		{UserID: "u1", Day: "2026-02-03", CreatedAt: base},
		{UserID: "u1", Day: "2026-02-03", CreatedAt: base.Add(time.Hour)},
		{UserID: "u2", Day: "2026-02-05", CreatedAt: base},
	}
	for i := range entries {
		_ = repo.Create(ctx, &entries[i])
		if entries[i].ID == "" {
			t.Fatal("expected id to be assigned")
		}
	}

	got, _ := repo.ByUserID(ctx, "u1", 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != entries[2].ID || got[1].ID != entries[1].ID {
		t.Errorf("order = %s, %s", got[0].ID, got[1].ID)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Stats().Upsert(ctx, &model.Stats{UserID: "u1", Points: int64(i)})
			_, _ = store.Stats().ByUserID(ctx, "u1")
			_ = store.History().Create(ctx, &model.HistoryEntry{UserID: "u1", Day: "2026-02-08"})
		}(i)
	}
	wg.Wait()

	got, _ := store.History().ByUserID(ctx, "u1", 100)
	if len(got) != 20 {
		t.Errorf("history len = %d, want 20", len(got))
	}
}
