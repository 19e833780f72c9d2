package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ozcitizen/backend/internal/app"
	"github.com/ozcitizen/backend/internal/domain/attempt"
	"github.com/ozcitizen/backend/internal/domain/category"
	"github.com/ozcitizen/backend/internal/domain/progress"
	"github.com/ozcitizen/backend/internal/domain/settings"
	"github.com/ozcitizen/backend/internal/store"
)

func TestRestore_RebuildsDerivedState(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c := newController(t, kv)

	backup := app.State{
		Scores: []attempt.Record{{
			Score: 4, Total: 5, Percentage: 80, Passed: false,
			Date:            fixedNow.Format("2006-01-02T15:04:05Z07:00"),
			CategoryResults: map[string]category.Result{category.Values: {Total: 5, Correct: 4}},
		}},
		// Stale stats in the backup are replaced by ones rebuilt from Scores.
		CategoryStats: map[string]category.Stat{category.Values: {Total: 5, Correct: 99, Accuracy: 7}},
		Bookmarks: []int{3, 9999},
		CompletedQuestions: map[int]progress.Completed{
			1:    {Completed: true, Correct: true},
			9999: {Completed: true},
		},
		Settings: settings.Default(),
	}
	if err := c.Restore(ctx, backup); err != nil {
		t.Fatalf("restore: %v", err)
	}

	s := c.Snapshot()
	if len(s.Bookmarks) != 1 || s.Bookmarks[0] != 3 {
		t.Errorf("bookmarks = %v, want [3]", s.Bookmarks)
	}
	if len(s.CompletedQuestions) != 1 || s.CompletedQuestions[1].Section != category.People {
		t.Errorf("completed = %+v", s.CompletedQuestions)
	}
	if s.Progress[category.People].Completed != 1 {
		t.Errorf("progress = %+v", s.Progress)
	}
	if got := s.CategoryStats[category.Values]; got.Total != 5 || got.Correct != 4 || got.Accuracy != 80 {
		t.Errorf("category stats not rebuilt: %+v", got)
	}
	if got := s.Statistics.ValuesStats; got.Correct != 4 {
		t.Errorf("values stats = %+v", got)
	}
	if s.Statistics.TotalTests != 1 || s.Scores[0].ID == "" {
		t.Errorf("statistics = %+v, scores = %+v", s.Statistics, s.Scores)
	}

	// Written through, so a fresh controller sees it.
	if got := newController(t, kv).Snapshot(); got.Statistics.TotalTests != 1 {
		t.Errorf("restore not persisted: %+v", got.Statistics)
	}
}

func TestRestore_RejectsInvalidBackup(t *testing.T) {
	c := newController(t, store.NewMemory())

	bad := app.State{
		Scores:   []attempt.Record{{Score: 6, Total: 5, Date: fixedNow.Format("2006-01-02T15:04:05Z07:00")}},
		Settings: settings.Default(),
	}
	if err := c.Restore(context.Background(), bad); !errors.Is(err, attempt.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	bad = app.State{
		Scores: []attempt.Record{{
			Score: 1, Total: 1, Percentage: 100,
			Date:            fixedNow.Format("2006-01-02T15:04:05Z07:00"),
			CategoryResults: map[string]category.Result{"Bogus": {Total: 1, Correct: 1}},
		}},
		Settings: settings.Default(),
	}
	if err := c.Restore(context.Background(), bad); !errors.Is(err, attempt.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for an unknown category, got %v", err)
	}

	bad = app.State{
		Scores: []attempt.Record{{
			Score: 2, Total: 5, Percentage: 40, Passed: true,
			Date: fixedNow.Format("2006-01-02T15:04:05Z07:00"),
		}},
		Settings: settings.Default(),
	}
	if err := c.Restore(context.Background(), bad); !errors.Is(err, attempt.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for a forged verdict, got %v", err)
	}

	bad = app.State{Settings: settings.Settings{Theme: "neon"}}
	if err := c.Restore(context.Background(), bad); !errors.Is(err, settings.ErrInvalid) {
		t.Fatalf("expected settings.ErrInvalid, got %v", err)
	}
	if len(c.Snapshot().Scores) != 0 {
		t.Error("rejected backup changed state")
	}
}
