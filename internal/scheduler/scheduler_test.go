package scheduler_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ozcitizen/backend/internal/scheduler"
)

type countingSweeper struct{ calls chan struct{} }

func (c *countingSweeper) Sweep(context.Context) (int, error) {
	select {
	case c.calls <- struct{}{}:
	default:
	}
	return 1, nil
}

func TestAddSweep_InvalidSpec(t *testing.T) {
	s := scheduler.New(time.UTC, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := s.AddSweep("cache", "every tuesday", &countingSweeper{}, time.Second); err == nil {
		t.Error("expected error for invalid spec")
	}
}

func TestAddSweep_Runs(t *testing.T) {
	s := scheduler.New(time.UTC, slog.New(slog.NewTextHandler(io.Discard, nil)))
	sw := &countingSweeper{calls: make(chan struct{}, 1)}
	if err := s.AddSweep("cache", "@every 1s", sw, time.Second); err != nil {
		t.Fatalf("add: %v", err)
	}
	s.Start()
	defer s.Stop(context.Background())

	select {
	case <-sw.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("expected sweep to run")
	}
}
