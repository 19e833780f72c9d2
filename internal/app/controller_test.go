package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/ozcitizen/backend/internal/app"
	"github.com/ozcitizen/backend/internal/dataset"
	"github.com/ozcitizen/backend/internal/domain/attempt"
	"github.com/ozcitizen/backend/internal/domain/category"
	"github.com/ozcitizen/backend/internal/domain/question"
	"github.com/ozcitizen/backend/internal/domain/quiz"
	"github.com/ozcitizen/backend/internal/domain/settings"
	"github.com/ozcitizen/backend/internal/store"
)

var fixedNow = time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBank(t *testing.T) *question.Bank {
	t.Helper()
	bank, err := dataset.Questions()
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	return bank
}

func newController(t *testing.T, kv store.KV) *app.Controller {
	t.Helper()
	c := app.NewController("dev-1", kv, testBank(t), app.Clock{
		Now:      func() time.Time { return fixedNow },
		Location: time.UTC,
	}, discardLogger())
	c.Load(context.Background())
	return c
}

func TestLoad_WritesDefaults(t *testing.T) {
	kv := store.NewMemory()
	c := newController(t, kv)

	snap := c.Snapshot()
	if snap.Settings != settings.Default() {
		t.Errorf("expected default settings, got %+v", snap.Settings)
	}
	if len(snap.Scores) != 0 || snap.Statistics.TotalTests != 0 {
		t.Errorf("expected empty history, got %+v", snap.Statistics)
	}
	for _, slot := range []string{store.SlotScores, store.SlotBookmarks, store.SlotSettings, store.SlotProgress} {
		if _, err := kv.Get(context.Background(), "dev-1", slot); err != nil {
			t.Errorf("expected %s to be written, got %v", slot, err)
		}
	}
	if p := snap.Progress[category.Values]; p.Total == 0 || p.Completed != 0 {
		t.Errorf("unexpected values progress %+v", p)
	}
}

func TestLoad_MalformedSlotFallsBack(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	_ = kv.Set(ctx, "dev-1", store.SlotScores, []byte(`{not json`))
	_ = kv.Set(ctx, "dev-1", store.SlotSettings, []byte(`{"theme":"purple","nativeLanguage":"en"}`))

	c := newController(t, kv)
	snap := c.Snapshot()

	if len(snap.Scores) != 0 {
		t.Errorf("expected empty scores, got %d", len(snap.Scores))
	}
	if snap.Settings != settings.Default() {
		t.Errorf("expected default settings, got %+v", snap.Settings)
	}
	raw, err := kv.Get(ctx, "dev-1", store.SlotScores)
	if err != nil || string(raw) != `{not json` {
		t.Errorf("expected malformed slot left untouched by load, got %q, %v", raw, err)
	}

	// The next write replaces it.
	if _, err := c.AppendAttempt(ctx, 18, 20, nil, 12); err != nil {
		t.Fatalf("append: %v", err)
	}
	var stored []attempt.Record
	if err := store.GetJSON(ctx, kv, "dev-1", store.SlotScores, &stored); err != nil || len(stored) != 1 {
		t.Errorf("expected slot rewritten on append, got %d records, %v", len(stored), err)
	}
}

func TestAppendThenReset_MatchesFreshState(t *testing.T) {
	ctx := context.Background()
	fresh := newController(t, store.NewMemory()).Snapshot().Statistics

	c := newController(t, store.NewMemory())
	for i := 0; i < 3; i++ {
		_, err := c.AppendAttempt(ctx, 18, 20, map[string]category.Result{
			category.Values: {Total: 5, Correct: 5},
		}, 12)
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if got := c.Snapshot().Statistics.TotalTests; got != 3 {
		t.Fatalf("expected 3 tests, got %d", got)
	}

	c.Reset(ctx, false)
	if got := c.Snapshot().Statistics; !reflect.DeepEqual(got, fresh) {
		t.Errorf("expected zero statistics after reset\n got: %+v\nwant: %+v", got, fresh)
	}
}

func TestAppendAttempt_Invalid(t *testing.T) {
	c := newController(t, store.NewMemory())
	if _, err := c.AppendAttempt(context.Background(), 5, 4, nil, 1); !errors.Is(err, attempt.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	if len(c.Snapshot().Scores) != 0 {
		t.Error("invalid attempt should not be appended")
	}
}

func TestAppendAttempt_StorageFailureKeepsMemory(t *testing.T) {
	kv := store.NewMemory()
	c := newController(t, kv)
	kv.Fail(errors.New("disk full"))

	res, err := c.AppendAttempt(context.Background(), 16, 20, map[string]category.Result{
		category.Values: {Total: 5, Correct: 4},
	}, 10)
	if err != nil {
		t.Fatalf("expected write failure to be swallowed, got %v", err)
	}
	if rec := res.Attempt; rec.Passed || rec.Percentage != 80 {
		t.Errorf("unexpected record %+v", rec)
	}
	if len(res.Scores) != 1 || res.Scores[0].ID != res.Attempt.ID {
		t.Errorf("expected the updated history to end with the new record, got %+v", res.Scores)
	}
	if got := len(c.Snapshot().Scores); got != 1 {
		t.Errorf("expected in-memory record, got %d", got)
	}

	kv.Fail(nil)
	reloaded := newController(t, kv)
	if got := len(reloaded.Snapshot().Scores); got != 0 {
		t.Errorf("expected nothing persisted, got %d", got)
	}
}

func TestSnapshot_DoesNotAliasState(t *testing.T) {
	c := newController(t, store.NewMemory())
	if _, err := c.AppendAttempt(context.Background(), 18, 20, map[string]category.Result{
		category.Values: {Total: 5, Correct: 5},
	}, 12); err != nil {
		t.Fatalf("append: %v", err)
	}

	snap := c.Snapshot()
	snap.Scores[0].CategoryResults[category.Values] = category.Result{Total: 5, Correct: 0}
	snap.Scores[0].CategoryResults["Bogus"] = category.Result{Total: 1}

	got := c.Snapshot().Scores[0].CategoryResults
	if len(got) != 1 || got[category.Values].Correct != 5 {
		t.Errorf("snapshot mutation leaked into controller state: %+v", got)
	}
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c := newController(t, kv)

	if _, err := c.AppendAttempt(ctx, 15, 20, map[string]category.Result{category.Values: {Total: 5, Correct: 5}}, 9); err != nil {
		t.Fatalf("append: %v", err)
	}
	if on, err := c.ToggleBookmark(ctx, 3); err != nil || !on {
		t.Fatalf("toggle: %v %v", on, err)
	}
	dark := settings.ThemeDark
	if _, err := c.UpdateSettings(ctx, settings.Patch{Theme: &dark}); err != nil {
		t.Fatalf("settings: %v", err)
	}
	if err := c.RecordAnswer(ctx, 1, true); err != nil {
		t.Fatalf("record answer: %v", err)
	}

	snap := newController(t, kv).Snapshot()
	if len(snap.Scores) != 1 || !snap.Scores[0].Passed {
		t.Errorf("unexpected scores %+v", snap.Scores)
	}
	if len(snap.Bookmarks) != 1 || snap.Bookmarks[0] != 3 {
		t.Errorf("unexpected bookmarks %v", snap.Bookmarks)
	}
	if snap.Settings.Theme != settings.ThemeDark {
		t.Errorf("unexpected theme %q", snap.Settings.Theme)
	}
	if !snap.CompletedQuestions[1].Correct {
		t.Errorf("unexpected completed %+v", snap.CompletedQuestions)
	}
	if snap.CategoryStats[category.Values].Accuracy != 100 {
		t.Errorf("unexpected category stats %+v", snap.CategoryStats)
	}
	if snap.Statistics.Streak != 1 {
		t.Errorf("expected streak 1, got %d", snap.Statistics.Streak)
	}
}

func TestFullReset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c := newController(t, kv)
	_, _ = c.ToggleBookmark(ctx, 2)
	if _, err := c.StartQuiz(ctx, quiz.DefaultConfig()); err != nil {
		t.Fatalf("start: %v", err)
	}

	c.Reset(ctx, false)
	if len(c.Snapshot().Bookmarks) != 1 {
		t.Error("partial reset should keep bookmarks")
	}

	c.Reset(ctx, true)
	if len(c.Snapshot().Bookmarks) != 0 {
		t.Error("full reset should clear bookmarks")
	}
	keys, _ := kv.Keys(ctx, "dev-1", store.QuizSessionPrefix)
	if len(keys) != 0 {
		t.Errorf("full reset should discard quizzes, got %v", keys)
	}
}

func TestToggleBookmark_UnknownQuestion(t *testing.T) {
	c := newController(t, store.NewMemory())
	if _, err := c.ToggleBookmark(context.Background(), 9999); !errors.Is(err, question.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestQuizLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	c := newController(t, kv)

	s, err := c.StartQuiz(ctx, quiz.TestConfig())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for i, q := range s.Questions {
		if _, err := c.AnswerQuiz(ctx, s.ID, i, q.Correct); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	loaded, err := c.Quiz(ctx, s.ID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loaded.Answered() != len(s.Questions) {
		t.Errorf("expected all answers persisted, got %d", loaded.Answered())
	}

	res, err := c.FinishQuiz(ctx, s.ID)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !res.Attempt.Passed || res.Attempt.Percentage != 100 {
		t.Errorf("unexpected attempt %+v", res.Attempt)
	}
	if _, err := c.Quiz(ctx, s.ID); !errors.Is(err, app.ErrQuizNotFound) {
		t.Errorf("expected finished quiz to be discarded, got %v", err)
	}

	snap := c.Snapshot()
	if snap.Statistics.TotalTests != 1 || snap.Statistics.PassRate != 100 {
		t.Errorf("unexpected statistics %+v", snap.Statistics)
	}
	if len(snap.CompletedQuestions) != len(s.Questions) {
		t.Errorf("expected %d completed questions, got %d", len(s.Questions), len(snap.CompletedQuestions))
	}
}

func TestQuiz_TimeLimit(t *testing.T) {
	ctx := context.Background()
	now := fixedNow
	c := app.NewController("dev-1", store.NewMemory(), testBank(t), app.Clock{
		Now:      func() time.Time { return now },
		Location: time.UTC,
	}, discardLogger())
	c.Load(ctx)

	s, err := c.StartQuiz(ctx, quiz.TestConfig())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	q := s.Questions[0]
	if _, err := c.AnswerQuiz(ctx, s.ID, 0, q.Correct); err != nil {
		t.Fatalf("answer in time: %v", err)
	}

	now = fixedNow.Add(5 * time.Hour)
	if _, err := c.AnswerQuiz(ctx, s.ID, 1, s.Questions[1].Correct); !errors.Is(err, quiz.ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	loaded, err := c.Quiz(ctx, s.ID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loaded.Answered() != 1 {
		t.Errorf("late answer was stored: %d answered", loaded.Answered())
	}

	res, err := c.FinishQuiz(ctx, s.ID)
	if err != nil {
		t.Fatalf("finish after expiry: %v", err)
	}
	if res.Attempt.TimeSpent != 45 {
		t.Errorf("expected time spent capped at 45, got %d", res.Attempt.TimeSpent)
	}
	if res.Outcome.Score != 1 || res.Attempt.Passed {
		t.Errorf("expected only the in-time answer to count, got %+v", res.Outcome)
	}
}

func TestStartQuiz_UnknownSection(t *testing.T) {
	c := newController(t, store.NewMemory())
	_, err := c.StartQuiz(context.Background(), quiz.Config{Mode: quiz.ModePractice, Section: "Part 7"})
	if !errors.Is(err, quiz.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRegistry_ReusesController(t *testing.T) {
	r := app.NewRegistry(store.NewMemory(), testBank(t), app.Clock{}, discardLogger())
	ctx := context.Background()

	a := r.Get(ctx, "dev-a")
	if r.Get(ctx, "dev-a") != a {
		t.Error("expected the same controller for the same device")
	}
	if r.Get(ctx, "dev-b") == a {
		t.Error("expected a separate controller per device")
	}
}
