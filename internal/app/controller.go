// Package app holds the per-device controller that owns the persisted
// state and applies every user action to it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ozcitizen/backend/internal/domain/attempt"
	"github.com/ozcitizen/backend/internal/domain/category"
	"github.com/ozcitizen/backend/internal/domain/progress"
	"github.com/ozcitizen/backend/internal/domain/question"
	"github.com/ozcitizen/backend/internal/domain/quiz"
	"github.com/ozcitizen/backend/internal/domain/settings"
	"github.com/ozcitizen/backend/internal/domain/stats"
	"github.com/ozcitizen/backend/internal/id"
	"github.com/ozcitizen/backend/internal/store"
)

var ErrQuizNotFound = errors.New("quiz not found")

// Clock supplies the current time and the zone calendar days are counted in.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func (c Clock) withDefaults() Clock {
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	return c
}

// Controller serializes every action for one device. State changes are
// applied in memory first and then written through to the store; a failed
// write is logged and the in-memory state is kept.
type Controller struct {
	mu     sync.Mutex
	device string
	kv     store.KV
	bank   *question.Bank
	clock  Clock
	logger *slog.Logger

	state     State
	bookmarks progress.Bookmarks
}

// NewController returns a controller with empty state. Call Load before use.
func NewController(device string, kv store.KV, bank *question.Bank, clock Clock, logger *slog.Logger) *Controller {
	return &Controller{
		device:    device,
		kv:        kv,
		bank:      bank,
		clock:     clock.withDefaults(),
		logger:    logger.With("device", device),
		state:     emptyState(bank.Totals()),
		bookmarks: progress.Bookmarks{},
	}
}

func (c *Controller) Device() string { return c.device }

// Load reads every slot. A missing slot is initialized with its default; a
// slot that fails to decode is replaced by its default in memory only.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := emptyState(c.bank.Totals())
	loadSlot(ctx, c, store.SlotScores, &s.Scores, []attempt.Record{})
	loadSlot(ctx, c, store.SlotBookmarks, &s.Bookmarks, []int{})
	loadSlot(ctx, c, store.SlotSettings, &s.Settings, settings.Default())
	loadSlot(ctx, c, store.SlotCompletedQuestions, &s.CompletedQuestions, map[int]progress.Completed{})
	loadSlot(ctx, c, store.SlotCategoryStats, &s.CategoryStats, map[string]category.Stat{})

	// A stored null decodes without error.
	if s.Scores == nil {
		s.Scores = []attempt.Record{}
	}
	if s.Bookmarks == nil {
		s.Bookmarks = []int{}
	}
	if s.CompletedQuestions == nil {
		s.CompletedQuestions = map[int]progress.Completed{}
	}
	if s.CategoryStats == nil {
		s.CategoryStats = map[string]category.Stat{}
	}

	if err := s.Settings.Validate(); err != nil {
		c.logger.Warn("stored settings invalid, using defaults", "error", err)
		s.Settings = settings.Default()
	}

	// Progress is derived, so it is rebuilt against the current bank.
	s.Progress = progress.Compute(s.CompletedQuestions, c.bank.Totals())
	c.persist(ctx, store.SlotProgress, s.Progress)

	c.state = s
	c.bookmarks = progress.NewBookmarks(s.Bookmarks)
	c.recompute()
}

// loadSlot decodes key into dst, falling back to def. Only a missing slot
// is initialized in the store; an unreadable one is left as it is until the
// next write to it.
func loadSlot[T any](ctx context.Context, c *Controller, key string, dst *T, def T) {
	var v T
	err := store.GetJSON(ctx, c.kv, c.device, key, &v)
	if err == nil {
		*dst = v
		return
	}
	*dst = def
	if errors.Is(err, store.ErrNotFound) {
		c.persist(ctx, key, def)
		return
	}
	c.logger.Warn("stored slot unreadable, using default", "slot", key, "error", err)
}

// persist writes v to key. Failures are logged and swallowed.
func (c *Controller) persist(ctx context.Context, key string, v any) {
	if err := store.SetJSON(ctx, c.kv, c.device, key, v); err != nil {
		c.logger.Error("failed to persist slot", "slot", key, "error", err)
	}
}

func (c *Controller) recompute() {
	c.state.Statistics = stats.Recompute(c.state.Scores, c.state.CategoryStats, c.clock.Now(), c.clock.Location)
}

// Snapshot returns a copy of the current state with statistics brought up
// to date for the current day.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recompute()
	return c.state.clone()
}

// AppendResult is the new record and the attempt history including it.
type AppendResult struct {
	Attempt attempt.Record   `json:"attempt"`
	Scores  []attempt.Record `json:"scores"`
}

// AppendAttempt validates and appends a finished attempt, then updates the
// category stats and statistics.
func (c *Controller) AppendAttempt(ctx context.Context, score, total int, results map[string]category.Result, timeSpent int) (AppendResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.appendAttempt(ctx, score, total, results, timeSpent)
	if err != nil {
		return AppendResult{}, err
	}
	return AppendResult{Attempt: rec, Scores: cloneScores(c.state.Scores)}, nil
}

func (c *Controller) appendAttempt(ctx context.Context, score, total int, results map[string]category.Result, timeSpent int) (attempt.Record, error) {
	rec, err := attempt.New(score, total, results, timeSpent, c.clock.Now())
	if err != nil {
		return attempt.Record{}, err
	}

	c.state.Scores = append(c.state.Scores, rec)
	c.state.CategoryStats = attempt.MergeCategoryStats(c.state.CategoryStats, rec.CategoryResults)
	c.persist(ctx, store.SlotScores, c.state.Scores)
	c.persist(ctx, store.SlotCategoryStats, c.state.CategoryStats)
	c.recompute()

	c.logger.Info("attempt recorded", "score", rec.Score, "total", rec.Total, "passed", rec.Passed)
	return rec, nil
}

// RecordAnswer stores the latest answer to a question and updates progress.
func (c *Controller) RecordAnswer(ctx context.Context, questionID int, correct bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, err := c.bank.Get(questionID)
	if err != nil {
		return err
	}
	c.recordAnswer(ctx, q, correct)
	return nil
}

func (c *Controller) recordAnswer(ctx context.Context, q question.Question, correct bool) {
	progress.Record(c.state.CompletedQuestions, q.ID, q.Section, correct, c.clock.Now())
	c.state.Progress = progress.Compute(c.state.CompletedQuestions, c.bank.Totals())
	c.persist(ctx, store.SlotCompletedQuestions, c.state.CompletedQuestions)
	c.persist(ctx, store.SlotProgress, c.state.Progress)
}

// ToggleBookmark flips a question's bookmark and reports the new membership.
func (c *Controller) ToggleBookmark(ctx context.Context, questionID int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.bank.Get(questionID); err != nil {
		return false, err
	}
	on := c.bookmarks.Toggle(questionID)
	c.state.Bookmarks = c.bookmarks.IDs()
	c.persist(ctx, store.SlotBookmarks, c.state.Bookmarks)
	return on, nil
}

func (c *Controller) UpdateSettings(ctx context.Context, patch settings.Patch) (settings.Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.state.Settings.Apply(patch)
	if err != nil {
		return settings.Settings{}, err
	}
	c.state.Settings = next
	c.persist(ctx, store.SlotSettings, next)
	return next, nil
}

// Reset clears the attempt history and everything derived from it. A full
// reset also clears bookmarks, settings and unfinished quizzes.
func (c *Controller) Reset(ctx context.Context, full bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fresh := emptyState(c.bank.Totals())
	c.state.Scores = fresh.Scores
	c.state.CompletedQuestions = fresh.CompletedQuestions
	c.state.CategoryStats = fresh.CategoryStats
	c.state.Progress = fresh.Progress

	keys := []string{store.SlotScores, store.SlotCompletedQuestions, store.SlotCategoryStats, store.SlotProgress}
	if full {
		c.state.Bookmarks = fresh.Bookmarks
		c.state.Settings = fresh.Settings
		c.bookmarks = progress.Bookmarks{}
		keys = append(keys, store.SlotBookmarks, store.SlotSettings)

		sessions, err := c.kv.Keys(ctx, c.device, store.QuizSessionPrefix)
		if err != nil {
			c.logger.Error("failed to list quiz sessions", "error", err)
		}
		keys = append(keys, sessions...)
	}

	if err := c.kv.Remove(ctx, c.device, keys...); err != nil {
		c.logger.Error("failed to clear slots", "error", err)
	}
	c.recompute()
	c.logger.Info("state reset", "full", full)
}

// Restore replaces the device's history, bookmarks and settings with the
// contents of a backup. Every attempt is validated. Derived fields of s,
// category stats included, are ignored and rebuilt from the attempts;
// answers and bookmarks for questions not in the bank are dropped.
func (c *Controller) Restore(ctx context.Context, s State) error {
	for i, rec := range s.Scores {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("scores[%d]: %w", i, err)
		}
	}
	if err := s.Settings.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := emptyState(c.bank.Totals())
	next.Settings = s.Settings
	next.Scores = append(next.Scores, s.Scores...)
	for i := range next.Scores {
		if next.Scores[i].ID == "" {
			next.Scores[i].ID = id.GenerateID()
		}
	}

	// Category stats are always rebuilt so they agree with the attempts.
	for _, rec := range next.Scores {
		next.CategoryStats = attempt.MergeCategoryStats(next.CategoryStats, rec.CategoryResults)
	}

	dropped := 0
	for qid, done := range s.CompletedQuestions {
		q, err := c.bank.Get(qid)
		if err != nil {
			dropped++
			continue
		}
		done.Section = q.Section
		next.CompletedQuestions[qid] = done
	}
	bookmarks := progress.Bookmarks{}
	for _, qid := range s.Bookmarks {
		if _, err := c.bank.Get(qid); err != nil {
			dropped++
			continue
		}
		bookmarks[qid] = struct{}{}
	}
	next.Bookmarks = bookmarks.IDs()
	next.Progress = progress.Compute(next.CompletedQuestions, c.bank.Totals())

	c.state = next
	c.bookmarks = bookmarks
	c.persist(ctx, store.SlotScores, next.Scores)
	c.persist(ctx, store.SlotBookmarks, next.Bookmarks)
	c.persist(ctx, store.SlotSettings, next.Settings)
	c.persist(ctx, store.SlotCompletedQuestions, next.CompletedQuestions)
	c.persist(ctx, store.SlotCategoryStats, next.CategoryStats)
	c.persist(ctx, store.SlotProgress, next.Progress)
	c.recompute()

	c.logger.Info("state restored", "attempts", len(next.Scores), "dropped", dropped)
	return nil
}

// StartQuiz draws a new quiz from the bank and keeps it until finished.
func (c *Controller) StartQuiz(ctx context.Context, cfg quiz.Config) (*quiz.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cfg.Section != "" && !category.Valid(cfg.Section) {
		return nil, fmt.Errorf("%w: unknown section %q", quiz.ErrInvalidConfig, cfg.Section)
	}
	s, err := quiz.New(c.bank.All(), cfg, c.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := store.SetJSON(ctx, c.kv, c.device, store.QuizSessionKey(s.ID), s); err != nil {
		return nil, fmt.Errorf("save quiz: %w", err)
	}
	return s, nil
}

func (c *Controller) Quiz(ctx context.Context, id string) (*quiz.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadQuiz(ctx, id)
}

func (c *Controller) loadQuiz(ctx context.Context, id string) (*quiz.Session, error) {
	var s quiz.Session
	err := store.GetJSON(ctx, c.kv, c.device, store.QuizSessionKey(id), &s)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// AnswerQuiz selects option for the question at index and records the
// answer against the question's completion entry. Once a timed quiz has run
// past its limit no more answers are taken; it can still be finished.
func (c *Controller) AnswerQuiz(ctx context.Context, id string, index, option int) (*quiz.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.loadQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.Finished() && s.Expired(c.clock.Now()) {
		return nil, quiz.ErrExpired
	}
	if err := s.Select(index, option); err != nil {
		return nil, err
	}
	if err := store.SetJSON(ctx, c.kv, c.device, store.QuizSessionKey(id), s); err != nil {
		return nil, fmt.Errorf("save quiz: %w", err)
	}

	q := s.Questions[index]
	c.recordAnswer(ctx, q, q.IsCorrect(option))
	return s, nil
}

// FinishResult is returned when a quiz is finished.
type FinishResult struct {
	Outcome quiz.Outcome   `json:"outcome"`
	Attempt attempt.Record `json:"attempt"`
}

// FinishQuiz scores the quiz, appends it to the history and discards the
// session.
func (c *Controller) FinishQuiz(ctx context.Context, id string) (FinishResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.loadQuiz(ctx, id)
	if err != nil {
		return FinishResult{}, err
	}
	out, err := s.Finish(c.clock.Now())
	if err != nil {
		return FinishResult{}, err
	}
	rec, err := c.appendAttempt(ctx, out.Score, out.Total, out.CategoryResults, out.TimeSpent)
	if err != nil {
		return FinishResult{}, err
	}
	if err := c.kv.Remove(ctx, c.device, store.QuizSessionKey(id)); err != nil {
		c.logger.Error("failed to discard quiz", "quiz", id, "error", err)
	}
	return FinishResult{Outcome: out, Attempt: rec}, nil
}
