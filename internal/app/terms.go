package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ozcitizen/backend/internal/domain/terms"
	"github.com/ozcitizen/backend/internal/store"
)

// storedTerm is the terms_database value for one key. Translations live in
// their own slot.
type storedTerm struct {
	Definition  string `json:"definition"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// ImportResult summarizes one import.
type ImportResult struct {
	Received int `json:"received"`
	Changed  int `json:"changed"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// TermService owns the shared term table and keeps it persisted in the
// global namespace. Lookups may run concurrently; imports are exclusive.
type TermService struct {
	kv     store.KV
	now    func() time.Time
	logger *slog.Logger

	mu         sync.RWMutex
	table      *terms.Table
	lastUpdate time.Time
}

func NewTermService(kv store.KV, strategy terms.Strategy, now func() time.Time, logger *slog.Logger) *TermService {
	if now == nil {
		now = time.Now
	}
	return &TermService{
		kv:     kv,
		now:    now,
		logger: logger,
		table:  terms.NewTable(strategy),
	}
}

// Load reads the persisted table. When nothing usable is stored, seed is
// imported and written back.
func (s *TermService) Load(ctx context.Context, seed []terms.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, last, err := s.read(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Warn("stored terms unreadable, reseeding", "error", err)
	}

	s.table.Clear()
	if len(entries) > 0 {
		s.table.Import(entries)
		s.lastUpdate = last
		s.logger.Info("terms loaded", "count", s.table.Len())
		return nil
	}

	s.table.Import(seed)
	if err := s.write(ctx); err != nil {
		return err
	}
	s.logger.Info("terms seeded", "count", s.table.Len())
	return nil
}

// Import parses a JSON term list and merges it into the table.
func (s *TermService) Import(ctx context.Context, data []byte) (ImportResult, error) {
	entries, skipped, err := terms.ParseSource(data)
	if err != nil {
		return ImportResult{}, err
	}
	for _, e := range skipped {
		s.logger.Warn("skipping term", "error", e)
	}

	res, err := s.ImportEntries(ctx, entries)
	res.Skipped = len(skipped)
	return res, err
}

// ImportEntries merges already normalized entries into the table.
func (s *TermService) ImportEntries(ctx context.Context, entries []terms.Entry) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.table.Import(entries)
	res := ImportResult{Received: len(entries), Changed: changed, Total: s.table.Len()}
	if changed == 0 {
		return res, nil
	}
	if err := s.write(ctx); err != nil {
		return res, err
	}
	s.logger.Info("terms imported", "received", res.Received, "changed", changed, "total", res.Total)
	return res, nil
}

func (s *TermService) Lookup(text, language string) []terms.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Lookup(text, language)
}

func (s *TermService) Get(term string) (terms.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Get(term)
}

// Clear empties the table and its persisted slots.
func (s *TermService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table.Clear()
	s.lastUpdate = time.Time{}
	return s.kv.Remove(ctx, store.Global,
		store.SlotTermsDatabase, store.SlotTermsTranslations, store.SlotTermsLastUpdate)
}

func (s *TermService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Len()
}

func (s *TermService) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

func (s *TermService) read(ctx context.Context) ([]terms.Entry, time.Time, error) {
	var db map[string]storedTerm
	if err := store.GetJSON(ctx, s.kv, store.Global, store.SlotTermsDatabase, &db); err != nil {
		return nil, time.Time{}, err
	}

	var translations map[string]map[string]string
	err := store.GetJSON(ctx, s.kv, store.Global, store.SlotTermsTranslations, &translations)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Warn("stored translations unreadable, ignoring", "error", err)
	}

	entries := make([]terms.Entry, 0, len(db))
	for term, st := range db {
		entries = append(entries, terms.Entry{
			Term:         term,
			Definition:   st.Definition,
			Translations: translations[term],
			Placeholder:  st.Placeholder,
		})
	}

	var stamp string
	var last time.Time
	if err := store.GetJSON(ctx, s.kv, store.Global, store.SlotTermsLastUpdate, &stamp); err == nil {
		last, _ = time.Parse(time.RFC3339, stamp)
	}
	return entries, last, nil
}

func (s *TermService) write(ctx context.Context) error {
	entries := s.table.Entries()
	db := make(map[string]storedTerm, len(entries))
	translations := make(map[string]map[string]string)
	for _, e := range entries {
		db[e.Term] = storedTerm{Definition: e.Definition, Placeholder: e.Placeholder}
		if len(e.Translations) > 0 {
			translations[e.Term] = e.Translations
		}
	}

	s.lastUpdate = s.now().UTC()
	if err := store.SetJSON(ctx, s.kv, store.Global, store.SlotTermsDatabase, db); err != nil {
		return fmt.Errorf("persist terms: %w", err)
	}
	if err := store.SetJSON(ctx, s.kv, store.Global, store.SlotTermsTranslations, translations); err != nil {
		return fmt.Errorf("persist translations: %w", err)
	}
	if err := store.SetJSON(ctx, s.kv, store.Global, store.SlotTermsLastUpdate, s.lastUpdate.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("persist terms timestamp: %w", err)
	}
	return nil
}
