// Package store is the persisted key-value primitive. Values are opaque
// JSON blobs grouped by namespace: one namespace per device plus Global for
// data shared by every device.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// Global is the namespace shared by every device.
const Global = "global"

// Named slots.
const (
	SlotScores             = "scores"
	SlotBookmarks          = "bookmarks"
	SlotProgress           = "progress"
	SlotSettings           = "settings"
	SlotCompletedQuestions = "completed_questions"
	SlotCategoryStats      = "category_stats"

	SlotTermsDatabase     = "terms_database"
	SlotTermsTranslations = "terms_translations"
	SlotTermsLastUpdate   = "terms_last_update"

	QuizSessionPrefix = "quiz_session:"
	AnalysisPrefix    = "analysis:"
)

// QuizSessionKey is the slot a quiz session is kept under until it finishes.
func QuizSessionKey(id string) string { return QuizSessionPrefix + id }

// AnalysisKey is the slot of a cached analysis result.
func AnalysisKey(hash string) string { return AnalysisPrefix + hash }

type KV interface {
	// Get returns ErrNotFound when key is absent.
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	// Remove deletes keys; missing keys are not an error.
	Remove(ctx context.Context, namespace string, keys ...string) error
	// Keys lists the keys in namespace starting with prefix, sorted.
	Keys(ctx context.Context, namespace, prefix string) ([]string, error)
	Close() error
}

// GetJSON decodes the value at key into v.
func GetJSON(ctx context.Context, kv KV, namespace, key string, v any) error {
	data, err := kv.Get(ctx, namespace, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s/%s: %w", namespace, key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, kv KV, namespace, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", namespace, key, err)
	}
	return kv.Set(ctx, namespace, key, data)
}
