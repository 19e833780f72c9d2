package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ozcitizen/backend/internal/store"
)

func openSQLite(t *testing.T) store.KV {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "kv.db")
	kv, err := store.Open(context.Background(), store.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

// backends runs fn against every KV implementation that needs no server.
func backends(t *testing.T, fn func(t *testing.T, kv store.KV)) {
	t.Run("memory", func(t *testing.T) { fn(t, store.NewMemory()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, openSQLite(t)) })
}

func TestKV_GetSet(t *testing.T) {
	backends(t, func(t *testing.T, kv store.KV) {
		ctx := context.Background()

		if _, err := kv.Get(ctx, "dev", store.SlotScores); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := kv.Set(ctx, "dev", store.SlotScores, []byte(`[1]`)); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := kv.Set(ctx, "dev", store.SlotScores, []byte(`[1,2]`)); err != nil {
			t.Fatalf("overwrite: %v", err)
		}
		got, err := kv.Get(ctx, "dev", store.SlotScores)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(got) != `[1,2]` {
			t.Errorf("expected overwritten value, got %s", got)
		}
	})
}

func TestKV_NamespacesAreIsolated(t *testing.T) {
	backends(t, func(t *testing.T, kv store.KV) {
		ctx := context.Background()
		_ = kv.Set(ctx, "a", store.SlotSettings, []byte(`"a"`))

		if _, err := kv.Get(ctx, "b", store.SlotSettings); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected other namespace to be empty, got %v", err)
		}
	})
}

func TestKV_RemoveAndKeys(t *testing.T) {
	backends(t, func(t *testing.T, kv store.KV) {
		ctx := context.Background()
		for _, key := range []string{store.AnalysisKey("b"), store.AnalysisKey("a"), store.SlotTermsDatabase} {
			if err := kv.Set(ctx, store.Global, key, []byte(`{}`)); err != nil {
				t.Fatalf("set %s: %v", key, err)
			}
		}

		keys, err := kv.Keys(ctx, store.Global, store.AnalysisPrefix)
		if err != nil {
			t.Fatalf("keys: %v", err)
		}
		if len(keys) != 2 || keys[0] != "analysis:a" || keys[1] != "analysis:b" {
			t.Errorf("unexpected keys %v", keys)
		}

		if err := kv.Remove(ctx, store.Global, store.AnalysisKey("a"), "missing"); err != nil {
			t.Fatalf("remove: %v", err)
		}
		keys, _ = kv.Keys(ctx, store.Global, "")
		if len(keys) != 2 {
			t.Errorf("expected 2 keys left, got %v", keys)
		}
	})
}

func TestJSONHelpers(t *testing.T) {
	backends(t, func(t *testing.T, kv store.KV) {
		ctx := context.Background()
		in := map[string]int{"a": 1}
		if err := store.SetJSON(ctx, kv, "dev", store.SlotProgress, in); err != nil {
			t.Fatalf("set json: %v", err)
		}
		var out map[string]int
		if err := store.GetJSON(ctx, kv, "dev", store.SlotProgress, &out); err != nil {
			t.Fatalf("get json: %v", err)
		}
		if out["a"] != 1 {
			t.Errorf("unexpected value %v", out)
		}

		_ = kv.Set(ctx, "dev", store.SlotBookmarks, []byte(`not json`))
		var ids []int
		err := store.GetJSON(ctx, kv, "dev", store.SlotBookmarks, &ids)
		if err == nil || errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected decode error, got %v", err)
		}
	})
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := store.Open(context.Background(), "oracle", ""); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestMemory_Fail(t *testing.T) {
	kv := store.NewMemory()
	boom := errors.New("disk full")
	kv.Fail(boom)

	if err := kv.Set(context.Background(), "dev", "k", nil); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
	kv.Fail(nil)
	if err := kv.Set(context.Background(), "dev", "k", nil); err != nil {
		t.Errorf("expected recovery, got %v", err)
	}
}
