// Package bootstrap builds the shared dependencies of the server and the CLI
// from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ozcitizen/backend/internal/analysis"
	"github.com/ozcitizen/backend/internal/app"
	"github.com/ozcitizen/backend/internal/dataset"
	"github.com/ozcitizen/backend/internal/domain/question"
	"github.com/ozcitizen/backend/internal/domain/terms"
	"github.com/ozcitizen/backend/internal/infrastructure/config"
	"github.com/ozcitizen/backend/internal/store"
)

type Deps struct {
	KV       store.KV
	Bank     *question.Bank
	Registry *app.Registry
	Terms    *app.TermService
	Analysis *analysis.Service
	// KVCache is set when analysis results are cached in the KV store and
	// therefore need sweeping.
	KVCache *analysis.KVCache

	closers []func() error
}

// Open connects to storage, loads the bundled dataset and the term table,
// and selects the analysis backends.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Deps, error) {
	strategy, err := terms.ParseStrategy(cfg.TermsMatchMode)
	if err != nil {
		return nil, err
	}

	bank, err := dataset.Questions()
	if err != nil {
		return nil, err
	}
	seed, err := dataset.Terms()
	if err != nil {
		return nil, err
	}

	kv, err := store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	d := &Deps{KV: kv, Bank: bank}
	d.closers = append(d.closers, kv.Close)

	d.Terms = app.NewTermService(kv, strategy, nil, logger)
	if err := d.Terms.Load(ctx, seed); err != nil {
		d.Close()
		return nil, fmt.Errorf("load terms: %w", err)
	}

	d.Registry = app.NewRegistry(kv, bank, app.Clock{Location: cfg.Timezone}, logger)

	var cache analysis.Cache
	if cfg.RedisURL != "" {
		rc, err := analysis.NewRedisCache(ctx, cfg.RedisURL, cfg.AnalysisCacheTTL)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.closers = append(d.closers, rc.Close)
		cache = rc
		logger.Info("analysis cache", "backend", "redis")
	} else {
		d.KVCache = analysis.NewKVCache(kv, cfg.AnalysisCacheTTL, nil)
		cache = d.KVCache
		logger.Info("analysis cache", "backend", "kv")
	}

	var analyzer analysis.Analyzer
	if cfg.LLMURL != "" {
		analyzer = analysis.NewLLMAnalyzer(cfg.LLMURL, cfg.LLMModel, cfg.LLMAPIKey)
	} else {
		logger.Warn("LLM_URL not set, term analysis uses the built-in dictionary")
	}
	d.Analysis = analysis.NewService(analyzer, cache, logger)

	return d, nil
}

// Close releases connections in reverse order of opening.
func (d *Deps) Close() error {
	var first error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	d.closers = nil
	return first
}
