package analysis

import (
	"context"
	"log/slog"
	"strings"
)

// Source tells where a result came from.
type Source string

const (
	SourceCache    Source = "cache"
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

type Request struct {
	Text     string   `json:"text"`
	Options  []string `json:"options,omitempty"`
	Language string   `json:"language"`
}

type Response struct {
	Terms  []Term `json:"terms"`
	Source Source `json:"source"`
}

// Service answers analysis requests from the cache, the analyzer or the
// fallback dictionary, in that order.
type Service struct {
	analyzer Analyzer // nil when no model is configured
	cache    Cache
	logger   *slog.Logger
}

func NewService(analyzer Analyzer, cache Cache, logger *slog.Logger) *Service {
	return &Service{analyzer: analyzer, cache: cache, logger: logger}
}

// Analyze never fails: cache and model errors are logged and the fallback
// dictionary is used. Fallback results are not cached.
func (s *Service) Analyze(ctx context.Context, req Request) Response {
	lang := strings.ToLower(strings.TrimSpace(req.Language))
	if lang == "" {
		lang = "en"
	}
	key := CacheKey(req.Text, req.Options, lang)

	terms, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("analysis cache read failed", "error", err)
	}
	if ok {
		return Response{Terms: terms, Source: SourceCache}
	}

	if s.analyzer == nil {
		return Response{Terms: Fallback(req.Text, req.Options, lang), Source: SourceFallback}
	}

	terms, err = s.analyzer.Analyze(ctx, req.Text, req.Options, lang)
	if err != nil {
		s.logger.Warn("analysis failed, using fallback", "error", err)
		return Response{Terms: Fallback(req.Text, req.Options, lang), Source: SourceFallback}
	}

	if err := s.cache.Set(ctx, key, terms); err != nil {
		s.logger.Warn("analysis cache write failed", "error", err)
	}
	return Response{Terms: terms, Source: SourceRemote}
}
