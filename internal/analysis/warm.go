package analysis

import (
	"context"
	"strconv"

	"github.com/ozcitizen/backend/internal/domain/question"
	"github.com/ozcitizen/backend/internal/worker"
)

// WarmReport counts where each question's analysis came from.
type WarmReport struct {
	Total    int `json:"total"`
	Cached   int `json:"cached"`
	Remote   int `json:"remote"`
	Fallback int `json:"fallback"`
}

// Warm analyzes every question so later requests hit the cache.
func (s *Service) Warm(ctx context.Context, questions []question.Question, language string, workers int) WarmReport {
	pool := worker.NewPool[Source](workers, workers)

	go func() {
		defer pool.Close()
		for _, q := range questions {
			if ctx.Err() != nil {
				return
			}
			q := q
			pool.Submit(strconv.Itoa(q.ID), func() Source {
				return s.Analyze(ctx, Request{Text: q.Question, Options: q.Options, Language: language}).Source
			})
		}
	}()

	var report WarmReport
	for r := range pool.Results() {
		report.Total++
		switch r.Output {
		case SourceCache:
			report.Cached++
		case SourceRemote:
			report.Remote++
		default:
			report.Fallback++
		}
	}

	s.logger.Info("analysis cache warmed",
		"language", language,
		"total", report.Total,
		"cached", report.Cached,
		"remote", report.Remote,
		"fallback", report.Fallback,
	)
	return report
}
