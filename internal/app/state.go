package app

import (
	"maps"
	"slices"

	"github.com/ozcitizen/backend/internal/domain/attempt"
	"github.com/ozcitizen/backend/internal/domain/category"
	"github.com/ozcitizen/backend/internal/domain/progress"
	"github.com/ozcitizen/backend/internal/domain/settings"
	"github.com/ozcitizen/backend/internal/domain/stats"
)

// State is everything persisted for one device plus the statistics
// derived from it.
type State struct {
	Scores             []attempt.Record             `json:"scores"`
	Bookmarks          []int                        `json:"bookmarks"`
	Progress           map[string]progress.Category `json:"progress"`
	Settings           settings.Settings            `json:"settings"`
	CompletedQuestions map[int]progress.Completed   `json:"completedQuestions"`
	CategoryStats      map[string]category.Stat     `json:"categoryStats"`
	Statistics         stats.Statistics             `json:"statistics"`
}

func emptyState(totals map[string]int) State {
	completed := map[int]progress.Completed{}
	return State{
		Scores:             []attempt.Record{},
		Bookmarks:          []int{},
		Progress:           progress.Compute(completed, totals),
		Settings:           settings.Default(),
		CompletedQuestions: completed,
		CategoryStats:      map[string]category.Stat{},
	}
}

// clone copies the mutable parts of s so callers cannot alias controller state.
func (s State) clone() State {
	out := s
	out.Scores = cloneScores(s.Scores)
	out.Bookmarks = slices.Clone(s.Bookmarks)
	out.Progress = maps.Clone(s.Progress)
	out.CompletedQuestions = maps.Clone(s.CompletedQuestions)
	out.CategoryStats = maps.Clone(s.CategoryStats)
	out.Statistics.Last7Days = maps.Clone(s.Statistics.Last7Days)
	out.Statistics.CategoryStats = maps.Clone(s.Statistics.CategoryStats)
	return out
}

// cloneScores copies records along with their category breakdowns.
func cloneScores(scores []attempt.Record) []attempt.Record {
	out := slices.Clone(scores)
	for i := range out {
		out[i].CategoryResults = maps.Clone(out[i].CategoryResults)
	}
	return out
}
