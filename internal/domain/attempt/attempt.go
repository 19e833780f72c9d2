package attempt

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/ozcitizen/backend/internal/domain/category"
	"github.com/ozcitizen/backend/internal/domain/evaluator"
	"github.com/ozcitizen/backend/internal/id"
)

// ErrInvalid is returned for records that break the score/total invariants.
var ErrInvalid = errors.New("invalid attempt")

// Record is one completed quiz. Records are immutable once appended.
type Record struct {
	ID              string                     `json:"id,omitempty"`
	Score           int                        `json:"score"`
	Total           int                        `json:"total"`
	Percentage      int                        `json:"percentage"`
	Date            string                     `json:"date"`
	TimeSpent       int                        `json:"timeSpent"`
	CategoryResults map[string]category.Result `json:"categoryResults"`
	Passed          bool                       `json:"passed"`
}

// New validates the inputs and builds a record stamped at now.
// Passed is decided here, once, and never recomputed.
func New(score, total int, results map[string]category.Result, timeSpent int, now time.Time) (Record, error) {
	if err := validate(score, total, results, timeSpent); err != nil {
		return Record{}, err
	}
	results = maps.Clone(results)
	if results == nil {
		results = map[string]category.Result{}
	}

	verdict := evaluator.FromBreakdown(score, total, results)
	return Record{
		ID:              id.GenerateID(),
		Score:           score,
		Total:           total,
		Percentage:      verdict.Percentage,
		Date:            now.UTC().Format(time.RFC3339),
		TimeSpent:       timeSpent,
		CategoryResults: results,
		Passed:          verdict.Passed,
	}, nil
}

// Time parses the record's date. Unparseable dates yield the zero time.
func (r Record) Time() time.Time {
	t, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Validate checks a record that did not come from New, such as one read
// from a backup. The stored percentage and verdict must be the ones New
// would have produced.
func (r Record) Validate() error {
	if r.Time().IsZero() {
		return fmt.Errorf("%w: date %q is not RFC3339", ErrInvalid, r.Date)
	}
	if err := validate(r.Score, r.Total, r.CategoryResults, r.TimeSpent); err != nil {
		return err
	}
	verdict := evaluator.FromBreakdown(r.Score, r.Total, r.CategoryResults)
	if r.Percentage != verdict.Percentage || r.Passed != verdict.Passed {
		return fmt.Errorf("%w: percentage %d and passed=%t do not match %d/%d", ErrInvalid, r.Percentage, r.Passed, r.Score, r.Total)
	}
	return nil
}

func validate(score, total int, results map[string]category.Result, timeSpent int) error {
	if total <= 0 {
		return fmt.Errorf("%w: total must be positive, got %d", ErrInvalid, total)
	}
	if score < 0 || score > total {
		return fmt.Errorf("%w: score %d outside [0, %d]", ErrInvalid, score, total)
	}
	if timeSpent < 0 {
		return fmt.Errorf("%w: negative time spent", ErrInvalid)
	}
	if len(results) == 0 {
		return nil
	}

	sumTotal, sumCorrect := 0, 0
	for name, res := range results {
		if !category.Valid(name) {
			return fmt.Errorf("%w: unknown category %q", ErrInvalid, name)
		}
		if res.Total < 0 || res.Correct < 0 || res.Correct > res.Total {
			return fmt.Errorf("%w: category %q has %d/%d", ErrInvalid, name, res.Correct, res.Total)
		}
		sumTotal += res.Total
		sumCorrect += res.Correct
	}
	// A partial breakdown is accepted; one that claims more than the attempt is not.
	if sumTotal > total {
		return fmt.Errorf("%w: category totals sum to %d, more than %d", ErrInvalid, sumTotal, total)
	}
	if sumCorrect > score {
		return fmt.Errorf("%w: category correct answers sum to %d, more than %d", ErrInvalid, sumCorrect, score)
	}
	return nil
}

// MergeCategoryStats folds one attempt's breakdown into the cumulative stats
// and returns the updated map. The input map is not modified.
func MergeCategoryStats(stats map[string]category.Stat, results map[string]category.Result) map[string]category.Stat {
	out := make(map[string]category.Stat, len(stats)+len(results))
	for k, v := range stats {
		out[k] = v
	}
	for name, res := range results {
		s := out[name]
		s.Total += res.Total
		s.Correct += res.Correct
		s.Accuracy = evaluator.Percentage(s.Correct, s.Total)
		out[name] = s
	}
	return out
}
