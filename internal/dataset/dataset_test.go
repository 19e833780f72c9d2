package dataset_test

import (
	"testing"

	"github.com/ozcitizen/backend/internal/dataset"
	"github.com/ozcitizen/backend/internal/domain/category"
	"github.com/ozcitizen/backend/internal/domain/quiz"
)

func TestQuestions(t *testing.T) {
	bank, err := dataset.Questions()
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	totals := bank.Totals()
	for _, c := range category.All {
		if totals[c] == 0 {
			t.Errorf("no questions in %q", c)
		}
	}
	if totals[category.Values] < quiz.TestValuesCount {
		t.Errorf("need at least %d values questions, got %d", quiz.TestValuesCount, totals[category.Values])
	}
	if bank.Len() < quiz.TestLength {
		t.Errorf("need at least %d questions, got %d", quiz.TestLength, bank.Len())
	}
}

func TestTerms(t *testing.T) {
	entries, err := dataset.Terms()
	if err != nil {
		t.Fatalf("terms: %v", err)
	}
	placeholders := 0
	for _, e := range entries {
		if e.Placeholder {
			placeholders++
		}
	}
	if placeholders == 0 || placeholders == len(entries) {
		t.Errorf("expected a mix of bare words and defined terms, got %d/%d placeholders", placeholders, len(entries))
	}
}
