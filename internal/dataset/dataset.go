// Package dataset bundles the question bank and the starter term list.
package dataset

import (
	_ "embed"
	"fmt"

	"github.com/ozcitizen/backend/internal/domain/question"
	"github.com/ozcitizen/backend/internal/domain/terms"
)

//go:embed data/questions.json
var questionsJSON []byte

//go:embed data/terms.json
var termsJSON []byte

// Questions parses the bundled question bank.
func Questions() (*question.Bank, error) {
	bank, err := question.ParseBank(questionsJSON)
	if err != nil {
		return nil, fmt.Errorf("bundled questions: %w", err)
	}
	return bank, nil
}

// Terms parses the bundled term list. Malformed elements are skipped.
func Terms() ([]terms.Entry, error) {
	entries, _, err := terms.ParseSource(termsJSON)
	if err != nil {
		return nil, fmt.Errorf("bundled terms: %w", err)
	}
	return entries, nil
}

// RawTerms returns the bundled term list as stored on disk.
func RawTerms() []byte {
	return append([]byte(nil), termsJSON...)
}
