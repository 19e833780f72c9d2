// Package evaluator decides whether a completed quiz counts as a pass.
//
// A quiz passes only when every question from the values category was
// answered correctly and the overall percentage reaches PassMark. A quiz
// that contains no values questions never passes.
package evaluator

import (
	"math"

	"github.com/ozcitizen/backend/internal/domain/category"
)

// PassMark is the minimum overall percentage for a pass.
const PassMark = 75

// AnsweredQuestion is one question of a finished quiz.
type AnsweredQuestion struct {
	QuestionID int    `json:"questionId"`
	Section    string `json:"section"`
	Selected   int    `json:"selected"`
	Correct    bool   `json:"correct"`
}

// Result is the outcome of evaluating a quiz.
type Result struct {
	AllValuesCorrect bool `json:"allValuesCorrect"`
	Percentage       int  `json:"percentage"`
	Passed           bool `json:"passed"`
}

// Evaluate applies the pass rule to a list of answered questions.
func Evaluate(answers []AnsweredQuestion) Result {
	correct := 0
	valuesSeen := 0
	valuesCorrect := true
	for _, a := range answers {
		if a.Correct {
			correct++
		}
		if a.Section == category.Values {
			valuesSeen++
			if !a.Correct {
				valuesCorrect = false
			}
		}
	}

	return decide(valuesSeen > 0 && valuesCorrect, Percentage(correct, len(answers)))
}

// FromBreakdown applies the same rule to an attempt's per-category tally.
func FromBreakdown(score, total int, results map[string]category.Result) Result {
	values, ok := results[category.Values]
	allValues := ok && values.Total > 0 && values.Correct == values.Total
	return decide(allValues, Percentage(score, total))
}

func decide(allValuesCorrect bool, percentage int) Result {
	return Result{
		AllValuesCorrect: allValuesCorrect,
		Percentage:       percentage,
		Passed:           allValuesCorrect && percentage >= PassMark,
	}
}

// Percentage returns round(part/whole*100), or 0 when whole is not positive.
func Percentage(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
