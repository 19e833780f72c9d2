package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ozcitizen/backend/internal/domain/category"
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 3

var ErrNotFound = errors.New("question not found")

type Question struct {
	ID          int      `json:"id"`
	Section     string   `json:"section"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation,omitempty"`
}

// IsCorrect reports whether option is the right answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.Correct
}

// IsValues reports whether the question belongs to the Australian values part.
func (q Question) IsValues() bool {
	return q.Section == category.Values
}

func (q Question) validate() error {
	if q.ID <= 0 {
		return fmt.Errorf("question id must be positive, got %d", q.ID)
	}
	if !category.Valid(q.Section) {
		return fmt.Errorf("question %d: unknown section %q", q.ID, q.Section)
	}
	if q.Question == "" {
		return fmt.Errorf("question %d: empty text", q.ID)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question %d: expected %d options, got %d", q.ID, OptionCount, len(q.Options))
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("question %d: correct option %d out of range", q.ID, q.Correct)
	}
	return nil
}

// Bank is the read-only set of questions the app draws quizzes from.
type Bank struct {
	questions []Question
	byID      map[int]int
}

// NewBank validates questions and indexes them by id. Duplicate ids are rejected.
func NewBank(questions []Question) (*Bank, error) {
	b := &Bank{
		questions: make([]Question, 0, len(questions)),
		byID:      make(map[int]int, len(questions)),
	}
	for _, q := range questions {
		if err := q.validate(); err != nil {
			return nil, err
		}
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		b.byID[q.ID] = len(b.questions)
		b.questions = append(b.questions, q)
	}
	sort.SliceStable(b.questions, func(i, j int) bool { return b.questions[i].ID < b.questions[j].ID })
	for i, q := range b.questions {
		b.byID[q.ID] = i
	}
	return b, nil
}

// ParseBank decodes a JSON array of questions into a Bank.
func ParseBank(data []byte) (*Bank, error) {
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return NewBank(questions)
}

// All returns a copy of every question ordered by id.
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Section returns the questions of one part. An empty section returns all.
func (b *Bank) Section(section string) []Question {
	if section == "" {
		return b.All()
	}
	var out []Question
	for _, q := range b.questions {
		if q.Section == section {
			out = append(out, q)
		}
	}
	return out
}

func (b *Bank) Get(id int) (Question, error) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return b.questions[i], nil
}

func (b *Bank) Len() int { return len(b.questions) }

// Totals counts questions per section.
func (b *Bank) Totals() map[string]int {
	out := make(map[string]int, len(category.All))
	for _, name := range category.All {
		out[name] = 0
	}
	for _, q := range b.questions {
		out[q.Section]++
	}
	return out
}
