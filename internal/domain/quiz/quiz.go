package quiz

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ozcitizen/backend/internal/domain/category"
	"github.com/ozcitizen/backend/internal/domain/evaluator"
	"github.com/ozcitizen/backend/internal/domain/question"
	"github.com/ozcitizen/backend/internal/id"
)

// Unanswered marks a question the user has not picked an option for.
const Unanswered = -1

var (
	ErrFinished      = errors.New("quiz already finished")
	ErrExpired       = errors.New("quiz time limit has passed")
	ErrOutOfRange    = errors.New("question or option out of range")
	ErrNoQuestions   = errors.New("no questions match the quiz config")
	ErrInvalidConfig = errors.New("invalid quiz config")
)

// Session is one run through a set of shuffled questions. It is stored as
// JSON between requests.
type Session struct {
	ID          string              `json:"id"`
	Mode        Mode                `json:"mode"`
	Section     string              `json:"section,omitempty"`
	Questions   []question.Question `json:"questions"`
	Selected    []int               `json:"selected"`
	Current     int                 `json:"current"`
	MaxDuration *time.Duration      `json:"maxDuration,omitempty"`
	StartedAt   time.Time           `json:"startedAt"`
	FinishedAt  *time.Time          `json:"finishedAt,omitempty"`
}

// Outcome is what a finished quiz contributes to the attempt history.
type Outcome struct {
	Answers         []evaluator.AnsweredQuestion `json:"answers"`
	Score           int                          `json:"score"`
	Total           int                          `json:"total"`
	CategoryResults map[string]category.Result   `json:"categoryResults"`
	TimeSpent       int                          `json:"timeSpent"`
	Result          evaluator.Result             `json:"result"`
}

// New draws and shuffles questions according to cfg.
func New(questions []question.Question, cfg Config, now time.Time) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var picked []question.Question
	if cfg.Mode == ModeTest {
		picked = drawTest(questions)
	} else {
		picked = drawPractice(questions, cfg)
	}
	if len(picked) == 0 {
		return nil, ErrNoQuestions
	}

	selected := make([]int, len(picked))
	for i := range selected {
		selected[i] = Unanswered
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModePractice
	}
	return &Session{
		ID:          id.GenerateID(),
		Mode:        mode,
		Section:     cfg.Section,
		Questions:   picked,
		Selected:    selected,
		MaxDuration: cfg.MaxDuration,
		StartedAt:   now.UTC(),
	}, nil
}

func drawPractice(questions []question.Question, cfg Config) []question.Question {
	var pool []question.Question
	for _, q := range questions {
		if cfg.Section == "" || q.Section == cfg.Section {
			pool = append(pool, q)
		}
	}
	pool = shuffle(pool)
	if cfg.MaxQuestions != nil && *cfg.MaxQuestions > 0 && *cfg.MaxQuestions < len(pool) {
		pool = pool[:*cfg.MaxQuestions]
	}
	return pool
}

// drawTest takes TestValuesCount values questions and fills the rest of
// the test from the other parts. A short bank yields a shorter test.
func drawTest(questions []question.Question) []question.Question {
	var values, others []question.Question
	for _, q := range questions {
		if q.IsValues() {
			values = append(values, q)
		} else {
			others = append(others, q)
		}
	}
	values = shuffle(values)
	others = shuffle(others)

	if len(values) > TestValuesCount {
		values = values[:TestValuesCount]
	}
	if rest := TestLength - len(values); len(others) > rest {
		others = others[:rest]
	}
	return shuffle(append(values, others...))
}

// shuffle returns a new slice with questions in random order.
func shuffle(questions []question.Question) []question.Question {
	shuffled := make([]question.Question, len(questions))
	copy(shuffled, questions)

	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}

func (s *Session) Finished() bool { return s.FinishedAt != nil }

// Select records option as the answer to the question at index and moves
// the cursor past it. Answers can be changed until the quiz is finished.
func (s *Session) Select(index, option int) error {
	if s.Finished() {
		return ErrFinished
	}
	if index < 0 || index >= len(s.Questions) {
		return fmt.Errorf("%w: question %d", ErrOutOfRange, index)
	}
	if option < 0 || option >= len(s.Questions[index].Options) {
		return fmt.Errorf("%w: option %d", ErrOutOfRange, option)
	}
	s.Selected[index] = option
	if index+1 > s.Current {
		s.Current = min(index+1, len(s.Questions)-1)
	}
	return nil
}

// Answered counts questions with a selected option.
func (s *Session) Answered() int {
	n := 0
	for _, sel := range s.Selected {
		if sel != Unanswered {
			n++
		}
	}
	return n
}

// Expired reports whether the time limit, if any, has passed.
func (s *Session) Expired(now time.Time) bool {
	return s.MaxDuration != nil && now.Sub(s.StartedAt) > *s.MaxDuration
}

// Finish scores the quiz. Unanswered questions count as wrong, and time
// spent is capped at the time limit.
func (s *Session) Finish(now time.Time) (Outcome, error) {
	if s.Finished() {
		return Outcome{}, ErrFinished
	}

	answers := make([]evaluator.AnsweredQuestion, len(s.Questions))
	results := make(map[string]category.Result)
	score := 0
	for i, q := range s.Questions {
		correct := q.IsCorrect(s.Selected[i])
		answers[i] = evaluator.AnsweredQuestion{
			QuestionID: q.ID,
			Section:    q.Section,
			Selected:   s.Selected[i],
			Correct:    correct,
		}

		r := results[q.Section]
		r.Total++
		if correct {
			r.Correct++
			score++
		}
		results[q.Section] = r
	}

	finished := now.UTC()
	s.FinishedAt = &finished

	return Outcome{
		Answers:         answers,
		Score:           score,
		Total:           len(s.Questions),
		CategoryResults: results,
		TimeSpent:       minutesSpent(s.elapsed(now)),
		Result:          evaluator.Evaluate(answers),
	}, nil
}

func (s *Session) elapsed(now time.Time) time.Duration {
	d := now.Sub(s.StartedAt)
	if s.MaxDuration != nil && d > *s.MaxDuration {
		return *s.MaxDuration
	}
	return d
}

// minutesSpent rounds up to whole minutes, never below one.
func minutesSpent(d time.Duration) int {
	m := int(math.Ceil(d.Minutes()))
	if m < 1 {
		return 1
	}
	return m
}
