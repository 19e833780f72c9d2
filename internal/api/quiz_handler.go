package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ozcitizen/backend/internal/domain/quiz"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateQuizRequest struct {
	Mode           quiz.Mode `json:"mode"`
	Section        string    `json:"section,omitempty"`
	MaxQuestions   *int      `json:"max_questions,omitempty"`
	MaxDurationMin *int      `json:"max_duration_min,omitempty"`
}

func (r *CreateQuizRequest) Validate() error {
	if r.MaxQuestions != nil && *r.MaxQuestions < 0 {
		return errors.New("max_questions must not be negative")
	}
	if r.MaxDurationMin != nil && *r.MaxDurationMin < 0 {
		return errors.New("max_duration_min must not be negative")
	}
	if r.Mode == quiz.ModeTest && r.Section != "" {
		return errors.New("a test draws from every section")
	}
	return nil
}

func (r *CreateQuizRequest) config() quiz.Config {
	if r.Mode == quiz.ModeTest {
		return quiz.TestConfig()
	}
	cfg := quiz.Config{Mode: r.Mode, Section: r.Section}
	if r.MaxQuestions != nil && *r.MaxQuestions > 0 {
		cfg.MaxQuestions = r.MaxQuestions
	}
	if r.MaxDurationMin != nil && *r.MaxDurationMin > 0 {
		d := time.Duration(*r.MaxDurationMin) * time.Minute
		cfg.MaxDuration = &d
	}
	return cfg
}

// QuizQuestion is a question as shown while the quiz is running: the
// correct option is only revealed once answered.
type QuizQuestion struct {
	ID       int      `json:"id"`
	Section  string   `json:"section"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Selected int      `json:"selected"`
}

type QuizResponse struct {
	ID             string         `json:"id"`
	Mode           quiz.Mode      `json:"mode"`
	Section        string         `json:"section,omitempty"`
	Questions      []QuizQuestion `json:"questions"`
	Current        int            `json:"current"`
	Answered       int            `json:"answered"`
	StartedAt      time.Time      `json:"started_at"`
	MaxDurationMin *int           `json:"max_duration_min,omitempty"`
}

func newQuizResponse(s *quiz.Session) QuizResponse {
	questions := make([]QuizQuestion, len(s.Questions))
	for i, q := range s.Questions {
		questions[i] = QuizQuestion{
			ID:       q.ID,
			Section:  q.Section,
			Question: q.Question,
			Options:  q.Options,
			Selected: s.Selected[i],
		}
	}
	resp := QuizResponse{
		ID:        s.ID,
		Mode:      s.Mode,
		Section:   s.Section,
		Questions: questions,
		Current:   s.Current,
		Answered:  s.Answered(),
		StartedAt: s.StartedAt,
	}
	if s.MaxDuration != nil {
		m := int(s.MaxDuration.Minutes())
		resp.MaxDurationMin = &m
	}
	return resp
}

type AnswerQuizRequest struct {
	Index  int `json:"index"`
	Option int `json:"option"`
}

func (r *AnswerQuizRequest) Validate() error {
	if r.Index < 0 || r.Option < 0 {
		return errors.New("index and option must not be negative")
	}
	return nil
}

type AnswerQuizResponse struct {
	Correct       bool   `json:"correct"`
	CorrectOption int    `json:"correct_option"`
	Explanation   string `json:"explanation,omitempty"`
	Answered      int    `json:"answered"`
	Total         int    `json:"total"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createQuiz godoc
// @Summary      Start a quiz
// @Description  Draws shuffled questions. A test has 20 questions, 5 of them on Australian values.
// @Tags         Quizzes
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      CreateQuizRequest  true  "Quiz options"
// @Success      201   {object}  QuizResponse
// @Failure      400   {object}  map[string]string
// @Router       /quizzes [post]
func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req CreateQuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s, err := h.controller(r).StartQuiz(r.Context(), req.config())
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, newQuizResponse(s))
}

// getQuiz godoc
// @Summary      Get a running quiz
// @Tags         Quizzes
// @Produce      json
// @Security     DeviceToken
// @Param        quizID  path      string  true  "Quiz ID"
// @Success      200  {object}  QuizResponse
// @Failure      404  {object}  map[string]string
// @Router       /quizzes/{quizID} [get]
func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	s, err := h.controller(r).Quiz(r.Context(), chi.URLParam(r, "quizID"))
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, newQuizResponse(s))
}

// answerQuiz godoc
// @Summary      Answer a quiz question
// @Tags         Quizzes
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        quizID  path      string             true  "Quiz ID"
// @Param        body    body      AnswerQuizRequest  true  "Selected option"
// @Success      200     {object}  AnswerQuizResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      409     {object}  map[string]string  "quiz already finished"
// @Router       /quizzes/{quizID}/answers [post]
func (h *Handler) answerQuiz(w http.ResponseWriter, r *http.Request) {
	var req AnswerQuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s, err := h.controller(r).AnswerQuiz(r.Context(), chi.URLParam(r, "quizID"), req.Index, req.Option)
	if h.handleError(w, err) {
		return
	}

	q := s.Questions[req.Index]
	respondJSON(w, http.StatusOK, AnswerQuizResponse{
		Correct:       q.IsCorrect(req.Option),
		CorrectOption: q.Correct,
		Explanation:   q.Explanation,
		Answered:      s.Answered(),
		Total:         len(s.Questions),
	})
}

// finishQuiz godoc
// @Summary      Finish a quiz
// @Description  Scores the quiz, records the attempt and returns the pass/fail result.
// @Tags         Quizzes
// @Produce      json
// @Security     DeviceToken
// @Param        quizID  path      string  true  "Quiz ID"
// @Success      200     {object}  app.FinishResult
// @Failure      404     {object}  map[string]string
// @Failure      409     {object}  map[string]string
// @Router       /quizzes/{quizID}/finish [post]
func (h *Handler) finishQuiz(w http.ResponseWriter, r *http.Request) {
	res, err := h.controller(r).FinishQuiz(r.Context(), chi.URLParam(r, "quizID"))
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, res)
}
