package api

import (
	"net/http"

	"github.com/ozcitizen/backend/internal/domain/category"
	"github.com/ozcitizen/backend/internal/domain/question"
)

// ── Request / Response types ────────────────────────────────────────────────

type QuestionResponse struct {
	question.Question
	Bookmarked bool `json:"bookmarked"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listQuestions godoc
// @Summary      List questions
// @Description  Returns the bundled questions, optionally for one section.
// @Tags         Questions
// @Produce      json
// @Security     DeviceToken
// @Param        section     query     string  false  "Section name"
// @Param        bookmarked  query     bool    false  "Only bookmarked questions"
// @Success      200  {array}   QuestionResponse
// @Failure      400  {object}  map[string]string
// @Router       /questions [get]
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	if section != "" && !category.Valid(section) {
		respondError(w, http.StatusBadRequest, "unknown section")
		return
	}
	onlyBookmarked := r.URL.Query().Get("bookmarked") == "true"

	marks := map[int]bool{}
	for _, id := range h.controller(r).Snapshot().Bookmarks {
		marks[id] = true
	}

	out := []QuestionResponse{}
	for _, q := range h.devices.Bank().Section(section) {
		if onlyBookmarked && !marks[q.ID] {
			continue
		}
		out = append(out, QuestionResponse{Question: q, Bookmarked: marks[q.ID]})
	}
	respondJSON(w, http.StatusOK, out)
}

// getQuestion godoc
// @Summary      Get a question
// @Tags         Questions
// @Produce      json
// @Security     DeviceToken
// @Param        questionID  path      int  true  "Question ID"
// @Success      200  {object}  QuestionResponse
// @Failure      404  {object}  map[string]string
// @Router       /questions/{questionID} [get]
func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "questionID")
	if !ok {
		return
	}
	q, err := h.devices.Bank().Get(id)
	if h.handleError(w, err) {
		return
	}

	bookmarked := false
	for _, b := range h.controller(r).Snapshot().Bookmarks {
		if b == id {
			bookmarked = true
			break
		}
	}
	respondJSON(w, http.StatusOK, QuestionResponse{Question: q, Bookmarked: bookmarked})
}
