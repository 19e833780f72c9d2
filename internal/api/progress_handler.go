package api

import (
	"net/http"

	"github.com/ozcitizen/backend/internal/domain/category"
	"github.com/ozcitizen/backend/internal/domain/settings"
)

// ── Request / Response types ────────────────────────────────────────────────

type AppendAttemptRequest struct {
	Score           int                        `json:"score"`
	Total           int                        `json:"total"`
	TimeSpent       int                        `json:"timeSpent"`
	CategoryResults map[string]category.Result `json:"categoryResults"`
}

type RecordAnswerRequest struct {
	QuestionID int  `json:"questionId"`
	Correct    bool `json:"correct"`
}

type BookmarkResponse struct {
	QuestionID int  `json:"questionId"`
	Bookmarked bool `json:"bookmarked"`
}

type ResetRequest struct {
	Full bool `json:"full"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listAttempts godoc
// @Summary      List attempts
// @Description  Returns every recorded attempt, oldest first.
// @Tags         Progress
// @Produce      json
// @Security     DeviceToken
// @Success      200  {array}  attempt.Record
// @Router       /attempts [get]
func (h *Handler) listAttempts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.controller(r).Snapshot().Scores)
}

// appendAttempt godoc
// @Summary      Record an attempt
// @Description  Appends a finished attempt and returns it with the updated history. Pass/fail is decided once, here.
// @Tags         Progress
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      AppendAttemptRequest  true  "Attempt"
// @Success      201   {object}  app.AppendResult
// @Failure      400   {object}  map[string]string
// @Router       /attempts [post]
func (h *Handler) appendAttempt(w http.ResponseWriter, r *http.Request) {
	var req AppendAttemptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.controller(r).AppendAttempt(r.Context(), req.Score, req.Total, req.CategoryResults, req.TimeSpent)
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

// getStatistics godoc
// @Summary      Get statistics
// @Tags         Progress
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  stats.Statistics
// @Router       /statistics [get]
func (h *Handler) getStatistics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.controller(r).Snapshot().Statistics)
}

// listBookmarks godoc
// @Summary      List bookmarked question IDs
// @Tags         Progress
// @Produce      json
// @Security     DeviceToken
// @Success      200  {array}  int
// @Router       /bookmarks [get]
func (h *Handler) listBookmarks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.controller(r).Snapshot().Bookmarks)
}

// toggleBookmark godoc
// @Summary      Toggle a bookmark
// @Tags         Progress
// @Produce      json
// @Security     DeviceToken
// @Param        questionID  path      int  true  "Question ID"
// @Success      200  {object}  BookmarkResponse
// @Failure      404  {object}  map[string]string
// @Router       /bookmarks/{questionID} [post]
func (h *Handler) toggleBookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "questionID")
	if !ok {
		return
	}
	on, err := h.controller(r).ToggleBookmark(r.Context(), id)
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, BookmarkResponse{QuestionID: id, Bookmarked: on})
}

// getSettings godoc
// @Summary      Get settings
// @Tags         Settings
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  settings.Settings
// @Router       /settings [get]
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.controller(r).Snapshot().Settings)
}

// updateSettings godoc
// @Summary      Update settings
// @Description  Applies a partial update. Theme is light or dark; language is a 2 or 3 letter code.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      settings.Patch  true  "Fields to change"
// @Success      200   {object}  settings.Settings
// @Failure      400   {object}  map[string]string
// @Router       /settings [patch]
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var patch settings.Patch
	if !decodeJSON(w, r, &patch) {
		return
	}
	next, err := h.controller(r).UpdateSettings(r.Context(), patch)
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, next)
}

// listCompleted godoc
// @Summary      List completed questions
// @Tags         Progress
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  map[string]progress.Completed
// @Router       /completed [get]
func (h *Handler) listCompleted(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.controller(r).Snapshot().CompletedQuestions)
}

// recordAnswer godoc
// @Summary      Record a practice answer
// @Tags         Progress
// @Accept       json
// @Security     DeviceToken
// @Param        body  body  RecordAnswerRequest  true  "Answer"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /completed [post]
func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	var req RecordAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if h.handleError(w, h.controller(r).RecordAnswer(r.Context(), req.QuestionID, req.Correct)) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getProgress godoc
// @Summary      Get per-category progress
// @Tags         Progress
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  map[string]progress.Category
// @Router       /progress [get]
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.controller(r).Snapshot().Progress)
}

// reset godoc
// @Summary      Reset progress
// @Description  Clears attempts, completed questions and category stats. A full reset also clears bookmarks and settings.
// @Tags         Progress
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      ResetRequest  false  "Reset scope"
// @Success      200   {object}  stats.Statistics
// @Router       /reset [post]
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	c := h.controller(r)
	c.Reset(r.Context(), req.Full)
	respondJSON(w, http.StatusOK, c.Snapshot().Statistics)
}

