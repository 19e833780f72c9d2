// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ozcitizen/backend/internal/analysis"
	"github.com/ozcitizen/backend/internal/app"
	"github.com/ozcitizen/backend/internal/auth"
	"github.com/ozcitizen/backend/internal/domain/attempt"
	"github.com/ozcitizen/backend/internal/domain/question"
	"github.com/ozcitizen/backend/internal/domain/quiz"
	"github.com/ozcitizen/backend/internal/domain/settings"
	"github.com/ozcitizen/backend/internal/store"
)

const maxBodyBytes = 1 << 20

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	devices  *app.Registry
	terms    *app.TermService
	analysis *analysis.Service
	auth     *auth.Service
	logger   *slog.Logger
}

func NewHandler(devices *app.Registry, terms *app.TermService, an *analysis.Service, authSvc *auth.Service, logger *slog.Logger) *Handler {
	return &Handler{
		devices:  devices,
		terms:    terms,
		analysis: an,
		auth:     authSvc,
		logger:   logger,
	}
}

// controller returns the calling device's controller.
func (h *Handler) controller(r *http.Request) *app.Controller {
	return h.devices.Get(r.Context(), deviceFrom(r.Context()))
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

type validator interface {
	Validate() error
}

// decodeAndValidate decodes the body and runs its Validate method.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// intParam parses a numeric path parameter, writing a 400 when it is not one.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return v, true
}

// handleError maps domain errors to HTTP responses. Returns true if an
// error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, question.ErrNotFound),
		errors.Is(err, app.ErrQuizNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, quiz.ErrFinished),
		errors.Is(err, quiz.ErrExpired):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, attempt.ErrInvalid),
		errors.Is(err, settings.ErrInvalid),
		errors.Is(err, quiz.ErrInvalidConfig),
		errors.Is(err, quiz.ErrOutOfRange),
		errors.Is(err, quiz.ErrNoQuestions):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
