package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ozcitizen/backend/internal/analysis"
	"github.com/ozcitizen/backend/internal/domain/terms"
)

// ── Request / Response types ────────────────────────────────────────────────

type LookupResponse struct {
	Matches []terms.Match `json:"matches"`
}

type TermsInfoResponse struct {
	Count      int        `json:"count"`
	LastUpdate *time.Time `json:"last_update,omitempty"`
}

type AnalysisRequest analysis.Request

func (r *AnalysisRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errors.New("text is required")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// lookupTerms godoc
// @Summary      Look up terms in text
// @Description  Returns every known term contained in the text, longest first, with the translation for lang.
// @Tags         Terms
// @Produce      json
// @Security     DeviceToken
// @Param        text  query     string  true   "Text to scan"
// @Param        lang  query     string  false  "Translation language (defaults to the device's native language)"
// @Success      200   {object}  LookupResponse
// @Router       /terms/lookup [get]
func (h *Handler) lookupTerms(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = h.controller(r).Snapshot().Settings.NativeLanguage
	}
	respondJSON(w, http.StatusOK, LookupResponse{
		Matches: h.terms.Lookup(r.URL.Query().Get("text"), lang),
	})
}

// termsInfo godoc
// @Summary      Term table info
// @Tags         Terms
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  TermsInfoResponse
// @Router       /terms [get]
func (h *Handler) termsInfo(w http.ResponseWriter, r *http.Request) {
	resp := TermsInfoResponse{Count: h.terms.Len()}
	if last := h.terms.LastUpdate(); !last.IsZero() {
		resp.LastUpdate = &last
	}
	respondJSON(w, http.StatusOK, resp)
}

// importTerms godoc
// @Summary      Import terms
// @Description  Merges a JSON array of terms. Elements are either a bare word or {word, definition, translations}. Requires an admin token.
// @Tags         Terms
// @Accept       json
// @Produce      json
// @Security     AdminToken
// @Success      200  {object}  app.ImportResult
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /terms/import [post]
func (h *Handler) importTerms(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	res, err := h.terms.Import(r.Context(), data)
	if errors.Is(err, terms.ErrMalformedSource) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to persist imported terms", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to persist terms")
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// clearTerms godoc
// @Summary      Clear the term table
// @Description  Requires an admin token.
// @Tags         Terms
// @Security     AdminToken
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /terms [delete]
func (h *Handler) clearTerms(w http.ResponseWriter, r *http.Request) {
	if err := h.terms.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear terms", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to clear terms")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// analyze godoc
// @Summary      Explain difficult terms
// @Description  Asks the language model for explanations, served from a 30 day cache. Falls back to a built-in dictionary.
// @Tags         Terms
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      AnalysisRequest  true  "Question text"
// @Success      200   {object}  analysis.Response
// @Failure      400   {object}  map[string]string
// @Router       /analysis [post]
func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Language == "" {
		req.Language = h.controller(r).Snapshot().Settings.NativeLanguage
	}
	respondJSON(w, http.StatusOK, h.analysis.Analyze(r.Context(), analysis.Request(req)))
}
