package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ozcitizen/backend/internal/app"
)

// ── Request / Response types ────────────────────────────────────────────────

const exportVersion = "1.0"

// ExportData is a device backup. Only the stored slots are read back on
// import; statistics and progress are rebuilt.
type ExportData struct {
	Version    string    `json:"version"`
	ExportedAt string    `json:"exported_at"`
	DeviceID   string    `json:"device_id"`
	State      app.State `json:"state"`
}

func (req *ExportData) Validate() error {
	if req.Version != exportVersion {
		return fmt.Errorf("unsupported export version %q", req.Version)
	}
	return nil
}

type ImportResult struct {
	Attempts  int `json:"attempts"`
	Bookmarks int `json:"bookmarks"`
	Completed int `json:"completed"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// exportState godoc
// @Summary      Export device state
// @Description  Download the device's attempts, progress, bookmarks and settings as a backup file.
// @Tags         Backup
// @Produce      json
// @Security     DeviceToken
// @Success      200  {object}  ExportData
// @Router       /export [get]
func (h *Handler) exportState(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r)

	data := ExportData{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		DeviceID:   c.Device(),
		State:      c.Snapshot(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=ozcitizen-export.json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode export", "error", err)
	}
}

// importState godoc
// @Summary      Import device state
// @Description  Replace the device's history, bookmarks and settings with a backup from GET /export.
// @Tags         Backup
// @Accept       json
// @Produce      json
// @Security     DeviceToken
// @Param        body  body      ExportData  true  "Backup"
// @Success      200   {object}  ImportResult
// @Failure      400   {object}  map[string]string
// @Router       /import [post]
func (h *Handler) importState(w http.ResponseWriter, r *http.Request) {
	var data ExportData
	if !decodeAndValidate(w, r, &data) {
		return
	}

	c := h.controller(r)
	if h.handleError(w, c.Restore(r.Context(), data.State)) {
		return
	}

	s := c.Snapshot()
	respondJSON(w, http.StatusOK, ImportResult{
		Attempts:  len(s.Scores),
		Bookmarks: len(s.Bookmarks),
		Completed: len(s.CompletedQuestions),
	})
}
