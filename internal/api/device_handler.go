package api

import "net/http"

type RegisterDeviceResponse struct {
	DeviceID string `json:"device_id"`
	Token    string `json:"token"`
}

// registerDevice godoc
// @Summary      Register a device
// @Description  Creates a device namespace and returns a bearer token for it.
// @Tags         Devices
// @Produce      json
// @Success      201  {object}  RegisterDeviceResponse
// @Failure      500  {object}  map[string]string
// @Router       /devices [post]
func (h *Handler) registerDevice(w http.ResponseWriter, r *http.Request) {
	device, token, err := h.auth.IssueDevice()
	if err != nil {
		h.logger.Error("failed to issue device token", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	// Load once so the device starts with its default slots written.
	h.devices.Get(r.Context(), device)

	h.logger.Info("device registered", "device", device)
	respondJSON(w, http.StatusCreated, RegisterDeviceResponse{DeviceID: device, Token: token})
}
