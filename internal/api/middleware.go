package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ozcitizen/backend/internal/auth"
)

type ctxKey int

const deviceKey ctxKey = iota

func withDevice(ctx context.Context, device string) context.Context {
	return context.WithValue(ctx, deviceKey, device)
}

func deviceFrom(ctx context.Context) string {
	d, _ := ctx.Value(deviceKey).(string)
	return d
}

// Logging logs one line per request.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(h, "Bearer "), true
}

// DeviceAuth requires a valid device bearer token and stores the device id
// in the request context.
func DeviceAuth(a *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r)
			if !ok {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			device, err := a.Parse(token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(withDevice(r.Context(), device)))
		})
	}
}

// AdminAuth guards routes that change data shared by every device. Device
// tokens are refused with 403.
func AdminAuth(a *auth.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r)
			if !ok {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			subject, err := a.ParseAdmin(token)
			switch {
			case errors.Is(err, auth.ErrNotAdmin):
				respondError(w, http.StatusForbidden, "admin token required")
				return
			case err != nil:
				respondError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			logger.Info("admin request", "subject", subject, "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}
