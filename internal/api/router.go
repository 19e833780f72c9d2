package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterOptions struct {
	CORSOrigins []string
	Timeout     time.Duration
}

// NewRouter wires every route. Middleware order: request id, real ip,
// logging, recover, timeout, CORS.
func NewRouter(h *Handler, opts RouterOptions, logger *slog.Logger) http.Handler {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, Logging(logger), middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Post("/devices", h.registerDevice)

	r.Group(func(pr chi.Router) {
		pr.Use(DeviceAuth(h.auth))

		pr.Get("/questions", h.listQuestions)
		pr.Get("/questions/{questionID}", h.getQuestion)

		pr.Route("/quizzes", func(qr chi.Router) {
			qr.Post("/", h.createQuiz)
			qr.Route("/{quizID}", func(qr chi.Router) {
				qr.Get("/", h.getQuiz)
				qr.Post("/answers", h.answerQuiz)
				qr.Post("/finish", h.finishQuiz)
			})
		})

		pr.Get("/attempts", h.listAttempts)
		pr.Post("/attempts", h.appendAttempt)
		pr.Get("/statistics", h.getStatistics)
		pr.Get("/progress", h.getProgress)
		pr.Post("/reset", h.reset)
		pr.Get("/export", h.exportState)
		pr.Post("/import", h.importState)

		pr.Get("/bookmarks", h.listBookmarks)
		pr.Post("/bookmarks/{questionID}", h.toggleBookmark)

		pr.Get("/completed", h.listCompleted)
		pr.Post("/completed", h.recordAnswer)

		pr.Get("/settings", h.getSettings)
		pr.Patch("/settings", h.updateSettings)

		pr.Get("/terms", h.termsInfo)
		pr.Get("/terms/lookup", h.lookupTerms)

		pr.Post("/analysis", h.analyze)
	})

	// The term table is shared by every device; only admins change it.
	r.Group(func(ar chi.Router) {
		ar.Use(AdminAuth(h.auth, logger))

		ar.Post("/terms/import", h.importTerms)
		ar.Delete("/terms", h.clearTerms)
	})

	return r
}
