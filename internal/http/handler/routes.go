package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"exportapi/internal/auth"
	"exportapi/internal/database"
	"exportapi/internal/service"
)

// Deps are the collaborators the HTTP layer is built from.
// DB and History are nil when the history database is disabled.
type Deps struct {
	DB      database.Pinger
	Tokens  *auth.TokenService
	Exports service.ExportService
	History service.HistoryService
	Logger  *slog.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/auth/token", IssueToken(d.Tokens))

	requireAuth := RequireAuth(d.Tokens)
	api.Post("/export", requireAuth, Export(d.Exports, d.History, logger))
	if d.History != nil {
		api.Get("/exports", requireAuth, ListExports(d.History))
	}
}
