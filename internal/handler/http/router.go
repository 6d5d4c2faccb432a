package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-engine-go/internal/config"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	statusHandler StatusHandler,
	patternHandler WorkPatternHandler,
	settingsHandler SettingsHandler,
	terminalHandler TerminalHandler,
	alertHandler AlertHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Public: kiosk displays authenticate with their access token,
		// the cron trigger with its shared secret, and the SSE stream
		// with a short-lived stream token.
		r.Get("/terminal/display", terminalHandler.Display)
		r.Post("/internal/alerts/sweep", alertHandler.TriggerSweep)
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance/statuses", func(r chi.Router) {
				r.Get("/my", statusHandler.ListMine)
				r.Get("/", statusHandler.ListForStaff)
			})

			r.Get("/notifications/stream-token", notificationHandler.StreamToken)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/work-patterns", func(r chi.Router) {
					r.Post("/", patternHandler.Create)
					r.Get("/", patternHandler.List)
					r.Get("/{id}", patternHandler.GetByID)
					r.Put("/{id}", patternHandler.Update)
					r.Delete("/{id}", patternHandler.Delete)
				})

				r.Route("/attendance/settings", func(r chi.Router) {
					r.Get("/", settingsHandler.Get)
					r.Put("/", settingsHandler.Update)
				})

				r.Route("/terminals", func(r chi.Router) {
					r.Post("/", terminalHandler.Register)
					r.Get("/", terminalHandler.List)
					r.Get("/{id}", terminalHandler.GetByID)
					r.Post("/{id}/refresh", terminalHandler.RotateToken)
					r.Delete("/{id}", terminalHandler.Deactivate)
				})
			})
		})
	})
	return r
}
