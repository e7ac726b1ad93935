package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/techstaffhub/attendance-kiosk/internal/config"
	"github.com/techstaffhub/attendance-kiosk/internal/handler/http/middleware"
)

func NewRouter(
	cfg *config.Config,
	jwtAuth *jwtauth.JWTAuth,
	timeclockHandler TimeclockHandler,
	editRequestHandler EditRequestHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "techstaffhub-kiosk"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.DisplayOrigin},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtAuth))
			r.Use(middleware.AuthRequired(jwtAuth))

			r.Route("/timelog", func(r chi.Router) {
				r.Get("/status", timeclockHandler.Status)
				r.Get("/today", timeclockHandler.Today)
				r.Get("/monthly", timeclockHandler.Monthly)
				r.Get("/range", timeclockHandler.Range)
				r.Get("/hours/total", timeclockHandler.TotalHours)

				r.Post("/clock-in", timeclockHandler.ClockIn)
				r.Post("/clock-out", timeclockHandler.ClockOut)
				r.Post("/break/start", timeclockHandler.StartBreak)
				r.Post("/break/end", timeclockHandler.EndBreak)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHr)
					r.Get("/all", timeclockHandler.All)
					r.Get("/incomplete", timeclockHandler.Incomplete)
					r.Get("/users/clocked-in", timeclockHandler.ClockedIn)
					r.Get("/users/on-break", timeclockHandler.OnBreak)
					r.Post("/adjust", timeclockHandler.Adjust)
					r.Delete("/{timelogID}", timeclockHandler.Delete)
				})
			})

			r.Route("/edit-requests", func(r chi.Router) {
				r.Post("/", editRequestHandler.Create)
				r.Get("/hr-staff", editRequestHandler.HrStaff)
				r.Get("/mine", editRequestHandler.MyRequests)
				r.Get("/{requestID}", editRequestHandler.Get)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHr)
					r.Get("/assigned", editRequestHandler.AssignedRequests)
					r.Get("/assigned/pending", editRequestHandler.PendingRequests)
					r.Put("/approve/{requestID}", editRequestHandler.Approve)
					r.Put("/reject/{requestID}", editRequestHandler.Reject)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread", notificationHandler.Unread)
				r.Get("/unread/count", notificationHandler.UnreadCount)
				r.Put("/{notificationID}/read", notificationHandler.MarkAsRead)
				r.Put("/read-all", notificationHandler.MarkAllAsRead)
				r.Delete("/{notificationID}", notificationHandler.Delete)
			})
		})
	})
	return r
}
