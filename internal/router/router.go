// Package router assembles the chi routes for the feedback API.
package router

import (
	"net/http"

	"really-simple-feedback/internal/auth"
	"really-simple-feedback/internal/handlers"
	customMiddleware "really-simple-feedback/internal/middleware"
	"really-simple-feedback/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Namespace prefixes every feedback route.
const Namespace = "/really-simple-feedback/v1"

type Deps struct {
	Feedback       *handlers.FeedbackHandler
	Moderation     *handlers.ModerationHandler
	Admin          *handlers.AdminHandler
	Widget         *handlers.WidgetHandler
	Auth           *handlers.AuthHandler
	Issuer         *auth.TokenIssuer
	Resolver       *auth.CapabilityResolver
	AllowedOrigins []string
	// Moderate gates moderation and the admin views. Defaults to the
	// edit_others_posts capability.
	Moderate customMiddleware.Policy
	// AccessLog enables chi's request logger.
	AccessLog bool
}

func New(d Deps) http.Handler {
	moderate := d.Moderate
	if moderate == nil {
		moderate = customMiddleware.Can(models.CapEditOthersPosts)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if d.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", customMiddleware.NonceHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"really-simple-feedback"}`))
	})

	r.Post("/auth/request", d.Auth.RequestLogin)
	r.Get("/auth/verify", d.Auth.VerifyToken)

	r.Route(Namespace, func(r chi.Router) {
		r.Use(customMiddleware.JWTAuth(d.Issuer, d.Resolver))

		// Public routes
		r.Post("/feedback", d.Feedback.SubmitFeedback)
		r.Get("/widget/config", d.Widget.Config)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.RequireCapability(moderate))

			r.Post("/mark_as_read/{id}", d.Moderation.MarkAsRead)
			r.Post("/mark_as_unread/{id}", d.Moderation.MarkAsUnread)
			r.Get("/admin/feedback", d.Admin.ListFeedback)
			r.Get("/admin/config", d.Admin.Config)
		})
	})

	return r
}
