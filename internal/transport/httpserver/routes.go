package httpserver

import (
	"net/http"

	"people-monitor-go/internal/config"
	"people-monitor-go/internal/transport/httpserver/handler"
	authmw "people-monitor-go/internal/transport/httpserver/middleware"
	"people-monitor-go/pkg/logger"
	"people-monitor-go/pkg/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API. manager may be nil, in which case no request
// metrics are recorded and /metrics is not served.
func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, manager *metrics.Manager, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	if manager != nil {
		r.Use(manager.Middleware)
	}
	if cfg.HTTP.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.HTTP.RequestTimeout))
	}
	r.Use(authmw.NewCORS(cfg.HTTP.CORSOrigins))

	if manager != nil {
		r.Method(http.MethodGet, "/metrics", manager.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		r.Get("/respond/{event_id}", handlers.Events.PublicEvent)
		r.Post("/events/{event_id}/respond", handlers.Events.SubmitResponse)

		auth := authmw.NewSupabaseAuth(cfg.Auth, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)

			r.Get("/events", handlers.Events.ListEvents)
			r.Post("/events", handlers.Events.CreateEvent)
			r.Get("/events/{event_id}", handlers.Events.GetEvent)
			r.Put("/events/{event_id}", handlers.Events.UpdateEvent)
			r.Delete("/events/{event_id}", handlers.Events.DeleteEvent)
			r.Post("/events/{event_id}/duplicate", handlers.Events.DuplicateEvent)
			r.Get("/events/{event_id}/share", handlers.Events.ShareEvent)

			r.Get("/events/{event_id}/people", handlers.Events.ListPeople)
			r.Post("/events/{event_id}/people", handlers.Events.AddPerson)
			r.Post("/events/{event_id}/people/bulk", handlers.Events.BulkAddPeople)
			r.Post("/events/{event_id}/people/upload", handlers.Events.UploadPeople)
			r.Put("/events/{event_id}/people/{person_id}", handlers.Events.EditPerson)
			r.Delete("/events/{event_id}/people/{person_id}", handlers.Events.RemovePerson)

			r.Get("/events/{event_id}/responses", handlers.Events.ListResponses)
			r.Get("/events/{event_id}/statistics", handlers.Events.Statistics)
		})
	})

	return r
}
