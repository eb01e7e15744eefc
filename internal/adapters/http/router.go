// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campus-api/internal/adapters/http/handlers"
	"github.com/campusconnect/campus-api/internal/adapters/http/middleware"
)

// Handlers bundles the per-board handlers the router wires up.
type Handlers struct {
	Cafeteria    *handlers.CafeteriaHandler
	LostFound    *handlers.LostFoundHandler
	Skills       *handlers.SkillsHandler
	Notes        *handlers.NotesHandler
	Flashcard    *handlers.FlashcardHandler
	Directory    *handlers.DirectoryHandler
	Announcement *handlers.AnnouncementHandler
	User         *handlers.UserHandler
	Health       *handlers.HealthHandler
}

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. Regular routes get a
// request deadline of requestTimeout; the watch endpoints stream server-sent
// events for the life of the connection and are routed around it.
func NewRouter(h Handlers, requestTimeout time.Duration, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", h.Health.Liveness)
	r.Get("/health/ready", h.Health.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))

			// Cafeteria menu and orders.
			r.Get("/cafeteria/menu", h.Cafeteria.ListMenu)
			r.Post("/cafeteria/menu", h.Cafeteria.AddMenuItem)
			r.Patch("/cafeteria/menu/{id}/availability", h.Cafeteria.SetAvailability)
			r.Delete("/cafeteria/menu/{id}", h.Cafeteria.RemoveMenuItem)
			r.Get("/cafeteria/orders", h.Cafeteria.ListOrders)
			r.Post("/cafeteria/orders", h.Cafeteria.PlaceOrder)
			r.Post("/cafeteria/orders/{id}/transitions/{transition}", h.Cafeteria.AdvanceOrder)

			// Lost and found.
			r.Get("/lostfound/items", h.LostFound.List)
			r.Post("/lostfound/items", h.LostFound.Report)
			r.Get("/lostfound/items/{id}", h.LostFound.Get)
			r.Post("/lostfound/items/{id}/transitions/{transition}", h.LostFound.Transition)
			r.Delete("/lostfound/items/{id}", h.LostFound.Delete)

			// Peer skill exchange.
			r.Get("/skills/requests", h.Skills.List)
			r.Post("/skills/requests", h.Skills.Post)
			r.Get("/skills/requests/{id}", h.Skills.Get)
			r.Post("/skills/requests/{id}/offers", h.Skills.Offer)
			r.Post("/skills/requests/{id}/resolve", h.Skills.Resolve)
			r.Delete("/skills/requests/{id}", h.Skills.Delete)

			// Shared study notes.
			r.Get("/notes", h.Notes.List)
			r.Post("/notes", h.Notes.Upload)
			r.Get("/notes/subjects", h.Notes.ListSubjects)
			r.Post("/notes/{id}/upvote", h.Notes.ToggleUpvote)
			r.Delete("/notes/{id}", h.Notes.Delete)

			// AI flashcards.
			r.Post("/flashcards/topic", h.Flashcard.FromTopic)
			r.Post("/flashcards/document", h.Flashcard.FromDocument)

			// Faculty directory.
			r.Get("/directory/faculty", h.Directory.List)
			r.Post("/directory/faculty", h.Directory.Add)
			r.Get("/directory/faculty/{id}", h.Directory.Get)
			r.Put("/directory/faculty/{id}", h.Directory.Update)
			r.Delete("/directory/faculty/{id}", h.Directory.Remove)

			// Campus announcements.
			r.Get("/announcements", h.Announcement.List)
			r.Post("/announcements", h.Announcement.Publish)
			r.Delete("/announcements/{id}", h.Announcement.Remove)

			// User profiles and roles.
			r.Get("/users", h.User.List)
			r.Post("/users", h.User.Register)
			r.Get("/users/{id}", h.User.Get)
			r.Patch("/users/{id}", h.User.Update)
			r.Put("/users/{id}/role", h.User.SetRole)
			r.Delete("/users/{id}", h.User.Delete)
		})

		// Server-sent event streams, no request deadline.
		r.Get("/cafeteria/orders/watch", h.Cafeteria.WatchOrders)
		r.Get("/lostfound/items/watch", h.LostFound.Watch)
		r.Get("/skills/requests/watch", h.Skills.Watch)
		r.Get("/announcements/watch", h.Announcement.Watch)
	})

	return r
}
