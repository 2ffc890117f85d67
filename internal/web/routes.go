package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/metalingusman/immich-deduper/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Candidate feed
		r.Post("/assets", s.deduper.PushAssets)
		r.Post("/assets/pull", s.deduper.PullAssets)
		r.Get("/assets/{assetId}/reasons", s.deduper.GetAssetReasons)

		// Rendered surface
		r.Post("/cards", s.deduper.RegisterCards)
		r.Get("/surface", s.deduper.GetSurface)
		r.Get("/events", s.deduper.Events)

		// Selection state
		r.Get("/selection", s.deduper.GetSelection)
		r.Post("/selection/toggle", s.deduper.Toggle)
		r.Post("/selection/select-all", s.deduper.SelectAll)
		r.Post("/selection/clear-all", s.deduper.ClearAll)
		r.Post("/selection/groups/{groupId}/select", s.deduper.SelectGroup)
		r.Post("/selection/groups/{groupId}/clear", s.deduper.ClearGroup)
		r.Post("/selection/trash", s.deduper.TrashSelected)

		// Settings
		r.Get("/settings", s.deduper.GetSettings)
		r.Put("/settings", s.deduper.UpdateSettings)

		// Decision audit
		r.Get("/decisions", s.deduper.ListDecisions)
		r.Get("/decisions/{groupId}", s.deduper.GetDecision)

		// Export
		r.Get("/export", s.deduper.Export)
	})

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("immich-deduper API. See /api/v1/health\n"))
	})
}
