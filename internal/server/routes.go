package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bensonglobal/meridian/pkg/render"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/hubs", s.handleHubs)

		r.Get("/orbital.svg", s.handleSnapshot(render.TargetOrbital, render.FormatSVG))
		r.Get("/orbital.json", s.handleSnapshot(render.TargetOrbital, render.FormatJSON))
		r.Get("/orbital/stream", s.handleStream(kindOrbital))

		r.Get("/network.svg", s.handleSnapshot(render.TargetNetwork, render.FormatSVG))
		r.Get("/network.json", s.handleSnapshot(render.TargetNetwork, render.FormatJSON))
		r.Get("/network.dot", s.handleSnapshot(render.TargetNodeLink, render.FormatDOT))
		r.Get("/network.dot.svg", s.handleSnapshot(render.TargetNodeLink, render.FormatSVG))
		r.Get("/network/stream", s.handleStream(kindNetwork))
		r.Post("/network/hover", s.handleHover)
		r.Get("/network/panel", s.handlePanel)

		r.Post("/sessions/{id}/resize", s.handleResize)

		r.Get("/market.html", s.handleSnapshot(render.TargetMarket, render.FormatHTML))
		r.Get("/market.png", s.handleSnapshot(render.TargetMarket, render.FormatPNG))

		r.Get("/chat", s.handleChatInfo)
		r.Post("/chat", s.handleChat)

		r.Get("/social", s.handlePlatforms)
		r.Get("/social/{platform}", s.handleSocial)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found", Code: "NOT_FOUND", RequestID: RequestID(r.Context())})
	})
	return r
}
