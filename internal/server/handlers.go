package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bensonglobal/meridian/pkg/buildinfo"
	"github.com/bensonglobal/meridian/pkg/cache"
	"github.com/bensonglobal/meridian/pkg/concierge"
	"github.com/bensonglobal/meridian/pkg/errors"
	"github.com/bensonglobal/meridian/pkg/flow"
	"github.com/bensonglobal/meridian/pkg/geo"
	"github.com/bensonglobal/meridian/pkg/render"
	"github.com/bensonglobal/meridian/pkg/social"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  buildinfo.Get().Version,
		"sessions": s.sessions.count(),
	})
}

type hubsResponse struct {
	Center      string               `json:"center"`
	Hubs        []geo.Hub            `json:"hubs"`
	Connections []flow.Connection    `json:"connections"`
	Points      map[string]geo.Point `json:"points,omitempty"`
}

// handleHubs lists the reference data. With width and height it also
// returns each hub's projected position.
func (s *Server) handleHubs(w http.ResponseWriter, r *http.Request) {
	ds := s.Dataset()
	resp := hubsResponse{Center: ds.Center, Hubs: ds.Hubs, Connections: ds.Connections}
	if r.URL.Query().Has("width") || r.URL.Query().Has("height") {
		width, height, err := dims(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.Points = geo.Fit(width, height).ProjectAll(ds.Hubs)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSnapshot renders target in format, serving repeats from the cache.
func (s *Server) handleSnapshot(target, format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := s.renderRequest(r, target, format)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		cur := s.data.Load()
		key := req.CacheKey(s.keyer, cur.hash)

		data, hit, err := cache.GetOrCompute(r.Context(), s.cache, key, s.cfg.Cache.TTL.D(), func() ([]byte, error) {
			return render.Render(r.Context(), cur.ds, req, s.logger)
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", render.ContentType(format))
		if hit {
			w.Header().Set("X-Cache", "hit")
		} else {
			w.Header().Set("X-Cache", "miss")
		}
		_, _ = w.Write(data)
	}
}

func (s *Server) renderRequest(r *http.Request, target, format string) (render.Request, error) {
	width, height, err := dims(r)
	if err != nil {
		return render.Request{}, err
	}
	at, err := queryTime(r, "t")
	if err != nil {
		return render.Request{}, err
	}
	seed := s.cfg.Animation.Seed
	if seed == 0 {
		seed = 1
	}
	if seed, err = queryUint(r, "seed", seed); err != nil {
		return render.Request{}, err
	}
	req := render.Request{
		Target:     target,
		Format:     format,
		Width:      width,
		Height:     height,
		At:         at,
		Seed:       seed,
		Hover:      r.URL.Query().Get("hover"),
		Animate:    queryBool(r, "animate"),
		Detailed:   queryBool(r, "detailed"),
		Geographic: queryBool(r, "geo"),
	}
	return req.Normalize()
}

type chatRequest struct {
	Conversation string              `json:"conversation,omitempty"`
	History      []concierge.Message `json:"history"`
	Message      string              `json:"message"`
}

type chatResponse struct {
	Conversation string `json:"conversation"`
	Reply        string `json:"reply"`
	Model        string `json:"model"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateMessage(req.Message); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Conversation == "" {
		req.Conversation = uuid.NewString()
	}
	reply := s.chat.Reply(r.Context(), req.History, req.Message)
	writeJSON(w, http.StatusOK, chatResponse{Conversation: req.Conversation, Reply: reply, Model: s.chat.Model()})
}

func (s *Server) handleChatInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"greeting":    concierge.Greeting,
		"suggestions": concierge.Suggestions(),
		"configured":  s.chat.Configured(),
		"model":       s.chat.Model(),
	})
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"platforms": social.Platforms()})
}

// handleSocial serves the latest post. Unknown platforms get a LinkedIn post.
func (s *Server) handleSocial(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")
	u, err := s.social.Latest(r.Context(), platform)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(indexHTML)
}
