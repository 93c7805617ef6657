package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bensonglobal/meridian/pkg/diagram"
	"github.com/bensonglobal/meridian/pkg/errors"
	"github.com/bensonglobal/meridian/pkg/observability"
	"github.com/bensonglobal/meridian/pkg/render/svg"
)

const (
	defaultStreamFPS = 30
	maxStreamFPS     = 240
	keepAlive        = 15 * time.Second
)

// handleStream mounts a component for the connection and pushes a frame
// whenever the loop has painted since the last push, at most fps times a
// second. Network streams also push a hover event carrying the panel each
// time the hovered hub changes. The component is unmounted when the client
// goes away.
func (s *Server) handleStream(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "streaming not supported"))
			return
		}
		width, height, err := dims(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		fps, err := queryInt(r, "fps", defaultStreamFPS)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if limit := s.cfg.Animation.FPS; limit > 0 && fps > limit {
			fps = limit
		}
		fps = min(fps, maxStreamFPS)
		if fps <= 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "fps must be positive"))
			return
		}
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "json"
		}
		if format != "json" && format != "svg" {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "stream format must be json or svg, got %q", format))
			return
		}

		sess, err := s.openSession(kind, width, height)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		defer s.sessions.remove(sess.id)

		dirty := make(chan struct{}, 1)
		cancel, err := sess.subscribe(func() {
			select {
			case dirty <- struct{}{}:
			default:
			}
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		defer cancel()
		hovered := sess.hoverChanges()

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		opened, frames := time.Now(), 0
		observability.Stream().OnStreamOpen(r.Context(), kind, sess.id, width, height)
		defer func() {
			observability.Stream().OnStreamClose(r.Context(), kind, sess.id, frames, time.Since(opened))
		}()

		hello, _ := json.Marshal(map[string]any{"id": sess.id, "kind": kind, "width": width, "height": height})
		if writeEvent(w, "session", hello) != nil {
			return
		}
		flusher.Flush()

		tick := time.NewTicker(time.Second / time.Duration(fps))
		defer tick.Stop()
		ping := time.NewTicker(keepAlive)
		defer ping.Stop()

		pending := true
		for {
			select {
			case <-r.Context().Done():
				return
			case <-dirty:
				pending = true
			case <-hovered:
				p, err := sess.network.Panel()
				if errors.Is(err, errors.ErrCodeInvalidState) {
					return
				}
				if err != nil {
					s.logger.Warn("stream hover failed", "session", sess.id, "err", err)
					continue
				}
				data, _ := json.Marshal(p)
				if writeEvent(w, "hover", data) != nil {
					return
				}
				flusher.Flush()
			case <-ping.C:
				if _, err := w.Write([]byte(": ping\n\n")); err != nil {
					return
				}
				flusher.Flush()
			case <-tick.C:
				if !pending {
					continue
				}
				pending = false
				data, err := encodeFrame(sess, format)
				if errors.Is(err, errors.ErrCodeInvalidState) {
					return
				}
				if err != nil {
					s.logger.Warn("stream frame failed", "session", sess.id, "err", err)
					continue
				}
				if writeEvent(w, "frame", data) != nil {
					return
				}
				frames++
				flusher.Flush()
			}
		}
	}
}

func encodeFrame(sess *session, format string) ([]byte, error) {
	f, err := sess.frame()
	if err != nil {
		return nil, err
	}
	if format == "json" {
		return json.Marshal(f)
	}
	var doc []byte
	switch f := f.(type) {
	case diagram.OrbitalFrame:
		doc = svg.Orbital(f)
	case diagram.NetworkFrame:
		doc = svg.Network(f)
	}
	return bytes.ReplaceAll(doc, []byte("\n"), nil), nil
}

// writeEvent writes one SSE event. data must not contain newlines.
func writeEvent(w http.ResponseWriter, event string, data []byte) error {
	_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}

type hoverRequest struct {
	Session string `json:"session,omitempty"`
	Hub     string `json:"hub,omitempty"`
	Event   string `json:"event"` // enter or leave
}

// handleHover applies a pointer event to a stream's network, or to the
// shared network when no session is given, and returns the resulting panel.
func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	var req hoverRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := s.hoverTarget(req.Session)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	switch req.Event {
	case "enter":
		err = n.Enter(req.Hub)
	case "leave":
		err = n.Leave()
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "event must be enter or leave, got %q", req.Event)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePanel(w, r, n)
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	n, err := s.hoverTarget(r.URL.Query().Get("session"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePanel(w, r, n)
}

func (s *Server) writePanel(w http.ResponseWriter, r *http.Request, n *diagram.Network) {
	p, err := n.Panel()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) hoverTarget(id string) (*diagram.Network, error) {
	if id == "" {
		return s.sharedNetwork()
	}
	sess, err := s.sessions.get(id)
	if err != nil {
		return nil, err
	}
	if sess.network == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "session %s is not a network stream", id)
	}
	return sess.network, nil
}

type resizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// handleResize re-lays out a stream's component, debounced per config.
func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req resizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.resize(req.Width, req.Height); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
