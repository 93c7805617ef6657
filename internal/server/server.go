// Package server exposes the diagrams, the concierge and the social feed
// over HTTP.
//
// Snapshot endpoints render a single frame at a requested size and time and
// cache the result. Stream endpoints mount one live component per client on
// the shared animation loop and push frames as server-sent events until the
// client disconnects.
package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/bensonglobal/meridian/pkg/anim"
	"github.com/bensonglobal/meridian/pkg/cache"
	"github.com/bensonglobal/meridian/pkg/concierge"
	"github.com/bensonglobal/meridian/pkg/config"
	"github.com/bensonglobal/meridian/pkg/dataset"
	"github.com/bensonglobal/meridian/pkg/diagram"
	"github.com/bensonglobal/meridian/pkg/errors"
	"github.com/bensonglobal/meridian/pkg/social"
)

// Options wires a Server's collaborators. Nil fields get working defaults.
type Options struct {
	Config    config.Config
	Dataset   *dataset.Dataset
	Cache     cache.Cache
	Keyer     cache.Keyer
	Concierge *concierge.Concierge
	Social    social.Source
	Scheduler *anim.Scheduler
	Logger    *log.Logger
}

// Server is the HTTP front end.
type Server struct {
	cfg    config.Config
	logger *log.Logger
	cache  cache.Cache
	keyer  cache.Keyer
	chat   *concierge.Concierge
	social social.Source
	sched  *anim.Scheduler

	data     atomic.Pointer[loaded]
	sessions *sessions

	sharedMu sync.Mutex
	shared   *diagram.Network // hover target when no session is given

	router chi.Router
}

type loaded struct {
	ds   *dataset.Dataset
	hash string
}

// New builds a Server. Call [Server.Run] to listen, or mount [Server.Handler].
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Dataset == nil {
		opts.Dataset = dataset.Default()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Concierge == nil {
		opts.Concierge = concierge.New(nil, concierge.WithLogger(opts.Logger))
	}
	if opts.Social == nil {
		opts.Social = social.NewFeed(social.WithDelay(opts.Config.Social.Delay.D()))
	}
	if opts.Scheduler == nil {
		interval := anim.FrameInterval
		if opts.Config.Animation.FPS > 0 {
			interval = opts.Config.Animation.FrameInterval()
		}
		opts.Scheduler = anim.NewScheduler(anim.WithInterval(interval), anim.WithLogger(opts.Logger))
	}

	s := &Server{
		cfg:      opts.Config,
		logger:   opts.Logger,
		cache:    opts.Cache,
		keyer:    opts.Keyer,
		chat:     opts.Concierge,
		social:   opts.Social,
		sched:    opts.Scheduler,
		sessions: newSessions(),
	}
	s.SetDataset(opts.Dataset)
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Dataset returns the dataset currently served.
func (s *Server) Dataset() *dataset.Dataset { return s.data.Load().ds }

// SetDataset swaps the served dataset. Snapshots pick it up immediately;
// open streams keep drawing the dataset they were opened with.
func (s *Server) SetDataset(ds *dataset.Dataset) {
	hash := ""
	if data, err := ds.Marshal(); err == nil {
		hash = cache.Hash(data)
	}
	s.data.Store(&loaded{ds: ds, hash: hash})
	s.closeShared()
}

func (s *Server) closeShared() {
	s.sharedMu.Lock()
	defer s.sharedMu.Unlock()
	if s.shared != nil {
		s.shared.Unmount()
		s.shared = nil
	}
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "listen %s", s.cfg.Server.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the animation loop, the optional dataset watcher and the HTTP
// server on ln. It returns when ctx is cancelled and everything has shut down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.sched.Start()
	defer s.sched.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeUnavailable, err, "serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := s.cfg.Server.ShutdownTimeout.D()
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s.logger.Info("shutting down")
		err := srv.Shutdown(sctx)
		s.sessions.closeAll()
		s.closeShared()
		return err
	})
	if s.cfg.Server.Watch && s.cfg.Dataset.Path != "" {
		g.Go(func() error {
			return dataset.Watch(gctx, s.cfg.Dataset.Path, s.logger, func(ds *dataset.Dataset) {
				warnings, _ := ds.Validate()
				for _, w := range warnings {
					s.logger.Warn("dataset", "warning", w)
				}
				s.SetDataset(ds)
			})
		})
	}
	return g.Wait()
}

func (s *Server) sharedNetwork() (*diagram.Network, error) {
	s.sharedMu.Lock()
	defer s.sharedMu.Unlock()
	if s.shared != nil {
		return s.shared, nil
	}
	n := diagram.NewNetwork(s.sched, s.Dataset().Network(), s.diagramOptions())
	if err := n.Mount(defaultWidth, defaultHeight); err != nil {
		return nil, err
	}
	s.shared = n
	return n, nil
}

func (s *Server) diagramOptions() diagram.Options {
	return diagram.Options{
		Debounce: s.cfg.Animation.Debounce.D(),
		Seed:     s.cfg.Animation.Seed,
		Logger:   s.logger,
	}
}
