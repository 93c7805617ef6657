package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/bensonglobal/meridian/pkg/diagram"
	"github.com/bensonglobal/meridian/pkg/errors"
	"github.com/bensonglobal/meridian/pkg/geo"
	"github.com/bensonglobal/meridian/pkg/hover"
)

const (
	kindOrbital = "orbital"
	kindNetwork = "network"
)

// session is one live component owned by a stream connection.
type session struct {
	id      string
	kind    string
	orbital *diagram.Orbital
	network *diagram.Network
}

func (s *session) resize(width, height int) error {
	if s.network != nil {
		return s.network.Resize(width, height)
	}
	return s.orbital.Resize(width, height)
}

func (s *session) subscribe(fn func()) (func(), error) {
	if s.network != nil {
		return s.network.Subscribe(fn)
	}
	return s.orbital.Subscribe(fn)
}

// hoverChanges returns a channel that is signalled whenever the hovered hub
// changes. Signals coalesce. Orbital sessions have no hover and get nil.
func (s *session) hoverChanges() <-chan struct{} {
	if s.network == nil {
		return nil
	}
	ch := make(chan struct{}, 1)
	s.network.OnHover(hover.ListenerFunc(func(*geo.Hub) {
		select {
		case ch <- struct{}{}:
		default:
		}
	}))
	return ch
}

func (s *session) frame() (any, error) {
	if s.network != nil {
		return s.network.Frame()
	}
	return s.orbital.Frame()
}

func (s *session) unmount() {
	if s.network != nil {
		s.network.Unmount()
		return
	}
	s.orbital.Unmount()
}

type sessions struct {
	mu sync.Mutex
	m  map[string]*session
}

func newSessions() *sessions {
	return &sessions{m: make(map[string]*session)}
}

func (ss *sessions) add(sess *session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.m[sess.id] = sess
}

func (ss *sessions) get(id string) (*session, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	sess, ok := ss.m[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no stream session %q", id)
	}
	return sess, nil
}

// remove unmounts and forgets id.
func (ss *sessions) remove(id string) {
	ss.mu.Lock()
	sess, ok := ss.m[id]
	delete(ss.m, id)
	ss.mu.Unlock()
	if ok {
		sess.unmount()
	}
}

func (ss *sessions) count() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.m)
}

func (ss *sessions) closeAll() {
	ss.mu.Lock()
	all := ss.m
	ss.m = make(map[string]*session)
	ss.mu.Unlock()
	for _, sess := range all {
		sess.unmount()
	}
}

// openSession mounts a new component of kind on the server's loop.
func (s *Server) openSession(kind string, width, height int) (*session, error) {
	ds := s.Dataset()
	sess := &session{id: uuid.NewString(), kind: kind}
	var err error
	switch kind {
	case kindNetwork:
		sess.network = diagram.NewNetwork(s.sched, ds.Network(), s.diagramOptions())
		err = sess.network.Mount(width, height)
	default:
		sess.orbital = diagram.NewOrbital(s.sched, ds.Orbital(), s.diagramOptions())
		err = sess.orbital.Mount(width, height)
	}
	if err != nil {
		return nil, err
	}
	s.sessions.add(sess)
	return sess, nil
}
