// Package sessions keeps the per-browser screen state. Each session holds at
// most one active screen; navigating elsewhere discards it.
package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/yigit/drivingschool/internal/app/screens"
	"github.com/yigit/drivingschool/internal/pkg/logger"
)

// DefaultIdleTTL is how long an untouched session survives
const DefaultIdleTTL = 30 * time.Minute

// Session is one browser's navigation state
type Session struct {
	ID string

	mu       sync.Mutex
	screen   screens.Screen
	lastSeen time.Time
}

// Screen returns the active screen if it is of kind k
func (s *Session) Screen(k screens.Kind) (screens.Screen, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen == nil || s.screen.Kind() != k {
		return nil, false
	}
	return s.screen, true
}

// Active returns the active screen, nil when the session has none
func (s *Session) Active() screens.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Replace discards the active screen and installs next
func (s *Session) Replace(next screens.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = next
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Store holds live sessions in memory. Nothing is persisted; a restart
// starts every browser afresh.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	log      zerolog.Logger

	expired prometheus.Counter
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
// Metrics are registered when reg is non-nil.
func NewStore(ttl time.Duration, reg prometheus.Registerer) *Store {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	st := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		log:      logger.Component("sessions"),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "sessions",
			Name:      "expired_total",
			Help:      "Sessions dropped after the idle TTL.",
		}),
	}
	if reg != nil {
		reg.MustRegister(st.expired, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "frontdesk",
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Live browser sessions.",
		}, func() float64 { return float64(st.Len()) }))
	}
	return st
}

// Get returns the live session with id and marks it as seen
func (st *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	now := st.now()
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return nil, false
	}
	if s.idleSince(now) > st.ttl {
		st.remove(id)
		return nil, false
	}
	s.touch(now)
	return s, true
}

// Create starts a new empty session under a fresh id
func (st *Store) Create() *Session {
	s := &Session{ID: uuid.NewString(), lastSeen: st.now()}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// GetOrCreate returns the session for id, creating one if id is unknown or
// expired. created reports whether a new id was issued.
func (st *Store) GetOrCreate(id string) (s *Session, created bool) {
	if s, ok := st.Get(id); ok {
		return s, false
	}
	return st.Create(), true
}

// Len returns the number of stored sessions
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops every session idle for longer than the TTL and returns how
// many were removed.
func (st *Store) Sweep() int {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			delete(st.sessions, id)
			n++
		}
	}
	if n > 0 {
		st.expired.Add(float64(n))
		st.log.Debug().Int("expired", n).Int("remaining", len(st.sessions)).Msg("Swept idle sessions")
	}
	return n
}

// Run sweeps every interval until ctx is done
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}

func (st *Store) remove(id string) {
	st.mu.Lock()
	if _, ok := st.sessions[id]; ok {
		delete(st.sessions, id)
		st.expired.Inc()
	}
	st.mu.Unlock()
}
