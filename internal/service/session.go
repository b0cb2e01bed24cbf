package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/pos-checkout-service/internal/barcode"
	"github.com/guttosm/pos-checkout-service/internal/domain/model"
)

// ErrSessionNotFound is returned when a register session id is unknown
// or has expired.
var ErrSessionNotFound = errors.New("register session not found")

// Session is the state of one open register: the cart store plus the
// per-line option state and pending preselects the reconciliation
// engine maintains. Sessions are never shared between registers.
type Session struct {
	ID   string
	Cart *CartStore

	mu       sync.Mutex
	options  map[string]model.LineOptions
	pending  map[string]model.Preselect
	uomGen   map[string]uint64
	detector *barcode.AutoDetector
	lastUsed time.Time
}

// newSession creates a session with empty state.
func newSession(id string) *Session {
	return &Session{
		ID:       id,
		Cart:     NewCartStore(),
		options:  make(map[string]model.LineOptions),
		pending:  make(map[string]model.Preselect),
		uomGen:   make(map[string]uint64),
		lastUsed: time.Now(),
	}
}

// Options returns a copy of the line options map.
func (s *Session) Options() map[string]model.LineOptions {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]model.LineOptions, len(s.options))
	for k, v := range s.options {
		out[k] = v
	}
	return out
}

// LineOptions returns the options for one line (zero value when unset).
func (s *Session) LineOptions(itemCode string) model.LineOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options[itemCode]
}

// setOptions stores options for a line, dropping zero-value entries so
// the map only holds lines that were actually edited.
func (s *Session) setOptions(itemCode string, opts model.LineOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if opts.IsZero() {
		delete(s.options, itemCode)
		return
	}
	s.options[itemCode] = opts
}

// dropLineState discards option state and any pending preselect for a
// removed line.
func (s *Session) dropLineState(itemCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.options, itemCode)
	delete(s.pending, itemCode)
	delete(s.uomGen, itemCode)
}

// addPending merges a preselect signal for a line that does not exist
// yet.
func (s *Session) addPending(itemCode string, p model.Preselect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[itemCode] = s.pending[itemCode].Merge(p)
}

// pendingEntries returns a copy of the pending preselects, used by the
// drain pass after line-set changes.
func (s *Session) pendingEntries() map[string]model.Preselect {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]model.Preselect, len(s.pending))
	for k, v := range s.pending {
		out[k] = v
	}
	return out
}

// takePending removes and returns the pending preselect for a code.
func (s *Session) takePending(itemCode string) (model.Preselect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[itemCode]
	if ok {
		delete(s.pending, itemCode)
	}
	return p, ok
}

// nextUOMGeneration bumps and returns the generation stamp for a
// line's UOM selection. A remote price result is only applied while its
// stamp is still current, which discards stale responses after the
// operator changed the UOM again.
func (s *Session) nextUOMGeneration(itemCode string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uomGen[itemCode]++
	return s.uomGen[itemCode]
}

// uomGenerationCurrent reports whether the stamp is still the latest
// for the line.
func (s *Session) uomGenerationCurrent(itemCode string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uomGen[itemCode] == gen
}

// Detector lazily creates the typed-input auto-detector for the
// session, wiring it to the given scan callback on first use.
func (s *Session) Detector(window time.Duration, onScan func(code string)) *barcode.AutoDetector {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detector == nil {
		s.detector = barcode.NewAutoDetector(window, onScan)
	}
	return s.detector
}

// stopDetector stops and drops the auto-detector, if one was created.
// The detector pointer is read under the session mutex because a
// concurrent typed-input request may be lazily initializing it; Stop
// itself runs outside the lock.
func (s *Session) stopDetector() {
	s.mu.Lock()
	detector := s.detector
	s.detector = nil
	s.mu.Unlock()

	if detector != nil {
		detector.Stop()
	}
}

// clearState resets engine state alongside a cart clear, pruning any
// orphaned pending preselects.
func (s *Session) clearState() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.options = make(map[string]model.LineOptions)
	s.pending = make(map[string]model.Preselect)
	s.uomGen = make(map[string]uint64)
}

// touch refreshes the idle timestamp.
func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
}

// idleSince returns the last-use timestamp.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// SessionManager owns all live register sessions. Idle sessions are
// evicted by a background janitor so abandoned registers do not leak.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewSessionManager creates a manager evicting sessions idle longer
// than ttl (0 disables eviction).
func NewSessionManager(ttl time.Duration) *SessionManager {
	m := &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
	if ttl > 0 {
		go m.janitor()
	}
	return m
}

// Create opens a new register session with a generated id.
func (m *SessionManager) Create() *Session {
	sess := newSession(uuid.New().String())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return sess
}

// Get returns the session with the given id, refreshing its idle timer.
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touch()
	return sess, nil
}

// Delete closes a session, stopping its auto-detector.
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		sess.stopDetector()
	}
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Stop shuts down the eviction janitor.
func (m *SessionManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *SessionManager) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-m.stopCh:
			return
		}
	}
}

func (m *SessionManager) evictIdle() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	var expired []*Session
	for id, sess := range m.sessions {
		if sess.idleSince().Before(cutoff) {
			expired = append(expired, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, sess := range expired {
		sess.stopDetector()
	}
}
