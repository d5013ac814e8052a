package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Panels that issue AI requests
const (
	PanelReport = "report"
	PanelVoice  = "voice"
)

// ErrBusy is returned while a panel already has a request in flight.
var ErrBusy = errors.New("a request for this panel is already in progress")

// Token identifies one in-flight request
type Token struct {
	ID      string
	Session string
	Panel   string
}

type panelKey struct {
	session string
	panel   string
}

// RequestTracker enforces one outstanding request per (session, panel) and
// decides whether a completion is still wanted. A token becomes stale when
// its session changes view; stale completions are dropped.
type RequestTracker struct {
	mu       sync.Mutex
	inFlight map[panelKey]string
}

// NewRequestTracker creates an empty tracker
func NewRequestTracker() *RequestTracker {
	return &RequestTracker{inFlight: make(map[panelKey]string)}
}

// Begin marks the panel busy and issues a token for the new request
func (t *RequestTracker) Begin(session, panel string) (Token, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := panelKey{session, panel}
	if _, busy := t.inFlight[key]; busy {
		return Token{}, ErrBusy
	}
	tok := Token{ID: uuid.NewString(), Session: session, Panel: panel}
	t.inFlight[key] = tok.ID
	return tok, nil
}

// Complete clears the busy flag and reports whether tok was still current.
// A false result means the caller must discard the result.
func (t *RequestTracker) Complete(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := panelKey{tok.Session, tok.Panel}
	if current, ok := t.inFlight[key]; ok && current == tok.ID {
		delete(t.inFlight, key)
		return true
	}
	return false
}

// Busy reports whether the panel has a request in flight
func (t *RequestTracker) Busy(session, panel string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, busy := t.inFlight[panelKey{session, panel}]
	return busy
}

// Invalidate makes every outstanding token of the session stale and frees
// its panels for new requests.
func (t *RequestTracker) Invalidate(session string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for key := range t.inFlight {
		if key.session == session {
			delete(t.inFlight, key)
			n++
		}
	}
	return n
}
