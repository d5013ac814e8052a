package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"edumaster/models"
)

// EventSink receives events destined for connected dashboards
type EventSink func(models.Event)

// ViewSelector tracks which view each session is showing
type ViewSelector struct {
	mu       sync.RWMutex
	current  map[string]models.View
	requests *RequestTracker
	sink     EventSink
}

// NewViewSelector creates a selector that invalidates requests through tracker
func NewViewSelector(tracker *RequestTracker, sink EventSink) *ViewSelector {
	return &ViewSelector{
		current:  make(map[string]models.View),
		requests: tracker,
		sink:     sink,
	}
}

// Current returns the session's view, dashboard when none was selected
func (v *ViewSelector) Current(session string) models.View {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if view, ok := v.current[session]; ok {
		return view
	}
	return models.ViewDashboard
}

// Select switches the session to view. Any request the session still has in
// flight is invalidated so its late result is discarded.
func (v *ViewSelector) Select(session string, view models.View) error {
	if !view.Valid() {
		return fmt.Errorf("unknown view %q", view)
	}

	v.mu.Lock()
	v.current[session] = view
	v.mu.Unlock()

	if v.requests != nil {
		if n := v.requests.Invalidate(session); n > 0 {
			log.Printf("Session %s switched to %s, dropped %d pending request(s)", session, view, n)
		}
	}
	if v.sink != nil {
		v.sink(models.Event{
			Type:      models.EventViewChanged,
			SessionID: session,
			Payload:   map[string]interface{}{"view": view},
			Timestamp: time.Now(),
		})
	}
	return nil
}
