package handlers

import (
	"sync"

	"github.com/metalingusman/immich-deduper/internal/constants"
)

// Selection event types streamed to connected clients.
const (
	EventCards   = "cards"   // rendered card set replaced
	EventCard    = "card"    // single card checked state changed
	EventButtons = "buttons" // derived button state changed
	EventHints   = "hints"   // inline reason hints replaced
	EventAudit   = "audit"   // audit group set replaced
)

// SelectionEvent represents one selection-surface change.
type SelectionEvent struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// EventBroadcaster provides listener management and event broadcasting for
// selection changes. Embed it to get AddListener, RemoveListener and
// SendEvent methods.
type EventBroadcaster struct {
	listeners []chan SelectionEvent
	mu        sync.RWMutex
}

// AddListener adds an event listener.
func (b *EventBroadcaster) AddListener() chan SelectionEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan SelectionEvent, constants.EventChannelBuffer)
	b.listeners = append(b.listeners, ch)
	return ch
}

// RemoveListener removes an event listener.
func (b *EventBroadcaster) RemoveListener(ch chan SelectionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, listener := range b.listeners {
		if listener == ch {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			close(ch)
			return
		}
	}
}

// SendEvent sends an event to all listeners.
func (b *EventBroadcaster) SendEvent(event SelectionEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, listener := range b.listeners {
		select {
		case listener <- event:
		default:
			// Listener buffer full, skip.
		}
	}
}

// ListenerCount returns the number of connected listeners.
func (b *EventBroadcaster) ListenerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
