package handlers

import (
	"fmt"
	"log"
	"sync"

	"github.com/metalingusman/immich-deduper/internal/dedupe"
	"github.com/metalingusman/immich-deduper/internal/selection"
)

// cardSpecType is the marker every pushed card descriptor must carry.
// Descriptors with any other type are not selection targets.
const cardSpecType = "card-select"

// CardSpec is one rendered card as announced by the frontend. The id is a
// pointer so a missing field can be told apart from id 0.
type CardSpec struct {
	Type    string `json:"type"`
	ID      *int64 `json:"id"`
	GroupID *int64 `json:"groupId"`
}

type cardState struct {
	id      int64
	groupID int64
	checked bool
}

// CardRegistry tracks the rendered card surface announced by the frontend and
// reflects selection state changes back as server-sent events. It is the
// server-side stand-in for the rendered element set the selection core
// mutates.
type CardRegistry struct {
	EventBroadcaster

	mu      sync.RWMutex
	cards   map[int64]*cardState
	order   []int64
	buttons selection.ButtonState
	hints   map[int64][]dedupe.Reason
	audit   []int64
}

// NewCardRegistry creates an empty registry.
func NewCardRegistry() *CardRegistry {
	return &CardRegistry{
		cards: make(map[int64]*cardState),
		hints: make(map[int64][]dedupe.Reason),
	}
}

// Register replaces the rendered card set with the given descriptors.
// Malformed descriptors (wrong type marker, missing id) are logged and
// skipped; duplicates keep the first occurrence. Returns the number of cards
// accepted.
func (c *CardRegistry) Register(specs []CardSpec) int {
	c.mu.Lock()
	c.cards = make(map[int64]*cardState, len(specs))
	c.order = c.order[:0]
	for i, spec := range specs {
		if spec.Type != cardSpecType {
			log.Printf("cards: descriptor %d has type %q, skipping", i, sanitizeForLog(spec.Type))
			continue
		}
		if spec.ID == nil {
			log.Printf("cards: descriptor %d has no id, skipping", i)
			continue
		}
		id := *spec.ID
		if _, dup := c.cards[id]; dup {
			continue
		}
		state := &cardState{id: id}
		if spec.GroupID != nil {
			state.groupID = *spec.GroupID
		}
		c.cards[id] = state
		c.order = append(c.order, id)
	}
	accepted := len(c.order)
	c.mu.Unlock()

	c.SendEvent(SelectionEvent{Type: EventCards, Data: map[string]int{"count": accepted}})
	return accepted
}

// CardIDs returns the asset ids of all currently rendered cards.
func (c *CardRegistry) CardIDs() []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]int64, len(c.order))
	copy(ids, c.order)
	return ids
}

// GroupCardIDs returns the ids of cards inside one group boundary.
func (c *CardRegistry) GroupCardIDs(groupID int64) []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var ids []int64
	for _, id := range c.order {
		if c.cards[id].groupID == groupID {
			ids = append(ids, id)
		}
	}
	return ids
}

// SetChecked updates a card's checked state. Returns an error when no card
// with the given id is rendered.
func (c *CardRegistry) SetChecked(id int64, checked bool) error {
	c.mu.Lock()
	state, ok := c.cards[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("card %d not found", id)
	}
	state.checked = checked
	c.mu.Unlock()

	c.SendEvent(SelectionEvent{Type: EventCard, Data: map[string]any{"id": id, "checked": checked}})
	return nil
}

// UpdateButtons refreshes the action buttons from the derived state.
func (c *CardRegistry) UpdateButtons(state selection.ButtonState) {
	c.mu.Lock()
	c.buttons = state
	c.mu.Unlock()

	c.SendEvent(SelectionEvent{Type: EventButtons, Data: state})
}

// ShowHints attaches inline reason annotations, replacing any previous hints.
func (c *CardRegistry) ShowHints(hints map[int64][]dedupe.Reason) {
	rendered := make(map[int64]string, len(hints))
	for id, reasons := range hints {
		rendered[id] = dedupe.JoinReasons(reasons)
	}

	c.mu.Lock()
	c.hints = hints
	c.mu.Unlock()

	c.SendEvent(SelectionEvent{Type: EventHints, Data: rendered})
}

// ShowAuditGroups exposes the audit affordance for the given group ids.
func (c *CardRegistry) ShowAuditGroups(groupIDs []int64) {
	c.mu.Lock()
	c.audit = groupIDs
	c.mu.Unlock()

	c.SendEvent(SelectionEvent{Type: EventAudit, Data: groupIDs})
}

// CardSnapshot is the rendered state of one card for the surface snapshot.
type CardSnapshot struct {
	ID      int64  `json:"id"`
	GroupID int64  `json:"groupId,omitempty"`
	Checked bool   `json:"checked"`
	Hint    string `json:"hint,omitempty"`
}

// SurfaceSnapshot is the full rendered-surface state returned to clients
// that reconnect or poll instead of streaming.
type SurfaceSnapshot struct {
	Cards       []CardSnapshot        `json:"cards"`
	Buttons     selection.ButtonState `json:"buttons"`
	AuditGroups []int64               `json:"auditGroups,omitempty"`
}

// Snapshot returns a consistent copy of the rendered surface.
func (c *CardRegistry) Snapshot() SurfaceSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := SurfaceSnapshot{
		Cards:       make([]CardSnapshot, 0, len(c.order)),
		Buttons:     c.buttons,
		AuditGroups: append([]int64(nil), c.audit...),
	}
	for _, id := range c.order {
		state := c.cards[id]
		snap.Cards = append(snap.Cards, CardSnapshot{
			ID:      state.id,
			GroupID: state.groupID,
			Checked: state.checked,
			Hint:    dedupe.JoinReasons(c.hints[id]),
		})
	}
	return snap
}
