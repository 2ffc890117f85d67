package selection

import (
	"log"
	"sort"
	"sync"
)

// Store is the authoritative in-memory selection state: the total candidate
// count and the set of selected asset ids. The UI renders from it and the
// remote mirror is overwritten from it; neither is ever read back.
//
// Mutation paths differ in their externalization discipline, mirroring how
// the operations are driven from the UI: Toggle refreshes one card and the
// buttons but leaves the mirror push to its caller, while the bulk operations
// (SelectAll, ClearAll, SelectGroup, ClearGroup) refresh visuals and push the
// mirror exactly once themselves.
type Store struct {
	mu       sync.Mutex
	view     CardView
	mirror   Mirror
	cntTotal int
	selected map[int64]struct{}
}

// NewStore creates a Store bound to a view and a mirror.
func NewStore(view CardView, mirror Mirror) *Store {
	return &Store{
		view:     view,
		mirror:   mirror,
		selected: make(map[int64]struct{}),
	}
}

// Reset sets the total candidate count and clears the selected set without
// any externalization side effect. Used before a bulk computed update.
func (s *Store) Reset(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cntTotal = total
	s.selected = make(map[int64]struct{})
}

// Add inserts ids into the selected set without refreshing visuals. Used by
// the synchronizer to union auto-selection results before applying them.
func (s *Store) Add(ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.selected[id] = struct{}{}
	}
}

// Toggle flips membership of id in the selected set, refreshes that card and
// the buttons. The mirror push is the caller's responsibility; manual UI
// actions consolidate their own push.
func (s *Store) Toggle(id int64) {
	s.mu.Lock()
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
	checked := s.has(id)
	state := buttonState(len(s.selected), s.cntTotal)
	s.mu.Unlock()

	if err := s.view.SetChecked(id, checked); err != nil {
		log.Printf("toggle: card %d not rendered: %v (rendered: %v)", id, err, s.view.CardIDs())
	}
	s.view.UpdateButtons(state)
}

// SelectAll selects every currently rendered card. The candidate set comes
// from the view because the authoritative candidate list lives in the
// rendered surface, not in the store.
func (s *Store) SelectAll() error {
	ids := s.view.CardIDs()
	s.Add(ids...)
	s.RefreshAll()
	return s.Push()
}

// ClearAll empties the selected set, refreshes every card and pushes once.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	s.selected = make(map[int64]struct{})
	s.mu.Unlock()
	s.RefreshAll()
	return s.Push()
}

// SelectGroup selects every rendered card inside one group boundary.
func (s *Store) SelectGroup(groupID int64) error {
	for _, id := range s.view.GroupCardIDs(groupID) {
		s.Add(id)
		s.refreshCard(id)
	}
	s.refreshButtons()
	return s.Push()
}

// ClearGroup deselects every rendered card inside one group boundary.
func (s *Store) ClearGroup(groupID int64) error {
	s.mu.Lock()
	ids := s.view.GroupCardIDs(groupID)
	for _, id := range ids {
		delete(s.selected, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.refreshCard(id)
	}
	s.refreshButtons()
	return s.Push()
}

// RefreshAll re-applies checked state to every rendered card and refreshes
// the buttons. A card that fails to update is logged and skipped; partial
// failure never aborts the batch. Returns the number of cards updated.
func (s *Store) RefreshAll() int {
	updated := 0
	for _, id := range s.view.CardIDs() {
		if s.refreshCard(id) {
			updated++
		}
	}
	s.refreshButtons()
	return updated
}

func (s *Store) refreshCard(id int64) bool {
	if err := s.view.SetChecked(id, s.IsSelected(id)); err != nil {
		log.Printf("refresh: card %d not rendered: %v", id, err)
		return false
	}
	return true
}

func (s *Store) refreshButtons() {
	s.view.UpdateButtons(s.ButtonState())
}

// Push overwrites the remote mirror with the current state.
func (s *Store) Push() error {
	s.mu.Lock()
	total := s.cntTotal
	ids := s.sortedSelected()
	s.mu.Unlock()
	return s.mirror.Push(total, ids)
}

// Selected returns the selected ids in ascending order.
func (s *Store) Selected() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedSelected()
}

func (s *Store) sortedSelected() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsSelected reports whether id is in the selected set.
func (s *Store) IsSelected(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.has(id)
}

func (s *Store) has(id int64) bool {
	_, ok := s.selected[id]
	return ok
}

// Count returns the number of selected ids.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// Total returns the total candidate count.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cntTotal
}

// ButtonState derives the current action-button state.
func (s *Store) ButtonState() ButtonState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return buttonState(len(s.selected), s.cntTotal)
}
