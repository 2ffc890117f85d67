package selection

import (
	"log"
	"sync"
	"time"

	"github.com/metalingusman/immich-deduper/internal/dedupe"
)

// Default timing for the wait-for-cards step.
const (
	defaultWaitTimeout  = 6 * time.Second
	defaultPollInterval = 50 * time.Millisecond
)

// Synchronizer bridges the gap between "the scoring engine has decided" and
// "the rendered surface reflects it". Cards may be rendered after the
// decision, so visual application is deferred behind a cancelable wait, and
// a change signature prevents recomputation when neither the asset list nor
// the config changed.
//
// The store always holds the authoritative decision the moment Sync returns;
// only the visual reflection may lag.
type Synchronizer struct {
	store    *Store
	view     CardView
	recorder *dedupe.Recorder

	waitTimeout  time.Duration
	pollInterval time.Duration

	// passMu serializes whole passes. Reset, score and add must not
	// interleave across passes or the store would blend two asset lists.
	passMu sync.Mutex

	mu      sync.Mutex
	lastSig string
	pending *Waiter
}

// NewSynchronizer creates a Synchronizer around an explicitly constructed
// store. The recorder receives every pass's decisions for audit access.
func NewSynchronizer(store *Store, view CardView, recorder *dedupe.Recorder) *Synchronizer {
	return &Synchronizer{
		store:        store,
		view:         view,
		recorder:     recorder,
		waitTimeout:  defaultWaitTimeout,
		pollInterval: defaultPollInterval,
	}
}

// SetWaitTiming overrides the wait timeout and poll interval. Intended for
// tests.
func (s *Synchronizer) SetWaitTiming(timeout, interval time.Duration) {
	s.waitTimeout = timeout
	s.pollInterval = interval
}

// Sync runs one evaluation pass for the given (assets, config) pair.
//
// When the pair's signature matches the previous pass this is a no-op and
// returns false. Otherwise any wait still pending from an earlier pass is
// torn down first (a later push always wins), the store is reset and filled
// from the scoring engine, visuals are applied immediately or as soon as
// cards appear, and the mirror is pushed exactly once. Concurrent calls run
// one full pass at a time.
//
func (s *Synchronizer) Sync(assets []dedupe.Asset, cfg dedupe.ScoringConfig) bool {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	sig := Signature(assets, cfg)

	s.mu.Lock()
	if sig == s.lastSig {
		s.mu.Unlock()
		log.Printf("sync: assets and config unchanged, skipping")
		return false
	}
	s.lastSig = sig
	s.cancelPendingLocked()
	s.mu.Unlock()

	s.store.Reset(len(assets))
	result := dedupe.AutoSelect(assets, cfg, s.recorder)
	s.store.Add(result.SelectedIDs...)

	if len(result.SelectedIDs) == 0 {
		// Nothing auto-selected: refresh buttons and mirror, no card waiting.
		s.view.UpdateButtons(s.store.ButtonState())
		s.pushMirror()
		return true
	}

	groupIDs := make([]int64, 0, len(result.Decisions))
	for _, d := range result.Decisions {
		groupIDs = append(groupIDs, d.GroupID)
	}

	apply := func() {
		// A pass that started after this one owns the surface now.
		s.mu.Lock()
		stale := s.lastSig != sig
		s.mu.Unlock()
		if stale {
			return
		}
		s.store.RefreshAll()
		s.view.ShowHints(s.recorder.ReasonsByAsset())
		s.view.ShowAuditGroups(groupIDs)
		s.pushMirror()
		log.Printf("sync: auto-selected %d assets", len(result.SelectedIDs))
	}

	if len(s.view.CardIDs()) > 0 {
		apply()
		return true
	}

	// Registered under the lock so a superseding pass always sees (and
	// cancels) this waiter instead of leaving it to poll out its timeout.
	s.mu.Lock()
	s.pending = AwaitCondition(
		func() bool { return len(s.view.CardIDs()) > 0 },
		s.pollInterval,
		s.waitTimeout,
		apply,
		func() {
			log.Printf("sync: timeout waiting for cards, visuals not applied (selection state intact)")
		},
	)
	s.mu.Unlock()
	return true
}

// LastSignature returns the signature of the most recent pass.
func (s *Synchronizer) LastSignature() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSig
}

// Dispose tears down any pending wait. The synchronizer may be reused after
// disposal; the next Sync starts a fresh pass.
func (s *Synchronizer) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPendingLocked()
	s.lastSig = ""
}

func (s *Synchronizer) cancelPendingLocked() {
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
}

func (s *Synchronizer) pushMirror() {
	if err := s.store.Push(); err != nil {
		log.Printf("sync: mirror push failed: %v", err)
	}
}
