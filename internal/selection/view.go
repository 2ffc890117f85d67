package selection

import (
	"fmt"

	"github.com/metalingusman/immich-deduper/internal/dedupe"
)

// CardView is the rendered visual surface the selection state is reflected
// onto. The core never creates or destroys cards; it only reads which cards
// exist and mutates their checked state and auxiliary affordances. Cards may
// appear after a decision has been made, so implementations must tolerate
// being asked about ids that are not rendered yet.
type CardView interface {
	// CardIDs returns the asset ids of all currently rendered cards.
	CardIDs() []int64

	// GroupCardIDs returns the ids of cards inside one visually delimited
	// group boundary.
	GroupCardIDs(groupID int64) []int64

	// SetChecked updates a card's checked state. Returns an error when no
	// card with the given id is rendered.
	SetChecked(id int64, checked bool) error

	// UpdateButtons refreshes the action buttons from the derived state.
	UpdateButtons(ButtonState)

	// ShowHints attaches inline reason annotations to the given cards,
	// replacing any previous hints.
	ShowHints(hints map[int64][]dedupe.Reason)

	// ShowAuditGroups exposes the per-cluster audit affordance for the given
	// group ids, replacing any previous set.
	ShowAuditGroups(groupIDs []int64)
}

// Mirror is the remote persisted copy of the selection state. The core only
// overwrites it; it never reads the mirror back as a source of truth.
type Mirror interface {
	Push(total int, selectedIDs []int64) error
}

// ButtonState is the derived state of the selection action buttons.
type ButtonState struct {
	SelectedCount    int    `json:"selectedCount"`
	TotalCount       int    `json:"totalCount"`
	RestCount        int    `json:"restCount"`
	SelectAllEnabled bool   `json:"selectAllEnabled"`
	ClearAllEnabled  bool   `json:"clearAllEnabled"`
	DeleteSelected   string `json:"deleteSelectedLabel"`
	KeepSelected     string `json:"keepSelectedLabel"`
}

func buttonState(selected, total int) ButtonState {
	rest := total - selected
	if rest < 0 {
		rest = 0
	}
	return ButtonState{
		SelectedCount:    selected,
		TotalCount:       total,
		RestCount:        rest,
		SelectAllEnabled: selected < total && total > 0,
		ClearAllEnabled:  selected > 0,
		DeleteSelected:   fmt.Sprintf("Delete selected (%d) and keep others (%d)", selected, rest),
		KeepSelected:     fmt.Sprintf("Keep selected (%d) and delete others (%d)", selected, rest),
	}
}
