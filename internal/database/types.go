package database

import (
	"time"
)

// SelectionState is the mirrored snapshot of the in-memory selection: the
// candidate count and the numeric ids currently marked for deletion.
type SelectionState struct {
	CntTotal    int
	SelectedIDs []int64
	UpdatedAt   time.Time
}
