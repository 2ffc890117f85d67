// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Candidate feed constants
const (
	// MaxAssetsPerPush is the maximum number of assets accepted in a single
	// candidate-list push
	MaxAssetsPerPush = 50000
)

// Event channel constants
const (
	// EventChannelBuffer is the buffer size for event channels
	EventChannelBuffer = 100
)
