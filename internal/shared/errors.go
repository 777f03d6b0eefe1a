package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog errors
	ErrCatalogUnavailable = fmt.Errorf("catalog unavailable")
	ErrNotInCatalog       = fmt.Errorf("entry not in catalog")

	// Session errors
	ErrSessionNotFound = fmt.Errorf("session not found")

	// Matching errors
	ErrUnknownScorer = fmt.Errorf("unknown scorer")

	// Playback errors
	ErrPlaybackFailed = fmt.Errorf("playback failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
