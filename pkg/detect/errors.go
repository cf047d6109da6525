package detect

import "errors"

// Sentinel errors for configuration and runtime conditions.
var (
	// ErrNotFound is returned when a scenario id is not registered.
	ErrNotFound = errors.New("detect: scenario not found")

	// ErrNoDefinitions is returned when a reload carries an empty definition set.
	ErrNoDefinitions = errors.New("detect: no scenario definitions")

	// ErrMissingID is returned when a definition has no id.
	ErrMissingID = errors.New("detect: scenario id required")

	// ErrMissingPrompt is returned when a definition has no prompt text.
	ErrMissingPrompt = errors.New("detect: scenario prompt required")

	// ErrInvalidThreshold is returned when a threshold is outside [0,1].
	ErrInvalidThreshold = errors.New("detect: threshold must be in [0,1]")

	// ErrInvalidCooldown is returned when a cooldown is negative.
	ErrInvalidCooldown = errors.New("detect: cooldown must be non-negative")

	// ErrInvalidConsecutive is returned when consecutive_frames is not positive.
	ErrInvalidConsecutive = errors.New("detect: consecutive_frames must be positive")

	// ErrInvalidAlertLevel is returned when an alert level is unknown.
	ErrInvalidAlertLevel = errors.New("detect: unknown alert level")

	// ErrDuplicateID is returned when a definition set repeats an id.
	ErrDuplicateID = errors.New("detect: duplicate scenario id")
)
