package detect

import (
	"encoding/json"
	"fmt"
	"time"
)

// AlertLevel is the ordinal alert priority of a scenario. Higher levels win
// conflict resolution when several scenarios qualify in the same frame.
type AlertLevel int

const (
	// LevelLow is informational.
	LevelLow AlertLevel = iota

	// LevelMedium warrants attention.
	LevelMedium

	// LevelHigh is urgent and outranks all others.
	LevelHigh
)

// String returns the wire name of the level.
func (l AlertLevel) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseAlertLevel parses a wire name into an AlertLevel.
func ParseAlertLevel(s string) (AlertLevel, error) {
	switch s {
	case "low":
		return LevelLow, nil
	case "medium":
		return LevelMedium, nil
	case "high":
		return LevelHigh, nil
	default:
		return LevelLow, fmt.Errorf("%w: %q", ErrInvalidAlertLevel, s)
	}
}

// MarshalJSON encodes the level as its wire name.
func (l AlertLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes the level from its wire name.
func (l *AlertLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseAlertLevel(s)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// Definition is the static, externally authored configuration of a scenario.
// It is the unit of registration and hot reload; runtime state never lives here.
type Definition struct {
	// ID is the stable scenario key, e.g. "fall".
	ID string `json:"id"`

	// Name is the display string.
	Name string `json:"name"`

	// Prompt is the text scored against each frame.
	Prompt string `json:"prompt"`

	// Threshold is the confidence in [0,1] above which a frame qualifies.
	Threshold float64 `json:"threshold"`

	// CooldownSeconds is the minimum time between two triggers.
	CooldownSeconds float64 `json:"cooldown"`

	// ConsecutiveFrames is the number of qualifying frames in a row
	// required before a trigger.
	ConsecutiveFrames int `json:"consecutive_frames"`

	// AlertLevel is the conflict-resolution priority.
	AlertLevel AlertLevel `json:"alert_level"`

	// Enabled toggles evaluation without losing the definition.
	Enabled bool `json:"enabled"`
}

// Cooldown returns the cooldown as a duration.
func (d Definition) Cooldown() time.Duration {
	return time.Duration(d.CooldownSeconds * float64(time.Second))
}

// Validate checks the definition against the schema rules.
func (d Definition) Validate() error {
	if d.ID == "" {
		return ErrMissingID
	}
	if d.Prompt == "" {
		return fmt.Errorf("%w (scenario %q)", ErrMissingPrompt, d.ID)
	}
	if d.Threshold < 0 || d.Threshold > 1 {
		return fmt.Errorf("%w (scenario %q: %v)", ErrInvalidThreshold, d.ID, d.Threshold)
	}
	if d.CooldownSeconds < 0 {
		return fmt.Errorf("%w (scenario %q: %v)", ErrInvalidCooldown, d.ID, d.CooldownSeconds)
	}
	if d.ConsecutiveFrames < 1 {
		return fmt.Errorf("%w (scenario %q: %d)", ErrInvalidConsecutive, d.ID, d.ConsecutiveFrames)
	}
	if d.AlertLevel < LevelLow || d.AlertLevel > LevelHigh {
		return fmt.Errorf("%w (scenario %q)", ErrInvalidAlertLevel, d.ID)
	}
	return nil
}

// historySize bounds the per-scenario rolling confidence history.
// The history feeds diagnostics only and never affects decisions.
const historySize = 10

// Scenario pairs a definition with its mutable runtime state. Runtime fields
// are owned by the engine; they survive a reload that keeps the same id and
// are discarded when the id disappears from the definition set.
type Scenario struct {
	def Definition

	lastTrigger      time.Time
	consecutiveCount int
	history          []float64
}

// newScenario creates a scenario with zeroed runtime state.
func newScenario(def Definition) *Scenario {
	return &Scenario{
		def:     def,
		history: make([]float64, 0, historySize),
	}
}

// Definition returns the static configuration.
func (s *Scenario) Definition() Definition {
	return s.def
}

// ID returns the scenario key.
func (s *Scenario) ID() string {
	return s.def.ID
}

// Enabled reports whether the scenario is evaluated.
func (s *Scenario) Enabled() bool {
	return s.def.Enabled
}

// ConsecutiveCount returns the current qualifying-frame streak.
func (s *Scenario) ConsecutiveCount() int {
	return s.consecutiveCount
}

// LastTrigger returns the time of the most recent trigger, zero if never.
func (s *Scenario) LastTrigger() time.Time {
	return s.lastTrigger
}

// History returns a copy of the rolling confidence history, oldest first.
func (s *Scenario) History() []float64 {
	out := make([]float64, len(s.history))
	copy(out, s.history)
	return out
}

// inCooldown reports whether the scenario is still cooling down at now.
func (s *Scenario) inCooldown(now time.Time) bool {
	if s.lastTrigger.IsZero() {
		return false
	}
	return now.Sub(s.lastTrigger) < s.def.Cooldown()
}

// recordConfidence appends a confidence to the history, dropping the oldest
// entry when over capacity.
func (s *Scenario) recordConfidence(conf float64) {
	s.history = append(s.history, conf)
	if len(s.history) > historySize {
		s.history = s.history[1:]
	}
}

// reset clears all runtime state.
func (s *Scenario) reset() {
	s.lastTrigger = time.Time{}
	s.consecutiveCount = 0
	s.history = s.history[:0]
}
