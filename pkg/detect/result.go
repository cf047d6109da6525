package detect

import "time"

// Result is the outcome of evaluating one frame. It is a pure value: once
// returned it holds no references to engine internals.
type Result struct {
	// Detected reports whether any scenario triggered this frame.
	Detected bool `json:"detected"`

	// ScenarioID identifies the winning scenario. Only set when Detected.
	ScenarioID string `json:"scenario_id,omitempty"`

	// ScenarioName is the winner's display name. Only set when Detected.
	ScenarioName string `json:"scenario_name,omitempty"`

	// Confidence is the winner's softmax confidence. Only set when Detected.
	Confidence float64 `json:"confidence,omitempty"`

	// AlertLevel is the winner's priority. Only meaningful when Detected.
	AlertLevel AlertLevel `json:"alert_level"`

	// AllScores maps scenario id to confidence for every scenario evaluated
	// this frame. Scenarios skipped by cooldown do not appear.
	AllScores map[string]float64 `json:"all_scores"`

	// Timestamp is the frame time the result was computed for.
	Timestamp time.Time `json:"timestamp"`
}
