// Package alert dispatches detection results to configurable outputs.
//
// A Manager fans a triggered detection out to its notifiers (console, saved
// frames, email) and keeps a bounded history for the dashboard. Scenarios
// describing normal activity are filtered out so that only anomalies alert.
package alert

import (
	"image"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sentinelcam/go-sentinel/internal/log"
	"github.com/sentinelcam/go-sentinel/pkg/detect"
)

// historyLimit bounds the in-memory alert history.
const historyLimit = 500

// Event is one dispatched alert.
type Event struct {
	ID           string             `json:"id"`
	Time         time.Time          `json:"time"`
	ScenarioID   string             `json:"scenario_id"`
	ScenarioName string             `json:"scenario_name"`
	Confidence   float64            `json:"confidence"`
	Level        detect.AlertLevel  `json:"alert_level"`
	AllScores    map[string]float64 `json:"all_scores,omitempty"`
}

// Notifier delivers an alert to one output channel. The frame that triggered
// the alert may be nil when the caller did not retain it.
type Notifier interface {
	Notify(event Event, frame image.Image) error
}

// Manager fans alerts out to notifiers and records history.
type Manager struct {
	mu        sync.Mutex
	notifiers []Notifier
	history   []Event
	counts    map[string]int
}

// NewManager creates a manager with the given notifiers.
func NewManager(notifiers ...Notifier) *Manager {
	return &Manager{
		notifiers: notifiers,
		counts:    make(map[string]int),
	}
}

// AddNotifier appends a notifier.
func (m *Manager) AddNotifier(n Notifier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifiers = append(m.notifiers, n)
}

// Dispatch converts a detection into an alert and delivers it. Results that
// did not detect anything, or whose scenario describes normal activity, are
// ignored. Returns the event, or nil when the result was filtered.
func (m *Manager) Dispatch(res *detect.Result, frame image.Image) *Event {
	if res == nil || !res.Detected {
		return nil
	}
	if isNormalScenario(res.ScenarioName) {
		log.Debug("skipping normal-scenario alert", "scenario", res.ScenarioID)
		return nil
	}

	event := Event{
		ID:           uuid.NewString(),
		Time:         res.Timestamp,
		ScenarioID:   res.ScenarioID,
		ScenarioName: res.ScenarioName,
		Confidence:   res.Confidence,
		Level:        res.AlertLevel,
		AllScores:    res.AllScores,
	}

	m.mu.Lock()
	m.history = append(m.history, event)
	if len(m.history) > historyLimit {
		m.history = m.history[1:]
	}
	m.counts[event.ScenarioName]++
	notifiers := make([]Notifier, len(m.notifiers))
	copy(notifiers, m.notifiers)
	m.mu.Unlock()

	for _, n := range notifiers {
		if err := n.Notify(event, frame); err != nil {
			log.Warn("notifier failed",
				"scenario", event.ScenarioID,
				"error", err,
			)
		}
	}

	return &event
}

// History returns a copy of the recorded alerts, oldest first.
func (m *Manager) History() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.history))
	copy(out, m.history)
	return out
}

// Statistics summarizes the alert history.
type Statistics struct {
	TotalAlerts int            `json:"total_alerts"`
	ByScenario  map[string]int `json:"by_scenario"`
	FirstAlert  time.Time      `json:"first_alert,omitempty"`
	LastAlert   time.Time      `json:"last_alert,omitempty"`
}

// Statistics returns alert counts overall and per scenario.
func (m *Manager) Statistics() Statistics {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := Statistics{
		TotalAlerts: len(m.history),
		ByScenario:  make(map[string]int, len(m.counts)),
	}
	for name, count := range m.counts {
		stats.ByScenario[name] = count
	}
	if len(m.history) > 0 {
		stats.FirstAlert = m.history[0].Time
		stats.LastAlert = m.history[len(m.history)-1].Time
	}
	return stats
}

// isNormalScenario reports whether the scenario name describes ordinary
// activity that should not alert.
func isNormalScenario(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal", "ordinary", "background":
		return true
	}
	return false
}
