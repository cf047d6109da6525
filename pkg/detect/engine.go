package detect

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/sentinelcam/go-sentinel/pkg/scoring"
)

// Engine evaluates frames against the scenario store. One Engine serves one
// video stream; per-scenario runtime counters are mutated in place, so
// Detect and Reload are serialized behind a single mutex.
type Engine struct {
	mu          sync.Mutex
	store       *Store
	provider    scoring.Provider
	temperature float64
	logger      *slog.Logger
}

// EngineOption is a functional option for configuring the engine.
type EngineOption func(*Engine)

// WithTemperature sets the logit temperature passed to the provider.
func WithTemperature(t float64) EngineOption {
	return func(e *Engine) { e.temperature = t }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l.With("component", "detect.engine") }
}

// NewEngine creates a detection engine over the given store and provider.
func NewEngine(store *Store, provider scoring.Provider, opts ...EngineOption) *Engine {
	e := &Engine{
		store:       store,
		provider:    provider,
		temperature: 1.0,
		logger:      slog.Default().With("component", "detect.engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the engine's scenario store.
func (e *Engine) Store() *Store {
	return e.store
}

// Temperature returns the configured logit temperature.
func (e *Engine) Temperature() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.temperature
}

// SetTemperature updates the logit temperature.
func (e *Engine) SetTemperature(t float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.temperature = t
}

// Detect evaluates one frame at the given timestamp and returns at most one
// detection.
//
// The per-frame sequence: filter enabled scenarios that are out of cooldown
// and have a prompt, score all of their prompts in a single provider call,
// softmax the logits jointly across the batch, update each scenario's
// qualifying-frame streak (a single sub-threshold frame resets it), and pick
// the winner among scenarios whose streak reached their consecutive-frame
// requirement, highest alert level first and confidence as the tie-break.
//
// Softmax is computed over the eligible subset only, so the scenarios
// compete for probability mass. With exactly one eligible scenario the
// softmax degenerates to confidence 1.0; single-scenario deployments should
// account for that when choosing thresholds.
//
// A provider failure or a score/prompt length mismatch fails the frame:
// the error is returned, and no scenario runtime state is touched.
func (e *Engine) Detect(ctx context.Context, frame image.Image, now time.Time) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var eligible []*Scenario
	for _, sc := range e.store.Active() {
		if sc.inCooldown(now) {
			continue
		}
		if sc.def.Prompt == "" {
			continue
		}
		eligible = append(eligible, sc)
	}

	if len(eligible) == 0 {
		return &Result{
			Detected:  false,
			AllScores: map[string]float64{},
			Timestamp: now,
		}, nil
	}

	prompts := make([]string, len(eligible))
	for i, sc := range eligible {
		prompts[i] = sc.def.Prompt
	}

	pred, err := e.provider.Predict(ctx, &scoring.PredictRequest{
		Image:       frame,
		Prompts:     prompts,
		Temperature: e.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("detect: score frame: %w", err)
	}

	// Scores are re-associated to scenarios by index. Bail out before any
	// state mutation if the provider returned a misaligned vector.
	if len(pred.RawScores) != len(prompts) {
		return nil, fmt.Errorf("detect: %w: got %d scores for %d prompts",
			scoring.ErrScoreMismatch, len(pred.RawScores), len(prompts))
	}

	confidences := softmax(pred.RawScores)

	allScores := make(map[string]float64, len(eligible))
	var winner *Scenario
	var winnerConf float64

	for i, sc := range eligible {
		conf := confidences[i]
		allScores[sc.def.ID] = conf
		sc.recordConfidence(conf)

		if conf > sc.def.Threshold {
			sc.consecutiveCount++
		} else {
			// A single miss cancels the streak.
			sc.consecutiveCount = 0
			continue
		}

		if sc.consecutiveCount < sc.def.ConsecutiveFrames {
			continue
		}

		// Candidate. Alert level dominates; confidence breaks ties.
		if winner == nil ||
			sc.def.AlertLevel > winner.def.AlertLevel ||
			(sc.def.AlertLevel == winner.def.AlertLevel && conf > winnerConf) {
			winner = sc
			winnerConf = conf
		}
	}

	if winner == nil {
		return &Result{
			Detected:  false,
			AllScores: allScores,
			Timestamp: now,
		}, nil
	}

	// Consume the streak so the very next frame cannot re-trigger; the
	// cooldown governs the next eligible time.
	winner.lastTrigger = now
	winner.consecutiveCount = 0

	e.logger.Info("scenario detected",
		"scenario", winner.def.ID,
		"confidence", winnerConf,
		"alert_level", winner.def.AlertLevel.String(),
	)

	return &Result{
		Detected:     true,
		ScenarioID:   winner.def.ID,
		ScenarioName: winner.def.Name,
		Confidence:   winnerConf,
		AlertLevel:   winner.def.AlertLevel,
		AllScores:    allScores,
		Timestamp:    now,
	}, nil
}

// Reload atomically swaps in a new definition set, preserving runtime state
// for unchanged ids. It is mutually exclusive with Detect.
func (e *Engine) Reload(defs []Definition) (ReloadReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	report, err := e.store.Reload(defs)
	if err != nil {
		return report, err
	}

	e.logger.Info("scenario definitions reloaded",
		"total", e.store.Count(),
		"added", len(report.Added),
		"removed", len(report.Removed),
	)
	return report, nil
}

// softmax converts logits to a probability distribution. Shifting by the
// max keeps the exponentials finite for large logits.
func softmax(logits []float64) []float64 {
	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}

	out := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		out[i] = math.Exp(v - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
