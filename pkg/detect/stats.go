package detect

import "math"

// ScenarioStats summarizes a scenario's recent confidence history for
// operational tooling.
type ScenarioStats struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Enabled     bool    `json:"enabled"`
	Threshold   float64 `json:"threshold"`
	AlertLevel  string  `json:"alert_level"`
	HistorySize int     `json:"history_size"`
	Mean        float64 `json:"mean_confidence"`
	Min         float64 `json:"min_confidence"`
	Max         float64 `json:"max_confidence"`
	StdDev      float64 `json:"std_confidence"`
	Streak      int     `json:"consecutive_count"`
}

// Info describes the engine's overall configuration.
type Info struct {
	TotalScenarios   int     `json:"total_scenarios"`
	EnabledScenarios int     `json:"enabled_scenarios"`
	Temperature      float64 `json:"temperature"`
}

// ScenarioStats returns the history summary for one scenario.
func (e *Engine) ScenarioStats(id string) (ScenarioStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sc, err := e.store.Get(id)
	if err != nil {
		return ScenarioStats{}, err
	}
	return statsFor(sc), nil
}

// AllStats returns history summaries for every registered scenario, sorted
// by id.
func (e *Engine) AllStats() []ScenarioStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	defs := e.store.Definitions()
	out := make([]ScenarioStats, 0, len(defs))
	for _, def := range defs {
		sc, err := e.store.Get(def.ID)
		if err != nil {
			continue
		}
		out = append(out, statsFor(sc))
	}
	return out
}

// Info returns the engine's global configuration summary.
func (e *Engine) Info() Info {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Info{
		TotalScenarios:   e.store.Count(),
		EnabledScenarios: e.store.EnabledCount(),
		Temperature:      e.temperature,
	}
}

func statsFor(sc *Scenario) ScenarioStats {
	stats := ScenarioStats{
		ID:         sc.def.ID,
		Name:       sc.def.Name,
		Enabled:    sc.def.Enabled,
		Threshold:  sc.def.Threshold,
		AlertLevel: sc.def.AlertLevel.String(),
		Streak:     sc.consecutiveCount,
	}

	history := sc.history
	stats.HistorySize = len(history)
	if len(history) == 0 {
		return stats
	}

	min, max := history[0], history[0]
	var sum float64
	for _, v := range history {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(history))

	var variance float64
	for _, v := range history {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(history))

	stats.Mean = mean
	stats.Min = min
	stats.Max = max
	stats.StdDev = math.Sqrt(variance)
	return stats
}
