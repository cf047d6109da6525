package detect

import (
	"fmt"
	"sort"
	"sync"
)

// Store owns the mapping from scenario id to Scenario. All registration,
// removal and hot reload goes through the store so that every state
// transition passes one validated path.
//
// The store is safe for concurrent use on its own; engines layer their own
// serialization on top so Detect and Reload never interleave.
type Store struct {
	mu        sync.RWMutex
	scenarios map[string]*Scenario
}

// NewStore creates an empty scenario store.
func NewStore() *Store {
	return &Store{
		scenarios: make(map[string]*Scenario),
	}
}

// Register inserts or replaces the static config for def.ID. When the id
// already exists its runtime state (trigger time, streak, history) is
// preserved and only the static fields are overwritten.
func (s *Store) Register(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.register(def)
	return nil
}

// register assumes def is valid and the lock is held.
func (s *Store) register(def Definition) {
	if existing, ok := s.scenarios[def.ID]; ok {
		existing.def = def
		return
	}
	s.scenarios[def.ID] = newScenario(def)
}

// Remove deletes the scenario and its runtime state irreversibly.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scenarios[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.scenarios, id)
	return nil
}

// Get retrieves a scenario by id.
func (s *Store) Get(id string) (*Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scenarios[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sc, nil
}

// ReloadReport lists the ids a reload added and removed, for observability
// and external cache invalidation.
type ReloadReport struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

// Reload atomically replaces the definition set. Ids present in defs are
// registered (preserving runtime state for overlaps), ids absent from defs
// are removed. If validation fails the store is left untouched.
func (s *Store) Reload(defs []Definition) (ReloadReport, error) {
	if err := ValidateDefinitions(defs); err != nil {
		return ReloadReport{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	incoming := make(map[string]bool, len(defs))
	var report ReloadReport

	for _, def := range defs {
		incoming[def.ID] = true
		if _, ok := s.scenarios[def.ID]; !ok {
			report.Added = append(report.Added, def.ID)
		}
		s.register(def)
	}

	for id := range s.scenarios {
		if !incoming[id] {
			report.Removed = append(report.Removed, id)
			delete(s.scenarios, id)
		}
	}

	sort.Strings(report.Added)
	sort.Strings(report.Removed)
	return report, nil
}

// ValidateDefinitions checks a whole definition set: non-empty, every
// definition valid, no duplicate ids.
func ValidateDefinitions(defs []Definition) error {
	if len(defs) == 0 {
		return ErrNoDefinitions
	}

	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return err
		}
		if seen[def.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, def.ID)
		}
		seen[def.ID] = true
	}
	return nil
}

// Active returns all enabled scenarios sorted by id. The stable order keeps
// prompt batches deterministic across frames.
func (s *Store) Active() []*Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []*Scenario
	for _, sc := range s.scenarios {
		if sc.def.Enabled {
			active = append(active, sc)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].def.ID < active[j].def.ID
	})
	return active
}

// Definitions returns the static configuration of every scenario sorted by
// id. Reloading from this snapshot reproduces the same configuration.
func (s *Store) Definitions() []Definition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defs := make([]Definition, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		defs = append(defs, sc.def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
	return defs
}

// Count returns the number of registered scenarios.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scenarios)
}

// EnabledCount returns the number of enabled scenarios.
func (s *Store) EnabledCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, sc := range s.scenarios {
		if sc.def.Enabled {
			count++
		}
	}
	return count
}

// SetEnabled toggles a scenario without touching its other fields.
func (s *Store) SetEnabled(id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scenarios[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	sc.def.Enabled = enabled
	return nil
}

// ResetRuntime clears the runtime state of a scenario.
func (s *Store) ResetRuntime(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scenarios[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	sc.reset()
	return nil
}
