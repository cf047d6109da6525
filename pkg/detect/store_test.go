package detect

import (
	"errors"
	"testing"
	"time"
)

func TestStoreRegisterPreservesRuntimeState(t *testing.T) {
	store := NewStore()
	mustRegister(t, store, testDef("fall", LevelHigh, 0.5, 3, 30))

	sc, _ := store.Get("fall")
	sc.consecutiveCount = 1
	sc.lastTrigger = time.Unix(500, 0)
	sc.recordConfidence(0.7)

	// Re-register with a new threshold: static config replaced, runtime kept
	updated := testDef("fall", LevelHigh, 0.8, 3, 30)
	if err := store.Register(updated); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	sc, _ = store.Get("fall")
	if sc.Definition().Threshold != 0.8 {
		t.Errorf("Threshold: got %v, want 0.8", sc.Definition().Threshold)
	}
	if sc.ConsecutiveCount() != 1 {
		t.Errorf("Streak: got %d, want 1 (preserved)", sc.ConsecutiveCount())
	}
	if !sc.LastTrigger().Equal(time.Unix(500, 0)) {
		t.Errorf("LastTrigger not preserved: %v", sc.LastTrigger())
	}
	if len(sc.History()) != 1 {
		t.Errorf("History not preserved: %v", sc.History())
	}
}

func TestStoreRegisterRejectsInvalid(t *testing.T) {
	store := NewStore()

	cases := []struct {
		name string
		def  Definition
		want error
	}{
		{"missing id", Definition{Prompt: "x", Threshold: 0.5, ConsecutiveFrames: 1}, ErrMissingID},
		{"missing prompt", Definition{ID: "a", Threshold: 0.5, ConsecutiveFrames: 1}, ErrMissingPrompt},
		{"threshold high", testDefWith(func(d *Definition) { d.Threshold = 1.5 }), ErrInvalidThreshold},
		{"threshold low", testDefWith(func(d *Definition) { d.Threshold = -0.1 }), ErrInvalidThreshold},
		{"negative cooldown", testDefWith(func(d *Definition) { d.CooldownSeconds = -1 }), ErrInvalidCooldown},
		{"zero consecutive", testDefWith(func(d *Definition) { d.ConsecutiveFrames = 0 }), ErrInvalidConsecutive},
		{"bad level", testDefWith(func(d *Definition) { d.AlertLevel = AlertLevel(42) }), ErrInvalidAlertLevel},
	}

	for _, tc := range cases {
		if err := store.Register(tc.def); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	if store.Count() != 0 {
		t.Errorf("Invalid definitions must not be stored, count=%d", store.Count())
	}
}

func testDefWith(mutate func(*Definition)) Definition {
	def := testDef("a", LevelLow, 0.5, 1, 10)
	mutate(&def)
	return def
}

func TestStoreReloadDiff(t *testing.T) {
	store := NewStore()
	mustRegister(t, store,
		testDef("fall", LevelHigh, 0.5, 2, 30),
		testDef("fire", LevelHigh, 0.5, 2, 60),
	)

	// Give "fall" some runtime state to preserve
	sc, _ := store.Get("fall")
	sc.consecutiveCount = 1

	report, err := store.Reload([]Definition{
		testDef("fall", LevelHigh, 0.7, 2, 30), // updated threshold
		testDef("smoke", LevelMedium, 0.4, 1, 10),
	})
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if len(report.Added) != 1 || report.Added[0] != "smoke" {
		t.Errorf("Added: got %v, want [smoke]", report.Added)
	}
	if len(report.Removed) != 1 || report.Removed[0] != "fire" {
		t.Errorf("Removed: got %v, want [fire]", report.Removed)
	}

	// Overlapping id keeps its counters, takes the new config
	sc, _ = store.Get("fall")
	if sc.ConsecutiveCount() != 1 {
		t.Errorf("Streak after reload: got %d, want 1", sc.ConsecutiveCount())
	}
	if sc.Definition().Threshold != 0.7 {
		t.Errorf("Threshold after reload: got %v, want 0.7", sc.Definition().Threshold)
	}

	// Removed id is gone entirely
	if _, err := store.Get("fire"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected fire removed, got %v", err)
	}
	for _, sc := range store.Active() {
		if sc.ID() == "fire" {
			t.Error("Active() still returns removed scenario")
		}
	}
}

func TestStoreReloadAtomicOnFailure(t *testing.T) {
	store := NewStore()
	mustRegister(t, store, testDef("fall", LevelHigh, 0.5, 2, 30))

	bad := testDef("fire", LevelHigh, 2.0, 2, 60) // invalid threshold
	_, err := store.Reload([]Definition{testDef("smoke", LevelLow, 0.4, 1, 10), bad})
	if !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("Expected ErrInvalidThreshold, got %v", err)
	}

	// Last-known-good state intact: fall still present, smoke never added
	if _, err := store.Get("fall"); err != nil {
		t.Error("Failed reload must not remove existing scenarios")
	}
	if _, err := store.Get("smoke"); !errors.Is(err, ErrNotFound) {
		t.Error("Failed reload must not add new scenarios")
	}
	if store.Count() != 1 {
		t.Errorf("Count: got %d, want 1", store.Count())
	}
}

func TestStoreReloadRejectsEmptyAndDuplicates(t *testing.T) {
	store := NewStore()

	if _, err := store.Reload(nil); !errors.Is(err, ErrNoDefinitions) {
		t.Errorf("Empty set: got %v, want ErrNoDefinitions", err)
	}

	dup := []Definition{
		testDef("fall", LevelHigh, 0.5, 1, 10),
		testDef("fall", LevelLow, 0.4, 1, 10),
	}
	if _, err := store.Reload(dup); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Duplicate ids: got %v, want ErrDuplicateID", err)
	}
}

func TestStoreActiveSortedAndEnabledOnly(t *testing.T) {
	store := NewStore()
	disabled := testDef("aaa", LevelLow, 0.5, 1, 10)
	disabled.Enabled = false
	mustRegister(t, store,
		testDef("zebra", LevelLow, 0.5, 1, 10),
		testDef("fall", LevelHigh, 0.5, 1, 10),
		disabled,
	)

	active := store.Active()
	if len(active) != 2 {
		t.Fatalf("Active: got %d scenarios, want 2", len(active))
	}
	if active[0].ID() != "fall" || active[1].ID() != "zebra" {
		t.Errorf("Active not sorted by id: %s, %s", active[0].ID(), active[1].ID())
	}
}

func TestStoreDefinitionsRoundTrip(t *testing.T) {
	store := NewStore()
	mustRegister(t, store,
		testDef("fall", LevelHigh, 0.5, 2, 30),
		testDef("fire", LevelMedium, 0.4, 3, 60),
	)

	snapshot := store.Definitions()

	fresh := NewStore()
	if _, err := fresh.Reload(snapshot); err != nil {
		t.Fatalf("Reload from snapshot failed: %v", err)
	}

	restored := fresh.Definitions()
	if len(restored) != len(snapshot) {
		t.Fatalf("Definition count: got %d, want %d", len(restored), len(snapshot))
	}
	for i := range snapshot {
		if restored[i] != snapshot[i] {
			t.Errorf("Definition %d differs: got %+v, want %+v", i, restored[i], snapshot[i])
		}
	}
}

func TestStoreSetEnabledAndReset(t *testing.T) {
	store := NewStore()
	mustRegister(t, store, testDef("fall", LevelHigh, 0.5, 2, 30))

	if err := store.SetEnabled("fall", false); err != nil {
		t.Fatalf("SetEnabled failed: %v", err)
	}
	if len(store.Active()) != 0 {
		t.Error("Disabled scenario still active")
	}
	if store.EnabledCount() != 0 {
		t.Errorf("EnabledCount: got %d, want 0", store.EnabledCount())
	}

	sc, _ := store.Get("fall")
	sc.consecutiveCount = 2
	sc.recordConfidence(0.9)

	if err := store.ResetRuntime("fall"); err != nil {
		t.Fatalf("ResetRuntime failed: %v", err)
	}
	if sc.ConsecutiveCount() != 0 || len(sc.History()) != 0 {
		t.Error("ResetRuntime did not clear state")
	}

	if err := store.Remove("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove missing: got %v, want ErrNotFound", err)
	}
	if err := store.SetEnabled("missing", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetEnabled missing: got %v, want ErrNotFound", err)
	}
}

func TestAlertLevelParsing(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want AlertLevel
	}{
		{"low", LevelLow},
		{"medium", LevelMedium},
		{"high", LevelHigh},
	} {
		got, err := ParseAlertLevel(tc.in)
		if err != nil {
			t.Fatalf("ParseAlertLevel(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseAlertLevel(%q): got %v, want %v", tc.in, got, tc.want)
		}
		if got.String() != tc.in {
			t.Errorf("String round-trip: got %q, want %q", got.String(), tc.in)
		}
	}

	if _, err := ParseAlertLevel("critical"); !errors.Is(err, ErrInvalidAlertLevel) {
		t.Errorf("Unknown level: got %v, want ErrInvalidAlertLevel", err)
	}

	if !(LevelHigh > LevelMedium && LevelMedium > LevelLow) {
		t.Error("Alert levels must order high > medium > low")
	}
}
