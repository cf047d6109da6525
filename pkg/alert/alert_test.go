package alert

import (
	"bytes"
	"errors"
	"image"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sentinelcam/go-sentinel/pkg/detect"
)

// recordingNotifier captures dispatched events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recordingNotifier) Notify(event Event, _ image.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingNotifier) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func testResult(id, name string, level detect.AlertLevel) *detect.Result {
	return &detect.Result{
		Detected:     true,
		ScenarioID:   id,
		ScenarioName: name,
		Confidence:   0.72,
		AlertLevel:   level,
		Timestamp:    time.Now(),
	}
}

func TestManagerDispatch(t *testing.T) {
	rec := &recordingNotifier{}
	mgr := NewManager(rec)

	event := mgr.Dispatch(testResult("fall", "Fall detection", detect.LevelHigh), nil)
	if event == nil {
		t.Fatal("Dispatch returned nil for a detection")
	}
	if event.ID == "" {
		t.Error("Event should carry an id")
	}

	events := rec.Events()
	if len(events) != 1 {
		t.Fatalf("Notifier calls: got %d, want 1", len(events))
	}
	if events[0].ScenarioID != "fall" || events[0].Level != detect.LevelHigh {
		t.Errorf("Unexpected event: %+v", events[0])
	}
}

func TestManagerFiltersNonDetections(t *testing.T) {
	rec := &recordingNotifier{}
	mgr := NewManager(rec)

	if mgr.Dispatch(nil, nil) != nil {
		t.Error("Nil result should not dispatch")
	}
	if mgr.Dispatch(&detect.Result{Detected: false}, nil) != nil {
		t.Error("Non-detection should not dispatch")
	}
	if len(rec.Events()) != 0 {
		t.Errorf("Notifier called %d times for filtered results", len(rec.Events()))
	}
}

func TestManagerFiltersNormalScenarios(t *testing.T) {
	rec := &recordingNotifier{}
	mgr := NewManager(rec)

	for _, name := range []string{"normal", "Normal", " ORDINARY ", "background"} {
		if mgr.Dispatch(testResult("n", name, detect.LevelLow), nil) != nil {
			t.Errorf("Scenario %q should be filtered", name)
		}
	}
	if len(rec.Events()) != 0 {
		t.Error("Normal scenarios must not reach notifiers")
	}

	stats := mgr.Statistics()
	if stats.TotalAlerts != 0 {
		t.Errorf("Filtered alerts must not enter history: %+v", stats)
	}
}

func TestManagerNotifierErrorDoesNotBlockOthers(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("smtp down")}
	rec := &recordingNotifier{}
	mgr := NewManager(failing, rec)

	if mgr.Dispatch(testResult("fire", "Fire detection", detect.LevelHigh), nil) == nil {
		t.Fatal("Dispatch returned nil")
	}
	if len(rec.Events()) != 1 {
		t.Error("Second notifier should still run after first fails")
	}
}

func TestManagerStatistics(t *testing.T) {
	mgr := NewManager()

	mgr.Dispatch(testResult("fall", "Fall detection", detect.LevelHigh), nil)
	mgr.Dispatch(testResult("fall", "Fall detection", detect.LevelHigh), nil)
	mgr.Dispatch(testResult("fire", "Fire detection", detect.LevelHigh), nil)

	stats := mgr.Statistics()
	if stats.TotalAlerts != 3 {
		t.Errorf("TotalAlerts: got %d, want 3", stats.TotalAlerts)
	}
	if stats.ByScenario["Fall detection"] != 2 || stats.ByScenario["Fire detection"] != 1 {
		t.Errorf("ByScenario: got %v", stats.ByScenario)
	}
	if stats.FirstAlert.After(stats.LastAlert) {
		t.Error("FirstAlert should not be after LastAlert")
	}

	history := mgr.History()
	if len(history) != 3 {
		t.Errorf("History: got %d, want 3", len(history))
	}
}

func TestManagerHistoryBounded(t *testing.T) {
	mgr := NewManager()
	for i := 0; i < historyLimit+25; i++ {
		mgr.Dispatch(testResult("fall", "Fall detection", detect.LevelHigh), nil)
	}
	if got := len(mgr.History()); got != historyLimit {
		t.Errorf("History length: got %d, want %d", got, historyLimit)
	}
}

func TestConsoleNotifierPlain(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewConsoleNotifierWriter(&buf, false)

	event := Event{
		ScenarioName: "Fall detection",
		Confidence:   0.81,
		Level:        detect.LevelHigh,
		Time:         time.Now(),
	}
	if err := notifier.Notify(event, nil); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Fall detection") || !strings.Contains(out, "0.810") {
		t.Errorf("Unexpected console output: %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Error("Plain mode must not emit ANSI codes")
	}
}

func TestConsoleNotifierColored(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewConsoleNotifierWriter(&buf, true)

	event := Event{ScenarioName: "Fire detection", Level: detect.LevelHigh, Time: time.Now()}
	if err := notifier.Notify(event, nil); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if !strings.Contains(buf.String(), ansiRed) {
		t.Error("High-level alert should be colored red")
	}
}

func TestEmailNotifierSkipsBelowMinLevel(t *testing.T) {
	var sent [][]byte
	notifier := NewEmailNotifier(EmailConfig{
		Host: "smtp.example.com", Port: 587,
		From: "alerts@example.com", To: []string{"ops@example.com"},
	})
	notifier.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		sent = append(sent, msg)
		return nil
	}

	low := Event{ScenarioName: "Loitering", Level: detect.LevelLow, Time: time.Now()}
	if err := notifier.Notify(low, nil); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if len(sent) != 0 {
		t.Error("Low-level alert should not send mail")
	}

	high := Event{ScenarioName: "Fall detection", Confidence: 0.9, Level: detect.LevelHigh, Time: time.Now()}
	if err := notifier.Notify(high, nil); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("Mail sends: got %d, want 1", len(sent))
	}
	if !strings.Contains(string(sent[0]), "Subject: [HIGH] Fall detection detected") {
		t.Errorf("Unexpected message: %q", sent[0])
	}
}
