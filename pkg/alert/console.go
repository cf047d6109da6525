package alert

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/sentinelcam/go-sentinel/pkg/detect"
)

// ANSI escape codes for colored console alerts.
const (
	ansiRed    = "\033[91m"
	ansiYellow = "\033[93m"
	ansiBold   = "\033[1m"
	ansiReset  = "\033[0m"
)

// ConsoleNotifier prints alerts to a writer, optionally colored by level.
type ConsoleNotifier struct {
	out      io.Writer
	useColor bool
}

// NewConsoleNotifier creates a colored console notifier on stdout.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{out: os.Stdout, useColor: true}
}

// NewConsoleNotifierWriter creates a console notifier on a custom writer.
func NewConsoleNotifierWriter(w io.Writer, useColor bool) *ConsoleNotifier {
	return &ConsoleNotifier{out: w, useColor: useColor}
}

// Notify prints the alert.
func (c *ConsoleNotifier) Notify(event Event, _ image.Image) error {
	if !c.useColor {
		_, err := fmt.Fprintf(c.out, "ALERT: %s (confidence %.3f, level %s)\n",
			event.ScenarioName, event.Confidence, event.Level)
		return err
	}

	color := ansiReset
	switch event.Level {
	case detect.LevelHigh:
		color = ansiRed
	case detect.LevelMedium:
		color = ansiYellow
	}

	_, err := fmt.Fprintf(c.out,
		"%s%s==================================================%s\n"+
			"%s%sALERT: %s%s\n"+
			"  time:       %s\n"+
			"  confidence: %.3f\n"+
			"  level:      %s\n"+
			"%s%s==================================================%s\n",
		ansiBold, color, ansiReset,
		ansiBold, color, event.ScenarioName, ansiReset,
		event.Time.Format("2006-01-02 15:04:05"),
		event.Confidence,
		event.Level,
		ansiBold, color, ansiReset,
	)
	return err
}

// Verify ConsoleNotifier implements Notifier at compile time.
var _ Notifier = (*ConsoleNotifier)(nil)
