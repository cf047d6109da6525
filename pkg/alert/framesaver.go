package alert

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/sentinelcam/go-sentinel/pkg/detect"
)

// FrameSaver writes the triggering frame to disk as an annotated JPEG,
// named <scenario>_<timestamp>.jpg under the configured directory.
type FrameSaver struct {
	dir      string
	annotate bool
}

// NewFrameSaver creates a frame saver, creating the output directory if
// needed.
func NewFrameSaver(dir string, annotate bool) (*FrameSaver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("alert: create frame dir: %w", err)
	}
	return &FrameSaver{dir: dir, annotate: annotate}, nil
}

// Notify saves the frame. A nil frame is silently skipped.
func (f *FrameSaver) Notify(event Event, frame image.Image) error {
	if frame == nil {
		return nil
	}

	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return fmt.Errorf("alert: convert frame: %w", err)
	}
	defer mat.Close()

	if f.annotate {
		annotateMat(&mat, event)
	}

	// gocv writes BGR
	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(mat, &bgr, gocv.ColorRGBToBGR)

	filename := fmt.Sprintf("%s_%s.jpg", event.ScenarioID, event.Time.Format("20060102_150405"))
	path := filepath.Join(f.dir, filename)
	if ok := gocv.IMWrite(path, bgr); !ok {
		return fmt.Errorf("alert: write frame %s", path)
	}
	return nil
}

// annotateMat draws the alert label and a border, colored by level.
func annotateMat(mat *gocv.Mat, event Event) {
	c := levelColor(event.Level)

	label := fmt.Sprintf("%s - %.1f%%", event.ScenarioName, event.Confidence*100)
	origin := image.Pt(50, 60)
	gocv.PutText(mat, label, origin, gocv.FontHersheySimplex, 1.2, c, 3)

	border := image.Rect(10, 10, mat.Cols()-10, mat.Rows()-10)
	gocv.Rectangle(mat, border, c, 5)
}

func levelColor(level detect.AlertLevel) color.RGBA {
	switch level {
	case detect.LevelHigh:
		return color.RGBA{R: 255, A: 255}
	case detect.LevelMedium:
		return color.RGBA{R: 255, G: 165, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, A: 255}
	}
}

// Verify FrameSaver implements Notifier at compile time.
var _ Notifier = (*FrameSaver)(nil)
