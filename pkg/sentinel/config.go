package sentinel

import (
	"errors"
	"time"

	"github.com/sentinelcam/go-sentinel/internal/config"
)

// Config holds monitor settings, assembled from flags and environment.
type Config struct {
	// Scoring service
	ScoreURL string
	ScoreKey string

	// Scenario definitions
	ScenarioFile  string
	WatchInterval time.Duration

	// Frame source: VideoFile when set, otherwise the webcam CameraID
	CameraID  int
	VideoFile string
	FrameRate float64

	// Dashboard
	DashboardPort string

	// Alerts
	FrameDir  string
	SaveAlert bool

	Debug bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		ScoreURL:      "http://localhost:8000/v1",
		ScenarioFile:  config.DefaultScenarioFile,
		WatchInterval: 5 * time.Second,
		CameraID:      config.DefaultCameraID,
		FrameRate:     config.DefaultFrameRate,
		DashboardPort: config.DefaultDashboardPort,
		FrameDir:      "alerts",
		SaveAlert:     true,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.ScoreURL == "" {
		return errors.New("sentinel: score service URL is required")
	}
	if c.ScenarioFile == "" {
		return errors.New("sentinel: scenario file is required")
	}
	if c.FrameRate <= 0 {
		return errors.New("sentinel: frame rate must be positive")
	}
	return nil
}
