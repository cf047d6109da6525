// Package config provides configuration helpers for go-sentinel commands.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for the monitor pipeline.
const (
	DefaultDashboardPort = "8090"
	DefaultScenarioFile  = "config/scenarios.json"
	DefaultCameraID      = 0
	DefaultFrameRate     = 2.0
)

// ScoreAPIURL returns the scoring service URL from SCORE_API_URL.
// Falls back to the provided default if not set.
func ScoreAPIURL(defaultURL string) string {
	if url := os.Getenv("SCORE_API_URL"); url != "" {
		return url
	}
	return defaultURL
}

// ScoreAPIKey returns the scoring service API key from SCORE_API_KEY.
// Empty is allowed for local services.
func ScoreAPIKey() string {
	return os.Getenv("SCORE_API_KEY")
}

// ScoreAPIURLRequired returns the scoring service URL from SCORE_API_URL.
// Exits if not set.
func ScoreAPIURLRequired() string {
	url := os.Getenv("SCORE_API_URL")
	if url == "" {
		fmt.Fprintln(os.Stderr, "Error: SCORE_API_URL environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: SCORE_API_URL=http://localhost:8000/v1 go run ./cmd/...")
		os.Exit(1)
	}
	return url
}

// DashboardPort returns the dashboard port from DASHBOARD_PORT or default.
func DashboardPort() string {
	if port := os.Getenv("DASHBOARD_PORT"); port != "" {
		return port
	}
	return DefaultDashboardPort
}

// ScenarioFile returns the scenario definition file from SCENARIO_FILE or default.
func ScenarioFile() string {
	if path := os.Getenv("SCENARIO_FILE"); path != "" {
		return path
	}
	return DefaultScenarioFile
}

// CameraID returns the capture device index from CAMERA_ID or default.
func CameraID() int {
	if v := os.Getenv("CAMERA_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			return id
		}
	}
	return DefaultCameraID
}

// VideoSource returns the video file path from VIDEO_SOURCE, or empty
// if the webcam should be used instead.
func VideoSource() string {
	return os.Getenv("VIDEO_SOURCE")
}

// FrameRate returns the detection frame rate from FRAME_RATE or default.
func FrameRate() float64 {
	if v := os.Getenv("FRAME_RATE"); v != "" {
		if fps, err := strconv.ParseFloat(v, 64); err == nil && fps > 0 {
			return fps
		}
	}
	return DefaultFrameRate
}
