// Sentinel watches a video source and raises alerts when configured
// scenarios are detected in the frame stream.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/sentinelcam/go-sentinel/internal/config"
	"github.com/sentinelcam/go-sentinel/pkg/sentinel"
)

func main() {
	cfg := parseFlags()

	app, err := sentinel.New(cfg)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := app.Init(); err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer app.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Runtime error: %v", err)
	}
}

// parseFlags merges flags over environment variables and defaults.
func parseFlags() sentinel.Config {
	cfg := sentinel.DefaultConfig()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	scoreURL := flag.String("score-url", "", "Scoring service URL (overrides SCORE_API_URL)")
	scenarios := flag.String("scenarios", "", "Scenario definition file (overrides SCENARIO_FILE)")
	video := flag.String("video", "", "Video file to analyze instead of the webcam (overrides VIDEO_SOURCE)")
	camera := flag.Int("camera", -1, "Webcam device id (overrides CAMERA_ID)")
	fps := flag.Float64("fps", 0, "Detection frames per second (overrides FRAME_RATE)")
	port := flag.String("port", "", "Dashboard port (overrides DASHBOARD_PORT)")
	frameDir := flag.String("frame-dir", cfg.FrameDir, "Directory for saved alert frames")
	noFrames := flag.Bool("no-frames", false, "Disable saving alert frames")
	flag.Parse()

	cfg.ScoreURL = config.ScoreAPIURL(cfg.ScoreURL)
	cfg.ScoreKey = config.ScoreAPIKey()
	cfg.ScenarioFile = config.ScenarioFile()
	cfg.VideoFile = config.VideoSource()
	cfg.CameraID = config.CameraID()
	cfg.FrameRate = config.FrameRate()
	cfg.DashboardPort = config.DashboardPort()

	cfg.Debug = *debug
	cfg.FrameDir = *frameDir
	cfg.SaveAlert = !*noFrames
	if *scoreURL != "" {
		cfg.ScoreURL = *scoreURL
	}
	if *scenarios != "" {
		cfg.ScenarioFile = *scenarios
	}
	if *video != "" {
		cfg.VideoFile = *video
	}
	if *camera >= 0 {
		cfg.CameraID = *camera
	}
	if *fps > 0 {
		cfg.FrameRate = *fps
	}
	if *port != "" {
		cfg.DashboardPort = *port
	}

	return cfg
}
