// Package sentinel wires the detection pipeline together: frame source,
// scoring client, decision engine, alert dispatch, and dashboard.
package sentinel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sentinelcam/go-sentinel/internal/log"
	"github.com/sentinelcam/go-sentinel/pkg/alert"
	"github.com/sentinelcam/go-sentinel/pkg/capture"
	"github.com/sentinelcam/go-sentinel/pkg/detect"
	"github.com/sentinelcam/go-sentinel/pkg/scoring"
	"github.com/sentinelcam/go-sentinel/pkg/web"
)

// statusInterval paces dashboard status broadcasts.
const statusInterval = 5 * time.Second

// App is the assembled monitor.
type App struct {
	cfg Config

	store    *detect.Store
	engine   *detect.Engine
	provider scoring.Provider
	alerts   *alert.Manager
	reloader *detect.Reloader
	source   capture.Source
	server   *web.Server
}

// New validates the configuration and returns an unstarted app.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &App{cfg: cfg}, nil
}

// Init builds the pipeline: scenarios, scoring client, engine, alert
// notifiers, capture source, and dashboard.
func (a *App) Init() error {
	level := "info"
	if a.cfg.Debug {
		level = "debug"
	}
	log.Init(level)

	a.store = detect.NewStore()

	provider, err := scoring.NewClient(
		scoring.WithBaseURL(a.cfg.ScoreURL),
		scoring.WithAPIKey(a.cfg.ScoreKey),
	)
	if err != nil {
		return fmt.Errorf("sentinel: scoring client: %w", err)
	}
	a.provider = provider

	a.engine = detect.NewEngine(a.store, a.provider)

	a.reloader = detect.NewReloader(a.engine, a.cfg.ScenarioFile)
	if _, err := a.reloader.Reload(); err != nil {
		return fmt.Errorf("sentinel: load scenarios: %w", err)
	}

	a.alerts = alert.NewManager(alert.NewConsoleNotifier())
	if a.cfg.SaveAlert {
		saver, err := alert.NewFrameSaver(a.cfg.FrameDir, true)
		if err != nil {
			return err
		}
		a.alerts.AddNotifier(saver)
	}

	source, err := a.openSource()
	if err != nil {
		return err
	}
	a.source = source

	a.server = web.NewServer(a.cfg.DashboardPort, a.engine, a.alerts, a.reloader)

	info := a.engine.Info()
	log.Info("monitor initialized",
		"scenarios", info.TotalScenarios,
		"enabled", info.EnabledScenarios,
		"score_url", a.cfg.ScoreURL,
		"fps", a.cfg.FrameRate,
	)
	return nil
}

func (a *App) openSource() (capture.Source, error) {
	if a.cfg.VideoFile != "" {
		return capture.OpenFile(a.cfg.VideoFile)
	}
	return capture.OpenDevice(a.cfg.CameraID)
}

// AddNotifier attaches an extra alert output before Run.
func (a *App) AddNotifier(n alert.Notifier) {
	a.alerts.AddNotifier(n)
}

// Run drives the detection loop until the context is cancelled or the
// frame source ends. SIGHUP reloads the scenario file.
func (a *App) Run(ctx context.Context) error {
	a.server.StartAsync()

	stop := make(chan struct{})
	defer close(stop)
	go a.reloader.Watch(a.cfg.WatchInterval, stop)
	go a.handleSighup(ctx)

	frameTicker := time.NewTicker(time.Duration(float64(time.Second) / a.cfg.FrameRate))
	defer frameTicker.Stop()
	statusTicker := time.NewTicker(statusInterval)
	defer statusTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-statusTicker.C:
			a.server.PublishStatus()

		case <-frameTicker.C:
			if err := a.step(ctx); err != nil {
				if errors.Is(err, capture.ErrSourceClosed) {
					log.Info("frame source ended")
					return nil
				}
				log.Warn("detection step failed", "error", err)
			}
		}
	}
}

// step processes one frame through the pipeline.
func (a *App) step(ctx context.Context) error {
	frame, err := a.source.Next(ctx)
	if err != nil {
		return err
	}

	result, err := a.engine.Detect(ctx, frame, time.Now())
	if err != nil {
		return err
	}

	if event := a.alerts.Dispatch(result, frame); event != nil {
		a.server.PublishAlert(*event)
	}
	return nil
}

// handleSighup reloads scenario definitions on SIGHUP.
func (a *App) handleSighup(ctx context.Context) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ch:
			report, err := a.reloader.Reload()
			if err != nil {
				log.Warn("SIGHUP reload failed", "error", err)
				continue
			}
			log.Info("SIGHUP reload applied", "added", report.Added, "removed", report.Removed)
			a.server.PublishStatus()
		}
	}
}

// Shutdown releases the frame source and stops the dashboard.
func (a *App) Shutdown() {
	if a.source != nil {
		if err := a.source.Close(); err != nil {
			log.Warn("closing frame source failed", "error", err)
		}
	}
	if a.provider != nil {
		a.provider.Close()
	}
	if a.server != nil {
		if err := a.server.Shutdown(); err != nil {
			log.Warn("dashboard shutdown failed", "error", err)
		}
	}
}
