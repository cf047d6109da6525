package detect

import (
	"log/slog"
	"os"
	"time"
)

// Reloader re-reads a scenario configuration file and applies it to an
// engine. A reload that fails validation leaves the engine on its
// last-known-good definition set.
type Reloader struct {
	engine *Engine
	path   string
	logger *slog.Logger

	lastMod time.Time
}

// NewReloader creates a reloader for the given engine and file path.
func NewReloader(engine *Engine, path string) *Reloader {
	r := &Reloader{
		engine: engine,
		path:   path,
		logger: slog.Default().With("component", "detect.reloader"),
	}
	if info, err := os.Stat(path); err == nil {
		r.lastMod = info.ModTime()
	}
	return r
}

// Reload unconditionally re-reads the file and applies it.
func (r *Reloader) Reload() (ReloadReport, error) {
	f, err := LoadFile(r.path)
	if err != nil {
		r.logger.Warn("reload rejected, keeping current definitions", "error", err)
		return ReloadReport{}, err
	}

	report, err := r.engine.Reload(f.Scenarios)
	if err != nil {
		return report, err
	}

	if f.Temperature > 0 {
		r.engine.SetTemperature(f.Temperature)
	}

	if info, err := os.Stat(r.path); err == nil {
		r.lastMod = info.ModTime()
	}
	return report, nil
}

// CheckAndReload reloads only if the file changed since the last load.
// The bool reports whether a reload was attempted.
func (r *Reloader) CheckAndReload() (ReloadReport, bool, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		return ReloadReport{}, false, err
	}
	if !info.ModTime().After(r.lastMod) {
		return ReloadReport{}, false, nil
	}

	report, err := r.Reload()
	return report, true, err
}

// Watch polls the file at the given interval until stop is closed, applying
// changes as they appear. Intended to run in its own goroutine.
func (r *Reloader) Watch(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			report, changed, err := r.CheckAndReload()
			if err != nil {
				r.logger.Warn("scenario file check failed", "error", err)
				continue
			}
			if changed {
				r.logger.Info("scenario file changed",
					"added", report.Added,
					"removed", report.Removed,
				)
			}
		}
	}
}
