package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/sentinelcam/go-sentinel/pkg/detect"
	"github.com/sentinelcam/go-sentinel/pkg/hub"
)


// statusPayload is the detector snapshot served over REST and websocket.
type statusPayload struct {
	detect.Info
	AlertClients  int `json:"alert_clients"`
	StatusClients int `json:"status_clients"`
}

func (s *Server) statusSnapshot() statusPayload {
	return statusPayload{
		Info:          s.engine.Info(),
		AlertClients:  s.alertHub.ClientCount(),
		StatusClients: s.statusHub.ClientCount(),
	}
}

// handleScenarios returns per-scenario statistics.
func (s *Server) handleScenarios(c *fiber.Ctx) error {
	return c.JSON(s.engine.AllStats())
}

// handleScenario returns statistics for one scenario.
func (s *Server) handleScenario(c *fiber.Ctx) error {
	stats, err := s.engine.ScenarioStats(c.Params("id"))
	if err != nil {
		if errors.Is(err, detect.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown scenario"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// setEnabledRequest is the body for toggling a scenario.
type setEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// handleSetEnabled toggles a scenario on or off.
func (s *Server) handleSetEnabled(c *fiber.Ctx) error {
	var req setEnabledRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	id := c.Params("id")
	if err := s.engine.Store().SetEnabled(id, req.Enabled); err != nil {
		if errors.Is(err, detect.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown scenario"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.PublishStatus()
	return c.JSON(fiber.Map{"id": id, "enabled": req.Enabled})
}

// handleDetector returns the detector status snapshot.
func (s *Server) handleDetector(c *fiber.Ctx) error {
	return c.JSON(s.statusSnapshot())
}

// handleAlerts returns alert history and statistics.
func (s *Server) handleAlerts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"alerts":     s.alerts.History(),
		"statistics": s.alerts.Statistics(),
	})
}

// handleReload re-reads the scenario file and reports the diff.
func (s *Server) handleReload(c *fiber.Ctx) error {
	if s.reloader == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": "reload not configured"})
	}

	report, err := s.reloader.Reload()
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	s.PublishStatus()
	s.statusHub.BroadcastEnvelope(hub.TypeReload, report)
	return c.JSON(report)
}

// handleAlertsWS attaches a websocket client to the alert feed.
func (s *Server) handleAlertsWS(c *websocket.Conn) {
	client := hub.NewClient(s.alertHub, c)
	client.Run()
}

// handleStatusWS attaches a websocket client to the status feed, sending a
// snapshot first.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	if env, err := hub.NewEnvelope(hub.TypeStatus, s.statusSnapshot()); err == nil {
		c.WriteJSON(env)
	}
	client := hub.NewClient(s.statusHub, c)
	client.Run()
}
