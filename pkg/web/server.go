// Package web serves the detection dashboard: REST endpoints over scenario
// state and alert history, plus websocket feeds for live alerts and status.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/sentinelcam/go-sentinel/internal/log"
	"github.com/sentinelcam/go-sentinel/pkg/alert"
	"github.com/sentinelcam/go-sentinel/pkg/detect"
	"github.com/sentinelcam/go-sentinel/pkg/hub"
)

// Reloader re-applies the scenario file on demand.
type Reloader interface {
	Reload() (detect.ReloadReport, error)
}

// Server is the dashboard HTTP and websocket server.
type Server struct {
	app  *fiber.App
	port string

	engine   *detect.Engine
	alerts   *alert.Manager
	reloader Reloader

	alertHub  *hub.Hub
	statusHub *hub.Hub
}

// NewServer wires the dashboard around an engine and alert manager. The
// reloader may be nil, disabling POST /api/reload.
func NewServer(port string, engine *detect.Engine, alerts *alert.Manager, reloader Reloader) *Server {
	s := &Server{
		port:      port,
		engine:    engine,
		alerts:    alerts,
		reloader:  reloader,
		alertHub:  hub.New("alerts"),
		statusHub: hub.New("status"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Sentinel Dashboard",
		DisableStartupMessage: true,
	})

	app.Use(cors.New())
	app.Static("/", "./web")

	api := app.Group("/api")
	api.Get("/scenarios", s.handleScenarios)
	api.Get("/scenarios/:id", s.handleScenario)
	api.Post("/scenarios/:id/enabled", s.handleSetEnabled)
	api.Get("/detector", s.handleDetector)
	api.Get("/alerts", s.handleAlerts)
	api.Post("/reload", s.handleReload)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/alerts", websocket.New(s.handleAlertsWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start runs the hubs and blocks serving HTTP.
func (s *Server) Start() error {
	log.Info("dashboard listening", "addr", "http://localhost:"+s.port)
	go s.alertHub.Run()
	go s.statusHub.Run()
	return s.app.Listen(":" + s.port)
}

// StartAsync runs the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server failed", "error", err)
		}
	}()
}

// PublishAlert pushes an alert event to websocket subscribers.
func (s *Server) PublishAlert(event alert.Event) {
	if err := s.alertHub.BroadcastEnvelope(hub.TypeAlert, event); err != nil {
		log.Warn("alert broadcast failed", "error", err)
	}
}

// PublishStatus pushes a detector status snapshot to websocket subscribers.
func (s *Server) PublishStatus() {
	if err := s.statusHub.BroadcastEnvelope(hub.TypeStatus, s.statusSnapshot()); err != nil {
		log.Warn("status broadcast failed", "error", err)
	}
}

// Shutdown stops the server and disconnects websocket clients.
func (s *Server) Shutdown() error {
	s.alertHub.Stop()
	s.statusHub.Stop()
	return s.app.Shutdown()
}
