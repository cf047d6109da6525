package alert

import (
	"fmt"
	"image"
	"net/smtp"
	"strings"

	"github.com/sentinelcam/go-sentinel/pkg/detect"
)

// EmailConfig holds SMTP settings for email alerts.
type EmailConfig struct {
	Host     string
	Port     int
	From     string
	Password string
	To       []string
	// MinLevel suppresses mail for alerts below this level. The zero value
	// means LevelHigh, matching the intent that only urgent alerts email.
	// Set MailAllLevels to mail every alert instead.
	MinLevel      detect.AlertLevel
	MailAllLevels bool
}

// sendFunc matches smtp.SendMail, overridable in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends an email for each qualifying alert.
type EmailNotifier struct {
	cfg  EmailConfig
	send sendFunc
}

// NewEmailNotifier creates an email notifier.
func NewEmailNotifier(cfg EmailConfig) *EmailNotifier {
	if cfg.MailAllLevels {
		cfg.MinLevel = detect.LevelLow
	} else if cfg.MinLevel == detect.LevelLow {
		cfg.MinLevel = detect.LevelHigh
	}
	return &EmailNotifier{cfg: cfg, send: smtp.SendMail}
}

// Notify sends the alert email. Alerts below MinLevel are skipped.
func (e *EmailNotifier) Notify(event Event, _ image.Image) error {
	if event.Level < e.cfg.MinLevel {
		return nil
	}

	subject := fmt.Sprintf("[%s] %s detected", strings.ToUpper(event.Level.String()), event.ScenarioName)
	body := fmt.Sprintf(
		"Scenario:   %s\r\nConfidence: %.3f\r\nLevel:      %s\r\nTime:       %s\r\n",
		event.ScenarioName,
		event.Confidence,
		event.Level,
		event.Time.Format("2006-01-02 15:04:05"),
	)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		e.cfg.From, strings.Join(e.cfg.To, ", "), subject, body)

	addr := fmt.Sprintf("%s:%d", e.cfg.Host, e.cfg.Port)
	auth := smtp.PlainAuth("", e.cfg.From, e.cfg.Password, e.cfg.Host)
	if err := e.send(addr, auth, e.cfg.From, e.cfg.To, []byte(msg)); err != nil {
		return fmt.Errorf("alert: send email: %w", err)
	}
	return nil
}

// Verify EmailNotifier implements Notifier at compile time.
var _ Notifier = (*EmailNotifier)(nil)
