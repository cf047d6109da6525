package sentinel

import "testing"

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing score URL", func(c *Config) { c.ScoreURL = "" }},
		{"missing scenario file", func(c *Config) { c.ScenarioFile = "" }},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"negative frame rate", func(c *Config) { c.FrameRate = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = 0
	if _, err := New(cfg); err == nil {
		t.Error("New should reject an invalid config")
	}
}
