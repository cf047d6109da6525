package detect

import (
	"encoding/json"
	"fmt"
	"os"
)

// File is the on-disk scenario configuration format.
type File struct {
	// Temperature is the optional logit temperature for the engine.
	// Zero means "keep the current value".
	Temperature float64 `json:"temperature,omitempty"`

	// Scenarios is the full definition set.
	Scenarios []Definition `json:"scenarios"`
}

// LoadFile reads and validates a scenario configuration file.
// The file must parse and every definition must pass validation; a broken
// file never yields a partial set.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect: read scenario file: %w", err)
	}

	return ParseDefinitions(data)
}

// ParseDefinitions parses and validates scenario configuration JSON.
func ParseDefinitions(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("detect: parse scenario file: %w", err)
	}

	if err := ValidateDefinitions(f.Scenarios); err != nil {
		return nil, err
	}
	return &f, nil
}

// SaveFile writes the configuration back to disk. Reloading from the saved
// file reproduces identical static configuration.
func SaveFile(path string, f *File) error {
	if err := ValidateDefinitions(f.Scenarios); err != nil {
		return err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("detect: marshal scenario file: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("detect: write scenario file: %w", err)
	}
	return nil
}
