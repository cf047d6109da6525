package capture

import "errors"

var (
	// ErrSourceClosed is returned by Next after the source is closed or the
	// underlying stream ends.
	ErrSourceClosed = errors.New("capture: source closed")

	// ErrEmptyFrame is returned when the device produced an empty frame.
	ErrEmptyFrame = errors.New("capture: empty frame")

	// ErrNoFrames is returned by a Mock that has no frames configured.
	ErrNoFrames = errors.New("capture: no frames configured")
)
