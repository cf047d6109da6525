// Package capture provides frame sources for the detection loop.
//
// A Source yields frames one at a time. The gocv-backed VideoSource reads
// from a webcam or a video file; the Mock source feeds canned frames in
// tests. The detection loop paces itself, so Next returns the most recent
// frame available rather than throttling internally.
package capture

import (
	"context"
	"image"
)

// Source yields frames for detection.
type Source interface {
	// Next returns the next frame. It returns ErrSourceClosed once the
	// source is exhausted or closed.
	Next(ctx context.Context) (image.Image, error)

	// Close releases the underlying device or file.
	Close() error
}
