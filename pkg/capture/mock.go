package capture

import (
	"context"
	"image"
	"sync"
)

// Mock is a Source backed by a fixed frame list, for tests.
type Mock struct {
	mu     sync.Mutex
	frames []image.Image
	next   int
	loop   bool
	closed bool
}

// NewMock creates a mock source that yields the given frames in order and
// then reports ErrSourceClosed.
func NewMock(frames ...image.Image) *Mock {
	return &Mock{frames: frames}
}

// NewMockLoop creates a mock source that cycles over the frames forever.
func NewMockLoop(frames ...image.Image) *Mock {
	return &Mock{frames: frames, loop: true}
}

// Next returns the next configured frame.
func (m *Mock) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrSourceClosed
	}
	if len(m.frames) == 0 {
		return nil, ErrNoFrames
	}
	if m.next >= len(m.frames) {
		if !m.loop {
			return nil, ErrSourceClosed
		}
		m.next = 0
	}
	frame := m.frames[m.next]
	m.next++
	return frame, nil
}

// Close marks the source closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ Source = (*Mock)(nil)
