package scoring

import (
	"context"
	"sync"
	"time"
)

// Mock implements Provider for testing.
type Mock struct {
	// PredictFunc is called when Predict is invoked.
	PredictFunc func(ctx context.Context, req *PredictRequest) (*Prediction, error)

	// HealthFunc is called when Health is invoked.
	HealthFunc func(ctx context.Context) error

	// CloseFunc is called when Close is invoked.
	CloseFunc func() error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation.
type MockCall struct {
	Method  string
	Prompts []string
	Time    time.Time
}

// NewMock creates a new mock provider with sensible defaults.
// The default predict returns zero logits for every prompt.
func NewMock() *Mock {
	return &Mock{
		PredictFunc: func(ctx context.Context, req *PredictRequest) (*Prediction, error) {
			scores := make([]float64, len(req.Prompts))
			probs := make([]float64, len(req.Prompts))
			for i := range probs {
				probs[i] = 1.0 / float64(len(req.Prompts))
			}
			return &Prediction{RawScores: scores, Probs: probs, Model: "mock"}, nil
		},
		HealthFunc: func(ctx context.Context) error {
			return nil
		},
	}
}

// NewMockScores creates a mock that returns fixed logits regardless of
// prompt count. Useful for scripted frame sequences in tests.
func NewMockScores(scoresPerCall ...[]float64) *Mock {
	call := 0
	return &Mock{
		PredictFunc: func(ctx context.Context, req *PredictRequest) (*Prediction, error) {
			scores := scoresPerCall[call%len(scoresPerCall)]
			call++
			return &Prediction{RawScores: scores, Model: "mock"}, nil
		},
		HealthFunc: func(ctx context.Context) error { return nil },
	}
}

// NewMockPromptScores creates a mock that scores each prompt by lookup,
// defaulting to zero for unknown prompts. The result is always sized to the
// request, which makes it convenient when the eligible batch varies between
// frames.
func NewMockPromptScores(scores map[string]float64) *Mock {
	return &Mock{
		PredictFunc: func(ctx context.Context, req *PredictRequest) (*Prediction, error) {
			out := make([]float64, len(req.Prompts))
			for i, p := range req.Prompts {
				out[i] = scores[p]
			}
			return &Prediction{RawScores: out, Model: "mock"}, nil
		},
		HealthFunc: func(ctx context.Context) error { return nil },
	}
}

// Predict calls PredictFunc and records the call.
func (m *Mock) Predict(ctx context.Context, req *PredictRequest) (*Prediction, error) {
	m.record("Predict", req.Prompts)
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, req)
	}
	return nil, WrapError("mock", ErrProviderUnavailable)
}

// Health calls HealthFunc and records the call.
func (m *Mock) Health(ctx context.Context) error {
	m.record("Health", nil)
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close calls CloseFunc and records the call.
func (m *Mock) Close() error {
	m.record("Close", nil)
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// record adds a call to the tracking list.
func (m *Mock) record(method string, prompts []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{
		Method:  method,
		Prompts: prompts,
		Time:    time.Now(),
	})
}

// Calls returns all recorded method calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

// Reset clears all recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// WithError returns a mock that always returns the given error.
func WithError(err error) *Mock {
	return &Mock{
		PredictFunc: func(ctx context.Context, req *PredictRequest) (*Prediction, error) {
			return nil, err
		},
		HealthFunc: func(ctx context.Context) error {
			return err
		},
	}
}

// Verify Mock implements Provider at compile time.
var _ Provider = (*Mock)(nil)
