// Package scoring provides a unified interface for vision-language similarity scoring.
//
// The package abstracts image-vs-prompt scoring behind a single Provider
// interface, enabling seamless switching between backends like a local CLIP
// inference server, a hosted similarity API, or a mock for tests.
//
// Example usage:
//
//	client, _ := scoring.NewClient(
//	    scoring.WithBaseURL("http://localhost:8000/v1"),
//	    scoring.WithModel("ViT-B-32"),
//	)
//	defer client.Close()
//
//	pred, _ := client.Predict(ctx, &scoring.PredictRequest{
//	    Image:   frame,
//	    Prompts: []string{"a person falling down", "a fire in the room"},
//	})
package scoring

import (
	"context"
	"image"
)

// Provider is the scoring interface consumed by the detection engine.
// All implementations must satisfy this interface.
type Provider interface {
	// Predict scores an image against an ordered list of text prompts.
	// The returned prediction carries exactly one score per prompt, in
	// input order.
	Predict(ctx context.Context, req *PredictRequest) (*Prediction, error)

	// Health checks backend connectivity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// PredictRequest for image-vs-prompt scoring.
type PredictRequest struct {
	// Image to score.
	Image image.Image

	// Prompts is the ordered list of text prompts to score against.
	Prompts []string

	// Temperature scales the similarity logits before the backend's softmax.
	// Zero means the backend default.
	Temperature float64

	// Model overrides the default model.
	Model string
}

// Prediction holds per-prompt scores for one image.
//
// RawScores are the similarity logits and are what the detection engine
// consumes; Probs are the backend's own softmax over the full prompt batch
// and are reported for diagnostics only.
type Prediction struct {
	// RawScores are the similarity logits, one per prompt, in input order.
	RawScores []float64

	// Probs is the backend's softmax over the prompt batch, same order.
	Probs []float64

	// Model used for scoring.
	Model string

	// LatencyMs is the response time in milliseconds.
	LatencyMs int64
}
