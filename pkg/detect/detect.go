// Package detect implements the multi-scenario detection decision engine.
//
// Each scenario describes a detectable situation ("fall", "fire", ...) as a
// natural-language prompt with its own threshold, cooldown, consecutive-frame
// requirement and alert level. For every frame the engine batches all
// eligible prompts into a single scoring call, normalizes the raw similarity
// logits with a softmax across the batch, updates per-scenario debounce
// state, and resolves conflicts between simultaneously qualifying scenarios
// by alert level first and confidence second. At most one detection is
// emitted per frame.
//
// Example usage:
//
//	store := detect.NewStore()
//	store.Register(detect.Definition{
//	    ID: "fall", Name: "Fall", Prompt: "a person falling down",
//	    Threshold: 0.5, CooldownSeconds: 30, ConsecutiveFrames: 2,
//	    AlertLevel: detect.LevelHigh, Enabled: true,
//	})
//
//	engine := detect.NewEngine(store, provider)
//	result, err := engine.Detect(ctx, frame, time.Now())
//	if err == nil && result.Detected {
//	    fmt.Printf("alert: %s (%.2f)\n", result.ScenarioName, result.Confidence)
//	}
//
// The engine is single-stream: Detect and Reload on the same Engine are
// serialized behind one mutex, and independent video streams should each own
// their own Store and Engine.
package detect
