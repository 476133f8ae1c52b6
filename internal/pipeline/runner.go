package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/claimlens/claimlens/internal/adapters"
	"github.com/claimlens/claimlens/internal/model"
)

// Runner executes evidence phases concurrently, each under its own
// timeout. One phase failing, timing out, or panicking never affects
// the others; its outcome is a failed tier breakdown, never an error.
type Runner struct {
	timeout time.Duration
}

// NewRunner creates a phase runner with the given per-phase timeout.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{timeout: timeout}
}

// Run executes every adapter against the claim text and returns one
// breakdown per adapter, in registration order regardless of completion
// order.
func (r *Runner) Run(ctx context.Context, text string, phases []adapters.Adapter) []model.TierBreakdown {
	results := make([]model.TierBreakdown, len(phases))
	done := make(chan struct{}, len(phases))

	for i, adapter := range phases {
		go func(i int, adapter adapters.Adapter) {
			defer func() { done <- struct{}{} }()
			results[i] = r.runPhase(ctx, text, adapter)
		}(i, adapter)
	}

	for range phases {
		<-done
	}

	return results
}

// runPhase executes one adapter under the phase timeout and converts
// every failure mode, including panics, into a failed breakdown.
func (r *Runner) runPhase(ctx context.Context, text string, adapter adapters.Adapter) (result model.TierBreakdown) {
	tier := adapter.Name()
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			result = model.FailedTier(tier, fmt.Sprintf("panic: %v", rec), time.Since(start))
		}
	}()

	phaseCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	evidence, err := adapter.Gather(phaseCtx, text)
	elapsed := time.Since(start)
	if err != nil {
		return model.FailedTier(tier, err.Error(), elapsed)
	}

	return model.TierBreakdown{
		Tier:             tier,
		Success:          true,
		Confidence:       adapters.Confidence(evidence),
		Evidence:         evidence,
		Elapsed:          elapsed,
		ProcessingTimeMs: elapsed.Milliseconds(),
	}
}
