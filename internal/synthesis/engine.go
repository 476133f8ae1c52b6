// Package synthesis produces the final verdict and reasoning. The
// generative path asks a language model to weigh the evidence and
// blends its score with the weighted statistical score; any failure
// along that path degrades to the deterministic fallback, so a verdict
// is always produced.
package synthesis

import (
	"context"
	"fmt"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/score"
)

// Blend weights for the final score on the generative path. The model's
// judgment dominates but the statistical score anchors it.
const (
	blendAI       = 0.6
	blendWeighted = 0.4
)

const completionTemperature = 0.2

// Outcome is the synthesis result consumed by the report assembler.
type Outcome struct {
	Verdict   model.Verdict
	Score     int
	Reasoning string
	Warnings  []string
	Method    string
}

// Engine synthesizes verdicts. A nil provider disables the generative
// path entirely.
type Engine struct {
	provider llm.Provider
}

// NewEngine creates a synthesis engine. provider may be nil.
func NewEngine(provider llm.Provider) *Engine {
	return &Engine{provider: provider}
}

// Synthesize produces the final verdict. The generative path runs only
// when a provider is configured and evidence exists; otherwise, and on
// any completion or parse failure, the statistical fallback runs.
func (e *Engine) Synthesize(ctx context.Context, claim, publishingContext string, evidence []model.Evidence, weighted score.Result) Outcome {
	if e.provider == nil || len(evidence) == 0 {
		return e.fallback(weighted, evidence, nil)
	}

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      systemPrompt,
		Prompt:      buildPrompt(claim, publishingContext, evidence),
		Temperature: completionTemperature,
	})
	if err != nil {
		return e.fallback(weighted, evidence, fmt.Errorf("completion failed: %w", err))
	}

	parsed, err := parseResponse(resp.Text)
	if err != nil {
		return e.fallback(weighted, evidence, fmt.Errorf("unusable response: %w", err))
	}

	blended := model.ClampScore(int(float64(parsed.Score)*blendAI + float64(weighted.Score)*blendWeighted + 0.5))

	return Outcome{
		Verdict:   parsed.Verdict,
		Score:     blended,
		Reasoning: parsed.Reasoning,
		Warnings:  parsed.Warnings,
		Method:    model.MethodAISynthesis,
	}
}

// fallback derives the verdict statistically. The synthesis failure, if
// any, surfaces as a report warning rather than an error.
func (e *Engine) fallback(weighted score.Result, evidence []model.Evidence, cause error) Outcome {
	derived := score.DeriveVerdict(weighted.Score, evidence)

	warnings := derived.Warnings
	if cause != nil {
		warnings = append(warnings, cause.Error())
	}

	return Outcome{
		Verdict:   derived.Verdict,
		Score:     weighted.Score,
		Reasoning: derived.Reasoning,
		Warnings:  warnings,
		Method:    model.MethodStatistical,
	}
}
