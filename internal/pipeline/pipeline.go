// Package pipeline orchestrates claim verification end to end: input
// validation, concurrent evidence phases, aggregation, weighted
// scoring, synthesis, and report assembly. The pipeline degrades
// instead of failing; the only fatal input is empty text.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/claimlens/claimlens/internal/adapters"
	"github.com/claimlens/claimlens/internal/aggregate"
	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/score"
	"github.com/claimlens/claimlens/internal/source"
	"github.com/claimlens/claimlens/internal/synthesis"
	"github.com/claimlens/claimlens/internal/validate"
)

// Pipeline verifies claims. It is safe for concurrent use.
type Pipeline struct {
	cfg    *model.Config
	runner *Runner
	phases []adapters.Adapter
	agg    *aggregate.Aggregator
	engine *synthesis.Engine
	cache  cache.Cache
}

// Option customizes a Pipeline after the default wiring.
type Option func(*Pipeline)

// WithPhases replaces the default adapter set, for tests.
func WithPhases(phases ...adapters.Adapter) Option {
	return func(p *Pipeline) { p.phases = phases }
}

// WithCache attaches a report cache. A nil cache disables caching.
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// New wires a pipeline from configuration: one adapter per configured
// evidence source, citation validation when enabled, and the synthesis
// provider when one is configured. A synthesis provider that fails to
// construct is an error; a missing one is not.
func New(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	scorer := source.NewScorer()

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("configure synthesis provider: %w", err)
	}

	var validator aggregate.CitationValidator
	if cfg.Pipeline.ValidateCitations {
		validator = validate.NewValidator(
			cfg.HTTP.UserAgent,
			cfg.Pipeline.ValidationTimeout,
			validate.WithWorkers(cfg.Concurrency.ValidationWorkers),
		)
	}

	p := &Pipeline{
		cfg:    cfg,
		runner: NewRunner(cfg.Pipeline.PhaseTimeout),
		phases: []adapters.Adapter{
			adapters.NewClaimReviewAdapter(cfg.Sources.FactCheck, scorer),
			adapters.NewWebSearchAdapter(cfg.Sources.Search, scorer),
			adapters.NewNewsAdapter(cfg.Sources.News, scorer, nil),
		},
		agg:    aggregate.New(validator),
		engine: synthesis.NewEngine(provider),
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Verify runs the full pipeline for one request. The returned report is
// never nil when the error is nil; an error means the input itself was
// unusable.
func (p *Pipeline) Verify(ctx context.Context, req model.VerifyRequest) (*model.FactCheckReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := cache.Key(req.Text, req.PublishingContext)
	if p.cache != nil {
		if report, ok := p.cache.Get(ctx, key); ok {
			return report, nil
		}
	}

	start := time.Now()

	budget := p.cfg.Pipeline.RequestBudget
	if budget <= 0 {
		budget = 45 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	tiers := p.runner.Run(ctx, req.Text, p.phases)
	evidence := p.agg.Merge(ctx, tiers)
	weighted := score.Calculate(score.Input{Tiers: tiers, Evidence: evidence})
	outcome := p.engine.Synthesize(ctx, req.Text, req.PublishingContext, evidence, weighted)

	report := assemble(req, tiers, evidence, weighted, outcome, time.Since(start))

	if p.cache != nil {
		_ = p.cache.Set(ctx, key, report)
	}
	return report, nil
}

// assemble builds the final report from the pipeline stages.
func assemble(req model.VerifyRequest, tiers []model.TierBreakdown, evidence []model.Evidence,
	weighted score.Result, outcome synthesis.Outcome, elapsed time.Duration) *model.FactCheckReport {

	summaries := make([]model.TierSummary, 0, len(tiers))
	apisUsed := make([]string, 0, len(tiers))
	warnings := append([]string(nil), outcome.Warnings...)

	for _, tier := range tiers {
		summaries = append(summaries, model.TierSummary{
			Tier:             tier.Tier,
			Success:          tier.Success,
			Confidence:       tier.Confidence,
			ProcessingTimeMs: tier.ProcessingTimeMs,
			EvidenceCount:    len(tier.Evidence),
		})
		if tier.Success {
			apisUsed = append(apisUsed, tier.Tier)
		} else if tier.EscalationReason != "" {
			warnings = append(warnings, fmt.Sprintf("%s source unavailable: %s", tier.Tier, tier.EscalationReason))
		}
	}

	for _, ev := range evidence {
		if ev.Validation == nil {
			continue
		}
		for _, w := range ev.Validation.Warnings {
			warnings = append(warnings, fmt.Sprintf("%s: %s", ev.ID, w))
		}
	}

	return &model.FactCheckReport{
		ID:             uuid.NewString(),
		OriginalText:   req.Text,
		FinalVerdict:   outcome.Verdict,
		FinalScore:     outcome.Score,
		Reasoning:      outcome.Reasoning,
		Evidence:       evidence,
		ScoreBreakdown: weighted.Breakdown,
		Metadata: model.ReportMetadata{
			MethodUsed:       outcome.Method,
			ProcessingTimeMs: elapsed.Milliseconds(),
			APIsUsed:         apisUsed,
			SourcesConsulted: score.Counts(evidence),
			Warnings:         warnings,
			TierBreakdown:    summaries,
		},
	}
}
