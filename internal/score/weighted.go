// Package score turns aggregated evidence into a weighted confidence
// score and, when the generative path is unavailable, a deterministic
// verdict. Every number it emits carries the formula that produced it.
package score

import (
	"fmt"

	"github.com/claimlens/claimlens/internal/adapters"
	"github.com/claimlens/claimlens/internal/model"
)

// Metric weights. They sum to 1.0; corroboration from search and news
// carries most of the score, source quality the remainder.
const (
	WeightSearch      = 0.40
	WeightNews        = 0.40
	WeightCredibility = 0.20
)

// Input is everything the calculator needs: the per-tier outcomes and
// the deduplicated evidence pool.
type Input struct {
	Tiers    []model.TierBreakdown
	Evidence []model.Evidence
}

// Result is the weighted score with its transparent breakdown.
type Result struct {
	Score     int
	Breakdown model.ScoreBreakdown
}

// Calculate computes the weighted confidence score. Failed tiers
// contribute zero through their own confidence; the weights never
// change, so a missing tier drags the score down rather than being
// renormalized away.
func Calculate(in Input) Result {
	searchConf := tierConfidence(in.Tiers, adapters.TierWebSearch)
	newsConf := tierConfidence(in.Tiers, adapters.TierNews)
	avgCred := averageCredibility(in.Evidence)

	weighted := float64(searchConf)*WeightSearch +
		float64(newsConf)*WeightNews +
		float64(avgCred)*WeightCredibility
	final := model.ClampScore(int(weighted + 0.5))

	metrics := []model.ScoreMetric{
		{
			Name:        "search-corroboration",
			Score:       searchConf,
			Weight:      WeightSearch,
			Description: "Confidence derived from general web search results",
			Reasoning:   tierReasoning(in.Tiers, adapters.TierWebSearch),
		},
		{
			Name:        "news-corroboration",
			Score:       newsConf,
			Weight:      WeightNews,
			Description: "Confidence derived from recent news coverage",
			Reasoning:   tierReasoning(in.Tiers, adapters.TierNews),
		},
		{
			Name:        "source-credibility",
			Score:       avgCred,
			Weight:      WeightCredibility,
			Description: "Average credibility of all deduplicated sources",
			Reasoning:   credibilityReasoning(in.Evidence),
		},
	}

	return Result{
		Score: final,
		Breakdown: model.ScoreBreakdown{
			FinalScoreFormula: fmt.Sprintf(
				"round(%d*%.2f + %d*%.2f + %d*%.2f) = %d",
				searchConf, WeightSearch, newsConf, WeightNews, avgCred, WeightCredibility, final),
			Metrics: metrics,
		},
	}
}

func tierConfidence(tiers []model.TierBreakdown, name string) int {
	for _, t := range tiers {
		if t.Tier == name {
			if !t.Success {
				return 0
			}
			return t.Confidence
		}
	}
	return 0
}

func tierReasoning(tiers []model.TierBreakdown, name string) string {
	for _, t := range tiers {
		if t.Tier != name {
			continue
		}
		if !t.Success {
			if t.EscalationReason != "" {
				return fmt.Sprintf("tier failed: %s", t.EscalationReason)
			}
			return "tier failed"
		}
		return fmt.Sprintf("%d items, tier confidence %d", len(t.Evidence), t.Confidence)
	}
	return "tier did not run"
}

func averageCredibility(evidence []model.Evidence) int {
	if len(evidence) == 0 {
		return 0
	}
	sum := 0
	for _, ev := range evidence {
		sum += effectiveCredibility(ev)
	}
	return sum / len(evidence)
}

func credibilityReasoning(evidence []model.Evidence) string {
	if len(evidence) == 0 {
		return "no sources retrieved"
	}
	high := 0
	for _, ev := range evidence {
		if effectiveCredibility(ev) >= 80 {
			high++
		}
	}
	return fmt.Sprintf("%d sources, %d high-credibility", len(evidence), high)
}

// effectiveCredibility prefers the post-validation score when the
// aggregator probed the citation.
func effectiveCredibility(ev model.Evidence) int {
	if ev.Validation != nil {
		return ev.Validation.AdjustedScore
	}
	return ev.CredibilityScore
}

// Counts buckets the evidence pool for report metadata. A pool is
// conflicting when it contains both high- and low-credibility sources.
func Counts(evidence []model.Evidence) model.SourceCounts {
	counts := model.SourceCounts{Total: len(evidence)}
	low := 0
	for _, ev := range evidence {
		cred := effectiveCredibility(ev)
		if cred >= 80 {
			counts.HighCredibility++
		}
		if cred < 40 {
			low++
		}
	}
	if counts.HighCredibility > 0 && low > 0 {
		counts.Conflicting = low
	}
	return counts
}
