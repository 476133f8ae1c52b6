// Package aggregate merges per-tier evidence into one deduplicated,
// credibility-sorted pool and orchestrates citation validation over it.
package aggregate

import (
	"context"
	"sort"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// CitationValidator probes citations and attaches validation metadata.
type CitationValidator interface {
	ValidateAll(ctx context.Context, evidence []model.Evidence)
}

// Aggregator merges tier outputs. A nil validator disables citation
// validation.
type Aggregator struct {
	validator CitationValidator
}

// New creates an aggregator. validator may be nil.
func New(validator CitationValidator) *Aggregator {
	return &Aggregator{validator: validator}
}

// Merge flattens tier evidence into one pool, drops duplicates with
// first-seen-wins semantics, validates citations, and sorts by
// effective credibility. The input tiers are not modified.
func (a *Aggregator) Merge(ctx context.Context, tiers []model.TierBreakdown) []model.Evidence {
	merged := Dedup(flatten(tiers))

	if a.validator != nil {
		a.validator.ValidateAll(ctx, merged)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return effectiveCredibility(merged[i]) > effectiveCredibility(merged[j])
	})

	return merged
}

func flatten(tiers []model.TierBreakdown) []model.Evidence {
	var out []model.Evidence
	for _, tier := range tiers {
		out = append(out, tier.Evidence...)
	}
	return out
}

// Dedup removes duplicate evidence. Identity is the dedup key first,
// then a normalized title match, so the same story syndicated under
// slightly different URLs collapses too. The first occurrence wins;
// tiers run in fixed order, so the keeper is deterministic.
func Dedup(evidence []model.Evidence) []model.Evidence {
	seenKeys := make(map[string]bool, len(evidence))
	seenTitles := make(map[string]bool, len(evidence))

	out := make([]model.Evidence, 0, len(evidence))
	for _, ev := range evidence {
		key := ev.DedupKey()
		if seenKeys[key] {
			continue
		}

		title := normalizeTitle(ev.Title)
		if title != "" && seenTitles[title] {
			continue
		}

		seenKeys[key] = true
		if title != "" {
			seenTitles[title] = true
		}
		out = append(out, ev)
	}
	return out
}

// normalizeTitle lowercases and collapses whitespace and punctuation so
// near-identical headlines compare equal. Short titles are exempt; they
// collide too easily.
func normalizeTitle(title string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	normalized := strings.TrimSpace(b.String())
	if len(normalized) < 20 {
		return ""
	}
	return normalized
}

func effectiveCredibility(ev model.Evidence) int {
	if ev.Validation != nil {
		return ev.Validation.AdjustedScore
	}
	return ev.CredibilityScore
}
