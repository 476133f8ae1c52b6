package model

import "time"

// Evidence represents one normalized, scored excerpt from an external
// source bearing on the claim under verification.
type Evidence struct {
	ID               string              `json:"id"`                     // Unique within a report
	URL              string              `json:"url,omitempty"`          // Dedup key when present
	Title            string              `json:"title"`                  // Headline or review title
	Snippet          string              `json:"snippet"`                // Quote or excerpt
	Publisher        string              `json:"publisher"`              // Outlet or reviewer name
	PublishedAt      *time.Time          `json:"published_at,omitempty"` // Publication date, if known
	CredibilityScore int                 `json:"credibility_score"`      // 0-100, source reputation
	RelevanceScore   int                 `json:"relevance_score"`        // 0-100, query match
	Kind             EvidenceKind        `json:"type"`                   // Which tier produced it
	Source           EvidenceSource      `json:"source"`                 // Nested credibility descriptor
	Validation       *CitationValidation `json:"validation,omitempty"`   // Set by the aggregator
}

// EvidenceKind classifies the tier that produced an evidence item.
type EvidenceKind string

const (
	EvidenceKindClaimReview EvidenceKind = "claim-review"      // Published fact-check review
	EvidenceKindNews        EvidenceKind = "news"              // News article
	EvidenceKindWebSearch   EvidenceKind = "web-search-result" // General search hit
	EvidenceKindCuratedFact EvidenceKind = "curated-fact"      // Hand-curated reference entry
)

// EvidenceSource describes where an evidence item came from.
type EvidenceSource struct {
	Name        string            `json:"name"`
	URL         string            `json:"url,omitempty"`
	Credibility SourceCredibility `json:"credibility"`
}

// SourceCredibility is the human-readable credibility descriptor attached
// to every evidence item by the source scorer.
type SourceCredibility struct {
	Rating         CredibilityRating `json:"rating"`
	Classification string            `json:"classification"`
	Warnings       []string          `json:"warnings,omitempty"`
}

// CredibilityRating buckets a 0-100 credibility score into three tiers.
type CredibilityRating string

const (
	RatingHigh   CredibilityRating = "High"
	RatingMedium CredibilityRating = "Medium"
	RatingLow    CredibilityRating = "Low"
)

// RatingForScore maps a 0-100 credibility score to its rating tier.
func RatingForScore(score int) CredibilityRating {
	switch {
	case score >= 75:
		return RatingHigh
	case score >= 50:
		return RatingMedium
	default:
		return RatingLow
	}
}

// CitationStatus is the outcome of the aggregator's reachability probe.
type CitationStatus string

const (
	CitationAccessible   CitationStatus = "accessible"
	CitationInaccessible CitationStatus = "inaccessible"
	CitationError        CitationStatus = "error"
)

// CitationValidation carries the aggregator's validation metadata. It is
// the only mutation evidence undergoes after an adapter produces it.
type CitationValidation struct {
	Status        CitationStatus `json:"status"`
	StatusCode    int            `json:"status_code,omitempty"`
	Adjustment    int            `json:"adjustment"`     // Signed delta applied to the score
	AdjustedScore int            `json:"adjusted_score"` // Credibility after adjustment and clamping
	Warnings      []string       `json:"warnings,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// ClampScore clamps a score to the [0,100] range every report field obeys.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// DedupKey returns the canonical identity used by the aggregator: the URL
// when present, otherwise publisher plus a snippet prefix.
func (e Evidence) DedupKey() string {
	if e.URL != "" {
		return e.URL
	}
	snippet := e.Snippet
	if len(snippet) > 50 {
		snippet = snippet[:50]
	}
	return e.Publisher + "|" + snippet
}
