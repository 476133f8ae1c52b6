// Package adapters contains one adapter per external evidence source.
// Each adapter turns a raw upstream response into normalized, scored
// evidence. Adapters issue exactly one outbound call per invocation and
// never retry; failure handling belongs to the phase runner.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// ErrMissingCredential marks a source that was skipped because no API key
// is configured. It is a configuration error, not a transport failure.
var ErrMissingCredential = errors.New("api credential is not configured")

// Tier names. These are stable identifiers recorded in report metadata.
const (
	TierClaimReview = "claim-review"
	TierWebSearch   = "web-search"
	TierNews        = "news"
)

// Adapter gathers evidence for a claim from one external source.
type Adapter interface {
	// Name returns the tier name recorded in the report.
	Name() string

	// Gather issues one outbound call and maps the response into
	// normalized evidence. Errors are returned, never swallowed; the
	// phase runner converts them into failed tier breakdowns.
	Gather(ctx context.Context, claim string) ([]model.Evidence, error)
}

// APIError is a non-2xx response from an upstream source.
type APIError struct {
	Source     string
	StatusCode int
	Body       string
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Source, e.StatusCode, e.Body)
}

// Confidence computes a tier's aggregate confidence from its evidence:
// the evidence-weighted average credibility, a capped bonus for
// high-credibility items, and a capped bonus for item count. It is
// monotonically non-decreasing in both quality and quantity and
// saturates at 100.
func Confidence(evidence []model.Evidence) int {
	if len(evidence) == 0 {
		return 0
	}

	sum := 0
	highCred := 0
	for _, ev := range evidence {
		sum += ev.CredibilityScore
		if ev.CredibilityScore >= 80 {
			highCred++
		}
	}
	avg := sum / len(evidence)

	highBonus := highCred * 5
	if highBonus > 15 {
		highBonus = 15
	}
	countBonus := len(evidence) * 2
	if countBonus > 10 {
		countBonus = 10
	}

	return model.ClampScore(avg + highBonus + countBonus)
}

// relevance estimates how well a result matches the query: the share of
// query terms present in the result text, floored so a returned-but-weak
// match still counts for something.
func relevance(query, text string) int {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return 50
	}
	haystack := strings.ToLower(text)

	matched := 0
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			matched++
		}
	}

	score := 40 + (matched*60)/len(terms)
	return model.ClampScore(score)
}

// evidenceID builds the per-report identifier for the i-th item of a tier.
// Tier names are distinct, so identifiers never collide across tiers.
func evidenceID(tier string, i int) string {
	return fmt.Sprintf("%s-%d", tier, i+1)
}
