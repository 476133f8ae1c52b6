package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/source"
	factchecktools "google.golang.org/api/factchecktools/v1alpha1"
	"google.golang.org/api/option"
)

const (
	claimReviewQueryCap = 80 // The claims API truncates long queries poorly
	claimReviewMaxItems = 10
)

// ClaimReviewAdapter queries the Google Fact Check Tools claims database
// for published reviews of the claim.
type ClaimReviewAdapter struct {
	cfg    model.FactCheckSource
	scorer *source.Scorer
}

// NewClaimReviewAdapter creates a claim-review adapter with explicit
// credentials; nothing is read from process globals.
func NewClaimReviewAdapter(cfg model.FactCheckSource, scorer *source.Scorer) *ClaimReviewAdapter {
	return &ClaimReviewAdapter{cfg: cfg, scorer: scorer}
}

// Name returns the tier name.
func (a *ClaimReviewAdapter) Name() string { return TierClaimReview }

// Gather searches the claims database and maps reviews into evidence.
func (a *ClaimReviewAdapter) Gather(ctx context.Context, claim string) ([]model.Evidence, error) {
	if a.cfg.APIKey == "" {
		return nil, fmt.Errorf("claim review: %w", ErrMissingCredential)
	}

	opts := []option.ClientOption{option.WithAPIKey(a.cfg.APIKey)}
	if a.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(a.cfg.Endpoint))
	}
	svc, err := factchecktools.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("claim review service: %w", err)
	}

	query := extract.BuildQuery(claim, claimReviewQueryCap)
	resp, err := svc.Claims.Search().
		Query(query).
		PageSize(claimReviewMaxItems).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("claim review search: %w", err)
	}

	evidence := make([]model.Evidence, 0, claimReviewMaxItems)
	for _, reviewed := range resp.Claims {
		for _, review := range reviewed.ClaimReview {
			if len(evidence) >= claimReviewMaxItems {
				break
			}

			publisher := "Unknown Reviewer"
			publisherSite := ""
			if review.Publisher != nil {
				if review.Publisher.Name != "" {
					publisher = review.Publisher.Name
				}
				publisherSite = review.Publisher.Site
			}

			domain := publisherSite
			if domain == "" {
				domain = review.Url
			}
			domainScore := a.scorer.ScoreDomain(domain)
			ratingScore := a.scorer.ScoreTextualRating(review.TextualRating)

			// A review's credibility blends who published it with
			// what they concluded; the textual rating dominates
			// because it carries the reviewer's actual finding.
			cred := model.ClampScore((domainScore.Score + 2*ratingScore) / 3)

			title := review.Title
			if title == "" {
				title = extract.Truncate(reviewed.Text, 120)
			}
			snippet := reviewed.Text
			if review.TextualRating != "" {
				snippet = fmt.Sprintf("%s (rated %q by %s)", reviewed.Text, review.TextualRating, publisher)
			}

			ev := model.Evidence{
				ID:               evidenceID(TierClaimReview, len(evidence)),
				URL:              review.Url,
				Title:            title,
				Snippet:          extract.Truncate(snippet, 400),
				Publisher:        publisher,
				CredibilityScore: cred,
				RelevanceScore:   relevance(query, reviewed.Text+" "+title),
				Kind:             model.EvidenceKindClaimReview,
				Source: model.EvidenceSource{
					Name:        publisher,
					URL:         publisherSite,
					Credibility: a.scorer.Credibility(domain),
				},
			}
			if ts := parseReviewDate(review.ReviewDate); ts != nil {
				ev.PublishedAt = ts
			}
			evidence = append(evidence, ev)
		}
	}

	return evidence, nil
}

// parseReviewDate parses the RFC 3339 timestamps the claims API emits.
func parseReviewDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	return nil
}
