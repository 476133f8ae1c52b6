package adapters

import (
	"context"
	"fmt"

	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/source"
	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

const (
	webSearchQueryCap = 128
	webSearchMaxItems = 8
)

// WebSearchAdapter queries Google Programmable Search for general web
// results about the claim.
type WebSearchAdapter struct {
	cfg    model.SearchSource
	scorer *source.Scorer
}

// NewWebSearchAdapter creates a web-search adapter.
func NewWebSearchAdapter(cfg model.SearchSource, scorer *source.Scorer) *WebSearchAdapter {
	return &WebSearchAdapter{cfg: cfg, scorer: scorer}
}

// Name returns the tier name.
func (a *WebSearchAdapter) Name() string { return TierWebSearch }

// Gather runs one search and maps the hits into evidence.
func (a *WebSearchAdapter) Gather(ctx context.Context, claim string) ([]model.Evidence, error) {
	if a.cfg.APIKey == "" || a.cfg.EngineID == "" {
		return nil, fmt.Errorf("web search: %w", ErrMissingCredential)
	}

	opts := []option.ClientOption{option.WithAPIKey(a.cfg.APIKey)}
	if a.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(a.cfg.Endpoint))
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("web search service: %w", err)
	}

	query := extract.BuildQuery(claim, webSearchQueryCap)
	resp, err := svc.Cse.List().
		Q(query).
		Cx(a.cfg.EngineID).
		Num(webSearchMaxItems).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}

	evidence := make([]model.Evidence, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Link == "" {
			continue
		}
		if len(evidence) >= webSearchMaxItems {
			break
		}

		domain := item.DisplayLink
		if domain == "" {
			domain = item.Link
		}
		domainScore := a.scorer.ScoreDomain(domain)

		publisher := item.DisplayLink
		if publisher == "" {
			publisher = domainScore.Classification
		}

		evidence = append(evidence, model.Evidence{
			ID:               evidenceID(TierWebSearch, len(evidence)),
			URL:              item.Link,
			Title:            item.Title,
			Snippet:          extract.Truncate(item.Snippet, 400),
			Publisher:        publisher,
			CredibilityScore: domainScore.Score,
			RelevanceScore:   relevance(query, item.Title+" "+item.Snippet),
			Kind:             model.EvidenceKindWebSearch,
			Source: model.EvidenceSource{
				Name:        publisher,
				URL:         item.Link,
				Credibility: a.scorer.Credibility(domain),
			},
		})
	}

	return evidence, nil
}
