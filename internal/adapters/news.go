package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/source"
)

const (
	newsQueryCap      = 100
	newsMaxItems      = 8
	newsDefaultBase   = "https://newsdata.io"
	maxErrorBodyBytes = 8 * 1024
)

// NewsAdapter queries the NewsData aggregation API for recent coverage of
// the claim. NewsData has no Go SDK, so this is a plain JSON client.
type NewsAdapter struct {
	cfg        model.NewsSource
	scorer     *source.Scorer
	httpClient *http.Client
}

// NewNewsAdapter creates a news adapter. A nil httpClient falls back to
// http.DefaultClient; the phase runner supplies deadlines via context.
func NewNewsAdapter(cfg model.NewsSource, scorer *source.Scorer, httpClient *http.Client) *NewsAdapter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NewsAdapter{cfg: cfg, scorer: scorer, httpClient: httpClient}
}

// Name returns the tier name.
func (a *NewsAdapter) Name() string { return TierNews }

type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Results      []newsAPIArticle `json:"results"`
}

type newsAPIArticle struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	PubDate     string   `json:"pubDate"`
	SourceID    string   `json:"source_id"`
	SourceURL   string   `json:"source_url"`
	Creator     []string `json:"creator"`
}

// Gather fetches recent articles matching the claim.
func (a *NewsAdapter) Gather(ctx context.Context, claim string) ([]model.Evidence, error) {
	if a.cfg.APIKey == "" {
		return nil, fmt.Errorf("news: %w", ErrMissingCredential)
	}

	base := a.cfg.Endpoint
	if base == "" {
		base = newsDefaultBase
	}
	endpoint, err := url.Parse(strings.TrimRight(base, "/") + "/api/1/news")
	if err != nil {
		return nil, fmt.Errorf("parse news endpoint: %w", err)
	}

	query := extract.BuildQuery(claim, newsQueryCap)
	params := endpoint.Query()
	params.Set("apikey", a.cfg.APIKey)
	params.Set("q", query)
	params.Set("language", "en")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request news: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, APIError{
			Source:     "news",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var parsed newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	evidence := make([]model.Evidence, 0, newsMaxItems)
	for _, article := range parsed.Results {
		if article.Link == "" || article.Title == "" {
			continue
		}
		if len(evidence) >= newsMaxItems {
			break
		}

		domain := article.SourceURL
		if domain == "" {
			domain = article.Link
		}
		domainScore := a.scorer.ScoreDomain(domain)

		publisher := article.SourceID
		if len(article.Creator) > 0 && article.Creator[0] != "" {
			publisher = article.Creator[0]
		}
		if publisher == "" {
			publisher = domainScore.Classification
		}

		ev := model.Evidence{
			ID:               evidenceID(TierNews, len(evidence)),
			URL:              article.Link,
			Title:            article.Title,
			Snippet:          extract.Truncate(article.Description, 400),
			Publisher:        publisher,
			CredibilityScore: domainScore.Score,
			RelevanceScore:   relevance(query, article.Title+" "+article.Description),
			Kind:             model.EvidenceKindNews,
			Source: model.EvidenceSource{
				Name:        publisher,
				URL:         article.Link,
				Credibility: a.scorer.Credibility(domain),
			},
		}
		if ts := parsePubDate(article.PubDate); ts != nil {
			ev.PublishedAt = ts
		}
		evidence = append(evidence, ev)
	}

	return evidence, nil
}

// parsePubDate handles the "2006-01-02 15:04:05" timestamps NewsData emits.
func parsePubDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
