package adapters

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/source"
)

const newsFixture = `{
	"status": "success",
	"totalResults": 3,
	"results": [
		{
			"title": "Study confirms the claim",
			"link": "https://www.reuters.com/science/study",
			"description": "Researchers confirmed the central finding.",
			"pubDate": "2025-06-01 10:30:00",
			"source_id": "reuters",
			"source_url": "https://www.reuters.com",
			"creator": ["Jane Reporter"]
		},
		{
			"title": "",
			"link": "https://example.com/untitled",
			"description": "An article without a title is dropped."
		},
		{
			"title": "Blog post repeats the claim",
			"link": "https://someone.substack.com/p/claim",
			"description": "A newsletter take.",
			"source_id": "substack"
		}
	]
}`

func newNewsServer(t *testing.T, status int, body string) (*httptest.Server, *NewsAdapter) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/news" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("apikey") == "" {
			t.Error("apikey missing from request")
		}
		if r.URL.Query().Get("q") == "" {
			t.Error("query missing from request")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	adapter := NewNewsAdapter(model.NewsSource{
		APIKey:   "test-key",
		Endpoint: server.URL,
	}, source.NewScorer(), server.Client())

	return server, adapter
}

func TestNewsGather(t *testing.T) {
	_, adapter := newNewsServer(t, http.StatusOK, newsFixture)

	evidence, err := adapter.Gather(context.Background(), "the central finding is confirmed")
	if err != nil {
		t.Fatal(err)
	}

	if len(evidence) != 2 {
		t.Fatalf("len = %d, want 2 (untitled article dropped)", len(evidence))
	}

	first := evidence[0]
	if first.Kind != model.EvidenceKindNews {
		t.Errorf("Kind = %s, want news", first.Kind)
	}
	if first.Publisher != "Jane Reporter" {
		t.Errorf("Publisher = %q, want the article creator", first.Publisher)
	}
	if first.CredibilityScore < 90 {
		t.Errorf("CredibilityScore = %d, reuters should score as a wire service", first.CredibilityScore)
	}
	if first.PublishedAt == nil {
		t.Error("PublishedAt should parse from pubDate")
	}
	if first.ID != "news-1" {
		t.Errorf("ID = %q, want news-1", first.ID)
	}

	second := evidence[1]
	if second.CredibilityScore >= first.CredibilityScore {
		t.Error("a substack post should score below a wire service")
	}
}

func TestNewsGatherUpstreamError(t *testing.T) {
	_, adapter := newNewsServer(t, http.StatusTooManyRequests, `{"status":"error","message":"rate limited"}`)

	_, err := adapter.Gather(context.Background(), "some claim")

	var apiErr APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
	}
}

func TestNewsGatherMalformedBody(t *testing.T) {
	_, adapter := newNewsServer(t, http.StatusOK, `{not json`)

	if _, err := adapter.Gather(context.Background(), "some claim"); err == nil {
		t.Error("expected a decode error")
	}
}

func TestNewsGatherCancelledContext(t *testing.T) {
	_, adapter := newNewsServer(t, http.StatusOK, newsFixture)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := adapter.Gather(ctx, "some claim"); err == nil {
		t.Error("expected an error from the cancelled context")
	}
}
