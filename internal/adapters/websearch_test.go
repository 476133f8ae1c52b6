package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/source"
)

const webSearchFixture = `{
	"kind": "customsearch#search",
	"items": [
		{
			"kind": "customsearch#result",
			"title": "BBC report on the subject",
			"link": "https://www.bbc.com/news/article",
			"snippet": "The BBC covered the claim in detail.",
			"displayLink": "www.bbc.com"
		},
		{
			"kind": "customsearch#result",
			"title": "Dropped because it has no link",
			"snippet": "No link here."
		},
		{
			"kind": "customsearch#result",
			"title": "A forum thread about it",
			"link": "https://www.reddit.com/r/topic/thread",
			"snippet": "People arguing online.",
			"displayLink": "www.reddit.com"
		}
	]
}`

func newWebSearchServer(t *testing.T, body string) *WebSearchAdapter {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "" {
			t.Error("q missing from request")
		}
		if r.URL.Query().Get("cx") != "test-engine" {
			t.Errorf("cx = %q, want test-engine", r.URL.Query().Get("cx"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return NewWebSearchAdapter(model.SearchSource{
		APIKey:   "test-key",
		EngineID: "test-engine",
		Endpoint: server.URL,
	}, source.NewScorer())
}

func TestWebSearchGather(t *testing.T) {
	adapter := newWebSearchServer(t, webSearchFixture)

	evidence, err := adapter.Gather(context.Background(), "the claim in detail")
	if err != nil {
		t.Fatal(err)
	}

	if len(evidence) != 2 {
		t.Fatalf("len = %d, want 2 (linkless item dropped)", len(evidence))
	}

	first := evidence[0]
	if first.Kind != model.EvidenceKindWebSearch {
		t.Errorf("Kind = %s, want web-search-result", first.Kind)
	}
	if first.Publisher != "www.bbc.com" {
		t.Errorf("Publisher = %q, want the display link", first.Publisher)
	}
	if !strings.HasPrefix(first.ID, TierWebSearch) {
		t.Errorf("ID = %q, want a %s prefix", first.ID, TierWebSearch)
	}

	second := evidence[1]
	if second.CredibilityScore >= first.CredibilityScore {
		t.Error("a reddit thread should score below a BBC article")
	}
	if second.Source.Credibility.Rating != model.RatingLow {
		t.Errorf("Rating = %s, want Low for UGC", second.Source.Credibility.Rating)
	}
}

func TestWebSearchGatherNoItems(t *testing.T) {
	adapter := newWebSearchServer(t, `{"kind": "customsearch#search"}`)

	evidence, err := adapter.Gather(context.Background(), "an obscure claim")
	if err != nil {
		t.Fatal(err)
	}
	if len(evidence) != 0 {
		t.Errorf("len = %d, want 0", len(evidence))
	}
}
