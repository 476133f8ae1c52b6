package aggregate

import (
	"context"
	"testing"

	"github.com/claimlens/claimlens/internal/model"
)

func TestDedupSameURLKeepsFirst(t *testing.T) {
	evidence := []model.Evidence{
		{ID: "claim-review-1", URL: "https://example.com/a", Publisher: "First"},
		{ID: "news-1", URL: "https://example.com/a", Publisher: "Second"},
	}

	got := Dedup(evidence)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ID != "claim-review-1" {
		t.Errorf("kept %s, want the first occurrence", got[0].ID)
	}
}

func TestDedupNormalizedTitles(t *testing.T) {
	evidence := []model.Evidence{
		{ID: "a", URL: "https://one.example/x", Title: "Senate Passes Sweeping Climate Bill!"},
		{ID: "b", URL: "https://two.example/y", Title: "senate passes sweeping climate bill"},
	}

	got := Dedup(evidence)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 after title collapse", len(got))
	}
	if got[0].ID != "a" {
		t.Errorf("kept %s, want the first occurrence", got[0].ID)
	}
}

func TestDedupShortTitlesNotCollapsed(t *testing.T) {
	evidence := []model.Evidence{
		{ID: "a", URL: "https://one.example/x", Title: "Update"},
		{ID: "b", URL: "https://two.example/y", Title: "Update"},
	}

	got := Dedup(evidence)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2; short titles must not collide", len(got))
	}
}

func TestDedupNoURLUsesPublisherSnippet(t *testing.T) {
	evidence := []model.Evidence{
		{ID: "a", Publisher: "Outlet", Snippet: "the same excerpt"},
		{ID: "b", Publisher: "Outlet", Snippet: "the same excerpt"},
		{ID: "c", Publisher: "Outlet", Snippet: "a different excerpt"},
	}

	got := Dedup(evidence)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestDedupIdempotent(t *testing.T) {
	evidence := []model.Evidence{
		{ID: "a", URL: "https://example.com/a", Title: "A long enough headline for collapsing"},
		{ID: "b", URL: "https://example.com/b", Title: "A completely different long headline"},
	}

	once := Dedup(evidence)
	twice := Dedup(once)

	if len(once) != len(twice) {
		t.Fatalf("dedup not idempotent: %d then %d", len(once), len(twice))
	}
}

type fakeValidator struct {
	called int
}

func (f *fakeValidator) ValidateAll(_ context.Context, evidence []model.Evidence) {
	f.called++
	for i := range evidence {
		evidence[i].Validation = &model.CitationValidation{
			Status:        model.CitationAccessible,
			AdjustedScore: evidence[i].CredibilityScore,
		}
	}
}

func TestMergeSortsAndValidates(t *testing.T) {
	tiers := []model.TierBreakdown{
		{Tier: "web-search", Success: true, Evidence: []model.Evidence{
			{ID: "s1", URL: "https://example.com/low", CredibilityScore: 40},
		}},
		{Tier: "news", Success: true, Evidence: []model.Evidence{
			{ID: "n1", URL: "https://example.com/high", CredibilityScore: 90},
		}},
	}

	validator := &fakeValidator{}
	agg := New(validator)

	got := agg.Merge(context.Background(), tiers)

	if validator.called != 1 {
		t.Errorf("validator called %d times, want 1", validator.called)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "n1" {
		t.Errorf("first item = %s, want the highest-credibility item", got[0].ID)
	}
	if got[0].Validation == nil {
		t.Error("validation metadata should be attached after merge")
	}
}

func TestMergeNilValidator(t *testing.T) {
	tiers := []model.TierBreakdown{
		{Tier: "news", Success: true, Evidence: []model.Evidence{
			{ID: "n1", URL: "https://example.com/a", CredibilityScore: 80},
		}},
	}

	got := New(nil).Merge(context.Background(), tiers)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Validation != nil {
		t.Error("no validator configured, validation must stay nil")
	}
}

func TestMergeSortPrefersAdjustedScore(t *testing.T) {
	tiers := []model.TierBreakdown{
		{Tier: "news", Success: true, Evidence: []model.Evidence{
			{ID: "penalized", URL: "https://example.com/a", CredibilityScore: 90},
			{ID: "steady", URL: "https://example.com/b", CredibilityScore: 70},
		}},
	}

	agg := New(validatorFunc(func(_ context.Context, evidence []model.Evidence) {
		for i := range evidence {
			adjusted := evidence[i].CredibilityScore
			if evidence[i].ID == "penalized" {
				adjusted = 30
			}
			evidence[i].Validation = &model.CitationValidation{AdjustedScore: adjusted}
		}
	}))

	got := agg.Merge(context.Background(), tiers)

	if got[0].ID != "steady" {
		t.Errorf("first item = %s, want the one with the higher adjusted score", got[0].ID)
	}
}

type validatorFunc func(ctx context.Context, evidence []model.Evidence)

func (f validatorFunc) ValidateAll(ctx context.Context, evidence []model.Evidence) {
	f(ctx, evidence)
}
