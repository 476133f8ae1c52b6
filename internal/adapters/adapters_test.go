package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/source"
)

func TestConfidence(t *testing.T) {
	ev := func(cred int) model.Evidence {
		return model.Evidence{CredibilityScore: cred}
	}

	tests := []struct {
		name     string
		evidence []model.Evidence
		want     int
	}{
		{"no evidence", nil, 0},
		// avg 90 + high bonus 10 + count bonus 4 = 104, clamped
		{"two strong items", []model.Evidence{ev(92), ev(88)}, 100},
		// avg 50 + no high bonus + count bonus 2 = 52
		{"one middling item", []model.Evidence{ev(50)}, 52},
		// avg 30 + 0 + 4 = 34
		{"weak items", []model.Evidence{ev(30), ev(30)}, 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.evidence); got != tt.want {
				t.Errorf("Confidence() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfidenceBonusesCapped(t *testing.T) {
	evidence := make([]model.Evidence, 10)
	for i := range evidence {
		evidence[i] = model.Evidence{CredibilityScore: 85}
	}

	// avg 85 + high bonus capped at 15 + count bonus capped at 10
	if got := Confidence(evidence); got != 100 {
		t.Errorf("Confidence() = %d, want 100", got)
	}
}

func TestRelevance(t *testing.T) {
	full := relevance("moon landing hoax", "the moon landing hoax theory resurfaces")
	none := relevance("moon landing hoax", "completely unrelated text")

	if full != 100 {
		t.Errorf("all terms matched, relevance = %d, want 100", full)
	}
	if none != 40 {
		t.Errorf("no terms matched, relevance = %d, want the 40 floor", none)
	}
	if empty := relevance("", "anything"); empty != 50 {
		t.Errorf("empty query relevance = %d, want 50", empty)
	}
}

func TestMissingCredentials(t *testing.T) {
	scorer := source.NewScorer()
	ctx := context.Background()

	adapters := []Adapter{
		NewClaimReviewAdapter(model.FactCheckSource{}, scorer),
		NewWebSearchAdapter(model.SearchSource{}, scorer),
		NewWebSearchAdapter(model.SearchSource{APIKey: "key-only"}, scorer),
		NewNewsAdapter(model.NewsSource{}, scorer, nil),
	}

	for _, a := range adapters {
		if _, err := a.Gather(ctx, "some claim"); !errors.Is(err, ErrMissingCredential) {
			t.Errorf("%s: err = %v, want ErrMissingCredential", a.Name(), err)
		}
	}
}

func TestEvidenceID(t *testing.T) {
	if got := evidenceID(TierNews, 0); got != "news-1" {
		t.Errorf("evidenceID = %q, want news-1", got)
	}
	if got := evidenceID(TierClaimReview, 4); got != "claim-review-5" {
		t.Errorf("evidenceID = %q, want claim-review-5", got)
	}
}
