package source

import (
	"testing"

	"github.com/claimlens/claimlens/internal/model"
)

func TestScoreDomain(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"fact checker", "snopes.com", scoreFactCheckOrg},
		{"fact checker full url", "https://www.politifact.com/factchecks/2024/some-claim/", scoreFactCheckOrg},
		{"wire service", "reuters.com", scoreWireService},
		{"wire subdomain", "uk.reuters.com", scoreWireService},
		{"government", "cdc.gov", scoreGovAcademic},
		{"academic", "news.mit.edu", scoreGovAcademic},
		{"uk government", "nhs.gov.uk", scoreGovAcademic},
		{"who", "who.int", scoreGovAcademic},
		{"major outlet", "nytimes.com", scoreMajorOutlet},
		{"major outlet with www", "www.bbc.co.uk", scoreMajorOutlet},
		{"network", "cnn.com", scoreNetwork},
		{"unknown domain", "example-news-site.com", scoreBaseline},
		{"ugc platform", "reddit.com", scoreUGC},
		{"ugc subdomain", "old.reddit.com", scoreUGC},
		{"blog host", "someone.substack.com", scoreBlogHost},
		{"bare domain with path", "apnews.com/article/some-story", scoreWireService},
		{"empty input", "", scoreBaseline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ScoreDomain(tt.input)
			if got.Score != tt.want {
				t.Errorf("ScoreDomain(%q).Score = %d, want %d", tt.input, got.Score, tt.want)
			}
			if got.Classification == "" {
				t.Errorf("ScoreDomain(%q) missing classification", tt.input)
			}
		})
	}
}

func TestScoreDomainWarnings(t *testing.T) {
	s := NewScorer()

	if got := s.ScoreDomain("twitter.com"); len(got.Warnings) == 0 {
		t.Error("UGC domains should carry a warning")
	}
	if got := s.ScoreDomain("myblog.wordpress.com"); len(got.Warnings) == 0 {
		t.Error("blog hosts should carry a warning")
	}
	if got := s.ScoreDomain("reuters.com"); len(got.Warnings) != 0 {
		t.Errorf("reputable sources should not warn, got %v", got.Warnings)
	}
}

func TestCredibilityRating(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		domain string
		want   model.CredibilityRating
	}{
		{"snopes.com", model.RatingHigh},
		{"cnn.com", model.RatingMedium},
		{"reddit.com", model.RatingLow},
	}

	for _, tt := range tests {
		got := s.Credibility(tt.domain)
		if got.Rating != tt.want {
			t.Errorf("Credibility(%q).Rating = %s, want %s", tt.domain, got.Rating, tt.want)
		}
	}
}

func TestScoreTextualRating(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		rating string
		want   int
	}{
		{"True", 92},
		{"Accurate", 92},
		{"Mostly True", 75},
		{"Half True", 50},
		{"Mixture", 50},
		{"Misleading", 30},
		{"Mostly False", 25},
		{"False", 10},
		{"Pants on Fire!", 5},
		{"Unproven", 40},
		{"", 45},
		{"Four Pinocchios", 45},
	}

	for _, tt := range tests {
		if got := s.ScoreTextualRating(tt.rating); got != tt.want {
			t.Errorf("ScoreTextualRating(%q) = %d, want %d", tt.rating, got, tt.want)
		}
	}
}

func TestScoreTextualRatingOrderMatters(t *testing.T) {
	s := NewScorer()

	// "mostly true" must not fall through to the bare "true" branch,
	// and "mostly false" must not hit the bare "false" branch.
	if got := s.ScoreTextualRating("mostly true"); got == 92 {
		t.Error("mostly true matched the bare true branch")
	}
	if got := s.ScoreTextualRating("mostly false"); got == 10 {
		t.Error("mostly false matched the bare false branch")
	}
}
