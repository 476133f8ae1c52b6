// Package source maps publishers and domains to credibility scores.
// Everything here is deterministic and side-effect free so the scorer can
// be tested in isolation from the adapters that use it.
package source

import (
	"net/url"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Score tiers. Unknown sources get a fixed baseline rather than zero so a
// single unrecognized outlet cannot sink a report on its own.
const (
	scoreFactCheckOrg = 95
	scoreWireService  = 92
	scoreGovAcademic  = 85
	scoreMajorOutlet  = 78
	scoreNetwork      = 68
	scoreBaseline     = 55
	scoreBlogHost     = 35
	scoreUGC          = 25
)

// factCheckDomains are dedicated fact-checking organizations.
var factCheckDomains = map[string]bool{
	"snopes.com":        true,
	"politifact.com":    true,
	"factcheck.org":     true,
	"fullfact.org":      true,
	"leadstories.com":   true,
	"checkyourfact.com": true,
}

// wireDomains are premier wire services.
var wireDomains = map[string]bool{
	"reuters.com": true,
	"apnews.com":  true,
	"afp.com":     true,
}

// majorOutlets are established national/international newspapers.
var majorOutlets = map[string]bool{
	"nytimes.com":        true,
	"washingtonpost.com": true,
	"wsj.com":            true,
	"theguardian.com":    true,
	"bbc.com":            true,
	"bbc.co.uk":          true,
	"economist.com":      true,
	"ft.com":             true,
	"npr.org":            true,
}

// networks are major broadcast networks and large digital outlets.
var networks = map[string]bool{
	"cnn.com":       true,
	"nbcnews.com":   true,
	"abcnews.go.com": true,
	"cbsnews.com":   true,
	"foxnews.com":   true,
	"aljazeera.com": true,
	"usatoday.com":  true,
	"politico.com":  true,
	"axios.com":     true,
	"bloomberg.com": true,
}

// ugcDomains host user-generated content; anything from them is flagged.
var ugcDomains = map[string]bool{
	"reddit.com":    true,
	"facebook.com":  true,
	"twitter.com":   true,
	"x.com":         true,
	"tiktok.com":    true,
	"youtube.com":   true,
	"instagram.com": true,
	"quora.com":     true,
	"pinterest.com": true,
}

// blogHosts are free blog-hosting platforms.
var blogHosts = map[string]bool{
	"medium.com":      true,
	"substack.com":    true,
	"blogspot.com":    true,
	"wordpress.com":   true,
	"tumblr.com":      true,
	"weebly.com":      true,
	"wixsite.com":     true,
	"livejournal.com": true,
}

// Scorer resolves domains and textual ratings to credibility descriptors.
type Scorer struct{}

// NewScorer creates a new source credibility scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Result is a scored classification of one source.
type Result struct {
	Score          int
	Classification string
	Warnings       []string
}

// ScoreDomain maps a domain or full URL to a credibility score with a
// classification label and any warnings.
func (s *Scorer) ScoreDomain(domainOrURL string) Result {
	host := normalizeHost(domainOrURL)
	if host == "" {
		return Result{
			Score:          scoreBaseline,
			Classification: "Unknown Source",
			Warnings:       []string{"Source domain could not be determined"},
		}
	}

	switch {
	case matchDomain(host, factCheckDomains):
		return Result{Score: scoreFactCheckOrg, Classification: "Fact-Checking Organization"}
	case matchDomain(host, wireDomains):
		return Result{Score: scoreWireService, Classification: "Wire Service"}
	case isGovAcademic(host):
		return Result{Score: scoreGovAcademic, Classification: "Government / Academic"}
	case matchDomain(host, majorOutlets):
		return Result{Score: scoreMajorOutlet, Classification: "Major News Outlet"}
	case matchDomain(host, networks):
		return Result{Score: scoreNetwork, Classification: "Broadcast / Digital Network"}
	case matchDomain(host, ugcDomains):
		return Result{
			Score:          scoreUGC,
			Classification: "User-Generated Content",
			Warnings:       []string{"User-generated content platform: " + host},
		}
	case matchDomain(host, blogHosts):
		return Result{
			Score:          scoreBlogHost,
			Classification: "Blog Platform",
			Warnings:       []string{"Self-published blog host: " + host},
		}
	default:
		return Result{Score: scoreBaseline, Classification: "Unclassified Source"}
	}
}

// Credibility builds the nested descriptor attached to evidence items.
func (s *Scorer) Credibility(domainOrURL string) model.SourceCredibility {
	res := s.ScoreDomain(domainOrURL)
	return model.SourceCredibility{
		Rating:         model.RatingForScore(res.Score),
		Classification: res.Classification,
		Warnings:       res.Warnings,
	}
}

// ScoreTextualRating maps a claim-review textual rating (e.g. "False",
// "Mostly True") to a 0-100 score. Unknown ratings default near the
// middle so a novel label does not swing a verdict.
func (s *Scorer) ScoreTextualRating(rating string) int {
	normalized := strings.ToLower(strings.TrimSpace(rating))
	switch {
	case normalized == "":
		return 45
	case strings.Contains(normalized, "mostly true"), strings.Contains(normalized, "largely true"):
		return 75
	case strings.Contains(normalized, "mostly false"), strings.Contains(normalized, "largely false"):
		return 25
	case strings.Contains(normalized, "half true"), strings.Contains(normalized, "half-true"),
		strings.Contains(normalized, "mixed"), strings.Contains(normalized, "mixture"),
		strings.Contains(normalized, "partly"):
		return 50
	case strings.Contains(normalized, "pants on fire"), strings.Contains(normalized, "fabricat"):
		return 5
	case strings.Contains(normalized, "misleading"), strings.Contains(normalized, "distort"),
		strings.Contains(normalized, "out of context"):
		return 30
	case strings.Contains(normalized, "unproven"), strings.Contains(normalized, "unverified"),
		strings.Contains(normalized, "unsubstantiated"):
		return 40
	case strings.Contains(normalized, "false"), strings.Contains(normalized, "incorrect"),
		strings.Contains(normalized, "wrong"):
		return 10
	case strings.Contains(normalized, "true"), strings.Contains(normalized, "correct"),
		strings.Contains(normalized, "accurate"):
		return 92
	default:
		return 45
	}
}

// normalizeHost extracts a bare lower-case host from a URL or domain string.
func normalizeHost(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	if strings.Contains(raw, "://") {
		parsed, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		raw = parsed.Host
	}
	// Strip any path left over from bare "domain/path" inputs
	if idx := strings.IndexByte(raw, '/'); idx >= 0 {
		raw = raw[:idx]
	}
	if idx := strings.IndexByte(raw, ':'); idx > 0 {
		raw = raw[:idx]
	}
	return strings.TrimPrefix(raw, "www.")
}

// matchDomain matches a host against a domain set, including subdomains.
func matchDomain(host string, set map[string]bool) bool {
	if set[host] {
		return true
	}
	for domain, ok := range set {
		if ok && strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// isGovAcademic recognizes government and academic TLD classes.
func isGovAcademic(host string) bool {
	return strings.HasSuffix(host, ".gov") ||
		strings.HasSuffix(host, ".edu") ||
		strings.HasSuffix(host, ".mil") ||
		strings.HasSuffix(host, ".ac.uk") ||
		strings.HasSuffix(host, ".gov.uk") ||
		host == "who.int" || strings.HasSuffix(host, ".who.int") ||
		host == "un.org" || strings.HasSuffix(host, ".un.org")
}
