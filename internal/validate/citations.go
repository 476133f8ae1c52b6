// Package validate probes evidence citations for reachability and
// applies deterministic credibility adjustments based on what the URL
// itself reveals about the source.
package validate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/util"
)

// Deterministic adjustments applied on top of the probe outcome.
const (
	adjustGovAcademic = 10  // .gov/.edu domains
	adjustInsecure    = -15 // plain http citations
	adjustUGC         = -20 // user-generated or blog hosts
	adjustUnreachable = -20 // probe failed or non-2xx
)

// ugcHosts are platforms where anyone can publish. Citations pointing
// at them are penalized and flagged.
var ugcHosts = map[string]bool{
	"reddit.com":    true,
	"twitter.com":   true,
	"x.com":         true,
	"facebook.com":  true,
	"tiktok.com":    true,
	"youtube.com":   true,
	"medium.com":    true,
	"substack.com":  true,
	"blogspot.com":  true,
	"wordpress.com": true,
	"tumblr.com":    true,
	"quora.com":     true,
}

// Validator probes citations concurrently with a bounded worker count.
type Validator struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	userAgent  string
	timeout    time.Duration
	workers    int
}

// Option configures a Validator.
type Option func(*Validator)

// WithHTTPClient overrides the probe client, for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(v *Validator) { v.httpClient = c }
}

// WithWorkers sets the probe concurrency bound.
func WithWorkers(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.workers = n
		}
	}
}

// NewValidator creates a citation validator. timeout bounds each
// individual probe, not the whole batch.
func NewValidator(userAgent string, timeout time.Duration, opts ...Option) *Validator {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	v := &Validator{
		httpClient: &http.Client{Timeout: timeout},
		robots:     util.NewRobotsChecker(userAgent, timeout),
		userAgent:  userAgent,
		timeout:    timeout,
		workers:    5,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateAll probes every evidence item with a URL and attaches
// validation metadata in place. Items without URLs are left untouched.
// The slice order is preserved.
func (v *Validator) ValidateAll(ctx context.Context, evidence []model.Evidence) {
	sem := make(chan struct{}, v.workers)
	var wg sync.WaitGroup

	for i := range evidence {
		if evidence[i].URL == "" {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(ev *model.Evidence) {
			defer wg.Done()
			defer func() { <-sem }()
			ev.Validation = v.validate(ctx, ev)
		}(&evidence[i])
	}

	wg.Wait()
}

// validate probes one citation and computes its adjusted score.
func (v *Validator) validate(ctx context.Context, ev *model.Evidence) *model.CitationValidation {
	result := &model.CitationValidation{}

	status, code, probeErr := v.probe(ctx, ev.URL)
	result.Status = status
	result.StatusCode = code
	if probeErr != nil {
		result.Error = probeErr.Error()
	}

	adjustment := 0
	switch status {
	case model.CitationInaccessible:
		adjustment += adjustUnreachable
		result.Warnings = append(result.Warnings, fmt.Sprintf("citation returned HTTP %d", code))
	case model.CitationError:
		adjustment += adjustUnreachable
		result.Warnings = append(result.Warnings, "citation could not be reached")
	}

	adjustment += v.domainAdjustment(ev.URL, result)

	result.Adjustment = adjustment
	result.AdjustedScore = model.ClampScore(ev.CredibilityScore + adjustment)
	return result
}

// probe issues one HEAD request bounded by the per-probe timeout.
// Hosts whose robots.txt disallows us are reported as errors rather
// than fetched anyway.
func (v *Validator) probe(ctx context.Context, rawURL string) (model.CitationStatus, int, error) {
	probeCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	if !v.robots.IsAllowed(probeCtx, rawURL) {
		return model.CitationError, 0, fmt.Errorf("disallowed by robots.txt")
	}

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, rawURL, nil)
	if err != nil {
		return model.CitationError, 0, fmt.Errorf("build probe: %w", err)
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return model.CitationError, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return model.CitationAccessible, resp.StatusCode, nil
	}
	return model.CitationInaccessible, resp.StatusCode, nil
}

// domainAdjustment applies the URL-derived deltas and records their
// warnings on the result.
func (v *Validator) domainAdjustment(rawURL string, result *model.CitationValidation) int {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	host := strings.ToLower(strings.TrimPrefix(parsed.Hostname(), "www."))

	adjustment := 0

	if parsed.Scheme == "http" {
		adjustment += adjustInsecure
		result.Warnings = append(result.Warnings, "citation served over plain HTTP")
	}

	if isGovAcademicHost(host) {
		adjustment += adjustGovAcademic
	}

	if isUGCHost(host) {
		adjustment += adjustUGC
		result.Warnings = append(result.Warnings, "citation points at a user-generated content platform")
	}

	return adjustment
}

func isGovAcademicHost(host string) bool {
	for _, suffix := range []string{".gov", ".edu", ".mil", ".gov.uk", ".ac.uk"} {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

func isUGCHost(host string) bool {
	if ugcHosts[host] {
		return true
	}
	for ugc := range ugcHosts {
		if strings.HasSuffix(host, "."+ugc) {
			return true
		}
	}
	return false
}
