// Package cache provides report caching so repeated verification of the
// same text is served without re-querying the evidence sources.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Cache stores completed reports keyed by request identity.
type Cache interface {
	// Get returns the cached report for key, or (nil, false) on a miss.
	Get(ctx context.Context, key string) (*model.FactCheckReport, bool)

	// Set stores the report under key for the backend's configured TTL.
	Set(ctx context.Context, key string, report *model.FactCheckReport) error

	// Close releases backend resources.
	Close() error
}

// Key derives the cache key from the request identity: the normalized
// text plus the publishing context, hashed so keys have a fixed size
// and never leak the claim text into backend tooling.
func Key(text, publishingContext string) string {
	h := sha256.New()
	h.Write([]byte(strings.TrimSpace(strings.ToLower(text))))
	h.Write([]byte{0})
	h.Write([]byte(publishingContext))
	return "report:" + hex.EncodeToString(h.Sum(nil))
}
