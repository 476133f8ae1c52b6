package model

import (
	"errors"
	"strings"
)

// DefaultPublishingContext is assumed when a request does not set one.
const DefaultPublishingContext = "journalism"

// ErrEmptyText is the only fatal input error: requests without claim text
// are rejected before any work begins.
var ErrEmptyText = errors.New("claim text is required")

// VerifyRequest is the inbound shape of one verification request.
type VerifyRequest struct {
	Text              string `json:"text"`
	PublishingContext string `json:"publishing_context,omitempty"`
}

// Validate normalizes the request and rejects empty claim text.
func (r *VerifyRequest) Validate() error {
	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" {
		return ErrEmptyText
	}
	if strings.TrimSpace(r.PublishingContext) == "" {
		r.PublishingContext = DefaultPublishingContext
	}
	return nil
}
