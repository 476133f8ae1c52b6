package synthesis

import (
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

const (
	// maxPromptEvidence caps how many items are quoted to the model.
	maxPromptEvidence = 8
	// maxSnippetLen truncates long excerpts in the prompt.
	maxSnippetLen = 300
)

const systemPrompt = `You are a fact-checking analyst. You judge claims strictly from the evidence provided, never from your own knowledge. Respond only in the exact labeled format requested.`

// buildPrompt renders the claim, its publishing context, and the top
// evidence into the completion prompt. Evidence order is preserved from
// the aggregator, which already sorts by credibility.
func buildPrompt(claim, publishingContext string, evidence []model.Evidence) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Claim under review (publishing context: %s):\n%s\n\n", publishingContext, claim)

	b.WriteString("Evidence:\n")
	n := len(evidence)
	if n > maxPromptEvidence {
		n = maxPromptEvidence
	}
	for i := 0; i < n; i++ {
		ev := evidence[i]
		snippet := ev.Snippet
		if len(snippet) > maxSnippetLen {
			snippet = snippet[:maxSnippetLen] + "..."
		}
		fmt.Fprintf(&b, "%d. [%s, credibility %d] %s: %q\n",
			i+1, ev.Kind, ev.CredibilityScore, ev.Publisher, snippet)
	}

	b.WriteString(`
Weigh the evidence and answer in exactly this format, one field per line:
VERDICT: one of true, mostly-true, mixed, misleading, false, unverified
SCORE: an integer from 0 to 100
REASONING: one paragraph citing the numbered evidence
WARNINGS: semicolon-separated caveats, or "none"
`)

	return b.String()
}
