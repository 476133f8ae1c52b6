// Package extract turns raw claim text into compact source queries.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// stopWords are stripped when compacting a claim into an API query.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "as": true,
	"that": true, "this": true, "these": true, "those": true,
	"it": true, "its": true, "and": true, "or": true, "but": true,
	"has": true, "have": true, "had": true, "will": true, "would": true,
	"there": true, "their": true, "they": true, "which": true,
}

// BuildQuery compacts claim text into a query no longer than maxLen:
// first sentence only, stop words stripped, truncated at a word boundary.
// Different sources pass different caps since upstream APIs accept
// different query lengths.
func BuildQuery(text string, maxLen int) string {
	text = PlainText(text)
	sentence := FirstSentence(text)

	words := strings.Fields(sentence)
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if stopWords[strings.ToLower(strings.Trim(word, ".,;:!?\"'()"))] {
			continue
		}
		kept = append(kept, strings.Trim(word, ".,;:!?\"'()"))
	}
	if len(kept) == 0 {
		kept = words
	}

	query := strings.Join(kept, " ")
	if maxLen <= 0 || len(query) <= maxLen {
		return query
	}

	// Truncate at the last whole word that fits
	truncated := query[:maxLen]
	if idx := strings.LastIndexByte(truncated, ' '); idx > 0 {
		truncated = truncated[:idx]
	}
	return truncated
}

// FirstSentence returns the first sentence-like span of the text. Claims
// are usually a single assertion; everything after the first terminator is
// context the source APIs do not need.
func FirstSentence(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))

	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			// Avoid splitting on abbreviations and decimals
			if i+1 < len(text) && text[i+1] != ' ' && text[i+1] != '\t' {
				continue
			}
			candidate := strings.TrimSpace(text[:i+1])
			if len(candidate) >= 20 {
				return candidate
			}
		}
	}
	return text
}

// PlainText strips HTML markup when the caller pasted article markup
// rather than plain text. Non-HTML input passes through unchanged.
func PlainText(text string) string {
	if !strings.Contains(text, "<") || !strings.Contains(text, ">") {
		return text
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				buf.WriteString(trimmed)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if out := strings.TrimSpace(buf.String()); out != "" {
		return out
	}
	return text
}

// Truncate shortens a quote to at most n bytes at a word boundary,
// appending an ellipsis when anything was cut.
func Truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	cut := text[:n]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
