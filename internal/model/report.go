package model

import "time"

// Verdict is the final categorical judgment on a claim.
type Verdict string

const (
	VerdictTrue       Verdict = "true"
	VerdictMostlyTrue Verdict = "mostly-true"
	VerdictMixed      Verdict = "mixed"
	VerdictMisleading Verdict = "misleading"
	VerdictFalse      Verdict = "false"
	VerdictUnverified Verdict = "unverified"
)

// TierBreakdown is the outcome of one evidence source for one request.
// It is created once per phase, never mutated after the phase completes,
// and owned by the phase runner until handed to the aggregator.
type TierBreakdown struct {
	Tier             string        `json:"tier"`
	Success          bool          `json:"success"`
	Confidence       int           `json:"confidence"` // 0-100, aggregate of its own evidence
	Evidence         []Evidence    `json:"evidence,omitempty"`
	Elapsed          time.Duration `json:"-"`
	ProcessingTimeMs int64         `json:"processing_time_ms"`
	EscalationReason string        `json:"escalation_reason,omitempty"`
}

// FailedTier builds the normalized failure shape every phase error is
// converted into: zero confidence, empty evidence, a reason string.
func FailedTier(tier, reason string, elapsed time.Duration) TierBreakdown {
	return TierBreakdown{
		Tier:             tier,
		Success:          false,
		Confidence:       0,
		Elapsed:          elapsed,
		ProcessingTimeMs: elapsed.Milliseconds(),
		EscalationReason: reason,
	}
}

// FactCheckReport is the final unit of output: one per request, read-only
// after the assembler produces it.
type FactCheckReport struct {
	ID             string         `json:"id"`
	OriginalText   string         `json:"original_text"`
	FinalVerdict   Verdict        `json:"final_verdict"`
	FinalScore     int            `json:"final_score"` // 0-100
	Reasoning      string         `json:"reasoning"`
	Evidence       []Evidence     `json:"evidence"` // Post-dedup, post-validation
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	Metadata       ReportMetadata `json:"metadata"`
}

// ScoreBreakdown explains how the final score was assembled.
type ScoreBreakdown struct {
	FinalScoreFormula string        `json:"final_score_formula"`
	Metrics           []ScoreMetric `json:"metrics"`
}

// ScoreMetric is one weighted input to the final score, with transparent
// reasoning so the number can be audited.
type ScoreMetric struct {
	Name        string  `json:"name"`
	Score       int     `json:"score"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
	Reasoning   string  `json:"reasoning"`
}

// SourceCounts buckets the consulted sources by quality.
type SourceCounts struct {
	Total           int `json:"total"`
	HighCredibility int `json:"high_credibility"`
	Conflicting     int `json:"conflicting"`
}

// TierSummary is the per-phase entry recorded in report metadata.
type TierSummary struct {
	Tier             string `json:"tier"`
	Success          bool   `json:"success"`
	Confidence       int    `json:"confidence"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
	EvidenceCount    int    `json:"evidence_count"`
}

// ReportMetadata records how the report was produced.
type ReportMetadata struct {
	MethodUsed       string        `json:"method_used"` // "ai-synthesis" or "statistical-fallback"
	ProcessingTimeMs int64         `json:"processing_time_ms"`
	APIsUsed         []string      `json:"apis_used"`
	SourcesConsulted SourceCounts  `json:"sources_consulted"`
	Warnings         []string      `json:"warnings,omitempty"`
	TierBreakdown    []TierSummary `json:"tier_breakdown"`
}

const (
	// MethodAISynthesis marks reports whose verdict came from the
	// generative path (blended with the weighted score).
	MethodAISynthesis = "ai-synthesis"
	// MethodStatistical marks reports produced entirely by the
	// deterministic fallback.
	MethodStatistical = "statistical-fallback"
)
