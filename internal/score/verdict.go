package score

import (
	"fmt"

	"github.com/claimlens/claimlens/internal/model"
)

// VerdictResult is a deterministic verdict with templated reasoning.
type VerdictResult struct {
	Verdict   model.Verdict
	Reasoning string
	Warnings  []string
}

// DeriveVerdict maps the weighted score and the evidence pool to a
// verdict without any generative input. The thresholds require both a
// score band and minimum corroboration, so a single lucky source never
// produces a strong verdict.
func DeriveVerdict(weighted int, evidence []model.Evidence) VerdictResult {
	total := len(evidence)
	high := 0
	for _, ev := range evidence {
		if effectiveCredibility(ev) >= 80 {
			high++
		}
	}

	var verdict model.Verdict
	switch {
	case weighted >= 85 && high >= 2:
		verdict = model.VerdictTrue
	case weighted >= 70 && total >= 3:
		verdict = model.VerdictMostlyTrue
	case weighted >= 50:
		verdict = model.VerdictMixed
	case weighted >= 30:
		verdict = model.VerdictMisleading
	case weighted >= 15 && total >= 1:
		verdict = model.VerdictFalse
	default:
		verdict = model.VerdictUnverified
	}

	return VerdictResult{
		Verdict:   verdict,
		Reasoning: verdictReasoning(verdict, weighted, total, high),
		Warnings:  []string{"AI synthesis unavailable; verdict derived statistically from source scores"},
	}
}

func verdictReasoning(verdict model.Verdict, weighted, total, high int) string {
	base := fmt.Sprintf("Weighted evidence score of %d across %d deduplicated sources (%d high-credibility).", weighted, total, high)
	switch verdict {
	case model.VerdictTrue:
		return base + " Multiple high-credibility sources corroborate the claim."
	case model.VerdictMostlyTrue:
		return base + " Broad corroboration with minor gaps in source quality."
	case model.VerdictMixed:
		return base + " Evidence is partially supportive but not conclusive."
	case model.VerdictMisleading:
		return base + " Available evidence contradicts or undercuts the claim's framing."
	case model.VerdictFalse:
		return base + " Retrieved sources dispute the claim."
	default:
		return base + " Insufficient evidence was retrieved to support any judgment."
	}
}
