package synthesis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// aiResponse is the parsed labeled-field completion.
type aiResponse struct {
	Verdict   model.Verdict
	Score     int
	Reasoning string
	Warnings  []string
}

var validVerdicts = map[model.Verdict]bool{
	model.VerdictTrue:       true,
	model.VerdictMostlyTrue: true,
	model.VerdictMixed:      true,
	model.VerdictMisleading: true,
	model.VerdictFalse:      true,
	model.VerdictUnverified: true,
}

// parseResponse parses the strict labeled-field format. Any missing
// field, unknown verdict, or out-of-range score is an error; the caller
// treats every parse error as a synthesis failure.
func parseResponse(text string) (*aiResponse, error) {
	fields := map[string]string{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, label := range []string{"VERDICT", "SCORE", "REASONING", "WARNINGS"} {
			prefix := label + ":"
			if strings.HasPrefix(line, prefix) {
				fields[label] = strings.TrimSpace(strings.TrimPrefix(line, prefix))
			}
		}
	}

	for _, label := range []string{"VERDICT", "SCORE", "REASONING", "WARNINGS"} {
		if _, ok := fields[label]; !ok {
			return nil, fmt.Errorf("response missing %s field", label)
		}
	}

	verdict := model.Verdict(strings.ToLower(fields["VERDICT"]))
	if !validVerdicts[verdict] {
		return nil, fmt.Errorf("unknown verdict %q", fields["VERDICT"])
	}

	rawScore, err := strconv.Atoi(fields["SCORE"])
	if err != nil {
		return nil, fmt.Errorf("parse score %q: %w", fields["SCORE"], err)
	}
	if rawScore < 0 || rawScore > 100 {
		return nil, fmt.Errorf("score %d out of range", rawScore)
	}

	if fields["REASONING"] == "" {
		return nil, fmt.Errorf("empty reasoning")
	}

	var warnings []string
	if w := fields["WARNINGS"]; !strings.EqualFold(w, "none") && w != "" {
		for _, part := range strings.Split(w, ";") {
			part = strings.TrimSpace(part)
			if part != "" {
				warnings = append(warnings, part)
			}
		}
	}

	return &aiResponse{
		Verdict:   verdict,
		Score:     rawScore,
		Reasoning: fields["REASONING"],
		Warnings:  warnings,
	}, nil
}
