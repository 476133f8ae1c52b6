package synthesis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/score"
)

type fakeProvider struct {
	text string
	err  error
}

func (f *fakeProvider) Name() string                        { return "fake" }
func (f *fakeProvider) IsAvailable(_ context.Context) bool  { return f.err == nil }
func (f *fakeProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Text: f.text, Model: "fake-model"}, nil
}

func sampleEvidence() []model.Evidence {
	return []model.Evidence{
		{Publisher: "Reuters", Snippet: "confirmed by officials", CredibilityScore: 92, Kind: model.EvidenceKindNews},
		{Publisher: "PolitiFact", Snippet: "rated true", CredibilityScore: 95, Kind: model.EvidenceKindClaimReview},
	}
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{
			name: "well formed",
			text: "VERDICT: mostly-true\nSCORE: 78\nREASONING: Evidence 1 and 2 corroborate the claim.\nWARNINGS: none",
		},
		{
			name: "warnings listed",
			text: "VERDICT: mixed\nSCORE: 55\nREASONING: Partial support.\nWARNINGS: single source; dated coverage",
		},
		{
			name:    "missing score",
			text:    "VERDICT: true\nREASONING: ok\nWARNINGS: none",
			wantErr: true,
		},
		{
			name:    "unknown verdict",
			text:    "VERDICT: probably\nSCORE: 70\nREASONING: ok\nWARNINGS: none",
			wantErr: true,
		},
		{
			name:    "score out of range",
			text:    "VERDICT: true\nSCORE: 140\nREASONING: ok\nWARNINGS: none",
			wantErr: true,
		},
		{
			name:    "prose instead of fields",
			text:    "The claim appears to be broadly accurate based on the sources.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseResponseWarnings(t *testing.T) {
	got, err := parseResponse("VERDICT: mixed\nSCORE: 50\nREASONING: ok\nWARNINGS: a; b ;; c")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if len(got.Warnings) != len(want) {
		t.Fatalf("warnings = %v, want %v", got.Warnings, want)
	}
	for i := range want {
		if got.Warnings[i] != want[i] {
			t.Errorf("warnings[%d] = %q, want %q", i, got.Warnings[i], want[i])
		}
	}
}

func TestSynthesizeBlendsScores(t *testing.T) {
	provider := &fakeProvider{
		text: "VERDICT: mostly-true\nSCORE: 80\nREASONING: Both sources corroborate.\nWARNINGS: none",
	}
	engine := NewEngine(provider)
	weighted := score.Result{Score: 60}

	out := engine.Synthesize(context.Background(), "claim", "journalism", sampleEvidence(), weighted)

	if out.Method != model.MethodAISynthesis {
		t.Fatalf("Method = %q, want %q", out.Method, model.MethodAISynthesis)
	}
	// round(80*0.6 + 60*0.4) = 72
	if out.Score != 72 {
		t.Errorf("Score = %d, want 72", out.Score)
	}
	if out.Verdict != model.VerdictMostlyTrue {
		t.Errorf("Verdict = %s, want mostly-true", out.Verdict)
	}
}

func TestSynthesizeNilProviderFallsBack(t *testing.T) {
	engine := NewEngine(nil)
	out := engine.Synthesize(context.Background(), "claim", "journalism", sampleEvidence(), score.Result{Score: 40})

	if out.Method != model.MethodStatistical {
		t.Fatalf("Method = %q, want %q", out.Method, model.MethodStatistical)
	}
	if out.Score != 40 {
		t.Errorf("Score = %d, want the weighted score 40", out.Score)
	}
	if len(out.Warnings) == 0 {
		t.Error("fallback must warn that synthesis was unavailable")
	}
}

func TestSynthesizeCompletionErrorFallsBack(t *testing.T) {
	engine := NewEngine(&fakeProvider{err: errors.New("upstream 503")})
	out := engine.Synthesize(context.Background(), "claim", "journalism", sampleEvidence(), score.Result{Score: 55})

	if out.Method != model.MethodStatistical {
		t.Fatalf("Method = %q, want %q", out.Method, model.MethodStatistical)
	}
	found := false
	for _, w := range out.Warnings {
		if strings.Contains(w, "upstream 503") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings %v should carry the completion failure", out.Warnings)
	}
}

func TestSynthesizeMalformedResponseFallsBack(t *testing.T) {
	engine := NewEngine(&fakeProvider{text: "I think the claim is true."})
	out := engine.Synthesize(context.Background(), "claim", "journalism", sampleEvidence(), score.Result{Score: 55})

	if out.Method != model.MethodStatistical {
		t.Fatalf("Method = %q, want %q", out.Method, model.MethodStatistical)
	}
}

func TestSynthesizeNoEvidenceSkipsProvider(t *testing.T) {
	provider := &fakeProvider{text: "VERDICT: true\nSCORE: 99\nREASONING: x\nWARNINGS: none"}
	engine := NewEngine(provider)

	out := engine.Synthesize(context.Background(), "claim", "journalism", nil, score.Result{Score: 0})

	if out.Method != model.MethodStatistical {
		t.Fatalf("Method = %q, want %q", out.Method, model.MethodStatistical)
	}
	if out.Verdict != model.VerdictUnverified {
		t.Errorf("Verdict = %s, want unverified", out.Verdict)
	}
}

func TestBuildPromptCapsEvidence(t *testing.T) {
	evidence := make([]model.Evidence, 12)
	for i := range evidence {
		evidence[i] = model.Evidence{Publisher: "P", Snippet: "s", Kind: model.EvidenceKindNews}
	}

	prompt := buildPrompt("claim", "journalism", evidence)

	if strings.Contains(prompt, "9. [") {
		t.Error("prompt should quote at most 8 evidence items")
	}
	if !strings.Contains(prompt, "VERDICT:") {
		t.Error("prompt must request the labeled format")
	}
}
