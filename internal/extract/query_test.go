package extract

import (
	"strings"
	"testing"
)

func TestBuildQueryStripsStopWords(t *testing.T) {
	got := BuildQuery("The earth is flat and the moon is made of cheese.", 0)

	for _, stop := range []string{"the", "is", "and", "of"} {
		for _, word := range strings.Fields(got) {
			if strings.EqualFold(word, stop) {
				t.Errorf("query %q still contains stop word %q", got, stop)
			}
		}
	}
	if !strings.Contains(got, "earth") || !strings.Contains(got, "cheese") {
		t.Errorf("query %q lost content words", got)
	}
}

func TestBuildQueryRespectsCap(t *testing.T) {
	long := strings.Repeat("vaccination causes autism according researchers ", 10)

	got := BuildQuery(long, 80)

	if len(got) > 80 {
		t.Errorf("len = %d, want <= 80", len(got))
	}
	if strings.HasSuffix(got, " ") {
		t.Error("query should end at a word boundary, not a space")
	}
}

func TestBuildQueryAllStopWords(t *testing.T) {
	got := BuildQuery("it is that which was", 0)
	if got == "" {
		t.Error("a query of pure stop words should fall back to the raw words")
	}
}

func TestFirstSentence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "takes the first sentence",
			text: "The earth orbits the sun every year. This was disputed for centuries.",
			want: "The earth orbits the sun every year.",
		},
		{
			name: "skips decimals",
			text: "Inflation reached 9.1 percent in June according to the report. More context follows.",
			want: "Inflation reached 9.1 percent in June according to the report.",
		},
		{
			name: "skips short fragments",
			text: "No. The senator never voted for the bill in question. Extra detail.",
			want: "No. The senator never voted for the bill in question.",
		},
		{
			name: "no terminator returns everything",
			text: "a claim without any sentence terminator at all",
			want: "a claim without any sentence terminator at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstSentence(tt.text); got != tt.want {
				t.Errorf("FirstSentence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	markup := `<html><head><style>.x{color:red}</style></head>
<body><p>The minister <b>denied</b> the allegation.</p>
<script>alert("x")</script></body></html>`

	got := PlainText(markup)

	if strings.Contains(got, "<") || strings.Contains(got, "alert") || strings.Contains(got, "color") {
		t.Errorf("PlainText left markup behind: %q", got)
	}
	if !strings.Contains(got, "denied the allegation") {
		t.Errorf("PlainText lost content: %q", got)
	}
}

func TestPlainTextPassthrough(t *testing.T) {
	plain := "2 < 3 is a true statement"
	if got := PlainText(plain); got != plain {
		t.Errorf("non-markup input changed: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 100); got != "short" {
		t.Errorf("Truncate should not touch short text, got %q", got)
	}

	got := Truncate("one two three four five", 13)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text should end with ellipsis: %q", got)
	}
	if strings.Contains(got, "three four") {
		t.Errorf("Truncate kept too much: %q", got)
	}
}
