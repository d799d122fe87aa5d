package report

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kdipaolo/handover-flow/internal/transcript"
)

func TestOutputPath(t *testing.T) {
	got := OutputPath("data/output", "Provo River Turnover")
	want := filepath.Join("data/output", "handover_analysis_Provo River Turnover.docx")
	if got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}

func TestAnswerBlocks(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   [][]string
	}{
		{
			name:   "single paragraph",
			answer: "The customer is Grayback Construction.",
			want:   [][]string{{"The customer is Grayback Construction."}},
		},
		{
			name:   "blank line splits blocks",
			answer: "1. Expert interpretation\nThe schedule starts October 13.\n\n2. Supporting quotes\nBrian: 'we mobilize on the 13th'",
			want: [][]string{
				{"1. Expert interpretation", "The schedule starts October 13."},
				{"2. Supporting quotes", "Brian: 'we mobilize on the 13th'"},
			},
		},
		{
			name:   "bullets normalized",
			answer: "- cold weather\n* torch on wood",
			want:   [][]string{{"• cold weather", "• torch on wood"}},
		},
		{
			name:   "rules dropped",
			answer: "first\n---\nsecond",
			want:   [][]string{{"first"}, {"second"}},
		},
		{
			name:   "empty answer",
			answer: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := answerBlocks(tt.answer)
			if len(got) != len(tt.want) {
				t.Fatalf("answerBlocks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if strings.Join(got[i], "|") != strings.Join(tt.want[i], "|") {
					t.Errorf("block %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCleanMarkdownInline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**bold** text", "bold text"},
		{"__also bold__", "also bold"},
		{"code `here`", "code here"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := cleanMarkdownInline(tt.in); got != tt.want {
			t.Errorf("cleanMarkdownInline(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSpeakerLine(t *testing.T) {
	got := speakerLine([]transcript.Speaker{
		{Name: "Brian Rich", Turns: 3},
		{Name: "Earl Faraguna", Turns: 1},
	})
	want := "Speaker turns: Brian Rich (3), Earl Faraguna (1)"
	if got != want {
		t.Errorf("speakerLine() = %q, want %q", got, want)
	}

	if got := speakerLine(nil); got != "" {
		t.Errorf("speakerLine(nil) = %q, want empty", got)
	}
}

// Writes a real report and reads it back through the docx loader, so the
// written sections can be checked for order and content.
func TestWriteRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "handover_analysis_test.docx")

	meta := Meta{
		Project: "Dillworth Phase 1",
		Model:   "gemini-2.5-pro",
		Date:    time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC),
		Format:  transcript.FormatText,
		Speakers: []transcript.Speaker{
			{Name: "Brian Rich", Turns: 2},
		},
	}
	sections := []Section{
		{Question: "Who was a part of the meeting?", Answer: "Brian Rich and Earl Faraguna attended."},
		{Question: "What are the payment terms?", Err: errors.New("generate content: connection refused")},
		{Question: "Are subcontractors identified and scheduled?", Answer: "**Yes**, two subcontractors."},
	}

	if err := Write(meta, sections, outputPath); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	tr, err := transcript.Load(outputPath)
	if err != nil {
		t.Fatalf("reading written report: %v", err)
	}
	text := tr.Text

	wantInOrder := []string{
		"FLYNN CONSTRUCTION – HANDOVER ANALYSIS",
		"Project: Dillworth Phase 1",
		"Model: gemini-2.5-pro",
		"Date: 2026-08-25 10:30",
		"Speaker turns: Brian Rich (2)",
		"Q1: Who was a part of the meeting?",
		"Brian Rich and Earl Faraguna attended.",
		"Q2: What are the payment terms?",
		"ERROR: generate content: connection refused",
		"Q3: Are subcontractors identified and scheduled?",
		"Yes, two subcontractors.",
	}

	pos := 0
	for _, want := range wantInOrder {
		idx := strings.Index(text[pos:], want)
		if idx < 0 {
			t.Fatalf("report text missing %q after position %d\nfull text:\n%s", want, pos, text)
		}
		pos += idx + len(want)
	}
}
