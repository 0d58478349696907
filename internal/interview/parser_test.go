package interview

import (
	"reflect"
	"testing"
)

func TestParseQuestionLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{
			name: "numbered with dots",
			text: "1. What is a goroutine?\n2. Explain channels.\n3. What is a mutex?",
			max:  5,
			want: []string{"What is a goroutine?", "Explain channels.", "What is a mutex?"},
		},
		{
			name: "numbered with parens and blanks",
			text: "1) First question\n\n2) Second question\n\n",
			max:  5,
			want: []string{"First question", "Second question"},
		},
		{
			name: "truncates to max",
			text: "1. A\n2. B\n3. C\n4. D",
			max:  2,
			want: []string{"A", "B"},
		},
		{
			name: "unnumbered lines kept as-is",
			text: "Tell me about yourself\nWhy this role?",
			max:  5,
			want: []string{"Tell me about yourself", "Why this role?"},
		},
		{
			name: "empty input",
			text: "   \n\n ",
			max:  5,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuestionLines(tt.text, tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseQuestionLines() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseEvaluation(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantScore    int
		wantFeedback string
	}{
		{
			name:         "well formed",
			text:         "Score: 8\nFeedback: Solid answer with good depth.",
			wantScore:    8,
			wantFeedback: "Solid answer with good depth.",
		},
		{
			name:         "case insensitive labels",
			text:         "score: 5\nfeedback: Needs more detail.",
			wantScore:    5,
			wantFeedback: "Needs more detail.",
		},
		{
			name:         "missing score falls back to default",
			text:         "Feedback: Decent attempt.",
			wantScore:    7,
			wantFeedback: "Decent attempt.",
		},
		{
			name:         "score above range clamps to 10",
			text:         "Score: 15\nFeedback: Great.",
			wantScore:    10,
			wantFeedback: "Great.",
		},
		{
			name:         "missing feedback uses raw text",
			text:         "Score: 6\nThe answer was reasonable.",
			wantScore:    6,
			wantFeedback: "Score: 6\nThe answer was reasonable.",
		},
		{
			name:         "multiline feedback captured",
			text:         "Score: 9\nFeedback: Good structure.\nCovers edge cases too.",
			wantScore:    9,
			wantFeedback: "Good structure.\nCovers edge cases too.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, feedback := ParseEvaluation(tt.text, 7)
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
			if feedback != tt.wantFeedback {
				t.Errorf("feedback = %q, want %q", feedback, tt.wantFeedback)
			}
		})
	}
}
