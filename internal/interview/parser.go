package interview

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	enumerationRe = regexp.MustCompile(`^\d+[.)]\s*`)
	scoreRe       = regexp.MustCompile(`(?i)Score:\s*(\d+)`)
	feedbackRe    = regexp.MustCompile(`(?is)Feedback:\s*(.+)`)
)

// ParseQuestionLines splits Oracle output into question strings: one per
// line, leading enumeration markers ("1.", "2)") stripped, blanks dropped,
// truncated to max.
func ParseQuestionLines(text string, max int) []string {
	questions := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = enumerationRe.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		questions = append(questions, line)
		if len(questions) == max {
			break
		}
	}
	return questions
}

// ParseEvaluation extracts a score and feedback from the Oracle's two-line
// evaluation format. A missing or unparseable score falls back to
// defaultScore; missing feedback falls back to the whole raw text.
func ParseEvaluation(text string, defaultScore int) (int, string) {
	score := defaultScore
	if m := scoreRe.FindStringSubmatch(text); m != nil {
		if parsed, err := strconv.Atoi(m[1]); err == nil {
			score = parsed
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	feedback := strings.TrimSpace(text)
	if m := feedbackRe.FindStringSubmatch(text); m != nil {
		feedback = strings.TrimSpace(m[1])
	}
	return score, feedback
}
