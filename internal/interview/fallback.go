package interview

import "github.com/Abhishekjc19/fluentia/internal/models"

// Static question banks used whenever the Oracle is unavailable or returns
// nothing usable. Question generation must never fail the start operation.
var techFallbackQuestions = []string{
	"Explain the difference between var, let, and const in JavaScript.",
	"What is the purpose of closures in JavaScript? Provide an example.",
	"Describe the concept of RESTful API design and its key principles.",
	"What are the differences between SQL and NoSQL databases? When would you use each?",
	"Explain the concept of asynchronous programming and how Promises work in JavaScript.",
	"What is the difference between authentication and authorization?",
	"Describe the SOLID principles in object-oriented programming.",
	"How does Git branching work? Explain merge vs rebase.",
}

var hrFallbackQuestions = []string{
	"Tell me about yourself and your professional background.",
	"What motivates you in your career and what are your long-term goals?",
	"Describe a challenging situation you faced at work and how you resolved it.",
	"How do you handle conflicts or disagreements with team members?",
	"What is your approach to learning new technologies or skills?",
	"Why are you interested in this position and our company?",
	"Describe a time when you had to work under pressure to meet a deadline.",
	"What are your greatest strengths and areas for improvement?",
}

// FallbackBank returns the static bank for the given interview type.
func FallbackBank(interviewType models.InterviewType) []string {
	if interviewType == models.InterviewTypeTech {
		return techFallbackQuestions
	}
	return hrFallbackQuestions
}

// FallbackQuestions returns exactly count questions from the bank, cycling
// when count exceeds the bank size.
func FallbackQuestions(interviewType models.InterviewType, count int) []string {
	bank := FallbackBank(interviewType)
	questions := make([]string, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, bank[i%len(bank)])
	}
	return questions
}

// topUpFromBank pads a short question list to count using bank entries,
// preferring ones not already present.
func topUpFromBank(questions []string, interviewType models.InterviewType, count int) []string {
	if len(questions) >= count {
		return questions[:count]
	}
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		seen[q] = true
	}
	bank := FallbackBank(interviewType)
	for _, q := range bank {
		if len(questions) == count {
			return questions
		}
		if !seen[q] {
			questions = append(questions, q)
			seen[q] = true
		}
	}
	// Bank exhausted; cycle it until the list is full.
	for i := 0; len(questions) < count; i++ {
		questions = append(questions, bank[i%len(bank)])
	}
	return questions
}
