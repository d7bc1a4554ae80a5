// Package quiz grades multiple-choice attempts and extracts the missed
// questions as weaknesses.
package quiz

import (
	"math"
)

// Question is a graded multiple-choice item. Plans carry their own copy so
// grading never consults the catalog.
type Question struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Rationale   string   `json:"rationale"`
	DocLink     string   `json:"docLink"`
}

// Weakness is a snapshot of a missed question and its remediation.
type Weakness struct {
	Question  string `json:"question"`
	Rationale string `json:"rationale"`
	DocLink   string `json:"docLink"`
}

// Responses maps question IDs to the selected option index.
type Responses map[string]int

// Result is the outcome of grading one attempt.
type Result struct {
	Score      int
	Correct    int
	Total      int
	Weaknesses []Weakness
}

// Grade scores responses against questions. Unanswered questions count as
// missed. Weaknesses follow question order. An empty quiz scores 0.
func Grade(questions []Question, responses Responses) Result {
	res := Result{
		Total:      len(questions),
		Weaknesses: []Weakness{},
	}
	for _, q := range questions {
		if choice, ok := responses[q.ID]; ok && choice == q.AnswerIndex {
			res.Correct++
			continue
		}
		res.Weaknesses = append(res.Weaknesses, Weakness{
			Question:  q.Question,
			Rationale: q.Rationale,
			DocLink:   q.DocLink,
		})
	}
	res.Score = int(math.Round(float64(res.Correct) / float64(max(res.Total, 1)) * 100))
	return res
}

// Complete reports whether every question has a response.
func Complete(questions []Question, responses Responses) bool {
	for _, q := range questions {
		if _, ok := responses[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Passed reports whether score meets the pass threshold.
func Passed(score, passScore int) bool {
	return score >= passScore
}
