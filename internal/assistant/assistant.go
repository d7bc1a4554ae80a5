// Package assistant answers study questions offline from the learner's plan
// and recent weaknesses.
package assistant

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/expertmaker/internal/plan"
)

// Context is what the assistant knows about the learner.
type Context struct {
	PlanSummary      string
	RecentWeaknesses []string
}

var lower = cases.Lower(language.English)

// Reply returns advice for question. Keyword hints are added for resource
// and quiz questions, and recent weaknesses are always surfaced.
func Reply(question string, c Context) string {
	q := lower.String(question)

	parts := make([]string, 0, 5)
	if c.PlanSummary != "" {
		parts = append(parts, fmt.Sprintf("Plan focus: %s.", c.PlanSummary))
	} else {
		parts = append(parts, "Keep progressing through your scheduled sessions.")
	}
	if strings.Contains(q, "resource") {
		parts = append(parts, "Review the session resources and official documentation linked in your plan.")
	}
	if len(c.RecentWeaknesses) > 0 {
		parts = append(parts, fmt.Sprintf("Focus on these improvement areas: %s.", strings.Join(c.RecentWeaknesses, ", ")))
	}
	if strings.Contains(q, "quiz") || strings.Contains(q, "test") {
		parts = append(parts, "Revisit diagnostic questions and articulate the rationale for each answer to reinforce understanding.")
	}
	parts = append(parts, "Break concepts into smaller drills and commit them to memory with spaced reviews.")
	return strings.Join(parts, "\n\n")
}

// PlanSummary condenses a plan into one line for the assistant. A nil plan
// yields "".
func PlanSummary(p *plan.ExpertPlan) string {
	if p == nil {
		return ""
	}
	weeks := make([]string, len(p.WeeksData))
	for i, w := range p.WeeksData {
		sessions := make([]string, len(w.Sessions))
		for j, s := range w.Sessions {
			sessions[j] = s.TopicTitle + " — " + s.Focus.Title
		}
		weeks[i] = strings.Join(sessions, ", ")
	}
	return fmt.Sprintf("Weeks: %d, Pace: %s, Topics: %d. Focus: %s",
		p.Weeks, p.Pace, len(p.Topics), strings.Join(weeks, "; "))
}
