// Package plan builds multi-week study plans from the topic catalog and
// handles their serialized form.
package plan

import (
	"fmt"
	"strings"

	"github.com/abhisek/expertmaker/internal/catalog"
	"github.com/abhisek/expertmaker/internal/quiz"
)

// Pace sets the tone of a plan's weekly summaries and lesson narrative.
type Pace string

const (
	PaceBalanced    Pace = "balanced"
	PaceIntensive   Pace = "intensive"
	PaceFoundations Pace = "foundations"
)

// Paces lists every pace in display order.
var Paces = []Pace{PaceBalanced, PaceIntensive, PaceFoundations}

// ParsePace converts user input into a Pace.
func ParsePace(s string) (Pace, error) {
	p := Pace(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Paces {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown pace %q", s)
}

// Description returns the sentence that opens every week summary.
func (p Pace) Description() string {
	switch p {
	case PaceIntensive:
		return "Accelerate outcomes with extended sessions and deep dives into production scenarios."
	case PaceFoundations:
		return "Focus on core fundamentals and deliberate practice drills to cement understanding."
	default:
		return "Balance new concepts with consistent repetition and reflection."
	}
}

// Session is one focus block: a single topic and focus area for a week.
type Session struct {
	ID              string            `json:"id"`
	TopicID         string            `json:"topicId"`
	TopicTitle      string            `json:"topicTitle"`
	Focus           catalog.FocusArea `json:"focus"`
	DurationMinutes int               `json:"durationMinutes"`
	Summary         string            `json:"summary"`
	Quiz            []quiz.Question   `json:"quiz"`
}

// Week groups the sessions scheduled for one calendar week.
type Week struct {
	ID         string    `json:"id"`
	WeekNumber int       `json:"weekNumber"`
	Theme      string    `json:"theme"`
	Summary    string    `json:"summary"`
	Sessions   []Session `json:"sessions"`
}

// ExpertPlan is the aggregate root. After generation only the completion
// set, personal note, pace and auto-complete flag change.
type ExpertPlan struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	CreatedAt           string   `json:"createdAt"`
	Topics              []string `json:"topics"`
	Weeks               int      `json:"weeks"`
	HoursPerWeek        int      `json:"hoursPerWeek"`
	WeeksData           []Week   `json:"weeksData"`
	CompletedSessionIDs []string `json:"completedSessionIds"`
	Pace                Pace     `json:"pace"`
	PersonalNote        string   `json:"personalNote"`
	AutoCompleteOnPass  bool     `json:"autoCompleteOnPass"`
}

// Request is the learner's input to plan generation.
type Request struct {
	Topics       []string `validate:"required,min=1,dive,required"`
	Weeks        int      `validate:"min=1,max=12"`
	HoursPerWeek int      `validate:"min=2,max=20"`
	Pace         Pace     `validate:"oneof=balanced intensive foundations"`
}
