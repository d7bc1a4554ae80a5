// Package lesson lays out a study session as a timed deep-work timeline.
package lesson

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/expertmaker/internal/plan"
)

// Step is one block of the session timeline.
type Step struct {
	ID          string
	Title       string
	Minutes     int
	Focus       string
	Description string
	Actions     []string
}

var lower = cases.Lower(language.English)

func share(total int, frac float64, floor int) int {
	return max(floor, int(math.Round(float64(total)*frac)))
}

// Build returns the timeline for s: a priming block, one module per study
// guide section, a practice lab, and a retrospective. Minimums per block mean
// the sum can exceed the session duration for short sessions.
func Build(s plan.Session) []Step {
	total := s.DurationMinutes
	guide := s.Focus.StudyGuide
	sections := guide.Sections

	prep := share(total, 0.2, 15)
	concept := share(total, 0.35, 20)
	practice := share(total, 0.3, 25)
	reflection := max(10, total-(prep+concept+practice))
	perSection := concept
	if len(sections) > 0 {
		perSection = max(15, int(math.Round(float64(concept)/float64(len(sections)))))
	}

	preview := "List prerequisite knowledge to refresh so the session stays focused on new insight."
	if len(sections) > 0 {
		preview = fmt.Sprintf("Preview the %d deep-dive modules and highlight prerequisites to refresh.", len(sections))
	}
	reading := "Identify authoritative docs, RFCs, or runbooks you will consult during execution."
	if res := s.Focus.Resources; len(res) > 0 {
		titles := make([]string, len(res))
		for i, r := range res {
			titles[i] = r.Title
		}
		reading = fmt.Sprintf("Skim reference material (%s) to map where you'll verify assumptions.", strings.Join(titles, ", "))
	}

	steps := []Step{{
		ID:          "prime",
		Title:       "Prime the Context",
		Minutes:     prep,
		Focus:       "Orient",
		Description: "Anchor yourself in the scenario, success criteria, and unknowns before diving into implementation.",
		Actions: []string{
			"Translate the lesson overview into a problem statement and explicit success metrics.",
			preview,
			reading,
		},
	}}

	for i, sec := range sections {
		actions := sec.Bullets
		if len(actions) == 0 {
			actions = []string{
				fmt.Sprintf("Document the moving parts involved in %s and how they coordinate.", lower.String(sec.Title)),
				"Draft a concise runbook entry capturing triggers, guardrails, and escalation paths.",
			}
		}
		steps = append(steps, Step{
			ID:          fmt.Sprintf("module-%d", i+1),
			Title:       fmt.Sprintf("Module %d: %s", i+1, sec.Title),
			Minutes:     perSection,
			Focus:       "Concept Deep Dive",
			Description: sec.Detail,
			Actions:     actions,
		})
	}

	drills := []string{
		"Design a realistic experiment that proves the concept end-to-end.",
		"Capture logs, metrics, or screenshots that demonstrate success criteria being met.",
	}
	if len(guide.Practice) > 0 {
		drills = make([]string, len(guide.Practice))
		for i, d := range guide.Practice {
			drills[i] = d.Title + ": " + strings.Join(d.Steps, " → ")
		}
	}
	steps = append(steps, Step{
		ID:          "practice",
		Title:       "Deliberate Practice Lab",
		Minutes:     practice,
		Focus:       "Apply",
		Description: "Convert conceptual clarity into reliable execution by shipping tangible artifacts and stress-testing assumptions.",
		Actions:     drills,
	})

	prompts := guide.Reflection
	if len(prompts) == 0 {
		prompts = []string{
			"Record the heuristics or mental models you solidified during the session.",
			"List the leading indicators that will tell you the capability is production ready.",
		}
	}
	closing := make([]string, 0, len(prompts)+2)
	closing = append(closing, prompts...)
	closing = append(closing,
		"Outline how you'll tackle the capstone challenge: "+guide.ProjectPrompt,
		fmt.Sprintf("Schedule the %d-question assessment to validate mastery within 24 hours.", len(s.Quiz)),
	)
	steps = append(steps, Step{
		ID:          "reflection",
		Title:       "Retrospective & Knowledge Integration",
		Minutes:     reflection,
		Focus:       "Solidify",
		Description: "Synthesize insights, identify remaining risks, and plot the next iteration to keep momentum.",
		Actions:     closing,
	})

	return steps
}

// TotalMinutes sums the step durations.
func TotalMinutes(steps []Step) int {
	n := 0
	for _, s := range steps {
		n += s.Minutes
	}
	return n
}

// PaceNarrative describes how a pace shapes a session.
func PaceNarrative(p plan.Pace) string {
	switch p {
	case plan.PaceIntensive:
		return "Accelerate mastery by committing to extended deep-work blocks and rapid feedback cycles."
	case plan.PaceFoundations:
		return "Slow the cadence slightly so fundamentals are rock-solid before layering advanced tactics."
	default:
		return "Blend conceptual study with hands-on drills to keep momentum steady without burnout."
	}
}

// Brief is the paragraph introducing a session within its plan.
func Brief(s plan.Session, pace plan.Pace, hoursPerWeek int) string {
	return fmt.Sprintf("%s You have %d hours allocated per week; dedicate this %s block to mastering %s.",
		PaceNarrative(pace), hoursPerWeek, lower.String(FormatMinutes(s.DurationMinutes)), lower.String(strings.TrimSuffix(s.Focus.Summary, ".")))
}

// Mission is the one-line objective for the session's focus area.
func Mission(s plan.Session) string {
	return fmt.Sprintf("Internalize the end-to-end mechanics so you can architect, defend, and troubleshoot %s without reaching for external notes.",
		lower.String(s.Focus.Title))
}

// FormatMinutes renders a duration as "45 min", "1 hr" or "2 hrs 5 min".
func FormatMinutes(minutes int) string {
	hours, mins := minutes/60, minutes%60
	unit := "hr"
	if hours > 1 {
		unit = "hrs"
	}
	switch {
	case hours == 0:
		return fmt.Sprintf("%d min", mins)
	case mins == 0:
		return fmt.Sprintf("%d %s", hours, unit)
	default:
		return fmt.Sprintf("%d %s %d min", hours, unit, mins)
	}
}
