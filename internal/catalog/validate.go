package catalog

import (
	"fmt"
	"strings"
)

// validateTopics performs all structural checks on a topic set.
// Returns a combined error describing all problems found, or nil if valid.
func validateTopics(topics []Topic) error {
	var errs []string

	if len(topics) == 0 {
		errs = append(errs, "catalog has no topics")
	}

	topicIDs := make(map[string]bool, len(topics))
	questionIDs := make(map[string]string)

	for _, t := range topics {
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("topic %q has an empty ID", t.Title))
			continue
		}
		if topicIDs[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		topicIDs[t.ID] = true

		if len(t.FocusAreas) == 0 {
			errs = append(errs, fmt.Sprintf("topic %q has no focus areas", t.ID))
		}

		focusIDs := make(map[string]bool, len(t.FocusAreas))
		for _, f := range t.FocusAreas {
			if focusIDs[f.ID] {
				errs = append(errs, fmt.Sprintf("topic %q: duplicate focus area ID %q", t.ID, f.ID))
			}
			focusIDs[f.ID] = true
		}

		for _, q := range t.QuizBank {
			prefix := fmt.Sprintf("topic %q question %q", t.ID, q.ID)
			if owner, seen := questionIDs[q.ID]; seen {
				errs = append(errs, fmt.Sprintf("%s: ID already used by topic %q", prefix, owner))
			}
			questionIDs[q.ID] = t.ID

			if !focusIDs[q.FocusID] {
				errs = append(errs, fmt.Sprintf("%s references nonexistent focus area %q", prefix, q.FocusID))
			}
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("%s: needs at least 2 options, got %d", prefix, len(q.Options)))
			}
			if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
				errs = append(errs, fmt.Sprintf("%s: answer index %d out of range", prefix, q.AnswerIndex))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
