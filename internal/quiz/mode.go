package quiz

import (
	"fmt"
	"strings"
)

// Mode distinguishes the two independent quiz tracks of a session.
type Mode string

const (
	// ModeDiagnostic is the pre-session baseline check. It never affects rank.
	ModeDiagnostic Mode = "diagnostic"
	// ModeAssessment is the post-session test that feeds the rank engine.
	ModeAssessment Mode = "assessment"
)

const taskSep = "::"

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDiagnostic, ModeAssessment:
		return m, nil
	default:
		return "", fmt.Errorf("unknown quiz mode %q (want %s or %s)", s, ModeDiagnostic, ModeAssessment)
	}
}

// AffectsRank reports whether results in this mode are applied to rank.
func (m Mode) AffectsRank() bool {
	return m == ModeAssessment
}

// TaskKey builds the composite key a test record is stored under.
func TaskKey(sessionID string, mode Mode) string {
	return sessionID + taskSep + string(mode)
}

// ParseTaskKey recovers the session ID and mode from a task key. Keys ending
// in "-assessment" are assessments for compatibility with older records;
// anything unrecognized is treated as a diagnostic.
func ParseTaskKey(key string) (sessionID string, mode Mode) {
	sessionID, rest, _ := strings.Cut(key, taskSep)
	mode = ModeDiagnostic
	if rest == string(ModeAssessment) || strings.HasSuffix(key, "-"+string(ModeAssessment)) {
		mode = ModeAssessment
	}
	return sessionID, mode
}
