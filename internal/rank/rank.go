// Package rank implements the belt/stripe progression driven by assessment
// scores, and the completion percentage derived from it.
package rank

import (
	"fmt"
	"math"
	"strings"
)

// Belts is the ordered belt sequence. The last entry is terminal.
var Belts = []string{"White", "Blue", "Purple", "Brown", "Black", "Coral"}

// State is a learner's position on the belt ladder.
type State struct {
	BeltIndex int `json:"beltIndex"`
	Stripes   int `json:"stripes"`
	Points    int `json:"points"`
}

// Config holds the rule set that turns scores into points and points into
// stripes and belts.
type Config struct {
	PointsPerStripe int `json:"pointsPerStripe"`
	StripesPerBelt  int `json:"stripesPerBelt"`
	PassPoints      int `json:"passPoints"`
	FailPoints      int `json:"failPoints"`
	PassScore       int `json:"passScore"`
}

// Outcome is the result of applying one test score.
type Outcome struct {
	State         State
	AwardedPoints int
	LeveledUp     bool
}

// Initial returns the starting state: first belt, no stripes, no points.
func Initial() State {
	return State{}
}

// DefaultConfig returns the stock rule set.
func DefaultConfig() Config {
	return Config{
		PointsPerStripe: 3,
		StripesPerBelt:  4,
		PassPoints:      2,
		FailPoints:      1,
		PassScore:       90,
	}
}

// Validate reports every constraint the config violates.
func (c Config) Validate() error {
	var errs []string
	if c.PointsPerStripe <= 0 {
		errs = append(errs, fmt.Sprintf("pointsPerStripe must be positive, got %d", c.PointsPerStripe))
	}
	if c.StripesPerBelt <= 0 {
		errs = append(errs, fmt.Sprintf("stripesPerBelt must be positive, got %d", c.StripesPerBelt))
	}
	if c.PassPoints < 0 {
		errs = append(errs, fmt.Sprintf("passPoints must not be negative, got %d", c.PassPoints))
	}
	if c.FailPoints < 0 {
		errs = append(errs, fmt.Sprintf("failPoints must not be negative, got %d", c.FailPoints))
	}
	if c.PassScore < 0 || c.PassScore > 100 {
		errs = append(errs, fmt.Sprintf("passScore must be within 0-100, got %d", c.PassScore))
	}
	if len(errs) > 0 {
		return fmt.Errorf("rank config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func lastBelt() int { return len(Belts) - 1 }

// Apply awards points for score and carries them upward into stripes and
// belts. The input state is not modified.
//
// Once the terminal belt holds a full set of stripes, awarded points are
// discarded and Points stays at zero.
func Apply(state State, cfg Config, score int) Outcome {
	next := state
	awarded := cfg.FailPoints
	if score >= cfg.PassScore {
		awarded = cfg.PassPoints
	}
	next.Points += awarded

	leveledUp := false
	for cfg.PointsPerStripe > 0 && next.Points >= cfg.PointsPerStripe {
		next.Points -= cfg.PointsPerStripe
		next.Stripes++
		if next.Stripes < cfg.StripesPerBelt {
			continue
		}
		if next.BeltIndex < lastBelt() {
			next.BeltIndex++
			next.Stripes = 0
			leveledUp = true
			continue
		}
		next.Stripes = cfg.StripesPerBelt
		next.Points = 0
		break
	}

	if next.BeltIndex >= lastBelt() {
		next.Stripes = min(next.Stripes, cfg.StripesPerBelt)
		if next.Stripes == cfg.StripesPerBelt {
			next.Points = 0
		}
	}

	return Outcome{State: next, AwardedPoints: awarded, LeveledUp: leveledUp}
}

// Progress returns overall completion in percent, 0 at the initial state and
// 100 once the terminal belt is saturated.
func Progress(state State, cfg Config) int {
	perBelt := cfg.StripesPerBelt * cfg.PointsPerStripe
	total := perBelt * lastBelt()
	if total <= 0 {
		return 0
	}
	current := state.BeltIndex*perBelt + state.Stripes*cfg.PointsPerStripe + state.Points
	return min(100, int(math.Round(float64(current)/float64(total)*100)))
}

// BeltName returns the belt label for state, clamped to the terminal belt.
func BeltName(state State) string {
	i := max(0, min(state.BeltIndex, lastBelt()))
	return Belts[i]
}

// PointsToNextStripe returns how many points are still needed for the next
// stripe, or 0 once the ladder is saturated.
func PointsToNextStripe(state State, cfg Config) int {
	if state.BeltIndex >= lastBelt() && state.Stripes >= cfg.StripesPerBelt {
		return 0
	}
	return cfg.PointsPerStripe - state.Points
}
