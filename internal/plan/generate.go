package plan

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/expertmaker/internal/catalog"
	"github.com/abhisek/expertmaker/internal/quiz"
)

// ErrUnknownTopic is returned in strict mode when a requested topic is not
// in the catalog.
var ErrUnknownTopic = errors.New("unknown topic")

const (
	minSessionMinutes = 60
	maxSessionMinutes = 90
	maxQuizQuestions  = 4

	// TimestampLayout is the createdAt format: ISO-8601 UTC with milliseconds.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
	titleDateLayout = "Jan 2, 2006"
	titlePrefix     = "ExpertMaker Plan — "
)

// IDFunc mints an identifier from a readable prefix.
type IDFunc func(prefix string) string

// NewID returns "<prefix>-<uuid>".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

type options struct {
	now    func() time.Time
	newID  IDFunc
	strict bool
}

// Option configures Generate.
type Option func(*options)

// WithClock sets the source of the creation timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDFunc sets the identifier source.
func WithIDFunc(f IDFunc) Option {
	return func(o *options) { o.newID = f }
}

// Strict makes Generate fail on topic IDs missing from the catalog instead
// of skipping them.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

var lower = cases.Lower(language.English)

// Generate builds a plan for req. Requested topics missing from the catalog
// are skipped unless Strict is given. The request's topic list is recorded
// as given.
func Generate(cat *catalog.Catalog, req Request, opts ...Option) (*ExpertPlan, error) {
	o := options{now: time.Now, newID: NewID}
	for _, opt := range opts {
		opt(&o)
	}

	topics := make([]catalog.Topic, 0, len(req.Topics))
	for _, id := range req.Topics {
		t, ok := cat.Topic(id)
		if !ok {
			if o.strict {
				return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, id)
			}
			continue
		}
		topics = append(topics, t)
	}

	now := o.now()
	minutes := SessionMinutes(req.HoursPerWeek, len(topics))

	weeks := make([]Week, 0, max(req.Weeks, 0))
	for w := 0; w < req.Weeks; w++ {
		n := w + 1
		sessions := make([]Session, 0, len(topics))
		labels := make([]string, 0, len(topics))
		for ti, topic := range topics {
			s := buildSession(topic, w+ti, n, minutes, o.newID)
			sessions = append(sessions, s)
			labels = append(labels, s.TopicTitle+": "+s.Focus.Title)
		}
		weeks = append(weeks, Week{
			ID:         o.newID(fmt.Sprintf("week-%d", n)),
			WeekNumber: n,
			Theme:      fmt.Sprintf("Week %d: %s", n, strings.Join(labels, " • ")),
			Summary: fmt.Sprintf("%s Plan %d focus blocks across %d topics and capture takeaways after every diagnostic.",
				req.Pace.Description(), len(sessions), len(topics)),
			Sessions: sessions,
		})
	}

	return &ExpertPlan{
		ID:                  o.newID("plan"),
		Title:               Title(now),
		CreatedAt:           now.UTC().Format(TimestampLayout),
		Topics:              append([]string{}, req.Topics...),
		Weeks:               req.Weeks,
		HoursPerWeek:        req.HoursPerWeek,
		WeeksData:           weeks,
		CompletedSessionIDs: []string{},
		Pace:                req.Pace,
		PersonalNote:        "",
		AutoCompleteOnPass:  true,
	}, nil
}

func buildSession(topic catalog.Topic, offset, weekNumber, minutes int, newID IDFunc) Session {
	var focus catalog.FocusArea
	if len(topic.FocusAreas) > 0 {
		focus = topic.FocusAreas[offset%len(topic.FocusAreas)]
	}
	return Session{
		ID:              newID(fmt.Sprintf("session-%s-%d", topic.ID, weekNumber)),
		TopicID:         topic.ID,
		TopicTitle:      topic.Title,
		Focus:           focus,
		DurationMinutes: minutes,
		Summary: fmt.Sprintf("%s Emphasize deliberate drills for %s fundamentals and ship a tangible artifact by the end of the session.",
			focus.Summary, lower.String(topic.Title)),
		Quiz: buildQuiz(topic, focus.ID),
	}
}

// Title names a plan after the calendar date of created in its own
// location, which for time.Now is the local zone.
func Title(created time.Time) string {
	return titlePrefix + created.Format(titleDateLayout)
}

// buildQuiz takes the focus area's questions first, then the rest of the
// topic's bank, capped at maxQuizQuestions.
func buildQuiz(topic catalog.Topic, focusID string) []quiz.Question {
	pool := topic.QuestionsFor(focusID)
	for _, q := range topic.QuizBank {
		if q.FocusID != focusID {
			pool = append(pool, q)
		}
	}
	n := min(len(pool), maxQuizQuestions)
	out := make([]quiz.Question, 0, n)
	for _, t := range pool[:n] {
		out = append(out, quiz.Question{
			ID:          t.ID,
			Question:    t.Question,
			Options:     t.Options,
			AnswerIndex: t.AnswerIndex,
			Rationale:   t.Rationale,
			DocLink:     t.DocLink,
		})
	}
	return out
}

// SessionMinutes splits the weekly budget evenly across topics, clamped to
// the 60-90 minute focus block.
func SessionMinutes(hoursPerWeek, topicCount int) int {
	per := math.Round(float64(hoursPerWeek*60) / float64(max(topicCount, 1)))
	return min(maxSessionMinutes, max(minSessionMinutes, int(per)))
}
