package plan

import (
	"slices"
)

// Clone returns a deep copy of the mutable parts of p. Week and session data
// is shared since it never changes after generation.
func (p *ExpertPlan) Clone() *ExpertPlan {
	c := *p
	c.Topics = slices.Clone(p.Topics)
	c.WeeksData = slices.Clone(p.WeeksData)
	c.CompletedSessionIDs = slices.Clone(p.CompletedSessionIDs)
	if c.CompletedSessionIDs == nil {
		c.CompletedSessionIDs = []string{}
	}
	return &c
}

// Session returns the session with the given ID and the week holding it.
func (p *ExpertPlan) Session(id string) (Session, *Week, bool) {
	for wi := range p.WeeksData {
		w := &p.WeeksData[wi]
		for _, s := range w.Sessions {
			if s.ID == id {
				return s, w, true
			}
		}
	}
	return Session{}, nil, false
}

// Sessions returns every session in week order.
func (p *ExpertPlan) Sessions() []Session {
	var out []Session
	for _, w := range p.WeeksData {
		out = append(out, w.Sessions...)
	}
	return out
}

// SessionCount returns the total number of sessions across all weeks.
func (p *ExpertPlan) SessionCount() int {
	n := 0
	for _, w := range p.WeeksData {
		n += len(w.Sessions)
	}
	return n
}

// IsCompleted reports whether the session is marked complete.
func (p *ExpertPlan) IsCompleted(sessionID string) bool {
	return slices.Contains(p.CompletedSessionIDs, sessionID)
}

// CompletedCount returns how many of the plan's sessions are complete.
// Completion entries for unknown sessions are not counted.
func (p *ExpertPlan) CompletedCount() int {
	n := 0
	for _, s := range p.Sessions() {
		if p.IsCompleted(s.ID) {
			n++
		}
	}
	return n
}

// WithCompletion returns a copy of p with sessionID marked complete or not.
func (p *ExpertPlan) WithCompletion(sessionID string, done bool) *ExpertPlan {
	c := p.Clone()
	c.CompletedSessionIDs = slices.DeleteFunc(c.CompletedSessionIDs, func(id string) bool {
		return id == sessionID
	})
	if done {
		c.CompletedSessionIDs = append(c.CompletedSessionIDs, sessionID)
	}
	return c
}

// ToggleCompletion returns a copy of p with the session's completion flipped.
func (p *ExpertPlan) ToggleCompletion(sessionID string) *ExpertPlan {
	return p.WithCompletion(sessionID, !p.IsCompleted(sessionID))
}

// WithNote returns a copy of p with the personal note replaced.
func (p *ExpertPlan) WithNote(note string) *ExpertPlan {
	c := p.Clone()
	c.PersonalNote = note
	return c
}

// WithPace returns a copy of p with a different pace. Week summaries keep the
// text they were generated with.
func (p *ExpertPlan) WithPace(pace Pace) *ExpertPlan {
	c := p.Clone()
	c.Pace = pace
	return c
}

// WithAutoComplete returns a copy of p with the auto-complete flag set.
func (p *ExpertPlan) WithAutoComplete(on bool) *ExpertPlan {
	c := p.Clone()
	c.AutoCompleteOnPass = on
	return c
}
