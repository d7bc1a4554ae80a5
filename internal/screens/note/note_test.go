package note

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/expertmaker/internal/plan"
)

type fakeStore struct {
	note    string
	saved   []string
	loadErr error
}

func (f *fakeStore) Plan(context.Context) (*plan.ExpertPlan, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return &plan.ExpertPlan{PersonalNote: f.note}, nil
}

func (f *fakeStore) SetNote(_ context.Context, note string) (*plan.ExpertPlan, error) {
	f.saved = append(f.saved, note)
	f.note = note
	return &plan.ExpertPlan{PersonalNote: note}, nil
}

func TestNoteScreen_LoadsExistingNote(t *testing.T) {
	st := &fakeStore{note: "ship the PKCE demo"}
	s := New(st)
	s.Update(s.Init()())

	if got := s.Value(); got != "ship the PKCE demo" {
		t.Errorf("Value = %q, want existing note", got)
	}
}

func TestNoteScreen_EnterSaves(t *testing.T) {
	st := &fakeStore{}
	s := New(st)
	s.Update(s.Init()())

	for _, r := range "hello " {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected save command")
	}
	_, done := s.Update(cmd())
	if done == nil {
		t.Error("expected pop after save")
	}
	if len(st.saved) != 1 || st.saved[0] != "hello" {
		t.Errorf("saved = %q, want [hello]", st.saved)
	}
}

func TestNoteScreen_LoadErrorBlocksSave(t *testing.T) {
	st := &fakeStore{loadErr: errors.New("no plan yet")}
	s := New(st)
	s.Update(s.Init()())

	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("save should be disabled after a load error")
	}
	if len(st.saved) != 0 {
		t.Error("nothing should be saved")
	}
}
