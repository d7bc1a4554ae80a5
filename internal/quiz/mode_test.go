package quiz

import "testing"

func TestTaskKey_RoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeDiagnostic, ModeAssessment} {
		key := TaskKey("session-oauth-1-abc", mode)
		gotID, gotMode := ParseTaskKey(key)
		if gotID != "session-oauth-1-abc" || gotMode != mode {
			t.Errorf("ParseTaskKey(%q) = (%q, %q), want (session-oauth-1-abc, %q)", key, gotID, gotMode, mode)
		}
	}
}

func TestParseTaskKey_LegacySuffix(t *testing.T) {
	id, mode := ParseTaskKey("session-x-assessment")
	if mode != ModeAssessment {
		t.Errorf("mode = %q, want assessment", mode)
	}
	if id != "session-x-assessment" {
		t.Errorf("id = %q, want whole key when no separator", id)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"diagnostic", ModeDiagnostic, false},
		{" Assessment ", ModeAssessment, false},
		{"exam", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAffectsRank(t *testing.T) {
	if ModeDiagnostic.AffectsRank() {
		t.Error("diagnostic should not affect rank")
	}
	if !ModeAssessment.AffectsRank() {
		t.Error("assessment should affect rank")
	}
}
