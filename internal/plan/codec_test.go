package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_RoundTrip(t *testing.T) {
	p := generate(t, Request{Topics: []string{"oauth", "webrtc", "typescript"}, Weeks: 3, HoursPerWeek: 7, Pace: PaceIntensive})
	p = p.WithCompletion(p.WeeksData[1].Sessions[2].ID, true).WithNote("ship the demo").WithAutoComplete(false)

	data, err := Marshal(p)
	require.NoError(t, err)
	got, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, p, got)
}

func TestMarshal_FieldNames(t *testing.T) {
	p := generate(t, Request{Topics: []string{"oauth"}, Weeks: 1, HoursPerWeek: 3, Pace: PaceBalanced})
	data, err := Marshal(p)
	require.NoError(t, err)

	for _, key := range []string{
		`"id"`, `"title"`, `"createdAt"`, `"topics"`, `"weeks"`, `"hoursPerWeek"`, `"weeksData"`,
		`"completedSessionIds":[]`, `"pace":"balanced"`, `"personalNote":""`, `"autoCompleteOnPass":true`,
		`"weekNumber"`, `"topicId"`, `"topicTitle"`, `"durationMinutes"`, `"answerIndex"`, `"docLink"`, `"studyGuide"`,
	} {
		assert.Contains(t, string(data), key)
	}
}

func TestUnmarshal_AppliesDefaults(t *testing.T) {
	got, err := Unmarshal([]byte(`{"id":"plan-1","title":"T","weeksData":[],"personalNote":42,"autoCompleteOnPass":"yes"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{}, got.CompletedSessionIDs)
	assert.Equal(t, PaceBalanced, got.Pace)
	assert.Equal(t, "", got.PersonalNote)
	assert.True(t, got.AutoCompleteOnPass)
}

func TestUnmarshal_NullsFallBackToDefaults(t *testing.T) {
	got, err := Unmarshal([]byte(`{"weeksData":[],"completedSessionIds":null,"pace":null,"personalNote":null,"autoCompleteOnPass":null}`))
	require.NoError(t, err)

	assert.Equal(t, []string{}, got.CompletedSessionIDs)
	assert.Equal(t, PaceBalanced, got.Pace)
	assert.Equal(t, "", got.PersonalNote)
	assert.True(t, got.AutoCompleteOnPass)
}

func TestUnmarshal_KeepsExplicitValues(t *testing.T) {
	got, err := Unmarshal([]byte(`{"weeksData":[],"completedSessionIds":["s1"],"pace":"foundations","personalNote":"n","autoCompleteOnPass":false}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"s1"}, got.CompletedSessionIDs)
	assert.Equal(t, PaceFoundations, got.Pace)
	assert.Equal(t, "n", got.PersonalNote)
	assert.False(t, got.AutoCompleteOnPass)
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind error
	}{
		{"not json", `{"weeksData": [`, ErrMalformed},
		{"array document", `[1,2,3]`, ErrMalformed},
		{"null document", `null`, ErrMalformed},
		{"missing weeksData", `{"id":"plan-1"}`, ErrMissingField},
		{"weeksData object", `{"weeksData":{"a":1}}`, ErrMissingField},
		{"weeksData string", `{"weeksData":"soon"}`, ErrMissingField},
		{"weeks wrong type", `{"weeksData":[],"weeks":"three"}`, ErrMalformed},
		{"week not an object", `{"weeksData":[1]}`, ErrMalformed},
		{"session list wrong type", `{"weeksData":[{"weekNumber":1,"sessions":"none"}]}`, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.kind, de.Kind)
		})
	}
}
