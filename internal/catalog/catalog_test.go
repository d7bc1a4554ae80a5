package catalog

import (
	"errors"
	"strings"
	"testing"
)

func validTopic(id string) Topic {
	return Topic{
		ID:    id,
		Title: strings.ToUpper(id),
		FocusAreas: []FocusArea{
			{ID: "basics", Title: "Basics"},
			{ID: "advanced", Title: "Advanced"},
		},
		QuizBank: []QuizTemplate{
			{ID: id + "-q1", FocusID: "basics", Question: "?", Options: []string{"a", "b"}, AnswerIndex: 0},
			{ID: id + "-q2", FocusID: "advanced", Question: "?", Options: []string{"a", "b", "c"}, AnswerIndex: 2},
		},
	}
}

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c, err := Parse(defaultData)
	if err != nil {
		t.Fatalf("embedded catalog failed to load: %v", err)
	}
	if c.Len() != 8 {
		t.Errorf("Len() = %d, want 8", c.Len())
	}
	for _, id := range []string{"oauth", "rag", "node", "typescript", "postgres", "webrtc", "sockets", "system"} {
		if _, ok := c.Topic(id); !ok {
			t.Errorf("topic %q missing from embedded catalog", id)
		}
	}
}

func TestDefault_EveryFocusAreaHasQuestions(t *testing.T) {
	for _, topic := range Default().Topics() {
		for _, f := range topic.FocusAreas {
			if len(topic.QuestionsFor(f.ID)) == 0 {
				t.Errorf("topic %q focus %q has no tagged questions", topic.ID, f.ID)
			}
			if f.StudyGuide.Overview == "" {
				t.Errorf("topic %q focus %q has no study guide overview", topic.ID, f.ID)
			}
		}
	}
}

func TestGetTopic_Unknown(t *testing.T) {
	_, err := Default().GetTopic("cobol")
	if !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("GetTopic(cobol) error = %v, want ErrTopicNotFound", err)
	}
}

func TestIDs_PreservesOrder(t *testing.T) {
	c, err := New([]Topic{validTopic("b"), validTopic("a")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ids := c.IDs()
	if len(ids) != 2 || ids[0] != "b" || ids[1] != "a" {
		t.Errorf("IDs() = %v, want [b a]", ids)
	}
}

func TestQuestionsFor_FiltersByFocus(t *testing.T) {
	topic := validTopic("x")
	qs := topic.QuestionsFor("advanced")
	if len(qs) != 1 || qs[0].ID != "x-q2" {
		t.Errorf("QuestionsFor(advanced) = %v, want [x-q2]", qs)
	}
	if got := topic.QuestionsFor("missing"); len(got) != 0 {
		t.Errorf("QuestionsFor(missing) = %v, want empty", got)
	}
}

func TestValidateTopics_DetectsDuplicateTopic(t *testing.T) {
	err := validateTopics([]Topic{validTopic("a"), validTopic("a")})
	if err == nil || !strings.Contains(err.Error(), "duplicate topic") {
		t.Errorf("expected duplicate topic error, got %v", err)
	}
}

func TestValidateTopics_DetectsDanglingFocus(t *testing.T) {
	topic := validTopic("a")
	topic.QuizBank[0].FocusID = "nonexistent"
	err := validateTopics([]Topic{topic})
	if err == nil || !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("expected dangling focus error, got %v", err)
	}
}

func TestValidateTopics_DetectsAnswerOutOfRange(t *testing.T) {
	topic := validTopic("a")
	topic.QuizBank[1].AnswerIndex = 3
	err := validateTopics([]Topic{topic})
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected out of range error, got %v", err)
	}
}

func TestValidateTopics_DetectsTooFewOptions(t *testing.T) {
	topic := validTopic("a")
	topic.QuizBank[0].Options = []string{"only"}
	err := validateTopics([]Topic{topic})
	if err == nil || !strings.Contains(err.Error(), "at least 2 options") {
		t.Errorf("expected option count error, got %v", err)
	}
}

func TestValidateTopics_DetectsSharedQuestionID(t *testing.T) {
	a, b := validTopic("a"), validTopic("b")
	b.QuizBank[0].ID = "a-q1"
	err := validateTopics([]Topic{a, b})
	if err == nil || !strings.Contains(err.Error(), "already used") {
		t.Errorf("expected shared question ID error, got %v", err)
	}
}

func TestParse_RejectsIncompatibleSchema(t *testing.T) {
	doc := []byte("schema_version: v2.0.0\ntopics: []\n")
	_, err := Parse(doc)
	if err == nil || !strings.Contains(err.Error(), "incompatible") {
		t.Errorf("expected incompatible schema error, got %v", err)
	}
}

func TestParse_RejectsMissingVersion(t *testing.T) {
	_, err := Parse([]byte("topics: []\n"))
	if err == nil {
		t.Fatal("expected error for missing schema_version, got nil")
	}
}

func TestParse_AcceptsMinorBump(t *testing.T) {
	doc := []byte(`schema_version: v1.3.0
topics:
  - id: go
    title: Go
    focus_areas:
      - id: channels
        title: Channels
    quiz_bank:
      - id: go-q1
        focus_id: channels
        question: Which operation blocks on an unbuffered channel?
        options: [send, len]
        answer_index: 0
`)
	c, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	topic, err := c.GetTopic("go")
	if err != nil {
		t.Fatalf("GetTopic: %v", err)
	}
	if f, ok := topic.FocusArea("channels"); !ok || f.Title != "Channels" {
		t.Errorf("FocusArea(channels) = %+v, %v", f, ok)
	}
}
