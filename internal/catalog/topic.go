package catalog

// Resource is an external reading linked from a focus area.
type Resource struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// Section is one deep-dive module of a study guide.
type Section struct {
	Title   string   `yaml:"title" json:"title"`
	Detail  string   `yaml:"detail" json:"detail"`
	Bullets []string `yaml:"bullets" json:"bullets"`
}

// Drill is a hands-on practice exercise.
type Drill struct {
	Title string   `yaml:"title" json:"title"`
	Steps []string `yaml:"steps" json:"steps"`
}

// StudyGuide is the reading and practice material for one focus area.
type StudyGuide struct {
	Overview      string    `yaml:"overview" json:"overview"`
	Objectives    []string  `yaml:"objectives" json:"objectives"`
	Sections      []Section `yaml:"sections" json:"sections"`
	Practice      []Drill   `yaml:"practice" json:"practice"`
	Reflection    []string  `yaml:"reflection" json:"reflection"`
	ProjectPrompt string    `yaml:"project_prompt" json:"projectPrompt"`
}

// FocusArea is a named sub-topic, the unit a study session targets.
// Plans embed a full copy so they stay readable if the catalog changes.
type FocusArea struct {
	ID         string     `yaml:"id" json:"id"`
	Title      string     `yaml:"title" json:"title"`
	Summary    string     `yaml:"summary" json:"summary"`
	StudyGuide StudyGuide `yaml:"study_guide" json:"studyGuide"`
	Resources  []Resource `yaml:"resources" json:"resources"`
}

// QuizTemplate is a question in a topic's bank, tagged with the focus
// area it exercises.
type QuizTemplate struct {
	ID          string   `yaml:"id"`
	FocusID     string   `yaml:"focus_id"`
	Question    string   `yaml:"question"`
	Options     []string `yaml:"options"`
	AnswerIndex int      `yaml:"answer_index"`
	Rationale   string   `yaml:"rationale"`
	DocLink     string   `yaml:"doc_link"`
}

// Topic is a subject a learner can select when generating a plan.
type Topic struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	FocusAreas  []FocusArea    `yaml:"focus_areas"`
	QuizBank    []QuizTemplate `yaml:"quiz_bank"`
}

// FocusArea returns the focus area with the given ID.
func (t Topic) FocusArea(id string) (FocusArea, bool) {
	for _, f := range t.FocusAreas {
		if f.ID == id {
			return f, true
		}
	}
	return FocusArea{}, false
}

// QuestionsFor returns the templates tagged with focusID, in bank order.
func (t Topic) QuestionsFor(focusID string) []QuizTemplate {
	var out []QuizTemplate
	for _, q := range t.QuizBank {
		if q.FocusID == focusID {
			out = append(out, q)
		}
	}
	return out
}
