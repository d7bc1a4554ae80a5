package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	// ErrMalformed means the document is not a JSON object of the expected shape.
	ErrMalformed = errors.New("malformed plan document")
	// ErrMissingField means weeksData is absent or not a list.
	ErrMissingField = errors.New("plan document is missing weeksData")
)

// DecodeError describes why a plan document was rejected.
type DecodeError struct {
	Kind error // ErrMalformed or ErrMissingField
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

const documentSchemaURL = "schema://expert-plan.json"

var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"weeksData"},
	"properties": map[string]any{
		"weeksData": map[string]any{"type": "array"},
	},
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentSchemaURL, documentSchema); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(documentSchemaURL)
})

// Marshal encodes p as a JSON document.
func Marshal(p *ExpertPlan) ([]byte, error) {
	return json.Marshal(p)
}

// MarshalIndent encodes p as an indented JSON document for export.
func MarshalIndent(p *ExpertPlan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// wire mirrors ExpertPlan but leaves the defaulted fields raw so that
// wrongly-typed values can be replaced instead of failing the decode.
type wire struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	CreatedAt           string          `json:"createdAt"`
	Topics              []string        `json:"topics"`
	Weeks               int             `json:"weeks"`
	HoursPerWeek        int             `json:"hoursPerWeek"`
	WeeksData           []Week          `json:"weeksData"`
	CompletedSessionIDs json.RawMessage `json:"completedSessionIds"`
	Pace                json.RawMessage `json:"pace"`
	PersonalNote        json.RawMessage `json:"personalNote"`
	AutoCompleteOnPass  json.RawMessage `json:"autoCompleteOnPass"`
}

// Unmarshal decodes a plan document, applying defaults for missing or
// wrongly-typed optional fields: no completed sessions, balanced pace, an
// empty note, and auto-complete on.
func Unmarshal(data []byte) (*ExpertPlan, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Kind: ErrMalformed, Err: err}
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, &DecodeError{Kind: ErrMalformed, Err: fmt.Errorf("document is %T, not an object", doc)}
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile plan schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &DecodeError{Kind: ErrMissingField, Err: err}
	}

	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &DecodeError{Kind: ErrMalformed, Err: err}
	}

	p := &ExpertPlan{
		ID:                  w.ID,
		Title:               w.Title,
		CreatedAt:           w.CreatedAt,
		Topics:              w.Topics,
		Weeks:               w.Weeks,
		HoursPerWeek:        w.HoursPerWeek,
		WeeksData:           w.WeeksData,
		CompletedSessionIDs: []string{},
		Pace:                PaceBalanced,
		PersonalNote:        "",
		AutoCompleteOnPass:  true,
	}

	var ids []string
	if json.Unmarshal(w.CompletedSessionIDs, &ids) == nil && ids != nil {
		p.CompletedSessionIDs = ids
	}
	var pace string
	if json.Unmarshal(w.Pace, &pace) == nil && pace != "" {
		p.Pace = Pace(pace)
	}
	var note string
	if json.Unmarshal(w.PersonalNote, &note) == nil {
		p.PersonalNote = note
	}
	auto := true
	if json.Unmarshal(w.AutoCompleteOnPass, &auto) == nil {
		p.AutoCompleteOnPass = auto
	}
	return p, nil
}
