package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SchemaMajor is the catalog document major version this build understands.
const SchemaMajor = "v1"

// ErrTopicNotFound is returned when a topic ID is not in the catalog.
var ErrTopicNotFound = errors.New("topic not found")

//go:embed data/topics.yaml
var defaultData []byte

// Catalog is an immutable, ID-indexed set of topics.
type Catalog struct {
	topics []Topic
	byID   map[string]int
}

type document struct {
	SchemaVersion string  `yaml:"schema_version"`
	Topics        []Topic `yaml:"topics"`
}

// New validates topics and builds the lookup index.
func New(topics []Topic) (*Catalog, error) {
	if err := validateTopics(topics); err != nil {
		return nil, err
	}
	c := &Catalog{
		topics: topics,
		byID:   make(map[string]int, len(topics)),
	}
	for i := range topics {
		c.byID[topics[i].ID] = i
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if !semver.IsValid(doc.SchemaVersion) {
		return nil, fmt.Errorf("catalog schema_version %q is not a semantic version", doc.SchemaVersion)
	}
	if major := semver.Major(doc.SchemaVersion); major != SchemaMajor {
		return nil, fmt.Errorf("catalog schema %s is incompatible with %s", doc.SchemaVersion, SchemaMajor)
	}
	return New(doc.Topics)
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultData)
})

// Default returns the catalog shipped with the binary. The embedded data is
// validated by tests, so a failure here is a build defect.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Topic returns the topic with the given ID.
func (c *Catalog) Topic(id string) (Topic, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Topic{}, false
	}
	return c.topics[i], true
}

// GetTopic is like Topic but returns ErrTopicNotFound for unknown IDs.
func (c *Catalog) GetTopic(id string) (Topic, error) {
	t, ok := c.Topic(id)
	if !ok {
		return Topic{}, fmt.Errorf("%w: %q", ErrTopicNotFound, id)
	}
	return t, nil
}

// Topics returns all topics in catalog order.
func (c *Catalog) Topics() []Topic {
	out := make([]Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

// IDs returns all topic IDs in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.topics))
	for i, t := range c.topics {
		ids[i] = t.ID
	}
	return ids
}

// Len returns the number of topics.
func (c *Catalog) Len() int {
	return len(c.topics)
}
