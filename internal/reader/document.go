package reader

import (
	"bytes"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/metcalfc/lrn/internal/variant"
)

// sectionDoc is the serialized form of a Section. Beginner content spells the
// examples list "lifeExamples"; both spellings are accepted.
type sectionDoc struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Content      string   `json:"content" yaml:"content"`
	KeyPoints    []string `json:"keyPoints" yaml:"keyPoints"`
	Examples     []string `json:"examples" yaml:"examples"`
	LifeExamples []string `json:"lifeExamples" yaml:"lifeExamples"`
}

// courseDoc holds either per-mode section lists or a shared one.
type courseDoc struct {
	Title         string       `json:"title" yaml:"title"`
	Sections      []sectionDoc `json:"sections" yaml:"sections"`
	Comprehensive []sectionDoc `json:"comprehensive" yaml:"comprehensive"`
	Beginner      []sectionDoc `json:"beginner" yaml:"beginner"`
}

func (d sectionDoc) section() Section {
	examples := append([]string(nil), d.Examples...)
	examples = append(examples, d.LifeExamples...)
	return Section{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		KeyPoints: d.KeyPoints,
		Examples:  examples,
	}
}

func collectionOf(docs []sectionDoc) *Collection {
	sections := make([]Section, len(docs))
	for i, d := range docs {
		sections[i] = d.section()
	}
	return NewCollection(sections)
}

// course builds one collection per listed mode. "sections" serves every mode
// that has no list of its own.
func (d courseDoc) course() *Course {
	if d.Comprehensive == nil && d.Beginner == nil {
		return NewCourse(d.Title, collectionOf(d.Sections))
	}
	course := &Course{Title: d.Title, Collections: make(map[variant.Mode]*Collection)}
	var shared *Collection
	if d.Sections != nil {
		shared = collectionOf(d.Sections)
	}
	for mode, docs := range map[variant.Mode][]sectionDoc{
		variant.Comprehensive: d.Comprehensive,
		variant.Beginner:      d.Beginner,
	} {
		switch {
		case docs != nil:
			course.Collections[mode] = collectionOf(docs)
		case shared != nil:
			course.Collections[mode] = shared
		}
	}
	return course
}

// JSONFormat implements Format for JSON course files.
type JSONFormat struct{}

func init() {
	Register(&JSONFormat{})
	Register(&YAMLFormat{})
}

func (f *JSONFormat) Name() string         { return "JSON" }
func (f *JSONFormat) Extensions() []string { return []string{".json"} }

func (f *JSONFormat) Load(filename string) (*Course, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseJSON(data)
}

// ParseJSON decodes a course from JSON. The document is either an array of
// sections or an object with "sections", "comprehensive" and "beginner" lists.
func ParseJSON(data []byte) (*Course, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var docs []sectionDoc
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("decode sections: %w", err)
		}
		return NewCourse("", collectionOf(docs)), nil
	}
	var doc courseDoc
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	return doc.course(), nil
}

// YAMLFormat implements Format for YAML course files.
type YAMLFormat struct{}

func (f *YAMLFormat) Name() string         { return "YAML" }
func (f *YAMLFormat) Extensions() []string { return []string{".yaml", ".yml"} }

func (f *YAMLFormat) Load(filename string) (*Course, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseYAML(data)
}

// ParseYAML decodes a course from YAML using the same shapes as ParseJSON.
func ParseYAML(data []byte) (*Course, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	if len(root.Content) == 0 {
		return NewCourse("", NewCollection(nil)), nil
	}
	node := root.Content[0]
	if node.Kind == yaml.SequenceNode {
		var docs []sectionDoc
		if err := node.Decode(&docs); err != nil {
			return nil, fmt.Errorf("decode sections: %w", err)
		}
		return NewCourse("", collectionOf(docs)), nil
	}
	var doc courseDoc
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	return doc.course(), nil
}
