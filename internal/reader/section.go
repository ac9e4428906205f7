package reader

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/metcalfc/lrn/internal/variant"
)

// Section is one page of content.
type Section struct {
	ID        string
	Title     string
	Content   string
	KeyPoints []string
	Examples  []string
}

// HasExamples reports whether the section has an example panel to disclose.
func (s Section) HasExamples() bool {
	return len(s.Examples) > 0
}

func (s Section) clone() Section {
	s.KeyPoints = append([]string(nil), s.KeyPoints...)
	s.Examples = append([]string(nil), s.Examples...)
	return s
}

// Collection is an ordered, immutable list of sections for one reading session.
type Collection struct {
	sections []Section
}

// NewCollection copies sections into a new Collection. Sections without an ID
// get one derived from their title.
func NewCollection(sections []Section) *Collection {
	c := &Collection{sections: make([]Section, len(sections))}
	for i, s := range sections {
		c.sections[i] = s.clone()
	}
	assignIDs(c.sections)
	return c
}

// Len returns the number of sections. A nil Collection is empty.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sections)
}

// At returns a copy of the section at index i.
func (c *Collection) At(i int) (Section, bool) {
	if i < 0 || i >= c.Len() {
		return Section{}, false
	}
	return c.sections[i].clone(), true
}

// Sections returns a copy of all sections in order.
func (c *Collection) Sections() []Section {
	out := make([]Section, c.Len())
	for i := range out {
		out[i] = c.sections[i].clone()
	}
	return out
}

// title returns the title at i without copying the slices.
func (c *Collection) title(i int) string {
	return c.sections[i].Title
}

func (c *Collection) hasExamples(i int) bool {
	return len(c.sections[i].Examples) > 0
}

// Course is what a source file supplies: one collection per mode.
type Course struct {
	Title       string
	Collections map[variant.Mode]*Collection
}

// NewCourse serves the same collection to every mode.
func NewCourse(title string, c *Collection) *Course {
	course := &Course{Title: title, Collections: make(map[variant.Mode]*Collection)}
	for _, m := range variant.Modes() {
		course.Collections[m] = c
	}
	return course
}

// Collection returns the collection for mode m. A mode the source did not
// provide falls back to any collection the course has, then to an empty one.
func (c *Course) Collection(m variant.Mode) *Collection {
	if c == nil {
		return NewCollection(nil)
	}
	if col, ok := c.Collections[m]; ok && col != nil {
		return col
	}
	for _, mode := range variant.Modes() {
		if col, ok := c.Collections[mode]; ok && col != nil {
			return col
		}
	}
	return NewCollection(nil)
}

// assignIDs fills empty IDs with a slug of the title and makes every ID unique
// within the slice by appending -2, -3, ...
func assignIDs(sections []Section) {
	seen := make(map[string]int, len(sections))
	for i := range sections {
		id := strings.TrimSpace(sections[i].ID)
		if id == "" {
			id = slugify(sections[i].Title)
		}
		if id == "" {
			id = fmt.Sprintf("section-%d", i+1)
		}
		base := id
		for seen[id] > 0 {
			seen[base]++
			id = fmt.Sprintf("%s-%d", base, seen[base])
		}
		seen[id]++
		sections[i].ID = id
	}
}

func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
