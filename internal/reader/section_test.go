package reader

import (
	"testing"

	"github.com/metcalfc/lrn/internal/variant"
)

func TestCollectionAssignsIDs(t *testing.T) {
	c := NewCollection([]Section{
		{Title: "Zone of Proximal Development"},
		{ID: "custom", Title: "Anything"},
		{Title: "Zone of proximal development!"},
		{Title: "   "},
		{ID: "custom", Title: "Duplicate ID"},
	})

	want := []string{
		"zone-of-proximal-development",
		"custom",
		"zone-of-proximal-development-2",
		"section-4",
		"custom-2",
	}
	for i, id := range want {
		s, ok := c.At(i)
		if !ok {
			t.Fatalf("At(%d) missing", i)
		}
		if s.ID != id {
			t.Errorf("section %d ID = %q, want %q", i, s.ID, id)
		}
	}
}

func TestCollectionIsImmutable(t *testing.T) {
	src := []Section{{Title: "One", KeyPoints: []string{"a"}, Examples: []string{"x"}}}
	c := NewCollection(src)

	src[0].Title = "changed"
	src[0].KeyPoints[0] = "changed"

	got, _ := c.At(0)
	if got.Title != "One" || got.KeyPoints[0] != "a" {
		t.Errorf("collection shares memory with its input: %+v", got)
	}

	got.Examples[0] = "changed"
	again, _ := c.At(0)
	if again.Examples[0] != "x" {
		t.Error("At returned a section sharing memory with the collection")
	}

	all := c.Sections()
	all[0].KeyPoints[0] = "changed"
	if s, _ := c.At(0); s.KeyPoints[0] != "a" {
		t.Error("Sections returned slices sharing memory with the collection")
	}
}

func TestCollectionAtBounds(t *testing.T) {
	c := NewCollection([]Section{{Title: "One"}})
	if _, ok := c.At(-1); ok {
		t.Error("At(-1) should fail")
	}
	if _, ok := c.At(1); ok {
		t.Error("At(1) should fail")
	}
	var nilCollection *Collection
	if nilCollection.Len() != 0 {
		t.Error("nil collection should be empty")
	}
}

func TestCourseCollectionFallback(t *testing.T) {
	full := NewCollection([]Section{{Title: "Full"}})
	course := &Course{Collections: map[variant.Mode]*Collection{variant.Comprehensive: full}}

	if got := course.Collection(variant.Beginner); got != full {
		t.Error("missing mode should fall back to the available collection")
	}

	var empty *Course
	if got := empty.Collection(variant.Beginner); got.Len() != 0 {
		t.Errorf("nil course collection has %d sections, want 0", got.Len())
	}
}

func TestNewCourseSharesCollection(t *testing.T) {
	c := NewCollection([]Section{{Title: "Shared"}})
	course := NewCourse("Title", c)
	for _, m := range variant.Modes() {
		if course.Collection(m) != c {
			t.Errorf("mode %s does not use the shared collection", m)
		}
	}
}
