package reader

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func testCollection(n int) *Collection {
	sections := make([]Section, n)
	for i := range sections {
		sections[i] = Section{
			Title:     fmt.Sprintf("Section %d", i+1),
			Content:   "body",
			KeyPoints: []string{"point"},
		}
		if i%2 == 0 {
			sections[i].Examples = []string{"example"}
		}
	}
	return NewCollection(sections)
}

func TestNewReaderInitialState(t *testing.T) {
	r := NewReader(testCollection(3))
	want := State{Index: 0, Disclosed: false, Len: 3}
	if diff := cmp.Diff(want, r.State()); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}
	if !r.IsFirst() || r.IsLast() {
		t.Errorf("IsFirst=%v IsLast=%v, want true false", r.IsFirst(), r.IsLast())
	}
}

func TestNextPrevious(t *testing.T) {
	tests := []struct {
		name   string
		length int
		ops    string // n=next p=previous t=toggle
		want   State
	}{
		{"next from start", 3, "n", State{Index: 1, Len: 3}},
		{"next to end", 3, "nn", State{Index: 2, Len: 3}},
		{"next past end is no-op", 3, "nnnn", State{Index: 2, Len: 3}},
		{"previous at start is no-op", 3, "p", State{Index: 0, Len: 3}},
		{"previous after next", 3, "nnp", State{Index: 1, Len: 3}},
		{"toggle keeps index", 3, "nt", State{Index: 1, Disclosed: true, Len: 3}},
		{"next closes panel", 3, "tn", State{Index: 1, Len: 3}},
		{"previous closes panel", 3, "ntp", State{Index: 0, Len: 3}},
		{"blocked next keeps panel", 2, "ntn", State{Index: 1, Disclosed: true, Len: 2}},
		{"blocked previous keeps panel", 2, "tp", State{Index: 0, Disclosed: true, Len: 2}},
		{"toggle twice", 1, "tt", State{Index: 0, Len: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(testCollection(tt.length))
			for _, op := range tt.ops {
				switch op {
				case 'n':
					r.Next()
				case 'p':
					r.Previous()
				case 't':
					r.ToggleDisclosure()
				}
			}
			if diff := cmp.Diff(tt.want, r.State()); diff != "" {
				t.Errorf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJumpTo(t *testing.T) {
	r := NewReader(testCollection(5))

	if err := r.JumpTo(3); err != nil {
		t.Fatalf("JumpTo(3): %v", err)
	}
	if r.Index() != 3 {
		t.Errorf("Index() = %d, want 3", r.Index())
	}

	r.ToggleDisclosure()
	if err := r.JumpTo(3); err != nil {
		t.Fatalf("JumpTo(3) again: %v", err)
	}
	if r.Disclosed() {
		t.Error("jumping to the current section should close the panel")
	}
	if r.Index() != 3 {
		t.Errorf("Index() = %d, want 3", r.Index())
	}
}

func TestJumpToOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 5, 100} {
		t.Run(fmt.Sprint(idx), func(t *testing.T) {
			r := NewReader(testCollection(5))
			_ = r.JumpTo(2)
			r.ToggleDisclosure()
			before := r.State()

			err := r.JumpTo(idx)
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("JumpTo(%d) error = %v, want ErrOutOfRange", idx, err)
			}
			var oor *OutOfRangeError
			if !errors.As(err, &oor) {
				t.Fatalf("error %T is not *OutOfRangeError", err)
			}
			if oor.Index != idx || oor.Len != 5 {
				t.Errorf("OutOfRangeError = %+v, want Index %d Len 5", oor, idx)
			}
			if diff := cmp.Diff(before, r.State()); diff != "" {
				t.Errorf("rejected jump changed state (-before +after):\n%s", diff)
			}
		})
	}
}

func TestScenarioThreeSections(t *testing.T) {
	r := NewReader(testCollection(3))
	r.ToggleDisclosure()
	r.Next()
	r.Next()
	r.Previous()

	want := State{Index: 1, Disclosed: false, Len: 3}
	if diff := cmp.Diff(want, r.State()); diff != "" {
		t.Errorf("final state mismatch (-want +got):\n%s", diff)
	}
}

func TestSingleSection(t *testing.T) {
	r := NewReader(testCollection(1))
	check := func(step string) {
		t.Helper()
		if !r.IsFirst() || !r.IsLast() {
			t.Errorf("%s: IsFirst=%v IsLast=%v, want both true", step, r.IsFirst(), r.IsLast())
		}
		if r.Index() != 0 {
			t.Errorf("%s: Index() = %d, want 0", step, r.Index())
		}
	}
	check("start")
	r.Next()
	check("after Next")
	r.Previous()
	check("after Previous")
	if got := r.ProgressLabel(); got != "1 / 1" {
		t.Errorf("ProgressLabel() = %q, want %q", got, "1 / 1")
	}
}

func TestEmptyCollection(t *testing.T) {
	for _, c := range []*Collection{nil, NewCollection(nil)} {
		r := NewReader(c)
		r.Next()
		r.Previous()
		r.ToggleDisclosure()
		if err := r.JumpTo(0); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("JumpTo(0) on empty collection error = %v, want ErrOutOfRange", err)
		}

		if diff := cmp.Diff(State{}, r.State()); diff != "" {
			t.Errorf("empty state mismatch (-want +got):\n%s", diff)
		}
		if !r.Empty() {
			t.Error("Empty() = false")
		}
		if _, ok := r.Current(); ok {
			t.Error("Current() reported a section for an empty collection")
		}
		if r.HasExamples() {
			t.Error("HasExamples() = true for an empty collection")
		}
		if !r.IsLast() {
			t.Error("IsLast() should be true so forward controls disable")
		}
		if cur, total := r.Progress(); cur != 0 || total != 0 {
			t.Errorf("Progress() = %d, %d, want 0, 0", cur, total)
		}
		if got := r.ProgressLabel(); got != "0 / 0" {
			t.Errorf("ProgressLabel() = %q, want %q", got, "0 / 0")
		}
		if dots := r.Indicator(); len(dots) != 0 {
			t.Errorf("Indicator() = %v, want none", dots)
		}
	}
}

func TestProgressAndCurrent(t *testing.T) {
	r := NewReader(testCollection(4))
	r.Next()

	cur, total := r.Progress()
	if cur != 2 || total != 4 {
		t.Errorf("Progress() = %d, %d, want 2, 4", cur, total)
	}
	if got := r.ProgressLabel(); got != "2 / 4" {
		t.Errorf("ProgressLabel() = %q, want %q", got, "2 / 4")
	}
	s, ok := r.Current()
	if !ok || s.Title != "Section 2" {
		t.Errorf("Current() = %q, %v, want Section 2", s.Title, ok)
	}
	if r.HasExamples() {
		t.Error("Section 2 has no examples")
	}
}

func TestIndicator(t *testing.T) {
	r := NewReader(testCollection(3))
	_ = r.JumpTo(2)

	want := []Dot{
		{Index: 0, Title: "Section 1"},
		{Index: 1, Title: "Section 2"},
		{Index: 2, Title: "Section 3", Current: true},
	}
	if diff := cmp.Diff(want, r.Indicator()); diff != "" {
		t.Errorf("Indicator() mismatch (-want +got):\n%s", diff)
	}
}

// TestNavigationProperties checks the state machine against a trivial model
// for random collections and operation sequences.
func TestNavigationProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(t, "sections")
		r := NewReader(testCollection(n))

		index, disclosed := 0, false
		ops := rapid.SliceOf(rapid.IntRange(0, 3)).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				r.Next()
				if index < n-1 {
					index++
					disclosed = false
				}
			case 1:
				r.Previous()
				if index > 0 {
					index--
					disclosed = false
				}
			case 2:
				target := rapid.IntRange(-2, n+1).Draw(t, "target")
				err := r.JumpTo(target)
				valid := target >= 0 && target < n
				if valid != (err == nil) {
					t.Fatalf("JumpTo(%d) with %d sections: err = %v", target, n, err)
				}
				if valid {
					index = target
					disclosed = false
				}
			case 3:
				r.ToggleDisclosure()
				if n > 0 {
					disclosed = !disclosed
				}
			}

			got := r.State()
			if got.Index != index || got.Disclosed != disclosed {
				t.Fatalf("state = %+v, want index %d disclosed %v", got, index, disclosed)
			}
			if n > 0 && (got.Index < 0 || got.Index >= n) {
				t.Fatalf("index %d escaped [0, %d)", got.Index, n)
			}
			if r.IsFirst() != (index == 0) {
				t.Fatalf("IsFirst() = %v at index %d", r.IsFirst(), index)
			}
			if n > 0 && r.IsLast() != (index == n-1) {
				t.Fatalf("IsLast() = %v at index %d of %d", r.IsLast(), index, n)
			}
		}
	})
}

func TestNextRepeatedReachesLast(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "sections")
		r := NewReader(testCollection(n))
		for i := 0; i < n; i++ {
			r.Next()
		}
		if r.Index() != n-1 {
			t.Fatalf("after %d Next() calls Index() = %d, want %d", n, r.Index(), n-1)
		}
		r.ToggleDisclosure()
		r.Next()
		if r.Index() != n-1 || !r.Disclosed() {
			t.Fatalf("Next() at the last section changed state: %+v", r.State())
		}
	})
}
