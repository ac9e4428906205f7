// Package reader provides the section navigation core and the section sources
// it reads from.
package reader

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by JumpTo for an index outside [0, Len).
var ErrOutOfRange = errors.New("section index out of range")

// OutOfRangeError describes a rejected jump.
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("section index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// State is a snapshot of the navigation state. Index is meaningless when
// Len is 0.
type State struct {
	Index     int
	Disclosed bool
	Len       int
}

// Reader holds the navigation state for one reading session: which section is
// current and whether its example panel is open. It is owned by a single
// presentation and is not safe for concurrent use.
type Reader struct {
	sections  *Collection
	index     int
	disclosed bool
}

// NewReader starts a session on c at the first section with the example
// panel closed.
func NewReader(c *Collection) *Reader {
	if c == nil {
		c = NewCollection(nil)
	}
	return &Reader{sections: c}
}

// moveTo is the only place the index changes. Every move closes the example
// panel, including a move to the section already shown.
func (r *Reader) moveTo(i int) {
	r.index = i
	r.disclosed = false
}

// Next moves to the following section. It does nothing on the last section.
func (r *Reader) Next() {
	if r.index < r.sections.Len()-1 {
		r.moveTo(r.index + 1)
	}
}

// Previous moves to the preceding section. It does nothing on the first section.
func (r *Reader) Previous() {
	if r.index > 0 {
		r.moveTo(r.index - 1)
	}
}

// JumpTo makes section i current. Out-of-range indices are rejected with an
// *OutOfRangeError and leave the state unchanged; on an empty collection every
// index is out of range.
func (r *Reader) JumpTo(i int) error {
	if i < 0 || i >= r.sections.Len() {
		return &OutOfRangeError{Index: i, Len: r.sections.Len()}
	}
	r.moveTo(i)
	return nil
}

// ToggleDisclosure opens or closes the example panel of the current section.
// It is allowed for sections without examples; renderers simply have nothing
// to show. On an empty collection it does nothing.
func (r *Reader) ToggleDisclosure() {
	if r.Empty() {
		return
	}
	r.disclosed = !r.disclosed
}

// Empty reports whether there is no current section.
func (r *Reader) Empty() bool {
	return r.sections.Len() == 0
}

// Len returns the number of sections in the session.
func (r *Reader) Len() int {
	return r.sections.Len()
}

// Index returns the current section index.
func (r *Reader) Index() int {
	return r.index
}

// Disclosed reports whether the example panel is open.
func (r *Reader) Disclosed() bool {
	return r.disclosed
}

// State returns a snapshot of the navigation state.
func (r *Reader) State() State {
	return State{Index: r.index, Disclosed: r.disclosed, Len: r.sections.Len()}
}

// Current returns the current section, or false for an empty collection.
func (r *Reader) Current() (Section, bool) {
	return r.sections.At(r.index)
}

// HasExamples reports whether the current section has examples to disclose.
func (r *Reader) HasExamples() bool {
	if r.Empty() {
		return false
	}
	return r.sections.hasExamples(r.index)
}

// IsFirst reports whether the current section is the first one.
func (r *Reader) IsFirst() bool {
	return r.index == 0
}

// IsLast reports whether the current section is the last one. It is also true
// for an empty collection so that forward controls render disabled.
func (r *Reader) IsLast() bool {
	return r.index >= r.sections.Len()-1
}

// Progress returns the 1-based current position and the section count.
// Both are 0 for an empty collection.
func (r *Reader) Progress() (current, total int) {
	if r.Empty() {
		return 0, 0
	}
	return r.index + 1, r.sections.Len()
}

// ProgressLabel renders Progress as "current / total".
func (r *Reader) ProgressLabel() string {
	current, total := r.Progress()
	return fmt.Sprintf("%d / %d", current, total)
}
