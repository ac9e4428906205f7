package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedFormat is returned by Load for an extension no format handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format defines a file format that can supply a Course.
type Format interface {
	Name() string
	Extensions() []string
	Load(filename string) (*Course, error)
}

var registry []Format

// Register adds a format to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Lookup returns the registered format handling filename's extension.
func Lookup(filename string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f, true
			}
		}
	}
	return nil, false
}

// Load reads a course from filename using the format registered for its
// extension.
func Load(filename string) (*Course, error) {
	f, ok := Lookup(filename)
	if !ok {
		return nil, fmt.Errorf("%s: %w (%q)", filename, ErrUnsupportedFormat, filepath.Ext(filename))
	}
	course, err := f.Load(filename)
	if err != nil {
		return nil, fmt.Errorf("load %s as %s: %w", filename, f.Name(), err)
	}
	if course.Title == "" {
		course.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return course, nil
}

// SupportedFormats returns registered format names with their extensions,
// sorted by name.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	sort.Strings(out)
	return out
}
