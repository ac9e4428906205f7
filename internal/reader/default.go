package reader

import (
	_ "embed"
	"fmt"
)

//go:embed default_course.yaml
var defaultCourseYAML []byte

// DefaultCourse returns the built-in sample course.
func DefaultCourse() (*Course, error) {
	course, err := ParseYAML(defaultCourseYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in course: %w", err)
	}
	return course, nil
}
