package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metcalfc/lrn/internal/reader"
	"github.com/metcalfc/lrn/internal/variant"
)

// execute runs the root command with args and returns what the presentation
// would have been given.
func execute(t *testing.T, args ...string) (app, string, error) {
	t.Helper()
	var got app
	cmd := newRootCmd(func(ctx context.Context, a app) error {
		got = a
		return nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return got, out.String(), err
}

func TestRootCommandDefaults(t *testing.T) {
	t.Setenv(modeEnv, "")

	a, _, err := execute(t)
	require.NoError(t, err)
	require.NotNil(t, a.course)
	assert.Equal(t, "Foundations of Educational Theory", a.course.Title)
	assert.Empty(t, a.source)
	assert.Equal(t, variant.Mode(""), a.mode, "no mode means the selector is shown")
	assert.False(t, a.watch)
	require.NotNil(t, a.logger)
}

func TestRootCommandMode(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		args    []string
		want    variant.Mode
		wantErr bool
	}{
		{"flag", "", []string{"--mode", "beginner"}, variant.Beginner, false},
		{"short flag alias", "", []string{"-m", "full"}, variant.Comprehensive, false},
		{"env default", "simple", nil, variant.Beginner, false},
		{"flag beats env", "beginner", []string{"-m", "comprehensive"}, variant.Comprehensive, false},
		{"unknown mode", "", []string{"-m", "expert"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(modeEnv, tt.env)
			a, _, err := execute(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.mode != tt.want {
				t.Errorf("mode = %q, want %q", a.mode, tt.want)
			}
		})
	}
}

func TestRootCommandCourseFile(t *testing.T) {
	t.Setenv(modeEnv, "")

	a, _, err := execute(t, "--watch", filepath.Join("testdata", "memory.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "How Memory Works", a.course.Title)
	assert.Equal(t, filepath.Join("testdata", "memory.yaml"), a.source)
	assert.True(t, a.watch)

	comp := a.course.Collection(variant.Comprehensive)
	beg := a.course.Collection(variant.Beginner)
	assert.Equal(t, 2, comp.Len())
	assert.Equal(t, 2, beg.Len())
	s, ok := beg.At(0)
	require.True(t, ok)
	assert.Equal(t, []string{"Remembering a shopping list of three items without writing it down"}, s.Examples)
}

func TestRootCommandErrors(t *testing.T) {
	t.Setenv(modeEnv, "")

	_, _, err := execute(t, "--watch")
	assert.ErrorContains(t, err, "--watch needs a course file")

	_, _, err = execute(t, filepath.Join("testdata", "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")

	_, _, err = execute(t, "course.txt")
	assert.True(t, errors.Is(err, reader.ErrUnsupportedFormat), "got %v", err)

	_, _, err = execute(t, "a.yaml", "b.yaml")
	assert.Error(t, err, "only one file is accepted")
}

func TestRootCommandFormats(t *testing.T) {
	called := false
	cmd := newRootCmd(func(context.Context, app) error {
		called = true
		return nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--formats"})
	require.NoError(t, cmd.Execute())

	assert.False(t, called, "--formats does not start a reader")
	for _, want := range []string{"EPUB (.epub)", "JSON (.json)", "Markdown (.md, .markdown)", "PDF (.pdf)", "Word (.docx)", "YAML (.yaml, .yml)"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestRootCommandVersion(t *testing.T) {
	_, out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "lrn dev (commit: none, built: unknown)"), "got %q", out)
}

func TestLoadCourse(t *testing.T) {
	course, source, err := loadCourse([]string{filepath.Join("testdata", "learning-styles.md")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "learning-styles.md"), source)
	assert.Equal(t, "Learning Styles", course.Title)

	sections := course.Collection(variant.Beginner).Sections()
	require.Len(t, sections, 3)
	assert.Equal(t, []string{"Visual learners", "Auditory learners", "Kinesthetic learners"},
		[]string{sections[0].Title, sections[1].Title, sections[2].Title})
	assert.Equal(t, []string{"Use mind maps", "Color-code notes"}, sections[0].KeyPoints)
	assert.Len(t, sections[0].Examples, 2)
	assert.False(t, sections[1].HasExamples())
	assert.Equal(t, []string{"Learning to ride a bike by trying it"}, sections[2].Examples)
}

func TestNewLogger(t *testing.T) {
	nop, err := newLogger("", true)
	require.NoError(t, err)
	nop.Info("dropped")

	path := filepath.Join(t.TempDir(), "lrn.log")

	info, err := newLogger(path, false)
	require.NoError(t, err)
	info.Debug("hidden at info level")
	info.Info("course loaded")
	_ = info.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"course loaded"`)
	assert.NotContains(t, string(data), "hidden at info level")

	debugPath := filepath.Join(t.TempDir(), "debug.log")
	debug, err := newLogger(debugPath, true)
	require.NoError(t, err)
	debug.Debug("navigate")
	_ = debug.Sync()

	data, err = os.ReadFile(debugPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"navigate"`)
}
