package reader

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSectionFromHTML(t *testing.T) {
	htmlContent := `
	<html>
		<head><title>Test</title><style>p { color: red; }</style></head>
		<body>
			<h1>Chapter 1</h1>
			<p>This is the <b>first</b> paragraph.</p>
			<p>
				This is the second paragraph
				with a newline.
			</p>
			<ul>
				<li>First point</li>
				<li>Second <em>point</em></li>
			</ul>
			<aside>A worked example.</aside>
			<blockquote><p>A quoted case.</p></blockquote>
		</body>
	</html>
	`

	got, ok := sectionFromHTML(htmlContent)
	if !ok {
		t.Fatal("sectionFromHTML reported no content")
	}
	want := Section{
		Title:     "Chapter 1",
		Content:   "This is the first paragraph.\n\nThis is the second paragraph with a newline.",
		KeyPoints: []string{"First point", "Second point"},
		Examples:  []string{"A worked example.", "A quoted case."},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("section mismatch (-want +got):\n%s", diff)
	}
}

func TestSectionFromHTMLLooseText(t *testing.T) {
	got, ok := sectionFromHTML(`<html><body><h2>Title</h2><div>Some <span>nested</span> text.</div></body></html>`)
	if !ok {
		t.Fatal("sectionFromHTML reported no content")
	}
	if got.Title != "Title" {
		t.Errorf("Title = %q, want Title", got.Title)
	}
	if got.Content != "Some nested text." {
		t.Errorf("Content = %q, want %q", got.Content, "Some nested text.")
	}
}

func TestSectionFromHTMLEmpty(t *testing.T) {
	if _, ok := sectionFromHTML(`<html><head><title>Cover</title></head><body>  </body></html>`); ok {
		t.Error("a document without body text should be skipped")
	}
}
