package reader

import (
	"bytes"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownFormat implements Format for Markdown files.
//
// Each level-2 heading starts a section (level-1 when the document has no
// level-2 headings). Under a section, a sub-heading named like "Key points"
// or "Examples" routes the following list into that field; every other block
// becomes section content. Text under a higher-level heading, such as an
// introduction below the course title, becomes a section named after that
// heading ("Introduction" when there is none).
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

func (f *MarkdownFormat) Load(filename string) (*Course, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseMarkdown(data), nil
}

type mdTarget int

const (
	mdNone mdTarget = iota
	mdContent
	mdKeyPoints
	mdExamples
)

var (
	keyPointHeadings = []string{"key points", "key point", "key concepts", "core concepts", "takeaways"}
	exampleHeadings  = []string{"examples", "example", "life examples", "everyday examples", "case studies"}
)

func headingTarget(title string) mdTarget {
	t := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(title, ":")))
	for _, h := range keyPointHeadings {
		if t == h {
			return mdKeyPoints
		}
	}
	for _, h := range exampleHeadings {
		if t == h {
			return mdExamples
		}
	}
	return mdContent
}

// ParseMarkdown builds a course from Markdown source.
func ParseMarkdown(src []byte) *Course {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	sectionLevel := 1
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 2 {
			sectionLevel = 2
			break
		}
	}

	var (
		title    string
		pending  string
		sections []Section
		current  *Section
		content  []string
		target   = mdNone
	)

	// open starts a section for loose text outside any section heading.
	open := func() {
		if current != nil {
			return
		}
		name := pending
		if name == "" {
			name = "Introduction"
		}
		current = &Section{Title: name}
		target = mdContent
		pending = ""
	}

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.Join(content, "\n\n")
		sections = append(sections, *current)
		current = nil
		content = nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			heading := inlineText(node, src)
			switch {
			case node.Level == sectionLevel:
				flush()
				current = &Section{Title: heading}
				target = mdContent
				pending = ""
			case node.Level < sectionLevel:
				flush()
				if title == "" {
					title = heading
				}
				pending = heading
				target = mdNone
			case current != nil:
				target = headingTarget(heading)
				if target == mdContent {
					content = append(content, "**"+heading+"**")
				}
			}

		case *ast.List:
			items := listItems(node, src)
			if len(items) == 0 {
				continue
			}
			open()
			switch target {
			case mdKeyPoints:
				current.KeyPoints = append(current.KeyPoints, items...)
			case mdExamples:
				current.Examples = append(current.Examples, items...)
			default:
				for i := range items {
					items[i] = "- " + items[i]
				}
				content = append(content, strings.Join(items, "\n"))
			}

		default:
			if t := blockText(n, src); t != "" {
				open()
				if target == mdExamples {
					current.Examples = append(current.Examples, t)
				} else {
					content = append(content, t)
				}
			}
		}
	}
	flush()

	return NewCourse(title, NewCollection(sections))
}

func listItems(list *ast.List, src []byte) []string {
	var items []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if t := inlineText(item, src); t != "" {
			items = append(items, t)
		}
	}
	return items
}

// blockText renders a non-heading, non-list block as Markdown-ish text.
func blockText(n ast.Node, src []byte) string {
	switch node := n.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var buf bytes.Buffer
		buf.WriteString("```\n")
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		buf.WriteString("```")
		return buf.String()
	case *ast.Blockquote:
		t := inlineText(node, src)
		if t == "" {
			return ""
		}
		return "> " + t
	case *ast.ThematicBreak, *ast.HTMLBlock:
		return ""
	}
	return inlineText(n, src)
}

// inlineText collects the text of every inline descendant of n.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.Paragraph, *ast.TextBlock:
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(buf.String()), " ")
}
