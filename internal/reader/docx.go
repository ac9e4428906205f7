package reader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXFormat implements Format for Word documents. Headings split sections the
// same way as in Markdown: Heading 2 when present, otherwise Heading 1.
type DOCXFormat struct{}

func init() {
	Register(&DOCXFormat{})
}

func (f *DOCXFormat) Name() string         { return "Word" }
func (f *DOCXFormat) Extensions() []string { return []string{".docx"} }

func (f *DOCXFormat) Load(filename string) (*Course, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	return ParseDOCX(file, info.Size())
}

// ParseDOCX builds a course from a .docx archive of the given size.
func ParseDOCX(r io.ReaderAt, size int64) (*Course, error) {
	doc, err := docx.Parse(r, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var paras []*docx.Paragraph
	sectionLevel := 1
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		paras = append(paras, para)
		if docxHeadingLevel(para) == 2 {
			sectionLevel = 2
		}
	}

	var (
		title    string
		sections []Section
		current  *Section
		content  []string
		target   = mdNone
	)
	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.Join(content, "\n\n")
		sections = append(sections, *current)
		current = nil
		content = nil
	}

	for _, para := range paras {
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		level := docxHeadingLevel(para)
		switch {
		case level == sectionLevel:
			flush()
			current = &Section{Title: text}
			target = mdContent
		case level > 0 && level < sectionLevel:
			flush()
			if title == "" {
				title = text
			}
			target = mdNone
		case current == nil:
			continue
		case level > sectionLevel:
			target = headingTarget(text)
			if target == mdContent {
				content = append(content, "**"+text+"**")
			}
		case docxIsListItem(para) && target == mdKeyPoints:
			current.KeyPoints = append(current.KeyPoints, text)
		case target == mdExamples:
			current.Examples = append(current.Examples, text)
		case target == mdKeyPoints:
			current.KeyPoints = append(current.KeyPoints, text)
		case docxIsListItem(para):
			content = append(content, "- "+text)
		default:
			content = append(content, text)
		}
	}
	flush()

	return NewCourse(title, NewCollection(sections)), nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	switch strings.TrimPrefix(style, "heading") {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	}
	return 0
}

func docxIsListItem(para *docx.Paragraph) bool {
	if para.Properties == nil {
		return false
	}
	if para.Properties.NumProperties != nil {
		return true
	}
	return para.Properties.Style != nil && strings.EqualFold(para.Properties.Style.Val, "ListParagraph")
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
