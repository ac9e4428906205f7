package reader

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// EPUBFormat implements Format for EPUB files. Every spine item with text
// becomes one section.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

func (f *EPUBFormat) Load(filename string) (*Course, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	book := rc.Rootfiles[0]
	tocByHref, err := readTOC(book)
	if err != nil {
		tocByHref = map[string]string{}
	}

	var sections []Section
	for i, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}

		s, ok := sectionFromHTML(string(data))
		if !ok {
			continue
		}
		if t, ok := tocByHref[ref.Item.HREF]; ok && t != "" {
			s.Title = t
		} else if t, ok := tocByHref[path.Base(ref.Item.HREF)]; ok && t != "" {
			s.Title = t
		}
		if s.Title == "" {
			s.Title = fmt.Sprintf("Section %d", i+1)
		}
		s.ID = strings.TrimSuffix(path.Base(ref.Item.HREF), path.Ext(ref.Item.HREF))
		sections = append(sections, s)
	}

	return NewCourse(book.Title, NewCollection(sections)), nil
}

// sectionFromHTML maps one XHTML document to a section: the first h1-h3 is the
// title, paragraphs are content, list items are key points and asides or
// blockquotes are examples. It reports false when the document has no text.
func sectionFromHTML(s string) (Section, bool) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return Section{}, false
	}

	var sec Section
	var paragraphs []string
	var loose strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			loose.WriteString(n.Data)
			loose.WriteString(" ")
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Head, atom.Script, atom.Style, atom.Nav:
				return
			case atom.H1, atom.H2, atom.H3:
				if t := nodeText(n); t != "" {
					if sec.Title == "" {
						sec.Title = t
					} else {
						paragraphs = append(paragraphs, "**"+t+"**")
					}
				}
				return
			case atom.P, atom.Pre:
				if t := nodeText(n); t != "" {
					paragraphs = append(paragraphs, t)
				}
				return
			case atom.Li:
				if t := nodeText(n); t != "" {
					sec.KeyPoints = append(sec.KeyPoints, t)
				}
				return
			case atom.Aside, atom.Blockquote:
				if t := nodeText(n); t != "" {
					sec.Examples = append(sec.Examples, t)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	sec.Content = strings.Join(paragraphs, "\n\n")
	if sec.Content == "" {
		// Text outside any paragraph, e.g. bare text in a <div>.
		sec.Content = strings.Join(strings.Fields(loose.String()), " ")
	}
	if sec.Title == "" && sec.Content == "" && len(sec.KeyPoints) == 0 && len(sec.Examples) == 0 {
		return Section{}, false
	}
	return sec, true
}

// nodeText returns the whitespace-normalized text below n.
func nodeText(n *html.Node) string {
	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out.WriteString(n.Data)
			out.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(out.String()), " ")
}
