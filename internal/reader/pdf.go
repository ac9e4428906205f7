package reader

import (
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFFormat implements Format for PDF files: one section per page with text,
// titled by the page's first line.
type PDFFormat struct{}

func init() {
	Register(&PDFFormat{})
}

func (f *PDFFormat) Name() string         { return "PDF" }
func (f *PDFFormat) Extensions() []string { return []string{".pdf"} }

func (f *PDFFormat) Load(filename string) (*Course, error) {
	pages, err := extractPDFPages(filename)
	if err != nil {
		return nil, err
	}
	return NewCourse("", NewCollection(sectionsFromPages(pages))), nil
}

func extractPDFPages(path string) ([]string, error) {
	f, r, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// sectionsFromPages turns page texts into sections, skipping blank pages.
// The first non-empty line is the title; the rest is the content.
func sectionsFromPages(pages []string) []Section {
	var sections []Section
	for i, page := range pages {
		var lines []string
		for _, line := range strings.Split(page, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}
		sections = append(sections, Section{
			ID:      fmt.Sprintf("page-%d", i+1),
			Title:   lines[0],
			Content: strings.Join(lines[1:], "\n"),
		})
	}
	return sections
}
