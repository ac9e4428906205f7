package reader

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// NCX XML structures for parsing toc.ncx.
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     navLabel   `xml:"navLabel"`
	Content   navContent `xml:"content"`
	Children  []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// readTOC maps spine hrefs of book to their table-of-contents titles. Each
// entry is reachable by its full href, its href without fragment and its base
// name.
func readTOC(book *epub.Rootfile) (map[string]string, error) {
	item := ncxItem(book.Manifest.Items)
	if item == nil {
		return nil, fmt.Errorf("no NCX file found in EPUB")
	}
	r, err := item.Open()
	if err != nil {
		return nil, fmt.Errorf("open NCX %s: %w", item.HREF, err)
	}
	defer r.Close()

	var toc ncx
	if err := xml.NewDecoder(r).Decode(&toc); err != nil {
		return nil, fmt.Errorf("failed to parse NCX: %w", err)
	}
	return tocHrefMap(toc.NavMap.NavPoints), nil
}

// tocHrefMap flattens nav points into href -> title. The first title seen for
// an href wins, so a chapter keeps its own label rather than a sub-entry's.
func tocHrefMap(points []navPoint) map[string]string {
	result := make(map[string]string)
	add := func(href, title string) {
		if _, exists := result[href]; !exists {
			result[href] = title
		}
	}

	var extract func(points []navPoint)
	extract = func(points []navPoint) {
		for _, np := range points {
			href := np.Content.Src
			title := strings.TrimSpace(np.Label.Text)

			add(href, title)
			if idx := strings.Index(href, "#"); idx != -1 {
				add(href[:idx], title)
			}
			baseHref := path.Base(href)
			if idx := strings.Index(baseHref, "#"); idx != -1 {
				baseHref = baseHref[:idx]
			}
			add(baseHref, title)

			extract(np.Children)
		}
	}
	extract(points)

	return result
}

// ncxItem finds the NCX in a manifest, by media type first and then by
// extension.
func ncxItem(items []epub.Item) *epub.Item {
	for i := range items {
		if items[i].MediaType == "application/x-dtbncx+xml" {
			return &items[i]
		}
	}
	for i := range items {
		if strings.HasSuffix(strings.ToLower(items[i].HREF), ".ncx") {
			return &items[i]
		}
	}
	return nil
}
