package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxItemTitle bounds the visible text of a listing anchor; anything longer
// is presumed a non-content anchor (teaser paragraph wrapped in a link).
const maxItemTitle = 120

// Item is one (title, link-path) pair extracted from a listing page.
type Item struct {
	Title string
	Path  string
}

// ParseList extracts content items from listing-page markup in document
// order. sectionPath is the listing page's own path: anchors at or above its
// depth are section index links, not items, and are dropped. The anchor must
// point under pathPrefix and carry a non-empty visible text of at most 120
// characters. Duplicate (title, path) pairs keep their first occurrence.
//
// An empty result is not an error; the caller presents it as "no content".
func ParseList(markup, pathPrefix, sectionPath string) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	sectionDepth := pathDepth(sectionPath)
	seen := make(map[Item]struct{})
	var items []Item

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if !strings.HasPrefix(href, pathPrefix) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		path := ref.Path

		title := collapseSpace(s.Text())
		if title == "" || len([]rune(title)) > maxItemTitle {
			return
		}
		if pathDepth(path) <= sectionDepth {
			return
		}

		it := Item{Title: title, Path: path}
		if _, dup := seen[it]; dup {
			return
		}
		seen[it] = struct{}{}
		items = append(items, it)
	})

	return items, nil
}

// pathDepth counts non-empty path segments.
func pathDepth(p string) int {
	n := 0
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			n++
		}
	}
	return n
}

// collapseSpace trims and collapses all runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
