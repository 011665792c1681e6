package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Detail is the cleaned form of a content leaf page. Title may be empty when
// the page carries no primary heading; Body is plain text with paragraph
// breaks preserved as double line breaks.
type Detail struct {
	Title string
	Body  string
}

// timestampLine matches prayer-time rows the content host renders between
// paragraphs.
var timestampLine = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// boilerplatePrefixes are the known openings of navigation, footer, and
// app-promo lines on the content host.
var boilerplatePrefixes = []string{
	"الرئيسية",
	"القائمة الرئيسية",
	"تحميل التطبيق",
	"حمّل تطبيق",
	"جميع الحقوق محفوظة",
	"©",
	"سياسة الخصوصية",
	"تواصل معنا",
	"شارك هذه الصفحة",
}

// reservedMenuLabels are the bot's top-level menu labels; a body line equal to
// one of them is a leaked navigation item, not content.
var reservedMenuLabels = map[string]struct{}{
	"الأدعية":            {},
	"الزيارات":           {},
	"المناجات والتسابيح": {},
	"الأعمال":            {},
	"المناجات":           {},
	"التسابيح":           {},
}

// blockTags are elements that introduce a line boundary in text extraction.
var blockTags = map[string]struct{}{
	"address": {}, "article": {}, "blockquote": {}, "dd": {}, "div": {},
	"dl": {}, "dt": {}, "fieldset": {}, "figcaption": {}, "figure": {},
	"form": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"hr": {}, "li": {}, "main": {}, "ol": {}, "p": {}, "pre": {},
	"section": {}, "table": {}, "td": {}, "th": {}, "tr": {}, "ul": {},
}

// CleanDetail extracts (title, body) from detail-page markup.
//
// The body is assembled line by line: non-content subtrees are removed,
// block elements become line boundaries, then timestamp rows, boilerplate
// lines, and menu labels are dropped. An empty title or body is not an
// error; the caller decides how to present "no extractable text".
func CleanDetail(markup string) (Detail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Detail{}, err
	}

	heading := doc.Find("h1").First()
	title := collapseSpace(heading.Text())
	heading.Remove()

	doc.Find("script, style, nav, header, footer, aside").Remove()

	sel := doc.Find("body")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	var sb strings.Builder
	for _, n := range sel.Nodes {
		writeLines(n, &sb)
	}

	var kept []string
	for _, line := range strings.Split(sb.String(), "\n") {
		line = strings.TrimSpace(line)
		if dropLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	body := strings.Join(kept, "\n")

	body = stripLeadingTitle(title, body)
	body = excessBlankLines.ReplaceAllString(body, "\n\n")
	body = strings.TrimSpace(body)

	return Detail{Title: title, Body: body}, nil
}

func dropLine(line string) bool {
	if line == "" {
		return false // blank lines carry paragraph structure
	}
	if timestampLine.MatchString(line) {
		return true
	}
	if _, reserved := reservedMenuLabels[line]; reserved {
		return true
	}
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// stripLeadingTitle removes a heading duplicated inside the body by cutting
// everything up to and including the first occurrence of title.
//
// Known edge case: when the title recurs only as a substring of unrelated
// text, the cut lands inside that text and drops preceding content. Kept as
// an isolated step so the heuristic can be revisited on its own.
func stripLeadingTitle(title, body string) string {
	if title == "" {
		return body
	}
	idx := strings.Index(body, title)
	if idx < 0 {
		return body
	}
	return strings.TrimLeft(body[idx+len(title):], " \n")
}

// writeLines renders the node's text content, emitting line breaks at block
// element boundaries so the original line structure survives extraction.
func writeLines(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			sb.WriteByte('\n')
			return
		}
		_, block := blockTags[n.Data]
		if block {
			sb.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeLines(c, sb)
		}
		if block {
			sb.WriteByte('\n')
		}
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeLines(c, sb)
		}
	}
}
