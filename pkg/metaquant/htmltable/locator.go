// Package htmltable locates the corporate-disclosures table inside a rendered
// NGX page and extracts filing rows from it. The page has no fixed schema, so
// the table is found by header-text heuristics: ordered vocabularies of header
// words, kept as data so the rules stay testable against synthetic fixtures.
//
// Parsing is best-effort by design. A structural change to the page yields an
// empty result with a diagnosable reason instead of an error; the page is an
// uncontrolled third party.
package htmltable

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/schema"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// Reason explains a zero-row extraction.
type Reason int

const (
	OK Reason = iota
	NoTables
	NoMatch
	NoDataRows
)

func (r Reason) String() string {
	switch r {
	case OK:
		return "ok"
	case NoTables:
		return "no <table> elements in document"
	case NoMatch:
		return "no table matched the disclosure header heuristic"
	case NoDataRows:
		return "matched table has no data rows"
	}
	return "unknown"
}

// Header vocabularies for the four logical columns, in candidate priority
// order. Index resolution tries each word in turn against every header cell.
var (
	issuerWords = []string{"issuer", "company", "security"}
	titleWords  = []string{"disclosure", "title", "headline", "subject", "description"}
	dateWords   = []string{"date", "submitted", "released"}
	typeWords   = []string{"category", "type", "segment", "classification"}
)

// qualifying vocabularies: a table is the disclosures table when its header
// row has an issuer-like cell and at least one title-like or date-like cell.
var (
	qualifyIssuer = []string{"company", "issuer"}
	qualifyTitle  = []string{"disclosure", "headline", "subject"}
	qualifyDate   = []string{"date"}
)

// Extraction is the outcome of scanning one document.
type Extraction struct {
	Filings []store.Filing
	Reason  Reason
}

// ExtractFilings walks the document in order, picks the first table whose
// header row qualifies, and shapes its data rows into filings. Rows without a
// disclosure title are dropped; every other missing logical column degrades
// to an empty value. Anchor hrefs are resolved against base, and URLs ending
// in ".pdf" are additionally tagged as direct PDF links.
func ExtractFilings(doc *html.Node, base *url.URL) Extraction {
	tables := findAll(doc, "table")
	if len(tables) == 0 {
		return Extraction{Reason: NoTables}
	}

	table, header := selectTable(tables)
	if table == nil {
		return Extraction{Reason: NoMatch}
	}

	rows := findAll(table, "tr")
	if len(rows) <= 1 {
		return Extraction{Reason: NoDataRows}
	}

	issuerIdx := findIndex(header, issuerWords)
	titleIdx := findIndex(header, titleWords)
	dateIdx := findIndex(header, dateWords)
	typeIdx := findIndex(header, typeWords)

	var filings []store.Filing
	for _, row := range rows[1:] {
		cells := findAll(row, "td")
		if len(cells) == 0 {
			continue
		}

		f := store.Filing{
			CompanyName: cellText(cells, issuerIdx),
			Title:       cellText(cells, titleIdx),
			Type:        cellText(cells, typeIdx),
		}
		if f.Title == "" {
			continue // title is the only load-bearing field
		}
		if d, ok := schema.ParseDate(cellText(cells, dateIdx)); ok {
			f.Date = d
		}

		if href := firstHref(row); href != "" {
			f.SourceURL = resolveURL(base, href)
			if strings.HasSuffix(strings.ToLower(f.SourceURL), ".pdf") {
				f.PDFURL = f.SourceURL
			}
		}

		filings = append(filings, f)
	}
	return Extraction{Filings: filings, Reason: OK}
}

// selectTable returns the first table whose header row qualifies, together
// with its lower-cased header cells. No scoring, no backtracking.
func selectTable(tables []*html.Node) (*html.Node, []string) {
	for _, t := range tables {
		header := headerCells(t)
		if len(header) == 0 {
			continue
		}
		if matchesAny(header, qualifyIssuer) &&
			(matchesAny(header, qualifyTitle) || matchesAny(header, qualifyDate)) {
			return t, header
		}
	}
	return nil, nil
}

// headerCells returns the lower-cased text of the th/td cells in the table's
// first row.
func headerCells(table *html.Node) []string {
	rows := findAll(table, "tr")
	if len(rows) == 0 {
		return nil
	}
	var cells []string
	for _, c := range findAll(rows[0], "th", "td") {
		cells = append(cells, strings.ToLower(nodeText(c)))
	}
	return cells
}

func matchesAny(cells []string, words []string) bool {
	for _, cell := range cells {
		for _, w := range words {
			if strings.Contains(cell, w) {
				return true
			}
		}
	}
	return false
}

// findIndex resolves a logical column to a cell index, candidate-major so
// earlier vocabulary words win across differently-ordered page revisions.
// Returns -1 when nothing matches.
func findIndex(cells []string, words []string) int {
	for _, w := range words {
		for i, cell := range cells {
			if strings.Contains(cell, w) {
				return i
			}
		}
	}
	return -1
}

func cellText(cells []*html.Node, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return nodeText(cells[i])
}

// firstHref returns the href of the first anchor anywhere in the row.
func firstHref(row *html.Node) string {
	for _, a := range findAll(row, "a") {
		for _, attr := range a.Attr {
			if attr.Key == "href" && attr.Val != "" {
				return attr.Val
			}
		}
	}
	return ""
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// findAll collects elements matching any of the tags, in document order.
func findAll(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			for _, t := range tags {
				if node.Data == t {
					out = append(out, node)
					break
				}
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// nodeText concatenates the text content of a node, whitespace-collapsed.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
