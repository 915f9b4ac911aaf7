// Package schema maps loosely-structured tabular extracts onto the fixed
// column sets the repositories expect. Source files name their columns
// unpredictably ("Ticker" vs "SYMBOL", "Last" vs "Close"), so every canonical
// field carries an ordered candidate list and resolution is case-insensitive:
// an exact match is preferred, a substring match accepted.
package schema

import (
	"fmt"
	"strings"
	"time"
)

// Table is a raw tabular extract: ordered header plus string cell rows.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Error lists every canonical field for which no source column matched.
// Resolution never succeeds partially; callers get the full list at once.
type Error struct {
	Missing []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("could not resolve columns for: %s", strings.Join(e.Missing, ", "))
}

// Field is one canonical column and the source names that may carry it.
type Field struct {
	Name       string
	Candidates []string
	Optional   bool
}

// PriceFields is the rule table for NGX daily price lists.
var PriceFields = []Field{
	{Name: "symbol", Candidates: []string{"symbol", "ticker"}},
	{Name: "open", Candidates: []string{"open"}},
	{Name: "high", Candidates: []string{"high"}},
	{Name: "low", Candidates: []string{"low"}},
	{Name: "close", Candidates: []string{"close", "price", "last"}},
	{Name: "volume", Candidates: []string{"volume", "vol"}},
	{Name: "value", Candidates: []string{"value", "naira value"}, Optional: true},
	{Name: "trades", Candidates: []string{"deals", "trades"}, Optional: true},
}

// SecurityFields is the rule table for securities master files.
var SecurityFields = []Field{
	{Name: "ticker", Candidates: []string{"ticker", "symbol"}},
	{Name: "company", Candidates: []string{"company", "name"}},
	{Name: "sector", Candidates: []string{"sector"}, Optional: true},
	{Name: "industry", Candidates: []string{"industry", "sub-sector", "subsector"}, Optional: true},
	{Name: "isin", Candidates: []string{"isin"}, Optional: true},
	{Name: "listing_date", Candidates: []string{"listing date", "listed"}, Optional: true},
}

// dateCandidates resolve the date column when no trading date is supplied.
var dateCandidates = []string{"date", "trade date", "trading date"}

// FilingColumns is the canonical column set of the corporate_filings table.
// Filings are shaped structurally by the table locator rather than by alias
// matching, but the canonical list is owned here with the other schemas.
var FilingColumns = []string{
	"company_name",
	"symbol",
	"disclosure_title",
	"disclosure_type",
	"disclosure_date",
	"source_url",
	"pdf_url",
	"local_pdf_path",
}

// Resolve maps canonical field names to source column indices. Missing
// optional fields resolve to -1; missing required fields are collected into
// a single *Error.
func Resolve(columns []string, fields []Field) (map[string]int, error) {
	idx := make(map[string]int, len(fields))
	var missing []string
	for _, f := range fields {
		i := findColumn(columns, f.Candidates)
		if i < 0 && !f.Optional {
			missing = append(missing, f.Name)
			continue
		}
		idx[f.Name] = i
	}
	if len(missing) > 0 {
		return nil, &Error{Missing: missing}
	}
	return idx, nil
}

// findColumn returns the index of the first column matching any candidate.
// Candidates are tried in order; each candidate prefers an exact
// case-insensitive match over a substring match, so "close" picks a "Close"
// column ahead of "Previous Close".
func findColumn(columns []string, candidates []string) int {
	lower := make([]string, len(columns))
	for i, c := range columns {
		lower[i] = strings.ToLower(strings.TrimSpace(c))
	}
	for _, cand := range candidates {
		for i, name := range lower {
			if name == cand {
				return i
			}
		}
		for i, name := range lower {
			if strings.Contains(name, cand) {
				return i
			}
		}
	}
	return -1
}

// dateFormats are the calendar formats seen across NGX files and the
// disclosures page, tried in order.
var dateFormats = []string{
	"2006-01-02",
	"02-Jan-2006",
	"02 Jan 2006",
	"Jan 02, 2006",
	"02/01/2006",
}

// ParseDate parses a calendar date in any of the known NGX formats.
// Returns the zero time and false when nothing matches.
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if d, err := time.Parse(layout, text); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
