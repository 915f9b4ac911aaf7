package schema

import (
	"strings"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// NormalizeSecurities shapes a raw securities master table into canonical
// records. Tickers are trimmed and upper-cased; rows without a ticker are
// skipped. Optional columns degrade to empty values.
func NormalizeSecurities(tbl Table) ([]store.Security, error) {
	idx, err := Resolve(tbl.Columns, SecurityFields)
	if err != nil {
		return nil, err
	}

	secs := make([]store.Security, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		sec := store.Security{
			Ticker:   strings.ToUpper(cell(row, idx["ticker"])),
			Company:  cell(row, idx["company"]),
			Sector:   cell(row, idx["sector"]),
			Industry: cell(row, idx["industry"]),
			ISIN:     cell(row, idx["isin"]),
		}
		if sec.Ticker == "" {
			continue
		}
		if d, ok := ParseDate(cell(row, idx["listing_date"])); ok {
			sec.ListingDate = d
		}
		secs = append(secs, sec)
	}
	return secs, nil
}
