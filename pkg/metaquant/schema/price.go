package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// NormalizePrices shapes a raw price table into canonical price bars.
//
// A non-zero tradingDate overrides anything in the source. Otherwise a
// date-like column in the source is used; if neither exists the whole call
// fails with *Error. Symbols are trimmed and upper-cased; a blank volume cell
// becomes zero, though the volume column itself must exist.
func NormalizePrices(tbl Table, tradingDate time.Time) ([]store.PriceBar, error) {
	idx, err := Resolve(tbl.Columns, PriceFields)
	if err != nil {
		schemaErr := err.(*Error)
		// The date requirement is covered by the external trading date; fold
		// it into the same error when neither is available.
		if tradingDate.IsZero() && findColumn(tbl.Columns, dateCandidates) < 0 {
			schemaErr.Missing = append(schemaErr.Missing, "date")
		}
		return nil, schemaErr
	}

	dateIdx := -1
	if tradingDate.IsZero() {
		dateIdx = findColumn(tbl.Columns, dateCandidates)
		if dateIdx < 0 {
			return nil, &Error{Missing: []string{"date"}}
		}
	}

	bars := make([]store.PriceBar, 0, len(tbl.Rows))
	for n, row := range tbl.Rows {
		bar := store.PriceBar{
			Symbol: strings.ToUpper(cell(row, idx["symbol"])),
		}
		if bar.Symbol == "" {
			continue
		}

		if tradingDate.IsZero() {
			d, ok := ParseDate(cell(row, dateIdx))
			if !ok {
				return nil, fmt.Errorf("row %d: unparseable date %q", n+1, cell(row, dateIdx))
			}
			bar.Date = d
		} else {
			bar.Date = tradingDate
		}

		if bar.Open, err = parsePrice(cell(row, idx["open"])); err != nil {
			return nil, fmt.Errorf("row %d: open: %w", n+1, err)
		}
		if bar.High, err = parsePrice(cell(row, idx["high"])); err != nil {
			return nil, fmt.Errorf("row %d: high: %w", n+1, err)
		}
		if bar.Low, err = parsePrice(cell(row, idx["low"])); err != nil {
			return nil, fmt.Errorf("row %d: low: %w", n+1, err)
		}
		if bar.Close, err = parsePrice(cell(row, idx["close"])); err != nil {
			return nil, fmt.Errorf("row %d: close: %w", n+1, err)
		}

		bar.Volume = parseCount(cell(row, idx["volume"]))
		if i, ok := idx["value"]; ok && i >= 0 {
			bar.ValueTraded, _ = parsePrice(cell(row, i))
		}
		if i, ok := idx["trades"]; ok && i >= 0 {
			bar.Trades = parseCount(cell(row, i))
		}

		bars = append(bars, bar)
	}
	return bars, nil
}

// parsePrice reads a float cell, tolerating thousands separators.
func parsePrice(text string) (float64, error) {
	text = strings.ReplaceAll(text, ",", "")
	if text == "" || text == "-" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", text)
	}
	return v, nil
}

// parseCount reads an integer cell; anything unreadable degrades to zero
// (a blank volume cell is not an error).
func parseCount(text string) int64 {
	text = strings.ReplaceAll(text, ",", "")
	if text == "" || text == "-" {
		return 0
	}
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v
	}
	// Some files format volume as "12345.0"
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int64(f)
	}
	return 0
}
