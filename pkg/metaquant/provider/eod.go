// Package provider turns external sources — price files on disk, the rendered
// NGX disclosures page — into canonical records. Providers never persist
// anything; repositories own the stored representation.
package provider

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/schema"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// EODProvider loads NGX daily price list files (CSV or XLSX) from disk and
// normalizes them into canonical price bars.
type EODProvider struct{}

// LoadFile reads one price file. A non-zero tradingDate overrides any date
// column in the file; with a zero tradingDate the file must carry one.
func (EODProvider) LoadFile(path string, tradingDate time.Time) ([]store.PriceBar, error) {
	var (
		tbl schema.Table
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		tbl, err = readWorkbook(path)
	default:
		tbl, err = readDelimited(path)
	}
	if err != nil {
		return nil, err
	}
	return schema.NormalizePrices(tbl, tradingDate)
}

// readDelimited reads a CSV-like file, sniffing the delimiter from the header
// line. NGX exports vary between commas, semicolons and tabs.
func readDelimited(path string) (schema.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return schema.Table{}, fmt.Errorf("open price file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 4096)
	n, _ := f.Read(head)
	if _, err := f.Seek(0, 0); err != nil {
		return schema.Table{}, err
	}

	r := csv.NewReader(f)
	r.Comma = sniffDelimiter(string(head[:n]))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return schema.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return tableFromRecords(records), nil
}

func sniffDelimiter(head string) rune {
	if i := strings.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	best, bestCount := ',', strings.Count(head, ",")
	for _, c := range []rune{';', '\t'} {
		if n := strings.Count(head, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// readWorkbook reads the first sheet of an XLSX workbook.
func readWorkbook(path string) (schema.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return schema.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return schema.Table{}, fmt.Errorf("workbook %s has no sheets", path)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return schema.Table{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return tableFromRecords(records), nil
}

// tableFromRecords treats the first non-empty record as the header and skips
// fully blank rows.
func tableFromRecords(records [][]string) schema.Table {
	var tbl schema.Table
	for _, rec := range records {
		if blankRow(rec) {
			continue
		}
		if tbl.Columns == nil {
			tbl.Columns = rec
			continue
		}
		tbl.Rows = append(tbl.Rows, rec)
	}
	return tbl
}

func blankRow(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
