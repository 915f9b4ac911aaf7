package provider

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/schema"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLoadFileCSV(t *testing.T) {
	path := writeFile(t, "prices.csv",
		"Symbol,Open,High,Low,Close,Volume\n"+
			"mtnn,230.0,236.0,229.0,234.0,1200000\n"+
			"GTCO,41.0,42.0,40.5,41.5,5000000\n")

	bars, err := EODProvider{}.LoadFile(path, day("2024-03-15"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if bars[0].Symbol != "MTNN" || bars[0].Close != 234.0 {
		t.Errorf("bar = %+v", bars[0])
	}
	if !bars[0].Date.Equal(day("2024-03-15")) {
		t.Errorf("Date = %v, want trading date", bars[0].Date)
	}
}

func TestLoadFileSemicolonDelimited(t *testing.T) {
	path := writeFile(t, "prices.csv",
		"Ticker;Open;High;Low;Last;Vol\n"+
			"DANGCEM;450,00;460,00;449,00;455,00;300\n")

	// Semicolon files use ',' as a decimal separator locale marker in some
	// exports; here the commas are thousands-stripped, so 45000 etc. The
	// delimiter sniff is what is under test.
	bars, err := EODProvider{}.LoadFile(path, day("2024-03-15"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(bars) != 1 || bars[0].Symbol != "DANGCEM" {
		t.Fatalf("bars = %+v", bars)
	}
}

func TestLoadFileMissingColumns(t *testing.T) {
	path := writeFile(t, "prices.csv", "Symbol,Close\nMTNN,234.0\n")

	_, err := EODProvider{}.LoadFile(path, day("2024-03-15"))
	var serr *schema.Error
	if !errors.As(err, &serr) {
		t.Fatalf("want *schema.Error, got %v", err)
	}
}

func TestLoadFileBlankLines(t *testing.T) {
	path := writeFile(t, "prices.csv",
		"\nSymbol,Open,High,Low,Close,Volume\n\nMTNN,1,2,1,2,10\n\n")

	bars, err := EODProvider{}.LoadFile(path, day("2024-03-15"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("got %d bars, want 1 (blank lines skipped)", len(bars))
	}
}

func TestLoadFileWorkbook(t *testing.T) {
	xlsxPath := filepath.Join(t.TempDir(), "prices.xlsx")

	f := excelize.NewFile()
	// Row 2 is left empty and a second sheet carries junk; only the first
	// sheet's non-blank rows should survive.
	seed := map[string][]interface{}{
		"A1": {"Symbol", "Open", "High", "Low", "Close", "Volume"},
		"A3": {"mtnn", 230, 236, 229, 234, 1200000},
		"A4": {"GTCO", 41, 42, 40.5, 41.5, 5000000},
	}
	for cell, row := range seed {
		row := row
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.NewSheet("Notes"); err != nil {
		t.Fatal(err)
	}
	junk := []interface{}{"not", "a", "price", "table"}
	if err := f.SetSheetRow("Notes", "A1", &junk); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(xlsxPath); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	csvPath := writeFile(t, "prices.csv",
		"Symbol,Open,High,Low,Close,Volume\n"+
			"mtnn,230,236,229,234,1200000\n"+
			"GTCO,41,42,40.5,41.5,5000000\n")

	want, err := EODProvider{}.LoadFile(csvPath, day("2024-03-15"))
	if err != nil {
		t.Fatalf("LoadFile(csv): %v", err)
	}
	got, err := EODProvider{}.LoadFile(xlsxPath, day("2024-03-15"))
	if err != nil {
		t.Fatalf("LoadFile(xlsx): %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("workbook bars differ from CSV equivalent:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := EODProvider{}.LoadFile(filepath.Join(t.TempDir(), "nope.csv"), day("2024-03-15"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
