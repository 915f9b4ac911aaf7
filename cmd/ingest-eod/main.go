package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/config"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/etl"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store/sqlite"
)

func main() {
	var (
		dateStr      = flag.String("date", "", "Trading date in YYYY-MM-DD (default: today)")
		settingsPath = flag.String("settings", "", "Settings YAML file (optional)")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: ingest-eod [flags] <price-file.csv|.xlsx>")
	}
	filePath := flag.Arg(0)

	tradingDate := defaultTradingDate(time.Now())
	if *dateStr != "" {
		d, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			log.Fatalf("invalid date %q, expected YYYY-MM-DD", *dateStr)
		}
		tradingDate = d
	}

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, settings.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	pipeline := &etl.EODPipeline{Store: st}
	n, err := pipeline.Run(ctx, filePath, tradingDate)
	if err != nil {
		log.Fatal("Ingestion failed:", err)
	}

	log.Printf("✓ Ingested %d rows for %s", n, tradingDate.Format("2006-01-02"))
}

// defaultTradingDate is the local calendar date of now, pinned to UTC so the
// stored date never shifts across zones.
func defaultTradingDate(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
