package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/corpsgeek/MetaQuantNig/internal/browser"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/config"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/etl"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/provider"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store/sqlite"
)

func main() {
	var (
		sinceStr     = flag.String("since", "", "Only ingest filings on/after this date, YYYY-MM-DD (optional)")
		settingsPath = flag.String("settings", "", "Settings YAML file (optional)")
	)
	flag.Parse()

	var since time.Time
	if *sinceStr != "" {
		d, err := time.Parse("2006-01-02", *sinceStr)
		if err != nil {
			log.Fatalf("invalid date %q, expected YYYY-MM-DD", *sinceStr)
		}
		since = d
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

	pipeline := &etl.DisclosurePipeline{
		Settings: settings,
		Source: &provider.DisclosureProvider{
			BaseURL:  settings.DisclosuresURL,
			Renderer: &browser.Renderer{Timeout: settings.BrowserTimeout},
		},
		Downloader: &provider.PDFDownloader{},
		Store:      st,
	}

	n, err := pipeline.Run(ctx, since)
	if err != nil {
		log.Fatal("Ingestion failed:", err)
	}

	log.Printf("✓ Done. %d filings processed", n)
}
