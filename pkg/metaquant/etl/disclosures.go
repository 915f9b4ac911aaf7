package etl

import (
	"context"
	"log"
	"time"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/config"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// DisclosurePipeline fetches NGX corporate disclosures, optionally filters
// them by date, downloads linked PDFs, and stores the metadata.
type DisclosurePipeline struct {
	Settings   *config.Settings
	Source     FilingSource
	Downloader Downloader
	Store      store.Store
}

// Run executes one ingestion pass and returns the number of filings processed
// in this run. The filing repository dedups by source_url, so the processed
// count can exceed the number newly persisted.
func (p *DisclosurePipeline) Run(ctx context.Context, since time.Time) (int, error) {
	startedAt := time.Now()

	filings, err := p.Source.FetchPage(ctx)
	if err != nil {
		return 0, err
	}
	if len(filings) == 0 {
		log.Println("no disclosures found on page")
		return 0, nil
	}

	if !since.IsZero() {
		filings = filterSince(filings, since)
		if len(filings) == 0 {
			log.Printf("no disclosures on or after %s", since.Format("2006-01-02"))
			return 0, nil
		}
	}

	// Per-row enrichment: a failed download degrades that row's local path to
	// empty and never aborts the batch.
	for i := range filings {
		if filings[i].PDFURL == "" {
			filings[i].LocalPDFPath = ""
			continue
		}
		local, err := p.Downloader.Download(ctx, filings[i].PDFURL, p.Settings.DisclosuresDataDir)
		if err != nil {
			log.Printf("download %s: %v", filings[i].PDFURL, err)
			filings[i].LocalPDFPath = ""
			continue
		}
		filings[i].LocalPDFPath = local
	}

	inserted, err := p.Store.UpsertFilings(ctx, filings)
	if err != nil {
		return 0, err
	}

	recordRun(ctx, p.Store, "disclosures", startedAt, len(filings))
	log.Printf("ingested %d corporate filings (%d new)", len(filings), inserted)
	return len(filings), nil
}

// filterSince drops rows with no date or a date before the cutoff.
func filterSince(filings []store.Filing, since time.Time) []store.Filing {
	kept := filings[:0]
	for _, f := range filings {
		if f.Date.IsZero() || f.Date.Before(since) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}
