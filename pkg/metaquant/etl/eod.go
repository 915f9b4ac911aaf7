package etl

import (
	"context"
	"log"
	"time"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/provider"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// EODPipeline ingests one NGX daily price list file.
type EODPipeline struct {
	Provider provider.EODProvider
	Store    store.Store
}

// Run loads the file, normalizes it and appends the bars. A zero tradingDate
// defers to a date column inside the file.
func (p *EODPipeline) Run(ctx context.Context, filePath string, tradingDate time.Time) (int, error) {
	startedAt := time.Now()

	bars, err := p.Provider.LoadFile(filePath, tradingDate)
	if err != nil {
		return 0, err
	}
	if err := p.Store.UpsertPrices(ctx, bars); err != nil {
		return 0, err
	}

	recordRun(ctx, p.Store, "eod", startedAt, len(bars))
	log.Printf("ingested %d price rows from %s", len(bars), filePath)
	return len(bars), nil
}

// SecuritiesPipeline ingests a securities master file.
type SecuritiesPipeline struct {
	Provider provider.SecuritiesProvider
	Store    store.Store
}

// Run loads the master list and replace-upserts every row.
func (p *SecuritiesPipeline) Run(ctx context.Context, filePath string) (int, error) {
	startedAt := time.Now()

	secs, err := p.Provider.LoadFile(filePath)
	if err != nil {
		return 0, err
	}
	if err := p.Store.UpsertSecurities(ctx, secs); err != nil {
		return 0, err
	}

	recordRun(ctx, p.Store, "securities", startedAt, len(secs))
	log.Printf("ingested %d securities from %s", len(secs), filePath)
	return len(secs), nil
}
