package store

import (
	"context"
	"time"
)

// Store is the main interface for persisting and querying NGX market data
type Store interface {
	Close() error

	// EOD prices
	UpsertPrices(ctx context.Context, bars []PriceBar) error
	FetchPrices(ctx context.Context, symbols []string, start, end time.Time) ([]PriceBar, error)

	// Securities master
	UpsertSecurities(ctx context.Context, secs []Security) error
	ListTickers(ctx context.Context) ([]string, error)

	// Corporate filings
	UpsertFilings(ctx context.Context, filings []Filing) (int, error)
	FetchLatestFilings(ctx context.Context, limit int) ([]Filing, error)
	FetchFilingsSince(ctx context.Context, since time.Time) ([]Filing, error)

	// Ingestion audit trail
	RecordRun(ctx context.Context, run IngestionRun) error
}

// PriceBar is one trading day's OHLCV for one symbol.
// (Symbol, Date) is the conceptual identity; the eod_prices table does not
// enforce it, so re-ingesting the same file grows the table.
type PriceBar struct {
	Symbol string
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64

	// Optional extras some NGX price lists carry; zero when absent.
	// They are not part of the persisted eod_prices layout.
	ValueTraded float64
	Trades      int64
}

// Security is one row of the securities master. Upserts replace the whole
// row for an existing ticker rather than merging fields.
type Security struct {
	Ticker   string
	Company  string
	Sector   string
	Industry string

	// Optional metadata, not persisted in the securities table.
	ISIN        string
	ListingDate time.Time
}

// Filing is one corporate disclosure scraped from the NGX page.
// SourceURL is the dedup identity: a filing whose SourceURL is already stored
// is never re-inserted. An empty SourceURL matches nothing and always inserts.
type Filing struct {
	CompanyName  string
	Symbol       string // resolved later by a separate mapping step
	Title        string
	Type         string
	Date         time.Time // zero when the page date could not be parsed
	SourceURL    string
	PDFURL       string
	LocalPDFPath string // set by the pipeline after download
}

// IngestionRun is one audit-trail entry written per pipeline invocation.
type IngestionRun struct {
	ID        string // ULID
	Kind      string // "eod", "disclosures", "securities"
	StartedAt time.Time
	Rows      int
}
