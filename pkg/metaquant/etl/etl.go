// Package etl composes providers, repositories and the PDF downloader into
// single-pass ingestion runs. Pipelines are single-threaded and retry
// nothing; every run is recorded in the ingestion audit trail.
package etl

import (
	"context"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// FilingSource produces filing rows from an external source.
type FilingSource interface {
	FetchPage(ctx context.Context) ([]store.Filing, error)
}

// Downloader fetches one document to a local directory.
type Downloader interface {
	Download(ctx context.Context, rawURL, destDir string) (string, error)
}

// recordRun writes the audit row for one pipeline invocation. Audit failures
// are logged, not propagated: the ingested data already landed.
func recordRun(ctx context.Context, st store.Store, kind string, startedAt time.Time, rows int) {
	run := store.IngestionRun{
		ID:        ulid.Make().String(),
		Kind:      kind,
		StartedAt: startedAt,
		Rows:      rows,
	}
	if err := st.RecordRun(ctx, run); err != nil {
		log.Printf("record %s run: %v", kind, err)
	}
}
