package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// UpsertFilings inserts filings whose source_url is not already in the table
// and returns the number actually inserted. A row with an empty source_url is
// never matched against anything and always inserts. Duplicates within the
// incoming batch follow the same rule: the first-seen row for a URL wins.
func (s *sqliteStore) UpsertFilings(ctx context.Context, filings []store.Filing) (int, error) {
	if len(filings) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	exists, err := tx.PrepareContext(ctx, `
SELECT COUNT(*) FROM corporate_filings WHERE source_url = ?;
`)
	if err != nil {
		return 0, err
	}
	defer exists.Close()

	insert, err := tx.PrepareContext(ctx, `
INSERT INTO corporate_filings
	(company_name, symbol, disclosure_title, disclosure_type, disclosure_date,
	 source_url, pdf_url, local_pdf_path)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`)
	if err != nil {
		return 0, err
	}
	defer insert.Close()

	inserted := 0
	for _, f := range filings {
		if f.SourceURL != "" {
			var n int64
			if err := exists.QueryRowContext(ctx, f.SourceURL).Scan(&n); err != nil {
				return 0, err
			}
			if n > 0 {
				continue
			}
		}
		if _, err := insert.ExecContext(ctx,
			sqlText(f.CompanyName), sqlText(f.Symbol), sqlText(f.Title), sqlText(f.Type),
			sqlDate(f.Date), sqlText(f.SourceURL), sqlText(f.PDFURL), sqlText(f.LocalPDFPath),
		); err != nil {
			return 0, err
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// FetchLatestFilings returns the most recent filings by disclosure date,
// newest first.
func (s *sqliteStore) FetchLatestFilings(ctx context.Context, limit int) ([]store.Filing, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.queryFilings(ctx, `
SELECT company_name, symbol, disclosure_title, disclosure_type, disclosure_date,
       source_url, pdf_url, local_pdf_path
FROM corporate_filings
ORDER BY disclosure_date DESC
LIMIT ?;
`, limit)
}

// FetchFilingsSince returns filings on or after the given date, ascending.
func (s *sqliteStore) FetchFilingsSince(ctx context.Context, since time.Time) ([]store.Filing, error) {
	return s.queryFilings(ctx, `
SELECT company_name, symbol, disclosure_title, disclosure_type, disclosure_date,
       source_url, pdf_url, local_pdf_path
FROM corporate_filings
WHERE disclosure_date >= ?
ORDER BY disclosure_date;
`, since.Format(dateLayout))
}

func (s *sqliteStore) queryFilings(ctx context.Context, query string, args ...interface{}) ([]store.Filing, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var filings []store.Filing
	for rows.Next() {
		var (
			f                                  store.Filing
			company, symbol, title, typ        sql.NullString
			date, sourceURL, pdfURL, localPath sql.NullString
		)
		if err := rows.Scan(&company, &symbol, &title, &typ, &date, &sourceURL, &pdfURL, &localPath); err != nil {
			return nil, err
		}
		f.CompanyName = company.String
		f.Symbol = symbol.String
		f.Title = title.String
		f.Type = typ.String
		f.Date = scanDate(date)
		f.SourceURL = sourceURL.String
		f.PDFURL = pdfURL.String
		f.LocalPDFPath = localPath.String
		filings = append(filings, f)
	}
	return filings, rows.Err()
}
