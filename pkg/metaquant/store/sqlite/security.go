package sqlite

import (
	"context"
	"fmt"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/internalerr"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// UpsertSecurities inserts or wholesale-replaces rows in the securities
// master. An incoming ticker that already exists overwrites the prior row
// entirely (replace semantics, not merge).
func (s *sqliteStore) UpsertSecurities(ctx context.Context, secs []store.Security) error {
	if len(secs) == 0 {
		return nil
	}
	for _, sec := range secs {
		if sec.Ticker == "" {
			return fmt.Errorf("%w: securities batch missing required fields: ticker",
				internalerr.ErrInvalidInput)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO securities (ticker, company, sector, industry)
VALUES (?, ?, ?, ?)
ON CONFLICT(ticker) DO UPDATE SET
	company=excluded.company,
	sector=excluded.sector,
	industry=excluded.industry;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sec := range secs {
		if _, err := stmt.ExecContext(ctx,
			sec.Ticker, sqlText(sec.Company), sqlText(sec.Sector), sqlText(sec.Industry),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListTickers returns every known ticker in ascending order.
func (s *sqliteStore) ListTickers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ticker FROM securities ORDER BY ticker`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}
