package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/internalerr"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// UpsertPrices appends a batch of price bars. There is no (symbol, date)
// identity check: re-ingesting the same file grows the table. The whole batch
// is validated before anything is written.
func (s *sqliteStore) UpsertPrices(ctx context.Context, bars []store.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}
	if err := validatePrices(bars); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO eod_prices (date, open, high, low, close, volume, symbol)
VALUES (?, ?, ?, ?, ?, ?, ?);
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx,
			b.Date.Format(dateLayout), b.Open, b.High, b.Low, b.Close, b.Volume, b.Symbol,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func validatePrices(bars []store.PriceBar) error {
	var missing []string
	for _, b := range bars {
		if b.Symbol == "" {
			missing = appendUnique(missing, "symbol")
		}
		if b.Date.IsZero() {
			missing = appendUnique(missing, "date")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: eod price batch missing required fields: %s",
			internalerr.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// FetchPrices returns bars whose symbol is in the given set, optionally
// bounded by inclusive start/end dates (zero time = unbounded). Row order is
// whatever the store returns.
func (s *sqliteStore) FetchPrices(ctx context.Context, symbols []string, start, end time.Time) ([]store.PriceBar, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(symbols)), ",")
	query := fmt.Sprintf(`
SELECT date, open, high, low, close, volume, symbol
FROM eod_prices
WHERE symbol IN (%s)
`, placeholders)

	args := make([]interface{}, 0, len(symbols)+2)
	for _, sym := range symbols {
		args = append(args, sym)
	}
	if !start.IsZero() {
		query += " AND date >= ?"
		args = append(args, start.Format(dateLayout))
	}
	if !end.IsZero() {
		query += " AND date <= ?"
		args = append(args, end.Format(dateLayout))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []store.PriceBar
	for rows.Next() {
		var (
			b store.PriceBar
			d sql.NullString
		)
		if err := rows.Scan(&d, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume, &b.Symbol); err != nil {
			return nil, err
		}
		b.Date = scanDate(d)
		bars = append(bars, b)
	}
	return bars, rows.Err()
}
