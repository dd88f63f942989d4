package costs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/de-tools/cost-guard/pkg/models/store"
	"github.com/de-tools/cost-guard/pkg/store/duckdb"
)

// Store is the read/write surface over the cost_daily collection. Writes are
// append-only; aggregate reads are what the detectors and the summary layer
// build on.
type Store interface {
	Add(ctx context.Context, rows []store.CostRow) error
	Clear(ctx context.Context) error
	TotalSince(ctx context.Context, since time.Time) (float64, error)
	TotalBetween(ctx context.Context, start, end time.Time) (float64, error)
	DailyTotals(ctx context.Context, since time.Time) ([]store.DailyTotal, error)
	ProductTotals(ctx context.Context, since time.Time) ([]store.ProductTotal, error)
	ProductTotalsBetween(ctx context.Context, start, end time.Time) ([]store.ProductTotal, error)
	ProductDailyTotals(ctx context.Context, since time.Time) ([]store.ProductDaily, error)
	ResourceTotalSince(ctx context.Context, resourceID string, since time.Time) (float64, error)
	ResourceRows(ctx context.Context, resourceID string, since time.Time) ([]store.CostRow, error)
}

type costStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &costStore{db: db}, nil
}

func (s *costStore) Add(ctx context.Context, rows []store.CostRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT INTO cost_daily (
			id, cloud, account, product, resource_id, owner, date, amount_usd
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = s.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		id := row.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = stmt.ExecContext(ctx,
			id,
			row.Cloud,
			row.Account,
			row.Product,
			row.ResourceID,
			row.Owner,
			row.Date,
			row.AmountUSD,
		)
		if err != nil {
			return fmt.Errorf("insert cost row: %w", err)
		}
	}

	return nil
}

func (s *costStore) Clear(ctx context.Context) error {
	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM cost_daily`)
	} else {
		_, err = s.db.ExecContext(ctx, `DELETE FROM cost_daily`)
	}
	if err != nil {
		return fmt.Errorf("clear cost rows: %w", err)
	}
	return nil
}

func (s *costStore) TotalSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_usd), 0) FROM cost_daily WHERE date >= ?`, since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total since: %w", err)
	}
	return total, nil
}

func (s *costStore) TotalBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_usd), 0) FROM cost_daily WHERE date >= ? AND date < ?`, start, end,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total between: %w", err)
	}
	return total, nil
}

func (s *costStore) DailyTotals(ctx context.Context, since time.Time) ([]store.DailyTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, SUM(amount_usd) AS total
		FROM cost_daily
		WHERE date >= ?
		GROUP BY date
		ORDER BY date`, since)
	if err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	defer rows.Close()

	totals := make([]store.DailyTotal, 0)
	for rows.Next() {
		var t store.DailyTotal
		if err := rows.Scan(&t.Date, &t.TotalUSD); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *costStore) ProductTotals(ctx context.Context, since time.Time) ([]store.ProductTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product, SUM(amount_usd) AS total
		FROM cost_daily
		WHERE date >= ?
		GROUP BY product
		ORDER BY total DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("query product totals: %w", err)
	}
	defer rows.Close()
	return scanProductTotals(rows)
}

func (s *costStore) ProductTotalsBetween(ctx context.Context, start, end time.Time) ([]store.ProductTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product, SUM(amount_usd) AS total
		FROM cost_daily
		WHERE date >= ? AND date < ?
		GROUP BY product
		ORDER BY total DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("query product totals between: %w", err)
	}
	defer rows.Close()
	return scanProductTotals(rows)
}

func (s *costStore) ProductDailyTotals(ctx context.Context, since time.Time) ([]store.ProductDaily, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product, date, SUM(amount_usd) AS total
		FROM cost_daily
		WHERE date >= ?
		GROUP BY product, date
		ORDER BY product, date`, since)
	if err != nil {
		return nil, fmt.Errorf("query product daily totals: %w", err)
	}
	defer rows.Close()

	totals := make([]store.ProductDaily, 0)
	for rows.Next() {
		var t store.ProductDaily
		if err := rows.Scan(&t.Product, &t.Date, &t.TotalUSD); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *costStore) ResourceTotalSince(ctx context.Context, resourceID string, since time.Time) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_usd), 0)
		FROM cost_daily
		WHERE resource_id = ? AND date >= ?`, resourceID, since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("resource total since: %w", err)
	}
	return total, nil
}

func (s *costStore) ResourceRows(ctx context.Context, resourceID string, since time.Time) ([]store.CostRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, cloud, account, product, resource_id, owner, date, amount_usd
		FROM cost_daily
		WHERE resource_id = ? AND date >= ?
		ORDER BY date`, resourceID, since)
	if err != nil {
		return nil, fmt.Errorf("query resource rows: %w", err)
	}
	defer rows.Close()

	records := make([]store.CostRow, 0)
	for rows.Next() {
		var r store.CostRow
		var resourceID, owner sql.NullString
		if err := rows.Scan(&r.ID, &r.Cloud, &r.Account, &r.Product, &resourceID, &owner, &r.Date, &r.AmountUSD); err != nil {
			return nil, err
		}
		r.ResourceID = resourceID.String
		r.Owner = owner.String
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanProductTotals(rows *sql.Rows) ([]store.ProductTotal, error) {
	totals := make([]store.ProductTotal, 0)
	for rows.Next() {
		var t store.ProductTotal
		if err := rows.Scan(&t.Product, &t.TotalUSD); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
