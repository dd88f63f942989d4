package utilization

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/de-tools/cost-guard/pkg/models/store"
	"github.com/de-tools/cost-guard/pkg/store/duckdb"
)

type Store interface {
	Add(ctx context.Context, samples []store.UtilRow) error
	Clear(ctx context.Context) error
	Samples(ctx context.Context, resourceID, metric string, since time.Time) ([]store.UtilRow, error)
	ResourceSamples(ctx context.Context, resourceID string, since time.Time) ([]store.UtilRow, error)
}

type utilStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &utilStore{db: db}, nil
}

func (s *utilStore) Add(ctx context.Context, samples []store.UtilRow) error {
	if len(samples) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT INTO util_hourly (id, resource_id, metric, ts_hour, p50, p95)
		VALUES (?, ?, ?, ?, ?, ?)`

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

	for _, sample := range samples {
		id := sample.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = stmt.ExecContext(ctx,
			id,
			sample.ResourceID,
			sample.Metric,
			sample.HourTS,
			sample.P50,
			sample.P95,
		)
		if err != nil {
			return fmt.Errorf("insert util sample: %w", err)
		}
	}

	return nil
}

func (s *utilStore) Clear(ctx context.Context) error {
	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM util_hourly`)
	} else {
		_, err = s.db.ExecContext(ctx, `DELETE FROM util_hourly`)
	}
	if err != nil {
		return fmt.Errorf("clear util samples: %w", err)
	}
	return nil
}

func (s *utilStore) Samples(ctx context.Context, resourceID, metric string, since time.Time) ([]store.UtilRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, resource_id, metric, ts_hour, p50, p95
		FROM util_hourly
		WHERE resource_id = ? AND metric = ? AND ts_hour >= ?
		ORDER BY ts_hour`, resourceID, metric, since)
	if err != nil {
		return nil, fmt.Errorf("query util samples: %w", err)
	}
	defer rows.Close()
	return scanUtilRows(rows)
}

func (s *utilStore) ResourceSamples(ctx context.Context, resourceID string, since time.Time) ([]store.UtilRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, resource_id, metric, ts_hour, p50, p95
		FROM util_hourly
		WHERE resource_id = ? AND ts_hour >= ?
		ORDER BY ts_hour`, resourceID, since)
	if err != nil {
		return nil, fmt.Errorf("query resource samples: %w", err)
	}
	defer rows.Close()
	return scanUtilRows(rows)
}

func scanUtilRows(rows *sql.Rows) ([]store.UtilRow, error) {
	samples := make([]store.UtilRow, 0)
	for rows.Next() {
		var r store.UtilRow
		if err := rows.Scan(&r.ID, &r.ResourceID, &r.Metric, &r.HourTS, &r.P50, &r.P95); err != nil {
			return nil, err
		}
		samples = append(samples, r)
	}
	return samples, rows.Err()
}
