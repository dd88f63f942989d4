package resources

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/cost-guard/pkg/models/store"
	"github.com/de-tools/cost-guard/pkg/store/duckdb"
)

type Store interface {
	Add(ctx context.Context, rows []store.ResourceRow) error
	Clear(ctx context.Context) error
	ListByTypeState(ctx context.Context, types []string, state string) ([]store.ResourceRow, error)
	Get(ctx context.Context, resourceID string) (*store.ResourceRow, error)
}

type resourceStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &resourceStore{db: db}, nil
}

func (s *resourceStore) Add(ctx context.Context, rows []store.ResourceRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT INTO resources (
			resource_id, cloud, type, name, state, account, region, instance_type, tags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

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
		tags, err := json.Marshal(row.Tags)
		if err != nil {
			return fmt.Errorf("marshal tags: %w", err)
		}
		_, err = stmt.ExecContext(ctx,
			row.ResourceID,
			row.Cloud,
			row.Type,
			row.Name,
			row.State,
			row.Account,
			row.Region,
			row.InstanceType,
			tags,
		)
		if err != nil {
			return fmt.Errorf("insert resource: %w", err)
		}
	}

	return nil
}

func (s *resourceStore) Clear(ctx context.Context) error {
	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM resources`)
	} else {
		_, err = s.db.ExecContext(ctx, `DELETE FROM resources`)
	}
	if err != nil {
		return fmt.Errorf("clear resources: %w", err)
	}
	return nil
}

func (s *resourceStore) ListByTypeState(ctx context.Context, types []string, state string) ([]store.ResourceRow, error) {
	if len(types) == 0 {
		return []store.ResourceRow{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(types)), ",")
	args := make([]interface{}, 0, len(types)+1)
	for _, t := range types {
		args = append(args, t)
	}
	args = append(args, state)

	query := fmt.Sprintf(`
		SELECT resource_id, cloud, type, name, state, account, region, instance_type, tags
		FROM resources
		WHERE type IN (%s) AND state = ?
		ORDER BY resource_id`, placeholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query resources: %w", err)
	}
	defer rows.Close()

	result := make([]store.ResourceRow, 0)
	for rows.Next() {
		row, err := scanResourceRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (s *resourceStore) Get(ctx context.Context, resourceID string) (*store.ResourceRow, error) {
	scan := s.db.QueryRowContext(ctx, `
		SELECT resource_id, cloud, type, name, state, account, region, instance_type, tags
		FROM resources
		WHERE resource_id = ?`, resourceID).Scan

	row, err := scanResourceRow(scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return &row, nil
}

func scanResourceRow(scan func(dest ...any) error) (store.ResourceRow, error) {
	var (
		row                  store.ResourceRow
		region, instanceType sql.NullString
		tagsRaw              []byte
	)
	err := scan(&row.ResourceID, &row.Cloud, &row.Type, &row.Name, &row.State,
		&row.Account, &region, &instanceType, &tagsRaw)
	if err != nil {
		return store.ResourceRow{}, err
	}
	row.Region = region.String
	row.InstanceType = instanceType.String
	tags := map[string]string{}
	if len(tagsRaw) > 0 {
		_ = json.Unmarshal(tagsRaw, &tags)
	}
	row.Tags = tags
	return row, nil
}
