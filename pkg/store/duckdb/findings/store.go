package findings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/de-tools/cost-guard/pkg/models/store"
	"github.com/de-tools/cost-guard/pkg/store/duckdb"
)

// Store holds the finding set produced by the latest analysis run.
// ReplaceAll swaps the whole set in one transaction so readers never observe
// a mix of old and new findings.
type Store interface {
	ReplaceAll(ctx context.Context, rows []store.FindingRow) error
	List(ctx context.Context, q store.FindingQuery) ([]store.FindingRow, error)
}

type findingStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &findingStore{db: db}, nil
}

func (s *findingStore) ReplaceAll(ctx context.Context, rows []store.FindingRow) error {
	tx := duckdb.GetTransaction(ctx)
	owned := tx == nil
	if owned {
		var err error
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM findings`); err != nil {
		return fmt.Errorf("clear findings: %w", err)
	}

	query := `
		INSERT INTO findings (
			finding_id, resource_id, type, title, severity, confidence,
			monthly_savings_usd, evidence, suggested_action, commands,
			risk_level, implementation_time, methodology, assumptions,
			created_at, last_analyzed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		evidence, err := json.Marshal(row.Evidence)
		if err != nil {
			return fmt.Errorf("marshal evidence: %w", err)
		}
		commands, err := json.Marshal(row.Commands)
		if err != nil {
			return fmt.Errorf("marshal commands: %w", err)
		}
		assumptions, err := json.Marshal(row.Assumptions)
		if err != nil {
			return fmt.Errorf("marshal assumptions: %w", err)
		}

		_, err = stmt.ExecContext(ctx,
			row.FindingID,
			row.ResourceID,
			row.Type,
			row.Title,
			row.Severity,
			row.Confidence,
			row.MonthlySavingsUSD,
			evidence,
			row.SuggestedAction,
			commands,
			row.RiskLevel,
			row.ImplementationTime,
			row.Methodology,
			assumptions,
			row.CreatedAt,
			row.LastAnalyzed,
		)
		if err != nil {
			return fmt.Errorf("insert finding: %w", err)
		}
	}

	if owned {
		return tx.Commit()
	}
	return nil
}

func (s *findingStore) List(ctx context.Context, q store.FindingQuery) ([]store.FindingRow, error) {
	query := `
		SELECT finding_id, resource_id, type, title, severity, confidence,
			monthly_savings_usd, evidence, suggested_action, commands,
			risk_level, implementation_time, methodology, assumptions,
			created_at, last_analyzed
		FROM findings`

	args := make([]interface{}, 0, 2)
	if q.Type != "" {
		query += ` WHERE type = ?`
		args = append(args, q.Type)
	}

	switch q.SortBy {
	case "severity":
		query += `
		ORDER BY CASE severity
			WHEN 'critical' THEN 3
			WHEN 'high' THEN 2
			WHEN 'medium' THEN 1
			ELSE 0
		END DESC, monthly_savings_usd DESC`
	case "created":
		query += ` ORDER BY created_at DESC`
	default:
		query += ` ORDER BY monthly_savings_usd DESC`
	}

	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	findings := make([]store.FindingRow, 0)
	for rows.Next() {
		var (
			row                                 store.FindingRow
			resourceID                          sql.NullString
			evidenceRaw, commandsRaw, assumpRaw []byte
		)
		err := rows.Scan(&row.FindingID, &resourceID, &row.Type, &row.Title,
			&row.Severity, &row.Confidence, &row.MonthlySavingsUSD,
			&evidenceRaw, &row.SuggestedAction, &commandsRaw,
			&row.RiskLevel, &row.ImplementationTime, &row.Methodology,
			&assumpRaw, &row.CreatedAt, &row.LastAnalyzed)
		if err != nil {
			return nil, err
		}
		row.ResourceID = resourceID.String
		if len(evidenceRaw) > 0 {
			_ = json.Unmarshal(evidenceRaw, &row.Evidence)
		}
		if len(commandsRaw) > 0 {
			_ = json.Unmarshal(commandsRaw, &row.Commands)
		}
		if len(assumpRaw) > 0 {
			_ = json.Unmarshal(assumpRaw, &row.Assumptions)
		}
		findings = append(findings, row)
	}
	return findings, rows.Err()
}
