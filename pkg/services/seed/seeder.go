package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/cost-guard/pkg/adapters"
	"github.com/de-tools/cost-guard/pkg/models/store"
	"github.com/de-tools/cost-guard/pkg/store/duckdb"
)

type CostWriter interface {
	Clear(ctx context.Context) error
	Add(ctx context.Context, rows []store.CostRow) error
}

type UtilWriter interface {
	Clear(ctx context.Context) error
	Add(ctx context.Context, rows []store.UtilRow) error
}

type ResourceWriter interface {
	Clear(ctx context.Context) error
	Add(ctx context.Context, rows []store.ResourceRow) error
}

type FindingWriter interface {
	ReplaceAll(ctx context.Context, rows []store.FindingRow) error
}

// Seeder replaces the whole database content with a generated dataset.
// Findings are wiped too; stale findings against regenerated data would be
// misleading. The swap runs in a single transaction so a failed seed leaves
// the previous data intact.
type Seeder struct {
	db        *sql.DB
	costs     CostWriter
	util      UtilWriter
	resources ResourceWriter
	findings  FindingWriter
	now       func() time.Time
}

func NewSeeder(db *sql.DB, costs CostWriter, util UtilWriter, resources ResourceWriter, findings FindingWriter) *Seeder {
	return &Seeder{
		db:        db,
		costs:     costs,
		util:      util,
		resources: resources,
		findings:  findings,
		now:       time.Now,
	}
}

func (s *Seeder) Seed(ctx context.Context, seed int64) (*Dataset, error) {
	ds := Generate(seed, s.now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()
	ctx = duckdb.WithTransaction(ctx, tx)

	if err := s.costs.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear cost rows: %w", err)
	}
	if err := s.util.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear utilization samples: %w", err)
	}
	if err := s.resources.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear resources: %w", err)
	}
	if err := s.findings.ReplaceAll(ctx, nil); err != nil {
		return nil, fmt.Errorf("clear findings: %w", err)
	}

	costRows := make([]store.CostRow, 0, len(ds.Costs))
	for _, c := range ds.Costs {
		costRows = append(costRows, adapters.MapCostDomainToStore(c))
	}
	if err := s.costs.Add(ctx, costRows); err != nil {
		return nil, fmt.Errorf("insert cost rows: %w", err)
	}

	utilRows := make([]store.UtilRow, 0, len(ds.Samples))
	for _, sample := range ds.Samples {
		utilRows = append(utilRows, adapters.MapUtilDomainToStore(sample))
	}
	if err := s.util.Add(ctx, utilRows); err != nil {
		return nil, fmt.Errorf("insert utilization samples: %w", err)
	}

	resourceRows := make([]store.ResourceRow, 0, len(ds.Resources))
	for _, r := range ds.Resources {
		resourceRows = append(resourceRows, adapters.MapResourceDomainToStore(r))
	}
	if err := s.resources.Add(ctx, resourceRows); err != nil {
		return nil, fmt.Errorf("insert resources: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit seed: %w", err)
	}
	return ds, nil
}
