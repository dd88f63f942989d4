package commands

import (
	"fmt"

	"github.com/de-tools/cost-guard/pkg/services/analysis"
	"github.com/de-tools/cost-guard/pkg/services/config"
	"github.com/de-tools/cost-guard/pkg/services/resources"
	"github.com/de-tools/cost-guard/pkg/services/seed"
	"github.com/de-tools/cost-guard/pkg/services/summary"
	"github.com/de-tools/cost-guard/pkg/store/duckdb"
	duckdbcosts "github.com/de-tools/cost-guard/pkg/store/duckdb/costs"
	duckdbfindings "github.com/de-tools/cost-guard/pkg/store/duckdb/findings"
	duckdbresources "github.com/de-tools/cost-guard/pkg/store/duckdb/resources"
	duckdbutil "github.com/de-tools/cost-guard/pkg/store/duckdb/utilization"
)

// Deps bundles the services every command draws from. The database is opened
// once, when the first command resolves its dependencies.
type Deps struct {
	Orchestrator *analysis.Orchestrator
	Summaries    *summary.Service
	Seeder       *seed.Seeder
	Explorer     *resources.Explorer
}

// Resolver builds Deps on demand so flag parsing happens before any file or
// database is touched.
type Resolver func() (*Deps, error)

// NewResolver wires the stores and services against the configured database.
func NewResolver(cfgPath string) Resolver {
	return func() (*Deps, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}

		db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.DBPath})
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}

		costStore, err := duckdbcosts.NewStore(db)
		if err != nil {
			return nil, fmt.Errorf("create cost store: %w", err)
		}
		utilStore, err := duckdbutil.NewStore(db)
		if err != nil {
			return nil, fmt.Errorf("create utilization store: %w", err)
		}
		resourceStore, err := duckdbresources.NewStore(db)
		if err != nil {
			return nil, fmt.Errorf("create resource store: %w", err)
		}
		findingStore, err := duckdbfindings.NewStore(db)
		if err != nil {
			return nil, fmt.Errorf("create finding store: %w", err)
		}

		return &Deps{
			Orchestrator: analysis.NewOrchestrator(costStore, utilStore, resourceStore, findingStore, cfg.Analysis),
			Summaries:    summary.NewService(costStore, findingStore, cfg.MonthlyBudgetUSD),
			Seeder:       seed.NewSeeder(db, costStore, utilStore, resourceStore, findingStore),
			Explorer:     resources.NewExplorer(resourceStore, costStore, utilStore),
		}, nil
	}
}
