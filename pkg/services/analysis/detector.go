package analysis

import (
	"context"
	"time"

	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/models/store"
)

// Detector produces findings from read-only store queries. Detectors are
// independent of each other; the orchestrator may run them in any order or
// concurrently.
type Detector interface {
	Name() string
	Detect(ctx context.Context) ([]domain.Finding, error)
}

type CostReader interface {
	ResourceTotalSince(ctx context.Context, resourceID string, since time.Time) (float64, error)
	ProductDailyTotals(ctx context.Context, since time.Time) ([]store.ProductDaily, error)
}

type UtilReader interface {
	Samples(ctx context.Context, resourceID, metric string, since time.Time) ([]store.UtilRow, error)
}

type ResourceReader interface {
	ListByTypeState(ctx context.Context, types []string, state string) ([]store.ResourceRow, error)
}

type FindingStore interface {
	ReplaceAll(ctx context.Context, rows []store.FindingRow) error
	List(ctx context.Context, q store.FindingQuery) ([]store.FindingRow, error)
}
