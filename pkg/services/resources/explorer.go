// Package resources serves the single-resource detail view: the inventory
// record plus its recent billing and utilization history.
package resources

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/cost-guard/pkg/adapters"
	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/models/store"
)

type ResourceReader interface {
	Get(ctx context.Context, resourceID string) (*store.ResourceRow, error)
}

type CostReader interface {
	ResourceRows(ctx context.Context, resourceID string, since time.Time) ([]store.CostRow, error)
}

type UtilReader interface {
	ResourceSamples(ctx context.Context, resourceID string, since time.Time) ([]store.UtilRow, error)
}

type Explorer struct {
	resources ResourceReader
	costs     CostReader
	util      UtilReader
	now       func() time.Time
}

func NewExplorer(resources ResourceReader, costs CostReader, util UtilReader) *Explorer {
	return &Explorer{
		resources: resources,
		costs:     costs,
		util:      util,
		now:       time.Now,
	}
}

// Describe returns the resource with a month of cost rows and a week of
// utilization samples. Unknown ids surface store.ErrNotFound untouched so
// handlers can turn it into a 404.
func (e *Explorer) Describe(ctx context.Context, resourceID string) (*domain.ResourceDetail, error) {
	row, err := e.resources.Get(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	resource, err := adapters.MapResourceStoreToDomain(*row)
	if err != nil {
		return nil, fmt.Errorf("decode resource %s: %w", resourceID, err)
	}

	now := e.now().UTC()
	costRows, err := e.costs.ResourceRows(ctx, resourceID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("fetch cost history for %s: %w", resourceID, err)
	}
	history := make([]domain.CostRecord, 0, len(costRows))
	for _, r := range costRows {
		history = append(history, adapters.MapCostStoreToDomain(r))
	}

	utilRows, err := e.util.ResourceSamples(ctx, resourceID, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("fetch utilization for %s: %w", resourceID, err)
	}
	samples := make([]domain.UtilSample, 0, len(utilRows))
	for _, r := range utilRows {
		samples = append(samples, adapters.MapUtilStoreToDomain(r))
	}

	return &domain.ResourceDetail{
		Resource:    resource,
		CostHistory: history,
		Utilization: samples,
	}, nil
}
