package analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/de-tools/cost-guard/pkg/adapters"
	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/models/store"
)

// Orchestrator owns the full analysis run: it fans the detectors out,
// isolates their failures, ranks the merged findings and swaps them into the
// finding store as one set.
type Orchestrator struct {
	detectors []Detector
	findings  FindingStore
}

func NewOrchestrator(costs CostReader, util UtilReader, resources ResourceReader, findings FindingStore, settings Settings) *Orchestrator {
	return &Orchestrator{
		detectors: []Detector{
			NewUnderutilizedDetector(resources, util, costs, settings),
			NewOrphanDetector(resources, settings),
			NewIdleLBDetector(resources, util, settings),
			NewAnomalyDetector(costs, settings),
		},
		findings: findings,
	}
}

// RunDetectors executes every detector and returns the merged, unranked
// findings plus the names of detectors whose store reads failed. One
// detector failing never discards what the others produced.
func (o *Orchestrator) RunDetectors(ctx context.Context) ([]domain.Finding, []string) {
	logger := zerolog.Ctx(ctx)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		merged []domain.Finding
		failed []string
	)

	for _, detector := range o.detectors {
		wg.Add(1)
		go func(d Detector) {
			defer wg.Done()
			findings, err := d.Detect(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error().Err(err).Str("detector", d.Name()).Msg("detector failed")
				failed = append(failed, d.Name())
				return
			}
			merged = append(merged, findings...)
		}(detector)
	}
	wg.Wait()

	sort.Strings(failed)
	return merged, failed
}

// Run executes the detectors, replaces the persisted finding set and derives
// the run KPIs. The previous findings survive untouched if persisting fails.
func (o *Orchestrator) Run(ctx context.Context) (*domain.AnalysisResult, error) {
	findings, failed := o.RunDetectors(ctx)

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].MonthlySavingsUSD != findings[j].MonthlySavingsUSD {
			return findings[i].MonthlySavingsUSD > findings[j].MonthlySavingsUSD
		}
		return findings[i].Title < findings[j].Title
	})

	rows := make([]store.FindingRow, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, adapters.MapFindingDomainToStore(f))
	}
	if err := o.findings.ReplaceAll(ctx, rows); err != nil {
		return nil, fmt.Errorf("persist findings: %w", err)
	}

	result := &domain.AnalysisResult{
		Findings:        findings,
		FailedDetectors: failed,
	}
	var savings float64
	for _, f := range findings {
		savings += f.MonthlySavingsUSD
		switch f.Type {
		case domain.FindingUnderutilized:
			result.UnderutilizedCount++
		case domain.FindingOrphan:
			result.OrphansCount++
		}
	}
	result.SavingsReadyUSD = round2(savings)

	return result, nil
}

// ListFindings reads back the persisted finding set.
func (o *Orchestrator) ListFindings(ctx context.Context, q domain.FindingQuery) ([]domain.Finding, error) {
	storeQuery := store.FindingQuery{SortBy: q.SortBy, Limit: q.Limit}
	if q.Type != nil {
		storeQuery.Type = q.Type.String()
	}

	rows, err := o.findings.List(ctx, storeQuery)
	if err != nil {
		return nil, fmt.Errorf("list findings: %w", err)
	}

	findings := make([]domain.Finding, 0, len(rows))
	for _, row := range rows {
		finding, err := adapters.MapFindingStoreToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("decode finding %s: %w", row.FindingID, err)
		}
		findings = append(findings, finding)
	}
	return findings, nil
}
