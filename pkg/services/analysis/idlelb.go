package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/services/stats"
)

// IdleLBDetector flags active load balancers whose median request rate over
// the trailing window stays below one request per second.
type IdleLBDetector struct {
	resources ResourceReader
	util      UtilReader
	settings  Settings
	now       func() time.Time
}

func NewIdleLBDetector(resources ResourceReader, util UtilReader, settings Settings) *IdleLBDetector {
	return &IdleLBDetector{
		resources: resources,
		util:      util,
		settings:  settings,
		now:       time.Now,
	}
}

func (d *IdleLBDetector) Name() string { return "idle_load_balancers" }

func (d *IdleLBDetector) Detect(ctx context.Context) ([]domain.Finding, error) {
	logger := zerolog.Ctx(ctx)
	now := d.now().UTC()
	since := now.AddDate(0, 0, -d.settings.UtilizationWindowDays)

	lbTypes := []string{domain.ResourceELB.String(), domain.ResourceLB.String()}
	balancers, err := d.resources.ListByTypeState(ctx, lbTypes, domain.StateActive)
	if err != nil {
		return nil, fmt.Errorf("list load balancers: %w", err)
	}

	var findings []domain.Finding
	for _, lb := range balancers {
		samples, err := d.util.Samples(ctx, lb.ResourceID, domain.MetricELBReq, since)
		if err != nil {
			return nil, fmt.Errorf("fetch request samples for %s: %w", lb.ResourceID, err)
		}
		if len(samples) <= d.settings.MinSamples {
			logger.Debug().
				Str("resource_id", lb.ResourceID).
				Int("samples", len(samples)).
				Msg("skipping load balancer, not enough request samples")
			continue
		}

		p50s := make([]float64, len(samples))
		maxRate := 0.0
		for i, s := range samples {
			p50s[i] = s.P50
			if s.P95 > maxRate {
				maxRate = s.P95
			}
		}

		medianRate := stats.Median(p50s)
		if medianRate >= d.settings.LBRequestRateThreshold {
			continue
		}

		confidence := domain.ConfidenceMedium
		if maxRate < d.settings.LBHighConfidenceMaxRate {
			confidence = domain.ConfidenceHigh
		}

		findings = append(findings, assembleFinding(draft{
			Type:       domain.FindingUnderutilized,
			ResourceID: lb.ResourceID,
			Title:      fmt.Sprintf("Idle load balancer %s", lb.Name),
			Severity:   domain.SeverityMedium,
			Confidence: confidence,
			SavingsUSD: d.settings.LBBaseMonthlyUSD + d.settings.LBCapacityMonthlyUSD,
			Evidence: map[string]any{
				"median_requests_per_sec": round2(medianRate),
				"max_requests_per_sec":    round2(maxRate),
				"hours_analyzed":          len(samples),
			},
			Action: "Delete the load balancer if no listeners are in use, or consolidate targets",
			Commands: []string{
				fmt.Sprintf("aws elbv2 describe-load-balancers --names %s", lb.Name),
				fmt.Sprintf("aws elbv2 delete-load-balancer --load-balancer-arn <arn-of-%s>", lb.Name),
			},
			Risk:        domain.RiskMedium,
			ImplTime:    "30 minutes",
			Methodology: "median p50 request rate over the trailing utilization window",
			Assumptions: []string{"request rate is representative of steady-state traffic"},
		}, now))
	}

	return findings, nil
}
