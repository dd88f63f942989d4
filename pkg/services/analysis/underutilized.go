package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/services/stats"
)

// UnderutilizedDetector flags running compute whose CPU stays low across the
// whole trailing window, both at the median and at the tail, so one busy
// spike is enough to exonerate a resource.
type UnderutilizedDetector struct {
	resources ResourceReader
	util      UtilReader
	costs     CostReader
	settings  Settings
	now       func() time.Time
}

func NewUnderutilizedDetector(resources ResourceReader, util UtilReader, costs CostReader, settings Settings) *UnderutilizedDetector {
	return &UnderutilizedDetector{
		resources: resources,
		util:      util,
		costs:     costs,
		settings:  settings,
		now:       time.Now,
	}
}

func (d *UnderutilizedDetector) Name() string { return "underutilized_compute" }

func (d *UnderutilizedDetector) Detect(ctx context.Context) ([]domain.Finding, error) {
	logger := zerolog.Ctx(ctx)
	now := d.now().UTC()
	since := now.AddDate(0, 0, -d.settings.UtilizationWindowDays)

	computeTypes := []string{domain.ResourceEC2.String(), domain.ResourceGCE.String()}
	resources, err := d.resources.ListByTypeState(ctx, computeTypes, domain.StateRunning)
	if err != nil {
		return nil, fmt.Errorf("list compute resources: %w", err)
	}

	var findings []domain.Finding
	for _, resource := range resources {
		samples, err := d.util.Samples(ctx, resource.ResourceID, domain.MetricCPU, since)
		if err != nil {
			return nil, fmt.Errorf("fetch cpu samples for %s: %w", resource.ResourceID, err)
		}
		if len(samples) < d.settings.MinSamples {
			logger.Debug().
				Str("resource_id", resource.ResourceID).
				Int("samples", len(samples)).
				Msg("skipping compute resource, not enough cpu samples")
			continue
		}

		p50s := make([]float64, len(samples))
		p95s := make([]float64, len(samples))
		for i, s := range samples {
			p50s[i] = s.P50
			p95s[i] = s.P95
		}

		medianP50 := stats.Median(p50s)
		medianP95 := stats.Median(p95s)
		if medianP50 >= d.settings.CPUMedianP50Threshold || medianP95 >= d.settings.CPUMedianP95Threshold {
			continue
		}

		monthlyCost, err := d.costs.ResourceTotalSince(ctx, resource.ResourceID, now.AddDate(0, 0, -d.settings.CostLookbackDays))
		if err != nil {
			return nil, fmt.Errorf("fetch trailing cost for %s: %w", resource.ResourceID, err)
		}

		variance := stats.Variance(p50s)
		confidence := domain.ConfidenceHigh
		switch {
		case len(samples) < d.settings.LowConfidenceSamples:
			confidence = domain.ConfidenceLow
		case variance > d.settings.P50VarianceThreshold || len(samples) < d.settings.FullConfidenceSamples:
			confidence = domain.ConfidenceMedium
		}

		savings := monthlyCost * d.savingsFactor(resource.InstanceType)
		severity := domain.SeverityMedium
		if savings > d.settings.HighSeveritySavingsUSD {
			severity = domain.SeverityHigh
		}
		risk := domain.RiskLow
		if strings.Contains(resource.Name, "prod") {
			risk = domain.RiskMedium
		}

		findings = append(findings, assembleFinding(draft{
			Type:       domain.FindingUnderutilized,
			ResourceID: resource.ResourceID,
			Title: fmt.Sprintf("%s %s under %.1f%% median CPU (%dd)",
				strings.ToUpper(resource.Type), resource.Name, medianP50, d.settings.UtilizationWindowDays),
			Severity:   severity,
			Confidence: confidence,
			SavingsUSD: savings,
			Evidence: map[string]any{
				"p50_cpu":        round2(medianP50),
				"p95_cpu":        round2(medianP95),
				"p50_variance":   round2(variance),
				"hours_analyzed": len(samples),
				"monthly_cost":   round2(monthlyCost),
				"instance_type":  resource.InstanceType,
			},
			Action: "Downsize to a smaller instance type or schedule off-hours stop",
			Commands: []string{
				fmt.Sprintf("aws ec2 describe-instances --instance-ids %s", resource.ResourceID),
				fmt.Sprintf("aws ec2 modify-instance-attribute --instance-id %s --instance-type <smaller-type>", resource.ResourceID),
			},
			Risk:        risk,
			ImplTime:    "1-2 hours",
			Methodology: "median p50/p95 CPU over the trailing utilization window",
			Assumptions: []string{
				"workload does not have a usage pattern longer than the sampled window",
				fmt.Sprintf("rightsizing recovers %.0f%% of the trailing %d-day spend", d.savingsFactor(resource.InstanceType)*100, d.settings.CostLookbackDays),
			},
		}, now))
	}

	return findings, nil
}

func (d *UnderutilizedDetector) savingsFactor(instanceType string) float64 {
	switch {
	case strings.Contains(instanceType, "xlarge"):
		return d.settings.SavingsFactorXLarge
	case strings.Contains(instanceType, "large"):
		return d.settings.SavingsFactorLarge
	default:
		return d.settings.SavingsFactorDefault
	}
}
