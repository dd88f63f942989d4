package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/cost-guard/pkg/models/domain"
)

const hoursPerMonth = 730

// OrphanDetector runs two independent scans: unattached storage volumes and
// unused floating IPs. Orphans have no attributable billing history, so both
// estimates come from a per-unit price model instead of cost rows.
type OrphanDetector struct {
	resources ResourceReader
	settings  Settings
	now       func() time.Time
}

func NewOrphanDetector(resources ResourceReader, settings Settings) *OrphanDetector {
	return &OrphanDetector{
		resources: resources,
		settings:  settings,
		now:       time.Now,
	}
}

func (d *OrphanDetector) Name() string { return "orphaned_resources" }

func (d *OrphanDetector) Detect(ctx context.Context) ([]domain.Finding, error) {
	now := d.now().UTC()

	volumes, err := d.scanVolumes(ctx, now)
	if err != nil {
		return nil, err
	}
	ips, err := d.scanFloatingIPs(ctx, now)
	if err != nil {
		return nil, err
	}
	return append(volumes, ips...), nil
}

func (d *OrphanDetector) scanVolumes(ctx context.Context, now time.Time) ([]domain.Finding, error) {
	volumeTypes := []string{domain.ResourceEBS.String(), domain.ResourcePD.String()}
	volumes, err := d.resources.ListByTypeState(ctx, volumeTypes, domain.StateAvailable)
	if err != nil {
		return nil, fmt.Errorf("list unattached volumes: %w", err)
	}

	monthlyCost := d.settings.VolumePricePerGBMonth * d.settings.AssumedVolumeSizeGB
	severity := domain.SeverityLow
	if monthlyCost > d.settings.OrphanMediumSeverityUSD {
		severity = domain.SeverityMedium
	}
	confidence := domain.ConfidenceMedium
	if d.settings.AssumedUnattachedDays > 30 {
		confidence = domain.ConfidenceHigh
	}

	var findings []domain.Finding
	for _, volume := range volumes {
		findings = append(findings, assembleFinding(draft{
			Type:       domain.FindingOrphan,
			ResourceID: volume.ResourceID,
			Title:      fmt.Sprintf("Unattached volume %s", volume.Name),
			Severity:   severity,
			Confidence: confidence,
			SavingsUSD: monthlyCost,
			Evidence: map[string]any{
				"state":              volume.State,
				"assumed_size_gb":    d.settings.AssumedVolumeSizeGB,
				"assumed_age_days":   d.settings.AssumedUnattachedDays,
				"price_per_gb_month": d.settings.VolumePricePerGBMonth,
			},
			Action: "Snapshot and delete the unused volume, or attach it to an instance",
			Commands: []string{
				fmt.Sprintf("aws ec2 describe-volumes --volume-ids %s", volume.ResourceID),
				fmt.Sprintf("aws ec2 delete-volume --volume-id %s", volume.ResourceID),
			},
			Risk:        domain.RiskLow,
			ImplTime:    "15 minutes",
			Methodology: "per-GB price model over an assumed volume size",
			Assumptions: []string{
				fmt.Sprintf("volume is around %.0f GB", d.settings.AssumedVolumeSizeGB),
				"no workload re-attaches the volume",
			},
		}, now))
	}
	return findings, nil
}

func (d *OrphanDetector) scanFloatingIPs(ctx context.Context, now time.Time) ([]domain.Finding, error) {
	ips, err := d.resources.ListByTypeState(ctx, []string{domain.ResourceEIP.String()}, domain.StateAvailable)
	if err != nil {
		return nil, fmt.Errorf("list unused floating ips: %w", err)
	}

	monthlyCost := d.settings.IPHourlyRateUSD * hoursPerMonth

	var findings []domain.Finding
	for _, ip := range ips {
		findings = append(findings, assembleFinding(draft{
			Type:       domain.FindingOrphan,
			ResourceID: ip.ResourceID,
			Title:      fmt.Sprintf("Unused floating IP %s", ip.Name),
			Severity:   domain.SeverityLow,
			Confidence: domain.ConfidenceHigh,
			SavingsUSD: monthlyCost,
			Evidence: map[string]any{
				"state":           ip.State,
				"hourly_rate_usd": d.settings.IPHourlyRateUSD,
			},
			Action: "Release the unassociated address",
			Commands: []string{
				fmt.Sprintf("aws ec2 describe-addresses --allocation-ids %s", ip.ResourceID),
				fmt.Sprintf("aws ec2 release-address --allocation-id %s", ip.ResourceID),
			},
			Risk:        domain.RiskLow,
			ImplTime:    "5 minutes",
			Methodology: "flat hourly rate for an unassociated address",
			Assumptions: []string{"address stays unassociated for the full month"},
		}, now))
	}
	return findings, nil
}
