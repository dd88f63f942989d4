package analysis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/models/store"
	"github.com/de-tools/cost-guard/pkg/services/stats"
)

// AnomalyDetector scores the last few days of each product's daily spend
// against a robust baseline built from the rest of the window. MAD is used
// instead of standard deviation so the anomaly being hunted cannot inflate
// the dispersion it is measured against.
type AnomalyDetector struct {
	costs    CostReader
	settings Settings
	now      func() time.Time
}

func NewAnomalyDetector(costs CostReader, settings Settings) *AnomalyDetector {
	return &AnomalyDetector{
		costs:    costs,
		settings: settings,
		now:      time.Now,
	}
}

func (d *AnomalyDetector) Name() string { return "cost_anomalies" }

func (d *AnomalyDetector) Detect(ctx context.Context) ([]domain.Finding, error) {
	logger := zerolog.Ctx(ctx)
	now := d.now().UTC()
	since := now.AddDate(0, 0, -d.settings.AnomalyLookbackDays)

	totals, err := d.costs.ProductDailyTotals(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("fetch product daily totals: %w", err)
	}

	var findings []domain.Finding
	for product, days := range groupByProduct(totals) {
		if len(days) < d.settings.AnomalyMinDays {
			continue
		}

		split := len(days) - d.settings.AnomalyRecentDays
		if split < 1 {
			continue
		}
		baseline := make([]float64, split)
		for i, day := range days[:split] {
			baseline[i] = day.TotalUSD
		}

		medianCost := stats.Median(baseline)
		mad := stats.MAD(baseline)
		if mad == 0 {
			// perfectly flat baseline; scoring it would divide by zero
			logger.Debug().Str("product", product).Msg("skipping product, zero MAD baseline")
			continue
		}

		for _, day := range days[split:] {
			z := stats.RobustZScore(day.TotalUSD, medianCost, mad)
			delta := day.TotalUSD - medianCost
			if math.Abs(z) < d.settings.AnomalyZThreshold || math.Abs(delta) < d.settings.AnomalyMinDeltaUSD {
				continue
			}

			severity := domain.SeverityHigh
			if math.Abs(delta) >= d.settings.AnomalyCriticalDeltaUSD {
				severity = domain.SeverityCritical
			}
			confidence := domain.ConfidenceMedium
			if math.Abs(z) >= d.settings.AnomalyHighConfidenceZ {
				confidence = domain.ConfidenceHigh
			}
			savings := 0.0
			if delta > 0 {
				savings = delta * 30
			}

			direction := "spike"
			if delta < 0 {
				direction = "drop"
			}

			findings = append(findings, assembleFinding(draft{
				Type:       domain.FindingAnomaly,
				Title:      fmt.Sprintf("Cost %s in %s on %s", direction, product, day.Date.Format("2006-01-02")),
				Severity:   severity,
				Confidence: confidence,
				SavingsUSD: savings,
				Evidence: map[string]any{
					"product":     product,
					"date":        day.Date.Format("2006-01-02"),
					"z_score":     round2(z),
					"day_cost":    round2(day.TotalUSD),
					"median_cost": round2(medianCost),
					"mad":         round2(mad),
					"delta_usd":   round2(delta),
				},
				Action: "Investigate the cost change and identify the root cause",
				Commands: []string{
					fmt.Sprintf("# Review %s usage on %s", product, day.Date.Format("2006-01-02")),
					"# Check for new resources, retention changes or pricing-tier shifts",
				},
				Risk:        domain.RiskLow,
				ImplTime:    "varies",
				Methodology: "robust z-score (0.6745 * (x - median) / MAD) against the baseline window",
				Assumptions: []string{"baseline window reflects normal spend for the product"},
			}, now))
		}
	}

	return findings, nil
}

// groupByProduct splits the date-ordered aggregate rows into per-product
// series. Row order within a product is preserved.
func groupByProduct(totals []store.ProductDaily) map[string][]store.ProductDaily {
	grouped := make(map[string][]store.ProductDaily)
	for _, t := range totals {
		grouped[t.Product] = append(grouped[t.Product], t)
	}
	return grouped
}
