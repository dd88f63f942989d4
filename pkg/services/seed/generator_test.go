package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/de-tools/cost-guard/pkg/models/domain"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("same seed yields the identical dataset", func(t *testing.T) {
		a := Generate(42, now)
		b := Generate(42, now)

		assert.Equal(t, a.Costs, b.Costs)
		assert.Equal(t, a.Samples, b.Samples)
		assert.Equal(t, a.Resources, b.Resources)
	})

	t.Run("different seeds disagree on the noise", func(t *testing.T) {
		a := Generate(1, now)
		b := Generate(2, now)

		assert.NotEqual(t, a.Costs, b.Costs)
	})

	t.Run("dataset has the documented shape", func(t *testing.T) {
		ds := Generate(42, now)

		// 3 accounts x 9 products x 35 days, plus one attributed row per day
		assert.Len(t, ds.Costs, 35*(3*9+1))
		// 4 metered resources over 7 days of hourly samples
		assert.Len(t, ds.Samples, 7*24*4)
		assert.Len(t, ds.Resources, 7)
	})

	t.Run("final day carries the injected spike", func(t *testing.T) {
		ds := Generate(42, now)

		lastDay := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
		var spikeTotal, priorMax float64
		for _, c := range ds.Costs {
			if c.Product != "EC2-Instance" || c.ResourceID != "" {
				continue
			}
			if c.Date.Equal(lastDay) {
				spikeTotal += c.AmountUSD
			} else if c.AmountUSD > priorMax {
				priorMax = c.AmountUSD
			}
		}
		// even the cheapest spiked day dwarfs any single normal day
		assert.Greater(t, spikeTotal, priorMax*2)
	})

	t.Run("inventory includes the wasteful members", func(t *testing.T) {
		ds := Generate(42, now)

		byState := make(map[string]int)
		for _, r := range ds.Resources {
			byState[r.State]++
		}
		assert.Equal(t, 3, byState[domain.StateRunning])
		assert.Equal(t, 3, byState[domain.StateAvailable])
		assert.Equal(t, 1, byState[domain.StateActive])
	})

	t.Run("low-cpu instance samples stay under the flag thresholds", func(t *testing.T) {
		ds := Generate(42, now)

		for _, s := range ds.Samples {
			if s.ResourceID != "i-0batch0analytics01" {
				continue
			}
			assert.Equal(t, domain.MetricCPU, s.Metric)
			assert.Less(t, s.P50, 15.0)
			assert.Less(t, s.P95, 30.0)
		}
	})

	t.Run("idle elb request rate stays below one per second", func(t *testing.T) {
		ds := Generate(42, now)

		count := 0
		for _, s := range ds.Samples {
			if s.ResourceID != "elb-0staging0000001" {
				continue
			}
			count++
			assert.Less(t, s.P50, 1.0)
			assert.Less(t, s.P95, 2.0)
		}
		assert.Equal(t, 7*24, count)
	})
}
