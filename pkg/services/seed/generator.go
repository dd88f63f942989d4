// Package seed builds a deterministic demo dataset: a month of daily spend
// across a few accounts and products, a small resource inventory with
// deliberately wasteful members, and a week of hourly utilization. The same
// seed always yields the same dataset. Nothing in the analysis path ever
// calls into this package.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/de-tools/cost-guard/pkg/models/domain"
)

const (
	costDays   = 35
	sampleDays = 7

	anomalyProduct = "EC2-Instance"
	anomalyFactor  = 2.5

	// daily spend attributed to the oversized batch instance, enough for
	// rightsizing it to clear the high-severity bar
	lowCPUInstanceDailyUSD = 28.0
)

type account struct {
	id    string
	owner string
}

var accounts = []account{
	{id: "123456789012", owner: "team-alpha"},
	{id: "987654321098", owner: "team-beta"},
	{id: "456789012345", owner: "team-gamma"},
}

var productBaseUSD = map[string]float64{
	"EC2-Instance": 850,
	"RDS-Postgres": 420,
	"EBS-Volumes":  180,
	"ELB":          120,
	"S3-Storage":   75,
	"CloudWatch":   45,
	"DynamoDB":     35,
	"Lambda":       25,
	"CloudFront":   20,
}

// products in a fixed order so generation stays reproducible; map iteration
// order would reshuffle the noise stream between runs
var products = []string{
	"EC2-Instance", "RDS-Postgres", "EBS-Volumes", "ELB", "S3-Storage",
	"CloudWatch", "DynamoDB", "Lambda", "CloudFront",
}

type Dataset struct {
	Costs     []domain.CostRecord
	Samples   []domain.UtilSample
	Resources []domain.Resource
}

// Generate builds the dataset anchored at now. The final cost day is
// yesterday relative to now, so the injected spike lands inside the anomaly
// detector's recent-days window.
func Generate(seed int64, now time.Time) *Dataset {
	rng := rand.New(rand.NewSource(seed))
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	ds := &Dataset{}
	ds.Resources = buildResources()
	ds.Costs = buildCosts(rng, today)
	ds.Samples = buildSamples(rng, now)
	return ds
}

func buildCosts(rng *rand.Rand, today time.Time) []domain.CostRecord {
	var records []domain.CostRecord
	start := today.AddDate(0, 0, -costDays)

	for i := 0; i < costDays; i++ {
		day := start.AddDate(0, 0, i)
		weekdayFactor := 1.2
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			weekdayFactor = 0.8
		}

		for _, acct := range accounts {
			for _, product := range products {
				noise := rng.Float64()*0.4 - 0.2
				amount := productBaseUSD[product] * weekdayFactor * (1 + noise)
				if product == anomalyProduct && i == costDays-1 {
					amount *= anomalyFactor
				}

				records = append(records, domain.CostRecord{
					Cloud:     "aws",
					Account:   acct.id,
					Product:   product,
					Owner:     acct.owner,
					Date:      day,
					AmountUSD: round2(amount),
				})
			}
		}

		// attribute steady spend to the oversized instance so rightsizing
		// savings can be computed from its trailing bill
		records = append(records, domain.CostRecord{
			Cloud:      "aws",
			Account:    accounts[0].id,
			Product:    anomalyProduct,
			ResourceID: "i-0batch0analytics01",
			Owner:      accounts[0].owner,
			Date:       day,
			AmountUSD:  lowCPUInstanceDailyUSD,
		})
	}
	return records
}

func buildResources() []domain.Resource {
	tags := map[string]string{"Environment": "production", "Team": "platform"}
	return []domain.Resource{
		{
			ResourceID:   "i-0batch0analytics01",
			Cloud:        "aws",
			Type:         domain.ResourceEC2,
			Name:         "analytics-batch-1",
			State:        domain.StateRunning,
			Account:      accounts[0].id,
			Region:       "us-east-1",
			InstanceType: "m5.xlarge",
			Tags:         tags,
		},
		{
			ResourceID:   "i-0web0frontend0001",
			Cloud:        "aws",
			Type:         domain.ResourceEC2,
			Name:         "web-server-1",
			State:        domain.StateRunning,
			Account:      accounts[0].id,
			Region:       "us-east-1",
			InstanceType: "m5.large",
			Tags:         tags,
		},
		{
			ResourceID:   "i-0ml0trainer000001",
			Cloud:        "aws",
			Type:         domain.ResourceEC2,
			Name:         "ml-trainer-1",
			State:        domain.StateRunning,
			Account:      accounts[1].id,
			Region:       "us-west-2",
			InstanceType: "p3.2xlarge",
			Tags:         tags,
		},
		{
			ResourceID: "vol-0unattached00001",
			Cloud:      "aws",
			Type:       domain.ResourceEBS,
			Name:       "unattached-volume",
			State:      domain.StateAvailable,
			Account:    accounts[0].id,
			Region:     "us-east-1",
			Tags:       tags,
		},
		{
			ResourceID: "vol-0oldbackup000001",
			Cloud:      "aws",
			Type:       domain.ResourceEBS,
			Name:       "backup-volume",
			State:      domain.StateAvailable,
			Account:    accounts[1].id,
			Region:     "us-west-2",
			Tags:       tags,
		},
		{
			ResourceID: "elb-0staging0000001",
			Cloud:      "aws",
			Type:       domain.ResourceELB,
			Name:       "idle-elb",
			State:      domain.StateActive,
			Account:    accounts[0].id,
			Region:     "us-east-1",
			Tags:       tags,
		},
		{
			ResourceID: "eipalloc-0legacy001",
			Cloud:      "aws",
			Type:       domain.ResourceEIP,
			Name:       "unused-eip",
			State:      domain.StateAvailable,
			Account:    accounts[2].id,
			Region:     "eu-west-1",
			Tags:       tags,
		},
	}
}

func buildSamples(rng *rand.Rand, now time.Time) []domain.UtilSample {
	hour := now.Truncate(time.Hour)
	var samples []domain.UtilSample

	type series struct {
		resourceID string
		metric     string
		p50, p95   float64
	}
	metered := []series{
		{"i-0batch0analytics01", domain.MetricCPU, 8.5, 22.3},
		{"i-0web0frontend0001", domain.MetricCPU, 65.2, 89.1},
		{"i-0ml0trainer000001", domain.MetricGPU, 5.1, 12.8},
		{"elb-0staging0000001", domain.MetricELBReq, 0.4, 1.2},
	}

	for i := 0; i < sampleDays*24; i++ {
		ts := hour.Add(-time.Duration(i) * time.Hour)
		for _, m := range metered {
			jitter := 1 + (rng.Float64()*0.1 - 0.05)
			samples = append(samples, domain.UtilSample{
				ResourceID: m.resourceID,
				Metric:     m.metric,
				Hour:       ts,
				P50:        round2(m.p50 * jitter),
				P95:        round2(m.p95 * jitter),
			})
		}
	}
	return samples
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary describes the generated dataset for CLI output.
func (d *Dataset) Summary() string {
	return fmt.Sprintf("%d cost rows, %d utilization samples, %d resources",
		len(d.Costs), len(d.Samples), len(d.Resources))
}
