package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/models/store"
)

func TestUnderutilizedDetector_Detect(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	computeTypes := []string{"ec2", "gce"}

	newDetector := func(resources *MockResourceReader, util *MockUtilReader, costs *MockCostReader) *UnderutilizedDetector {
		d := NewUnderutilizedDetector(resources, util, costs, DefaultSettings())
		d.now = func() time.Time { return now }
		return d
	}

	t.Run("flags low-cpu instance with savings from trailing spend", func(t *testing.T) {
		resources := new(MockResourceReader)
		util := new(MockUtilReader)
		costs := new(MockCostReader)

		resources.On("ListByTypeState", ctx, computeTypes, domain.StateRunning).Return([]store.ResourceRow{
			{ResourceID: "i-001", Type: "ec2", Name: "batch-worker", State: "running", InstanceType: "m5.xlarge"},
		}, nil)
		util.On("Samples", ctx, "i-001", domain.MetricCPU, mock.AnythingOfType("time.Time")).
			Return(hourlySamples("i-001", domain.MetricCPU, 168, 8.0, 20.0, now), nil)
		costs.On("ResourceTotalSince", ctx, "i-001", mock.AnythingOfType("time.Time")).Return(840.0, nil)

		findings, err := newDetector(resources, util, costs).Detect(ctx)

		assert.NoError(t, err)
		assert.Len(t, findings, 1)
		f := findings[0]
		assert.Equal(t, domain.FindingUnderutilized, f.Type)
		assert.Equal(t, "i-001", f.ResourceID)
		// 840 over 30 days at the xlarge factor
		assert.Equal(t, 336.0, f.MonthlySavingsUSD)
		assert.Equal(t, domain.SeverityHigh, f.Severity)
		assert.Equal(t, domain.ConfidenceHigh, f.Confidence)
		assert.Equal(t, domain.RiskLow, f.RiskLevel)
		assert.Equal(t, 8.0, f.Evidence["p50_cpu"])
		assert.Equal(t, 168, f.Evidence["hours_analyzed"])
		resources.AssertExpectations(t)
		util.AssertExpectations(t)
		costs.AssertExpectations(t)
	})

	t.Run("busy instance produces no finding", func(t *testing.T) {
		resources := new(MockResourceReader)
		util := new(MockUtilReader)
		costs := new(MockCostReader)

		resources.On("ListByTypeState", ctx, computeTypes, domain.StateRunning).Return([]store.ResourceRow{
			{ResourceID: "i-002", Type: "ec2", Name: "api-server", State: "running", InstanceType: "m5.large"},
		}, nil)
		util.On("Samples", ctx, "i-002", domain.MetricCPU, mock.AnythingOfType("time.Time")).
			Return(hourlySamples("i-002", domain.MetricCPU, 168, 70.0, 95.0, now), nil)

		findings, err := newDetector(resources, util, costs).Detect(ctx)

		assert.NoError(t, err)
		assert.Empty(t, findings)
		costs.AssertNotCalled(t, "ResourceTotalSince", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("high p95 exonerates despite low p50", func(t *testing.T) {
		resources := new(MockResourceReader)
		util := new(MockUtilReader)
		costs := new(MockCostReader)

		resources.On("ListByTypeState", ctx, computeTypes, domain.StateRunning).Return([]store.ResourceRow{
			{ResourceID: "i-003", Type: "ec2", Name: "spiky-job", State: "running", InstanceType: "m5.large"},
		}, nil)
		util.On("Samples", ctx, "i-003", domain.MetricCPU, mock.AnythingOfType("time.Time")).
			Return(hourlySamples("i-003", domain.MetricCPU, 168, 8.0, 60.0, now), nil)

		findings, err := newDetector(resources, util, costs).Detect(ctx)

		assert.NoError(t, err)
		assert.Empty(t, findings)
	})

	t.Run("skips instance with too few samples", func(t *testing.T) {
		resources := new(MockResourceReader)
		util := new(MockUtilReader)
		costs := new(MockCostReader)

		resources.On("ListByTypeState", ctx, computeTypes, domain.StateRunning).Return([]store.ResourceRow{
			{ResourceID: "i-004", Type: "ec2", Name: "fresh-box", State: "running", InstanceType: "m5.large"},
		}, nil)
		util.On("Samples", ctx, "i-004", domain.MetricCPU, mock.AnythingOfType("time.Time")).
			Return(hourlySamples("i-004", domain.MetricCPU, 47, 5.0, 10.0, now), nil)

		findings, err := newDetector(resources, util, costs).Detect(ctx)

		assert.NoError(t, err)
		assert.Empty(t, findings)
	})

	t.Run("low confidence when samples cover under three days", func(t *testing.T) {
		resources := new(MockResourceReader)
		util := new(MockUtilReader)
		costs := new(MockCostReader)

		resources.On("ListByTypeState", ctx, computeTypes, domain.StateRunning).Return([]store.ResourceRow{
			{ResourceID: "i-005", Type: "ec2", Name: "new-worker", State: "running", InstanceType: "t3.medium"},
		}, nil)
		util.On("Samples", ctx, "i-005", domain.MetricCPU, mock.AnythingOfType("time.Time")).
			Return(hourlySamples("i-005", domain.MetricCPU, 60, 5.0, 12.0, now), nil)
		costs.On("ResourceTotalSince", ctx, "i-005", mock.AnythingOfType("time.Time")).Return(60.0, nil)

		findings, err := newDetector(resources, util, costs).Detect(ctx)

		assert.NoError(t, err)
		assert.Len(t, findings, 1)
		assert.Equal(t, domain.ConfidenceLow, findings[0].Confidence)
		// default factor, low spend keeps severity medium
		assert.Equal(t, 15.0, findings[0].MonthlySavingsUSD)
		assert.Equal(t, domain.SeverityMedium, findings[0].Severity)
	})

	t.Run("volatile p50 downgrades confidence to medium", func(t *testing.T) {
		resources := new(MockResourceReader)
		util := new(MockUtilReader)
		costs := new(MockCostReader)

		resources.On("ListByTypeState", ctx, computeTypes, domain.StateRunning).Return([]store.ResourceRow{
			{ResourceID: "i-006", Type: "ec2", Name: "bursty", State: "running", InstanceType: "m5.large"},
		}, nil)

		// alternate p50 between 1 and 25 so the median stays low but the
		// variance blows past the threshold
		samples := hourlySamples("i-006", domain.MetricCPU, 168, 1.0, 28.0, now)
		for i := range samples {
			if i%2 == 0 {
				samples[i].P50 = 25.0
			}
		}
		util.On("Samples", ctx, "i-006", domain.MetricCPU, mock.AnythingOfType("time.Time")).Return(samples, nil)
		costs.On("ResourceTotalSince", ctx, "i-006", mock.AnythingOfType("time.Time")).Return(100.0, nil)

		findings, err := newDetector(resources, util, costs).Detect(ctx)

		assert.NoError(t, err)
		assert.Len(t, findings, 1)
		assert.Equal(t, domain.ConfidenceMedium, findings[0].Confidence)
	})

	t.Run("prod naming raises risk", func(t *testing.T) {
		resources := new(MockResourceReader)
		util := new(MockUtilReader)
		costs := new(MockCostReader)

		resources.On("ListByTypeState", ctx, computeTypes, domain.StateRunning).Return([]store.ResourceRow{
			{ResourceID: "i-007", Type: "ec2", Name: "prod-cache", State: "running", InstanceType: "m5.large"},
		}, nil)
		util.On("Samples", ctx, "i-007", domain.MetricCPU, mock.AnythingOfType("time.Time")).
			Return(hourlySamples("i-007", domain.MetricCPU, 168, 6.0, 14.0, now), nil)
		costs.On("ResourceTotalSince", ctx, "i-007", mock.AnythingOfType("time.Time")).Return(200.0, nil)

		findings, err := newDetector(resources, util, costs).Detect(ctx)

		assert.NoError(t, err)
		assert.Len(t, findings, 1)
		assert.Equal(t, domain.RiskMedium, findings[0].RiskLevel)
	})
}
