package resources

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/models/store"
)

type MockResourceReader struct {
	mock.Mock
}

func (m *MockResourceReader) Get(ctx context.Context, resourceID string) (*store.ResourceRow, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ResourceRow), args.Error(1)
}

type MockCostReader struct {
	mock.Mock
}

func (m *MockCostReader) ResourceRows(ctx context.Context, resourceID string, since time.Time) ([]store.CostRow, error) {
	args := m.Called(ctx, resourceID, since)
	return args.Get(0).([]store.CostRow), args.Error(1)
}

type MockUtilReader struct {
	mock.Mock
}

func (m *MockUtilReader) ResourceSamples(ctx context.Context, resourceID string, since time.Time) ([]store.UtilRow, error) {
	args := m.Called(ctx, resourceID, since)
	return args.Get(0).([]store.UtilRow), args.Error(1)
}

func TestExplorer_Describe(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles resource with cost and utilization history", func(t *testing.T) {
		resourceReader := new(MockResourceReader)
		costReader := new(MockCostReader)
		utilReader := new(MockUtilReader)
		explorer := NewExplorer(resourceReader, costReader, utilReader)

		resourceReader.On("Get", ctx, "i-001").Return(&store.ResourceRow{
			ResourceID: "i-001",
			Cloud:      "aws",
			Type:       "ec2",
			Name:       "web-server-1",
			State:      "running",
		}, nil)
		costReader.On("ResourceRows", ctx, "i-001", mock.AnythingOfType("time.Time")).Return([]store.CostRow{
			{ResourceID: "i-001", Product: "EC2-Instance", AmountUSD: 28},
		}, nil)
		utilReader.On("ResourceSamples", ctx, "i-001", mock.AnythingOfType("time.Time")).Return([]store.UtilRow{
			{ResourceID: "i-001", Metric: "cpu", P50: 8.5, P95: 22.3},
		}, nil)

		detail, err := explorer.Describe(ctx, "i-001")

		assert.NoError(t, err)
		assert.Equal(t, domain.ResourceEC2, detail.Resource.Type)
		assert.Len(t, detail.CostHistory, 1)
		assert.Len(t, detail.Utilization, 1)
	})

	t.Run("unknown id passes ErrNotFound through", func(t *testing.T) {
		resourceReader := new(MockResourceReader)
		explorer := NewExplorer(resourceReader, new(MockCostReader), new(MockUtilReader))

		resourceReader.On("Get", ctx, "i-missing").Return(nil, store.ErrNotFound)

		detail, err := explorer.Describe(ctx, "i-missing")

		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Nil(t, detail)
	})
}
