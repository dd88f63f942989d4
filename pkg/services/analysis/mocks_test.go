package analysis

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/de-tools/cost-guard/pkg/models/store"
)

// MockCostReader is a mock implementation of CostReader for testing
type MockCostReader struct {
	mock.Mock
}

func (m *MockCostReader) ResourceTotalSince(ctx context.Context, resourceID string, since time.Time) (float64, error) {
	args := m.Called(ctx, resourceID, since)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCostReader) ProductDailyTotals(ctx context.Context, since time.Time) ([]store.ProductDaily, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]store.ProductDaily), args.Error(1)
}

// MockUtilReader is a mock implementation of UtilReader for testing
type MockUtilReader struct {
	mock.Mock
}

func (m *MockUtilReader) Samples(ctx context.Context, resourceID, metric string, since time.Time) ([]store.UtilRow, error) {
	args := m.Called(ctx, resourceID, metric, since)
	return args.Get(0).([]store.UtilRow), args.Error(1)
}

// MockResourceReader is a mock implementation of ResourceReader for testing
type MockResourceReader struct {
	mock.Mock
}

func (m *MockResourceReader) ListByTypeState(ctx context.Context, types []string, state string) ([]store.ResourceRow, error) {
	args := m.Called(ctx, types, state)
	return args.Get(0).([]store.ResourceRow), args.Error(1)
}

// MockFindingStore is a mock implementation of FindingStore for testing
type MockFindingStore struct {
	mock.Mock
}

func (m *MockFindingStore) ReplaceAll(ctx context.Context, rows []store.FindingRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockFindingStore) List(ctx context.Context, q store.FindingQuery) ([]store.FindingRow, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]store.FindingRow), args.Error(1)
}

// hourlySamples builds n hourly samples with constant p50/p95 values ending
// at the given time.
func hourlySamples(resourceID, metric string, n int, p50, p95 float64, end time.Time) []store.UtilRow {
	rows := make([]store.UtilRow, n)
	for i := 0; i < n; i++ {
		rows[i] = store.UtilRow{
			ResourceID: resourceID,
			Metric:     metric,
			HourTS:     end.Add(-time.Duration(n-i) * time.Hour),
			P50:        p50,
			P95:        p95,
		}
	}
	return rows
}
