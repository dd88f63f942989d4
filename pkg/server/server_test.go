package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cost-guard/pkg/models/api"
	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/models/store"
	"github.com/de-tools/cost-guard/pkg/services/seed"
)

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Run(ctx context.Context) (*domain.AnalysisResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *mockAnalyzer) ListFindings(ctx context.Context, q domain.FindingQuery) ([]domain.Finding, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Finding), args.Error(1)
}

type mockSummaries struct {
	mock.Mock
}

func (m *mockSummaries) Summary(ctx context.Context, window string) (*domain.Summary, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *mockSummaries) Products(ctx context.Context, window string) ([]domain.ProductCost, error) {
	args := m.Called(ctx, window)
	return args.Get(0).([]domain.ProductCost), args.Error(1)
}

func (m *mockSummaries) Trend(ctx context.Context, days int) ([]domain.TrendPoint, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]domain.TrendPoint), args.Error(1)
}

func (m *mockSummaries) Breakdown(ctx context.Context, window string) (*domain.Breakdown, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Breakdown), args.Error(1)
}

func (m *mockSummaries) Movers(ctx context.Context, days int) ([]domain.Mover, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]domain.Mover), args.Error(1)
}

func (m *mockSummaries) KeyInsights(ctx context.Context, window string) (*domain.KeyInsights, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KeyInsights), args.Error(1)
}

type mockSeeder struct {
	mock.Mock
}

func (m *mockSeeder) Seed(ctx context.Context, seedValue int64) (*seed.Dataset, error) {
	args := m.Called(ctx, seedValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seed.Dataset), args.Error(1)
}

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) Describe(ctx context.Context, resourceID string) (*domain.ResourceDetail, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceDetail), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	analyzer := new(mockAnalyzer)
	summaries := new(mockSummaries)
	seeder := new(mockSeeder)
	explorer := new(mockExplorer)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Analyzer:  analyzer,
			Summaries: summaries,
			Seeder:    seeder,
			Explorer:  explorer,
			Logger:    logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	generatedAt := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		method         string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:   "GetSummary",
			method: http.MethodGet,
			path:   "/api/v1/summary?window=7d",
			setupMocks: func() {
				summaries.On("Summary", mock.Anything, "7d").Return(&domain.Summary{
					Window:      "7d",
					WindowDays:  7,
					KPIs:        domain.KPIs{TotalCostUSD: 1000},
					GeneratedAt: generatedAt,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.Summary{
				Window:         "7d",
				KPIs:           api.KPIs{TotalCostUSD: 1000},
				TopProducts:    []api.ProductCost{},
				RecentFindings: []api.Finding{},
				GeneratedAt:    generatedAt,
			},
			parseResponse: unmarshalResponse[api.Summary](),
		},
		{
			name:   "GetTrend",
			method: http.MethodGet,
			path:   "/api/v1/trend?days=7",
			setupMocks: func() {
				summaries.On("Trend", mock.Anything, 7).Return([]domain.TrendPoint{
					{Date: generatedAt, Label: "Jun 15", CostUSD: 120},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: []api.TrendPoint{
				{Date: "2025-06-15", Label: "Jun 15", CostUSD: 120},
			},
			parseResponse: unmarshalResponse[[]api.TrendPoint](),
		},
		{
			name:   "GetResource_NotFound",
			method: http.MethodGet,
			path:   "/api/v1/resources/i-missing",
			setupMocks: func() {
				explorer.On("Describe", mock.Anything, "i-missing").Return(nil, store.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expected:       "resource not found\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:   "SeedData",
			method: http.MethodPost,
			path:   "/api/v1/seed",
			setupMocks: func() {
				seeder.On("Seed", mock.Anything, int64(42)).Return(&seed.Dataset{
					Costs:     make([]domain.CostRecord, 10),
					Samples:   make([]domain.UtilSample, 20),
					Resources: make([]domain.Resource, 3),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       api.SeedResponse{CostRows: 10, UtilSamples: 20, Resources: 3},
			parseResponse:  unmarshalResponse[api.SeedResponse](),
		},
		{
			name:   "RunAnalysis",
			method: http.MethodPost,
			path:   "/api/v1/analysis",
			setupMocks: func() {
				analyzer.On("Run", mock.Anything).Return(&domain.AnalysisResult{
					Findings:        []domain.Finding{},
					SavingsReadyUSD: 346,
					OrphansCount:    2,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.AnalysisResponse{
				Findings:        []api.Finding{},
				SavingsReadyUSD: 346,
				OrphansCount:    2,
			},
			parseResponse: unmarshalResponse[api.AnalysisResponse](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
