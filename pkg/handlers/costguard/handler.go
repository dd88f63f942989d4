package costguard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/cost-guard/pkg/adapters"
	"github.com/de-tools/cost-guard/pkg/models/api"
	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/models/store"
	"github.com/de-tools/cost-guard/pkg/services/seed"
)

const (
	defaultSeed        = 42
	defaultTrendDays   = 30
	defaultMoversDays  = 7
	defaultFindingsCap = 50
)

type Analyzer interface {
	Run(ctx context.Context) (*domain.AnalysisResult, error)
	ListFindings(ctx context.Context, q domain.FindingQuery) ([]domain.Finding, error)
}

type SummaryService interface {
	Summary(ctx context.Context, window string) (*domain.Summary, error)
	Products(ctx context.Context, window string) ([]domain.ProductCost, error)
	Trend(ctx context.Context, days int) ([]domain.TrendPoint, error)
	Breakdown(ctx context.Context, window string) (*domain.Breakdown, error)
	Movers(ctx context.Context, days int) ([]domain.Mover, error)
	KeyInsights(ctx context.Context, window string) (*domain.KeyInsights, error)
}

type Seeder interface {
	Seed(ctx context.Context, seedValue int64) (*seed.Dataset, error)
}

type ResourceExplorer interface {
	Describe(ctx context.Context, resourceID string) (*domain.ResourceDetail, error)
}

type Handler struct {
	analyzer  Analyzer
	summaries SummaryService
	seeder    Seeder
	explorer  ResourceExplorer
}

func NewHandler(analyzer Analyzer, summaries SummaryService, seeder Seeder, explorer ResourceExplorer) *Handler {
	return &Handler{
		analyzer:  analyzer,
		summaries: summaries,
		seeder:    seeder,
		explorer:  explorer,
	}
}

func (h *Handler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.analyzer.Run(ctx)
	if err != nil {
		respondError(w, r, err, "analysis failed")
		return
	}
	respondJSON(w, r, adapters.MapAnalysisResultDomainToApi(*result))
}

func (h *Handler) ListFindings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := domain.FindingQuery{
		SortBy: r.URL.Query().Get("sort"),
		Limit:  intQuery(r, "limit", defaultFindingsCap),
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		findingType, err := domain.ParseFindingType(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		q.Type = &findingType
	}

	findings, err := h.analyzer.ListFindings(ctx, q)
	if err != nil {
		respondError(w, r, err, "failed to list findings")
		return
	}

	response := make([]api.Finding, 0, len(findings))
	for _, f := range findings {
		response = append(response, adapters.MapFindingDomainToApi(f))
	}
	respondJSON(w, r, response)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	window := windowQuery(r)

	s, err := h.summaries.Summary(ctx, window)
	if err != nil {
		respondError(w, r, err, "failed to build summary")
		return
	}
	respondJSON(w, r, adapters.MapSummaryDomainToApi(*s))
}

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.summaries.Products(ctx, windowQuery(r))
	if err != nil {
		respondError(w, r, err, "failed to list products")
		return
	}

	response := make([]api.ProductCost, 0, len(products))
	for _, p := range products {
		response = append(response, api.ProductCost{
			Product:        p.Product,
			AmountUSD:      p.AmountUSD,
			PercentOfTotal: p.PercentOfTotal,
		})
	}
	respondJSON(w, r, response)
}

func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	points, err := h.summaries.Trend(ctx, intQuery(r, "days", defaultTrendDays))
	if err != nil {
		respondError(w, r, err, "failed to build trend")
		return
	}
	respondJSON(w, r, adapters.MapTrendDomainToApi(points))
}

func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	breakdown, err := h.summaries.Breakdown(ctx, windowQuery(r))
	if err != nil {
		respondError(w, r, err, "failed to build breakdown")
		return
	}
	respondJSON(w, r, adapters.MapBreakdownDomainToApi(*breakdown))
}

func (h *Handler) GetMovers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	movers, err := h.summaries.Movers(ctx, intQuery(r, "days", defaultMoversDays))
	if err != nil {
		respondError(w, r, err, "failed to compute movers")
		return
	}
	respondJSON(w, r, adapters.MapMoversDomainToApi(movers))
}

func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	insights, err := h.summaries.KeyInsights(ctx, windowQuery(r))
	if err != nil {
		respondError(w, r, err, "failed to compute insights")
		return
	}
	respondJSON(w, r, adapters.MapKeyInsightsDomainToApi(*insights))
}

func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resourceID := chi.URLParam(r, "resourceID")

	detail, err := h.explorer.Describe(ctx, resourceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "resource not found", http.StatusNotFound)
			return
		}
		respondError(w, r, err, "failed to describe resource")
		return
	}
	respondJSON(w, r, adapters.MapResourceDetailDomainToApi(*detail))
}

func (h *Handler) SeedData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	seedValue := int64(intQuery(r, "seed", defaultSeed))
	dataset, err := h.seeder.Seed(ctx, seedValue)
	if err != nil {
		respondError(w, r, err, "failed to seed data")
		return
	}
	respondJSON(w, r, api.SeedResponse{
		CostRows:    len(dataset.Costs),
		Resources:   len(dataset.Resources),
		UtilSamples: len(dataset.Samples),
	})
}

func windowQuery(r *http.Request) string {
	window := r.URL.Query().Get("window")
	if window == "" {
		return "30d"
	}
	return window
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func respondJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	zerolog.Ctx(r.Context()).Error().
		Err(err).
		Str("path", r.URL.Path).
		Msg(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}
