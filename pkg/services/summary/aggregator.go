// Package summary aggregates stored cost rows and persisted findings into
// the dashboard views: KPI summary, daily trend, product breakdown, movers
// and key insights. It only reads; running the detectors is the analysis
// package's job.
package summary

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/de-tools/cost-guard/pkg/adapters"
	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/models/store"
)

const trendLabelLayout = "Jan 02"

type CostReader interface {
	TotalSince(ctx context.Context, since time.Time) (float64, error)
	TotalBetween(ctx context.Context, start, end time.Time) (float64, error)
	DailyTotals(ctx context.Context, since time.Time) ([]store.DailyTotal, error)
	ProductTotals(ctx context.Context, since time.Time) ([]store.ProductTotal, error)
	ProductTotalsBetween(ctx context.Context, start, end time.Time) ([]store.ProductTotal, error)
}

type FindingReader interface {
	List(ctx context.Context, q store.FindingQuery) ([]store.FindingRow, error)
}

type Service struct {
	costs    CostReader
	findings FindingReader
	budget   float64
	now      func() time.Time
}

func NewService(costs CostReader, findings FindingReader, monthlyBudgetUSD float64) *Service {
	return &Service{
		costs:    costs,
		findings: findings,
		budget:   monthlyBudgetUSD,
		now:      time.Now,
	}
}

// ParseWindow maps a window string to its day count. Unknown strings fall
// back to 30 days rather than erroring; window selection is a UI concern and
// a typo should never break the dashboard.
func ParseWindow(window string) int {
	switch window {
	case "7d":
		return 7
	case "30d":
		return 30
	case "90d":
		return 90
	default:
		return 30
	}
}

// Summary builds the KPI view for the requested window: windowed total,
// week-over-week and month-over-month movement, findings-derived savings
// figures, the top products and the latest findings.
func (s *Service) Summary(ctx context.Context, window string) (*domain.Summary, error) {
	now := s.now().UTC()
	days := ParseWindow(window)
	since := now.AddDate(0, 0, -days)

	total, err := s.costs.TotalSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("windowed total: %w", err)
	}
	wow, err := s.periodChange(ctx, now, 7)
	if err != nil {
		return nil, err
	}
	mom, err := s.periodChange(ctx, now, 30)
	if err != nil {
		return nil, err
	}

	products, err := s.topProducts(ctx, since, 10)
	if err != nil {
		return nil, err
	}

	savings, underutilized, orphans, err := s.findingKPIs(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.recentFindings(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &domain.Summary{
		Window:     window,
		WindowDays: days,
		KPIs: domain.KPIs{
			TotalCostUSD:       round2(total),
			WoWPercent:         wow,
			MoMPercent:         mom,
			SavingsReadyUSD:    savings,
			UnderutilizedCount: underutilized,
			OrphansCount:       orphans,
		},
		TopProducts:    products,
		RecentFindings: recent,
		GeneratedAt:    now,
	}, nil
}

// Trend returns one point per calendar day over the trailing window. Days
// with no cost rows still get a zero point so charts stay contiguous.
func (s *Service) Trend(ctx context.Context, days int) ([]domain.TrendPoint, error) {
	now := s.now().UTC()
	start := now.AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)

	totals, err := s.costs.DailyTotals(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	byDay := make(map[string]float64, len(totals))
	for _, t := range totals {
		byDay[t.Date.UTC().Format("2006-01-02")] = t.TotalUSD
	}

	points := make([]domain.TrendPoint, 0, days)
	for day := start; !day.After(now); day = day.AddDate(0, 0, 1) {
		points = append(points, domain.TrendPoint{
			Date:    day,
			Label:   day.Format(trendLabelLayout),
			CostUSD: round2(byDay[day.Format("2006-01-02")]),
		})
	}
	return points, nil
}

// Products returns the top ten products for the window.
func (s *Service) Products(ctx context.Context, window string) ([]domain.ProductCost, error) {
	now := s.now().UTC()
	return s.topProducts(ctx, now.AddDate(0, 0, -ParseWindow(window)), 10)
}

// Breakdown returns the top products for the window as chart slices.
func (s *Service) Breakdown(ctx context.Context, window string) (*domain.Breakdown, error) {
	now := s.now().UTC()
	since := now.AddDate(0, 0, -ParseWindow(window))

	totals, err := s.costs.ProductTotals(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("product totals: %w", err)
	}

	var grand float64
	for _, t := range totals {
		grand += t.TotalUSD
	}

	if len(totals) > 8 {
		totals = totals[:8]
	}
	slices := make([]domain.BreakdownSlice, 0, len(totals))
	for _, t := range totals {
		slices = append(slices, domain.BreakdownSlice{
			Name:       t.Product,
			Value:      round2(t.TotalUSD),
			Percentage: percentOf(t.TotalUSD, grand),
		})
	}
	return &domain.Breakdown{Data: slices, TotalUSD: round2(grand)}, nil
}

// Movers compares each product's spend in the trailing window against the
// immediately preceding window of the same length, ranked by absolute delta.
func (s *Service) Movers(ctx context.Context, days int) ([]domain.Mover, error) {
	now := s.now().UTC()
	mid := now.AddDate(0, 0, -days)
	start := now.AddDate(0, 0, -2*days)

	current, err := s.costs.ProductTotalsBetween(ctx, mid, now)
	if err != nil {
		return nil, fmt.Errorf("current window totals: %w", err)
	}
	previous, err := s.costs.ProductTotalsBetween(ctx, start, mid)
	if err != nil {
		return nil, fmt.Errorf("previous window totals: %w", err)
	}

	currentBy := make(map[string]float64, len(current))
	for _, t := range current {
		currentBy[t.Product] = t.TotalUSD
	}
	previousBy := make(map[string]float64, len(previous))
	for _, t := range previous {
		previousBy[t.Product] = t.TotalUSD
	}

	seen := make(map[string]bool)
	movers := make([]domain.Mover, 0, len(currentBy))
	for _, totals := range [][]store.ProductTotal{current, previous} {
		for _, t := range totals {
			if seen[t.Product] {
				continue
			}
			seen[t.Product] = true

			cur := currentBy[t.Product]
			prev := previousBy[t.Product]
			movers = append(movers, domain.Mover{
				Product:       t.Product,
				CurrentUSD:    round2(cur),
				PreviousUSD:   round2(prev),
				DeltaUSD:      round2(cur - prev),
				ChangePercent: changePercent(cur, prev),
			})
		}
	}

	sort.Slice(movers, func(i, j int) bool {
		di, dj := math.Abs(movers[i].DeltaUSD), math.Abs(movers[j].DeltaUSD)
		if di != dj {
			return di > dj
		}
		return movers[i].Product < movers[j].Product
	})
	if len(movers) > 10 {
		movers = movers[:10]
	}
	return movers, nil
}

// KeyInsights answers the questions the dashboard header asks: the most
// expensive day in the window, month-to-date spend, a naive month-end
// projection from the trailing-week run rate, and where that projection
// lands against the configured budget.
func (s *Service) KeyInsights(ctx context.Context, window string) (*domain.KeyInsights, error) {
	now := s.now().UTC()
	since := now.AddDate(0, 0, -ParseWindow(window))

	totals, err := s.costs.DailyTotals(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	var highest domain.TrendPoint
	for _, t := range totals {
		if t.TotalUSD > highest.CostUSD {
			highest = domain.TrendPoint{
				Date:    t.Date,
				Label:   t.Date.Format(trendLabelLayout),
				CostUSD: round2(t.TotalUSD),
			}
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	mtd, err := s.costs.TotalSince(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("month-to-date total: %w", err)
	}

	trailingWeek, err := s.costs.TotalSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("trailing week total: %w", err)
	}
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	daysRemaining := daysInMonth - now.Day()
	projected := mtd + (trailingWeek/7)*float64(daysRemaining)

	return &domain.KeyInsights{
		HighestDay:        highest,
		MonthToDateUSD:    round2(mtd),
		ProjectedMonthUSD: round2(projected),
		MonthlyBudgetUSD:  s.budget,
		BudgetVarianceUSD: round2(projected - s.budget),
	}, nil
}

// periodChange compares the trailing period against the one before it.
func (s *Service) periodChange(ctx context.Context, now time.Time, days int) (float64, error) {
	mid := now.AddDate(0, 0, -days)
	current, err := s.costs.TotalBetween(ctx, mid, now)
	if err != nil {
		return 0, fmt.Errorf("current %dd total: %w", days, err)
	}
	previous, err := s.costs.TotalBetween(ctx, now.AddDate(0, 0, -2*days), mid)
	if err != nil {
		return 0, fmt.Errorf("previous %dd total: %w", days, err)
	}
	return changePercent(current, previous), nil
}

func (s *Service) topProducts(ctx context.Context, since time.Time, limit int) ([]domain.ProductCost, error) {
	totals, err := s.costs.ProductTotals(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("product totals: %w", err)
	}
	var grand float64
	for _, t := range totals {
		grand += t.TotalUSD
	}
	if len(totals) > limit {
		totals = totals[:limit]
	}
	products := make([]domain.ProductCost, 0, len(totals))
	for _, t := range totals {
		products = append(products, domain.ProductCost{
			Product:        t.Product,
			AmountUSD:      round2(t.TotalUSD),
			PercentOfTotal: percentOf(t.TotalUSD, grand),
		})
	}
	return products, nil
}

func (s *Service) findingKPIs(ctx context.Context) (savings float64, underutilized, orphans int, err error) {
	rows, err := s.findings.List(ctx, store.FindingQuery{})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("list findings: %w", err)
	}
	for _, row := range rows {
		savings += row.MonthlySavingsUSD
		switch row.Type {
		case domain.FindingUnderutilized.String():
			underutilized++
		case domain.FindingOrphan.String():
			orphans++
		}
	}
	return round2(savings), underutilized, orphans, nil
}

func (s *Service) recentFindings(ctx context.Context, limit int) ([]domain.Finding, error) {
	rows, err := s.findings.List(ctx, store.FindingQuery{SortBy: "created", Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list recent findings: %w", err)
	}
	findings := make([]domain.Finding, 0, len(rows))
	for _, row := range rows {
		finding, err := adapters.MapFindingStoreToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("decode finding %s: %w", row.FindingID, err)
		}
		findings = append(findings, finding)
	}
	return findings, nil
}

// changePercent implements the movers convention: flat zero spend moves 0%,
// spend appearing from nothing moves +100%.
func changePercent(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return round2((current - previous) / previous * 100)
}

func percentOf(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round2(value / total * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
