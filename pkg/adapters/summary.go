package adapters

import (
	"github.com/de-tools/cost-guard/pkg/models/api"
	"github.com/de-tools/cost-guard/pkg/models/domain"
)

func MapSummaryDomainToApi(s domain.Summary) api.Summary {
	products := make([]api.ProductCost, 0, len(s.TopProducts))
	for _, p := range s.TopProducts {
		products = append(products, api.ProductCost{
			Product:        p.Product,
			AmountUSD:      p.AmountUSD,
			PercentOfTotal: p.PercentOfTotal,
		})
	}
	findings := make([]api.Finding, 0, len(s.RecentFindings))
	for _, f := range s.RecentFindings {
		findings = append(findings, MapFindingDomainToApi(f))
	}
	return api.Summary{
		Window: s.Window,
		KPIs: api.KPIs{
			TotalCostUSD:       s.KPIs.TotalCostUSD,
			WoWPercent:         s.KPIs.WoWPercent,
			MoMPercent:         s.KPIs.MoMPercent,
			SavingsReadyUSD:    s.KPIs.SavingsReadyUSD,
			UnderutilizedCount: s.KPIs.UnderutilizedCount,
			OrphansCount:       s.KPIs.OrphansCount,
		},
		TopProducts:    products,
		RecentFindings: findings,
		GeneratedAt:    s.GeneratedAt,
	}
}

func MapTrendDomainToApi(points []domain.TrendPoint) []api.TrendPoint {
	out := make([]api.TrendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, api.TrendPoint{
			Date:    p.Date.Format(dateLayout),
			Label:   p.Label,
			CostUSD: p.CostUSD,
		})
	}
	return out
}

func MapMoversDomainToApi(movers []domain.Mover) []api.Mover {
	out := make([]api.Mover, 0, len(movers))
	for _, m := range movers {
		out = append(out, api.Mover{
			Service:       m.Product,
			CurrentUSD:    m.CurrentUSD,
			PreviousUSD:   m.PreviousUSD,
			DeltaUSD:      m.DeltaUSD,
			ChangePercent: m.ChangePercent,
		})
	}
	return out
}

func MapBreakdownDomainToApi(b domain.Breakdown) api.Breakdown {
	data := make([]api.BreakdownSlice, 0, len(b.Data))
	for _, s := range b.Data {
		data = append(data, api.BreakdownSlice{
			Name:       s.Name,
			Value:      s.Value,
			Percentage: s.Percentage,
		})
	}
	return api.Breakdown{Data: data, TotalUSD: b.TotalUSD}
}

func MapKeyInsightsDomainToApi(k domain.KeyInsights) api.KeyInsights {
	return api.KeyInsights{
		HighestDayDate:    k.HighestDay.Date.Format(dateLayout),
		HighestDayUSD:     k.HighestDay.CostUSD,
		MonthToDateUSD:    k.MonthToDateUSD,
		ProjectedMonthUSD: k.ProjectedMonthUSD,
		MonthlyBudgetUSD:  k.MonthlyBudgetUSD,
		BudgetVarianceUSD: k.BudgetVarianceUSD,
	}
}
