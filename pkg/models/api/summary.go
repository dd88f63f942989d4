package api

import "time"

type KPIs struct {
	TotalCostUSD       float64 `json:"total_cost_usd"`
	WoWPercent         float64 `json:"wow_percent"`
	MoMPercent         float64 `json:"mom_percent"`
	SavingsReadyUSD    float64 `json:"savings_ready_usd"`
	UnderutilizedCount int     `json:"underutilized_count"`
	OrphansCount       int     `json:"orphans_count"`
}

type ProductCost struct {
	Product        string  `json:"product"`
	AmountUSD      float64 `json:"amount_usd"`
	PercentOfTotal float64 `json:"percent_of_total"`
}

type Summary struct {
	Window         string        `json:"window"`
	KPIs           KPIs          `json:"kpis"`
	TopProducts    []ProductCost `json:"top_products"`
	RecentFindings []Finding     `json:"recent_findings"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

type TrendPoint struct {
	Date    string  `json:"date"`
	Label   string  `json:"label"`
	CostUSD float64 `json:"cost_usd"`
}

type Mover struct {
	Service       string  `json:"service"`
	CurrentUSD    float64 `json:"current_usd"`
	PreviousUSD   float64 `json:"previous_usd"`
	DeltaUSD      float64 `json:"delta_usd"`
	ChangePercent float64 `json:"change_percent"`
}

type BreakdownSlice struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

type Breakdown struct {
	Data     []BreakdownSlice `json:"data"`
	TotalUSD float64          `json:"total"`
}

type KeyInsights struct {
	HighestDayDate    string  `json:"highest_day_date"`
	HighestDayUSD     float64 `json:"highest_day_usd"`
	MonthToDateUSD    float64 `json:"month_to_date_usd"`
	ProjectedMonthUSD float64 `json:"projected_month_end_usd"`
	MonthlyBudgetUSD  float64 `json:"monthly_budget_usd"`
	BudgetVarianceUSD float64 `json:"budget_variance_usd"`
}

type CostRecord struct {
	Cloud      string  `json:"cloud"`
	Account    string  `json:"account"`
	Product    string  `json:"product"`
	ResourceID string  `json:"resource_id,omitempty"`
	Owner      string  `json:"owner,omitempty"`
	Date       string  `json:"date"`
	AmountUSD  float64 `json:"amount_usd"`
}

type UtilSample struct {
	ResourceID string    `json:"resource_id"`
	Metric     string    `json:"metric"`
	Hour       time.Time `json:"ts_hour"`
	P50        float64   `json:"p50"`
	P95        float64   `json:"p95"`
}

type Resource struct {
	ResourceID   string            `json:"resource_id"`
	Cloud        string            `json:"cloud"`
	Type         string            `json:"type"`
	Name         string            `json:"name"`
	State        string            `json:"state"`
	Account      string            `json:"account"`
	Region       string            `json:"region,omitempty"`
	InstanceType string            `json:"instance_type,omitempty"`
	Tags         map[string]string `json:"tags"`
}

type ResourceDetail struct {
	Resource    Resource     `json:"resource"`
	CostHistory []CostRecord `json:"cost_history"`
	Utilization []UtilSample `json:"utilization_history"`
}

type SeedResponse struct {
	CostRows    int `json:"cost_rows"`
	Resources   int `json:"resources"`
	UtilSamples int `json:"util_samples"`
}
