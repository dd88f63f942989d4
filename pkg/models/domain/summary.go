package domain

import "time"

type KPIs struct {
	TotalCostUSD       float64
	WoWPercent         float64
	MoMPercent         float64
	SavingsReadyUSD    float64
	UnderutilizedCount int
	OrphansCount       int
}

type ProductCost struct {
	Product        string
	AmountUSD      float64
	PercentOfTotal float64
}

type Summary struct {
	Window         string
	WindowDays     int
	KPIs           KPIs
	TopProducts    []ProductCost
	RecentFindings []Finding
	GeneratedAt    time.Time
}

// TrendPoint is one calendar day on the cost chart. Days without any cost
// rows still get a point with a zero value.
type TrendPoint struct {
	Date    time.Time
	Label   string
	CostUSD float64
}

// Mover compares a product's spend in the current window against the
// immediately preceding window of equal length.
type Mover struct {
	Product       string
	CurrentUSD    float64
	PreviousUSD   float64
	DeltaUSD      float64
	ChangePercent float64
}

type BreakdownSlice struct {
	Name       string
	Value      float64
	Percentage float64
}

type Breakdown struct {
	Data     []BreakdownSlice
	TotalUSD float64
}

type KeyInsights struct {
	HighestDay        TrendPoint
	MonthToDateUSD    float64
	ProjectedMonthUSD float64
	MonthlyBudgetUSD  float64
	BudgetVarianceUSD float64
}

// AnalysisResult is what one orchestrator run produced. FailedDetectors
// names detectors whose store reads failed; their findings are simply
// absent, the rest of the run is unaffected.
type AnalysisResult struct {
	Findings           []Finding
	SavingsReadyUSD    float64
	UnderutilizedCount int
	OrphansCount       int
	FailedDetectors    []string
}
