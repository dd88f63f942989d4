package api

import "time"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type Finding struct {
	FindingID          string         `json:"finding_id"`
	ResourceID         string         `json:"resource_id,omitempty"`
	Type               string         `json:"type"`
	Title              string         `json:"title"`
	Severity           Severity       `json:"severity"`
	Confidence         string         `json:"confidence"`
	MonthlySavingsUSD  float64        `json:"monthly_savings_usd_est"`
	Evidence           map[string]any `json:"evidence"`
	SuggestedAction    string         `json:"suggested_action"`
	Commands           []string       `json:"commands"`
	RiskLevel          string         `json:"risk_level"`
	ImplementationTime string         `json:"implementation_time"`
	Methodology        string         `json:"methodology"`
	Assumptions        []string       `json:"assumptions"`
	CreatedAt          time.Time      `json:"created_at"`
	LastAnalyzed       time.Time      `json:"last_analyzed"`
}

type AnalysisResponse struct {
	Findings           []Finding `json:"findings"`
	SavingsReadyUSD    float64   `json:"savings_ready_usd"`
	UnderutilizedCount int       `json:"underutilized_count"`
	OrphansCount       int       `json:"orphans_count"`
	FailedDetectors    []string  `json:"failed_detectors,omitempty"`
}
