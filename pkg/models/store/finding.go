package store

import "time"

type FindingRow struct {
	FindingID          string
	ResourceID         string
	Type               string
	Title              string
	Severity           string
	Confidence         string
	MonthlySavingsUSD  float64
	Evidence           map[string]any
	SuggestedAction    string
	Commands           []string
	RiskLevel          string
	ImplementationTime string
	Methodology        string
	Assumptions        []string
	CreatedAt          time.Time
	LastAnalyzed       time.Time
}

type FindingQuery struct {
	Type   string // empty means all types
	SortBy string // savings | severity | created
	Limit  int
}
