package domain

import (
	"fmt"
	"time"
)

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	}
	return "unknown"
}

func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	case "critical":
		return SeverityCritical, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
	ConfidenceVeryHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	case ConfidenceVeryHigh:
		return "very_high"
	}
	return "unknown"
}

func ParseConfidence(s string) (Confidence, error) {
	switch s {
	case "low":
		return ConfidenceLow, nil
	case "medium":
		return ConfidenceMedium, nil
	case "high":
		return ConfidenceHigh, nil
	case "very_high":
		return ConfidenceVeryHigh, nil
	}
	return 0, fmt.Errorf("unknown confidence %q", s)
}

type FindingType int

const (
	FindingUnderutilized FindingType = iota
	FindingOrphan
	FindingAnomaly
	FindingDelta
)

func (t FindingType) String() string {
	switch t {
	case FindingUnderutilized:
		return "underutilized"
	case FindingOrphan:
		return "orphan"
	case FindingAnomaly:
		return "anomaly"
	case FindingDelta:
		return "delta"
	}
	return "unknown"
}

func ParseFindingType(s string) (FindingType, error) {
	switch s {
	case "underutilized":
		return FindingUnderutilized, nil
	case "orphan":
		return FindingOrphan, nil
	case "anomaly":
		return FindingAnomaly, nil
	case "delta":
		return FindingDelta, nil
	}
	return 0, fmt.Errorf("unknown finding type %q", s)
}

type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	}
	return "unknown"
}

func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	}
	return 0, fmt.Errorf("unknown risk level %q", s)
}

type ResourceType int

const (
	ResourceEC2 ResourceType = iota
	ResourceEBS
	ResourceELB
	ResourceEIP
	ResourceGCE
	ResourcePD
	ResourceLB
)

func (t ResourceType) String() string {
	switch t {
	case ResourceEC2:
		return "ec2"
	case ResourceEBS:
		return "ebs"
	case ResourceELB:
		return "elb"
	case ResourceEIP:
		return "eip"
	case ResourceGCE:
		return "gce"
	case ResourcePD:
		return "pd"
	case ResourceLB:
		return "lb"
	}
	return "unknown"
}

func ParseResourceType(s string) (ResourceType, error) {
	switch s {
	case "ec2":
		return ResourceEC2, nil
	case "ebs":
		return ResourceEBS, nil
	case "elb":
		return ResourceELB, nil
	case "eip":
		return ResourceEIP, nil
	case "gce":
		return ResourceGCE, nil
	case "pd":
		return ResourcePD, nil
	case "lb":
		return ResourceLB, nil
	}
	return 0, fmt.Errorf("unknown resource type %q", s)
}

// Finding is a single actionable cost-optimization observation. The whole
// finding set is regenerated on every analysis run; identity never survives
// across runs.
type Finding struct {
	FindingID          string
	ResourceID         string // empty for resource-less findings (anomalies)
	Type               FindingType
	Title              string
	Severity           Severity
	Confidence         Confidence
	MonthlySavingsUSD  float64
	Evidence           map[string]any
	SuggestedAction    string
	Commands           []string
	RiskLevel          RiskLevel
	ImplementationTime string
	Methodology        string
	Assumptions        []string
	CreatedAt          time.Time
	LastAnalyzed       time.Time
}

// FindingQuery narrows and orders a findings listing.
type FindingQuery struct {
	Type   *FindingType
	SortBy string // savings | severity | created
	Limit  int
}
