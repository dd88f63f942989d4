package analysis

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/de-tools/cost-guard/pkg/models/domain"
)

// draft carries the detector-specific parts of a finding; assembleFinding
// fills in identity, timestamps and normalizes the savings estimate.
type draft struct {
	Type        domain.FindingType
	ResourceID  string
	Title       string
	Severity    domain.Severity
	Confidence  domain.Confidence
	SavingsUSD  float64
	Evidence    map[string]any
	Action      string
	Commands    []string
	Risk        domain.RiskLevel
	ImplTime    string
	Methodology string
	Assumptions []string
}

func assembleFinding(d draft, now time.Time) domain.Finding {
	savings := d.SavingsUSD
	if savings < 0 {
		savings = 0
	}
	return domain.Finding{
		FindingID:          uuid.NewString(),
		ResourceID:         d.ResourceID,
		Type:               d.Type,
		Title:              d.Title,
		Severity:           d.Severity,
		Confidence:         d.Confidence,
		MonthlySavingsUSD:  round2(savings),
		Evidence:           d.Evidence,
		SuggestedAction:    d.Action,
		Commands:           d.Commands,
		RiskLevel:          d.Risk,
		ImplementationTime: d.ImplTime,
		Methodology:        d.Methodology,
		Assumptions:        d.Assumptions,
		CreatedAt:          now,
		LastAnalyzed:       now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
