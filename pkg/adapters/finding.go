package adapters

import (
	"maps"
	"slices"

	"github.com/de-tools/cost-guard/pkg/models/api"
	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/models/store"
)

func MapFindingDomainToStore(f domain.Finding) store.FindingRow {
	return store.FindingRow{
		FindingID:          f.FindingID,
		ResourceID:         f.ResourceID,
		Type:               f.Type.String(),
		Title:              f.Title,
		Severity:           f.Severity.String(),
		Confidence:         f.Confidence.String(),
		MonthlySavingsUSD:  f.MonthlySavingsUSD,
		Evidence:           maps.Clone(f.Evidence),
		SuggestedAction:    f.SuggestedAction,
		Commands:           slices.Clone(f.Commands),
		RiskLevel:          f.RiskLevel.String(),
		ImplementationTime: f.ImplementationTime,
		Methodology:        f.Methodology,
		Assumptions:        slices.Clone(f.Assumptions),
		CreatedAt:          f.CreatedAt,
		LastAnalyzed:       f.LastAnalyzed,
	}
}

func MapFindingStoreToDomain(row store.FindingRow) (domain.Finding, error) {
	findingType, err := domain.ParseFindingType(row.Type)
	if err != nil {
		return domain.Finding{}, err
	}
	severity, err := domain.ParseSeverity(row.Severity)
	if err != nil {
		return domain.Finding{}, err
	}
	confidence, err := domain.ParseConfidence(row.Confidence)
	if err != nil {
		return domain.Finding{}, err
	}
	risk, err := domain.ParseRiskLevel(row.RiskLevel)
	if err != nil {
		return domain.Finding{}, err
	}
	return domain.Finding{
		FindingID:          row.FindingID,
		ResourceID:         row.ResourceID,
		Type:               findingType,
		Title:              row.Title,
		Severity:           severity,
		Confidence:         confidence,
		MonthlySavingsUSD:  row.MonthlySavingsUSD,
		Evidence:           maps.Clone(row.Evidence),
		SuggestedAction:    row.SuggestedAction,
		Commands:           slices.Clone(row.Commands),
		RiskLevel:          risk,
		ImplementationTime: row.ImplementationTime,
		Methodology:        row.Methodology,
		Assumptions:        slices.Clone(row.Assumptions),
		CreatedAt:          row.CreatedAt,
		LastAnalyzed:       row.LastAnalyzed,
	}, nil
}

func MapFindingDomainToApi(f domain.Finding) api.Finding {
	return api.Finding{
		FindingID:          f.FindingID,
		ResourceID:         f.ResourceID,
		Type:               f.Type.String(),
		Title:              f.Title,
		Severity:           api.Severity(f.Severity.String()),
		Confidence:         f.Confidence.String(),
		MonthlySavingsUSD:  f.MonthlySavingsUSD,
		Evidence:           maps.Clone(f.Evidence),
		SuggestedAction:    f.SuggestedAction,
		Commands:           slices.Clone(f.Commands),
		RiskLevel:          f.RiskLevel.String(),
		ImplementationTime: f.ImplementationTime,
		Methodology:        f.Methodology,
		Assumptions:        slices.Clone(f.Assumptions),
		CreatedAt:          f.CreatedAt,
		LastAnalyzed:       f.LastAnalyzed,
	}
}

func MapAnalysisResultDomainToApi(result domain.AnalysisResult) api.AnalysisResponse {
	findings := make([]api.Finding, 0, len(result.Findings))
	for _, f := range result.Findings {
		findings = append(findings, MapFindingDomainToApi(f))
	}
	return api.AnalysisResponse{
		Findings:           findings,
		SavingsReadyUSD:    result.SavingsReadyUSD,
		UnderutilizedCount: result.UnderutilizedCount,
		OrphansCount:       result.OrphansCount,
		FailedDetectors:    result.FailedDetectors,
	}
}
