// Package export renders finding reports for humans: a Markdown analysis
// report and a flat CSV for finance spreadsheets.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/cost-guard/pkg/models/domain"
)

type MarkdownReporter struct {
	writer io.Writer
	now    func() time.Time
}

func NewMarkdownReporter(writer io.Writer) *MarkdownReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &MarkdownReporter{writer: writer, now: time.Now}
}

type typeBreakdown struct {
	Type       string
	Count      int
	SavingsUSD float64
}

type reportData struct {
	GeneratedAt  string
	TotalSavings float64
	Total        int
	HighPriority int
	Top          []domain.Finding
	Breakdown    []typeBreakdown
}

func (r *MarkdownReporter) Handle(findings []domain.Finding) error {
	funcMap := template.FuncMap{
		"money": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"upper": strings.ToUpper,
		"inc":   func(i int) int { return i + 1 },
		"joinCommands": func(commands []string) string {
			return strings.Join(commands, "\n")
		},
		"evidenceJSON": func(evidence map[string]any) string {
			raw, err := json.MarshalIndent(evidence, "", "  ")
			if err != nil {
				return "{}"
			}
			return string(raw)
		},
	}

	tmpl := `# Cloud Cost Guard Analysis Report

**Generated:** {{.GeneratedAt}}

## Executive Summary

- **Total Potential Savings:** {{money .TotalSavings}}/month
- **Findings:** {{.Total}} optimization opportunities
- **High Priority:** {{.HighPriority}} findings

## Top Findings (Ranked by $ Savings)

{{range $i, $f := .Top}}### {{inc $i}}. {{$f.Title}}

**Monthly Savings:** {{money $f.MonthlySavingsUSD}}
**Severity:** {{upper $f.Severity.String}}
**Type:** {{$f.Type.String}}

**Action Required:** {{$f.SuggestedAction}}

**Commands:**
` + "```bash\n{{joinCommands $f.Commands}}\n```" + `

**Evidence:**
` + "```json\n{{evidenceJSON $f.Evidence}}\n```" + `

---

{{end}}## Breakdown by Type

{{range .Breakdown}}- **{{.Type}}:** {{.Count}} findings, {{money .SavingsUSD}}/month potential savings
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, buildReportData(findings, r.now()))
}

func buildReportData(findings []domain.Finding, now time.Time) reportData {
	data := reportData{
		GeneratedAt: now.Format("2006-01-02 15:04:05"),
		Total:       len(findings),
	}

	top := findings
	if len(top) > 10 {
		top = top[:10]
	}
	data.Top = top

	byType := make(map[string]*typeBreakdown)
	var order []string
	for _, f := range findings {
		data.TotalSavings += f.MonthlySavingsUSD
		if f.Severity == domain.SeverityHigh || f.Severity == domain.SeverityCritical {
			data.HighPriority++
		}

		name := f.Type.String()
		entry, ok := byType[name]
		if !ok {
			entry = &typeBreakdown{Type: name}
			byType[name] = entry
			order = append(order, name)
		}
		entry.Count++
		entry.SavingsUSD += f.MonthlySavingsUSD
	}
	for _, name := range order {
		data.Breakdown = append(data.Breakdown, *byType[name])
	}
	return data
}

// WriteCSV emits one row per finding in the column layout finance asks for.
func WriteCSV(w io.Writer, findings []domain.Finding) error {
	cw := csv.NewWriter(w)
	header := []string{
		"finding_id", "type", "title", "severity", "monthly_savings_usd",
		"resource_id", "suggested_action", "commands", "evidence",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, f := range findings {
		evidence, err := json.Marshal(f.Evidence)
		if err != nil {
			return fmt.Errorf("encode evidence for %s: %w", f.FindingID, err)
		}
		row := []string{
			f.FindingID,
			f.Type.String(),
			f.Title,
			f.Severity.String(),
			strconv.FormatFloat(f.MonthlySavingsUSD, 'f', 2, 64),
			f.ResourceID,
			f.SuggestedAction,
			strings.Join(f.Commands, "; "),
			string(evidence),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
