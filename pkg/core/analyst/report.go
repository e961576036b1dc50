package analyst

import (
	"fmt"
	"sort"
	"strings"

	"strategic_analyst/pkg/core/utils"
)

// RenderReport formats the session's records as a markdown dashboard:
// financial metrics, SWOT quadrants and risk scenarios, in the order the
// dashboard tabs present them. Nil records are skipped so a partial analysis
// still renders. The output is sanity-checked with the markdown parser.
func RenderReport(ticker string, displayURL string, financial *FinancialRecord, swot *SwotRecord, risk *RiskSimulationRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Strategic Dashboard for %s\n\n", strings.ToUpper(ticker))
	if displayURL != "" {
		fmt.Fprintf(&b, "[Link to 10-K Filing](%s)\n\n", displayURL)
	}

	if financial != nil {
		writeFinancialSection(&b, financial)
	}
	if swot != nil {
		writeSwotSection(&b, swot)
	}
	if risk != nil {
		writeRiskSection(&b, risk)
	}

	report := b.String()
	if !utils.ValidateMarkdown(report) {
		// Goldmark accepts nearly anything; a nil parse means the builder
		// produced garbage and the caller should see raw sections instead.
		return fmt.Sprintf("# Strategic Dashboard for %s\n", strings.ToUpper(ticker))
	}
	return report
}

func writeFinancialSection(b *strings.Builder, rec *FinancialRecord) {
	b.WriteString("## Financial Snapshot\n\n")
	fmt.Fprintf(b, "- Revenue: %s", OrNA(rec.RevenueAnalysis.CurrentYearRevenue))
	if rec.RevenueAnalysis.GrowthRate != "" {
		fmt.Fprintf(b, " (%s)", rec.RevenueAnalysis.GrowthRate)
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "- Net Income: %s\n", OrNA(rec.Profitability.NetIncome))
	fmt.Fprintf(b, "- Net Margin: %s\n", OrNA(rec.Profitability.NetMargin))

	if len(rec.CostStructure) > 0 {
		b.WriteString("\n### Cost Structure\n\n")
		components := make([]string, 0, len(rec.CostStructure))
		for name := range rec.CostStructure {
			components = append(components, name)
		}
		sort.Strings(components)
		for _, name := range components {
			fmt.Fprintf(b, "- %s: %s\n", name, rec.CostStructure[name])
		}
	}
	b.WriteString("\n")
}

func writeSwotSection(b *strings.Builder, rec *SwotRecord) {
	b.WriteString("## SWOT Analysis\n\n")
	quadrants := []struct {
		title string
		items []string
	}{
		{"Strengths", rec.Strengths},
		{"Weaknesses", rec.Weaknesses},
		{"Opportunities", rec.Opportunities},
		{"Threats", rec.Threats},
	}
	for _, q := range quadrants {
		fmt.Fprintf(b, "### %s\n\n", q.title)
		if len(q.items) == 0 {
			b.WriteString("- N/A\n")
		}
		for _, item := range q.items {
			fmt.Fprintf(b, "- %s\n", item)
		}
		b.WriteString("\n")
	}
}

func writeRiskSection(b *strings.Builder, rec *RiskSimulationRecord) {
	b.WriteString("## Risk Simulation\n\n")
	fmt.Fprintf(b, "Identified Risk: %s\n\n", OrNA(rec.RelevantRisk))

	cases := []struct {
		title    string
		scenario Scenario
	}{
		{"Best Case Scenario", rec.BestCase},
		{"Likely Case Scenario", rec.LikelyCase},
		{"Worst Case Scenario", rec.WorstCase},
	}
	for _, c := range cases {
		fmt.Fprintf(b, "### %s\n\n", c.title)
		fmt.Fprintf(b, "- **Outcome:** %s\n", OrNA(c.scenario.Scenario))
		fmt.Fprintf(b, "- **Impact:** %s\n", OrNA(c.scenario.Impact))
		fmt.Fprintf(b, "- **Mitigation:** %s\n", OrNA(c.scenario.Mitigation))
		b.WriteString("\n")
	}
}
