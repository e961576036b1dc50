package analyst

import (
	"fmt"
	"strings"
)

// DocumentSource identifies the filing content a prompt is built against:
// either a link to the filing (URL) or inline filing text already truncated
// by the document fetcher. Text wins when both are set.
type DocumentSource struct {
	URL  string
	Text string
}

// sourceClause renders the context sentence anchoring the model to the filing.
func (s DocumentSource) sourceClause(companyName string) string {
	if s.Text != "" {
		if companyName != "" {
			return fmt.Sprintf("From the following 10-K report text for %s: %s", companyName, s.Text)
		}
		return fmt.Sprintf("From the following 10-K report text: %s", s.Text)
	}
	if companyName != "" {
		return fmt.Sprintf("From the 10-K report for %s at the URL: %s", companyName, s.URL)
	}
	return fmt.Sprintf("From the 10-K report at the URL: %s", s.URL)
}

// SystemPrompt returns the role framing for a task kind.
func SystemPrompt(kind TaskKind) string {
	switch kind {
	case FinancialAnalysis:
		return "You are an expert Financial Analyst. You extract precise figures from SEC 10-K filings and respond only with the requested JSON."
	case SwotAnalysis:
		return "You are a Strategy Consultant. You distill 10-K narrative sections into concise strategic assessments and respond only with the requested JSON."
	case RiskSimulation:
		return "You are a strategic advisor to a CFO. You reason about stated risk factors under hypothetical market shocks and respond only with the requested JSON."
	default:
		return ""
	}
}

// BuildPrompt constructs the instruction text for a task kind. Pure and total
// for well-formed inputs; the embedded example JSON is the schema contract
// the response parser depends on, and every template ends with the
// JSON-only instruction.
func BuildPrompt(kind TaskKind, source DocumentSource, params TaskParams) string {
	switch kind {
	case FinancialAnalysis:
		return buildFinancialPrompt(source)
	case SwotAnalysis:
		return buildSwotPrompt(source, params.CompanyName)
	case RiskSimulation:
		return buildRiskPrompt(source, params.CompanyName, params.MarketShock)
	default:
		return ""
	}
}

func buildFinancialPrompt(source DocumentSource) string {
	return fmt.Sprintf(`%s
Perform a financial analysis. Extract key data points in a structured JSON format.
1. Revenue Analysis: Identify total revenue for the last two fiscal years and calculate the year-over-year growth rate.
2. Profitability: Find the Gross Profit and Net Income for the last two years. Calculate the gross margin and net profit margin for the most recent year.
3. Cost Structure: Detail R&D, and SG&A as a percentage of total revenue for the most recent year.
Provide the output ONLY in valid JSON format. Example:
{
  "revenue_analysis": { "current_year_revenue": "100B", "previous_year_revenue": "90B", "growth_rate": "11.1%%" },
  "profitability": { "net_income": "20B", "net_margin": "20%%" },
  "cost_structure": { "R&D": "15%%", "SG&A": "25%%" }
}`, source.sourceClause(""))
}

func buildSwotPrompt(source DocumentSource, companyName string) string {
	return fmt.Sprintf(`%s
Analyze the 'Business Overview', 'Competition', and 'Risk Factors' sections to create a SWOT analysis.
For each category (Strengths, Weaknesses, Opportunities, Threats), provide 3 concise bullet points.

Provide the output ONLY in valid JSON format. Example:
{
  "strengths": ["Strong brand recognition", "Diverse product portfolio", "Large user base"],
  "weaknesses": ["High dependence on a single product", "Recent data privacy concerns", "Slower growth in emerging markets"],
  "opportunities": ["Expansion into AI and cloud services", "Strategic acquisitions of startups", "Growing demand for digital entertainment"],
  "threats": ["Intense competition from tech giants", "Evolving regulatory landscape", "Global economic downturn impacting consumer spending"]
}`, source.sourceClause(companyName))
}

func buildRiskPrompt(source DocumentSource, companyName, marketShock string) string {
	return fmt.Sprintf(`CONTEXT:
- Company's 10-K Report: %s
- Hypothetical Market Shock: "%s"

TASK:
Analyze the 'Risk Factors' section of the report. Identify the most relevant stated risk. Then, generate three potential impact scenarios (Best Case, Likely Case, Worst Case) from this market shock.
For each scenario, provide:
1. A brief description of the outcome.
2. An estimated quantitative impact on revenue or margins.
3. One strategic action to mitigate the damage or capitalize on the situation.

Provide the output ONLY in valid JSON format. Example:
{
  "relevant_risk": "Dependence on international supply chains.",
  "best_case": {
    "scenario": "Minor supply chain disruptions are quickly rerouted with minimal delay.",
    "impact": "-1%% impact on gross margin for one quarter.",
    "mitigation": "Activate secondary supplier agreements and increase short-term inventory."
  },
  "likely_case": {
    "scenario": "Significant delays and increased logistics costs for two quarters.",
    "impact": "-5%% revenue and -3%% gross margin for the next six months.",
    "mitigation": "Absorb costs and communicate transparently with customers about delays. Expedite diversification of supplier base."
  },
  "worst_case": {
    "scenario": "A key supplier halts production, causing major product shortages.",
    "impact": "-15%% revenue for the fiscal year.",
    "mitigation": "Immediately seek alternative sourcing and consider a temporary price increase on existing inventory to manage demand."
  }
}`, source.sourceClause(companyName), strings.TrimSpace(marketShock))
}
