// Package analyst implements the filing-to-structured-insight pipeline:
// prompt construction for the three analysis tasks, model invocation, and
// robust parsing of model output into validated records.
package analyst

import (
	"fmt"
)

// TaskKind selects which prompt template and output schema apply.
type TaskKind string

const (
	FinancialAnalysis TaskKind = "financial"
	SwotAnalysis      TaskKind = "swot"
	RiskSimulation    TaskKind = "risk_simulation"
)

// TaskParams carries the per-task inputs. CompanyName applies to every kind;
// MarketShock is required for RiskSimulation only.
type TaskParams struct {
	CompanyName string `json:"company_name"`
	MarketShock string `json:"market_shock,omitempty"`
}

// Key serializes the params into a stable cache-key fragment.
func (p TaskParams) Key() string {
	return fmt.Sprintf("company=%s|shock=%s", p.CompanyName, p.MarketShock)
}

// =============================================================================
// STRUCTURED RECORDS
// =============================================================================

// Leaf values are display strings in mixed units ("100B", "20%"); numeric
// parsing is deferred to the chart normalizer. A field absent from the model
// output stays "" and renders as N/A via OrNA.

// RevenueAnalysis is the two-year revenue view of a FinancialRecord.
type RevenueAnalysis struct {
	CurrentYearRevenue  string `json:"current_year_revenue"`
	PreviousYearRevenue string `json:"previous_year_revenue,omitempty"`
	GrowthRate          string `json:"growth_rate,omitempty"`
}

// Profitability is the margin view of a FinancialRecord.
type Profitability struct {
	NetIncome             string `json:"net_income"`
	NetMargin             string `json:"net_margin"`
	PreviousYearNetIncome string `json:"previous_year_net_income,omitempty"`
}

// FinancialRecord is the validated output of a FinancialAnalysis task.
type FinancialRecord struct {
	RevenueAnalysis RevenueAnalysis   `json:"revenue_analysis"`
	Profitability   Profitability     `json:"profitability"`
	CostStructure   map[string]string `json:"cost_structure,omitempty"`
}

// SwotRecord is the validated output of a SwotAnalysis task.
type SwotRecord struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Scenario is one branch of a risk simulation.
type Scenario struct {
	Scenario   string `json:"scenario"`
	Impact     string `json:"impact"`
	Mitigation string `json:"mitigation"`
}

// RiskSimulationRecord is the validated output of a RiskSimulation task.
type RiskSimulationRecord struct {
	RelevantRisk string   `json:"relevant_risk"`
	BestCase     Scenario `json:"best_case"`
	LikelyCase   Scenario `json:"likely_case"`
	WorstCase    Scenario `json:"worst_case"`
}

// Result is one cache entry's payload: a record of the kind it was stored
// under, or the recorded parse failure for that key.
type Result struct {
	Kind      TaskKind              `json:"kind"`
	Financial *FinancialRecord      `json:"financial,omitempty"`
	Swot      *SwotRecord           `json:"swot,omitempty"`
	Risk      *RiskSimulationRecord `json:"risk,omitempty"`
	Failure   *ParseError           `json:"failure,omitempty"`
}

// OK reports whether the result holds a record rather than a failure.
func (r Result) OK() bool {
	return r.Failure == nil
}

// OrNA maps the "" missing sentinel to a display placeholder so presentation
// logic has a total function from record field to display value.
func OrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
