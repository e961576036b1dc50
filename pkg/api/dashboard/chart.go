package dashboard

import (
	"net/http"
	"sort"

	"strategic_analyst/pkg/core/analyst"
	"strategic_analyst/pkg/core/chart"
)

// performanceSeries is the grouped-bar payload for the two-year comparison.
// Values are normalized to plain numbers; the client applies axis formatting.
type performanceSeries struct {
	Metrics      []string  `json:"metrics"`
	CurrentYear  []float64 `json:"current_year"`
	PreviousYear []float64 `json:"previous_year,omitempty"`
	HasPrevious  bool      `json:"has_previous"`
}

type costSlice struct {
	Component string  `json:"component"`
	Value     float64 `json:"value"`
}

type chartResponse struct {
	Performance   performanceSeries `json:"performance"`
	CostStructure []costSlice       `json:"cost_structure,omitempty"`
}

// HandleChart handles GET /api/analysis/chart?session=ID. It reuses the
// session's financial record (computing it on a cache miss) and converts the
// display strings into chartable numbers.
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	sess := h.sessionFrom(w, r.URL.Query().Get("session"))
	if sess == nil {
		return
	}

	result, err := h.orch.Financials(r.Context(), sess)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	if result.Failure != nil {
		writeResult(w, result)
		return
	}

	rec := result.Financial
	resp := chartResponse{
		Performance: performanceSeries{
			Metrics: []string{"Revenue", "Net Income"},
			CurrentYear: []float64{
				chart.ParseFinancialValue(rec.RevenueAnalysis.CurrentYearRevenue),
				chart.ParseFinancialValue(rec.Profitability.NetIncome),
			},
		},
	}

	// Previous-year bars only render when the filing disclosed both figures.
	if rec.RevenueAnalysis.PreviousYearRevenue != "" && rec.Profitability.PreviousYearNetIncome != "" {
		resp.Performance.HasPrevious = true
		resp.Performance.PreviousYear = []float64{
			chart.ParseFinancialValue(rec.RevenueAnalysis.PreviousYearRevenue),
			chart.ParseFinancialValue(rec.Profitability.PreviousYearNetIncome),
		}
	}

	resp.CostStructure = costSlices(rec)
	writeJSON(w, http.StatusOK, resp)
}

// costSlices flattens the cost map into a stable, sorted series.
func costSlices(rec *analyst.FinancialRecord) []costSlice {
	if len(rec.CostStructure) == 0 {
		return nil
	}
	components := make([]string, 0, len(rec.CostStructure))
	for name := range rec.CostStructure {
		components = append(components, name)
	}
	sort.Strings(components)

	slices := make([]costSlice, 0, len(components))
	for _, name := range components {
		slices = append(slices, costSlice{
			Component: name,
			Value:     chart.ParseFinancialValue(rec.CostStructure[name]),
		})
	}
	return slices
}
