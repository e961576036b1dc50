// Package dashboard provides the HTTP handlers the presentation layer calls.
// One endpoint per dashboard tab; results come from the session cache so a
// tab revisit never re-invokes the model.
package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"strategic_analyst/pkg/core/analyst"
	"strategic_analyst/pkg/core/filing"
	"strategic_analyst/pkg/core/pipeline"
	"strategic_analyst/pkg/core/session"
)

// Handler serves the dashboard API.
type Handler struct {
	orch     *pipeline.Orchestrator
	sessions *session.Manager
}

// NewHandler creates the dashboard handler.
func NewHandler(orch *pipeline.Orchestrator, sessions *session.Manager) *Handler {
	return &Handler{orch: orch, sessions: sessions}
}

// Register wires the endpoints onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/analysis/run", h.HandleRun)
	mux.HandleFunc("/api/analysis/financials", h.HandleFinancials)
	mux.HandleFunc("/api/analysis/swot", h.HandleSwot)
	mux.HandleFunc("/api/analysis/simulate", h.HandleSimulate)
	mux.HandleFunc("/api/analysis/chart", h.HandleChart)
	mux.HandleFunc("/api/analysis/report", h.HandleReport)
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeTaskError maps the error taxonomy onto HTTP statuses. Parse failures
// carry the raw model text so a human can diagnose a prompt regression.
func writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, filing.ErrNoFiling):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: "not_found"})
	case errors.Is(err, filing.ErrUpstream):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: "upstream_unavailable"})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
}

// writeResult renders a task result: 200 for a record, 422 for a recorded
// parse failure (with the offending raw text).
func writeResult(w http.ResponseWriter, result analyst.Result) {
	if result.Failure != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: result.Failure.Detail,
			Kind:  string(result.Failure.Kind),
			Raw:   result.Failure.Raw,
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) sessionFrom(w http.ResponseWriter, id string) *session.AnalysisSession {
	sess, ok := h.sessions.Lookup(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown session %q", id)})
		return nil
	}
	return sess
}

// =============================================================================
// ENDPOINTS
// =============================================================================

type runRequest struct {
	Ticker string `json:"ticker"`
}

type runResponse struct {
	SessionID string           `json:"session_id"`
	Ticker    string           `json:"ticker"`
	Filing    filing.Reference `json:"filing"`
}

// HandleRun handles POST /api/analysis/run: resolves the ticker's latest
// 10-K, resets cached results for the ticker and returns a session handle.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	ticker := filing.NormalizeTicker(req.Ticker)
	if ticker == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "ticker is required"})
		return
	}

	// Re-running for the same session's ticker resets its cache too; the
	// filing reference is re-resolved fresh for the new run.
	sess := h.sessions.Create()
	ref, err := h.orch.RunFull(r.Context(), sess, ticker)
	if err != nil {
		h.sessions.Drop(sess.ID)
		writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, runResponse{SessionID: sess.ID, Ticker: ticker, Filing: ref})
}

// HandleFinancials handles GET /api/analysis/financials?session=ID.
func (h *Handler) HandleFinancials(w http.ResponseWriter, r *http.Request) {
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
	writeResult(w, result)
}

// HandleSwot handles GET /api/analysis/swot?session=ID.
func (h *Handler) HandleSwot(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	sess := h.sessionFrom(w, r.URL.Query().Get("session"))
	if sess == nil {
		return
	}

	result, err := h.orch.Swot(r.Context(), sess)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeResult(w, result)
}

type simulateRequest struct {
	Session     string `json:"session"`
	MarketShock string `json:"market_shock"`
}

// HandleSimulate handles POST /api/analysis/simulate.
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	sess := h.sessionFrom(w, req.Session)
	if sess == nil {
		return
	}

	result, err := h.orch.Simulate(r.Context(), sess, req.MarketShock)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeResult(w, result)
}

// HandleReport handles GET /api/analysis/report?session=ID, returning a
// markdown rendering of whatever records the session has so far.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	sess := h.sessionFrom(w, r.URL.Query().Get("session"))
	if sess == nil {
		return
	}

	ticker, ref, ok := sess.Filing()
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no filing resolved for session"})
		return
	}

	var financial *analyst.FinancialRecord
	var swot *analyst.SwotRecord
	if res, ok := sess.Get(ticker, analyst.FinancialAnalysis, analyst.TaskParams{CompanyName: ticker}); ok && res.OK() {
		financial = res.Financial
	}
	if res, ok := sess.Get(ticker, analyst.SwotAnalysis, analyst.TaskParams{CompanyName: ticker}); ok && res.OK() {
		swot = res.Swot
	}

	report := analyst.RenderReport(ticker, ref.DisplayURL, financial, swot, nil)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, report)
}
