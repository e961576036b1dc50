package analyst

import (
	"encoding/json"
	"fmt"
	"strings"

	"strategic_analyst/pkg/core/utils"
)

// StripFences removes an optional leading "```json" or "```" marker and an
// optional trailing "```" marker. Model output is not guaranteed to be
// fenced; absence of fences is not an error, and fences must be transparent
// to parsing.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)

	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// Parse turns raw model output into a validated record for the task kind.
// It fails only with the two documented kinds: MalformedOutput when the
// payload is not JSON even after fence-stripping and repair, SchemaMismatch
// when required top-level keys for the kind are missing or mistyped.
// Optional fields may be absent (they keep the "" sentinel). The returned
// Result records the failure too, so callers can cache it as-is, and the
// failure always retains the raw text verbatim.
func Parse(raw string, kind TaskKind) (Result, error) {
	result := Result{Kind: kind}

	payload := StripFences(raw)

	// Strict parse first, then the repair ladder (json-repair, then hjson).
	// The object target also rejects top-level arrays and bare values.
	var object map[string]json.RawMessage
	workingJSON, err := utils.SmartParse(payload, &object)
	if err != nil {
		pe := &ParseError{
			Kind:   MalformedOutput,
			Raw:    raw,
			Detail: "model output is not a JSON object after fence-stripping",
		}
		result.Failure = pe
		return result, pe
	}

	if missing := missingKeys(object, requiredKeys(kind)); len(missing) > 0 {
		pe := &ParseError{
			Kind:   SchemaMismatch,
			Raw:    raw,
			Detail: fmt.Sprintf("missing required keys: %s", strings.Join(missing, ", ")),
		}
		result.Failure = pe
		return result, pe
	}

	if err := coerce(&result, workingJSON, kind); err != nil {
		pe := &ParseError{
			Kind:   SchemaMismatch,
			Raw:    raw,
			Detail: err.Error(),
		}
		result.Failure = pe
		return result, pe
	}

	return result, nil
}

// requiredKeys returns the top-level keys a task kind's output must carry.
func requiredKeys(kind TaskKind) []string {
	switch kind {
	case FinancialAnalysis:
		return []string{"revenue_analysis", "profitability"}
	case SwotAnalysis:
		return []string{"strengths", "weaknesses", "opportunities", "threats"}
	case RiskSimulation:
		return []string{"relevant_risk", "best_case", "likely_case", "worst_case"}
	default:
		return nil
	}
}

func missingKeys(object map[string]json.RawMessage, required []string) []string {
	var missing []string
	for _, key := range required {
		if _, ok := object[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// coerce decodes the working JSON into the typed record for the kind.
// A type mismatch on a required key (e.g. a string where an object is
// expected) surfaces as SchemaMismatch via the returned error.
func coerce(result *Result, workingJSON string, kind TaskKind) error {
	switch kind {
	case FinancialAnalysis:
		var rec FinancialRecord
		if err := json.Unmarshal([]byte(workingJSON), &rec); err != nil {
			return fmt.Errorf("financial record shape mismatch: %v", err)
		}
		result.Financial = &rec

	case SwotAnalysis:
		var rec SwotRecord
		if err := json.Unmarshal([]byte(workingJSON), &rec); err != nil {
			return fmt.Errorf("swot record shape mismatch: %v", err)
		}
		// Quadrants are ordered sequences, possibly empty, never nil.
		if rec.Strengths == nil {
			rec.Strengths = []string{}
		}
		if rec.Weaknesses == nil {
			rec.Weaknesses = []string{}
		}
		if rec.Opportunities == nil {
			rec.Opportunities = []string{}
		}
		if rec.Threats == nil {
			rec.Threats = []string{}
		}
		result.Swot = &rec

	case RiskSimulation:
		var rec RiskSimulationRecord
		if err := json.Unmarshal([]byte(workingJSON), &rec); err != nil {
			return fmt.Errorf("risk simulation record shape mismatch: %v", err)
		}
		result.Risk = &rec

	default:
		return fmt.Errorf("unknown task kind %q", kind)
	}
	return nil
}
