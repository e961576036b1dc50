package analyst

import (
	"strings"
	"testing"
)

func TestBuildFinancialPrompt(t *testing.T) {
	prompt := BuildPrompt(FinancialAnalysis,
		DocumentSource{URL: "https://www.sec.gov/filing.htm"},
		TaskParams{CompanyName: "MSFT"})

	for _, want := range []string{
		"https://www.sec.gov/filing.htm",
		"Revenue Analysis",
		"Profitability",
		"Cost Structure",
		"Provide the output ONLY in valid JSON format",
		`"revenue_analysis"`,
		`"profitability"`,
		`"cost_structure"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("financial prompt missing %q", want)
		}
	}

	// Sprintf templating must not leak verb markup into the example JSON.
	if strings.Contains(prompt, "%%") || strings.Contains(prompt, "%!") {
		t.Errorf("prompt contains unexpanded format verbs:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"11.1%"`) {
		t.Error("example growth rate should render with a single percent sign")
	}
}

func TestBuildSwotPrompt(t *testing.T) {
	prompt := BuildPrompt(SwotAnalysis,
		DocumentSource{URL: "https://www.sec.gov/filing.htm"},
		TaskParams{CompanyName: "MSFT"})

	for _, want := range []string{
		"MSFT",
		"SWOT",
		`"strengths"`, `"weaknesses"`, `"opportunities"`, `"threats"`,
		"Provide the output ONLY in valid JSON format",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("swot prompt missing %q", want)
		}
	}
}

func TestBuildRiskPrompt(t *testing.T) {
	prompt := BuildPrompt(RiskSimulation,
		DocumentSource{URL: "https://www.sec.gov/filing.htm"},
		TaskParams{CompanyName: "MSFT", MarketShock: "oil price doubles"})

	for _, want := range []string{
		`"oil price doubles"`,
		"Risk Factors",
		"Best Case, Likely Case, Worst Case",
		`"relevant_risk"`, `"best_case"`, `"likely_case"`, `"worst_case"`,
		"Provide the output ONLY in valid JSON format",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("risk prompt missing %q", want)
		}
	}
}

func TestPromptInlineTextWinsOverURL(t *testing.T) {
	source := DocumentSource{
		URL:  "https://www.sec.gov/filing.htm",
		Text: "Item 1A. Risk Factors. The company depends on semiconductors.",
	}

	prompt := BuildPrompt(SwotAnalysis, source, TaskParams{CompanyName: "NVDA"})
	if !strings.Contains(prompt, "Risk Factors. The company depends") {
		t.Error("prompt should embed the inline filing text")
	}
	if strings.Contains(prompt, "https://www.sec.gov/filing.htm") {
		t.Error("prompt should not reference the URL when inline text is present")
	}
}

func TestPromptDeterministic(t *testing.T) {
	source := DocumentSource{URL: "https://www.sec.gov/filing.htm"}
	params := TaskParams{CompanyName: "MSFT", MarketShock: "recession"}

	for _, kind := range []TaskKind{FinancialAnalysis, SwotAnalysis, RiskSimulation} {
		a := BuildPrompt(kind, source, params)
		b := BuildPrompt(kind, source, params)
		if a != b {
			t.Errorf("BuildPrompt(%s) is not deterministic", kind)
		}
		if a == "" {
			t.Errorf("BuildPrompt(%s) returned empty prompt", kind)
		}
	}
}

func TestSystemPromptPerKind(t *testing.T) {
	seen := map[string]bool{}
	for _, kind := range []TaskKind{FinancialAnalysis, SwotAnalysis, RiskSimulation} {
		sp := SystemPrompt(kind)
		if sp == "" {
			t.Errorf("SystemPrompt(%s) is empty", kind)
		}
		if seen[sp] {
			t.Errorf("SystemPrompt(%s) duplicates another kind's framing", kind)
		}
		seen[sp] = true
	}
}
