package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"strategic_analyst/pkg/core/agent"
	"strategic_analyst/pkg/core/analyst"
	"strategic_analyst/pkg/core/filing"
	"strategic_analyst/pkg/core/pipeline"
	"strategic_analyst/pkg/core/session"

	"github.com/joho/godotenv"
)

func main() {
	ticker := flag.String("ticker", "", "Stock ticker to analyze (e.g. MSFT)")
	shock := flag.String("shock", "", "Optional market shock scenario for the risk simulation")
	retries := flag.Int("retries", 2, "Retry attempts for transient model failures")
	flag.Parse()

	if *ticker == "" {
		fmt.Println("Usage: analyze -ticker MSFT [-shock \"supply chain disruption\"]")
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}
	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Fatal("Error: GEMINI_API_KEY is not set.")
	}
	secKey := os.Getenv("SEC_API_KEY")
	if secKey == "" {
		log.Fatal("Error: SEC_API_KEY is not set.")
	}

	agentCfg, err := agent.LoadConfig("config/models.yaml")
	if err != nil {
		log.Printf("Warning: model config not loaded (%v), using defaults", err)
	}
	agentMgr := agent.NewManager(agentCfg)

	orch := pipeline.NewOrchestrator(filing.NewLocator(filing.NewQueryClient(secKey)), agentMgr)
	orch.SetRetries(*retries)
	orch.UseInlineDocuments(filing.NewDocumentFetcher())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	sess := session.New()
	ref, err := orch.RunFull(ctx, sess, *ticker)
	if err != nil {
		log.Fatalf("Error: could not resolve latest 10-K for %s: %v", *ticker, err)
	}
	fmt.Printf("Analyzing %s (10-K: %s)\n", *ticker, ref.DisplayURL)

	financial := mustRecord(orch.Financials(ctx, sess))
	swot := mustRecord(orch.Swot(ctx, sess))

	var risk *analyst.RiskSimulationRecord
	if *shock != "" {
		res := mustRecord(orch.Simulate(ctx, sess, *shock))
		risk = res.Risk
	}

	report := analyst.RenderReport(*ticker, ref.DisplayURL, financial.Financial, swot.Swot, risk)
	fmt.Println(report)
}

// mustRecord exits on transport errors and on cached parse failures; a CLI
// run has no recovery path for either.
func mustRecord(result analyst.Result, err error) analyst.Result {
	if err != nil {
		log.Fatalf("Error: analysis failed: %v", err)
	}
	if result.Failure != nil {
		log.Fatalf("Error: model output rejected (%s): %s\nRaw output:\n%s",
			result.Failure.Kind, result.Failure.Detail, result.Failure.Raw)
	}
	return result
}
