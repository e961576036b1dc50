package main

import (
	"fmt"
	"net/http"
	"os"

	"strategic_analyst/pkg/api/dashboard"
	"strategic_analyst/pkg/core/agent"
	"strategic_analyst/pkg/core/filing"
	"strategic_analyst/pkg/core/pipeline"
	"strategic_analyst/pkg/core/session"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	if os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Println("[FATAL] GEMINI_API_KEY is not set")
		os.Exit(1)
	}
	secKey := os.Getenv("SEC_API_KEY")
	if secKey == "" {
		fmt.Println("[FATAL] SEC_API_KEY is not set")
		os.Exit(1)
	}

	// Initialize manager from config
	agentCfg, err := agent.LoadConfig("config/models.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Failed to load model config: %v\n", err)
		fmt.Println("  Falling back to default models")
	}
	agentMgr := agent.NewManager(agentCfg)
	fmt.Printf("[CONFIG] Active provider: %s\n", agentMgr.ActiveProvider())

	locator := filing.NewLocator(filing.NewQueryClient(secKey))

	orch := pipeline.NewOrchestrator(locator, agentMgr)
	orch.SetRetries(2)
	orch.UseInlineDocuments(filing.NewDocumentFetcher())

	sessions := session.NewManager()

	handler := dashboard.NewHandler(orch, sessions)
	mux := http.NewServeMux()
	handler.Register(mux)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/analysis/run")
	fmt.Println("  - GET  /api/analysis/financials")
	fmt.Println("  - GET  /api/analysis/swot")
	fmt.Println("  - POST /api/analysis/simulate")
	fmt.Println("  - GET  /api/analysis/chart")
	fmt.Println("  - GET  /api/analysis/report")

	if err := http.ListenAndServe(":8080", mux); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
