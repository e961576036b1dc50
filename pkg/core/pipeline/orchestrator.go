// Package pipeline wires the analysis components into the end-to-end flow:
// locate filing -> build prompt -> call model -> parse output -> cache.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"

	"strategic_analyst/pkg/core/analyst"
	"strategic_analyst/pkg/core/filing"
	"strategic_analyst/pkg/core/llm"
	"strategic_analyst/pkg/core/session"
)

// FilingLocator resolves a ticker to its most recent annual filing.
// Implemented by filing.Locator; faked in tests.
type FilingLocator interface {
	Locate(ctx context.Context, ticker string) (filing.Reference, error)
}

// DocumentTextFetcher retrieves a filing's raw text for inline prompting.
type DocumentTextFetcher interface {
	FetchDocumentText(ctx context.Context, ref filing.Reference, maxLen int) (string, error)
}

// ProviderSource hands out the model provider serving a task kind.
// Implemented by agent.Manager, which applies per-task model overrides.
type ProviderSource interface {
	ProviderFor(taskKind string) llm.Provider
}

// Orchestrator runs the pipeline for one session at a time: resolve filing,
// then per-task extract/parse with session-scoped caching.
type Orchestrator struct {
	locator   FilingLocator
	providers ProviderSource
	fetcher   DocumentTextFetcher
	retries   int

	mu         sync.Mutex
	extractors map[analyst.TaskKind]*analyst.InsightExtractor
}

// NewOrchestrator creates the pipeline front door.
func NewOrchestrator(locator FilingLocator, providers ProviderSource) *Orchestrator {
	return &Orchestrator{
		locator:    locator,
		providers:  providers,
		extractors: make(map[analyst.TaskKind]*analyst.InsightExtractor),
	}
}

// SetRetries enables bounded retry on upstream model failures.
func (o *Orchestrator) SetRetries(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.retries = n
	for _, e := range o.extractors {
		e.SetRetries(n)
	}
}

// UseInlineDocuments makes prompts carry the filing's extracted text instead
// of its URL whenever a raw document link is available. Falls back to the
// URL when fetching fails.
func (o *Orchestrator) UseInlineDocuments(fetcher DocumentTextFetcher) {
	o.fetcher = fetcher
}

// extractorFor returns the cached extractor for a kind, creating it against
// the kind's configured provider on first use.
func (o *Orchestrator) extractorFor(kind analyst.TaskKind) *analyst.InsightExtractor {
	o.mu.Lock()
	defer o.mu.Unlock()
	if e, ok := o.extractors[kind]; ok {
		return e
	}
	e := analyst.NewInsightExtractor(o.providers.ProviderFor(string(kind)))
	e.SetRetries(o.retries)
	o.extractors[kind] = e
	return e
}

// RunFull starts a fresh analysis for the ticker: locates the filing, resets
// every cached entry for the ticker and pins the resolved reference on the
// session. Subsequent task calls reuse that reference.
func (o *Orchestrator) RunFull(ctx context.Context, sess *session.AnalysisSession, ticker string) (filing.Reference, error) {
	ticker = filing.NormalizeTicker(ticker)

	ref, err := o.locator.Locate(ctx, ticker)
	if err != nil {
		return filing.Reference{}, err
	}

	sess.ResetFor(ticker)
	sess.SetFiling(ticker, ref)
	log.Printf("[Pipeline] Filing resolved for %s: %s", ticker, ref.DisplayURL)
	return ref, nil
}

// Financials returns the session's financial snapshot, computing it on the
// first call and serving the cache afterwards.
func (o *Orchestrator) Financials(ctx context.Context, sess *session.AnalysisSession) (analyst.Result, error) {
	ticker, _, ok := sess.Filing()
	if !ok {
		return analyst.Result{}, fmt.Errorf("no filing resolved for session; run a full analysis first")
	}
	return o.analyze(ctx, sess, analyst.FinancialAnalysis, analyst.TaskParams{CompanyName: ticker})
}

// Swot returns the session's SWOT analysis, computing it on the first call.
func (o *Orchestrator) Swot(ctx context.Context, sess *session.AnalysisSession) (analyst.Result, error) {
	ticker, _, ok := sess.Filing()
	if !ok {
		return analyst.Result{}, fmt.Errorf("no filing resolved for session; run a full analysis first")
	}
	return o.analyze(ctx, sess, analyst.SwotAnalysis, analyst.TaskParams{CompanyName: ticker})
}

// Simulate runs the risk-shock simulation for the given hypothetical event.
// Distinct shock descriptions are distinct cache keys.
func (o *Orchestrator) Simulate(ctx context.Context, sess *session.AnalysisSession, marketShock string) (analyst.Result, error) {
	ticker, _, ok := sess.Filing()
	if !ok {
		return analyst.Result{}, fmt.Errorf("no filing resolved for session; run a full analysis first")
	}
	if marketShock == "" {
		return analyst.Result{}, fmt.Errorf("market shock description must not be empty")
	}
	return o.analyze(ctx, sess, analyst.RiskSimulation, analyst.TaskParams{CompanyName: ticker, MarketShock: marketShock})
}

// analyze is the shared task path: cache check, prompt build, model call,
// parse, cache store. Parse failures are cached because they reproduce
// deterministically from the same prompt; upstream failures are not, so the
// next request retries. A failure in one task never disturbs the cached
// results of another.
func (o *Orchestrator) analyze(ctx context.Context, sess *session.AnalysisSession, kind analyst.TaskKind, params analyst.TaskParams) (analyst.Result, error) {
	ticker, ref, _ := sess.Filing()

	return sess.GetOrCompute(ticker, kind, params, func() (analyst.Result, error) {
		prompt := analyst.BuildPrompt(kind, o.source(ctx, ref), params)

		raw, err := o.extractorFor(kind).Extract(ctx, kind, prompt)
		if err != nil {
			return analyst.Result{}, err
		}

		result, perr := analyst.Parse(raw, kind)
		if perr != nil {
			log.Printf("[Pipeline] %s parse failed for %s: %v", kind, ticker, perr)
		}
		return result, nil
	})
}

// source picks the prompt's document source for the filing reference.
func (o *Orchestrator) source(ctx context.Context, ref filing.Reference) analyst.DocumentSource {
	if o.fetcher != nil && ref.DocumentURL != "" {
		text, err := o.fetcher.FetchDocumentText(ctx, ref, filing.DefaultDocumentLimit)
		if err == nil && text != "" {
			return analyst.DocumentSource{Text: text}
		}
		if err != nil {
			log.Printf("[Pipeline] Document fetch failed, falling back to URL: %v", err)
		}
	}
	return analyst.DocumentSource{URL: ref.DisplayURL}
}
