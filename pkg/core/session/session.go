// Package session holds per-session analysis results so repeated UI
// interactions do not re-trigger expensive external calls.
package session

import (
	"sync"

	"github.com/google/uuid"

	"strategic_analyst/pkg/core/analyst"
	"strategic_analyst/pkg/core/filing"
)

// entryKey identifies one cached analysis: (ticker, task kind, serialized
// task parameters).
type entryKey struct {
	Ticker string
	Kind   analyst.TaskKind
	Params string
}

// AnalysisSession is an in-memory cache of structured records (or recorded
// parse failures) for one user's interaction with one primary ticker.
// Reads are idempotent; writes for the same key are serialized so at most
// one computation per key is in flight at a time.
type AnalysisSession struct {
	ID string

	mu        sync.RWMutex
	ticker    string
	ref       filing.Reference
	hasFiling bool
	entries   map[entryKey]analyst.Result

	inflightMu sync.Mutex
	inflight   map[entryKey]*sync.Mutex
}

// New creates an empty session with a fresh ID.
func New() *AnalysisSession {
	return &AnalysisSession{
		ID:       uuid.NewString(),
		entries:  make(map[entryKey]analyst.Result),
		inflight: make(map[entryKey]*sync.Mutex),
	}
}

// SetFiling records the resolved filing reference for the session's primary
// ticker. The reference is immutable for the session's lifetime: all task
// kinds reuse it until the next full analysis run replaces it.
func (s *AnalysisSession) SetFiling(ticker string, ref filing.Reference) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticker = ticker
	s.ref = ref
	s.hasFiling = true
}

// Filing returns the session's resolved filing reference, if any.
func (s *AnalysisSession) Filing() (string, filing.Reference, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ticker, s.ref, s.hasFiling
}

// Get returns the cached result for the key, if present. Safe to call
// repeatedly; has no side effects.
func (s *AnalysisSession) Get(ticker string, kind analyst.TaskKind, params analyst.TaskParams) (analyst.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.entries[entryKey{Ticker: ticker, Kind: kind, Params: params.Key()}]
	return r, ok
}

// Put stores a result (successful or failed extraction) under the key.
func (s *AnalysisSession) Put(ticker string, kind analyst.TaskKind, params analyst.TaskParams, result analyst.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entryKey{Ticker: ticker, Kind: kind, Params: params.Key()}] = result
}

// ResetFor clears every entry associated with the ticker. Called before a
// fresh full analysis run so stale records never leak into the new run.
func (s *AnalysisSession) ResetFor(ticker string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		if k.Ticker == ticker {
			delete(s.entries, k)
		}
	}
}

// GetOrCompute returns the cached result for the key or runs compute to
// produce and cache one. Concurrent callers for the same key block on a
// per-key lock, so compute runs at most once per key at a time. When compute
// errors (an upstream failure, not a parse failure) nothing is cached, so
// the next call retries.
func (s *AnalysisSession) GetOrCompute(ticker string, kind analyst.TaskKind, params analyst.TaskParams, compute func() (analyst.Result, error)) (analyst.Result, error) {
	if r, ok := s.Get(ticker, kind, params); ok {
		return r, nil
	}

	k := entryKey{Ticker: ticker, Kind: kind, Params: params.Key()}

	s.inflightMu.Lock()
	lock, ok := s.inflight[k]
	if !ok {
		lock = &sync.Mutex{}
		s.inflight[k] = lock
	}
	s.inflightMu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	// A concurrent caller may have filled the entry while we waited.
	if r, ok := s.Get(ticker, kind, params); ok {
		return r, nil
	}

	result, err := compute()
	if err != nil {
		return analyst.Result{Kind: kind}, err
	}
	s.Put(ticker, kind, params, result)
	return result, nil
}
