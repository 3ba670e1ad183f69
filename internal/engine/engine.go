package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"DugoutEdge/internal/domain/models"
	"DugoutEdge/internal/domain/repository"
	"DugoutEdge/pkg/config"
	"DugoutEdge/pkg/logger"
)

// Engine turns one day's source payloads into a ranked candidate list. It
// is safe for concurrent use; runs over identical inputs are served from a
// TTL cache.
type Engine struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics repository.Metrics
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	result *models.Result
	at     time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger. The engine works without one.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClock overrides the engine's clock, used by cache-expiry tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMetrics attaches a metrics recorder for cache hit/miss counts.
func WithMetrics(m repository.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates an Engine. cfg must have engine defaults applied.
func New(cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:   cfg,
		now:   time.Now,
		cache: make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs the full pipeline: source cascade, identity resolution,
// criteria, scoring, ranking. It never returns nil and never panics; a
// scoring failure surfaces as an empty result with Metadata.Error set.
func (e *Engine) Analyze(ctx context.Context, in Inputs) *models.Result {
	key := cacheKey(in)

	e.mu.Lock()
	if entry, ok := e.cache[key]; ok && e.now().Sub(entry.at) < e.cfg.Engine.CacheTTL {
		e.mu.Unlock()
		e.recordCacheHit(true)
		e.debug("serving cached result", logger.String("key", key))
		return entry.result
	}
	e.mu.Unlock()
	e.recordCacheHit(false)

	result := e.compute(ctx, in)

	e.mu.Lock()
	e.cache[key] = cacheEntry{result: result, at: e.now()}
	e.evictStaleLocked()
	e.mu.Unlock()

	return result
}

// InvalidateCache drops all cached results.
func (e *Engine) InvalidateCache() {
	e.mu.Lock()
	e.cache = make(map[string]cacheEntry)
	e.mu.Unlock()
}

func (e *Engine) compute(ctx context.Context, in Inputs) (result *models.Result) {
	defer func() {
		if r := recover(); r != nil {
			if e.log != nil {
				e.log.Error("scoring run panicked", logger.Any("panic", r))
			}
			result = emptyResult(e.now(), fmt.Sprintf("%v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return emptyResult(e.now(), err.Error())
	}

	start := e.now()
	src := selectSource(in)
	if src.method == models.MethodEmpty {
		e.debug("no usable source payloads")
		return emptyResult(e.now(), "")
	}

	candidates := e.buildCandidates(src, in)
	ranked := e.rankCandidates(candidates)

	result = &models.Result{
		Candidates: ranked,
		Summary:    summarize(ranked),
		Metadata: models.Metadata{
			TotalAnalyzed:        len(candidates),
			QualifyingCandidates: len(ranked),
			AverageScore:         averageScore(ranked),
			Timestamp:            e.now(),
			AnalysisMethod:       src.method,
		},
	}

	if e.log != nil {
		e.log.Info("scoring run complete",
			logger.String("method", string(src.method)),
			logger.Int("analyzed", len(candidates)),
			logger.Int("qualifying", len(ranked)),
			logger.Float64("avg_score", result.Metadata.AverageScore),
			logger.Duration("took_ms", e.now().Sub(start)))
	}
	return result
}

func emptyResult(now time.Time, errMsg string) *models.Result {
	return &models.Result{
		Candidates: []models.RankedCandidate{},
		Summary:    models.Summary{},
		Metadata: models.Metadata{
			Timestamp:      now,
			AnalysisMethod: models.MethodEmpty,
			Error:          errMsg,
		},
	}
}

// cacheKey derives a key from truncated serializations of the inputs.
// Truncation keeps key size bounded; the payload heads carry the date and
// game set, which is what actually distinguishes runs.
func cacheKey(in Inputs) string {
	analysis := "no-analysis"
	if in.Analysis != nil {
		if b, err := json.Marshal(in.Analysis); err == nil {
			analysis = truncate(string(b), 100)
		}
	}
	lineups := "no-lineups"
	if in.Lineups != nil {
		if b, err := json.Marshal(in.Lineups); err == nil {
			lineups = truncate(string(b), 50)
		}
	}
	return fmt.Sprintf("first-inning-%s-%d-%s", analysis, len(in.Opportunities), lineups)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// evictStaleLocked drops expired entries. Caller holds e.mu.
func (e *Engine) evictStaleLocked() {
	cutoff := e.now().Add(-e.cfg.Engine.CacheTTL)
	for k, entry := range e.cache {
		if entry.at.Before(cutoff) {
			delete(e.cache, k)
		}
	}
}

func (e *Engine) recordCacheHit(hit bool) {
	if e.metrics != nil {
		e.metrics.RecordCacheHit(hit)
	}
}

func (e *Engine) debug(msg string, fields ...logger.Field) {
	if e.log != nil {
		e.log.Debug(msg, fields...)
	}
}
