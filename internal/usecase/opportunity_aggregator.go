package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"DugoutEdge/internal/domain/models"
	domrepo "DugoutEdge/internal/domain/repository"
	"DugoutEdge/internal/engine"
	"DugoutEdge/internal/services/sources"
	"DugoutEdge/pkg/logger"
	"DugoutEdge/pkg/queue"
)

// OpportunityAggregator orchestrates a scoring run: it assembles the day's
// inputs from the source provider and the live lineup snapshot, runs the
// engine, applies display filters, and fans results out to the optional
// history sink and alert publisher.
type OpportunityAggregator struct {
	provider sources.Provider
	engine   *engine.Engine
	history  domrepo.HistorySink
	alerts   domrepo.AlertPublisher
	metrics  domrepo.Metrics
	jobs     queue.QueueService
	log      *logger.Logger
	now      func() time.Time

	mu      sync.RWMutex
	lineups *models.LineupFeed
}

// NewOpportunityAggregator wires the aggregator. history, alerts and
// metrics may be nil; the aggregator degrades to scoring only.
func NewOpportunityAggregator(provider sources.Provider, eng *engine.Engine, history domrepo.HistorySink, alerts domrepo.AlertPublisher, metrics domrepo.Metrics, log *logger.Logger) *OpportunityAggregator {
	return &OpportunityAggregator{
		provider: provider,
		engine:   eng,
		history:  history,
		alerts:   alerts,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

// SetJobQueue routes history persistence through a queue with retries
// instead of a fire-and-forget goroutine.
func (a *OpportunityAggregator) SetJobQueue(q queue.QueueService) { a.jobs = q }

// ConsumeLineups keeps the latest lineup snapshot from a stream. Blocks
// until the stream closes or ctx is done; run it in a goroutine.
func (a *OpportunityAggregator) ConsumeLineups(ctx context.Context, stream domrepo.LineupStream) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-stream.Snapshots():
			if !ok {
				return
			}
			a.mu.Lock()
			a.lineups = snapshot
			a.mu.Unlock()
			if a.log != nil {
				a.log.Debug("lineup snapshot updated", logger.Int("games", len(snapshot.Games)))
			}
		}
	}
}

// Opportunities runs the engine for the requested date and returns the
// filtered board.
func (a *OpportunityAggregator) Opportunities(ctx context.Context, req *models.OpportunitiesRequest) (*models.Result, error) {
	result, err := a.run(ctx, req.Date, req.Refresh)
	if err != nil {
		return nil, err
	}
	return filterResult(result, req.Team, req.MinScore, req.Limit), nil
}

// Classify runs the engine and returns the grouped view.
func (a *OpportunityAggregator) Classify(ctx context.Context, req *models.ClassifyRequest) (*models.Classification, error) {
	result, err := a.run(ctx, req.Date, false)
	if err != nil {
		return nil, err
	}
	c := a.engine.Classify(result, req.Mode)
	return &c, nil
}

func (a *OpportunityAggregator) run(ctx context.Context, date string, refresh bool) (*models.Result, error) {
	if date == "" {
		date = a.now().Format("2006-01-02")
	}

	in, err := a.provider.Daily(ctx, date)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordError("source_load")
		}
		return nil, err
	}
	if in.Lineups == nil {
		a.mu.RLock()
		in.Lineups = a.lineups
		a.mu.RUnlock()
	}

	if refresh {
		a.engine.InvalidateCache()
	}

	start := a.now()
	result := a.engine.Analyze(ctx, in)
	if a.metrics != nil {
		a.metrics.RecordRun(string(result.Metadata.AnalysisMethod), len(result.Candidates), a.now().Sub(start).Seconds())
		if result.Metadata.Error != "" {
			a.metrics.RecordError("engine")
		}
	}

	a.fanOut(date, result)
	return result, nil
}

// fanOut persists the run and publishes top-tier alerts. Both are
// best-effort and never affect the returned result.
func (a *OpportunityAggregator) fanOut(date string, result *models.Result) {
	if result.Metadata.Error != "" || len(result.Candidates) == 0 {
		return
	}

	switch {
	case a.jobs != nil:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.jobs.PublishMessage(ctx, persistRunType, persistRunPayload{Date: date, Result: result}); err != nil {
			if a.log != nil {
				a.log.Error("history enqueue failed", logger.Error(err), logger.String("date", date))
			}
			if a.metrics != nil {
				a.metrics.RecordError("history")
			}
		}
	case a.history != nil:
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := a.history.SaveRun(ctx, date, result); err != nil {
				if a.log != nil {
					a.log.Error("history save failed", logger.Error(err), logger.String("date", date))
				}
				if a.metrics != nil {
					a.metrics.RecordError("history")
				}
			}
		}()
	}

	if a.alerts != nil {
		elite := make([]models.RankedCandidate, 0, result.Summary.Elite)
		for _, c := range result.Candidates {
			if c.Tier == models.TierElite {
				elite = append(elite, c)
			}
		}
		if len(elite) > 0 {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				for _, c := range elite {
					if err := a.alerts.PublishAlert(ctx, c); err != nil {
						if a.log != nil {
							a.log.Error("alert publish failed", logger.Error(err), logger.String("player", c.Player.Name))
						}
						if a.metrics != nil {
							a.metrics.RecordError("alerts")
						}
					}
				}
			}()
		}
	}
}

// filterResult applies display filters without rescoring. Ranks are kept
// from the full board so a filtered view still shows overall standing.
func filterResult(result *models.Result, team string, minScore float64, limit int) *models.Result {
	filtered := make([]models.RankedCandidate, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		if team != "" && !strings.EqualFold(c.Player.Team, team) {
			continue
		}
		if c.Scores.Composite < minScore {
			continue
		}
		filtered = append(filtered, c)
		if limit > 0 && len(filtered) == limit {
			break
		}
	}

	out := *result
	out.Candidates = filtered
	out.Summary = resummarize(filtered)
	return &out
}

func resummarize(ranked []models.RankedCandidate) models.Summary {
	s := models.Summary{Total: len(ranked)}
	for _, c := range ranked {
		switch c.Tier {
		case models.TierElite:
			s.Elite++
		case models.TierStrong:
			s.Strong++
		case models.TierMonitoring:
			s.Monitoring++
		}
	}
	return s
}
