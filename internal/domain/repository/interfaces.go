package repository

import (
	"context"

	"DugoutEdge/internal/domain/models"
)

// LineupStream delivers starting-lineup snapshots from a live feed.
type LineupStream interface {
	Connect(ctx context.Context) error
	Subscribe(teams []string) error
	Snapshots() <-chan *models.LineupFeed
	Close() error
}

// HistorySink persists ranked candidates for hindsight review.
type HistorySink interface {
	SaveRun(ctx context.Context, date string, result *models.Result) error
	Close() error
}

// AlertPublisher pushes top-tier candidates to downstream consumers.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, candidate models.RankedCandidate) error
	Close() error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordRun(method string, candidates int, seconds float64)
	RecordCacheHit(hit bool)
	RecordError(kind string)
}
