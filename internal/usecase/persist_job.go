package usecase

import (
	"context"
	"fmt"

	"DugoutEdge/internal/domain/models"
	domrepo "DugoutEdge/internal/domain/repository"
	"DugoutEdge/pkg/logger"
	"DugoutEdge/pkg/queue"
)

const persistRunType = "persist_run"

type persistRunPayload struct {
	Date   string         `json:"date"`
	Result *models.Result `json:"result"`
}

// PersistRunJob writes a finished scoring run to the history sink. It runs
// on the queue so a ClickHouse hiccup gets retried instead of dropping the
// run.
type PersistRunJob struct {
	history domrepo.HistorySink
	log     *logger.Logger
}

func NewPersistRunJob(history domrepo.HistorySink, log *logger.Logger) *PersistRunJob {
	return &PersistRunJob{history: history, log: log}
}

func (j *PersistRunJob) Name() string { return "persist-run" }

func (j *PersistRunJob) Type() string { return persistRunType }

func (j *PersistRunJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[persistRunPayload](payload)
	if err != nil {
		return fmt.Errorf("persist run payload: %w", err)
	}
	if p.Result == nil || p.Date == "" {
		return nil
	}
	if j.log != nil {
		j.log.Debug("persisting run", logger.String("date", p.Date), logger.Int("candidates", len(p.Result.Candidates)))
	}
	return j.history.SaveRun(ctx, p.Date, p.Result)
}
