package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DugoutEdge/internal/domain/repository"
	"DugoutEdge/internal/handler/api"
	icache "DugoutEdge/internal/service/cache"
	"DugoutEdge/internal/usecase"
	pkgcache "DugoutEdge/pkg/cache"
	pkgch "DugoutEdge/pkg/clickhouse"
	"DugoutEdge/pkg/config"
	xhttp "DugoutEdge/pkg/http"
	applogger "DugoutEdge/pkg/logger"
	"DugoutEdge/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	agg        *usecase.OpportunityAggregator
	respCache  icache.BytesCache
	stream     repository.LineupStream
	chClient   *pkgch.Client
	alerts     repository.AlertPublisher
	jobs       *queue.RedisQueue
	redis      *pkgcache.RedisCache
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. stream, chClient,
// alerts, jobs and redis may be nil when the corresponding subsystem is
// disabled.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	agg *usecase.OpportunityAggregator,
	respCache icache.BytesCache,
	stream repository.LineupStream,
	chClient *pkgch.Client,
	alerts repository.AlertPublisher,
	jobs *queue.RedisQueue,
	redis *pkgcache.RedisCache,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		agg:       agg,
		respCache: respCache,
		stream:    stream,
		chClient:  chClient,
		alerts:    alerts,
		jobs:      jobs,
		redis:     redis,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.startLogCollector()

	handler := api.NewOpportunitiesHandler(a.log, a.agg)
	handler.SetCache(a.respCache)

	a.httpServer = xhttp.NewServer(handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.stream != nil {
		if err := a.startLineupFeed(ctx); err != nil {
			// live lineups are an enrichment, not a prerequisite
			a.log.Warn("lineup feed unavailable", applogger.Error(err))
		}
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// startLogCollector ships aggregated error logs over the alert broker when
// one is configured.
func (a *App) startLogCollector() {
	pub, ok := a.alerts.(applogger.Publisher)
	if !ok {
		return
	}
	a.log.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   30 * time.Second,
		CountThreshold: 100,
		Topic:          a.cfg.Alerts.Topic + ".error-logs",
		Publisher:      pub,
	})
}

func (a *App) startLineupFeed(ctx context.Context) error {
	if err := a.stream.Connect(ctx); err != nil {
		return err
	}
	if err := a.stream.Subscribe(a.cfg.LineupFeed.Teams); err != nil {
		return err
	}
	go a.agg.ConsumeLineups(ctx, a.stream)
	a.log.Info("lineup feed started", applogger.Strings("teams", a.cfg.LineupFeed.Teams))
	return nil
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.stream != nil {
		if err := a.stream.Close(); err != nil {
			a.log.Warn("lineup feed close error", applogger.Error(err))
		}
	}
	if a.jobs != nil {
		if err := a.jobs.Stop(shutdownCtx); err != nil {
			a.log.Warn("job queue stop error", applogger.Error(err))
		}
	}
	// flush aggregated logs before the broker goes away
	a.log.RemoveCollector()
	if a.alerts != nil {
		if err := a.alerts.Close(); err != nil {
			a.log.Warn("alert publisher close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("redis close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
