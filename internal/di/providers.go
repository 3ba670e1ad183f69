package di

import (
	"context"
	"fmt"
	"time"

	"DugoutEdge/internal/domain/repository"
	"DugoutEdge/internal/engine"
	internalrepo "DugoutEdge/internal/repository"
	icache "DugoutEdge/internal/service/cache"
	"DugoutEdge/internal/service/lineupfeed"
	imetrics "DugoutEdge/internal/service/metrics"
	"DugoutEdge/internal/services/sources"
	"DugoutEdge/internal/usecase"
	pkgcache "DugoutEdge/pkg/cache"
	pkgch "DugoutEdge/pkg/clickhouse"
	"DugoutEdge/pkg/config"
	pkgkafka "DugoutEdge/pkg/kafka"
	applogger "DugoutEdge/pkg/logger"
	"DugoutEdge/pkg/queue"
	"DugoutEdge/pkg/server"
)

// ProvideLogger creates the application logger. Production gets JSON,
// everything else console.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "console"
	if cfg.Environment == "production" {
		format = "json"
	}
	l, err := applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates the engine metrics recorder.
func ProvideMetrics() repository.Metrics {
	return imetrics.NewRecorder()
}

// ProvideEngine creates the scoring engine.
func ProvideEngine(cfg *config.Config, l *applogger.Logger, m repository.Metrics) *engine.Engine {
	return engine.New(cfg, engine.WithLogger(l), engine.WithMetrics(m))
}

// ProvideSources creates the daily payload provider.
func ProvideSources(cfg *config.Config, l *applogger.Logger) (sources.Provider, error) {
	return sources.New(cfg, l)
}

// ProvideClickHouseClient creates a ClickHouse client when history is
// enabled, nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.History.Host),
		pkgch.WithPort(cfg.History.Port),
		pkgch.WithDatabase(cfg.History.Database),
		pkgch.WithCredentials(cfg.History.User, cfg.History.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.History.DialTimeout, 10*time.Second, 10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.HistorySchema); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideHistorySink creates the candidate history sink, nil when history
// is disabled.
func ProvideHistorySink(chClient *pkgch.Client) repository.HistorySink {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseHistory(chClient.DB())
}

// ProvideKafkaProducer creates a Kafka producer when alerts are enabled,
// nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Alerts.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Alerts.Brokers),
		pkgkafka.WithCompression(cfg.Alerts.Compression),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAlertPublisher creates the top-tier alert publisher, nil when
// alerts are disabled.
func ProvideAlertPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.AlertPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaAlerts(producer, cfg.Alerts.Topic)
}

// ProvideLineupStream creates the live lineup feed, nil when disabled.
func ProvideLineupStream(cfg *config.Config, l *applogger.Logger) repository.LineupStream {
	if !cfg.LineupFeed.Enabled {
		return nil
	}
	return lineupfeed.New(
		cfg.LineupFeed.APIKey,
		cfg.LineupFeed.WebSocketURL,
		cfg.LineupFeed.ReconnectDelay,
		cfg.LineupFeed.PingInterval,
		l,
	)
}

// ProvideRedisCache creates a shared Redis client for response caching and
// the job queue, nil when Redis is disabled.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	r := cfg.Cache.Redis
	if !r.Enabled {
		return nil, nil
	}
	c, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(r.Host),
		pkgcache.WithRedisPort(r.Port),
		pkgcache.WithRedisPassword(r.Password),
		pkgcache.WithRedisDB(r.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideResponseCache creates the HTTP response cache. Layered over Redis
// when available, in-process TTL map otherwise.
func ProvideResponseCache(redisCache *pkgcache.RedisCache) icache.BytesCache {
	if redisCache == nil {
		return icache.NewTTLCache()
	}
	return icache.NewServiceBytes(pkgcache.NewLayeredCache(redisCache))
}

// ProvideJobQueue creates the persistence job queue. Requires both Redis
// and the history sink; nil otherwise.
func ProvideJobQueue(
	l *applogger.Logger,
	redisCache *pkgcache.RedisCache,
	history repository.HistorySink,
) (*queue.RedisQueue, error) {
	if redisCache == nil || history == nil {
		return nil, nil
	}
	q := queue.NewRedisQueue(l, &queue.QueueConfig{
		Workers:    2,
		RetryLimit: 3,
		RetryDelay: 15 * time.Second,
	}, redisCache.Client(), queue.ModeProducerConsumer)
	q.RegisterJob(usecase.NewPersistRunJob(history, l))
	if err := q.Start(); err != nil {
		return nil, fmt.Errorf("job queue: %w", err)
	}
	return q, nil
}

// ProvideAggregator creates the opportunity aggregator use case.
func ProvideAggregator(
	provider sources.Provider,
	eng *engine.Engine,
	history repository.HistorySink,
	alerts repository.AlertPublisher,
	metrics repository.Metrics,
	jobs *queue.RedisQueue,
	l *applogger.Logger,
) *usecase.OpportunityAggregator {
	agg := usecase.NewOpportunityAggregator(provider, eng, history, alerts, metrics, l)
	if jobs != nil {
		agg.SetJobQueue(jobs)
	}
	return agg
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	agg *usecase.OpportunityAggregator,
	respCache icache.BytesCache,
	stream repository.LineupStream,
	chClient *pkgch.Client,
	alerts repository.AlertPublisher,
	jobs *queue.RedisQueue,
	redisCache *pkgcache.RedisCache,
) *server.App {
	return server.New(cfg, l, agg, respCache, stream, chClient, alerts, jobs, redisCache)
}
