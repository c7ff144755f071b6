package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"solarfleet/internal/config"
	"solarfleet/internal/engine"
	"solarfleet/internal/fleet"
	httpserver "solarfleet/internal/http"
	"solarfleet/internal/metrics"
	mqttsink "solarfleet/internal/mqtt"
	"solarfleet/internal/sim"
	"solarfleet/internal/snapshot"
	libredis "solarfleet/libs/redis"
)

// App wires simulator dependencies.
type App struct {
	engine    *engine.Engine
	server    *httpserver.Server
	publisher *mqttsink.Publisher
	redis     *redis.Client
	logger    *zap.Logger
}

// New constructs application components.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	metrics.Init()

	simctx := sim.NewContext(cfg.Fleet.Seed)
	registry, err := fleet.NewRegistry(simctx.Rand, simctx.Now(), cfg.Fleet.Size)
	if err != nil {
		return nil, err
	}

	summary := registry.Summary()
	logger.Info("fleet generated",
		zap.Int("sites", summary.Sites),
		zap.Float64("total_capacity_kw", summary.TotalCapacityKW),
		zap.Float64("average_capacity_kw", summary.AverageCapacityKW),
		zap.Strings("countries", summary.Countries))
	metrics.SetFleet(summary.Sites, summary.TotalCapacityKW)

	publisher, err := mqttsink.NewPublisher(mqttsink.Options{
		Host:     cfg.MQTT.Host,
		Port:     cfg.MQTT.Port,
		Username: cfg.MQTT.Username,
		Password: cfg.MQTT.Password,
		ClientID: cfg.MQTT.ClientID,
	}, logger)
	if err != nil {
		return nil, err
	}

	var snapshots engine.SnapshotStore
	var redisClient *redis.Client
	if cfg.Snapshot.RedisAddr != "" {
		redisClient, err = libredis.NewRedisClient(cfg.Snapshot.RedisAddr, cfg.Snapshot.RedisPassword)
		if err != nil {
			publisher.Close()
			return nil, err
		}
		snapshots = snapshot.NewStore(redisClient, cfg.Snapshot.TTL)
	}

	eng := engine.New(engine.Config{
		Namespace: cfg.MQTT.Namespace,
		Interval:  cfg.Tick.Interval,
		QoS:       byte(cfg.MQTT.QoS),
	}, registry, simctx, publisher, snapshots, logger)

	routes := httpserver.Routes{
		Metrics: promhttp.Handler(),
		Health:  httpserver.NewHealthHandler(),
	}
	server := httpserver.NewServer(cfg.HTTPAddress(), httpserver.NewRouter(routes), logger)

	return &App{
		engine:    eng,
		server:    server,
		publisher: publisher,
		redis:     redisClient,
		logger:    logger,
	}, nil
}

// Run ticks the engine until ctx is cancelled. The metrics endpoint runs
// alongside; its failure is logged but does not stop synthesis.
func (a *App) Run(ctx context.Context) error {
	go func() {
		if err := a.server.Run(ctx); err != nil {
			a.logger.Error("http server stopped", zap.Error(err))
		}
	}()
	return a.engine.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
