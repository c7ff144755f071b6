package engine

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"solarfleet/internal/fleet"
	"solarfleet/internal/metrics"
	"solarfleet/internal/sim"
)

// Sink is the engine's only outbound dependency: publish one payload under
// one topic key.
type Sink interface {
	Publish(ctx context.Context, topic string, payload []byte, qos byte, retain bool) error
}

// SnapshotStore caches the latest reading per site. Optional.
type SnapshotStore interface {
	Save(ctx context.Context, reading sim.Reading) error
}

// Config holds the engine's cadence and topic settings.
type Config struct {
	Namespace string
	Interval  time.Duration
	QoS       byte
}

// Engine drives periodic synthesis over the whole fleet. The engine
// goroutine is the sole owner of the fleet's runtime state and of the sim
// context's random source.
type Engine struct {
	cfg       Config
	registry  *fleet.Registry
	simctx    *sim.Context
	synth     *sim.Synthesizer
	sink      Sink
	snapshots SnapshotStore
	logger    *zap.Logger
}

// New wires an engine. snapshots may be nil.
func New(cfg Config, registry *fleet.Registry, simctx *sim.Context, sink Sink, snapshots SnapshotStore, logger *zap.Logger) *Engine {
	return &Engine{
		cfg:       cfg,
		registry:  registry,
		simctx:    simctx,
		synth:     sim.NewSynthesizer(simctx),
		sink:      sink,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Run publishes retained static descriptors, then ticks until ctx is
// cancelled. The first synthesis pass runs immediately. Cancellation is
// honored between sites, so shutdown latency is bounded by one tick.
func (e *Engine) Run(ctx context.Context) error {
	e.publishStatics(ctx)

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	e.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.tick(ctx)
		}
	}
}

func (e *Engine) publishStatics(ctx context.Context) {
	for _, site := range e.registry.Sites() {
		if ctx.Err() != nil {
			return
		}
		payload, err := json.Marshal(sim.NewStaticDescriptor(site.Profile))
		if err != nil {
			e.logger.Error("marshal static descriptor", zap.String("site", site.Profile.SiteID), zap.Error(err))
			continue
		}
		topic := Topic(e.cfg.Namespace, site.Profile.SiteID, KindStatic)
		if err := e.sink.Publish(ctx, topic, payload, e.cfg.QoS, true); err != nil {
			e.logger.Warn("publish static descriptor failed",
				zap.String("site", site.Profile.SiteID),
				zap.Error(err))
		}
	}
	e.logger.Info("static descriptors published", zap.Int("sites", len(e.registry.Sites())))
}

// tick runs one sequential synthesis pass. A publish failure is isolated to
// its site: logged, counted, and the pass moves on.
func (e *Engine) tick(ctx context.Context) {
	now := e.simctx.Now()
	published, failed := 0, 0

	for _, site := range e.registry.Sites() {
		if ctx.Err() != nil {
			return
		}

		factor := e.simctx.IrradianceFactor(site.Profile.Latitude, site.Profile.Longitude, now)
		reading := e.synth.Derive(site, factor, e.cfg.Interval, now)

		payload, err := json.Marshal(reading)
		if err != nil {
			e.logger.Error("marshal reading", zap.String("site", site.Profile.SiteID), zap.Error(err))
			failed++
			continue
		}

		topic := Topic(e.cfg.Namespace, site.Profile.SiteID, KindTelemetry)
		start := time.Now()
		if err := e.sink.Publish(ctx, topic, payload, e.cfg.QoS, false); err != nil {
			metrics.ObservePublish(metrics.ResultError, time.Since(start).Seconds())
			e.logger.Warn("publish telemetry failed",
				zap.String("site", site.Profile.SiteID),
				zap.Error(err))
			failed++
			continue
		}
		metrics.ObservePublish(metrics.ResultSuccess, time.Since(start).Seconds())
		published++

		if e.snapshots != nil {
			if err := e.snapshots.Save(ctx, reading); err != nil {
				e.logger.Warn("snapshot save failed",
					zap.String("site", site.Profile.SiteID),
					zap.Error(err))
			}
		}
	}

	metrics.ObserveTick()
	e.logger.Debug("tick complete",
		zap.Int("published", published),
		zap.Int("failed", failed))
}
