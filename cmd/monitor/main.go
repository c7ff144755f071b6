package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"solarfleet/internal/config"
	"solarfleet/internal/engine"
	"solarfleet/internal/sim"
	"solarfleet/libs/logging"
)

const connectTimeout = 10 * time.Second

// monitor subscribes to the fleet's topics and logs what comes through.
// Useful for eyeballing a running simulator without an analytics stack.
type monitor struct {
	logger *zap.Logger

	mu       sync.Mutex
	messages int
	sites    map[string]struct{}
}

func (m *monitor) handle(_ mqtt.Client, msg mqtt.Message) {
	parts := strings.SplitN(msg.Topic(), "/", 3)
	if len(parts) != 3 {
		m.logger.Warn("unexpected topic", zap.String("topic", msg.Topic()))
		return
	}
	siteID, kind := parts[1], parts[2]

	m.mu.Lock()
	m.messages++
	m.sites[siteID] = struct{}{}
	m.mu.Unlock()

	switch kind {
	case engine.KindTelemetry:
		var reading sim.Reading
		if err := json.Unmarshal(msg.Payload(), &reading); err != nil {
			m.logger.Error("decode telemetry", zap.String("site", siteID), zap.Error(err))
			return
		}
		m.logger.Info("telemetry",
			zap.String("site", siteID),
			zap.Float64("power_kw", reading.PowerOutputKW),
			zap.Float64("energy_kwh", reading.EnergyGeneratedKWH),
			zap.Float64("irradiance_wm2", reading.IrradianceWM2),
			zap.String("system_status", reading.SystemStatus),
			zap.String("inverter_status", reading.InverterStatus),
			zap.Int("string_faults", reading.StringFaults))
	case engine.KindStatic:
		var descriptor sim.StaticDescriptor
		if err := json.Unmarshal(msg.Payload(), &descriptor); err != nil {
			m.logger.Error("decode static descriptor", zap.String("site", siteID), zap.Error(err))
			return
		}
		m.logger.Info("static",
			zap.String("site", siteID),
			zap.String("name", descriptor.SiteName),
			zap.String("country", descriptor.Country),
			zap.Float64("capacity_kw", descriptor.SystemCapacityKW),
			zap.String("installed", descriptor.InstallationDate))
	default:
		m.logger.Warn("unknown message kind", zap.String("topic", msg.Topic()))
	}
}

func (m *monitor) summary() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messages, len(m.sites)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger("monitor")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	mon := &monitor{logger: logger, sites: make(map[string]struct{})}

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTT.Host, cfg.MQTT.Port)).
		SetClientID(cfg.MQTT.ClientID + "-monitor").
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)
	if cfg.MQTT.Username != "" {
		opts.SetUsername(cfg.MQTT.Username)
		opts.SetPassword(cfg.MQTT.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		logger.Fatal("mqtt connect timed out")
	}
	if err := token.Error(); err != nil {
		logger.Fatal("mqtt connect failed", zap.Error(err))
	}

	qos := byte(cfg.MQTT.QoS)
	for _, kind := range []string{engine.KindTelemetry, engine.KindStatic} {
		filter := fmt.Sprintf("%s/+/%s", cfg.MQTT.Namespace, kind)
		sub := client.Subscribe(filter, qos, mon.handle)
		sub.Wait()
		if err := sub.Error(); err != nil {
			logger.Fatal("subscribe failed", zap.String("filter", filter), zap.Error(err))
		}
		logger.Info("subscribed", zap.String("filter", filter))
	}

	<-ctx.Done()
	client.Disconnect(250)

	messages, sites := mon.summary()
	logger.Info("session summary",
		zap.Int("messages", messages),
		zap.Int("sites_seen", sites))
}
