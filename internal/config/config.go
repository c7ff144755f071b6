package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "solarfleet/libs/config"
)

// MQTT holds broker connection and topic settings.
type MQTT struct {
	Host      string `yaml:"host" env:"SIM_MQTT_HOST"`
	Port      int    `yaml:"port" env:"SIM_MQTT_PORT"`
	Username  string `yaml:"username" env:"SIM_MQTT_USERNAME"`
	Password  string `yaml:"password" env:"SIM_MQTT_PASSWORD"`
	ClientID  string `yaml:"client_id" env:"SIM_MQTT_CLIENT_ID"`
	QoS       int    `yaml:"qos" env:"SIM_MQTT_QOS"`
	Namespace string `yaml:"namespace" env:"SIM_MQTT_NAMESPACE"`
}

// Fleet controls fleet generation. Seed 0 means seed from the wall clock.
type Fleet struct {
	Size int   `yaml:"size" env:"SIM_FLEET_SIZE"`
	Seed int64 `yaml:"seed" env:"SIM_FLEET_SEED"`
}

// Tick controls synthesis cadence.
type Tick struct {
	Interval time.Duration `yaml:"interval" env:"SIM_TICK_INTERVAL"`
}

// Snapshot enables the redis latest-reading cache when an addr is set.
type Snapshot struct {
	RedisAddr     string        `yaml:"redis_addr" env:"SIM_SNAPSHOT_REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"SIM_SNAPSHOT_REDIS_PASSWORD"`
	TTL           time.Duration `yaml:"ttl" env:"SIM_SNAPSHOT_TTL"`
}

// HTTP configures the metrics/health endpoint.
type HTTP struct {
	Port string `yaml:"port" env:"SIM_HTTP_PORT"`
}

// Config defines simulator configuration.
type Config struct {
	MQTT     MQTT     `yaml:"mqtt"`
	Fleet    Fleet    `yaml:"fleet"`
	Tick     Tick     `yaml:"tick"`
	Snapshot Snapshot `yaml:"snapshot"`
	HTTP     HTTP     `yaml:"http"`
}

// Load configuration using the shared helper and validate it.
func Load() (*Config, error) {
	cfg := &Config{
		MQTT: MQTT{
			Host:      "localhost",
			Port:      1883,
			ClientID:  "solarfleet-simulator",
			QoS:       1,
			Namespace: "solar_farms",
		},
		Fleet: Fleet{Size: 150},
		Tick:  Tick{Interval: 30 * time.Second},
		Snapshot: Snapshot{
			TTL: 5 * time.Minute,
		},
		HTTP: HTTP{Port: "9090"},
	}

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.MQTT.Host) == "" {
		return errors.New("config: mqtt host required")
	}
	if c.MQTT.Port <= 0 || c.MQTT.Port > 65535 {
		return fmt.Errorf("config: mqtt port out of range: %d", c.MQTT.Port)
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("config: mqtt qos must be 0, 1 or 2: %d", c.MQTT.QoS)
	}
	if strings.TrimSpace(c.MQTT.Namespace) == "" {
		return errors.New("config: mqtt namespace required")
	}
	if c.Fleet.Size <= 0 {
		return fmt.Errorf("config: fleet size must be positive: %d", c.Fleet.Size)
	}
	if c.Tick.Interval <= 0 {
		return fmt.Errorf("config: tick interval must be positive: %s", c.Tick.Interval)
	}
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "9090"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
