package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "solarfleet_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	ticksTotal     prometheus.Counter
	readingsTotal  *prometheus.CounterVec
	publishLatency prometheus.Histogram

	fleetSites      prometheus.Gauge
	fleetCapacityKW prometheus.Gauge
)

// Init registers simulator metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		ticksTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "ticks_total",
			Help: "Total synthesis ticks executed",
		})
		readingsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "readings_published_total",
				Help: "Telemetry readings published, by result",
			},
			[]string{"result"},
		)
		publishLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "publish_latency_seconds",
			Help:    "Latency of a single publish call",
			Buckets: prometheus.DefBuckets,
		})
		fleetSites = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "fleet_sites",
			Help: "Number of simulated sites",
		})
		fleetCapacityKW = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "fleet_capacity_kw",
			Help: "Total rated capacity of the fleet in kW",
		})

		prometheus.MustRegister(
			ticksTotal,
			readingsTotal,
			publishLatency,
			fleetSites,
			fleetCapacityKW,
		)
	})
}

// ObserveTick counts one completed tick.
func ObserveTick() {
	if ticksTotal != nil {
		ticksTotal.Inc()
	}
}

// ObservePublish records one publish attempt.
func ObservePublish(result string, seconds float64) {
	if readingsTotal != nil {
		readingsTotal.WithLabelValues(result).Inc()
	}
	if publishLatency != nil {
		publishLatency.Observe(seconds)
	}
}

// SetFleet records fleet-level gauges after generation.
func SetFleet(sites int, capacityKW float64) {
	if fleetSites != nil {
		fleetSites.Set(float64(sites))
	}
	if fleetCapacityKW != nil {
		fleetCapacityKW.Set(capacityKW)
	}
}
