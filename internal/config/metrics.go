package config

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	configLoadTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_config_load_timestamp",
			Help: "Unix timestamp of the last configuration load",
		},
	)

	// configFallbacksTotal counts environment values replaced by defaults.
	configFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_config_fallbacks_total",
			Help: "Total configuration values that fell back to their default",
		},
		[]string{"key"},
	)
)

func recordLoad(fallbacks []string) {
	configLoadTimestamp.Set(float64(time.Now().Unix()))
	for _, key := range fallbacks {
		configFallbacksTotal.WithLabelValues(key).Inc()
	}
}
