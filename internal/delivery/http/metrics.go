package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var startTime = time.Now()

var (
	detectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cropdoctor_detections_total",
		Help: "Total disease detection requests by outcome.",
	}, []string{"outcome"})

	advisoriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cropdoctor_weather_advisories_total",
		Help: "Total weather advisory requests by outcome.",
	}, []string{"outcome"})

	// Buckets stretch past the default 10s ceiling because vision
	// analysis with retries can run close to the 60s client budget.
	detectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cropdoctor_detection_duration_seconds",
		Help:    "Disease detection request duration in seconds.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
	})

	uptimeSeconds = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cropdoctor_uptime_seconds",
		Help: "Process uptime in seconds.",
	}, func() float64 {
		return time.Since(startTime).Seconds()
	})
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)
