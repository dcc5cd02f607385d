package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "safety_"

	ResultTriggered = "triggered"
	ResultCooldown  = "cooldown"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	framesProcessed  *prometheus.CounterVec
	riskScore        *prometheus.GaugeVec
	pipelineLatency  *prometheus.HistogramVec
	alertsTotal      *prometheus.CounterVec
	detectorErrors   *prometheus.CounterVec
	persistenceTotal *prometheus.CounterVec
	activeCameras    prometheus.Gauge
)

// Init registers the worker's metrics with the default registry. Safe to call repeatedly.
func Init() {
	registerOnce.Do(func() {
		framesProcessed = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "frames_processed_total",
				Help: "Total frames scored by camera",
			},
			[]string{"camera"},
		)
		riskScore = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "risk_score",
				Help: "Latest normalized risk score by camera",
			},
			[]string{"camera"},
		)
		pipelineLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "pipeline_latency_seconds",
				Help:    "Detection plus scoring latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"camera"},
		)
		alertsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_total",
				Help: "Alert trigger attempts by type and result",
			},
			[]string{"type", "result"},
		)
		detectorErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "detector_errors_total",
				Help: "Detector failures by camera",
			},
			[]string{"camera"},
		)
		persistenceTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alert_writes_total",
				Help: "Alert side-effect writes by sink and result",
			},
			[]string{"sink", "result"},
		)
		activeCameras = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "active_cameras",
				Help: "Number of running camera workers",
			},
		)

		prometheus.MustRegister(
			framesProcessed,
			riskScore,
			pipelineLatency,
			alertsTotal,
			detectorErrors,
			persistenceTotal,
			activeCameras,
		)
	})
}

// ObserveFrame records one scored frame.
func ObserveFrame(camera string, score float64, duration time.Duration) {
	if camera == "" {
		camera = "unknown"
	}
	if framesProcessed != nil {
		framesProcessed.WithLabelValues(camera).Inc()
	}
	if riskScore != nil {
		riskScore.WithLabelValues(camera).Set(score)
	}
	if pipelineLatency != nil {
		pipelineLatency.WithLabelValues(camera).Observe(duration.Seconds())
	}
}

// IncAlert counts an alert attempt.
func IncAlert(alertType, result string) {
	if alertsTotal != nil {
		alertsTotal.WithLabelValues(alertType, result).Inc()
	}
}

// IncDetectorError counts a failed detection call.
func IncDetectorError(camera string) {
	if camera == "" {
		camera = "unknown"
	}
	if detectorErrors != nil {
		detectorErrors.WithLabelValues(camera).Inc()
	}
}

// IncWrite counts a snapshot, store or publish outcome.
func IncWrite(sink, result string) {
	if persistenceTotal != nil {
		persistenceTotal.WithLabelValues(sink, result).Inc()
	}
}

// SetActiveCameras sets the running camera count.
func SetActiveCameras(n int) {
	if n < 0 {
		n = 0
	}
	if activeCameras != nil {
		activeCameras.Set(float64(n))
	}
}
