package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	Init()
	Init()

	ObserveFrame("cam-m", 42.5, 30*time.Millisecond)
	ObserveFrame("cam-m", 12, 10*time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(framesProcessed.WithLabelValues("cam-m")))
	assert.Equal(t, 12.0, testutil.ToFloat64(riskScore.WithLabelValues("cam-m")))

	before := testutil.ToFloat64(alertsTotal.WithLabelValues("lone_woman", ResultCooldown))
	IncAlert("lone_woman", ResultCooldown)
	assert.Equal(t, before+1, testutil.ToFloat64(alertsTotal.WithLabelValues("lone_woman", ResultCooldown)))

	IncDetectorError("")
	assert.GreaterOrEqual(t, testutil.ToFloat64(detectorErrors.WithLabelValues("unknown")), 1.0)

	SetActiveCameras(-3)
	assert.Zero(t, testutil.ToFloat64(activeCameras))
	SetActiveCameras(4)
	assert.Equal(t, 4.0, testutil.ToFloat64(activeCameras))
}
