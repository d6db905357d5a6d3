package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestObserveJob(t *testing.T) {
	done := WorkerJobsCompleted.WithLabelValues("metrics-test")
	failed := WorkerJobsFailed.WithLabelValues("metrics-test", "JOB_STORE_FAILED")
	beforeDone := counterValue(t, done)
	beforeFailed := counterValue(t, failed)

	ObserveJob("metrics-test", "", 0.01)
	ObserveJob("metrics-test", "JOB_STORE_FAILED", 0.02)
	ObserveJob("metrics-test", "JOB_STORE_FAILED", 0.03)

	assert.Equal(t, beforeDone+1, counterValue(t, done))
	assert.Equal(t, beforeFailed+2, counterValue(t, failed))
}
