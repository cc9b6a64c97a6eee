package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersCollectors(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterSchedulesCreated.Inc()
	m.CounterActivitiesRecorded.WithLabelValues("strength").Inc()
	m.CounterActivitiesRecorded.WithLabelValues("strength").Inc()
	m.CounterActivitiesRejected.WithLabelValues("out_of_range").Inc()
	m.HistRequestDuration.Observe(0.02)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterSchedulesCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterActivitiesRecorded.WithLabelValues("strength")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterActivitiesRejected.WithLabelValues("out_of_range")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "training_tracker_test_server_schedules_created")
	assert.Contains(t, names, "training_tracker_test_server_request_duration_seconds")
}
