package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/cadetops/pkg/constants"
)

func TestMetricsAdapter_RecordsSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	adapter := NewMetricsAdapter(m)

	adapter.RecordAnalyticsPass("repository", "partial", 250*time.Millisecond)
	adapter.RecordAnalyticsPass("repository", "partial", 50*time.Millisecond)
	adapter.RecordRecordIssue(constants.RecordTypeInventory, constants.ErrCodeInsufficientData)
	adapter.RecordRiskAssessment(true)
	adapter.RecordRiskAssessment(false)
	adapter.RecordRiskAssessment(true)
	adapter.RecordForecastBucket(constants.ForecastSoon)
	adapter.RecordBalanceLabel(constants.BalanceCanTakeMore)
	adapter.SetCoverageAdequate(true)
	adapter.RecordSnapshotCache("local", false)
	adapter.RecordSnapshotCache("redis", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnalyticsPasses.WithLabelValues("repository", "partial")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordIssues.WithLabelValues("inventory", "insufficient_data")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RiskAssessments.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RiskAssessments.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ForecastBuckets.WithLabelValues("Soon")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BalanceLabels.WithLabelValues("CanTakeMore")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CoverageAdequate))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotCacheAccess.WithLabelValues("local", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotCacheAccess.WithLabelValues("redis", "hit")))

	adapter.SetCoverageAdequate(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CoverageAdequate))
}

func TestMetrics_HTTPRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ActiveRequestsInc("/api/v1/analytics/report", "GET")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveRequests.WithLabelValues("/api/v1/analytics/report", "GET")))
	m.ActiveRequestsDec("/api/v1/analytics/report", "GET")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ActiveRequests.WithLabelValues("/api/v1/analytics/report", "GET")))

	m.ObserveRequestDuration("/api/v1/analytics/report", "GET", 503, 0.2)
	m.IncRequestErrors("/api/v1/analytics/report", "GET", 503)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestErrors.WithLabelValues("/api/v1/analytics/report", "GET", "503")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestNewMetrics_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	families, err := reg.Gather()
	require.NoError(t, err)
	// Only the coverage gauge has a value before any observation.
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "cadetops_coverage_adequate")

	assert.Panics(t, func() { NewMetrics(reg) })
}
