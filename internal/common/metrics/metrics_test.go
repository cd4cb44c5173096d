// internal/common/metrics/metrics_test.go
package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAreLabelled(t *testing.T) {
	before := testutil.ToFloat64(AlertsGenerated.WithLabelValues("compliance-violation", "critical"))
	AlertsGenerated.WithLabelValues("compliance-violation", "critical").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(AlertsGenerated.WithLabelValues("compliance-violation", "critical")))

	SignalsDetected.WithLabelValues("high-intent").Add(2)
	assert.GreaterOrEqual(t, testutil.ToFloat64(SignalsDetected.WithLabelValues("high-intent")), 2.0)
}
