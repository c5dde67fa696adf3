package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveBackend(t *testing.T) {
	before := testutil.ToFloat64(BackendRequestsTotal.WithLabelValues("get_report", "404"))
	ObserveBackend("get_report", 404, 15*time.Millisecond)
	after := testutil.ToFloat64(BackendRequestsTotal.WithLabelValues("get_report", "404"))
	assert.Equal(t, before+1, after)
}
