package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountersAndScrape(t *testing.T) {
	req := require.New(t)
	online := 3
	m := NewMetrics(func() int { return online })

	// When recording a few events
	m.IncrMessages("sent")
	m.IncrMessages("sent")
	m.IncrMessages("read")
	m.IncrDroppedPush("typing-notice")
	m.IncrConnections()

	// Then the counters reflect them
	req.Equal(2.0, testutil.ToFloat64(m.messages.WithLabelValues("sent")))
	req.Equal(1.0, testutil.ToFloat64(m.messages.WithLabelValues("read")))
	req.Equal(1.0, testutil.ToFloat64(m.connections))

	// And the scrape endpoint exposes the online gauge
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), "pairchat_online_users 3")
	req.Contains(rec.Body.String(), "pairchat_dropped_pushes_total")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	require.NotPanics(t, func() {
		m.IncrMessages("sent")
		m.IncrWorkerRestart("SenderWorker")
		m.DecrConnections()
	})
}
