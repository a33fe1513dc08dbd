package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObservePage(t *testing.T) {
	m := New()
	m.ObservePage("us", OutcomeSuccess, 49)
	m.ObservePage("us", OutcomeSuccess, 50)
	m.ObservePage("jp", OutcomeStatus, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.pageFetches.WithLabelValues("us", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pageFetches.WithLabelValues("jp", OutcomeStatus)))
	assert.Equal(t, 99.0, testutil.ToFloat64(m.reviews))
}

func TestMetrics_SetBreakerState(t *testing.T) {
	m := New()
	m.SetBreakerState("itunes-feed", gobreaker.StateOpen)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.breakerState.WithLabelValues("itunes-feed")))

	m.SetBreakerState("itunes-feed", gobreaker.StateHalfOpen)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.breakerState.WithLabelValues("itunes-feed")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.ObservePage("us", OutcomeParse, 0)

	path := filepath.Join(t.TempDir(), "itunes_reviews.prom")
	require.NoError(t, m.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `itunes_reviews_page_fetches_total{country="us",outcome="parse"} 1`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePage("us", OutcomeSuccess, 1)
		m.SetBreakerState("x", gobreaker.StateClosed)
		assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
	})
}
