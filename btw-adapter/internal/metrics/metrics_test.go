package metrics

import (
	"testing"
	"time"

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

func TestRequestObserver(t *testing.T) {
	before := counterValue(t, BTWRequestsTotal.WithLabelValues("quote_test", "POST", "201"))

	obs := RequestObserver("quote_test")
	obs("POST", "201", 120*time.Millisecond)
	obs("POST", "201", 80*time.Millisecond)

	after := counterValue(t, BTWRequestsTotal.WithLabelValues("quote_test", "POST", "201"))
	assert.Equal(t, before+2, after)
}

func TestIncCacheHit(t *testing.T) {
	hits := counterValue(t, SecretsCacheHits.WithLabelValues("hit"))
	misses := counterValue(t, SecretsCacheHits.WithLabelValues("miss"))

	IncCacheHit(true)
	IncCacheHit(false)
	IncCacheHit(false)

	assert.Equal(t, hits+1, counterValue(t, SecretsCacheHits.WithLabelValues("hit")))
	assert.Equal(t, misses+2, counterValue(t, SecretsCacheHits.WithLabelValues("miss")))
}

func TestIncQuote(t *testing.T) {
	before := counterValue(t, QuotesTotal.WithLabelValues("3", "ok"))
	IncQuote("3", "ok")
	assert.Equal(t, before+1, counterValue(t, QuotesTotal.WithLabelValues("3", "ok")))
}
