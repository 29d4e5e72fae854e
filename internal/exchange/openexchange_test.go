package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", server.URL, zap.NewNop())
	require.NoError(t, err)
	return client, server
}

func ratesHandler(t *testing.T, calls *int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/latest.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("app_id"))
		assert.Equal(t, "USD,EUR,JPY,ILS,AUD", r.URL.Query().Get("symbols"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rates":{"AUD":1.358192,"EUR":0.847971,"ILS":3.264521,"JPY":110.286,"USD":1}}`))
	}
}

func TestLatestRatesRebasesToRequestedCurrency(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, ratesHandler(t, &calls))

	table := client.LatestRates(context.Background(), "EUR")
	require.Equal(t, 1, calls)
	assert.Equal(t, 1.0, table["EUR"])
	assert.InDelta(t, 1/0.847971, table["USD"], 1e-9)
}

func TestLatestRatesUSDPassthrough(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, ratesHandler(t, &calls))

	table := client.LatestRates(context.Background(), "USD")
	assert.Equal(t, 1.0, table["USD"])
	assert.InDelta(t, 0.847971, table["EUR"], 1e-9)
}

func TestLatestRatesCachesWithinTTL(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, ratesHandler(t, &calls))

	now := time.Now()
	client.now = func() time.Time { return now }

	client.LatestRates(context.Background(), "USD")
	client.LatestRates(context.Background(), "USD")
	assert.Equal(t, 1, calls, "second call within the TTL must hit the cache")

	now = now.Add(cacheTTL + time.Second)
	client.LatestRates(context.Background(), "USD")
	assert.Equal(t, 2, calls, "expired entry must refetch")
}

func TestLatestRatesCacheIsPerBaseCode(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, ratesHandler(t, &calls))

	client.LatestRates(context.Background(), "USD")
	client.LatestRates(context.Background(), "EUR")
	assert.Equal(t, 2, calls)
}

func TestLatestRatesUpstreamFailureDegradesToEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	table := client.LatestRates(context.Background(), "USD")
	assert.Empty(t, table)
	// Absent entries fall back to the identity factor for callers.
	assert.Equal(t, 1.0, table.Rate("EUR"))
}

func TestLatestRatesFailuresAreNotCached(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	client.LatestRates(context.Background(), "USD")
	client.LatestRates(context.Background(), "USD")
	assert.Equal(t, 2, calls)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("", "", zap.NewNop())
	require.Error(t, err)
}
