package listing

import (
	"context"
	"net/url"
	"testing"

	"github.com/staymarket/listing-service/internal/entity"
	"github.com/staymarket/listing-service/internal/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// defaultListings mirrors the fixture the query grid below was worked out
// against: two san-francisco listings in USD, two paris listings in EUR.
func defaultListings(t *testing.T) []entity.Listing {
	t.Helper()
	var out []entity.Listing
	for _, data := range []RawData{
		{"title": "san fran 100", "base_price": 100.0, "currency": "USD", "market": "san-francisco"},
		{"title": "san fran 10", "base_price": 10.0, "currency": "USD", "market": "san-francisco"},
		{"title": "paris 10", "base_price": 10.0, "currency": "EUR", "market": "paris"},
		{"title": "paris 100", "base_price": 100.0, "currency": "EUR", "market": "paris"},
	} {
		built, err := Build(data, out)
		require.NoError(t, err)
		out = append(out, built)
	}
	return out
}

func TestFilterQueryGrid(t *testing.T) {
	tests := []struct {
		query    string
		expected int
		msg      string
	}{
		{"", 4, "no filter applied, all results"},
		{"market=paris", 2, "paris market only"},
		{"market=paris,san-francisco", 4, "san-fran and paris"},
		{"market=tokyo", 0, "no tokyo listings"},
		{"base_price.e=10&currency=USD", 1, "only the 10 USD listing"},
		{"base_price.lt=10&currency=USD", 0, "nothing under 10 USD"},
		{"base_price.gt=10&currency=USD", 3, "everything above 10 USD"},
		{"base_price.gte=11&currency=EUR&market=paris", 1, "paris at or above 11 EUR"},
		{"base_price.gte=10&currency=USD&base_price.lt=101", 3, "predicates AND-compose"},
		{"base_price.lt=11&currency=EUR", 2, "the cheap listings"},
		{"base_price.lt=10&currency=EUR", 1, "only the cheapest USD listing"},
		{"base_price.gte=10.25&currency=USD&market=paris", 2, "threshold converted into EUR"},
		{"base_price.unknown=10&currency=USD", 4, "unrecognized suffix ignored"},
	}
	listings := defaultListings(t)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			params, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			out, err := Filter(context.Background(), listings, params, exchange.StaticProvider{})
			require.NoError(t, err)
			assert.Len(t, out, tt.expected, tt.msg)
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	listings := defaultListings(t)
	params := url.Values{"market": {"paris,san-francisco"}}

	out, err := Filter(context.Background(), listings, params, exchange.StaticProvider{})
	require.NoError(t, err)
	require.Len(t, out, 4)
	for i, l := range out {
		assert.Equal(t, listings[i].ID, l.ID)
	}
}

func TestFilterPriceRequiresCurrency(t *testing.T) {
	params := url.Values{"base_price.e": {"10"}}
	_, err := Filter(context.Background(), defaultListings(t), params, exchange.StaticProvider{})
	require.Error(t, err)
	assert.EqualError(t, err, "must include currency when querying using base price")
}

func TestFilterUnknownCurrency(t *testing.T) {
	params := url.Values{"base_price.e": {"10"}, "currency": {"doubloons"}}
	_, err := Filter(context.Background(), defaultListings(t), params, exchange.StaticProvider{})
	require.Error(t, err)
	assert.True(t, entity.IsInvalidRequest(err))
}

func TestFilterUnparsableThreshold(t *testing.T) {
	params := url.Values{"base_price.gte": {"cheap"}, "currency": {"USD"}}
	_, err := Filter(context.Background(), defaultListings(t), params, exchange.StaticProvider{})
	require.Error(t, err)
	assert.EqualError(t, err, "unable to parse base_price.gte=cheap")
}

type emptyRateProvider struct{}

func (emptyRateProvider) LatestRates(context.Context, string) exchange.RateTable {
	return exchange.RateTable{}
}

// A degraded feed (empty rate table) must not fail the filter; every factor
// falls back to 1 and comparisons happen as if no conversion applied.
func TestFilterDegradedRateTable(t *testing.T) {
	listings := defaultListings(t)
	params := url.Values{"base_price.e": {"10"}, "currency": {"USD"}}

	out, err := Filter(context.Background(), listings, params, emptyRateProvider{})
	require.NoError(t, err)
	assert.Len(t, out, 2, "both 10-priced listings match at factor 1")
}
