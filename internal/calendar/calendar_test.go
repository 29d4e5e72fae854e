package calendar

import (
	"testing"
	"time"

	"github.com/staymarket/listing-service/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureListing(marketCode string) entity.Listing {
	market, _ := entity.MarketByCode(marketCode)
	currency, _ := entity.CurrencyByCode(market.Currency)
	return entity.Listing{
		ID:        1,
		Title:     "some title",
		BasePrice: 100,
		Currency:  currency,
		Market:    market,
	}
}

func day(iso string) time.Time {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildReturns365ContiguousDays(t *testing.T) {
	days := Build(fixtureListing(entity.MarketSanFrancisco), 1, "USD")
	require.Len(t, days, 365)

	today := time.Now().Format("2006-01-02")
	assert.Equal(t, today, days[0].Date)

	prev := day(days[0].Date)
	for _, d := range days[1:] {
		cur := day(d.Date)
		assert.Equal(t, prev.AddDate(0, 0, 1), cur, "dates must increase by exactly one day")
		prev = cur
	}
}

func TestBuildCurrencyCode(t *testing.T) {
	days := Build(fixtureListing(entity.MarketParis), 1, "EUR")
	for _, d := range days {
		assert.Equal(t, "EUR", d.Currency)
	}
}

func TestBuildDividesByCurrencyFactor(t *testing.T) {
	l := fixtureListing(entity.MarketTokyo)
	days := Build(l, 0.94, "EUR")
	for _, d := range days {
		mult := defaultMultiplier(day(d.Date))
		assert.InDelta(t, (100*mult)/0.94, d.Price, 1e-9)
	}
}

func TestSanFranciscoMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, sanFranciscoMultiplier(day("2022-01-01")))
	assert.Equal(t, 0.7, sanFranciscoMultiplier(day("2022-01-05")), "Wednesday discount")
}

func TestWeekendMultiplier(t *testing.T) {
	assert.Equal(t, 1.5, weekendMultiplier(day("2022-01-01")), "Saturday")
	assert.Equal(t, 1.5, weekendMultiplier(day("2022-01-02")), "Sunday")
	assert.Equal(t, 1.0, weekendMultiplier(day("2022-01-03")), "Monday")
}

func TestDefaultMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, defaultMultiplier(day("2022-01-01")))
	assert.Equal(t, 1.25, defaultMultiplier(day("2022-01-07")), "Friday markup")
}

func TestEveryRuleMarketExistsInCatalog(t *testing.T) {
	for code := range marketMultipliers {
		_, err := entity.MarketByCode(code)
		assert.NoError(t, err, "multiplier rule for unknown market %s", code)
	}
}

func TestMarketsWithoutRuleUseDefault(t *testing.T) {
	days := Build(fixtureListing(entity.MarketBrisbane), 1, "AUD")
	for _, d := range days {
		expected := 100 * defaultMultiplier(day(d.Date))
		assert.Equal(t, expected, d.Price)
	}
}
