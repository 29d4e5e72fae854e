package entity

import "fmt"

// Market codes supported by the catalog.
const (
	MarketSanFrancisco = "san-francisco"
	MarketLisbon       = "lisbon"
	MarketParis        = "paris"
	MarketTokyo        = "tokyo"
	MarketJerusalem    = "jerusalem"
	MarketBrisbane     = "brisbane"
)

// Market is a place where listings are offered. Currency is the code of the
// market's home currency and must exist in the currency catalog.
type Market struct {
	Code     string `json:"code" bson:"code"`
	Name     string `json:"name" bson:"name"`
	Currency string `json:"currency" bson:"currency"`
}

var markets = []Market{
	{Code: MarketSanFrancisco, Name: "San Francisco", Currency: CurrencyUSD},
	{Code: MarketLisbon, Name: "Lisbon", Currency: CurrencyEUR},
	{Code: MarketParis, Name: "Paris", Currency: CurrencyEUR},
	{Code: MarketTokyo, Name: "Tokyo", Currency: CurrencyJPY},
	{Code: MarketJerusalem, Name: "Jerusalem", Currency: CurrencyILS},
	{Code: MarketBrisbane, Name: "Brisbane", Currency: CurrencyAUD},
}

var marketByCode = func() map[string]Market {
	idx := make(map[string]Market, len(markets))
	for _, m := range markets {
		idx[m.Code] = m
	}
	return idx
}()

// Markets returns the full catalog in declared order.
func Markets() []Market {
	return markets
}

// MarketByCode looks up a market by its code.
func MarketByCode(code string) (Market, error) {
	if m, ok := marketByCode[code]; ok {
		return m, nil
	}
	return Market{}, fmt.Errorf("market with code=%s does not exist: %w", code, ErrMarketNotFound)
}
