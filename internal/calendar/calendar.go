// Package calendar derives a per-day pricing series for a listing, applying
// market-specific day-of-week multipliers and an optional currency factor.
package calendar

import (
	"time"

	"github.com/staymarket/listing-service/internal/entity"
)

const days = 365

// Day is one priced calendar date.
type Day struct {
	Date     string  `json:"date"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

type multiplier func(t time.Time) float64

func defaultMultiplier(t time.Time) float64 {
	if t.Weekday() == time.Friday {
		return 1.25
	}
	return 1
}

func sanFranciscoMultiplier(t time.Time) float64 {
	if t.Weekday() == time.Wednesday {
		return 0.7
	}
	return 1
}

func weekendMultiplier(t time.Time) float64 {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return 1.5
	}
	return 1
}

// marketMultipliers holds the market-specific pricing rules; markets without
// an entry use defaultMultiplier.
var marketMultipliers = map[string]multiplier{
	entity.MarketParis:        weekendMultiplier,
	entity.MarketLisbon:       weekendMultiplier,
	entity.MarketSanFrancisco: sanFranciscoMultiplier,
}

// Build produces 365 daily price points starting at the current date. Each
// invocation recomputes from "now", so repeated calls near midnight may shift
// the window by a day; that is acceptable for this feed. currencyFactor is 1
// for the native currency, or the rate-table entry for the listing's currency
// when a display currency was requested; the price divides by it.
func Build(l entity.Listing, currencyFactor float64, displayCode string) []Day {
	mult, ok := marketMultipliers[l.Market.Code]
	if !ok {
		mult = defaultMultiplier
	}

	start := time.Now()
	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		out = append(out, Day{
			Date:     date.Format("2006-01-02"),
			Price:    (l.BasePrice * mult(date)) / currencyFactor,
			Currency: displayCode,
		})
	}
	return out
}
