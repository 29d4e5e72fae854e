package exchange

import "github.com/staymarket/listing-service/internal/entity"

// RateTable maps a currency code to a conversion factor relative to a single
// implicit base currency. An empty table means "no conversion available";
// callers treat absent entries as factor 1.
type RateTable map[string]float64

// Rate returns the factor for code, defaulting to 1 when the code is absent.
func (t RateTable) Rate(code string) float64 {
	if rate, ok := t[code]; ok {
		return rate
	}
	return 1
}

// Rebase re-expresses a USD-based rate table relative to baseCode by dividing
// every entry by the table's rate for baseCode (so baseCode itself becomes 1).
// Rebasing to USD is the identity, and rebasing an already-rebased table to
// its own base is a no-op.
func Rebase(table RateTable, baseCode string) RateTable {
	if baseCode == entity.CurrencyUSD {
		return table
	}
	base := table.Rate(baseCode)
	out := make(RateTable, len(table))
	for code, rate := range table {
		out[code] = rate / base
	}
	return out
}
