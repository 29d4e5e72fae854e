package entity

import "fmt"

// Currency codes supported by the catalog.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyJPY = "JPY"
	CurrencyILS = "ILS"
	CurrencyAUD = "AUD"
)

type Currency struct {
	Code   string `json:"code" bson:"code"`
	Name   string `json:"name" bson:"name"`
	Symbol string `json:"symbol" bson:"symbol"`
}

// currencies is the fixed catalog, in declared order. Extending it means
// adding an entry here, nothing else.
var currencies = []Currency{
	{Code: CurrencyUSD, Name: "United States Dollar", Symbol: "$"},
	{Code: CurrencyEUR, Name: "Euro", Symbol: "€"},
	{Code: CurrencyJPY, Name: "Japanese Yen", Symbol: "¥"},
	{Code: CurrencyILS, Name: "Israeli shekel", Symbol: "₪"},
	{Code: CurrencyAUD, Name: "Australian Dollar", Symbol: "A$"},
}

var currencyByCode = func() map[string]Currency {
	idx := make(map[string]Currency, len(currencies))
	for _, c := range currencies {
		idx[c.Code] = c
	}
	return idx
}()

// Currencies returns the full catalog in declared order.
func Currencies() []Currency {
	return currencies
}

// CurrencyCodes returns the catalog codes in declared order.
func CurrencyCodes() []string {
	codes := make([]string, 0, len(currencies))
	for _, c := range currencies {
		codes = append(codes, c.Code)
	}
	return codes
}

// CurrencyByCode looks up a currency by its code.
func CurrencyByCode(code string) (Currency, error) {
	if c, ok := currencyByCode[code]; ok {
		return c, nil
	}
	return Currency{}, fmt.Errorf("currency with code=%s does not exist: %w", code, ErrCurrencyNotFound)
}
