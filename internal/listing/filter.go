package listing

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/staymarket/listing-service/internal/entity"
	"github.com/staymarket/listing-service/internal/exchange"
)

const basePriceParamPrefix = "base_price"

type pricePredicate func(listingPrice, threshold float64) bool

// pricePredicates is keyed by the suffix after the final "." of a
// base_price.* query key. Unrecognized suffixes are skipped.
var pricePredicates = map[string]pricePredicate{
	"e":   func(p, t float64) bool { return p == t },
	"lt":  func(p, t float64) bool { return p < t },
	"lte": func(p, t float64) bool { return p <= t },
	"gt":  func(p, t float64) bool { return p > t },
	"gte": func(p, t float64) bool { return p >= t },
}

// Filter applies market and price predicates to listings, preserving input
// order. Price thresholds are expressed in the query currency and converted
// into each listing's own currency before comparison; currencies absent from
// the rate table fall back to factor 1 so a degraded feed never fails a
// request. Multiple price predicates compose as a logical AND.
func Filter(ctx context.Context, listings []entity.Listing, params url.Values, rates exchange.Provider) ([]entity.Listing, error) {
	if marketParam := params.Get("market"); marketParam != "" {
		wanted := make(map[string]struct{})
		for _, code := range strings.Split(marketParam, ",") {
			wanted[code] = struct{}{}
		}
		kept := make([]entity.Listing, 0, len(listings))
		for _, l := range listings {
			if _, ok := wanted[l.Market.Code]; ok {
				kept = append(kept, l)
			}
		}
		listings = kept
	}

	priceKeys := basePriceParams(params)
	if len(priceKeys) == 0 {
		return listings, nil
	}

	if params.Get("currency") == "" {
		return nil, entity.NewInvalidRequest("must include currency when querying using base price")
	}
	currency, err := validateCurrency(RawData{"currency": params.Get("currency")})
	if err != nil {
		return nil, err
	}

	// Rebasing here is idempotent for tables already expressed relative to
	// the query currency and aligns the fixed offline table.
	table := exchange.Rebase(rates.LatestRates(ctx, currency.Code), currency.Code)

	for _, key := range priceKeys {
		suffix := key[strings.LastIndex(key, ".")+1:]
		predicate, ok := pricePredicates[suffix]
		if !ok {
			continue
		}
		raw := params.Get(key)
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, entity.NewInvalidRequest("unable to parse %s=%s", key, raw)
		}
		kept := make([]entity.Listing, 0, len(listings))
		for _, l := range listings {
			converted := threshold * table.Rate(l.Currency.Code)
			if predicate(l.BasePrice, converted) {
				kept = append(kept, l)
			}
		}
		listings = kept
	}
	return listings, nil
}

// basePriceParams returns the base_price.* query keys in a stable order.
func basePriceParams(params url.Values) []string {
	var keys []string
	for key := range params {
		if strings.HasPrefix(key, basePriceParamPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
