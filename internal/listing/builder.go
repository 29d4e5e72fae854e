package listing

import (
	"strconv"

	"github.com/staymarket/listing-service/internal/entity"
)

// RawData is the decoded JSON body of a create or update request.
type RawData map[string]any

// requiredKeys are validated on create and re-validated when present on
// update. Order matters: the first missing or invalid key wins.
var requiredKeys = []string{"market", "currency", "title", "base_price"}

func validateMarket(data RawData) (entity.Market, error) {
	code, _ := data["market"].(string)
	market, err := entity.MarketByCode(code)
	if err != nil {
		return entity.Market{}, entity.NewInvalidRequest("market with code=%s does not exist", code)
	}
	return market, nil
}

func validateCurrency(data RawData) (entity.Currency, error) {
	code, _ := data["currency"].(string)
	currency, err := entity.CurrencyByCode(code)
	if err != nil {
		return entity.Currency{}, entity.NewInvalidRequest("currency with code=%s does not exist", code)
	}
	return currency, nil
}

func validateTitle(data RawData) (string, error) {
	if title, _ := data["title"].(string); title != "" {
		return title, nil
	}
	return "", entity.NewInvalidRequest("must include a title")
}

func validatePrice(data RawData) (float64, error) {
	switch v := data["base_price"].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, entity.NewInvalidRequest("unable to parse base_price=%s", v)
		}
		return price, nil
	default:
		return 0, entity.NewInvalidRequest("unable to parse base_price=%v", v)
	}
}

// NextID assigns one more than the maximum id among existing listings
// (0 if none). It is always recomputed from the current snapshot, never
// persisted as a counter; the single-writer deployment assumption covers
// concurrent creates against the same snapshot.
func NextID(existing []entity.Listing) int64 {
	var max int64
	for _, l := range existing {
		if l.ID > max {
			max = l.ID
		}
	}
	return max + 1
}

// Build converts untrusted request data into a well-formed listing with a
// freshly assigned id. Keys outside the recognized set are ignored.
func Build(data RawData, existing []entity.Listing) (entity.Listing, error) {
	if len(data) == 0 {
		return entity.Listing{}, entity.NewInvalidRequest("must include listing data")
	}
	for _, key := range requiredKeys {
		if _, ok := data[key]; !ok {
			return entity.Listing{}, entity.NewInvalidRequest("missing data key=%s", key)
		}
	}

	market, err := validateMarket(data)
	if err != nil {
		return entity.Listing{}, err
	}
	currency, err := validateCurrency(data)
	if err != nil {
		return entity.Listing{}, err
	}
	title, err := validateTitle(data)
	if err != nil {
		return entity.Listing{}, err
	}
	price, err := validatePrice(data)
	if err != nil {
		return entity.Listing{}, err
	}

	hostName, _ := data["host_name"].(string)
	return entity.Listing{
		ID:        NextID(existing),
		Title:     title,
		BasePrice: price,
		Currency:  currency,
		Market:    market,
		HostName:  hostName,
	}, nil
}

// ApplyUpdate mutates only the recognized keys present in data. Required keys
// go through the same per-field validators as on create; anything else except
// host_name is silently ignored.
func ApplyUpdate(l *entity.Listing, data RawData) error {
	if _, ok := data["market"]; ok {
		market, err := validateMarket(data)
		if err != nil {
			return err
		}
		l.Market = market
	}
	if _, ok := data["currency"]; ok {
		currency, err := validateCurrency(data)
		if err != nil {
			return err
		}
		l.Currency = currency
	}
	if _, ok := data["title"]; ok {
		title, err := validateTitle(data)
		if err != nil {
			return err
		}
		l.Title = title
	}
	if _, ok := data["base_price"]; ok {
		price, err := validatePrice(data)
		if err != nil {
			return err
		}
		l.BasePrice = price
	}
	if hostName, ok := data["host_name"].(string); ok {
		l.HostName = hostName
	}
	return nil
}
