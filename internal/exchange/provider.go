package exchange

import (
	"context"

	"github.com/staymarket/listing-service/internal/entity"
)

// Provider yields the latest conversion rates expressed relative to baseCode.
// Upstream failures degrade to an empty table rather than an error: rate
// availability is best-effort and must never fail a request (see RateTable).
type Provider interface {
	LatestRates(ctx context.Context, baseCode string) RateTable
}

// StaticProvider returns a fixed rate table without any outbound call. It is
// used outside production mode so tests stay deterministic and networkless.
type StaticProvider struct{}

func (StaticProvider) LatestRates(_ context.Context, _ string) RateTable {
	return RateTable{
		entity.CurrencyUSD: 1,
		entity.CurrencyEUR: 0.94,
	}
}
