package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/netly-app/netly/internal/model"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
	"github.com/netly-app/netly/internal/repo"
)

// CurrencyService converts user amounts into the reporting currency. The
// per-user rate table is cached briefly; writes through the configuration
// service invalidate the entry.
type CurrencyService struct {
	rates *repo.CurrencyRateRepo
	cache *expirable.LRU[string, map[string]decimal.Decimal]
}

func NewCurrencyService(rates *repo.CurrencyRateRepo) *CurrencyService {
	return &CurrencyService{
		rates: rates,
		cache: expirable.NewLRU[string, map[string]decimal.Decimal](1024, nil, time.Minute),
	}
}

// RatesFor returns the user's active conversion rates keyed by upper-cased
// currency code. The reporting currency is always present with rate 1.
func (s *CurrencyService) RatesFor(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	if rates, ok := s.cache.Get(userID); ok {
		return rates, nil
	}
	rows, err := s.rates.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rates := make(map[string]decimal.Decimal, len(rows)+1)
	rates[model.ReportingCurrency] = decimal.NewFromInt(1)
	for _, row := range rows {
		rates[strings.ToUpper(row.CurrencyCode)] = row.RateToINR
	}
	s.cache.Add(userID, rates)
	return rates, nil
}

// Invalidate drops the cached rate table after a configuration change.
func (s *CurrencyService) Invalidate(userID string) {
	s.cache.Remove(userID)
}

// Convert turns an amount in the given currency into the reporting
// currency. An empty or matching code passes through unchanged; a code
// with no configured rate is an input error naming the code.
func (s *CurrencyService) Convert(amount decimal.Decimal, currency string, rates map[string]decimal.Decimal) (decimal.Decimal, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" || code == model.ReportingCurrency {
		return amount, nil
	}
	rate, ok := rates[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no conversion rate configured for %s", appErr.ErrInvalid, code)
	}
	return amount.Mul(rate), nil
}
