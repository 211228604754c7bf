package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"minibank/internal/store"
)

// Currency names a display currency. OMR is the stored unit; everything
// else is conversion-on-display only.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencySAR Currency = "SAR"
)

// RateService owns the display-only exchange rates. Stored balances never
// change currency.
type RateService struct {
	rates *store.RateStore
	log   *slog.Logger
}

// NewRateService creates a RateService.
func NewRateService(rates *store.RateStore, log *slog.Logger) *RateService {
	return &RateService{rates: rates, log: log}
}

// Rates returns the current rates for one OMR.
func (s *RateService) Rates() store.ExchangeRates {
	return s.rates.Get()
}

// Update replaces the rates. Non-positive rates are rejected.
func (s *RateService) Update(usd, eur, sar decimal.Decimal) error {
	if usd.LessThanOrEqual(decimal.Zero) || eur.LessThanOrEqual(decimal.Zero) || sar.LessThanOrEqual(decimal.Zero) {
		return &ServiceError{Code: ErrCodeInvalidAmount, Message: "rates must be positive"}
	}
	if err := s.rates.Set(store.ExchangeRates{USD: usd, EUR: eur, SAR: sar}); err != nil {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to save exchange rates", Err: err}
	}
	s.log.Info("exchange rates updated", "usd", usd.String(), "eur", eur.String(), "sar", sar.String())
	return nil
}

// Convert returns amount (in OMR) expressed in the given currency, rounded
// to 2 places.
func (s *RateService) Convert(amount decimal.Decimal, currency Currency) (decimal.Decimal, error) {
	rates := s.rates.Get()
	var rate decimal.Decimal
	switch currency {
	case CurrencyUSD:
		rate = rates.USD
	case CurrencyEUR:
		rate = rates.EUR
	case CurrencySAR:
		rate = rates.SAR
	default:
		return decimal.Zero, &ServiceError{Code: ErrCodeInternalError, Message: "unknown currency"}
	}
	return amount.Mul(rate).Round(2), nil
}
