package store

import (
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
)

// ExchangeRates holds the display-only conversion rates for one OMR.
// Stored balances are never converted.
type ExchangeRates struct {
	USD decimal.Decimal
	EUR decimal.Decimal
	SAR decimal.Decimal
}

// RateStore persists the exchange rates as a three-line file: USD, EUR,
// SAR.
type RateStore struct {
	mu    sync.RWMutex
	rates ExchangeRates
	path  string
}

func defaultRates() ExchangeRates {
	return ExchangeRates{
		USD: decimal.NewFromFloat(2.60),
		EUR: decimal.NewFromFloat(2.45),
		SAR: decimal.NewFromFloat(9.75),
	}
}

// NewRateStore loads exchange_rates.txt from dir, falling back to the
// built-in defaults when the file is missing or short.
func NewRateStore(dir string) (*RateStore, error) {
	s := &RateStore{
		rates: defaultRates(),
		path:  filepath.Join(dir, exchangeRatesFile),
	}
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}
	if len(lines) >= 3 {
		if usd, err := decimal.NewFromString(lines[0]); err == nil {
			s.rates.USD = usd
		}
		if eur, err := decimal.NewFromString(lines[1]); err == nil {
			s.rates.EUR = eur
		}
		if sar, err := decimal.NewFromString(lines[2]); err == nil {
			s.rates.SAR = sar
		}
	}
	return s, nil
}

// Get returns the current rates.
func (s *RateStore) Get() ExchangeRates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rates
}

// reset restores the default rates. Only the wipe path calls it.
func (s *RateStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = defaultRates()
}

// Set replaces the rates and flushes.
func (s *RateStore) Set(rates ExchangeRates) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = rates
	return writeLines(s.path, []string{
		rates.USD.String(),
		rates.EUR.String(),
		rates.SAR.String(),
	})
}
