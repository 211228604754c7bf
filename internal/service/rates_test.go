package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/store"
)

func newRateService(t *testing.T) *RateService {
	t.Helper()
	rates, err := store.NewRateStore(t.TempDir())
	require.NoError(t, err)
	return NewRateService(rates, discardLogger())
}

func TestRateService_Defaults(t *testing.T) {
	svc := newRateService(t)
	rates := svc.Rates()
	assert.True(t, rates.USD.Equal(decimal.RequireFromString("2.60")))
	assert.True(t, rates.EUR.Equal(decimal.RequireFromString("2.45")))
	assert.True(t, rates.SAR.Equal(decimal.RequireFromString("9.75")))
}

func TestRateService_Convert(t *testing.T) {
	svc := newRateService(t)

	usd, err := svc.Convert(decimal.NewFromInt(100), CurrencyUSD)
	require.NoError(t, err)
	assert.True(t, usd.Equal(decimal.NewFromInt(260)))

	sar, err := svc.Convert(decimal.RequireFromString("10.50"), CurrencySAR)
	require.NoError(t, err)
	assert.True(t, sar.Equal(decimal.RequireFromString("102.38")))

	_, err = svc.Convert(decimal.NewFromInt(1), Currency("GBP"))
	requireCode(t, err, ErrCodeInternalError)
}

func TestRateService_Update(t *testing.T) {
	svc := newRateService(t)

	err := svc.Update(decimal.NewFromInt(3), decimal.Zero, decimal.NewFromInt(10))
	requireCode(t, err, ErrCodeInvalidAmount)

	require.NoError(t, svc.Update(
		decimal.RequireFromString("2.70"),
		decimal.RequireFromString("2.50"),
		decimal.NewFromInt(10)))
	assert.True(t, svc.Rates().USD.Equal(decimal.RequireFromString("2.70")))

	usd, err := svc.Convert(decimal.NewFromInt(100), CurrencyUSD)
	require.NoError(t, err)
	assert.True(t, usd.Equal(decimal.NewFromInt(270)))
}
