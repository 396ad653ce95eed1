package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCurrencyPrecision(t *testing.T) {
	amount := decimal.RequireFromString("12.3456")
	assert.Equal(t, "12.35", FormatWithCurrencyPrecision(amount, "EUR"))
	assert.Equal(t, "12", FormatWithCurrencyPrecision(amount, "jpy"))
	assert.Equal(t, "12.346", FormatWithCurrencyPrecision(amount, "TND"))
	assert.Equal(t, "-800.00", FormatWithCurrencyPrecision(decimal.NewFromInt(-800), ""))
	assert.Equal(t, "3.1", FormatWithPrecision(decimal.RequireFromString("3.14159"), 1))
}
