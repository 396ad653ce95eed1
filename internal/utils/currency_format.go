package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for accounts created without a currency code.
const DefaultCurrency = "EUR"

// minor units per ISO 4217 code; anything not listed uses 2
var currencyPrecision = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"XOF": 0,
	"XPF": 0,
	"TND": 3,
	"KWD": 3,
	"BHD": 3,
}

// PrecisionOf returns the number of decimal places of a currency.
func PrecisionOf(currencyCode string) int32 {
	if p, ok := currencyPrecision[strings.ToUpper(currencyCode)]; ok {
		return p
	}
	return 2
}

// FormatWithCurrencyPrecision formats an amount with the precision of a currency
// Example: amount 12.3456 with EUR returns "12.35"
// Example: amount 12.3456 with JPY returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currencyCode string) string {
	return amount.StringFixed(PrecisionOf(currencyCode))
}

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
