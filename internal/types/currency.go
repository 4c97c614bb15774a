package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CURRENCY_CODES_SYMBOLS is a map of 3 digit ISO currency codes to their symbols
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"gbp": "£",
	"usd": "$",
	"eur": "€",
}

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the code itself
func GetCurrencySymbol(code string) string {
	if symbol, ok := CURRENCY_CODES_SYMBOLS[code]; ok {
		return symbol
	}
	return code
}

// RoundAmount rounds a monetary amount to 2 decimal places. All customer
// facing totals go through this exact rounding.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FormatAmount formats an amount for display, ex £45.18
func FormatAmount(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s%s", GetCurrencySymbol(currency), amount.StringFixed(2))
}
