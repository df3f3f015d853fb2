package utils

import "github.com/shopspring/decimal"

// FormatAmount formats a monetary amount with the given symbol and a fixed
// two decimal places, e.g. FormatAmount(12.3456, "$") returns "$12.35".
func FormatAmount(amount decimal.Decimal, symbol string) string {
	return symbol + amount.StringFixed(2)
}

// FormatSigned renders income as "+amount" and anything else as "-amount",
// matching how the feed displays money movements.
func FormatSigned(amount decimal.Decimal, symbol string, isIncome bool) string {
	if isIncome {
		return "+" + FormatAmount(amount, symbol)
	}
	return "-" + FormatAmount(amount, symbol)
}
