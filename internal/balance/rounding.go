package balance

import "github.com/shopspring/decimal"

// RoundToNearest rounds d to the given number of decimal places. A digit of
// exactly 5 after the rounding position rounds up, never to even. All
// user-visible quantities go through this helper.
func RoundToNearest(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}
