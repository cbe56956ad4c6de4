package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the only place where currency rounding happens.
const DisplayPlaces = 2

var (
	ErrEmptyAmount    = errors.New("amount is empty")
	ErrInvalidAmount  = errors.New("amount is not a number")
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// ParseAmount parses operator input such as "10", "10.5" or "10,50".
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

// Format renders an amount for display, e.g. "$8.00".
func Format(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(DisplayPlaces)
}

