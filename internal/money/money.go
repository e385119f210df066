// Package money parses user-entered amounts and formats amounts for display.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var (
	hundred = decimal.NewFromInt(100)

	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// ParseAmount reads a non-negative amount typed into a form. Both
// "1.234,56" and "1234.56" are accepted. Anything that is not a finite
// non-negative number is rejected with ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.ReplaceAll(strings.TrimSpace(clean), " ", "")

	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: value is required", ErrInvalidAmount)
	}

	clean = normalizeSeparators(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}

	return d, nil
}

// normalizeSeparators turns the last of "." or "," into the decimal point and
// drops the other as a thousands separator.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	case lastDot >= 0 && lastComma >= 0:
		return strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}

	return s
}

// Format renders an amount in the given ISO currency, e.g. "R$1.234,56".
// Unknown currency codes, and amounts too large to count in minor units,
// fall back to the plain decimal followed by the code.
func Format(d decimal.Decimal, currency string) string {
	cur := gomoney.GetCurrency(currency)
	if cur == nil {
		return d.StringFixed(2) + " " + currency
	}

	minor := d.Shift(int32(cur.Fraction)).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return d.StringFixed(int32(cur.Fraction)) + " " + cur.Code
	}

	return gomoney.New(minor.IntPart(), cur.Code).Display()
}

// FormatSigned is Format with an explicit "+" for positive amounts.
func FormatSigned(d decimal.Decimal, currency string) string {
	if d.IsPositive() {
		return "+" + Format(d, currency)
	}

	return Format(d, currency)
}

// Percent returns part/whole×100, or zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}

	return part.Div(whole).Mul(hundred)
}

// FormatPercent renders a percentage with two decimals and a sign.
func FormatPercent(p decimal.Decimal) string {
	s := p.StringFixed(2) + "%"
	if !p.IsNegative() {
		s = "+" + s
	}

	return s
}
