package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/money"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1000", want: "1000"},
		{in: "10,50", want: "10.5"},
		{in: "1.234,56", want: "1234.56"},
		{in: "1,234.56", want: "1234.56"},
		{in: "1234.56", want: "1234.56"},
		{in: "1.234.567", want: "1234567"},
		{in: " R$ 99,90 ", want: "99.9"},
		{in: "0", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := money.ParseAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseAmount_Rejects(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "NaN", "Infinity", "-10", "12,3x"} {
		t.Run(in, func(t *testing.T) {
			_, err := money.ParseAmount(in)
			assert.ErrorIs(t, err, money.ErrInvalidAmount)
		})
	}
}

func TestFormat(t *testing.T) {
	got := money.Format(decimal.RequireFromString("1234.56"), "BRL")
	assert.Contains(t, got, "1.234,56")
	assert.Contains(t, got, "R$")

	assert.Equal(t, "10.00 XXX1", money.Format(decimal.NewFromInt(10), "XXX1"))
}

func TestFormat_BeyondMinorUnitRange(t *testing.T) {
	huge := decimal.RequireFromString("123456789012345678901234.5")

	assert.Equal(t, "123456789012345678901234.50 BRL", money.Format(huge, "BRL"))
	assert.Equal(t, "-123456789012345678901234.50 BRL", money.Format(huge.Neg(), "BRL"))
}

func TestFormatSigned(t *testing.T) {
	assert.Contains(t, money.FormatSigned(decimal.NewFromInt(5), "BRL"), "+")
	assert.NotContains(t, money.FormatSigned(decimal.Zero, "BRL"), "+")
}

func TestPercent(t *testing.T) {
	assert.True(t, decimal.NewFromInt(50).Equal(money.Percent(decimal.NewFromInt(50), decimal.NewFromInt(100))))
	assert.True(t, money.Percent(decimal.NewFromInt(50), decimal.Zero).IsZero())
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "+50.00%", money.FormatPercent(decimal.NewFromInt(50)))
	assert.Equal(t, "-12.35%", money.FormatPercent(decimal.RequireFromString("-12.345")))
	assert.Equal(t, "+0.00%", money.FormatPercent(decimal.Zero))
}
