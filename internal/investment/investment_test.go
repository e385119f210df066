package investment_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/carteira/internal/investment"
)

func TestInvestment_Gain(t *testing.T) {
	type testCase struct {
		name        string
		amount      string
		current     string
		wantGain    string
		wantPercent string
	}

	tests := []testCase{
		{name: "Profit", amount: "100", current: "150", wantGain: "50", wantPercent: "50"},
		{name: "Loss", amount: "200", current: "150", wantGain: "-50", wantPercent: "-25"},
		{name: "NothingInvested", amount: "0", current: "50", wantGain: "50", wantPercent: "0"},
		{name: "Flat", amount: "80", current: "80", wantGain: "0", wantPercent: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &investment.Investment{
				Amount:       decimal.RequireFromString(tt.amount),
				CurrentValue: decimal.RequireFromString(tt.current),
			}

			assert.True(t, decimal.RequireFromString(tt.wantGain).Equal(inv.Gain()), "gain %s", inv.Gain())
			assert.True(t, decimal.RequireFromString(tt.wantPercent).Equal(inv.GainPercent()), "percent %s", inv.GainPercent())
		})
	}
}
