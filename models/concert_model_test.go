package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestConcertRemainder(t *testing.T) {
	tests := []struct {
		name     string
		fee      string
		expenses []string
		want     string
	}{
		{name: "no expenses", fee: "500.00", want: "500.00"},
		{name: "fee minus expenses", fee: "500.00", expenses: []string{"50.00", "120.00"}, want: "330.00"},
		{name: "expenses exceed fee", fee: "100.00", expenses: []string{"150.00"}, want: "-50.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			concert := Concert{Fee: decimal.RequireFromString(tt.fee)}
			for _, e := range tt.expenses {
				concert.Expenses = append(concert.Expenses, ConcertExpense{Amount: decimal.RequireFromString(e)})
			}
			if got := concert.Remainder(); got.StringFixed(2) != tt.want {
				t.Errorf("Remainder() = %s, want %s", got.StringFixed(2), tt.want)
			}
		})
	}
}

func TestPayoutRequestPending(t *testing.T) {
	for _, status := range []string{PayoutStatusApproved, PayoutStatusRejected} {
		request := PayoutRequest{Status: status}
		if request.Pending() {
			t.Errorf("request with status %q must not be pending", status)
		}
	}
	if !(&PayoutRequest{Status: PayoutStatusPending}).Pending() {
		t.Error("pending request reported as processed")
	}
}
