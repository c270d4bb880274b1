package services

import (
	"testing"
	"time"

	"github.com/bandkasse/bandkasse/models"
	"github.com/shopspring/decimal"
)

func txn(amount string, date time.Time) models.Transaction {
	return models.Transaction{Amount: decimal.RequireFromString(amount), Date: date}
}

func TestCurrentBalance(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		base string
		txns []models.Transaction
		want string
	}{
		{
			name: "empty ledger returns base balance",
			base: "42.50",
			want: "42.50",
		},
		{
			name: "mixed earn and expense",
			base: "100.00",
			txns: []models.Transaction{
				txn("225.00", now),
				txn("-60.00", now),
				txn("-40.00", now),
			},
			want: "225.00",
		},
		{
			name: "negative balance is possible",
			base: "0.00",
			txns: []models.Transaction{txn("-10.50", now)},
			want: "-10.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentBalance(decimal.RequireFromString(tt.base), tt.txns)
			if got.StringFixed(2) != tt.want {
				t.Errorf("CurrentBalance() = %s, want %s", got.StringFixed(2), tt.want)
			}
		})
	}
}

func TestCurrentBalanceOrderIndependent(t *testing.T) {
	now := time.Now()
	forward := []models.Transaction{txn("10.00", now), txn("-3.00", now), txn("7.50", now)}
	backward := []models.Transaction{txn("7.50", now), txn("-3.00", now), txn("10.00", now)}

	base := decimal.RequireFromString("5.00")
	if !CurrentBalance(base, forward).Equal(CurrentBalance(base, backward)) {
		t.Error("balance depends on transaction order")
	}
}

func TestBalanceInRange(t *testing.T) {
	base := decimal.RequireFromString("100.00")
	txns := []models.Transaction{
		txn("50.00", time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)),
		txn("-20.00", time.Date(2025, 2, 3, 9, 30, 0, 0, time.UTC)),
		txn("80.00", time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC)),
		txn("10.00", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	}

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	got := BalanceInRange(base, txns, from, to)

	if got.Opening.StringFixed(2) != "150.00" {
		t.Errorf("opening = %s, want 150.00", got.Opening.StringFixed(2))
	}
	// The transaction late on Feb 28 still falls inside the range: "to"
	// covers the whole calendar day.
	if got.Net.StringFixed(2) != "60.00" {
		t.Errorf("net = %s, want 60.00", got.Net.StringFixed(2))
	}
	if got.Closing.StringFixed(2) != "210.00" {
		t.Errorf("closing = %s, want 210.00", got.Closing.StringFixed(2))
	}
}

func TestBalanceInRangeEmptyRange(t *testing.T) {
	base := decimal.RequireFromString("25.00")
	txns := []models.Transaction{
		txn("10.00", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	got := BalanceInRange(base, txns, from, to)
	if got.Opening.StringFixed(2) != "35.00" {
		t.Errorf("opening = %s, want 35.00", got.Opening.StringFixed(2))
	}
	if !got.Net.IsZero() {
		t.Errorf("net = %s, want 0", got.Net.String())
	}
	if got.Closing.StringFixed(2) != "35.00" {
		t.Errorf("closing = %s, want 35.00", got.Closing.StringFixed(2))
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2025, 4, 17, 8, 45, 12, 0, time.UTC)
	got := EndOfDay(in)

	if got.Day() != 17 || got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 {
		t.Errorf("EndOfDay() = %v, want last instant of April 17", got)
	}
	if !got.After(in) {
		t.Error("EndOfDay() must not precede its input")
	}
	if got.Month() != time.April {
		t.Errorf("EndOfDay() changed the month: %v", got)
	}
}
