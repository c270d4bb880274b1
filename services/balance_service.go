package services

import (
	"time"

	"github.com/bandkasse/bandkasse/models"
	"github.com/shopspring/decimal"
)

// CurrentBalance folds a musician's transactions onto their base balance.
// Amounts are stored signed, so this is a plain sum with no sign handling.
func CurrentBalance(base decimal.Decimal, txns []models.Transaction) decimal.Decimal {
	balance := base
	for _, t := range txns {
		balance = balance.Add(t.Amount)
	}
	return balance
}

// RangeBalance is the statement view of a ledger slice: the balance before
// the range, the net movement inside it, and the balance after it.
type RangeBalance struct {
	Opening decimal.Decimal
	Net     decimal.Decimal
	Closing decimal.Decimal
}

// EndOfDay extends a range end to the last instant of its calendar day so
// that "to" dates are inclusive.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// BalanceInRange computes the statement balances for [from, to], with "to"
// covering its entire calendar day. Transactions outside the range only
// contribute to the opening balance when they predate it.
func BalanceInRange(base decimal.Decimal, txns []models.Transaction, from, to time.Time) RangeBalance {
	end := EndOfDay(to)

	opening := base
	net := decimal.Zero
	for _, t := range txns {
		switch {
		case t.Date.Before(from):
			opening = opening.Add(t.Amount)
		case !t.Date.After(end):
			net = net.Add(t.Amount)
		}
	}

	return RangeBalance{
		Opening: opening,
		Net:     net,
		Closing: opening.Add(net),
	}
}
