package services

import (
	"testing"
	"time"

	"github.com/bandkasse/bandkasse/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testGroup(shares ...string) *models.Group {
	group := &models.Group{ID: uuid.New(), Name: "Stammbesetzung"}
	for i, s := range shares {
		group.Members = append(group.Members, models.GroupMember{
			GroupID:    group.ID,
			MusicianID: uuid.New(),
			Percent:    decimal.RequireFromString(s),
			Position:   i,
		})
	}
	return group
}

func TestDeriveBookingTransactionsPayout(t *testing.T) {
	m1 := &models.Musician{ID: uuid.New()}
	m2 := &models.Musician{ID: uuid.New()}
	m3 := &models.Musician{ID: uuid.New()}

	booking := &models.Booking{
		ID:              uuid.New(),
		Type:            models.BookingTypePayout,
		Amount:          decimal.RequireFromString("150.00"),
		Date:            time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		PayoutMusicians: []*models.Musician{m1, m2, m3},
	}

	txns := DeriveBookingTransactions(booking)
	if len(txns) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txns))
	}
	for _, txn := range txns {
		if txn.Amount.StringFixed(2) != "-150.00" {
			t.Errorf("payout amount = %s, want -150.00", txn.Amount.StringFixed(2))
		}
		if txn.Kind != models.TransactionKindExpense {
			t.Errorf("payout kind = %s, want expense", txn.Kind)
		}
		if txn.Description != "Auszahlung" {
			t.Errorf("fallback description = %q, want %q", txn.Description, "Auszahlung")
		}
		if txn.BookingID == nil || *txn.BookingID != booking.ID {
			t.Error("transaction does not reference its booking")
		}
		if txn.ConcertID != nil {
			t.Error("payout transaction must not reference a concert")
		}
	}
}

func TestDeriveBookingTransactionsPayoutKeepsDescription(t *testing.T) {
	booking := &models.Booking{
		ID:              uuid.New(),
		Type:            models.BookingTypePayout,
		Amount:          decimal.RequireFromString("20.00"),
		Date:            time.Now(),
		Description:     "Barauszahlung Probenraum",
		PayoutMusicians: []*models.Musician{{ID: uuid.New()}},
	}

	txns := DeriveBookingTransactions(booking)
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if txns[0].Description != "Barauszahlung Probenraum" {
		t.Errorf("description = %q, want booking description", txns[0].Description)
	}
}

func TestDeriveBookingTransactionsExpense(t *testing.T) {
	group := testGroup("60", "40")
	booking := &models.Booking{
		ID:          uuid.New(),
		Type:        models.BookingTypeExpense,
		Amount:      decimal.RequireFromString("100.00"),
		Date:        time.Now(),
		Description: "Backline Miete",
		GroupID:     &group.ID,
		Group:       group,
	}

	txns := DeriveBookingTransactions(booking)
	if len(txns) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txns))
	}

	want := map[uuid.UUID]string{
		group.Members[0].MusicianID: "-60.00",
		group.Members[1].MusicianID: "-40.00",
	}
	for _, txn := range txns {
		if txn.Amount.StringFixed(2) != want[txn.MusicianID] {
			t.Errorf("amount for member = %s, want %s", txn.Amount.StringFixed(2), want[txn.MusicianID])
		}
		if txn.Kind != models.TransactionKindExpense {
			t.Errorf("kind = %s, want expense", txn.Kind)
		}
	}
}

func TestDeriveBookingTransactionsIncome(t *testing.T) {
	group := testGroup("25", "75")
	booking := &models.Booking{
		ID:      uuid.New(),
		Type:    models.BookingTypeIncome,
		Amount:  decimal.RequireFromString("200.00"),
		Date:    time.Now(),
		GroupID: &group.ID,
		Group:   group,
	}

	txns := DeriveBookingTransactions(booking)
	if len(txns) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txns))
	}

	want := map[uuid.UUID]string{
		group.Members[0].MusicianID: "50.00",
		group.Members[1].MusicianID: "150.00",
	}
	for _, txn := range txns {
		if txn.Amount.StringFixed(2) != want[txn.MusicianID] {
			t.Errorf("amount = %s, want %s", txn.Amount.StringFixed(2), want[txn.MusicianID])
		}
		if txn.Kind != models.TransactionKindEarn {
			t.Errorf("kind = %s, want earn", txn.Kind)
		}
	}
}

func TestDeriveBookingTransactionsWithoutGroup(t *testing.T) {
	booking := &models.Booking{
		ID:     uuid.New(),
		Type:   models.BookingTypeExpense,
		Amount: decimal.RequireFromString("50.00"),
		Date:   time.Now(),
	}

	if txns := DeriveBookingTransactions(booking); len(txns) != 0 {
		t.Errorf("got %d transactions for group-less booking, want 0", len(txns))
	}
}

func TestDeriveBookingTransactionsIdempotent(t *testing.T) {
	group := testGroup("50", "50")
	booking := &models.Booking{
		ID:      uuid.New(),
		Type:    models.BookingTypeIncome,
		Amount:  decimal.RequireFromString("333.33"),
		Date:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		GroupID: &group.ID,
		Group:   group,
	}

	first := DeriveBookingTransactions(booking)
	second := DeriveBookingTransactions(booking)

	if len(first) != len(second) {
		t.Fatalf("derivations differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].MusicianID != second[i].MusicianID ||
			!first[i].Amount.Equal(second[i].Amount) ||
			first[i].Kind != second[i].Kind ||
			!first[i].Date.Equal(second[i].Date) ||
			first[i].Description != second[i].Description {
			t.Errorf("derivation %d differs between runs", i)
		}
	}
}

func TestDeriveConcertTransactions(t *testing.T) {
	group := testGroup("50", "50")

	tests := []struct {
		name     string
		fee      string
		expenses []string
		group    *models.Group
		wantLen  int
		wantEach string
	}{
		{
			name:     "positive remainder is distributed",
			fee:      "500.00",
			expenses: []string{"50.00"},
			group:    group,
			wantLen:  2,
			wantEach: "225.00",
		},
		{
			name:     "zero remainder yields nothing",
			fee:      "100.00",
			expenses: []string{"100.00"},
			group:    group,
			wantLen:  0,
		},
		{
			name:     "negative remainder yields nothing",
			fee:      "100.00",
			expenses: []string{"80.00", "40.00"},
			group:    group,
			wantLen:  0,
		},
		{
			name:    "no group yields nothing",
			fee:     "500.00",
			group:   nil,
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			concert := &models.Concert{
				ID:   uuid.New(),
				Name: "Sommerfest",
				Date: time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC),
				Fee:  decimal.RequireFromString(tt.fee),
			}
			if tt.group != nil {
				concert.GroupID = &tt.group.ID
				concert.Group = tt.group
			}
			for _, e := range tt.expenses {
				concert.Expenses = append(concert.Expenses, models.ConcertExpense{
					ConcertID: concert.ID,
					Amount:    decimal.RequireFromString(e),
				})
			}

			txns := DeriveConcertTransactions(concert)
			if len(txns) != tt.wantLen {
				t.Fatalf("got %d transactions, want %d", len(txns), tt.wantLen)
			}
			for _, txn := range txns {
				if txn.Amount.StringFixed(2) != tt.wantEach {
					t.Errorf("amount = %s, want %s", txn.Amount.StringFixed(2), tt.wantEach)
				}
				if txn.Kind != models.TransactionKindEarn {
					t.Errorf("kind = %s, want earn", txn.Kind)
				}
				if txn.Description != "Gagen Verteilung: Sommerfest" {
					t.Errorf("description = %q", txn.Description)
				}
				if txn.ConcertID == nil || *txn.ConcertID != concert.ID {
					t.Error("transaction does not reference its concert")
				}
				if txn.BookingID != nil {
					t.Error("concert transaction must not reference a booking")
				}
			}
		})
	}
}
