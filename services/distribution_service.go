package services

import (
	"errors"
	"fmt"

	"github.com/bandkasse/bandkasse/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// shareTolerance is the accepted deviation of a group's percent sum
	// from 100.00.
	shareTolerance = decimal.NewFromFloat(0.001)
)

var ErrInvalidShares = errors.New("group shares must sum to 100.00")

// MemberAmount is one musician's signed share of a distributed amount.
type MemberAmount struct {
	MusicianID uuid.UUID
	Amount     decimal.Decimal
}

// Distribute splits amount across the group members by their percent
// shares. Each share is rounded to 2 decimal places independently; the
// rounding remainder is NOT redistributed, so the parts may differ from the
// whole by up to one cent per member. Negative signs (expense, payout) are
// applied by passing a negative amount.
func Distribute(amount decimal.Decimal, members []models.GroupMember) []MemberAmount {
	result := make([]MemberAmount, 0, len(members))
	for _, m := range members {
		share := amount.Mul(m.Percent).Div(hundred).Round(2)
		result = append(result, MemberAmount{MusicianID: m.MusicianID, Amount: share})
	}
	return result
}

// EvenSplit divides 100 percent over n members. Every share is 100/n
// rounded to 2 decimals; the leftover remainder goes entirely to the first
// share so the result always sums to exactly 100.00.
func EvenSplit(n int) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, errors.New("cannot split across zero members")
	}

	each := hundred.Div(decimal.NewFromInt(int64(n))).Round(2)
	shares := make([]decimal.Decimal, n)
	sum := decimal.Zero
	for i := range shares {
		shares[i] = each
		sum = sum.Add(each)
	}
	shares[0] = shares[0].Add(hundred.Sub(sum))
	return shares, nil
}

// ValidateShares enforces the group invariant: the percent shares of all
// members sum to 100.00 within tolerance.
func ValidateShares(members []models.GroupMember) error {
	sum := decimal.Zero
	for _, m := range members {
		sum = sum.Add(m.Percent)
	}
	if sum.Sub(hundred).Abs().GreaterThan(shareTolerance) {
		return fmt.Errorf("%w (got %s)", ErrInvalidShares, sum.String())
	}
	return nil
}
