package services

import (
	"testing"

	"github.com/bandkasse/bandkasse/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func member(id uuid.UUID, percent string) models.GroupMember {
	return models.GroupMember{MusicianID: id, Percent: decimal.RequireFromString(percent)}
}

func TestDistribute(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	tests := []struct {
		name    string
		amount  string
		members []models.GroupMember
		want    map[uuid.UUID]string
	}{
		{
			name:    "60/40 expense",
			amount:  "-100.00",
			members: []models.GroupMember{member(a, "60"), member(b, "40")},
			want:    map[uuid.UUID]string{a: "-60.00", b: "-40.00"},
		},
		{
			name:    "50/50 concert remainder",
			amount:  "450.00",
			members: []models.GroupMember{member(a, "50"), member(b, "50")},
			want:    map[uuid.UUID]string{a: "225.00", b: "225.00"},
		},
		{
			name:    "uneven thirds round independently",
			amount:  "100.00",
			members: []models.GroupMember{member(a, "33.33"), member(b, "33.33"), member(c, "33.34")},
			want:    map[uuid.UUID]string{a: "33.33", b: "33.33", c: "33.34"},
		},
		{
			name:    "rounding remainder is not redistributed",
			amount:  "0.01",
			members: []models.GroupMember{member(a, "50"), member(b, "50")},
			// Half a cent rounds to one cent for both members; the sum
			// exceeds the input. That behavior is deliberate.
			want: map[uuid.UUID]string{a: "0.01", b: "0.01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distribute(decimal.RequireFromString(tt.amount), tt.members)
			if len(got) != len(tt.members) {
				t.Fatalf("got %d shares, want %d", len(got), len(tt.members))
			}
			for _, share := range got {
				want := tt.want[share.MusicianID]
				if share.Amount.StringFixed(2) != want {
					t.Errorf("share for %s = %s, want %s", share.MusicianID, share.Amount.StringFixed(2), want)
				}
			}
		})
	}
}

func TestDistributePreservesMemberOrder(t *testing.T) {
	members := []models.GroupMember{
		member(uuid.New(), "25"),
		member(uuid.New(), "25"),
		member(uuid.New(), "50"),
	}
	got := Distribute(decimal.RequireFromString("80.00"), members)
	for i, share := range got {
		if share.MusicianID != members[i].MusicianID {
			t.Errorf("share %d belongs to %s, want %s", i, share.MusicianID, members[i].MusicianID)
		}
	}
}

func TestEvenSplit(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
		first   string
		rest    string
	}{
		{name: "two members", n: 2, first: "50", rest: "50"},
		{name: "three members, remainder on first", n: 3, first: "33.34", rest: "33.33"},
		{name: "six members", n: 6, first: "16.65", rest: "16.67"},
		{name: "seven members", n: 7, first: "14.26", rest: "14.29"},
		{name: "zero members", n: 0, wantErr: true},
		{name: "negative members", n: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := EvenSplit(tt.n)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			sum := decimal.Zero
			for i, s := range shares {
				sum = sum.Add(s)
				want := tt.rest
				if i == 0 {
					want = tt.first
				}
				if !s.Equal(decimal.RequireFromString(want)) {
					t.Errorf("share %d = %s, want %s", i, s.String(), want)
				}
			}
			if !sum.Equal(decimal.NewFromInt(100)) {
				t.Errorf("shares sum to %s, want exactly 100", sum.String())
			}
		})
	}
}

func TestEvenSplitAlwaysSumsToHundred(t *testing.T) {
	for n := 1; n <= 40; n++ {
		shares, err := EvenSplit(n)
		if err != nil {
			t.Fatalf("EvenSplit(%d): %v", n, err)
		}
		sum := decimal.Zero
		for _, s := range shares {
			sum = sum.Add(s)
		}
		if !sum.Equal(decimal.NewFromInt(100)) {
			t.Errorf("EvenSplit(%d) sums to %s, want exactly 100", n, sum.String())
		}
	}
}

func TestValidateShares(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	tests := []struct {
		name    string
		members []models.GroupMember
		wantErr bool
	}{
		{name: "exact hundred", members: []models.GroupMember{member(a, "60"), member(b, "40")}},
		{name: "within tolerance", members: []models.GroupMember{member(a, "60.0005"), member(b, "40")}},
		{name: "above tolerance", members: []models.GroupMember{member(a, "60.01"), member(b, "40")}, wantErr: true},
		{name: "short of hundred", members: []models.GroupMember{member(a, "50"), member(b, "40")}, wantErr: true},
		{name: "empty group", members: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShares(tt.members)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateShares() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
