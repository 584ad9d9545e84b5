package booking

import (
	"math/rand"
	"testing"

	"cineseat-cli/model"
)

func TestGenerateSeats_ExactCountAndUniqueIds(t *testing.T) {
	for _, total := range []int{1, 10, 42, 80, 95, 100} {
		seats := GenerateSeats(total, rand.New(rand.NewSource(1)))
		if len(seats) != total {
			t.Fatalf("requested %d seats, got %d", total, len(seats))
		}
		seen := map[string]bool{}
		for _, seat := range seats {
			if seen[seat.Id] {
				t.Fatalf("duplicate seat id %s for total %d", seat.Id, total)
			}
			seen[seat.Id] = true
		}
	}
}

func TestGenerateSeats_TierByRow(t *testing.T) {
	seats := GenerateSeats(80, rand.New(rand.NewSource(7)))

	byID := map[string]model.Seat{}
	for _, seat := range seats {
		byID[seat.Id] = seat
	}

	cases := []struct {
		id    string
		tier  model.SeatTier
		price int64
	}{
		{"A1", model.SeatTierVip, 500},
		{"B8", model.SeatTierVip, 500},
		{"C1", model.SeatTierPremium, 350},
		{"F3", model.SeatTierPremium, 350},
		{"G1", model.SeatTierRegular, 200},
		{"J8", model.SeatTierRegular, 200},
	}
	for _, tc := range cases {
		seat, ok := byID[tc.id]
		if !ok {
			t.Fatalf("seat %s missing from catalog", tc.id)
		}
		if seat.Tier != tc.tier {
			t.Fatalf("seat %s: expected tier %s, got %s", tc.id, tc.tier, seat.Tier)
		}
		if seat.Price != tc.price {
			t.Fatalf("seat %s: expected price %d, got %d", tc.id, tc.price, seat.Price)
		}
	}
}

func TestGenerateSeats_SeededSourceReproducesLayout(t *testing.T) {
	first := GenerateSeats(80, rand.New(rand.NewSource(42)))
	second := GenerateSeats(80, rand.New(rand.NewSource(42)))

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("seat %d differs between seeded runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGenerateSeats_NonPositiveCount(t *testing.T) {
	if seats := GenerateSeats(0, rand.New(rand.NewSource(1))); seats != nil {
		t.Fatalf("expected nil for zero count, got %d seats", len(seats))
	}
	if seats := GenerateSeats(-5, rand.New(rand.NewSource(1))); seats != nil {
		t.Fatalf("expected nil for negative count, got %d seats", len(seats))
	}
}
