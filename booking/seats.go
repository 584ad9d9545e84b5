package booking

import (
	"fmt"
	"math/rand"

	"cineseat-cli/model"
)

const (
	rowLetters        = "ABCDEFGHIJ"
	vipRows           = 2
	premiumRows       = 4
	bookedProbability = 0.30
)

// TierPrice is the flat price assigned to a tier at generation time.
// Seat prices are never recomputed afterwards.
func TierPrice(tier model.SeatTier) int64 {
	switch tier {
	case model.SeatTierVip:
		return 500
	case model.SeatTierPremium:
		return 350
	default:
		return 200
	}
}

func rowTier(rowIndex int) model.SeatTier {
	switch {
	case rowIndex < vipRows:
		return model.SeatTierVip
	case rowIndex < vipRows+premiumRows:
		return model.SeatTierPremium
	default:
		return model.SeatTierRegular
	}
}

// GenerateSeats produces a seat catalog of exactly total seats spread
// evenly across rows A-J. The booked flag simulates occupancy using the
// supplied source, so a seeded rng reproduces the exact layout.
func GenerateSeats(total int, rng *rand.Rand) []model.Seat {
	if total <= 0 {
		return nil
	}

	rows := len(rowLetters)
	perRow := (total + rows - 1) / rows

	seats := make([]model.Seat, 0, rows*perRow)
	for rowIndex := 0; rowIndex < rows; rowIndex++ {
		row := string(rowLetters[rowIndex])
		tier := rowTier(rowIndex)
		price := TierPrice(tier)
		for number := 1; number <= perRow; number++ {
			seats = append(seats, model.Seat{
				Id:       fmt.Sprintf("%s%d", row, number),
				Row:      row,
				Number:   number,
				Tier:     tier,
				Price:    price,
				IsBooked: rng.Float64() < bookedProbability,
			})
		}
	}

	if len(seats) > total {
		seats = seats[:total]
	}
	return seats
}
