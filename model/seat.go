package model

type SeatTier string

const (
	SeatTierRegular SeatTier = "regular"
	SeatTierPremium SeatTier = "premium"
	SeatTierVip     SeatTier = "vip"
)

type Seat struct {
	Id       string   `json:"id"`
	Row      string   `json:"row"`
	Number   int      `json:"number"`
	Tier     SeatTier `json:"tier"`
	Price    int64    `json:"price"`
	IsBooked bool     `json:"isBooked"`
	Selected bool     `json:"selected"`
}
