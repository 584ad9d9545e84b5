package booking

import (
	"github.com/shopspring/decimal"

	"cineseat-cli/model"
)

var (
	convenienceFeeRate = decimal.RequireFromString("0.02")
	taxRate            = decimal.RequireFromString("0.18")
)

// Quote is the priced breakdown of a seat selection. Amounts are whole
// currency units; fee and tax round half-up.
type Quote struct {
	Subtotal       int64
	ConvenienceFee int64
	Taxes          int64
	Total          int64
}

// PriceSeats derives the quote from the selected seats' prices:
// fee = round(subtotal*0.02), taxes = round((subtotal+fee)*0.18).
func PriceSeats(seats []model.Seat) Quote {
	var subtotal int64
	for _, seat := range seats {
		subtotal += seat.Price
	}

	fee := decimal.NewFromInt(subtotal).Mul(convenienceFeeRate).Round(0).IntPart()
	taxes := decimal.NewFromInt(subtotal + fee).Mul(taxRate).Round(0).IntPart()

	return Quote{
		Subtotal:       subtotal,
		ConvenienceFee: fee,
		Taxes:          taxes,
		Total:          subtotal + fee + taxes,
	}
}
