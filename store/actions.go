package store

import "cineseat-cli/model"

// Action is the closed set of booking state transitions. Each variant
// carries its own payload and is handled exhaustively by Reduce.
type Action interface {
	isAction()
}

type SelectMovie struct {
	Movie model.Movie
}

type SelectTheater struct {
	Theater model.Theater
}

type SelectShowtime struct {
	Showtime model.Showtime
}

type ToggleSeat struct {
	Seat model.Seat
}

type SetBookingStep struct {
	Step model.BookingStep
}

type ConfirmBooking struct {
	Booking model.Booking
}

type ClearBooking struct{}

type SetUser struct {
	User model.User
}

type Logout struct{}

func (SelectMovie) isAction()    {}
func (SelectTheater) isAction()  {}
func (SelectShowtime) isAction() {}
func (ToggleSeat) isAction()     {}
func (SetBookingStep) isAction() {}
func (ConfirmBooking) isAction() {}
func (ClearBooking) isAction()   {}
func (SetUser) isAction()        {}
func (Logout) isAction()         {}
