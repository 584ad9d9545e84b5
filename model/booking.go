package model

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	// BookingCancelled is declared on the type but no flow sets it yet.
	BookingCancelled BookingStatus = "cancelled"
)

// BookingStep is the advisory stage of the linear purchase workflow.
// Screens re-check their own prerequisites; the step drives display only.
type BookingStep int

const (
	StepMovie BookingStep = iota
	StepTheater
	StepSeats
	StepPayment
	StepConfirmation
)

func (s BookingStep) String() string {
	switch s {
	case StepMovie:
		return "movie"
	case StepTheater:
		return "theater"
	case StepSeats:
		return "seats"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

type Booking struct {
	Id          string        `json:"id"`
	MovieTitle  string        `json:"movieTitle"`
	TheaterName string        `json:"theaterName"`
	Showtime    string        `json:"showtime"`
	Seats       []string      `json:"seats"`
	Total       int64         `json:"total"`
	Date        time.Time     `json:"date"`
	Status      BookingStatus `json:"status"`
}

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingState is the workflow aggregate: one instance per session,
// in memory only, reset by ClearBooking.
type BookingState struct {
	User             *User
	SelectedMovie    *Movie
	SelectedTheater  *Theater
	SelectedShowtime *Showtime
	SelectedSeats    []Seat
	Step             BookingStep
	Bookings         []Booking
}
