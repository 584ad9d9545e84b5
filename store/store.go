package store

import "cineseat-cli/model"

// Reduce applies one action to the booking state and returns the next
// state. It performs no I/O; slices are copied on write so callers can
// hold on to previous snapshots.
func Reduce(state model.BookingState, action Action) model.BookingState {
	switch a := action.(type) {
	case SelectMovie:
		movie := a.Movie
		state.SelectedMovie = &movie
		state.Step = model.StepTheater

	case SelectTheater:
		theater := a.Theater
		state.SelectedTheater = &theater

	case SelectShowtime:
		showtime := a.Showtime
		state.SelectedShowtime = &showtime
		// Seats are generated fresh per showtime; a stale selection would
		// reference the previous catalog.
		state.SelectedSeats = nil
		state.Step = model.StepSeats

	case ToggleSeat:
		if a.Seat.IsBooked {
			return state
		}
		state.SelectedSeats = toggleSeat(state.SelectedSeats, a.Seat)

	case SetBookingStep:
		state.Step = a.Step

	case ConfirmBooking:
		if state.SelectedMovie == nil || state.SelectedTheater == nil ||
			state.SelectedShowtime == nil || len(state.SelectedSeats) == 0 {
			return state
		}
		bookings := make([]model.Booking, 0, len(state.Bookings)+1)
		bookings = append(bookings, state.Bookings...)
		state.Bookings = append(bookings, a.Booking)
		state.Step = model.StepConfirmation

	case ClearBooking:
		state.SelectedMovie = nil
		state.SelectedTheater = nil
		state.SelectedShowtime = nil
		state.SelectedSeats = nil
		state.Step = model.StepMovie

	case SetUser:
		user := a.User
		state.User = &user

	case Logout:
		state.User = nil
	}
	return state
}

func toggleSeat(selected []model.Seat, seat model.Seat) []model.Seat {
	next := make([]model.Seat, 0, len(selected)+1)
	removed := false
	for _, s := range selected {
		if s.Id == seat.Id {
			removed = true
			continue
		}
		next = append(next, s)
	}
	if removed {
		return next
	}
	seat.Selected = true
	return append(next, seat)
}

// Store holds the session's BookingState and notifies subscribers after
// every dispatch. Dispatch is synchronous with a single writer by
// construction, so no locking is needed.
type Store struct {
	state       model.BookingState
	subscribers []func(model.BookingState)
}

func New() *Store {
	return &Store{}
}

func (s *Store) State() model.BookingState {
	return s.state
}

// Dispatch applies the action and notifies subscribers with the new state.
func (s *Store) Dispatch(action Action) {
	s.state = Reduce(s.state, action)
	for _, fn := range s.subscribers {
		if fn != nil {
			fn(s.state)
		}
	}
}

// Subscribe registers a change listener and returns an unsubscribe func.
func (s *Store) Subscribe(fn func(model.BookingState)) func() {
	s.subscribers = append(s.subscribers, fn)
	index := len(s.subscribers) - 1
	return func() {
		s.subscribers[index] = nil
	}
}

// IsSelected reports whether a seat id is in the current selection.
func IsSelected(state model.BookingState, seatID string) bool {
	for _, s := range state.SelectedSeats {
		if s.Id == seatID {
			return true
		}
	}
	return false
}
