package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cineseat-cli/model"
)

func sampleMovie() model.Movie {
	return model.Movie{Id: "m1", Title: "Starling"}
}

func sampleTheater() model.Theater {
	return model.Theater{Id: "t1", Name: "Grand Orpheum"}
}

func sampleShowtime() model.Showtime {
	return model.Showtime{Id: "s1", Time: "18:45", Format: "IMAX", Price: 260}
}

func seat(id string, price int64, booked bool) model.Seat {
	return model.Seat{Id: id, Row: id[:1], Price: price, IsBooked: booked}
}

func fullSelection() model.BookingState {
	state := model.BookingState{}
	state = Reduce(state, SelectMovie{Movie: sampleMovie()})
	state = Reduce(state, SelectTheater{Theater: sampleTheater()})
	state = Reduce(state, SelectShowtime{Showtime: sampleShowtime()})
	state = Reduce(state, ToggleSeat{Seat: seat("A1", 500, false)})
	return state
}

func TestSelectMovieAlwaysResetsStepToTheater(t *testing.T) {
	priors := []model.BookingStep{
		model.StepMovie,
		model.StepSeats,
		model.StepPayment,
		model.StepConfirmation,
	}
	for _, prior := range priors {
		state := model.BookingState{Step: prior}
		next := Reduce(state, SelectMovie{Movie: sampleMovie()})
		assert.Equal(t, model.StepTheater, next.Step, "prior step %s", prior)
		require.NotNil(t, next.SelectedMovie)
		assert.Equal(t, "Starling", next.SelectedMovie.Title)
	}
}

func TestSelectShowtimeResetsSeatsAndStep(t *testing.T) {
	state := fullSelection()
	require.Len(t, state.SelectedSeats, 1)

	next := Reduce(state, SelectShowtime{Showtime: model.Showtime{Id: "s2", Time: "21:30"}})
	assert.Equal(t, model.StepSeats, next.Step)
	assert.Empty(t, next.SelectedSeats)
	require.NotNil(t, next.SelectedShowtime)
	assert.Equal(t, "s2", next.SelectedShowtime.Id)
}

func TestToggleSeatPairRestoresSelection(t *testing.T) {
	state := model.BookingState{}
	state = Reduce(state, ToggleSeat{Seat: seat("A1", 500, false)})
	state = Reduce(state, ToggleSeat{Seat: seat("F3", 350, false)})
	require.Len(t, state.SelectedSeats, 2)

	state = Reduce(state, ToggleSeat{Seat: seat("F3", 350, false)})
	state = Reduce(state, ToggleSeat{Seat: seat("F3", 350, false)})

	require.Len(t, state.SelectedSeats, 2)
	assert.Equal(t, "A1", state.SelectedSeats[0].Id)
	assert.Equal(t, "F3", state.SelectedSeats[1].Id)
}

func TestToggleSeatNeverDuplicates(t *testing.T) {
	state := model.BookingState{}
	for i := 0; i < 5; i++ {
		state = Reduce(state, ToggleSeat{Seat: seat("A1", 500, false)})
	}
	// odd number of toggles ends selected, exactly once
	require.Len(t, state.SelectedSeats, 1)
	assert.True(t, state.SelectedSeats[0].Selected)
}

func TestToggleSeatIgnoresBookedSeat(t *testing.T) {
	state := fullSelection()
	next := Reduce(state, ToggleSeat{Seat: seat("B2", 500, true)})
	assert.Equal(t, state.SelectedSeats, next.SelectedSeats)
}

func TestConfirmBookingRequiresFullSelection(t *testing.T) {
	record := model.Booking{Id: "BK-1"}

	missing := map[string]model.BookingState{
		"movie":    {SelectedTheater: &model.Theater{}, SelectedShowtime: &model.Showtime{}, SelectedSeats: []model.Seat{seat("A1", 500, false)}},
		"theater":  {SelectedMovie: &model.Movie{}, SelectedShowtime: &model.Showtime{}, SelectedSeats: []model.Seat{seat("A1", 500, false)}},
		"showtime": {SelectedMovie: &model.Movie{}, SelectedTheater: &model.Theater{}, SelectedSeats: []model.Seat{seat("A1", 500, false)}},
		"seats":    {SelectedMovie: &model.Movie{}, SelectedTheater: &model.Theater{}, SelectedShowtime: &model.Showtime{}},
	}
	for name, state := range missing {
		next := Reduce(state, ConfirmBooking{Booking: record})
		assert.Empty(t, next.Bookings, "missing %s should block confirmation", name)
		assert.Equal(t, state.Step, next.Step, "missing %s should not advance step", name)
	}
}

func TestConfirmBookingAppendsAndAdvances(t *testing.T) {
	state := fullSelection()
	record := model.Booking{Id: "BK-1", Status: model.BookingConfirmed}

	next := Reduce(state, ConfirmBooking{Booking: record})
	require.Len(t, next.Bookings, 1)
	assert.Equal(t, "BK-1", next.Bookings[0].Id)
	assert.Equal(t, model.StepConfirmation, next.Step)

	// the prior snapshot is untouched
	assert.Empty(t, state.Bookings)
}

func TestClearBookingResetsSelectionKeepsHistory(t *testing.T) {
	state := fullSelection()
	state = Reduce(state, ConfirmBooking{Booking: model.Booking{Id: "BK-1"}})
	state = Reduce(state, SetUser{User: model.User{Name: "Dana", Email: "dana@example.com"}})

	next := Reduce(state, ClearBooking{})
	assert.Nil(t, next.SelectedMovie)
	assert.Nil(t, next.SelectedTheater)
	assert.Nil(t, next.SelectedShowtime)
	assert.Empty(t, next.SelectedSeats)
	assert.Equal(t, model.StepMovie, next.Step)
	assert.Len(t, next.Bookings, 1)
	require.NotNil(t, next.User)
	assert.Equal(t, "Dana", next.User.Name)
}

func TestLogoutClearsUserOnly(t *testing.T) {
	state := fullSelection()
	state = Reduce(state, SetUser{User: model.User{Name: "Dana", Email: "dana@example.com"}})

	next := Reduce(state, Logout{})
	assert.Nil(t, next.User)
	assert.NotNil(t, next.SelectedMovie)
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	s := New()

	var seen []model.BookingStep
	unsubscribe := s.Subscribe(func(state model.BookingState) {
		seen = append(seen, state.Step)
	})

	s.Dispatch(SelectMovie{Movie: sampleMovie()})
	s.Dispatch(SelectShowtime{Showtime: sampleShowtime()})
	require.Equal(t, []model.BookingStep{model.StepTheater, model.StepSeats}, seen)

	unsubscribe()
	s.Dispatch(ClearBooking{})
	assert.Len(t, seen, 2)
	assert.Equal(t, model.StepMovie, s.State().Step)
}

func TestIsSelected(t *testing.T) {
	state := fullSelection()
	assert.True(t, IsSelected(state, "A1"))
	assert.False(t, IsSelected(state, "F3"))
}
