package booking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cineseat-cli/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidatePayment checks the payment form fields. Invalid input blocks
// submission; nothing else on the payment path is validated.
func ValidatePayment(name string, email string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(trimmed) {
		return errors.New("email looks invalid")
	}
	return nil
}

// NewBooking assembles a confirmed booking record from the in-progress
// selection. The identifier derives from the confirmation timestamp.
func NewBooking(state model.BookingState, now time.Time) (model.Booking, error) {
	if state.SelectedMovie == nil {
		return model.Booking{}, errors.New("no movie selected")
	}
	if state.SelectedTheater == nil {
		return model.Booking{}, errors.New("no theater selected")
	}
	if state.SelectedShowtime == nil {
		return model.Booking{}, errors.New("no showtime selected")
	}
	if len(state.SelectedSeats) == 0 {
		return model.Booking{}, errors.New("no seats selected")
	}

	labels := make([]string, 0, len(state.SelectedSeats))
	for _, seat := range state.SelectedSeats {
		labels = append(labels, seat.Id)
	}

	return model.Booking{
		Id:          fmt.Sprintf("BK-%d", now.UnixMilli()),
		MovieTitle:  state.SelectedMovie.Title,
		TheaterName: state.SelectedTheater.Name,
		Showtime:    state.SelectedShowtime.Time,
		Seats:       labels,
		Total:       PriceSeats(state.SelectedSeats).Total,
		Date:        now,
		Status:      model.BookingConfirmed,
	}, nil
}

// QRPayload is the text encoded into the confirmation QR code.
func QRPayload(b model.Booking) string {
	return strings.Join([]string{
		"CINESEAT:" + b.Id,
		b.MovieTitle,
		b.TheaterName,
		b.Date.Format(time.DateOnly) + " " + b.Showtime,
		"Seats " + strings.Join(b.Seats, ","),
		fmt.Sprintf("Total %d", b.Total),
	}, "|")
}

// ShareText is the clipboard-friendly summary offered on the
// confirmation screen.
func ShareText(b model.Booking) string {
	return fmt.Sprintf(
		"I'm watching %s at %s, %s %s. Seats: %s. Booking %s.",
		b.MovieTitle,
		b.TheaterName,
		b.Date.Format("Jan 2"),
		b.Showtime,
		strings.Join(b.Seats, ", "),
		b.Id,
	)
}

// Receipt renders the plain-text receipt body for the confirmation
// screen.
func Receipt(b model.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking     %s (%s)\n", b.Id, b.Status)
	fmt.Fprintf(&sb, "Movie       %s\n", b.MovieTitle)
	fmt.Fprintf(&sb, "Theater     %s\n", b.TheaterName)
	fmt.Fprintf(&sb, "Showtime    %s %s\n", b.Date.Format(time.DateOnly), b.Showtime)
	fmt.Fprintf(&sb, "Seats       %s\n", strings.Join(b.Seats, ", "))
	fmt.Fprintf(&sb, "Total       %d", b.Total)
	return sb.String()
}
