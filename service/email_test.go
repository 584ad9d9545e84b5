package service

import (
	"strings"
	"testing"
	"time"

	"cineseat-cli/config"
	"cineseat-cli/model"
)

func confirmedBooking() model.Booking {
	return model.Booking{
		Id:          "BK-1756751400000",
		MovieTitle:  "Starling",
		TheaterName: "Grand Orpheum",
		Showtime:    "18:45",
		Seats:       []string{"A1", "F3"},
		Total:       1023,
		Date:        time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC),
		Status:      model.BookingConfirmed,
	}
}

func TestBuildConfirmationEmail(t *testing.T) {
	body, err := buildConfirmationEmail("Dana", confirmedBooking())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	for _, want := range []string{"Dana", "BK-1756751400000", "Starling", "Grand Orpheum", "2026-09-01", "18:45", "A1, F3", "1023"} {
		if !strings.Contains(body, want) {
			t.Fatalf("email body missing %q:\n%s", want, body)
		}
	}
}

func TestSendBookingConfirmation_RequiresSMTPConfig(t *testing.T) {
	err := SendBookingConfirmation(&config.Config{}, "dana@example.com", "Dana", confirmedBooking())
	if err == nil || !strings.Contains(err.Error(), "smtp") {
		t.Fatalf("expected smtp config error, got %v", err)
	}

	if err := SendBookingConfirmation(nil, "dana@example.com", "Dana", confirmedBooking()); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestSendBookingConfirmation_RequiresRecipient(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPFrom: "tickets@example.com"}
	err := SendBookingConfirmation(cfg, "   ", "Dana", confirmedBooking())
	if err == nil || !strings.Contains(err.Error(), "recipient") {
		t.Fatalf("expected recipient error, got %v", err)
	}
}
