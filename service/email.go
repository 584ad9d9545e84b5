package service

import (
	"bytes"
	"errors"
	"html/template"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"cineseat-cli/config"
	"cineseat-cli/model"
)

const confirmationEmailTemplate = `<html>
<body style="font-family: sans-serif;">
  <h2>Your tickets are booked, {{.Name}}!</h2>
  <p>Booking <strong>{{.BookingID}}</strong></p>
  <table>
    <tr><td>Movie</td><td><strong>{{.Movie}}</strong></td></tr>
    <tr><td>Theater</td><td>{{.Theater}}</td></tr>
    <tr><td>Date</td><td>{{.Date}}</td></tr>
    <tr><td>Showtime</td><td>{{.Showtime}}</td></tr>
    <tr><td>Seats</td><td>{{.Seats}}</td></tr>
    <tr><td>Total</td><td>{{.Total}}</td></tr>
  </table>
  <p>Show this email or your QR code at the entrance.</p>
</body>
</html>`

var confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationEmailTemplate))

type confirmationEmailData struct {
	Name      string
	BookingID string
	Movie     string
	Theater   string
	Date      string
	Showtime  string
	Seats     string
	Total     int64
}

func buildConfirmationEmail(name string, b model.Booking) (string, error) {
	var body bytes.Buffer
	err := confirmationTmpl.Execute(&body, confirmationEmailData{
		Name:      name,
		BookingID: b.Id,
		Movie:     b.MovieTitle,
		Theater:   b.TheaterName,
		Date:      b.Date.Format(time.DateOnly),
		Showtime:  b.Showtime,
		Seats:     strings.Join(b.Seats, ", "),
		Total:     b.Total,
	})
	if err != nil {
		return "", err
	}
	return body.String(), nil
}

// SendBookingConfirmation delivers the confirmation email. Callers treat
// it as best-effort: a failure never invalidates the booking.
func SendBookingConfirmation(cfg *config.Config, to string, name string, b model.Booking) error {
	if cfg == nil || !cfg.EmailConfigured() {
		return errors.New("smtp is not configured")
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("recipient email is required")
	}

	body, err := buildConfirmationEmail(name, b)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Booking confirmed: "+b.Id)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return d.DialAndSend(m)
}
