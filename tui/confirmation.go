package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	qrcode "github.com/skip2/go-qrcode"

	"cineseat-cli/booking"
	"cineseat-cli/model"
	"cineseat-cli/service"
	"cineseat-cli/store"
)

func (m appModel) handleConfirmationKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "c":
		return m, copyShareTextCmd(m.lastBooking), true
	case "e":
		st := m.bookingStore.State()
		if st.User == nil {
			m.toast = "no email on file"
			return m, nil, true
		}
		return m, m.sendEmailCmd(m.lastBooking, st.User.Email, st.User.Name), true
	case "n", "enter":
		m.bookingStore.Dispatch(store.ClearBooking{})
		m.seats = nil
		m.seatRows = nil
		m.qr = ""
		m.state = stateSelectMovie
		return m, nil, true
	}
	return m, nil, false
}

func (m appModel) renderConfirmation() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("2")).
		Padding(0, 2).
		Render("Booking Confirmed")

	receipt := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("2")).
		Render(booking.Receipt(m.lastBooking))

	body := title + "\n" + receipt
	if m.qr != "" {
		body += "\n" + m.qr
	} else {
		body += "\n" + hint("Rendering QR code...")
	}

	history := m.bookingStore.State().Bookings
	if len(history) > 1 {
		body += "\n" + hint(fmt.Sprintf("Bookings this session: %d", len(history)))
	}
	return body
}

func makeQRCmd(b model.Booking) tea.Cmd {
	return func() tea.Msg {
		qr, err := qrcode.New(booking.QRPayload(b), qrcode.Medium)
		if err != nil {
			return qrMsg{err: err}
		}
		return qrMsg{text: qr.ToSmallString(false)}
	}
}

func copyShareTextCmd(b model.Booking) tea.Cmd {
	return func() tea.Msg {
		if b.Id == "" {
			return shareCopiedMsg{err: errors.New("no booking to share")}
		}
		return shareCopiedMsg{err: clipboard.WriteAll(booking.ShareText(b))}
	}
}

func (m appModel) sendEmailCmd(b model.Booking, to string, name string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		return emailSentMsg{err: service.SendBookingConfirmation(cfg, to, name, b)}
	}
}
