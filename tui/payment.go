package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cineseat-cli/booking"
	"cineseat-cli/model"
	"cineseat-cli/store"
)

func (m appModel) handlePaymentKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		m.focusPaymentField(1)
		return m, nil, true
	case "shift+tab", "up":
		m.focusPaymentField(-1)
		return m, nil, true
	case "enter":
		return m.submitPayment()
	}
	return m, nil, false
}

func (m *appModel) focusPaymentField(delta int) {
	m.formFocus = (m.formFocus + delta + 2) % 2
	if m.formFocus == 0 {
		m.nameInput.Focus()
		m.emailInput.Blur()
	} else {
		m.nameInput.Blur()
		m.emailInput.Focus()
	}
}

// submitPayment runs the mock payment: validate, build the booking,
// record it, then fire the QR render and confirmation email without
// blocking navigation.
func (m appModel) submitPayment() (appModel, tea.Cmd, bool) {
	name := strings.TrimSpace(m.nameInput.Value())
	email := strings.TrimSpace(m.emailInput.Value())

	if err := booking.ValidatePayment(name, email); err != nil {
		m.formErr = err.Error()
		return m, nil, true
	}
	m.formErr = ""

	record, err := booking.NewBooking(m.bookingStore.State(), time.Now())
	if err != nil {
		// A missing prerequisite means the screen was reached out of
		// order; fall back to the start of the flow.
		m = m.routeTo(stateSelectMovie)
		return m, nil, true
	}

	m.bookingStore.Dispatch(store.SetUser{User: model.User{Name: name, Email: email}})
	m.bookingStore.Dispatch(store.ConfirmBooking{Booking: record})
	m.lastBooking = record
	m.qr = ""
	m = m.routeTo(stateConfirmation)

	return m, tea.Batch(
		makeQRCmd(record),
		m.sendEmailCmd(record, email, name),
	), true
}

func (m appModel) updatePaymentInputs(msg tea.Msg) (appModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.emailInput, cmd = m.emailInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) renderPayment() string {
	st := m.bookingStore.State()
	quote := booking.PriceSeats(st.SelectedSeats)

	labels := make([]string, 0, len(st.SelectedSeats))
	for _, seat := range st.SelectedSeats {
		labels = append(labels, seat.Id)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Payment") + "\n\n")
	fmt.Fprintf(&b, "Seats      %s\n", strings.Join(labels, ", "))
	fmt.Fprintf(&b, "Subtotal   %d\n", quote.Subtotal)
	fmt.Fprintf(&b, "Fee        %d\n", quote.ConvenienceFee)
	fmt.Fprintf(&b, "Tax        %d\n", quote.Taxes)
	fmt.Fprintf(&b, "Total      %d\n\n", quote.Total)

	b.WriteString("Name  " + m.nameInput.View() + "\n")
	b.WriteString("Email " + m.emailInput.View() + "\n")

	if m.formErr != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.formErr))
	}

	b.WriteString("\n\n" + hint("This is a demo checkout; no card is charged."))
	return b.String()
}
