package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cineseat-cli/booking"
	"cineseat-cli/model"
	"cineseat-cli/store"
)

func groupSeatsByRow(seats []model.Seat) [][]model.Seat {
	var rows [][]model.Seat
	var current []model.Seat
	var currentRow string
	for _, seat := range seats {
		if seat.Row != currentRow {
			if len(current) > 0 {
				rows = append(rows, current)
			}
			current = nil
			currentRow = seat.Row
		}
		current = append(current, seat)
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	return rows
}

func (m appModel) handleSeatKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if len(m.seatRows) == 0 {
		return m, nil, false
	}

	if msg.Type == tea.KeySpace || msg.Type == tea.KeyEnter {
		seat, ok := m.seatUnderCursor()
		if !ok {
			return m, nil, true
		}
		if seat.IsBooked {
			m.toast = "that seat is already taken"
			return m, nil, true
		}
		m.bookingStore.Dispatch(store.ToggleSeat{Seat: seat})
		return m, nil, true
	}

	switch msg.String() {
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
			m.clampSeatCursor()
		}
		return m, nil, true
	case "down", "j":
		if m.cursorRow < len(m.seatRows)-1 {
			m.cursorRow++
			m.clampSeatCursor()
		}
		return m, nil, true
	case "left", "h":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
		return m, nil, true
	case "right", "l":
		if m.cursorCol < len(m.seatRows[m.cursorRow])-1 {
			m.cursorCol++
		}
		return m, nil, true
	case "p":
		st := m.bookingStore.State()
		if len(st.SelectedSeats) == 0 {
			m.toast = "select at least one seat first"
			return m, nil, true
		}
		m.formErr = ""
		m.formFocus = 0
		m.nameInput.Focus()
		m.emailInput.Blur()
		if st.User != nil {
			m.nameInput.SetValue(st.User.Name)
			m.emailInput.SetValue(st.User.Email)
		}
		m.bookingStore.Dispatch(store.SetBookingStep{Step: model.StepPayment})
		m = m.routeTo(statePayment)
		return m, nil, true
	}
	return m, nil, false
}

func (m *appModel) clampSeatCursor() {
	if len(m.seatRows) == 0 {
		m.cursorRow, m.cursorCol = 0, 0
		return
	}
	if m.cursorRow >= len(m.seatRows) {
		m.cursorRow = len(m.seatRows) - 1
	}
	if last := len(m.seatRows[m.cursorRow]) - 1; m.cursorCol > last {
		m.cursorCol = last
	}
}

func (m appModel) seatUnderCursor() (model.Seat, bool) {
	if m.cursorRow < 0 || m.cursorRow >= len(m.seatRows) {
		return model.Seat{}, false
	}
	row := m.seatRows[m.cursorRow]
	if m.cursorCol < 0 || m.cursorCol >= len(row) {
		return model.Seat{}, false
	}
	return row[m.cursorCol], true
}

func (m appModel) renderSeatSelection() string {
	if len(m.seatRows) == 0 {
		return "No seats available."
	}

	st := m.bookingStore.State()

	seatStyleRegular := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	seatStylePremium := lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	seatStyleVip := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	seatStyleBooked := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStyleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	cellWidth := 4
	gridWidth := len(m.seatRows[0])*(cellWidth+1) - 1

	var b strings.Builder

	screenBar := screenBarBlock(gridWidth, "SCREEN")
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	b.WriteString("  " + screenBorderStyle.Render(screenBar.top) + "\n")
	b.WriteString("  " + screenStyle.Render(screenBar.mid) + "\n")
	b.WriteString("  " + screenBorderStyle.Render(screenBar.bot) + "\n\n")

	for rowIndex, row := range m.seatRows {
		b.WriteString(row[0].Row + " ")
		for colIndex, seat := range row {
			label := padCell(fmt.Sprintf("%d", seat.Number), cellWidth)
			var rendered string
			switch {
			case seat.IsBooked:
				rendered = seatStyleBooked.Render(strings.Repeat("x", len(label)))
			case store.IsSelected(st, seat.Id):
				rendered = seatStyleSelected.Render(label)
			case seat.Tier == model.SeatTierVip:
				rendered = seatStyleVip.Render(label)
			case seat.Tier == model.SeatTierPremium:
				rendered = seatStylePremium.Render(label)
			default:
				rendered = seatStyleRegular.Render(label)
			}
			if rowIndex == m.cursorRow && colIndex == m.cursorCol {
				rendered = cursorStyle.Render(label)
			}
			b.WriteString(rendered)
			if colIndex < len(row)-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString(" " + row[0].Row + "\n")
	}

	legend := fmt.Sprintf(
		"Legend: vip %d • premium %d • regular %d • x taken • green selected",
		booking.TierPrice(model.SeatTierVip),
		booking.TierPrice(model.SeatTierPremium),
		booking.TierPrice(model.SeatTierRegular),
	)

	quote := booking.PriceSeats(st.SelectedSeats)
	labels := make([]string, 0, len(st.SelectedSeats))
	for _, seat := range st.SelectedSeats {
		labels = append(labels, seat.Id)
	}
	summary := "No seats selected yet."
	if len(labels) > 0 {
		summary = fmt.Sprintf(
			"Seats %s • Subtotal %d • Fee %d • Tax %d • Total %d",
			strings.Join(labels, ", "),
			quote.Subtotal, quote.ConvenienceFee, quote.Taxes, quote.Total,
		)
	}

	return b.String() + "\n" + hint(legend) + "\n" + summary
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
