package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lumiere-booking-cli/model"
)

var (
	seatAvailableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatOccupiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatSelectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	rowLabelStyle      = lipgloss.NewStyle().Faint(true)
	screenStyle        = lipgloss.NewStyle().Faint(true)
	noticeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func (m *appModel) moveSeatCursor(key string) {
	if len(m.seatRows) == 0 {
		return
	}
	switch key {
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "down", "j":
		if m.cursorRow < len(m.seatRows)-1 {
			m.cursorRow++
		}
	case "left", "h":
		if m.cursorSeat > 0 {
			m.cursorSeat--
		}
	case "right", "l":
		if m.cursorSeat < len(m.seatRows[m.cursorRow].Seats)-1 {
			m.cursorSeat++
		}
	}
	if max := len(m.seatRows[m.cursorRow].Seats) - 1; m.cursorSeat > max {
		m.cursorSeat = max
	}
	if m.cursorSeat < 0 {
		m.cursorSeat = 0
	}
}

func (m *appModel) toggleSeatUnderCursor() {
	seat, ok := m.seatUnderCursor()
	if !ok {
		return
	}
	if m.selection.Toggle(seat) {
		m.seatNotice = ""
		return
	}
	m.seatNotice = fmt.Sprintf("Seat %s is already taken.", seat.Label)
}

func (m appModel) seatUnderCursor() (model.Seat, bool) {
	if m.cursorRow < 0 || m.cursorRow >= len(m.seatRows) {
		return model.Seat{}, false
	}
	row := m.seatRows[m.cursorRow]
	if m.cursorSeat < 0 || m.cursorSeat >= len(row.Seats) {
		return model.Seat{}, false
	}
	return row.Seats[m.cursorSeat], true
}

func (m appModel) renderSeatGrid() string {
	if len(m.seatRows) == 0 {
		return hint("No seats published for this showtime.")
	}

	cellWidth := 2
	for _, row := range m.seatRows {
		for _, seat := range row.Seats {
			if len(seat.Label) > cellWidth {
				cellWidth = len(seat.Label)
			}
		}
	}

	var b strings.Builder
	b.WriteString(m.screenBarBlock(cellWidth))
	b.WriteString("\n\n")

	for rowIndex, row := range m.seatRows {
		b.WriteString(rowLabelStyle.Render(fmt.Sprintf("%3s ", row.Label)))
		seatIndex := 0
		sections := row.Sections()
		for sectionIndex, section := range sections {
			if sectionIndex > 0 && len(section) > 0 {
				b.WriteString("   ")
			}
			for i, seat := range section {
				if i > 0 {
					b.WriteString(" ")
				}
				underCursor := rowIndex == m.cursorRow && seatIndex == m.cursorSeat
				b.WriteString(m.renderSeatCell(seat, cellWidth, underCursor))
				seatIndex++
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.seatLegend())
	b.WriteString("\n")
	b.WriteString(m.seatSummary())
	if m.seatNotice != "" {
		b.WriteString("\n" + noticeStyle.Render(m.seatNotice))
	}
	return b.String()
}

func (m appModel) renderSeatCell(seat model.Seat, cellWidth int, underCursor bool) string {
	text := "[]"
	if m.showSeatLabels {
		text = seat.Label
	}
	if len(text) < cellWidth {
		text += strings.Repeat(" ", cellWidth-len(text))
	}

	style := seatAvailableStyle
	switch {
	case m.selection.Has(seat.Id):
		style = seatSelectedStyle
	case !seat.Available():
		style = seatOccupiedStyle
	}
	if underCursor {
		style = style.Reverse(true)
	}
	return style.Render(text)
}

func (m appModel) screenBarBlock(cellWidth int) string {
	width := 0
	for _, row := range m.seatRows {
		rowWidth := len(row.Seats)*(cellWidth+1) + 6
		if rowWidth > width {
			width = rowWidth
		}
	}
	if width < 16 {
		width = 16
	}
	bar := strings.Repeat("─", width)
	label := "SCREEN"
	pad := (width - len(label)) / 2
	if pad < 0 {
		pad = 0
	}
	return screenStyle.Render(bar + "\n" + strings.Repeat(" ", pad) + label)
}

func (m appModel) seatLegend() string {
	return fmt.Sprintf("%s available  %s occupied  %s selected",
		seatAvailableStyle.Render("[]"),
		seatOccupiedStyle.Render("[]"),
		seatSelectedStyle.Render("[]"),
	)
}

func (m appModel) seatSummary() string {
	available := 0
	for _, seat := range m.seats {
		if seat.Available() {
			available++
		}
	}
	counts := hint(fmt.Sprintf("%d available • %d occupied • %d selected",
		available, len(m.seats)-available, m.selection.Len()))

	labels := m.selection.Labels(m.seats)
	if len(labels) == 0 {
		return counts + "\n" + hint("No seats selected")
	}
	total := m.prices.Total(labels)
	return counts + "\n" + fmt.Sprintf("Selected: %s • Total: $%.2f",
		strings.Join(labels, ", "), total)
}
