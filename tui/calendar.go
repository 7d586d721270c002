package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const calendarDateLayout = "2006-01-02"

var (
	calendarHeaderStyle    = lipgloss.NewStyle().Bold(true)
	calendarWeekdayStyle   = lipgloss.NewStyle().Faint(true)
	calendarDayStyle       = lipgloss.NewStyle().Faint(true)
	calendarAvailableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

// calendarModel is the month-grid picker for movies whose showtimes span more
// dates than the inline list shows. Only dates with at least one showtime can
// be picked; confirming any other date does nothing.
type calendarModel struct {
	month     time.Time
	cursor    time.Time
	available map[string]bool
}

func newCalendar(dates []string, selected string, now time.Time) calendarModel {
	available := make(map[string]bool, len(dates))
	for _, date := range dates {
		available[date] = true
	}

	cursor := truncateToDay(now)
	if selected != "" {
		if parsed, err := time.Parse(calendarDateLayout, selected); err == nil {
			cursor = parsed
		}
	} else if len(dates) > 0 {
		if parsed, err := time.Parse(calendarDateLayout, dates[0]); err == nil {
			cursor = parsed
		}
	}

	return calendarModel{
		month:     time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC),
		cursor:    cursor,
		available: available,
	}
}

func (c *calendarModel) move(key string) {
	switch key {
	case "left", "h":
		c.cursor = c.cursor.AddDate(0, 0, -1)
	case "right", "l":
		c.cursor = c.cursor.AddDate(0, 0, 1)
	case "up", "k":
		c.cursor = c.cursor.AddDate(0, 0, -7)
	case "down", "j":
		c.cursor = c.cursor.AddDate(0, 0, 7)
	}
	c.month = time.Date(c.cursor.Year(), c.cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (c *calendarModel) moveMonth(delta int) {
	c.month = c.month.AddDate(0, delta, 0)
	day := c.cursor.Day()
	if last := lastDayOfMonth(c.month); day > last {
		day = last
	}
	c.cursor = time.Date(c.month.Year(), c.month.Month(), day, 0, 0, 0, 0, time.UTC)
}

func (c calendarModel) cursorDate() string {
	return c.cursor.Format(calendarDateLayout)
}

func (c calendarModel) View() string {
	var b strings.Builder
	b.WriteString(calendarHeaderStyle.Render(c.month.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(calendarWeekdayStyle.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	offset := int(c.month.Weekday())
	b.WriteString(strings.Repeat("   ", offset))

	last := lastDayOfMonth(c.month)
	column := offset
	for day := 1; day <= last; day++ {
		date := time.Date(c.month.Year(), c.month.Month(), day, 0, 0, 0, 0, time.UTC)
		b.WriteString(c.renderDay(date))
		column++
		if column%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	if column%7 != 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(calendarAvailableStyle.Render("##") + hint(" has showtimes"))
	return b.String()
}

func (c calendarModel) renderDay(date time.Time) string {
	text := fmt.Sprintf("%2d", date.Day())
	key := date.Format(calendarDateLayout)

	style := calendarDayStyle
	if c.available[key] {
		style = calendarAvailableStyle
	}
	if key == c.cursorDate() {
		style = style.Reverse(true)
	}
	return style.Render(text)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(month time.Time) int {
	return month.AddDate(0, 1, -1).Day()
}
