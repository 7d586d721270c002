package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lumiere-booking-cli/checkout"
	"lumiere-booking-cli/model"
)

const (
	fieldName = iota
	fieldEmail
	fieldNic
	fieldCount
)

var fieldKeys = [fieldCount]string{"name", "email", "nic"}
var fieldLabels = [fieldCount]string{"Full name", "Email", "NIC"}

var (
	fieldErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	formLabelStyle  = lipgloss.NewStyle().Bold(true)
)

// checkoutForm collects the customer details right before submission. Fields
// are revalidated on every keystroke so the error under each input always
// reflects its current value.
type checkoutForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	errors checkout.FieldErrors
}

func newCheckoutForm() checkoutForm {
	f := checkoutForm{errors: checkout.FieldErrors{}}

	name := textinput.New()
	name.Placeholder = "Jane Doe"
	name.CharLimit = 80
	f.inputs[fieldName] = name

	email := textinput.New()
	email.Placeholder = "jane@example.com"
	email.CharLimit = 120
	f.inputs[fieldEmail] = email

	nic := textinput.New()
	nic.Placeholder = "National identity number"
	nic.CharLimit = 40
	f.inputs[fieldNic] = nic

	return f
}

func (f *checkoutForm) focusCmd() tea.Cmd {
	f.focus = fieldName
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[fieldName].Focus()
}

func (f *checkoutForm) cycleFocus(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *checkoutForm) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)

	key := fieldKeys[f.focus]
	if message := checkout.ValidateField(key, f.inputs[f.focus].Value()); message != "" {
		f.errors[key] = message
	} else {
		delete(f.errors, key)
	}
	return cmd
}

func (f checkoutForm) details() checkout.Details {
	return checkout.Details{
		Name:  f.inputs[fieldName].Value(),
		Email: f.inputs[fieldEmail].Value(),
		Nic:   f.inputs[fieldNic].Value(),
	}
}

func (m appModel) handleCheckoutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.submitErr != "" {
			m.submitErr = ""
			return m, nil
		}
		return m.goBack()
	case "tab", "down":
		return m, m.form.cycleFocus(1)
	case "shift+tab", "up":
		return m, m.form.cycleFocus(-1)
	case "enter":
		if m.form.focus < fieldCount-1 {
			return m, m.form.cycleFocus(1)
		}
		details, fieldErrors := checkout.Validate(m.form.details())
		if len(fieldErrors) > 0 {
			m.form.errors = fieldErrors
			return m, nil
		}
		user := model.ReservationUser{
			Name:  details.Name,
			Email: details.Email,
			Nic:   details.Nic,
		}
		m.submitErr = ""
		m.state = stateSubmitting
		return m, tea.Batch(m.submitCmd(m.showId, m.selection.Ids(), user), m.spinner.Tick)
	}
	return m, m.form.updateFocused(msg)
}

func (m appModel) checkoutView() string {
	var b strings.Builder

	labels := m.selection.Labels(m.seats)
	b.WriteString(fmt.Sprintf("Seats: %s • Total: $%.2f\n\n",
		strings.Join(labels, ", "), m.prices.Total(labels)))

	for i := range m.form.inputs {
		b.WriteString(formLabelStyle.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
		if message, ok := m.form.errors[fieldKeys[i]]; ok {
			b.WriteString(fieldErrorStyle.Render(message))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.submitErr != "" {
		b.WriteString(fieldErrorStyle.Render("Reservation failed: "+m.submitErr) + "\n")
		b.WriteString(hint("Your seats are still selected. Press enter to try again or esc to dismiss.") + "\n")
	}
	return b.String()
}

func (m appModel) confirmationView() string {
	r := m.reservation
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render("Reservation confirmed"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Reservation: %s\n", r.Id))
	if m.movie.Title != "" {
		b.WriteString(fmt.Sprintf("Movie:       %s\n", m.movie.Title))
	}
	if m.theatre.Name != "" {
		b.WriteString(fmt.Sprintf("Theatre:     %s\n", m.theatre.Name))
	}
	b.WriteString(fmt.Sprintf("Show:        %s\n", r.ShowId))
	labels := m.selection.Labels(m.seats)
	if len(labels) > 0 {
		b.WriteString(fmt.Sprintf("Seats:       %s\n", strings.Join(labels, ", ")))
	} else {
		b.WriteString(fmt.Sprintf("Seats:       %s\n", strings.Join(r.SeatIds, ", ")))
	}
	b.WriteString(fmt.Sprintf("Booked at:   %s\n", r.CreatedAt))
	b.WriteString(fmt.Sprintf("Name:        %s\n", r.User.Name))
	b.WriteString(fmt.Sprintf("Email:       %s\n", r.User.Email))

	if m.ticketQR != "" {
		b.WriteString("\n" + m.ticketQR)
	}
	b.WriteString("\n" + hint("Press s to save the ticket QR code as a PNG."))
	if m.ticketPath != "" {
		b.WriteString("\nTicket saved to " + m.ticketPath)
	}
	if m.ticketErr != "" {
		b.WriteString("\n" + fieldErrorStyle.Render("Could not save ticket: "+m.ticketErr))
	}
	return b.String()
}
