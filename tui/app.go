package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"lumiere-booking-cli/booking"
	"lumiere-booking-cli/config"
	"lumiere-booking-cli/model"
	"lumiere-booking-cli/pricing"
	"lumiere-booking-cli/seatmap"
	"lumiere-booking-cli/service"
	"lumiere-booking-cli/showtime"
	"lumiere-booking-cli/store"
	"lumiere-booking-cli/ticket"
)

type appState int

const (
	stateLoadingMovies appState = iota
	stateSelectMovie
	stateLoadingTheatres
	stateSelectTheatre
	stateSelectDate
	stateCalendar
	stateSelectShow
	stateLoadingSeats
	stateSelectSeats
	stateCheckout
	stateSubmitting
	stateConfirmation
	stateError
)

type appModel struct {
	client    *service.Client
	submitter *booking.Submitter
	logger    *zap.Logger
	prices    pricing.Table

	state     appState
	lastState appState
	err       error

	width  int
	height int

	movies   []model.Movie
	theatres []model.Theatre

	movie   model.Movie
	theatre model.Theatre

	groups    []showtime.Group
	dateIndex int
	showId    string

	seats           []model.Seat
	seatRows        []seatmap.Row
	seatsShowId     string
	selection       *seatmap.Selection
	cursorRow       int
	cursorSeat      int
	showSeatLabels  bool
	seatNotice      string

	calendar       calendarModel
	calendarReturn appState

	movieList   list.Model
	theatreList list.Model
	dateList    list.Model
	showList    list.Model

	form      checkoutForm
	submitErr string

	reservation model.Reservation
	ticketQR    string
	ticketPath  string
	ticketErr   string

	spinner spinner.Model
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type moviesMsg struct {
	movies []model.Movie
	err    error
}

type theatresMsg struct {
	theatres []model.Theatre
	err      error
}

type seatsMsg struct {
	showId string
	seats  []model.Seat
	err    error
}

type submitMsg struct {
	reservation model.Reservation
	err         error
}

type ticketSavedMsg struct {
	path string
	err  error
}

// New builds the booking flow model. The flow is driven entirely by user
// actions and resolved fetches; every asynchronous boundary has its own Msg.
func New(cfg *config.Config, logger *zap.Logger) tea.Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := &http.Client{Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second}
	client := service.NewClient(httpClient, service.Options{
		BaseURL:     cfg.API.BaseURL,
		MaxAttempts: cfg.API.MaxAttempts,
		Logger:      logger,
	})

	m := appModel{
		client:    client,
		submitter: booking.NewSubmitter(client, logger),
		logger:    logger,
		prices:    pricing.FromConfig(cfg.Pricing),
		state:     stateLoadingMovies,
		dateIndex: -1,
		selection: seatmap.NewSelection(),
	}

	m.movieList = newList("Now Showing")
	m.theatreList = newList("Select Theatre")
	m.dateList = newList("Select Date")
	m.showList = newList("Select Showtime")
	m.showSeatLabels = true
	m.form = newCheckoutForm()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateCheckout {
			return m.handleCheckoutKey(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil

	case moviesMsg:
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateLoadingMovies, true)
		}
		m.movies = msg.movies
		m.movieList.SetItems(buildMovieItems(msg.movies))
		m.state = stateSelectMovie
		return m, nil

	case theatresMsg:
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateSelectMovie, true)
		}
		m.theatres = msg.theatres
		m.theatreList.SetItems(buildTheatreItems(msg.theatres))
		m.state = stateSelectTheatre
		return m, nil

	case seatsMsg:
		// A fetch for a show the user already abandoned is inert.
		if msg.showId != m.showId {
			return m, nil
		}
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateSelectShow, true)
		}
		m.seats = msg.seats
		m.seatRows = seatmap.Rows(msg.seats)
		m.seatsShowId = msg.showId
		m.cursorRow = 0
		m.cursorSeat = 0
		m.seatNotice = ""
		m.state = stateSelectSeats
		return m, nil

	case submitMsg:
		if msg.err != nil {
			if errors.Is(msg.err, booking.ErrMissingContext) {
				m.state = stateSelectSeats
				return m, nil
			}
			m.submitErr = msg.err.Error()
			m.state = stateCheckout
			return m, nil
		}
		m.reservation = msg.reservation
		m.ticketQR = ""
		if qrText, qrErr := ticket.Build(msg.reservation).QRCodeTerminal(); qrErr == nil {
			m.ticketQR = qrText
		}
		m.ticketPath = ""
		m.ticketErr = ""
		m.state = stateConfirmation
		return m, nil

	case ticketSavedMsg:
		if msg.err != nil {
			m.ticketErr = msg.err.Error()
		} else {
			m.ticketPath = msg.path
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectMovie:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateSelectTheatre:
		m.theatreList, cmd = m.theatreList.Update(msg)
	case stateSelectDate:
		m.dateList, cmd = m.dateList.Update(msg)
	case stateSelectShow:
		m.showList, cmd = m.showList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoadingMovies, stateLoadingTheatres, stateLoadingSeats, stateSubmitting:
		return header + "\n\n" + m.loadingView()
	case stateSelectMovie:
		return header + "\n\n" + m.movieList.View()
	case stateSelectTheatre:
		return header + "\n\n" + m.theatreList.View()
	case stateSelectDate:
		return header + "\n\n" + m.dateList.View()
	case stateCalendar:
		return header + "\n\n" + m.calendar.View()
	case stateSelectShow:
		return header + "\n\n" + m.showList.View()
	case stateSelectSeats:
		return header + "\n\n" + m.renderSeatGrid()
	case stateCheckout:
		return header + "\n\n" + m.checkoutView()
	case stateConfirmation:
		return header + "\n\n" + m.confirmationView()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press r to retry, esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Lumiere Booking")
	sub := []string{}
	if m.movie.Title != "" {
		sub = append(sub, fmt.Sprintf("Movie: %s", m.movie.Title))
	}
	if m.theatre.Name != "" {
		sub = append(sub, fmt.Sprintf("Theatre: %s", m.theatre.Name))
	}
	if m.dateIndex >= 0 && m.dateIndex < len(m.groups) {
		sub = append(sub, fmt.Sprintf("Date: %s", m.groups[m.dateIndex].Date))
	}
	if m.showId != "" {
		if show, ok := m.currentShow(); ok {
			sub = append(sub, fmt.Sprintf("Show: %s", showtime.FormatTime(show.StartTime)))
		}
	}
	if m.selection.Len() > 0 {
		sub = append(sub, fmt.Sprintf("Seats: %d", m.selection.Len()))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back • type to filter"
	switch m.state {
	case stateSelectDate:
		hints = "ctrl+c quit • esc back • enter select date • ctrl+d more dates"
	case stateCalendar:
		hints = "ctrl+c quit • esc back • arrows move • [ ] change month • enter pick date"
	case stateSelectShow:
		hints = "ctrl+c quit • esc back • enter select showtime • ctrl+d more dates"
	case stateSelectSeats:
		hints = "ctrl+c quit • esc back • arrows move • space toggle seat • n labels • enter checkout"
	case stateCheckout:
		hints = "ctrl+c quit • esc back to seats • tab next field • enter submit"
	case stateConfirmation:
		hints = "q quit • s save ticket • n new booking"
	}

	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		next, cmd := m.goBack()
		return next, cmd, true
	case "r":
		if m.state == stateError {
			return m.retryFromError()
		}
	case "n":
		if m.state == stateSelectSeats {
			m.showSeatLabels = !m.showSeatLabels
			return m, nil, true
		}
		if m.state == stateConfirmation {
			return m.restartFlow()
		}
	case "s":
		if m.state == stateConfirmation {
			return m, m.saveTicketCmd(m.reservation), true
		}
	case "q":
		if m.state == stateConfirmation || m.state == stateError {
			return m, tea.Quit, true
		}
	case " ":
		if m.state == stateSelectSeats {
			m.toggleSeatUnderCursor()
			return m, nil, true
		}
	case "up", "down", "left", "right", "h", "j", "k", "l":
		if m.state == stateSelectSeats {
			m.moveSeatCursor(msg.String())
			return m, nil, true
		}
		if m.state == stateCalendar {
			m.calendar.move(msg.String())
			return m, nil, true
		}
	case "[", "pgup":
		if m.state == stateCalendar {
			m.calendar.moveMonth(-1)
			return m, nil, true
		}
	case "]", "pgdown":
		if m.state == stateCalendar {
			m.calendar.moveMonth(1)
			return m, nil, true
		}
	}

	if msg.String() == "ctrl+d" && (m.state == stateSelectDate || m.state == stateSelectShow) {
		m.calendarReturn = m.state
		m.calendar = newCalendar(showtime.GroupDates(m.groups), m.selectedDate(), time.Now())
		m.state = stateCalendar
		return m, nil, true
	}

	if msg.Type == tea.KeyEnter {
		switch m.state {
		case stateSelectMovie:
			item, ok := m.movieList.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			return m.selectMovie(item.movie)
		case stateSelectTheatre:
			item, ok := m.theatreList.SelectedItem().(theatreItem)
			if !ok {
				return m, nil, true
			}
			m.theatre = item.theatre
			if len(m.groups) == 0 {
				return m, errWithOptionsCmd(errors.New("no showtimes scheduled for this movie"), stateSelectMovie, true), true
			}
			m.dateList.SetItems(buildDateItems(m.groups))
			m.state = stateSelectDate
			return m, nil, true
		case stateSelectDate:
			item, ok := m.dateList.SelectedItem().(dateItem)
			if !ok {
				return m, nil, true
			}
			m.selectDate(item.index)
			return m, nil, true
		case stateCalendar:
			date := m.calendar.cursorDate()
			index := showtime.FindGroupIndex(m.groups, date)
			if index < 0 {
				// no group for that date: deliberately a silent no-op
				return m, nil, true
			}
			m.selectDate(index)
			return m, nil, true
		case stateSelectShow:
			item, ok := m.showList.SelectedItem().(showItem)
			if !ok {
				return m, nil, true
			}
			return m.selectShow(item.show.Id)
		case stateSelectSeats:
			if m.selection.Len() == 0 {
				m.seatNotice = "Select at least one seat to continue."
				return m, nil, true
			}
			m.form = newCheckoutForm()
			m.submitErr = ""
			m.state = stateCheckout
			return m, m.form.focusCmd(), true
		}
	}
	return m, nil, false
}

func (m appModel) selectMovie(movie model.Movie) (appModel, tea.Cmd, bool) {
	m.movie = movie
	_ = store.RememberMovie(movie)
	m.groups = showtime.GroupShowsByDate(movie.Shows, time.Now())
	m.dateIndex = -1
	m.showId = ""
	m.seats = nil
	m.seatRows = nil
	m.seatsShowId = ""
	m.selection.Clear()
	m.state = stateLoadingTheatres
	return m, tea.Batch(m.fetchTheatresCmd(), m.spinner.Tick), true
}

// selectDate enters DateChosen. Seats are show-scoped, so picking a
// different date discards any chosen show and seat selection.
func (m *appModel) selectDate(index int) {
	if index < 0 || index >= len(m.groups) {
		return
	}
	if index != m.dateIndex {
		m.showId = ""
		m.seats = nil
		m.seatRows = nil
		m.seatsShowId = ""
		m.selection.Clear()
	}
	m.dateIndex = index
	m.showList.Title = fmt.Sprintf("Showtimes • %s", m.groups[index].Label)
	m.showList.SetItems(buildShowItems(m.groups[index].Shows))
	m.state = stateSelectShow
}

// selectShow enters ShowChosen and triggers the seat fetch for that show.
func (m appModel) selectShow(showId string) (appModel, tea.Cmd, bool) {
	if showId != m.showId {
		m.selection.Clear()
	}
	m.showId = showId
	m.state = stateLoadingSeats
	return m, tea.Batch(m.fetchSeatsCmd(showId), m.spinner.Tick), true
}

func (m appModel) restartFlow() (appModel, tea.Cmd, bool) {
	m.movie = model.Movie{}
	m.theatre = model.Theatre{}
	m.groups = nil
	m.dateIndex = -1
	m.showId = ""
	m.seats = nil
	m.seatRows = nil
	m.seatsShowId = ""
	m.selection.Clear()
	m.reservation = model.Reservation{}
	m.ticketQR = ""
	m.ticketPath = ""
	m.ticketErr = ""
	m.state = stateLoadingMovies
	return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick), true
}

func (m appModel) retryFromError() (appModel, tea.Cmd, bool) {
	switch m.lastState {
	case stateLoadingMovies, stateSelectMovie:
		m.state = stateLoadingMovies
		return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick), true
	case stateSelectTheatre:
		m.state = stateLoadingTheatres
		return m, tea.Batch(m.fetchTheatresCmd(), m.spinner.Tick), true
	case stateSelectShow:
		if m.showId != "" {
			m.state = stateLoadingSeats
			return m, tea.Batch(m.fetchSeatsCmd(m.showId), m.spinner.Tick), true
		}
	}
	m.state = m.lastState
	return m, nil, true
}

func (m appModel) goBack() (appModel, tea.Cmd) {
	switch m.state {
	case stateSelectTheatre:
		m.state = stateSelectMovie
	case stateSelectDate:
		m.state = stateSelectTheatre
	case stateCalendar:
		m.state = m.calendarReturn
	case stateSelectShow:
		m.state = stateSelectDate
	case stateSelectSeats:
		m.selection.Clear()
		m.state = stateSelectShow
	case stateCheckout:
		// Availability may have changed while the form was open: re-enter
		// seat selection with an empty set and fresh data.
		m.selection.Clear()
		m.submitErr = ""
		m.state = stateLoadingSeats
		return m, tea.Batch(m.fetchSeatsCmd(m.showId), m.spinner.Tick)
	case stateError:
		m.state = m.lastState
	default:
		return m, nil
	}
	return m, nil
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectMovie:
		return &m.movieList
	case stateSelectTheatre:
		return &m.theatreList
	case stateSelectDate:
		return &m.dateList
	case stateSelectShow:
		return &m.showList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingMovies ||
		m.state == stateLoadingTheatres ||
		m.state == stateLoadingSeats ||
		m.state == stateSubmitting
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingMovies:
		title = "Loading movies"
	case stateLoadingTheatres:
		title = "Loading theatres"
	case stateLoadingSeats:
		title = "Loading seats"
	case stateSubmitting:
		title = "Submitting reservation"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Please wait..."))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
	m.theatreList.SetSize(m.width, h)
	m.dateList.SetSize(m.width, h)
	m.showList.SetSize(m.width, h)
}

func (m appModel) currentShow() (model.Show, bool) {
	if m.dateIndex < 0 || m.dateIndex >= len(m.groups) {
		return model.Show{}, false
	}
	for _, show := range m.groups[m.dateIndex].Shows {
		if show.Id == m.showId {
			return show, true
		}
	}
	return model.Show{}, false
}

func (m appModel) selectedDate() string {
	if m.dateIndex < 0 || m.dateIndex >= len(m.groups) {
		return ""
	}
	return m.groups[m.dateIndex].Date
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errWithOptionsCmd(err error, returnState appState, returnStateSet bool) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err, returnState: returnState, returnStateSet: returnStateSet}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingMovies:
		return stateLoadingMovies
	case stateLoadingTheatres:
		return stateSelectMovie
	case stateLoadingSeats:
		return stateSelectShow
	case stateSubmitting:
		return stateCheckout
	default:
		return state
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func (m appModel) fetchMoviesCmd() tea.Cmd {
	return func() tea.Msg {
		if cached, fresh, err := store.LoadMovieCache(); err == nil && fresh && len(cached) > 0 {
			return moviesMsg{movies: cached}
		}
		ctx := context.Background()
		movies, err := m.client.GetMovies(ctx)
		if err == nil && len(movies) > 0 {
			_ = store.SaveMovieCache(movies)
		}
		return moviesMsg{movies: movies, err: err}
	}
}

func (m appModel) fetchTheatresCmd() tea.Cmd {
	return func() tea.Msg {
		if cached, fresh, err := store.LoadTheatreCache(); err == nil && fresh && len(cached) > 0 {
			return theatresMsg{theatres: cached}
		}
		ctx := context.Background()
		theatres, err := m.client.GetTheatres(ctx)
		if err == nil && len(theatres) > 0 {
			_ = store.SaveTheatreCache(theatres)
		}
		return theatresMsg{theatres: theatres, err: err}
	}
}

// fetchSeatsCmd never consults a cache: availability is only trusted at fetch
// time. The show id rides along so a stale result can be discarded.
func (m appModel) fetchSeatsCmd(showId string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		seats, err := m.client.GetSeatsByShow(ctx, showId)
		return seatsMsg{showId: showId, seats: seats, err: err}
	}
}

func (m appModel) submitCmd(showId string, seatIds []string, user model.ReservationUser) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		reservation, err := m.submitter.Submit(ctx, showId, seatIds, user)
		return submitMsg{reservation: reservation, err: err}
	}
}

func (m appModel) saveTicketCmd(reservation model.Reservation) tea.Cmd {
	return func() tea.Msg {
		payload := ticket.Build(reservation)
		data, err := payload.QRCodePNG(ticket.DefaultQRSize)
		if err != nil {
			return ticketSavedMsg{err: err}
		}
		path, err := store.SaveTicket(reservation.Id, data)
		return ticketSavedMsg{path: path, err: err}
	}
}
