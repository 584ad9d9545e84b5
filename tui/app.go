package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cineseat-cli/booking"
	"cineseat-cli/cache"
	"cineseat-cli/config"
	"cineseat-cli/model"
	"cineseat-cli/service"
	"cineseat-cli/store"
)

type appState int

const (
	stateLoadingMovies appState = iota
	stateSelectMovie
	stateLoadingTheaters
	stateSelectTheater
	stateSelectShowtime
	stateSelectSeats
	statePayment
	stateConfirmation
	stateError
)

const seatCatalogSize = 80

type appModel struct {
	client *service.Client
	cfg    *config.Config

	bookingStore *store.Store

	state     appState
	lastState appState
	err       error

	width  int
	height int

	movieList    list.Model
	theaterList  list.Model
	showtimeList list.Model

	spinner spinner.Model

	seats     []model.Seat
	seatRows  [][]model.Seat
	cursorRow int
	cursorCol int

	nameInput  textinput.Model
	emailInput textinput.Model
	formFocus  int
	formErr    string

	lastBooking model.Booking
	qr          string
	toast       string

	location             *service.UserLocation
	usedFallbackMovies   bool
	usedFallbackTheaters bool

	rng *rand.Rand

	cancelInflight context.CancelFunc
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type moviesMsg struct {
	movies       []model.Movie
	fromFallback bool
}

type theatersMsg struct {
	theaters     []model.Theater
	location     *service.UserLocation
	fromFallback bool
}

type qrMsg struct {
	text string
	err  error
}

type emailSentMsg struct {
	err error
}

type shareCopiedMsg struct {
	err error
}

func New(cfg *config.Config) tea.Model {
	if cfg == nil {
		cfg = config.Load()
	}
	m := appModel{
		client:       service.NewClientFromConfig(cfg),
		cfg:          cfg,
		bookingStore: store.New(),
		state:        stateLoadingMovies,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	m.movieList = newList("Now Playing")
	m.theaterList = newList("Select Theater")
	m.showtimeList = newList("Select Showtime")

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Full name"
	m.nameInput.CharLimit = 64
	m.nameInput.Width = 40

	m.emailInput = textinput.New()
	m.emailInput.Placeholder = "Email"
	m.emailInput.CharLimit = 128
	m.emailInput.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

// beginRequest cancels whatever fetch is still in flight and opens a
// new context for the next one, so leaving a screen aborts its request.
func (m *appModel) beginRequest() context.Context {
	if m.cancelInflight != nil {
		m.cancelInflight()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelInflight = cancel
	return ctx
}

func (m *appModel) abortInflight() {
	if m.cancelInflight != nil {
		m.cancelInflight()
		m.cancelInflight = nil
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchMoviesCmd(context.Background()), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		m.toast = ""
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next
		// fallthrough to component update

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
		m.usedFallbackMovies = msg.fromFallback
		m.movieList.SetItems(buildMovieItems(msg.movies))
		m.movieList.Select(0)
		m.state = stateSelectMovie
		return m, nil

	case theatersMsg:
		m.usedFallbackTheaters = msg.fromFallback
		if msg.location != nil {
			m.location = msg.location
		}
		m.theaterList.SetItems(buildTheaterItems(msg.theaters))
		m.theaterList.Select(0)
		m.state = stateSelectTheater
		return m, nil

	case qrMsg:
		if msg.err != nil {
			m.toast = "could not render QR code: " + msg.err.Error()
			return m, nil
		}
		m.qr = msg.text
		return m, nil

	case emailSentMsg:
		if msg.err != nil {
			m.toast = "confirmation email failed: " + msg.err.Error()
		} else {
			m.toast = "confirmation email sent"
		}
		return m, nil

	case shareCopiedMsg:
		if msg.err != nil {
			m.toast = "could not copy share text: " + msg.err.Error()
		} else {
			m.toast = "share text copied to clipboard"
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectMovie:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateSelectTheater:
		m.theaterList, cmd = m.theaterList.Update(msg)
	case stateSelectShowtime:
		m.showtimeList, cmd = m.showtimeList.Update(msg)
	case statePayment:
		m, cmd = m.updatePaymentInputs(msg)
	}
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.abortInflight()
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		next := m.goBack()
		return next, nil, true
	}

	switch m.state {
	case stateSelectSeats:
		return m.handleSeatKey(msg)
	case statePayment:
		return m.handlePaymentKey(msg)
	case stateConfirmation:
		return m.handleConfirmationKey(msg)
	}

	if msg.Type != tea.KeyEnter {
		return m, nil, false
	}

	switch m.state {
	case stateSelectMovie:
		item, ok := m.movieList.SelectedItem().(movieItem)
		if !ok {
			return m, nil, true
		}
		m.bookingStore.Dispatch(store.SelectMovie{Movie: item.movie})
		m.state = stateLoadingTheaters
		ctx := m.beginRequest()
		return m, tea.Batch(m.fetchTheatersCmd(ctx, item.movie.Id), m.spinner.Tick), true

	case stateSelectTheater:
		item, ok := m.theaterList.SelectedItem().(theaterItem)
		if !ok {
			return m, nil, true
		}
		if len(item.theater.Showtimes) == 0 {
			return m, errCmd(errors.New("no showtimes available for this theater today")), true
		}
		m.bookingStore.Dispatch(store.SelectTheater{Theater: item.theater})
		m.showtimeList.Title = fmt.Sprintf("Showtimes • %s", item.theater.Name)
		m.showtimeList.SetItems(buildShowtimeItems(item.theater.Showtimes))
		m.showtimeList.Select(0)
		m.state = stateSelectShowtime
		return m, nil, true

	case stateSelectShowtime:
		item, ok := m.showtimeList.SelectedItem().(showtimeItem)
		if !ok {
			return m, nil, true
		}
		m.bookingStore.Dispatch(store.SelectShowtime{Showtime: item.showtime})
		m.seats = booking.GenerateSeats(seatCatalogSize, m.rng)
		m.seatRows = groupSeatsByRow(m.seats)
		m.cursorRow, m.cursorCol = 0, 0
		m = m.routeTo(stateSelectSeats)
		return m, nil, true
	}

	return m, nil, false
}

// routeTo enforces each screen's prerequisites: a target whose required
// selections are missing silently redirects to the movie list. The
// bookingStep field stays advisory; these checks are the actual gate.
func (m appModel) routeTo(target appState) appModel {
	st := m.bookingStore.State()
	ok := true
	switch target {
	case stateSelectTheater, stateLoadingTheaters:
		ok = st.SelectedMovie != nil
	case stateSelectShowtime:
		ok = st.SelectedMovie != nil && st.SelectedTheater != nil
	case stateSelectSeats:
		ok = st.SelectedMovie != nil && st.SelectedTheater != nil && st.SelectedShowtime != nil
	case statePayment:
		ok = st.SelectedMovie != nil && st.SelectedTheater != nil &&
			st.SelectedShowtime != nil && len(st.SelectedSeats) > 0
	case stateConfirmation:
		ok = len(st.Bookings) > 0
	}
	if !ok {
		m.state = stateSelectMovie
		return m
	}
	m.state = target
	return m
}

func (m appModel) goBack() appModel {
	m.abortInflight()
	switch m.state {
	case stateSelectTheater:
		m.state = stateSelectMovie
	case stateSelectShowtime:
		m.state = stateSelectTheater
	case stateSelectSeats:
		m.state = stateSelectShowtime
	case statePayment:
		m.bookingStore.Dispatch(store.SetBookingStep{Step: model.StepSeats})
		m.state = stateSelectSeats
	case stateConfirmation:
		m.bookingStore.Dispatch(store.ClearBooking{})
		m.state = stateSelectMovie
	case stateError:
		m.state = m.lastState
	}
	return m
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoadingMovies, stateLoadingTheaters:
		return header + "\n\n" + m.loadingView()
	case stateSelectMovie:
		return header + "\n\n" + m.movieList.View()
	case stateSelectTheater:
		return header + "\n\n" + m.theaterList.View()
	case stateSelectShowtime:
		return header + "\n\n" + m.showtimeList.View()
	case stateSelectSeats:
		return header + "\n\n" + m.renderSeatSelection()
	case statePayment:
		return header + "\n\n" + m.renderPayment()
	case stateConfirmation:
		return header + "\n\n" + m.renderConfirmation()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("CineSeat")
	st := m.bookingStore.State()

	sub := []string{fmt.Sprintf("Step: %s", st.Step)}
	if st.SelectedMovie != nil {
		sub = append(sub, fmt.Sprintf("Movie: %s", st.SelectedMovie.Title))
	}
	if st.SelectedTheater != nil {
		sub = append(sub, fmt.Sprintf("Theater: %s", st.SelectedTheater.Name))
	}
	if st.SelectedShowtime != nil {
		sub = append(sub, fmt.Sprintf("Showtime: %s %s", st.SelectedShowtime.Time, st.SelectedShowtime.Format))
	}
	if m.location != nil && m.location.City != "" {
		sub = append(sub, "Near: "+m.location.City)
	}
	if m.usedFallbackMovies && (m.state == stateSelectMovie || m.state == stateLoadingTheaters) {
		sub = append(sub, "offline catalog")
	}
	if m.usedFallbackTheaters && (m.state == stateSelectTheater || m.state == stateSelectShowtime) {
		sub = append(sub, "offline theaters")
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back • type to filter • enter select"
	switch m.state {
	case stateSelectSeats:
		hints = "ctrl+c quit • esc back • arrows move • space/enter toggle seat • p proceed to payment"
	case statePayment:
		hints = "ctrl+c quit • esc back • tab switch field • enter pay"
	case stateConfirmation:
		hints = "ctrl+c quit • c copy share text • e resend email • n book another"
	}

	toastLine := ""
	if m.toast != "" {
		toastLine = "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render(m.toast)
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + toastLine + "\n" + hint(hints)
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoadingMovies || m.state == stateLoadingTheaters
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingMovies:
		title = "Loading movies"
	case stateLoadingTheaters:
		title = "Finding theaters near you"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
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
	m.theaterList.SetSize(m.width, h)
	m.showtimeList.SetSize(m.width, h)
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectMovie:
		return &m.movieList
	case stateSelectTheater:
		return &m.theaterList
	case stateSelectShowtime:
		return &m.showtimeList
	default:
		return nil
	}
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

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingMovies:
		return stateSelectMovie
	case stateLoadingTheaters:
		return stateSelectMovie
	default:
		return state
	}
}

func (m appModel) fetchMoviesCmd(ctx context.Context) tea.Cmd {
	region := m.cfg.Region
	client := m.client
	return func() tea.Msg {
		if cached, fresh, err := cache.LoadMovieCache(region); err == nil && fresh && len(cached) > 0 {
			return moviesMsg{movies: cached}
		}
		movies, err := client.GetNowPlaying(ctx, region, 1)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return moviesMsg{movies: service.FallbackMovies(), fromFallback: true}
		}
		_ = cache.SaveMovieCache(region, movies)
		return moviesMsg{movies: movies}
	}
}

func (m appModel) fetchTheatersCmd(ctx context.Context, movieID string) tea.Cmd {
	client := m.client
	known := m.location
	return func() tea.Msg {
		location := known
		if location == nil {
			if detected, err := service.DetectCurrentLocation(ctx, nil); err == nil {
				location = &detected
			} else if errors.Is(err, context.Canceled) {
				return nil
			}
		}

		var lat, lng float64
		if location != nil {
			lat, lng = location.Latitude, location.Longitude
		}

		if cached, fresh, err := cache.LoadTheaterCache(lat, lng); err == nil && fresh && len(cached) > 0 {
			return theatersMsg{theaters: cached, location: location}
		}

		theaters, err := client.GetTheaters(ctx, lat, lng, movieID, time.Now())
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			return theatersMsg{
				theaters:     service.FallbackTheaters(lat, lng, rng),
				location:     location,
				fromFallback: true,
			}
		}
		_ = cache.SaveTheaterCache(lat, lng, theaters)
		return theatersMsg{theaters: theaters, location: location}
	}
}
