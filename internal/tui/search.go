// Package tui provides the interactive terminal book search.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/bookfinder/internal/book"
	bferrors "github.com/lepinkainen/bookfinder/internal/errors"
	"github.com/lepinkainen/bookfinder/internal/search"
)

const (
	defaultWidth     = 80
	minWidth         = 40
	descriptionLines = 2
)

// pingMsg reports the startup API connection check.
type pingMsg struct {
	err error
}

type connection int

const (
	connChecking connection = iota
	connOK
	connFailed
	connSkipped
)

type searchModel struct {
	ctx     context.Context
	ctrl    *search.Controller
	ping    func(context.Context) error
	input   textinput.Model
	spinner spinner.Model
	styles  cardStyles

	width         int
	cursor        int
	showFavorites bool

	status     string
	statusKind search.EventKind
	hasStatus  bool

	conn    connection
	connErr error
}

func newSearchModel(ctx context.Context, ctrl *search.Controller, ping func(context.Context) error) *searchModel {
	ti := textinput.New()
	ti.Placeholder = "Search by title, author or ISBN"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = defaultWidth - 4
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	conn := connChecking
	if ping == nil {
		conn = connSkipped
	}

	return &searchModel{
		ctx:     ctx,
		ctrl:    ctrl,
		ping:    ping,
		input:   ti,
		spinner: sp,
		styles:  newCardStyles(),
		width:   defaultWidth,
		conn:    conn,
	}
}

func (m *searchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.ping != nil && m.ctrl.View().Ready {
		cmds = append(cmds, m.pingCmd())
	}
	return tea.Batch(cmds...)
}

func (m *searchModel) pingCmd() tea.Cmd {
	return func() tea.Msg {
		return pingMsg{err: m.ping(m.ctx)}
	}
}

func (m *searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			m.cursor = 0
			m.showFavorites = false
			m.ctrl.QueryChanged(after)
		}
		return m, cmd

	case eventMsg:
		m.status = msg.Message()
		m.statusKind = msg.Kind
		m.hasStatus = true
		return m, nil

	case pingMsg:
		if msg.err != nil {
			m.conn = connFailed
			m.connErr = msg.err
		} else {
			m.conn = connOK
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = max(minWidth, msg.Width)
		m.input.Width = m.width - 4
		return m, nil
	}

	return m, nil
}

// handleKey processes navigation and command keys. Everything else goes to
// the text input.
func (m *searchModel) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return true, tea.Quit
	case "enter":
		m.showFavorites = false
		m.ctrl.Submit()
	case "esc":
		m.input.SetValue("")
		m.cursor = 0
		m.ctrl.QueryChanged("")
	case "up", "ctrl+k":
		m.cursor = max(0, m.cursor-1)
	case "down", "ctrl+j":
		m.cursor = min(m.cursor+1, max(0, len(m.visibleBooks())-1))
	case "pgdown", "ctrl+n":
		m.ctrl.NextPage()
		m.cursor = 0
	case "pgup", "ctrl+p":
		m.ctrl.PrevPage()
		m.cursor = 0
	case "ctrl+f":
		if b, ok := m.selected(); ok {
			m.ctrl.ToggleFavorite(b)
			m.cursor = min(m.cursor, max(0, len(m.visibleBooks())-1))
		}
	case "ctrl+g", "ctrl+y", "ctrl+r":
		m.cycleFacet(msg.String())
	case "tab":
		m.showFavorites = !m.showFavorites
		m.cursor = 0
	default:
		return false, nil
	}
	return true, nil
}

func (m *searchModel) cycleFacet(key string) {
	v := m.ctrl.View()
	f := v.Filter
	switch key {
	case "ctrl+g":
		f.Genre = cycle(v.Facets.Genres, f.Genre)
	case "ctrl+y":
		f.Year = cycle(v.Facets.Years, f.Year)
	case "ctrl+r":
		f.Rating = cycle(v.Facets.Ratings, f.Rating)
	}
	m.ctrl.SetFilter(f)
	m.cursor = 0
}

// cycle returns the value after current, wrapping around. An unknown or
// empty current value moves to the second entry, the first being "All".
func cycle(values []string, current string) string {
	if len(values) == 0 {
		return ""
	}
	i := slices.Index(values, current)
	if i < 0 {
		i = 0
	}
	return values[(i+1)%len(values)]
}

func (m *searchModel) visibleBooks() []book.Book {
	if m.showFavorites {
		return m.ctrl.Favorites()
	}
	return m.ctrl.View().Page.Items
}

func (m *searchModel) selected() (book.Book, bool) {
	books := m.visibleBooks()
	if m.cursor < 0 || m.cursor >= len(books) {
		return book.Book{}, false
	}
	return books[m.cursor], true
}

func (m *searchModel) View() string {
	v := m.ctrl.View()

	sections := []string{m.headerView(v), m.input.View()}

	if !v.Ready {
		sections = append(sections, configErrorStyle.Render(bferrors.ErrMissingAPIKey.Error()))
	}

	sections = append(sections, m.facetView(v), m.statusView(v))

	if m.showFavorites {
		sections = append(sections, m.listView(m.ctrl.Favorites(), "No favorites yet. Press ctrl+f on a book to add it."))
	} else {
		empty := ""
		if v.State.Status == search.StatusSuccess {
			empty = "No books found. Please try a different search term."
		}
		sections = append(sections, m.listView(v.Page.Items, empty))
		if v.Matches > 0 {
			sections = append(sections, statusStyle.Render(fmt.Sprintf("Page %d/%d (%d books)", v.Page.Page, v.Page.TotalPages, v.Matches)))
		}
	}

	sections = append(sections, helpStyle.Render(
		"enter search | up/down select | pgup/pgdown page | ctrl+f favorite | tab favorites\n"+
			"ctrl+g genre | ctrl+y year | ctrl+r rating | esc clear | ctrl+c quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *searchModel) headerView(v search.View) string {
	title := headerStyle.Render("Book Recommendations")
	var conn string
	switch m.conn {
	case connOK:
		conn = successStyle.Render("Connected to Google Books API")
	case connFailed:
		conn = errorStyle.Render("Failed to connect to Google Books API")
	case connChecking:
		if v.Ready {
			conn = statusStyle.Render(m.spinner.View() + " Connecting...")
		}
	}
	favorites := m.styles.favorite.Render(fmt.Sprintf("♥ %d", v.Favorites))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", favorites, "  ", conn)
}

func (m *searchModel) facetView(v search.View) string {
	label := func(value, all string) string {
		if value == "" {
			return all
		}
		return value
	}
	return facetStyle.Render(fmt.Sprintf("Genre: %s | Year: %s | Rating: %s",
		label(v.Filter.Genre, search.AllGenres),
		label(v.Filter.Year, search.AllYears),
		label(v.Filter.Rating, search.AllRatings),
	))
}

func (m *searchModel) statusView(v search.View) string {
	switch v.State.Status {
	case search.StatusLoading:
		return statusStyle.Render(m.spinner.View() + " Searching...")
	case search.StatusError:
		return errorStyle.Render(v.State.ErrorMessage)
	}
	if !m.hasStatus {
		return ""
	}
	if m.statusKind == search.EventSucceeded || m.statusKind == search.EventFavoriteAdded {
		return successStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

func (m *searchModel) listView(books []book.Book, empty string) string {
	if len(books) == 0 {
		return statusStyle.Render(empty)
	}

	cards := make([]string, 0, len(books))
	for i, b := range books {
		cards = append(cards, m.renderCard(b, i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m *searchModel) renderCard(b book.Book, selected bool) string {
	inner := m.width - 6

	title := b.Title
	if m.ctrl.IsFavorite(b) {
		title = m.styles.favorite.Render("♥ ") + m.styles.title.Render(truncate(title, inner-2))
	} else {
		title = m.styles.title.Render(truncate(title, inner))
	}

	lines := []string{
		title,
		m.styles.author.Render(truncate("by "+b.Author, inner)),
		m.styles.metadata.Render(truncate(formatMetadata(b), inner)),
	}

	ratingLine := m.styles.price.Render(b.PriceLabel())
	if b.Rating > 0 {
		ratingLine = m.styles.rating.Render(b.RatingLabel()) + "  " + ratingLine
	}
	lines = append(lines, ratingLine)

	if desc := wrapLines(b.Description, inner, descriptionLines); desc != "" {
		lines = append(lines, m.styles.description.Render(desc))
	}

	container := m.styles.normal
	if selected {
		container = m.styles.selected
	}
	return container.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// formatMetadata joins year, genre, publisher, pages and language.
func formatMetadata(b book.Book) string {
	parts := []string{b.Year, b.Genre}
	if b.Publisher != book.UnknownPublisher {
		parts = append(parts, b.Publisher)
	}
	if b.Pages > 0 {
		parts = append(parts, fmt.Sprintf("%d pages", b.Pages))
	}
	if b.Language != book.UnknownLanguage {
		parts = append(parts, strings.ToUpper(b.Language))
	}
	return strings.Join(parts, " | ")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// wrapLines word-wraps value to width and keeps at most n lines, marking a
// cut with "...".
func wrapLines(value string, width, n int) string {
	words := strings.Fields(value)
	if len(words) == 0 || width <= 0 {
		return ""
	}

	var lines []string
	line := ""
	for _, w := range words {
		switch {
		case line == "":
			line = w
		case len([]rune(line))+1+len([]rune(w)) <= width:
			line += " " + w
		default:
			lines = append(lines, truncate(line, width))
			line = w
		}
	}
	lines = append(lines, truncate(line, width))

	if len(lines) > n {
		lines = lines[:n]
		last := []rune(lines[n-1])
		if len(last) > width-3 {
			last = last[:max(0, width-3)]
		}
		lines[n-1] = string(last) + "..."
	}
	return strings.Join(lines, "\n")
}
