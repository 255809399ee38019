package screen

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/aguxez/mealfinder/models"
)

const (
	Placeholder = "Enter a meal name"
	ButtonLabel = "Get Meal"
	NoMealText  = "No meal was found"
)

// MealFetcher returns the meal for term, or nil when there is none to show.
type MealFetcher interface {
	FetchMeal(ctx context.Context, term string) *models.Meal
}

type NotesWriter interface {
	WriteNotes(ctx context.Context, meal models.Meal) (string, error)
}

var (
	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle  = lipgloss.NewStyle().PaddingLeft(2).MarginTop(1)
)

// Model is the meal screen. It owns the search text and the current meal;
// the meal itself is drawn by RenderMeal.
type Model struct {
	fetcher    MealFetcher
	notes      NotesWriter
	notesStyle string

	input        textinput.Model // Search field
	meal         *models.Meal    // Current meal, nil when nothing was found
	fetchedAt    time.Time       // When meal was last replaced
	loading      bool            // Whether a meal request is in flight
	notesText    string          // Kitchen notes for the current meal
	notesLoading bool            // Whether a notes request is in flight
	notice       string          // One-line notice under the content

	spinner  spinner.Model
	viewport viewport.Model
	keys     keyMap
	help     help.Model
	width    int
	height   int
}

type Option func(*Model)

// WithNotes enables kitchen notes rendered with the given glamour style.
func WithNotes(n NotesWriter, style string) Option {
	return func(m *Model) {
		m.notes = n
		if style != "" {
			m.notesStyle = style
		}
	}
}

func New(fetcher MealFetcher, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "> "
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		fetcher:    fetcher,
		notesStyle: "dark",
		input:      ti,
		loading:    true,
		spinner:    s,
		viewport:   viewport.New(0, 0),
		keys:       keys,
		help:       help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.keys.Notes.SetEnabled(m.notes != nil)
	return m
}

type gotMealMsg struct {
	term string
	meal *models.Meal
}

type gotNotesMsg struct {
	mealID string
	notes  string
	err    error
}

// Init fetches a random meal for the first display.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.requestMeal(""))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.help.Width = msg.Width
		m.resize()
		m.refreshContent()
		return m, nil

	case gotMealMsg:
		// The last response to arrive wins, whatever order requests were sent.
		m.loading = false
		m.meal = msg.meal
		m.fetchedAt = time.Now()
		m.notesText = ""
		m.notice = ""
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil

	case gotNotesMsg:
		m.notesLoading = false
		if m.meal == nil || m.meal.ID != msg.mealID {
			return m, nil
		}
		if msg.err != nil {
			m.notice = "Could not write kitchen notes"
			m.resize()
			return m, nil
		}
		m.notesText = msg.notes
		m.refreshContent()
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.notesLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Fetch):
			return m.submit()

		case key.Matches(msg, m.keys.Random):
			m.loading = true
			return m, m.requestMeal("")

		case key.Matches(msg, m.keys.Notes):
			if m.meal == nil || m.notesLoading {
				return m, nil
			}
			m.notesLoading = true
			m.notice = ""
			return m, tea.Batch(m.spinner.Tick, writeNotesCmd(m.notes, *m.meal))

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil

		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
			return m, nil

		case key.Matches(msg, m.keys.PageUp):
			m.viewport.ViewUp()
			return m, nil

		case key.Matches(msg, m.keys.PageDown):
			m.viewport.ViewDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit is the Get Meal action. The field is cleared before the result is
// known, so it ends up empty on both success and failure.
func (m Model) submit() (tea.Model, tea.Cmd) {
	term := m.input.Value()
	m.input.SetValue("")
	m.loading = true
	return m, m.requestMeal(term)
}

func (m Model) View() string {
	var body string
	switch {
	case m.loading:
		body = emptyStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center,
			m.spinner.View(),
			"Fetching meal",
		))
	case m.meal == nil:
		body = emptyStyle.Render(NoMealText)
	case m.height == 0:
		body = m.content()
	default:
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView())
}

func (m Model) headerView() string {
	bar := lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", buttonStyle.Render(ButtonLabel))
	return bar + "\n"
}

func (m Model) footerView() string {
	var lines []string
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(m.notice))
	}
	if m.notesLoading {
		lines = append(lines, m.spinner.View()+"Writing kitchen notes")
	}
	if m.meal != nil && !m.fetchedAt.IsZero() {
		lines = append(lines, statusStyle.Render("fetched "+humanize.Time(m.fetchedAt)))
	}
	lines = append(lines, m.help.View(m.keys))
	return lipgloss.NewStyle().PaddingLeft(2).MarginTop(1).Render(strings.Join(lines, "\n"))
}

// resize gives the viewport whatever height the header and footer leave.
func (m *Model) resize() {
	h := m.height - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView())
	if h < 0 {
		h = 0
	}
	m.viewport.Height = h
}

func (m *Model) refreshContent() {
	m.viewport.SetContent(m.content())
	m.resize()
}

func (m Model) content() string {
	if m.meal == nil {
		return ""
	}
	out := RenderMeal(*m.meal, m.viewport.Width)
	if m.notesText != "" {
		out += "\n\n" + m.renderNotes()
	}
	return out
}

func (m Model) renderNotes() string {
	wrap := m.viewport.Width
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.notesStyle),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return m.notesText
	}
	out, err := r.Render(m.notesText)
	if err != nil {
		return m.notesText
	}
	return out
}

func (m Model) requestMeal(term string) tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchMealCmd(m.fetcher, term),
	)
}

func fetchMealCmd(f MealFetcher, term string) tea.Cmd {
	return func() tea.Msg {
		return gotMealMsg{term: term, meal: f.FetchMeal(context.Background(), term)}
	}
}

func writeNotesCmd(n NotesWriter, meal models.Meal) tea.Cmd {
	return func() tea.Msg {
		notes, err := n.WriteNotes(context.Background(), meal)
		return gotNotesMsg{mealID: meal.ID, notes: notes, err: err}
	}
}
