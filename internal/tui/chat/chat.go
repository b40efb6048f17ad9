// Package chat is an interactive prompt that runs one query at a time.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/Digital-Shane/like-that/internal/dispatch"
	"github.com/Digital-Shane/like-that/internal/tui"
	"github.com/Digital-Shane/like-that/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Querier answers one natural-language media query.
type Querier interface {
	Handle(ctx context.Context, query string) (dispatch.Envelope, error)
}

// ResultMsg carries the outcome of one query back to the model.
type ResultMsg struct {
	Query    string
	Envelope dispatch.Envelope
	Err      error
}

// chrome is the number of rows used by the header, input and status bar.
const chrome = 4

// Model is the chat prompt. Queries are independent; only the latest result
// is shown.
type Model struct {
	querier Querier
	ctx     context.Context
	timeout time.Duration
	theme   theme.Theme

	input   textinput.Model
	spinner spinner.Model
	results *viewport.Model

	width  int
	height int
	busy   bool

	lastQuery string
	lastErr   error
	lastEnv   *dispatch.Envelope
}

// Option configures a Model during construction.
type Option func(*Model)

func WithTheme(th theme.Theme) Option {
	return func(m *Model) {
		m.theme = th
	}
}

// WithTimeout bounds each query. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(m *Model) {
		m.timeout = d
	}
}

// WithContext sets the parent context for queries.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// New creates a chat model over q.
func New(q Querier, opts ...Option) *Model {
	m := &Model{
		querier: q,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}

	initOpts := append([]Option{WithTheme(theme.Default())}, opts...)
	for _, opt := range initOpts {
		opt(m)
	}

	m.input = textinput.New()
	m.input.Prompt = m.theme.Icon("prompt") + " "
	m.input.Placeholder = "a quote, a genre, or a title you liked"
	m.input.Focus()

	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(m.theme.SpinnerStyle()),
	)

	results := viewport.New(m.width, m.height-chrome)
	results.Style = lipgloss.NewStyle().Padding(0, m.theme.Spacing().CardPadding)
	m.results = &results
	m.resize()
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit

		case "enter":
			query := m.input.Value()
			if m.busy || strings.TrimSpace(query) == "" {
				return m, nil
			}
			m.busy = true
			m.lastQuery = query
			m.input.Reset()
			return m, tea.Batch(m.spinner.Tick, m.run(query))

		case "pgup":
			m.results.HalfPageUp()
			return m, nil

		case "pgdown":
			m.results.HalfPageDown()
			return m, nil
		}

	case ResultMsg:
		m.busy = false
		m.lastErr = msg.Err
		m.lastEnv = nil
		if msg.Err == nil {
			env := msg.Envelope
			m.lastEnv = &env
		}
		m.refresh()
		m.results.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.HeaderStyle().Width(m.width).Render(m.theme.Icon("search") + " like-that"))
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteByte('\n')

	if m.busy {
		b.WriteString(m.spinner.View() + " " + m.theme.MutedStyle().Render("Searching for "+m.lastQuery+"..."))
	} else {
		b.WriteString(m.results.View())
	}
	b.WriteByte('\n')

	status := "enter: search • pgup/pgdn: scroll • esc: quit"
	b.WriteString(m.theme.StatusBarStyle().Width(m.width).Render(status))
	return b.String()
}

// LastQuery returns the most recently submitted query.
func (m *Model) LastQuery() string { return m.lastQuery }

// LastErr returns the error of the most recent query, if any.
func (m *Model) LastErr() error { return m.lastErr }

func (m *Model) run(query string) tea.Cmd {
	q, parent, timeout := m.querier, m.ctx, m.timeout
	return func() tea.Msg {
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}
		env, err := q.Handle(ctx, query)
		return ResultMsg{Query: query, Envelope: env, Err: err}
	}
}

func (m *Model) resize() {
	m.input.Width = max(m.width-lipgloss.Width(m.input.Prompt)-1, 1)
	m.results.Width = m.width
	m.results.Height = max(m.height-chrome, 1)
}

func (m *Model) refresh() {
	inner := m.width - m.results.Style.GetHorizontalFrameSize()
	switch {
	case m.lastErr != nil:
		m.results.SetContent(tui.RenderError(m.theme, m.lastErr, inner))
	case m.lastEnv != nil:
		m.results.SetContent(tui.RenderWith(m.theme, *m.lastEnv, inner))
	default:
		m.results.SetContent(m.theme.MutedStyle().Render("Ask for a movie or a show."))
	}
}
