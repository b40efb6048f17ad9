package theme

import (
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
)

// IconSet maps semantic names to icons.
type IconSet map[string]string

func (s IconSet) clone() IconSet {
	if s == nil {
		return nil
	}
	clone := make(IconSet, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// Colors holds the shared color palette.
type Colors struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Borders defines reusable border styles.
type Borders struct {
	Card lipgloss.Border
}

// Spacing captures commonly used spacing values.
type Spacing struct {
	CardPadding    int
	CardGap        int
	StatusHPadding int
}

// BadgeKind enumerates supported badge style variants.
type BadgeKind int

const (
	BadgeInfo BadgeKind = iota
	BadgeSuccess
	BadgeWarning
	BadgeError
	BadgeMuted
)

// Rating thresholds for RatingBadge, on TMDB's 0-10 scale.
const (
	highRating = 7.5
	midRating  = 6.0
)

// Theme centralizes palette, border, spacing, and icon configuration.
type Theme struct {
	colors   Colors
	borders  Borders
	spacing  Spacing
	icons    IconSet
	fallback IconSet
}

// Option configures a Theme during construction.
type Option func(*Theme)

func WithIconSet(set IconSet) Option {
	return func(t *Theme) {
		t.icons = set.clone()
	}
}

func WithColors(colors Colors) Option {
	return func(t *Theme) {
		t.colors = colors
	}
}

func WithSpacing(spacing Spacing) Option {
	return func(t *Theme) {
		t.spacing = spacing
	}
}

func WithBorders(borders Borders) Option {
	return func(t *Theme) {
		t.borders = borders
	}
}

// New constructs a Theme with optional overrides applied.
func New(opts ...Option) Theme {
	defaults := []Option{
		WithColors(Colors{
			Primary:    lipgloss.Color("#2d3a6b"),
			Secondary:  lipgloss.Color("#4a5a9c"),
			Accent:     lipgloss.Color("#e0a526"),
			Background: lipgloss.Color("#f8f8f8"),
			Muted:      lipgloss.Color("#9ba8c0"),
			Success:    lipgloss.Color("#5dc796"),
			Warning:    lipgloss.Color("#e8b84a"),
			Error:      lipgloss.Color("#f04c56"),
		}),
		WithBorders(Borders{Card: lipgloss.RoundedBorder()}),
		WithSpacing(Spacing{CardPadding: 1, CardGap: 1, StatusHPadding: 1}),
		WithIconSet(defaultIconSet()),
	}

	t := Theme{fallback: asciiIcons.clone()}

	for _, opt := range append(defaults, opts...) {
		opt(&t)
	}

	if t.icons == nil {
		t.icons = defaultIconSet()
	}

	return t
}

// Default returns the default Theme configuration.
func Default() Theme {
	return New()
}

func (t Theme) Colors() Colors {
	return t.colors
}

func (t Theme) Borders() Borders {
	return t.borders
}

func (t Theme) Spacing() Spacing {
	return t.spacing
}

// Icon returns a themed icon with ASCII fallback if unavailable.
func (t Theme) Icon(name string) string {
	if icon, ok := t.icons[name]; ok {
		return icon
	}
	if icon, ok := t.fallback[name]; ok {
		return icon
	}
	return ""
}

// IconSet returns a copy of the themed icon map.
func (t Theme) IconSet() IconSet {
	return t.icons.clone()
}

// HeaderStyle is used for list titles.
func (t Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Background(t.colors.Primary).
		Foreground(t.colors.Background).
		Padding(0, 1)
}

// StatusBarStyle is used for the chat footer.
func (t Theme) StatusBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.colors.Secondary).
		Foreground(t.colors.Background).
		Padding(0, t.spacing.StatusHPadding)
}

// CardStyle wraps one media summary.
func (t Theme) CardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.borders.Card).
		BorderForeground(t.colors.Secondary).
		Padding(0, t.spacing.CardPadding)
}

// TitleStyle is used for media titles inside a card.
func (t Theme) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(t.colors.Primary)
}

// MutedStyle is used for secondary details such as dates and genres.
func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.colors.Muted)
}

// ErrorStyle is used for failed queries.
func (t Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.colors.Error)
}

// SpinnerStyle colors the busy indicator.
func (t Theme) SpinnerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.colors.Accent)
}

// BadgeStyle returns the shared badge style for the requested variant.
func (t Theme) BadgeStyle(kind BadgeKind) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)

	switch kind {
	case BadgeSuccess:
		return base.Background(t.colors.Success).Foreground(t.colors.Background)
	case BadgeWarning:
		return base.Background(t.colors.Warning).Foreground(t.colors.Background)
	case BadgeError:
		return base.Background(t.colors.Error).Foreground(t.colors.Background)
	case BadgeMuted:
		return base.Background(t.colors.Muted).Foreground(t.colors.Background)
	default:
		return base.Background(t.colors.Accent).Foreground(t.colors.Background)
	}
}

// RatingBadge picks a badge variant for an average vote. Zero means unrated.
func RatingBadge(vote float32) BadgeKind {
	switch {
	case vote <= 0:
		return BadgeMuted
	case vote >= highRating:
		return BadgeSuccess
	case vote >= midRating:
		return BadgeWarning
	default:
		return BadgeError
	}
}

// defaultIconSet chooses the best icon set for the current terminal.
func defaultIconSet() IconSet {
	if isLimitedTerminal() {
		return asciiIcons.clone()
	}
	return emojiIcons.clone()
}

// isLimitedTerminal detects environments where ASCII icons are preferable.
func isLimitedTerminal() bool {
	if os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_TTY") != "" || os.Getenv("SSH_CONNECTION") != "" {
		return true
	}
	return runtime.GOOS == "windows"
}

var emojiIcons = IconSet{
	"movie":    "🎬",
	"tv":       "📺",
	"list":     "📋",
	"star":     "⭐",
	"calendar": "📅",
	"genre":    "🎭",
	"search":   "🔎",
	"error":    "❌",
	"prompt":   "›",
}

var asciiIcons = IconSet{
	"movie":    "[M]",
	"tv":       "[TV]",
	"list":     "[#]",
	"star":     "*",
	"calendar": "[C]",
	"genre":    "[G]",
	"search":   "[?]",
	"error":    "[!]",
	"prompt":   ">",
}
