// Package tui renders query results for the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/Digital-Shane/like-that/internal/dispatch"
	"github.com/Digital-Shane/like-that/internal/media"
	"github.com/Digital-Shane/like-that/internal/tui/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth = 80
	minWidth     = 24
)

func init() {
	runewidth.DefaultCondition.EastAsianWidth = false
	runewidth.DefaultCondition.StrictEmojiNeutral = true
}

// Render draws env with the default theme, fitted to width columns.
func Render(env dispatch.Envelope, width int) string {
	return RenderWith(theme.Default(), env, width)
}

// RenderWith draws env with th.
func RenderWith(th theme.Theme, env dispatch.Envelope, width int) string {
	width = fitWidth(width)

	if s, ok := env.Single(); ok {
		return renderCard(th, s, width)
	}

	items, ok := env.Items()
	if !ok {
		return th.MutedStyle().Render("(empty result)")
	}

	var b strings.Builder
	header := runewidth.Truncate(th.Icon("list")+" "+env.Title, width-2, "…")
	b.WriteString(th.HeaderStyle().Render(header))
	b.WriteByte('\n')

	if len(items) == 0 {
		b.WriteString(th.MutedStyle().Render("No titles found."))
		return b.String()
	}

	cards := make([]string, len(items))
	for i, s := range items {
		cards[i] = renderCard(th, s, width)
	}
	b.WriteString(strings.Join(cards, strings.Repeat("\n", th.Spacing().CardGap+1)))
	return b.String()
}

// RenderError draws a failed query.
func RenderError(th theme.Theme, err error, width int) string {
	msg := th.Icon("error") + " " + err.Error()
	return th.ErrorStyle().Width(fitWidth(width)).Render(msg)
}

func renderCard(th theme.Theme, s media.Summary, width int) string {
	style := th.CardStyle()
	inner := width - style.GetHorizontalFrameSize()

	rating := th.BadgeStyle(theme.RatingBadge(s.VoteAverage)).
		Render(fmt.Sprintf("%s %.1f", th.Icon("star"), s.VoteAverage))
	titleWidth := inner - lipgloss.Width(rating) - 1
	title := th.TitleStyle().Render(runewidth.Truncate(s.Title, max(titleWidth, 1), "…"))
	gap := strings.Repeat(" ", max(inner-lipgloss.Width(title)-lipgloss.Width(rating), 1))

	lines := []string{title + gap + rating}
	if meta := metaLine(th, s); meta != "" {
		lines = append(lines, th.MutedStyle().Render(runewidth.Truncate(meta, inner, "…")))
	}
	lines = append(lines, runewidth.Truncate(s.Overview, inner, "…"))

	return style.Width(width - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

func metaLine(th theme.Theme, s media.Summary) string {
	var parts []string
	if s.ReleaseDate != "" {
		parts = append(parts, th.Icon("calendar")+" "+s.ReleaseDate)
	}
	if len(s.Genres) > 0 {
		parts = append(parts, th.Icon("genre")+" "+strings.Join(s.Genres, ", "))
	}
	return strings.Join(parts, "  ")
}

func fitWidth(width int) int {
	if width <= 0 {
		return defaultWidth
	}
	return max(width, minWidth)
}
