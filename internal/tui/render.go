package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/storefront/internal/catalog"
	"github.com/jask/storefront/internal/navigation"
)

func (a *App) frame(body string) string {
	title := a.styles.title.Render("storefront")
	status := ""
	if a.status != "" {
		if a.statusErr {
			status = a.styles.statusErr.Render(a.status)
		} else {
			status = a.styles.status.Render(a.status)
		}
	}
	helpView := a.help.View(a.keys.forDetail(a.loaded && a.session.View() == navigation.ViewDetail))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, status, a.renderTabBar(), helpView)
}

// tabs of the bottom bar; only Apps has content.
var tabs = []string{"Today", "Games", "Apps", "Search"}

func (a *App) renderTabBar() string {
	items := make([]string, len(tabs))
	for i, name := range tabs {
		if name == "Apps" {
			items[i] = a.styles.tabActive.Render(name)
		} else {
			items[i] = a.styles.tab.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (a *App) renderLoading() string {
	return a.spinner.View() + " " + a.styles.muted.Render("loading catalog…")
}

func (a *App) renderList() string {
	if len(a.apps) == 0 {
		return a.styles.muted.Render("No apps available.")
	}
	cols := a.columns()
	rows := (len(a.apps) + cols - 1) / cols

	visible := (a.height - chromeHeight) / cardHeight
	if visible < 1 {
		visible = 1
	}
	cursorRow := a.cursor / cols
	first := 0
	if cursorRow >= visible {
		first = cursorRow - visible + 1
	}
	last := first + visible
	if last > rows {
		last = rows
	}

	lines := make([]string, 0, last-first)
	for r := first; r < last; r++ {
		cards := make([]string, 0, cols)
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(a.apps) {
				break
			}
			cards = append(cards, a.renderCard(a.apps[i], i == a.cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *App) renderCard(app catalog.App, active bool) string {
	inner := a.cardWidth - 4 // border and padding
	style := a.styles.card
	if active {
		style = a.styles.cardActive
	}
	content := strings.Join([]string{
		a.styles.muted.Render(truncate(app.IconURL, inner)),
		a.styles.name.Render(truncate(app.Name, inner)),
		a.styles.subtitle.Render(truncate(app.Subtitle, inner)),
		a.styles.rating.Render(FormatRating(app.Rating)) + " " + a.styles.muted.Render(FormatReviews(app.Reviews)),
		"",
		a.styles.button.Render("GET"),
	}, "\n")
	return style.Width(a.cardWidth - 2).Render(content)
}

func (a *App) renderDetail() string {
	app, ok := a.session.Selected()
	if !ok {
		return ""
	}
	width := a.width - 2
	if width < 20 {
		width = 20
	}

	parts := make([]string, 0, 10)
	if car := a.session.Carousel(); car.Pages() > 0 {
		shot, _ := car.Current()
		parts = append(parts,
			a.styles.muted.Render(truncate(shot, width)),
			pageDots(car.Pages(), car.Index(), a.styles.dotOn.Render, a.styles.dotOff.Render),
			"",
		)
	}
	if icon := strings.TrimSpace(app.IconURL); icon != "" {
		parts = append(parts, a.styles.muted.Render(truncate(icon, width)))
	}
	parts = append(parts,
		a.styles.name.Render(truncate(app.Name, width)),
		a.styles.subtitle.Render(truncate(app.Subtitle, width)),
		a.styles.rating.Render(FormatRating(app.Rating))+" "+a.styles.muted.Render(FormatReviews(app.Reviews)),
		"",
		a.styles.button.Render("GET"),
		"",
		a.styles.muted.Render(FormatVersion(app.Version, app.Size)),
	)
	if desc := strings.TrimSpace(app.Description); desc != "" {
		parts = append(parts, "", a.styles.body.Width(width).Render(desc))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
