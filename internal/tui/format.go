package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatReviews renders a review count with grouping, e.g. "(12,408)".
func FormatReviews(n int) string {
	if n < 0 {
		n = 0
	}
	return printer.Sprintf("(%d)", n)
}

// FormatRating renders a rating with one decimal and a star.
func FormatRating(r float64) string {
	return fmt.Sprintf("%.1f ★", r)
}

// FormatVersion renders the "Version x • size" line of the detail view.
func FormatVersion(version, size string) string {
	parts := []string{}
	if v := strings.TrimSpace(version); v != "" {
		parts = append(parts, "Version "+v)
	}
	if s := strings.TrimSpace(size); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " • ")
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// pageDots renders one dot per carousel page with the current one filled.
func pageDots(pages, index int, on, off func(...string) string) string {
	if pages <= 0 {
		return ""
	}
	dots := make([]string, pages)
	for i := range dots {
		if i == index {
			dots[i] = on("●")
		} else {
			dots[i] = off("○")
		}
	}
	return strings.Join(dots, " ")
}
