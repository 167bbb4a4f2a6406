package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/client/ratings"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorOK      = lipgloss.Color("#10B981")
	colorWarn    = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	priceStyle = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
	starStyle  = lipgloss.NewStyle().Foreground(colorWarn)
	okStyle    = lipgloss.NewStyle().Foreground(colorOK).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Background(colorOK).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// stars renders a 0..5 score as filled and empty stars.
func stars(score float64) string {
	n := int(math.Round(score))
	n = max(0, min(n, ratings.MaxScore))
	return strings.Repeat("★", n) + strings.Repeat("☆", ratings.MaxScore-n)
}

// ratingLine renders a summary such as "★★★★☆ 4.2 (5 ratings)".
func ratingLine(s ratings.Summary) string {
	if s.Count == 0 && s.Average == 0 {
		return mutedStyle.Render("No ratings yet")
	}
	noun := "ratings"
	if s.Count == 1 {
		noun = "rating"
	}
	return fmt.Sprintf("%s %.1f (%d %s)", starStyle.Render(stars(s.Average)), s.Average, s.Count, noun)
}

func formatPrice(p float64) string {
	return fmt.Sprintf("R%.2f", p)
}

// sellerName renders a username with the verified badge when it applies.
func sellerName(u models.User) string {
	name := u.Username
	if name == "" {
		name = "unknown seller"
	}
	if u.Verified {
		return name + " " + badgeStyle.Render("✓ Verified")
	}
	return name
}

// listingRow renders a listing as one line of a result list.
func listingRow(l models.Listing) string {
	row := fmt.Sprintf("%s  %s  %s  %s",
		mutedStyle.Render("#"+l.ID.String()),
		titleStyle.Render(l.Title),
		priceStyle.Render(formatPrice(l.Price)),
		mutedStyle.Render(l.Category),
	)
	if l.Seller != nil && l.Seller.Username != "" {
		row += "  by " + sellerName(*l.Seller)
	}
	return row
}

func listingList(ls []models.Listing) string {
	if len(ls) == 0 {
		return mutedStyle.Render("No listings found")
	}
	rows := make([]string, 0, len(ls))
	for _, l := range ls {
		rows = append(rows, listingRow(l))
	}
	return strings.Join(rows, "\n")
}

// ratingEntry renders one review: author, stars, label, date and comment.
func ratingEntry(r models.Rating) string {
	author := r.FromUsername
	if author == "" {
		author = "anonymous"
	}
	line := fmt.Sprintf("%s %s %s", starStyle.Render(stars(float64(r.Rating))), author, mutedStyle.Render(ratings.Label(r.Rating)))
	if t, ok := r.When(); ok {
		line += " " + mutedStyle.Render(t.Format("2006-01-02"))
	}
	if r.Comment != "" {
		line += "\n    " + r.Comment
	}
	return line
}

func ratingList(rs []models.Rating) string {
	if len(rs) == 0 {
		return mutedStyle.Render("  No reviews yet")
	}
	rows := make([]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, "  "+ratingEntry(r))
	}
	return strings.Join(rows, "\n")
}

// section renders a heading followed by its body.
func section(title, body string) string {
	return titleStyle.Render(title) + "\n" + body
}

// userCard renders the boxed profile header of a store or profile page.
func userCard(u models.User, summary ratings.Summary) string {
	lines := []string{titleStyle.Render(sellerName(u)), ratingLine(summary)}
	if u.Email != "" {
		lines = append(lines, mutedStyle.Render(u.Email))
	}
	if u.Bio != "" {
		lines = append(lines, u.Bio)
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
