// Package terminal renders a checkout session for the browse command.
package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"skip-checkout/catalog"
	"skip-checkout/progress"
	"skip-checkout/session"
	"skip-checkout/utils"
)

var (
	green = lipgloss.Color("76")
	red   = lipgloss.Color("204")
	dim   = lipgloss.Color("243")
	faint = lipgloss.Color("238")
)

var (
	completedStyle = lipgloss.NewStyle().Foreground(green)
	currentStyle   = lipgloss.NewStyle().Foreground(green).Bold(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(dim)
	blockedStyle   = lipgloss.NewStyle().Foreground(red)
	panelStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(green).
			Padding(0, 1)
)

const progressBarWidth = 30

// Steps renders the step indicator on one line
func Steps(statuses []progress.StepStatus) string {
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		switch s.Status {
		case progress.Completed:
			parts = append(parts, completedStyle.Render("✓ "+s.Title))
		case progress.Current:
			parts = append(parts, currentStyle.Render(fmt.Sprintf("%d %s", s.Ordinal, s.Title)))
		default:
			parts = append(parts, pendingStyle.Render(fmt.Sprintf("%d %s", s.Ordinal, s.Title)))
		}
	}
	return strings.Join(parts, pendingStyle.Render(" ── "))
}

// ProgressBar renders the aggregate progress
func ProgressBar(summary progress.Summary) string {
	filled := int(summary.ProgressFraction*progressBarWidth + 0.5)
	bar := completedStyle.Render(strings.Repeat("█", filled)) +
		pendingStyle.Render(strings.Repeat("░", progressBarWidth-filled))
	return fmt.Sprintf("%s %d/%d", bar, summary.CompletedCount, summary.TotalSteps)
}

// Catalog renders the skip cards as a table. Forbidden skips stay listed.
func Catalog(view session.CatalogView) string {
	if view.Status == catalog.StatusFailed {
		return pendingStyle.Render("Skips could not be loaded. No items to show.")
	}
	if len(view.Items) == 0 {
		return pendingStyle.Render("No items to show.")
	}

	rows := make([][]string, 0, len(view.Items))
	for _, item := range view.Items {
		state := "Choose This Skip"
		switch {
		case !item.IsAvailable:
			state = blockedStyle.Render("Not Available")
		case item.IsSelected:
			state = currentStyle.Render("Selected")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.Item.ID),
			fmt.Sprintf("%d Yard Skip", item.Item.Size),
			fmt.Sprintf("%d days", item.Item.HirePeriodDays),
			utils.FormatGBP(item.DisplayPrice.Total),
			fmt.Sprintf("inc. %s VAT (%d%%)", utils.FormatGBP(item.DisplayPrice.TaxAmount), item.Item.VAT),
			strings.Join(nonBlocking(item.Badges), ", "),
			state,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(faint)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "Skip", "Hire", "Total", "VAT", "Notes", "").
		Rows(rows...)

	header := fmt.Sprintf("Skips in %s: %d available sizes", view.Postcode, view.AvailableCount)
	return header + "\n" + t.String()
}

// nonBlocking drops the "Not Available" badge, which the state column shows
func nonBlocking(badges []string) []string {
	out := make([]string, 0, len(badges))
	for _, b := range badges {
		if b != session.BadgeNotAvailable {
			out = append(out, b)
		}
	}
	return out
}

// Summary renders the selection panel, or nothing without a selection
func Summary(summary session.Summary) string {
	if !summary.Selected {
		return ""
	}
	body := fmt.Sprintf("%d yard skip selected\nTotal: %s (inc. VAT)\n%s →",
		summary.Size, utils.FormatGBP(summary.DisplayPrice.Total), summary.ContinueLabel)
	return panelStyle.Render(body)
}

// View renders the whole session
func View(view session.View) string {
	var sb strings.Builder
	sb.WriteString(Steps(view.Steps) + "\n")
	sb.WriteString(ProgressBar(view.Progress) + "\n\n")
	sb.WriteString(Catalog(view.Catalog) + "\n")
	if s := Summary(view.Summary); s != "" {
		sb.WriteString("\n" + s + "\n")
	}
	return sb.String()
}
