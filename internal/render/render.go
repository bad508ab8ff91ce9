// Package render formats a user's balances and analytics as a text report.
// A Renderer decides how emphasis is drawn; Plain adds none, Styled adds
// ANSI colors through lipgloss.
package render

import (
	"fmt"
	"io"
	"strings"

	"savings_ledger/internal/analytics"
	"savings_ledger/internal/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

// BarWidth is the number of cells in a progress bar.
const BarWidth = 20

// Renderer decorates report fragments.
type Renderer interface {
	Title(s string) string
	Success(s string) string
	Warning(s string) string
	Danger(s string) string
	Bar(s string) string
}

// Plain renders text unchanged.
type Plain struct{}

func (Plain) Title(s string) string   { return s }
func (Plain) Success(s string) string { return s }
func (Plain) Warning(s string) string { return s }
func (Plain) Danger(s string) string  { return s }
func (Plain) Bar(s string) string     { return s }

// Styled renders with ANSI colors regardless of the output terminal.
type Styled struct {
	title, success, warning, danger, bar lipgloss.Style
}

// NewStyled returns a Styled renderer using the 16-color ANSI profile.
func NewStyled() Styled {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return Styled{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		danger:  r.NewStyle().Foreground(lipgloss.Color("1")),
		bar:     r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

func (s Styled) Title(v string) string   { return s.title.Render(v) }
func (s Styled) Success(v string) string { return s.success.Render(v) }
func (s Styled) Warning(v string) string { return s.warning.Render(v) }
func (s Styled) Danger(v string) string  { return s.danger.Render(v) }
func (s Styled) Bar(v string) string     { return s.bar.Render(v) }

// ForStyle picks a renderer by name: "color" is Styled, anything else Plain.
func ForStyle(style string) Renderer {
	if strings.EqualFold(style, "color") {
		return NewStyled()
	}
	return Plain{}
}

// Money formats an amount with thousands separators.
func Money(amount int64) string {
	return "Rp " + humanize.Comma(amount)
}

// ProgressBar draws percent (0-100) as BarWidth cells of '#' and '-'.
func ProgressBar(percent int) string {
	percent = max(0, min(percent, 100))
	filled := BarWidth * percent / 100
	return strings.Repeat("#", filled) + strings.Repeat("-", BarWidth-filled)
}

// Report writes the balance overview followed by the analytics block.
func Report(r Renderer, username string, s domain.Summary, a analytics.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Title("BALANCES & PROGRESS, "+username))
	fmt.Fprintf(&b, "Main balance: %s\n", Money(s.Main.Balance))
	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString(r.Title("Goals:") + "\n")
	if len(s.Goals) == 0 {
		b.WriteString("(no goals yet)\n")
	}
	for _, g := range s.Goals {
		status := "Active"
		if g.Status == domain.GoalCompleted {
			status = r.Success("Completed")
		}
		fmt.Fprintf(&b, "%s -> %s / %s (%d%%) %s\n", g.Name, Money(g.Balance), Money(g.Target), g.Percent, status)
		fmt.Fprintf(&b, "  Progress: [%s]\n", r.Bar(ProgressBar(g.Percent)))
	}
	b.WriteString("\n" + r.Title("ANALYTICS") + "\n")
	if a.NoData {
		b.WriteString("No savings recorded yet.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Total deposited: %s\n", Money(a.TotalDeposited))
	fmt.Fprintf(&b, "Total withdrawn: %s\n", Money(a.TotalWithdrawn))
	fmt.Fprintf(&b, "Withdrawal ratio: %.2f%%\n", a.RatioPercent)
	fmt.Fprintf(&b, "Status: %s\n", statusLabel(r, a.Status))
	return b.String()
}

func statusLabel(r Renderer, s analytics.Status) string {
	switch s {
	case analytics.StatusHealthy:
		return r.Success("Healthy wallet")
	case analytics.StatusStable:
		return r.Warning("Fairly stable")
	case analytics.StatusOverspending:
		return r.Danger("Overspending")
	default:
		return string(s)
	}
}
