package simulator

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/liarsbar/internal/statistics"
)

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	reportLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	reportValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	reportBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// RenderSummary renders a styled console summary of a finished run
func RenderSummary(stats *statistics.Statistics, title string) string {
	low, high := stats.ConfidenceInterval95()

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(reportLabelStyle.Render(label))
		b.WriteString(reportValueStyle.Render(value))
		b.WriteByte('\n')
	}

	row("Episodes", fmt.Sprintf("%d", stats.Episodes))
	row("Win rate", fmt.Sprintf("%.1f%%", stats.WinRate()*100))
	row("Truncated", fmt.Sprintf("%d (%.1f%%)", stats.Truncated,
		float64(stats.Truncated)/float64(max(stats.Episodes, 1))*100))
	row("Mean reward", fmt.Sprintf("%.2f", stats.Mean()))
	row("Median reward", fmt.Sprintf("%.2f", stats.Median()))
	row("Std dev", fmt.Sprintf("%.2f", stats.StdDev()))
	row("95% CI", fmt.Sprintf("[%.2f, %.2f]", low, high))
	row("Mean steps", fmt.Sprintf("%.1f", stats.MeanSteps()))
	for seat := range stats.SeatResults {
		row(fmt.Sprintf("Seat %d win rate", seat),
			fmt.Sprintf("%.1f%%", stats.SeatWinRate(seat)*100))
	}

	body := reportTitleStyle.Render(title) + "\n" + strings.TrimRight(b.String(), "\n")
	return reportBoxStyle.Render(body)
}
