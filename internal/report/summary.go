package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/landmix/landmix/internal/portfolio"
)

const summaryBoxWidth = 56

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	summaryLabelStyle = lipgloss.NewStyle().Bold(true)
	summaryBoxStyle   = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				Padding(0, 1).
				Width(summaryBoxWidth)
)

// RenderFrontierSummary renders a styled terminal block describing a sweep's
// outcome.
func RenderFrontierSummary(points []Point, nBlocks int, minBudget, maxBudget float64) string {
	var b strings.Builder
	b.WriteString(summaryTitleStyle.Render("COST / CO2 FRONTIER"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d\n", summaryLabelStyle.Render("Blocks:"), nBlocks)
	fmt.Fprintf(&b, "%s %d\n", summaryLabelStyle.Render("Frontier points:"), len(points))
	fmt.Fprintf(&b, "%s %.2f - %.2f EUR\n", summaryLabelStyle.Render("Budget range:"), minBudget, maxBudget)
	if len(points) > 0 {
		first, last := points[0], points[len(points)-1]
		fmt.Fprintf(&b, "%s %.2f EUR at %.2f kg\n", summaryLabelStyle.Render("Cheapest:"), first.Cost, first.CO2)
		fmt.Fprintf(&b, "%s %.2f EUR at %.2f kg", summaryLabelStyle.Render("Costliest:"), last.Cost, last.CO2)
	}
	return summaryBoxStyle.Render(b.String())
}

// RenderSolveSummary renders a styled terminal block for a single solve.
func RenderSolveSummary(r *portfolio.Report, optimal bool) string {
	var b strings.Builder
	b.WriteString(summaryTitleStyle.Render("SOLUTION"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d\n", summaryLabelStyle.Render("Blocks:"), len(r.Rows))
	fmt.Fprintf(&b, "%s %.2f EUR\n", summaryLabelStyle.Render("Total cost:"), r.Totals.TotalCost)
	fmt.Fprintf(&b, "%s %.2f EUR\n", summaryLabelStyle.Render("Discounted cost:"), r.Totals.DiscountedCost)
	fmt.Fprintf(&b, "%s %.2f kg\n", summaryLabelStyle.Render("Total CO2:"), r.Totals.TotalCO2)
	fmt.Fprintf(&b, "%s %d trees, %d RES units\n", summaryLabelStyle.Render("Units:"), r.Totals.Trees, r.Totals.RESUnits)
	if !optimal {
		b.WriteString("time limit reached; best feasible solution shown")
	}
	return summaryBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
