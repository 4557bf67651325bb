// Package tui provides the interactive frontier browser shown by
// "landmix frontier --interactive".
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/landmix/landmix/internal/metrics"
	"github.com/landmix/landmix/internal/optimize"
)

// Default dimensions for the frontier browser.
const (
	frontierDefaultHeight = 14
	detailMaxRows         = 8
)

var (
	frontierTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	frontierDetailStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderTop(true).
				PaddingTop(1)
	frontierHelpStyle = lipgloss.NewStyle().Faint(true)
)

// FrontierModel is the Bubble Tea model browsing frontier points. The table
// lists the swept (cost, CO2) outcomes; the detail pane under it shows the
// per-block mix choices realizing the highlighted point.
type FrontierModel struct {
	points []optimize.FrontierPoint
	scale  optimize.Scale
	blocks []metrics.Block
	mixes  []metrics.Mix
	mixIdx [][]int

	table    table.Model
	quitting bool
}

// NewFrontierModel builds the browser over a swept frontier.
func NewFrontierModel(
	points []optimize.FrontierPoint,
	scale optimize.Scale,
	blocks []metrics.Block,
	mixes []metrics.Mix,
	mixIdx [][]int,
) *FrontierModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Cost (EUR)", Width: 16},
		{Title: "CO2 (kg)", Width: 16},
	}
	rows := make([]table.Row, len(points))
	for i, p := range points {
		cost, co2 := scale.Unscale(p.CostInt, p.CO2Int)
		rows[i] = table.Row{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.2f", cost),
			fmt.Sprintf("%.2f", co2),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(frontierDefaultHeight, len(points)+1)),
	)

	return &FrontierModel{
		points: points,
		scale:  scale,
		blocks: blocks,
		mixes:  mixes,
		mixIdx: mixIdx,
		table:  t,
	}
}

// Init implements tea.Model.
func (m *FrontierModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *FrontierModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *FrontierModel) View() string {
	if m.quitting {
		return ""
	}
	out := frontierTitleStyle.Render("COST / CO2 FRONTIER") + "\n"
	out += m.table.View() + "\n"
	out += frontierDetailStyle.Render(m.detailView())
	out += "\n" + frontierHelpStyle.Render("up/down: browse  q: quit")
	return out
}

// detailView describes the highlighted point's per-block choices.
func (m *FrontierModel) detailView() string {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.points) {
		return "no point selected"
	}
	p := m.points[cursor]

	out := ""
	for i, choice := range p.Selection {
		if i >= detailMaxRows {
			out += fmt.Sprintf("... and %d more blocks\n", len(p.Selection)-detailMaxRows)
			break
		}
		mix := m.mixes[m.mixIdx[i][choice]]
		out += fmt.Sprintf("%-16s %6.1f m2  %s (RES %.0f%% / NBS %.0f%%)\n",
			m.blocks[i].ID, m.blocks[i].AreaM2, mix.MixID, mix.ResPct*100, mix.NbsPct*100)
	}
	return out
}
