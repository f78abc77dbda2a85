package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/radar"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	detailBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// inspect command
// =============================================================================

func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain   bool
		noCache bool
		src     sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Browse radar entries and their placement in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := src.apply(&cfg.Source); err != nil {
				return err
			}
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			chain, cleanup := c.newSource(ctx, cfg.Source, runner, src.refresh)
			defer cleanup()

			opts := baseOptions(cfg)
			opts.Source = chain
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			d, scene, err := loadAndLayout(ctx, runner, opts)
			if err != nil {
				return err
			}

			m := newEntryListModel(d, scene)
			if plain {
				fmt.Println(m.table(0, len(m.order)))
				return nil
			}
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the entry table and exit")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	src.register(cmd)
	return cmd
}

// loadAndLayout loads the dataset and runs one layout pass over it.
func loadAndLayout(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*radar.Dataset, chart.Scene, error) {
	d, err := runner.Load(ctx, opts)
	if err != nil {
		return nil, chart.Scene{}, err
	}
	scene, err := runner.Layout(ctx, d, opts)
	if err != nil {
		return nil, chart.Scene{}, err
	}
	return d, scene, nil
}

// =============================================================================
// entryListModel
// =============================================================================

// entryListModel is the bubbletea model of the inspect view. Rows list the
// placed blips quadrant by quadrant, then the skipped entries.
type entryListModel struct {
	dataset *radar.Dataset
	scene   chart.Scene
	ui      chart.Interactor
	order   []int // entry indices in display order

	cursor int
	offset int
	height int
	detail *chart.Detail
}

func newEntryListModel(d *radar.Dataset, s chart.Scene) entryListModel {
	var order []int
	for _, blips := range s.BlipsByQuadrant() {
		for _, b := range blips {
			order = append(order, b.Index)
		}
	}
	for _, sk := range s.Skipped {
		order = append(order, sk.Index)
	}
	return entryListModel{dataset: d, scene: s, order: order, height: 15}
}

func (m entryListModel) Init() tea.Cmd { return nil }

func (m entryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.detail == nil {
				return m, tea.Quit
			}
			m.detail = nil
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.offset = min(m.offset, m.cursor)
			}
			m.detail = nil
		case "down", "j":
			if m.cursor < len(m.order)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
			m.detail = nil
		case "enter":
			if e, ok := m.current(); ok {
				d := m.ui.Click(e)
				m.detail = &d
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(5, msg.Height-14)
	}
	return m, nil
}

func (m entryListModel) current() (radar.Entry, bool) {
	if m.cursor >= len(m.order) {
		return radar.Entry{}, false
	}
	return m.dataset.Entries[m.order[m.cursor]], true
}

func (m entryListModel) View() string {
	var b strings.Builder
	title := m.dataset.Title
	if title == "" {
		title = "Technology Radar"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  esc back  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.order))
	b.WriteString(m.table(m.offset, end))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.order))))

	if e, ok := m.current(); ok {
		b.WriteString("\n")
		if m.detail != nil {
			b.WriteString(detailBoxStyle.Render(m.detailText(*m.detail)))
		} else {
			b.WriteString(m.hoverText(m.ui.Hover(e, chart.Cursor{})))
		}
	}
	return b.String()
}

// table renders display rows [from, to).
func (m entryListModel) table(from, to int) string {
	rows := make([][]string, 0, to-from)
	for row := from; row < to; row++ {
		i := m.order[row]
		e := m.dataset.Entries[i]
		cursor := "  "
		if row == m.cursor {
			cursor = "▸ "
		}
		isNew := ""
		if e.IsNew {
			isNew = "★"
		}
		rows = append(rows, []string{cursor, e.Name, radar.DisplayName(e.Quadrant), e.Ring, isNew, e.Status, m.placement(i)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Quadrant", "Ring", "New", "Status", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			switch r := from + row; {
			case r == m.cursor:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case r < len(m.order) && m.skipped(m.order[r]):
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// placement describes where entry i landed in the scene.
func (m entryListModel) placement(i int) string {
	if b, ok := m.scene.Find(i); ok {
		return fmt.Sprintf("%.0f, %.0f (%s)", b.Point.X, b.Point.Y, b.Tier)
	}
	for _, s := range m.scene.Skipped {
		if s.Index == i {
			return "skipped: " + s.Reason
		}
	}
	return "-"
}

func (m entryListModel) skipped(i int) bool {
	_, ok := m.scene.Find(i)
	return !ok
}

func renderBadges(badges []chart.Badge) string {
	texts := make([]string, len(badges))
	for i, badge := range badges {
		texts[i] = lipgloss.NewStyle().
			Background(lipgloss.Color(badge.Background)).
			Foreground(lipgloss.Color(badge.Color)).
			Bold(badge.Bold).
			Padding(0, 1).
			Render(badge.Text)
	}
	return strings.Join(texts, " ")
}

func (m entryListModel) hoverText(tt chart.Tooltip) string {
	return StyleValue.Render(tt.Name) + "  " + renderBadges(tt.Badges)
}

func (m entryListModel) detailText(d chart.Detail) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(d.Entry.Name))
	b.WriteString("\n")
	b.WriteString(renderBadges(chart.Badges(d.Entry)))
	if d.Entry.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(strings.ReplaceAll(d.Entry.Description, `\n`, "\n"))
	}
	return b.String()
}
