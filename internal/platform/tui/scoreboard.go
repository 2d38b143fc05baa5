package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/storage-mogul/internal/config"
	"github.com/vovakirdan/storage-mogul/internal/storage"
)

// Runs board layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show the region sidebar
	sidebarWidth       = 20
	maxRuns            = 100
)

// RunLister reads archived runs. *storage.Store satisfies it.
type RunLister interface {
	TopRuns(limit int) ([]storage.RunResult, error)
}

// RunsKeyMap defines the key bindings for the runs board.
type RunsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextRegion key.Binding
	PrevRegion key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextRegion, k.PrevRegion, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextRegion, k.PrevRegion},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextRegion: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next region"),
		),
		PrevRegion: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev region"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// regionFilter is one entry of the region sidebar. An empty ID shows every run.
type regionFilter struct {
	ID   string
	Name string
}

// RunsBoardModel lists archived runs ranked by valuation.
type RunsBoardModel struct {
	regions     []regionFilter
	cursor      int
	catalog     config.Catalog
	all         []storage.RunResult
	runs        []storage.RunResult
	loadErr     error
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunsBoardModel loads the top runs from lister. lister may be nil.
func NewRunsBoardModel(lister RunLister, catalog config.Catalog, width, height int) RunsBoardModel {
	regions := []regionFilter{{Name: "All regions"}}
	for _, area := range catalog.TradeAreas {
		regions = append(regions, regionFilter{ID: area.ID, Name: area.Name})
	}

	h := help.New()
	h.ShowAll = false

	m := RunsBoardModel{
		regions:     regions,
		catalog:     catalog,
		keys:        DefaultRunsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	if lister != nil {
		m.all, m.loadErr = lister.TopRuns(maxRuns)
	}
	m.table = m.createTable()
	m.applyFilter()
	return m
}

// createTable creates a new table sized to the window.
func (m *RunsBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Facility", Width: 18},
		{Title: "Region", Width: 12},
		{Title: "Days", Width: 6},
		{Title: "Valuation", Width: 13},
		{Title: "Credit", Width: 6},
		{Title: "Outcome", Width: 12},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// applyFilter narrows the loaded runs to the selected region.
func (m *RunsBoardModel) applyFilter() {
	region := m.regions[m.cursor].ID
	m.runs = m.runs[:0:0]
	for _, r := range m.all {
		if region == "" || r.Region == region {
			m.runs = append(m.runs, r)
		}
	}
	m.updateTableRows()
}

func (m *RunsBoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		facility := r.Facility
		if listing, ok := m.catalog.Facility(r.Facility); ok {
			facility = listing.Name
		}
		region := r.Region
		if area, ok := m.catalog.TradeArea(r.Region); ok {
			region = area.Name
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			facility,
			region,
			humanize.Comma(int64(r.Days)),
			"$" + humanize.Comma(int64(r.Valuation)),
			fmt.Sprintf("%.0f", r.CreditScore),
			runOutcome(r),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func runOutcome(r storage.RunResult) string {
	if r.Insolvent {
		return "Receivership"
	}
	return "Retired"
}

// Init initializes the runs board.
func (m RunsBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs board.
func (m RunsBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextRegion):
			m.cursor = (m.cursor + 1) % len(m.regions)
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.PrevRegion):
			m.cursor = (m.cursor - 1 + len(m.regions)) % len(m.regions)
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs board.
func (m RunsBoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "PAST RUNS - " + m.regions[m.cursor].Name
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a region sidebar.
func (m RunsBoardModel) renderWideLayout() string {
	sidebarStyle := panelStyle.Width(sidebarWidth)

	var sidebar strings.Builder
	sidebar.WriteString("Regions\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, r := range m.regions {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = titleStyle
		}
		name := r.Name
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ",
		panelStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the board with the region name above the table.
func (m RunsBoardModel) renderNarrowLayout() string {
	var b strings.Builder
	b.WriteString(centerText(fmt.Sprintf("< %s >", m.regions[m.cursor].Name), m.width))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RunsBoardModel) renderTableContent() string {
	emptyStyle := dimStyle.Italic(true).Padding(2, 4)
	if m.loadErr != nil {
		return emptyStyle.Render("Cannot read past runs:\n" + m.loadErr.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nRetire a facility to see it here.")
	}
	return m.table.View()
}

// Runs returns the runs currently listed.
func (m RunsBoardModel) Runs() []storage.RunResult {
	return m.runs
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsBoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsBoardModel) IsQuitting() bool {
	return m.quitting
}
