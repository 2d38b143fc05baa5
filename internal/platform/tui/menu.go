package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/storage-mogul/internal/config"
	"github.com/vovakirdan/storage-mogul/internal/storage"
)

// MenuItemKind distinguishes what a menu entry opens.
type MenuItemKind int

const (
	MenuItemNewGame MenuItemKind = iota
	MenuItemContinue
	MenuItemRuns
)

// MenuItem represents a selectable entry in the main menu.
type MenuItem struct {
	Kind       MenuItemKind
	FacilityID string
	Title      string
	Detail     string
}

// BuildMenuItems lists the saved game (if any), one new game per catalog
// facility and the runs board.
func BuildMenuItems(save *storage.SaveEntry, catalog config.Catalog, now time.Time) []MenuItem {
	items := make([]MenuItem, 0, len(catalog.Facilities)+2)
	if save != nil {
		detail := humanize.RelTime(save.SavedAt, now, "ago", "from now")
		if save.Label != "" {
			detail = save.Label + ", saved " + detail
		}
		items = append(items, MenuItem{
			Kind:       MenuItemContinue,
			FacilityID: save.Scenario,
			Title:      "Continue",
			Detail:     detail,
		})
	}
	for _, f := range catalog.Facilities {
		region := f.RegionID
		if area, ok := catalog.TradeArea(f.RegionID); ok {
			region = area.Name
		}
		items = append(items, MenuItem{
			Kind:       MenuItemNewGame,
			FacilityID: f.ID,
			Title:      "Buy " + f.Name,
			Detail:     fmt.Sprintf("%s, %s  $%s", f.City, region, humanize.Comma(int64(f.Price))),
		})
	}
	items = append(items, MenuItem{Kind: MenuItemRuns, Title: "Past runs"})
	return items
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a new menu model.
func NewMenuModel(items []MenuItem, width, height int) MenuModel {
	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionRuns:
		m.selected = &MenuItem{Kind: MenuItemRuns, Title: "Past runs"}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S T O R A G E   M O G U L  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Pick a facility to buy"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		title := item.Title
		if i == m.cursor {
			cursor = "> "
			title = focusStyle.Render(title)
		}
		line := cursor + title
		if item.Detail != "" {
			line += "  " + dimStyle.Render(item.Detail)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Runs  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Items returns the entries shown by the menu.
func (m MenuModel) Items() []MenuItem {
	return m.items
}
