package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/storage-mogul/internal/config"
	"github.com/vovakirdan/storage-mogul/internal/session"
	"github.com/vovakirdan/storage-mogul/internal/sim"
	"github.com/vovakirdan/storage-mogul/internal/storage"
)

// AppStore is the persistence the app needs. *storage.Store satisfies it.
type AppStore interface {
	session.Store
	RunLister
}

// AppOptions configures an App. Store may be nil to play without saves.
type AppOptions struct {
	Store    AppStore
	Catalog  config.Catalog
	Settings config.Settings
	Player   sim.PlayerProfile
	Slot     string
	Seed     int64 // overrides the seed derived from the deal when non-zero
	Speed    float64
	Logger   *log.Logger
	Width    int
	Height   int
}

type screen int

const (
	screenMenu screen = iota
	screenDashboard
	screenRuns
)

// App switches between the menu, the dashboard and the runs board in a
// single program so that local and SSH play share one flow.
type App struct {
	opts      AppOptions
	screen    screen
	menu      MenuModel
	dashboard DashboardModel
	runs      RunsBoardModel
	notice    string
	quitting  bool
}

// NewApp creates the app on the main menu.
func NewApp(opts AppOptions) App {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Slot == "" {
		opts.Slot = opts.Settings.DefaultSlot
	}
	a := App{opts: opts}
	a.menu = a.newMenu()
	return a
}

func (a App) newMenu() MenuModel {
	var save *storage.SaveEntry
	if a.opts.Store != nil {
		entry, err := a.opts.Store.LoadGame(a.opts.Slot)
		if err != nil {
			a.opts.Logger.Warn("cannot read save slot", "slot", a.opts.Slot, "err", err)
		}
		save = entry
	}
	return NewMenuModel(BuildMenuItems(save, a.opts.Catalog, time.Now()), a.opts.Width, a.opts.Height)
}

// Init initializes the app.
func (a App) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.opts.Width = size.Width
		a.opts.Height = size.Height
	}

	switch a.screen {
	case screenDashboard:
		return a.updateDashboard(msg)
	case screenRuns:
		return a.updateRuns(msg)
	default:
		return a.updateMenu(msg)
	}
}

func (a App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return a, nil
	}
	model, cmd := a.menu.Update(msg)
	a.menu = model.(MenuModel)

	if a.menu.IsQuitting() {
		a.quitting = true
		return a, tea.Quit
	}
	item := a.menu.Selected()
	if item == nil {
		return a, cmd
	}
	a.menu.selected = nil

	switch item.Kind {
	case MenuItemRuns:
		a.runs = NewRunsBoardModel(a.runLister(), a.opts.Catalog, a.opts.Width, a.opts.Height)
		a.screen = screenRuns
		return a, nil
	default:
		sess, err := a.openSession(*item)
		if err != nil {
			a.notice = err.Error()
			return a, nil
		}
		a.notice = ""
		a.dashboard = NewDashboardModel(sess, a.opts.Width, a.opts.Height)
		a.screen = screenDashboard
		return a, a.dashboard.Init()
	}
}

func (a App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.dashboard.Update(msg)
	a.dashboard = model.(DashboardModel)

	if a.dashboard.IsQuitting() {
		a.finish()
		a.quitting = true
		return a, tea.Quit
	}
	if a.dashboard.BackToMenu() {
		a.finish()
		a.menu = a.newMenu()
		a.screen = screenMenu
		return a, nil
	}
	return a, cmd
}

func (a App) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return a, nil
	}
	model, cmd := a.runs.Update(msg)
	a.runs = model.(RunsBoardModel)

	if a.runs.IsQuitting() {
		a.quitting = true
		return a, tea.Quit
	}
	if a.runs.IsGoingBack() {
		a.menu = a.newMenu()
		a.screen = screenMenu
		return a, nil
	}
	return a, cmd
}

// openSession starts a new game or resumes the saved one for item.
func (a App) openSession(item MenuItem) (*session.Session, error) {
	start, err := a.opts.Catalog.Start(item.FacilityID, a.opts.Player)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", item.FacilityID, err)
	}
	if a.opts.Seed != 0 {
		start.Seed = a.opts.Seed
	}

	var store session.Store
	if a.opts.Store != nil {
		store = a.opts.Store
	}
	sess := session.New(start, store, session.Options{
		Slot:     a.opts.Slot,
		Settings: a.opts.Settings,
		Logger:   a.opts.Logger,
	})

	if item.Kind == MenuItemContinue {
		loaded, err := sess.Load(start)
		if err != nil {
			return nil, err
		}
		if !loaded {
			a.opts.Logger.Info("no usable save, starting fresh", "slot", a.opts.Slot)
		}
	} else {
		sess.Reset(start)
	}
	if a.opts.Speed > 0 {
		sess.SetSpeed(a.opts.Speed)
	}
	return sess, nil
}

// finish saves and archives the active session.
func (a App) finish() {
	sess := a.dashboard.Session()
	if sess == nil {
		return
	}
	if _, err := sess.Finish(); err != nil {
		a.opts.Logger.Error("cannot save on exit", "slot", a.opts.Slot, "err", err)
	}
}

func (a App) runLister() RunLister {
	if a.opts.Store == nil {
		return nil
	}
	return a.opts.Store
}

// View renders the active screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	switch a.screen {
	case screenDashboard:
		return a.dashboard.View()
	case screenRuns:
		return a.runs.View()
	default:
		view := a.menu.View()
		if a.notice != "" {
			view += "\n" + centerText(badStyle.Render(a.notice), a.opts.Width)
		}
		return view
	}
}

// Screen reports which screen is active, for tests.
func (a App) Screen() string {
	switch a.screen {
	case screenDashboard:
		return "dashboard"
	case screenRuns:
		return "runs"
	default:
		return "menu"
	}
}

// Dashboard returns the dashboard model; only meaningful on the dashboard screen.
func (a App) Dashboard() DashboardModel {
	return a.dashboard
}

// RunApp runs the app in the current terminal.
func RunApp(opts AppOptions) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
