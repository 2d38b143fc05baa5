package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/storage-mogul/internal/config"
	"github.com/vovakirdan/storage-mogul/internal/storage"
)

type memStore struct {
	saves map[string]storage.SaveEntry
	runs  []storage.RunResult
}

func newMemStore() *memStore {
	return &memStore{saves: make(map[string]storage.SaveEntry)}
}

func (m *memStore) SaveGame(e storage.SaveEntry) error {
	m.saves[e.Slot] = e
	return nil
}

func (m *memStore) LoadGame(slot string) (*storage.SaveEntry, error) {
	e, ok := m.saves[slot]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memStore) DeleteGame(slot string) error {
	delete(m.saves, slot)
	return nil
}

func (m *memStore) RecordRun(r storage.RunResult) (string, error) {
	r.RunID = "run-1"
	r.CreatedAt = time.Now()
	m.runs = append(m.runs, r)
	return r.RunID, nil
}

func (m *memStore) TopRuns(limit int) ([]storage.RunResult, error) {
	if len(m.runs) > limit {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func newTestApp(store AppStore) App {
	catalog := config.DefaultCatalog()
	return NewApp(AppOptions{
		Store:    store,
		Catalog:  catalog,
		Settings: config.DefaultSettings(),
		Player:   catalog.Player,
		Slot:     "test",
		Width:    120,
		Height:   40,
	})
}

func press(t *testing.T, a App, msg tea.KeyMsg) App {
	t.Helper()
	model, _ := a.Update(msg)
	next, ok := model.(App)
	if !ok {
		t.Fatalf("Update() returned %T, want App", model)
	}
	return next
}

func TestBuildMenuItems(t *testing.T) {
	catalog := config.DefaultCatalog()
	now := time.Now()

	items := BuildMenuItems(nil, catalog, now)
	if len(items) != len(catalog.Facilities)+1 {
		t.Fatalf("BuildMenuItems() = %d items, want %d", len(items), len(catalog.Facilities)+1)
	}
	if items[0].Kind != MenuItemNewGame || items[0].FacilityID != "harbor-one" {
		t.Errorf("first item = %+v, want new game at harbor-one", items[0])
	}
	if items[len(items)-1].Kind != MenuItemRuns {
		t.Errorf("last item kind = %v, want runs board", items[len(items)-1].Kind)
	}

	save := &storage.SaveEntry{Scenario: "harbor-one", Label: "Harbor One Storage", SavedAt: now.Add(-2 * time.Hour)}
	items = BuildMenuItems(save, catalog, now)
	if items[0].Kind != MenuItemContinue {
		t.Fatalf("first item kind = %v, want continue", items[0].Kind)
	}
	if !strings.Contains(items[0].Detail, "2 hours ago") {
		t.Errorf("continue detail = %q, want relative save time", items[0].Detail)
	}
}

func TestAppNewGameSavesOnBack(t *testing.T) {
	store := newMemStore()
	a := newTestApp(store)

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.Screen() != "dashboard" {
		t.Fatalf("Screen() = %q after selecting a facility, want dashboard", a.Screen())
	}
	if !a.Dashboard().Session().State().Paused {
		t.Error("new game should open paused")
	}

	a = press(t, a, runeKey("n"))
	a = press(t, a, runeKey("n"))
	if got := a.Dashboard().Session().State().Tick; got != 2 {
		t.Fatalf("Tick = %d after two steps, want 2", got)
	}

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.Screen() != "menu" {
		t.Fatalf("Screen() = %q after back, want menu", a.Screen())
	}
	save, ok := store.saves["test"]
	if !ok {
		t.Fatal("leaving the dashboard did not save")
	}
	if save.Tick != 2 || save.Scenario != "harbor-one" {
		t.Errorf("save = tick %d scenario %q, want tick 2 at harbor-one", save.Tick, save.Scenario)
	}
	if len(store.runs) != 1 {
		t.Errorf("runs recorded = %d, want 1", len(store.runs))
	}
	if items := a.menu.Items(); items[0].Kind != MenuItemContinue {
		t.Errorf("menu first item = %v, want continue after saving", items[0].Kind)
	}

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.Screen() != "dashboard" {
		t.Fatalf("Screen() = %q after continue, want dashboard", a.Screen())
	}
	if got := a.Dashboard().Session().State().Tick; got != 2 {
		t.Errorf("continued Tick = %d, want 2", got)
	}
}

func TestAppPolicyKeys(t *testing.T) {
	a := newTestApp(newMemStore())
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	before := a.Dashboard().Session().State().Facility.Pricing.ClimateControlled.Standard
	a = press(t, a, runeKey("]"))
	after := a.Dashboard().Session().State().Facility.Pricing.ClimateControlled.Standard
	if after != before+rentStep {
		t.Errorf("climate standard rent = %v, want %v", after, before+rentStep)
	}

	plans := a.Dashboard().Session().State().Facility.Delinquency.AllowPaymentPlans
	a = press(t, a, runeKey("y"))
	if got := a.Dashboard().Session().State().Facility.Delinquency.AllowPaymentPlans; got == plans {
		t.Error("y did not toggle payment plans")
	}
}

func TestAppStaleTicksIgnored(t *testing.T) {
	a := newTestApp(newMemStore())
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	a = press(t, a, tea.KeyMsg{Type: tea.KeySpace})

	model, _ := a.Update(TickMsg{Time: time.Now(), Gen: a.Dashboard().gen + 1000})
	a = model.(App)
	if got := a.Dashboard().Session().State().Tick; got != 0 {
		t.Errorf("Tick = %d after a stale tick, want 0", got)
	}

	model, _ = a.Update(TickMsg{Time: time.Now(), Gen: a.Dashboard().gen})
	a = model.(App)
	if got := a.Dashboard().Session().State().Tick; got != 1 {
		t.Errorf("Tick = %d after a live tick, want 1", got)
	}
}

func TestAppRunsBoard(t *testing.T) {
	store := newMemStore()
	store.runs = []storage.RunResult{
		{RunID: "a", Region: "harbor", Facility: "harbor-one", Days: 400, Valuation: 900000, CreditScore: 700, CreatedAt: time.Now()},
		{RunID: "b", Region: "elsewhere", Facility: "gone", Days: 20, Valuation: 100, Insolvent: true, CreatedAt: time.Now()},
	}
	a := newTestApp(store)

	a = press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.Screen() != "runs" {
		t.Fatalf("Screen() = %q after tab, want runs", a.Screen())
	}
	if got := len(a.runs.Runs()); got != 2 {
		t.Errorf("all regions lists %d runs, want 2", got)
	}

	a = press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if got := len(a.runs.Runs()); got != 1 {
		t.Errorf("harbor lists %d runs, want 1", got)
	}
	if view := a.View(); !strings.Contains(view, "Harbor One") {
		t.Error("runs board should show facility names from the catalog")
	}

	a = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.Screen() != "menu" {
		t.Errorf("Screen() = %q after back, want menu", a.Screen())
	}
}

func TestAppWithoutStore(t *testing.T) {
	a := newTestApp(nil)
	a = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.Screen() != "dashboard" {
		t.Fatalf("Screen() = %q, want dashboard", a.Screen())
	}
	a = press(t, a, runeKey("s"))
	if !strings.Contains(a.View(), "Save failed") {
		t.Error("saving without a store should show a notice")
	}
	a = press(t, a, runeKey("q"))
	if a.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestSlotForUser(t *testing.T) {
	if got := SlotForUser("ann"); got != "ssh:ann" {
		t.Errorf("SlotForUser(ann) = %q", got)
	}
	if got := SlotForUser(""); got != "ssh:anonymous" {
		t.Errorf("SlotForUser(\"\") = %q", got)
	}
}
