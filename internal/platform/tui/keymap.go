package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/storage-mogul/internal/core"
	"github.com/vovakirdan/storage-mogul/internal/sim"
)

// KeyMapper translates Bubble Tea key messages to session inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a session input.
// Returns the input (Intent may be IntentNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (in core.Input, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.Input{Intent: core.IntentQuit}, true
	}

	switch key {
	case " ", "p":
		return core.Input{Intent: core.IntentToggle}, false
	case "n":
		return core.Input{Intent: core.IntentStep}, false
	case "+", "=":
		return core.Input{Intent: core.IntentFaster}, false
	case "-", "_":
		return core.Input{Intent: core.IntentSlower}, false
	case "s":
		return core.Input{Intent: core.IntentSave}, false
	case "enter":
		return core.Input{Intent: core.IntentConfirm}, false
	case "b", "esc":
		return core.Input{Intent: core.IntentBack}, false
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < len(sim.AllActions) {
			return core.ActionInput(string(sim.AllActions[idx])), false
		}
	}

	return core.Input{}, false
}

// MapKeyToFrame queues the input for a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	in, isQuit := km.MapKey(msg)
	if in.Intent != core.IntentNone {
		frame.Push(in)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionRuns
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "r":
		return MenuActionRuns
	}

	return MenuActionNone
}

// DashboardKeyMap holds the dashboard bindings shown in the help bar and
// the policy keys the dashboard handles itself.
type DashboardKeyMap struct {
	Toggle      key.Binding
	Step        key.Binding
	Faster      key.Binding
	Slower      key.Binding
	Save        key.Binding
	Actions     key.Binding
	Category    key.Binding
	RentDown    key.Binding
	RentUp      key.Binding
	Specials    key.Binding
	PaymentPlan key.Binding
	EvictSooner key.Binding
	EvictLater  key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k DashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Step, k.Faster, k.Slower, k.Actions, k.Save, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k DashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Step, k.Faster, k.Slower},
		{k.Actions, k.Save},
		{k.Category, k.RentDown, k.RentUp, k.Specials},
		{k.PaymentPlan, k.EvictSooner, k.EvictLater},
		{k.Back, k.Quit},
	}
}

// DefaultDashboardKeyMap returns default key bindings.
func DefaultDashboardKeyMap() DashboardKeyMap {
	return DashboardKeyMap{
		Toggle:      key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "run/pause")),
		Step:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next day")),
		Faster:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:      key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Save:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Actions:     key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "actions")),
		Category:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "unit type")),
		RentDown:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "rent -$5")),
		RentUp:      key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "rent +$5")),
		Specials:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "move-in special")),
		PaymentPlan: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "payment plans")),
		EvictSooner: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "evict sooner")),
		EvictLater:  key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "evict later")),
		Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
