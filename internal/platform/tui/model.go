package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/storage-mogul/internal/core"
	"github.com/vovakirdan/storage-mogul/internal/session"
	"github.com/vovakirdan/storage-mogul/internal/sim"
)

// Rent step for the [ and ] keys and eviction step for e and E.
const (
	rentStep     = 5.0
	evictionStep = 15.0
	offerAdopt   = 0.35
)

var categories = []sim.UnitCategory{
	sim.CategoryClimateControlled,
	sim.CategoryDriveUp,
	sim.CategoryVault,
}

// DashboardModel is the Bubble Tea model for a running facility.
type DashboardModel struct {
	sess       *session.Session
	gen        uint64
	keyMapper  *KeyMapper
	keys       DashboardKeyMap
	help       help.Model
	state      *sim.GameState
	cashFlow   sim.CashFlow
	category   int
	width      int
	height     int
	quitting   bool
	backToMenu bool
	notice     string
}

// NewDashboardModel creates a dashboard for the given session.
func NewDashboardModel(sess *session.Session, width, height int) DashboardModel {
	m := DashboardModel{
		sess:      sess,
		gen:       nextTickGen(),
		keyMapper: NewKeyMapper(),
		keys:      DefaultDashboardKeyMap(),
		help:      help.New(),
		width:     width,
		height:    height,
	}
	m.help.Width = width
	m.refresh()
	return m
}

// Init starts the tick loop.
func (m DashboardModel) Init() tea.Cmd {
	return tickCmd(m.sess.Interval(), m.gen)
}

// Update handles messages and updates the model state.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.handlePolicyKey(msg) {
		m.refresh()
		return m, nil
	}

	in, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	switch in.Intent {
	case core.IntentNone, core.IntentConfirm:
		return m, nil
	case core.IntentBack:
		m.backToMenu = true
		return m, nil
	case core.IntentSave:
		if err := m.sess.SaveSnapshot(); err != nil {
			m.notice = "Save failed: " + err.Error()
		} else {
			m.notice = ""
		}
	default:
		m.sess.Handle(in)
	}
	m.refresh()
	return m, nil
}

// handlePolicyKey applies pricing, specials and delinquency keys.
func (m *DashboardModel) handlePolicyKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Category):
		m.category = (m.category + 1) % len(categories)
	case key.Matches(msg, m.keys.RentDown), key.Matches(msg, m.keys.RentUp):
		step := rentStep
		if key.Matches(msg, m.keys.RentDown) {
			step = -step
		}
		tier := tierFor(m.state.Facility.Pricing, categories[m.category])
		m.sess.UpdatePricingTier(categories[m.category], sim.TierUpdate{
			Standard: sim.Ptr(tier.Standard + step),
			Prime:    sim.Ptr(tier.Prime + step),
		})
	case key.Matches(msg, m.keys.Specials):
		if m.state.Facility.Pricing.Specials.Offer == sim.OfferOneMonthFree {
			m.sess.ConfigureSpecials(sim.SpecialsUpdate{Offer: sim.Ptr(sim.OfferNone)})
		} else {
			m.sess.ConfigureSpecials(sim.SpecialsUpdate{
				Offer:        sim.Ptr(sim.OfferOneMonthFree),
				AdoptionRate: sim.Ptr(offerAdopt),
			})
		}
	case key.Matches(msg, m.keys.PaymentPlan):
		allow := !m.state.Facility.Delinquency.AllowPaymentPlans
		m.sess.UpdateDelinquency(sim.DelinquencyUpdate{AllowPaymentPlans: &allow})
	case key.Matches(msg, m.keys.EvictSooner):
		m.sess.UpdateDelinquency(sim.DelinquencyUpdate{
			EvictionDays: sim.Ptr(m.state.Facility.Delinquency.EvictionDays - evictionStep),
		})
	case key.Matches(msg, m.keys.EvictLater):
		m.sess.UpdateDelinquency(sim.DelinquencyUpdate{
			EvictionDays: sim.Ptr(m.state.Facility.Delinquency.EvictionDays + evictionStep),
		})
	default:
		return false
	}
	return true
}

func tierFor(p sim.Pricing, c sim.UnitCategory) sim.PricingTier {
	switch c {
	case sim.CategoryDriveUp:
		return p.DriveUp
	case sim.CategoryVault:
		return p.Vault
	default:
		return p.ClimateControlled
	}
}

// handleTick advances the clock and schedules the next tick at the current speed.
func (m DashboardModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	m.sess.Tick()
	m.refresh()
	return m, tickCmd(m.sess.Interval(), m.gen)
}

func (m *DashboardModel) refresh() {
	m.state = m.sess.State()
	m.cashFlow = m.sess.CashFlow()
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}
	return renderDashboard(m)
}

// IsQuitting returns true if user requested to quit entirely.
func (m DashboardModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m DashboardModel) BackToMenu() bool {
	return m.backToMenu
}

// Session returns the session the dashboard drives.
func (m DashboardModel) Session() *session.Session {
	return m.sess
}
