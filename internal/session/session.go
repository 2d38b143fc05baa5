// Package session drives one storage mogul playthrough: it serializes
// ticks and player commands against a sim.Game, paces the clock from the
// speed multiplier and keeps the save slot up to date.
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/storage-mogul/internal/config"
	"github.com/vovakirdan/storage-mogul/internal/core"
	"github.com/vovakirdan/storage-mogul/internal/sim"
	"github.com/vovakirdan/storage-mogul/internal/storage"
)

// Store is the persistence a session needs. *storage.Store satisfies it.
type Store interface {
	SaveGame(e storage.SaveEntry) error
	LoadGame(slot string) (*storage.SaveEntry, error)
	DeleteGame(slot string) error
	RecordRun(r storage.RunResult) (string, error)
}

// Options configures a session. Zero values fall back to defaults.
type Options struct {
	Slot     string
	Settings config.Settings
	Logger   *log.Logger
	Now      func() time.Time
}

// Session owns a game and its save slot. All methods are safe for
// concurrent use.
type Session struct {
	mu       sync.Mutex
	game     *sim.Game
	store    Store
	slot     string
	settings config.Settings
	logger   *log.Logger
	now      func() time.Time

	lastSave     time.Time
	skipAutosave bool
	archived     bool
	runID        string
	openedAt     int // tick the game was opened or loaded at
}

// New opens a fresh game from start. store may be nil for an unsaved session.
func New(start sim.StartConfig, store Store, opts Options) *Session {
	s := &Session{
		game:         sim.New(start),
		store:        store,
		slot:         opts.Slot,
		settings:     opts.Settings,
		logger:       opts.Logger,
		now:          opts.Now,
		skipAutosave: true,
	}
	if s.slot == "" {
		s.slot = config.DefaultSettings().DefaultSlot
	}
	if s.settings.TickInterval <= 0 {
		s.settings = config.DefaultSettings()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Slot returns the save slot name.
func (s *Session) Slot() string {
	return s.slot
}

// Load replaces the game with the save in the session's slot, merged over
// a fresh game opened from start. It reports false when the slot is empty or
// unreadable; an unreadable save is logged and treated as absent.
func (s *Session) Load(start sim.StartConfig) (bool, error) {
	if s.store == nil {
		return false, nil
	}
	entry, err := s.store.LoadGame(s.slot)
	if err != nil {
		return false, fmt.Errorf("session: cannot load %s: %w", s.slot, err)
	}
	if entry == nil {
		return false, nil
	}
	state, savedAt, err := sim.DecodeSave(entry.Data, sim.NewState(start))
	if err != nil {
		if errors.Is(err, sim.ErrFutureSave) {
			s.logger.Warn("save written by a newer version, ignoring", "slot", s.slot, "version", entry.Version)
		} else {
			s.logger.Warn("discarding unreadable save", "slot", s.slot, "err", err)
		}
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = sim.Restore(start, state)
	s.skipAutosave = true
	s.archived = false
	s.runID = ""
	s.openedAt = state.Tick
	s.logger.Info("resumed game", "slot", s.slot, "tick", state.Tick, "saved", savedAt.Format(time.RFC3339))
	return true, nil
}

// Reset discards the current game and its save and opens a new one.
func (s *Session) Reset(start sim.StartConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Reset(start)
	s.skipAutosave = true
	s.archived = false
	s.runID = ""
	s.openedAt = 0
	if s.store != nil {
		if err := s.store.DeleteGame(s.slot); err != nil {
			s.logger.Error("cannot clear save", "slot", s.slot, "err", err)
		}
	}
}

// Handle applies one player command. It returns true when the command asks
// to leave the session.
func (s *Session) Handle(in core.Input) bool {
	switch in.Intent {
	case core.IntentToggle:
		s.Toggle()
	case core.IntentStep:
		s.Step()
	case core.IntentFaster:
		s.SetSpeed(config.NextSpeed(s.Speed(), true))
	case core.IntentSlower:
		s.SetSpeed(config.NextSpeed(s.Speed(), false))
	case core.IntentSave:
		if err := s.SaveSnapshot(); err != nil {
			s.logger.Error("manual save failed", "err", err)
		}
	case core.IntentAction:
		s.Apply(sim.ActionID(in.Action))
	case core.IntentQuit, core.IntentBack:
		return true
	}
	return false
}

// Tick advances one day if the clock is running. It returns the tick result
// and whether a day was simulated.
func (s *Session) Tick() (sim.TickResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.State().Paused {
		return sim.TickResult{}, false
	}
	return s.advanceLocked(), true
}

// Step advances exactly one day whether or not the clock is running.
func (s *Session) Step() sim.TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked()
}

func (s *Session) advanceLocked() sim.TickResult {
	res := s.game.Step()
	st := s.game.State()
	if res.Halted {
		s.logger.Warn("facility in receivership", "tick", st.Tick, "date", st.Clock.String())
		s.archiveLocked()
	} else if res.MonthRolled {
		s.logger.Debug("month closed", "date", st.Clock.String(),
			"cash", sim.FormatMoney(st.Financials.Cash), "credit", int(st.Player.CreditScore))
	}
	s.autosaveLocked()
	return res
}

// Apply validates and runs a player action.
func (s *Session) Apply(id sim.ActionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.game.Apply(id)
	if !ok {
		s.logger.Debug("action rejected", "action", id)
	}
	s.autosaveLocked()
	return ok
}

// Toggle starts or pauses the clock.
func (s *Session) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.SetPaused(!s.game.State().Paused)
	s.autosaveLocked()
}

// Pause stops the clock.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.SetPaused(true)
	s.autosaveLocked()
}

// Resume starts the clock. Clearing the pause also lifts receivership.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.SetPaused(false)
	s.autosaveLocked()
}

// Speed returns the current speed multiplier.
func (s *Session) Speed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State().Clock.Speed
}

// SetSpeed stores the speed multiplier clamped to the configured range.
func (s *Session) SetSpeed(speed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.SetSpeed(s.settings.ClampSpeed(speed))
	s.autosaveLocked()
}

// Interval returns the wall-clock time between ticks at the current speed.
func (s *Session) Interval() time.Duration {
	return s.settings.Runtime(s.Speed()).Interval()
}

// UpdatePricingTier applies a partial price change to one unit category.
func (s *Session) UpdatePricingTier(category sim.UnitCategory, u sim.TierUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.UpdatePricingTier(category, u)
	s.autosaveLocked()
}

// ConfigureSpecials applies a partial move-in specials change.
func (s *Session) ConfigureSpecials(u sim.SpecialsUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.ConfigureSpecials(u)
	s.autosaveLocked()
}

// UpdateDelinquency applies a partial delinquency policy change.
func (s *Session) UpdateDelinquency(u sim.DelinquencyUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.UpdateDelinquency(u)
	s.autosaveLocked()
}

// State returns a copy of the current state.
func (s *Session) State() *sim.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State().Clone()
}

// Snapshot returns the headline numbers.
func (s *Session) Snapshot() sim.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// CashFlow previews today's cash flow.
func (s *Session) CashFlow() sim.CashFlow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.CashFlow()
}

// StartConfig returns the configuration the game was opened from.
func (s *Session) StartConfig() sim.StartConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Start()
}
