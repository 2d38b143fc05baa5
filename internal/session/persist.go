package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/storage-mogul/internal/sim"
	"github.com/vovakirdan/storage-mogul/internal/storage"
)

// ErrNoStore is returned by explicit saves on a session without persistence.
var ErrNoStore = errors.New("session: no save store configured")

// SaveSnapshot writes the slot immediately, bypassing the autosave
// debounce, and notes it in the event log.
func (s *Session) SaveSnapshot() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.saveLocked(s.now()); err != nil {
		return err
	}
	sim.PushLog(s.game.State(), "Manual snapshot saved.", sim.ToneInfo)
	return nil
}

// Finish saves the game and archives the run if any day was played since
// it was opened. It returns the archived run ID, empty when nothing was
// recorded.
func (s *Session) Finish() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return "", nil
	}
	err := s.saveLocked(s.now())
	s.archiveLocked()
	return s.runID, err
}

// autosaveLocked saves at most once per cooldown window. The first change
// after opening, loading or resetting a game is never saved.
func (s *Session) autosaveLocked() {
	if s.store == nil {
		return
	}
	if s.skipAutosave {
		s.skipAutosave = false
		return
	}
	now := s.now()
	if !s.lastSave.IsZero() && now.Sub(s.lastSave) < s.settings.AutosaveCooldown {
		return
	}
	if err := s.saveLocked(now); err != nil {
		s.logger.Error("autosave failed", "slot", s.slot, "err", err)
	}
}

func (s *Session) saveLocked(now time.Time) error {
	st := s.game.State()
	data, err := sim.EncodeSave(st, now)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	err = s.store.SaveGame(storage.SaveEntry{
		Slot:     s.slot,
		Version:  sim.SaveVersion,
		Scenario: s.game.Start().Facility.ID,
		Tick:     st.Tick,
		Label:    st.Facility.Name + ", " + st.Clock.String(),
		Data:     data,
		SavedAt:  now,
	})
	if err != nil {
		return fmt.Errorf("session: cannot save %s: %w", s.slot, err)
	}
	s.lastSave = now
	s.logger.Debug("saved", "slot", s.slot, "tick", st.Tick)
	return nil
}

func (s *Session) archiveLocked() {
	if s.store == nil || s.archived {
		return
	}
	st := s.game.State()
	if st.Tick <= s.openedAt {
		return
	}
	start := s.game.Start()
	id, err := s.store.RecordRun(storage.RunResult{
		Slot:        s.slot,
		Region:      start.Region.ID,
		Facility:    start.Facility.ID,
		Days:        st.Tick,
		Valuation:   st.Financials.Valuation,
		CreditScore: st.Player.CreditScore,
		Insolvent:   st.Insolvent,
	})
	if err != nil {
		s.logger.Error("cannot archive run", "err", err)
		return
	}
	s.archived = true
	s.runID = id
	s.logger.Info("run archived", "run", id, "days", st.Tick,
		"valuation", sim.FormatMoney(st.Financials.Valuation), "insolvent", st.Insolvent)
}
