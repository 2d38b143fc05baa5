package session

import (
	"context"
	"time"

	"github.com/vovakirdan/storage-mogul/internal/core"
)

// Run drives the session in real time until ctx is cancelled or a quit
// command arrives on inputs. Commands are applied as they arrive; the
// clock ticks at Interval and re-reads it after every tick so speed
// changes take effect immediately. The game is saved and archived on exit.
func (s *Session) Run(ctx context.Context, inputs <-chan core.Input) error {
	timer := time.NewTimer(s.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			_, err := s.Finish()
			return err

		case in, ok := <-inputs:
			if !ok {
				inputs = nil
				continue
			}
			if s.Handle(in) {
				_, err := s.Finish()
				return err
			}

		case <-timer.C:
			s.Tick()
			timer.Reset(s.Interval())
		}
	}
}
