package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/storage-mogul/internal/core"
	"github.com/vovakirdan/storage-mogul/internal/session"
	"github.com/vovakirdan/storage-mogul/internal/sim"
	"github.com/vovakirdan/storage-mogul/internal/storage"
)

var (
	flagDays      int
	flagFacility  string
	flagSimSlot   string
	flagAutopilot bool
	flagLive      bool
	flagEvents    int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate days without the dashboard",
	Long: `Run the simulation headlessly and print a report.

By default nothing is saved. Pass --slot to keep the game in the saves
database and archive the run when the simulation ends.

With --live the clock runs in real time and commands are read from stdin,
one per line:
  run | pause | toggle    - Start or stop the clock
  step                    - Advance one day
  faster | slower         - Change speed
  save                    - Save now (needs --slot)
  1-4 or an action name   - expand_capacity, launch_campaign,
                            optimize_pricing, train_ai_manager
  quit                    - Stop and print the report

Examples:
  mogul sim --days 365
  mogul sim --days 730 --facility ridge-depot --autopilot
  mogul sim --seed 42 --preset hard -v
  mogul sim --live --slot headless --speed turbo`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagDays, "days", 365, "Days to simulate")
	simCmd.Flags().StringVar(&flagFacility, "facility", "", "Facility to buy (default: first in catalog)")
	simCmd.Flags().StringVar(&flagSimSlot, "slot", "", "Save slot to resume and write (default: no saves)")
	simCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Take every available action each day")
	simCmd.Flags().BoolVar(&flagLive, "live", false, "Run in real time reading commands from stdin")
	simCmd.Flags().IntVar(&flagEvents, "events", 10, "Event log entries to print")
}

func runSim(_ *cobra.Command, _ []string) {
	e, err := loadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	start, err := e.start(flagFacility)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store session.Store
	if flagSimSlot != "" {
		db, openErr := storage.Open(e.settings.DBPath)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening saves database: %v\n", openErr)
			os.Exit(1)
		}
		defer db.Close()
		store = db
	}

	sess := session.New(start, store, session.Options{
		Slot:     flagSimSlot,
		Settings: e.settings,
		Logger:   e.logger,
	})
	if loaded, loadErr := sess.Load(start); loadErr != nil {
		e.logger.Warn("cannot resume save", "err", loadErr)
	} else if loaded {
		e.logger.Info("resumed saved game", "slot", flagSimSlot)
	}
	sess.SetSpeed(e.speed)

	if flagLive {
		err = runLive(sess, os.Stdin)
	} else {
		err = runDays(sess, flagDays, flagAutopilot)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	printReport(os.Stdout, sess.State(), flagEvents)
}

// runDays steps the session n days or until receivership, then saves and
// archives when a store is attached.
func runDays(sess *session.Session, n int, autopilot bool) error {
	for range n {
		if autopilot {
			for _, id := range sim.AllActions {
				sess.Apply(id)
			}
		}
		if res := sess.Step(); res.Halted {
			break
		}
	}
	_, err := sess.Finish()
	return err
}

// runLive runs the real-time loop, feeding it commands read from r.
func runLive(sess *session.Session, r io.Reader) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputs := make(chan core.Input)
	go func() {
		defer close(inputs)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			in, ok := parseCommand(scanner.Text())
			if !ok {
				fmt.Fprintf(os.Stderr, "unknown command %q\n", strings.TrimSpace(scanner.Text()))
				continue
			}
			select {
			case inputs <- in:
			case <-ctx.Done():
				return
			}
		}
	}()

	sess.Resume()
	return sess.Run(ctx, inputs)
}

// parseCommand maps one line of live input to a session command.
func parseCommand(line string) (core.Input, bool) {
	word := strings.ToLower(strings.TrimSpace(line))
	switch word {
	case "":
		return core.Input{}, false
	case "run", "pause", "toggle", "p":
		return core.Input{Intent: core.IntentToggle}, true
	case "step", "n":
		return core.Input{Intent: core.IntentStep}, true
	case "faster", "+":
		return core.Input{Intent: core.IntentFaster}, true
	case "slower", "-":
		return core.Input{Intent: core.IntentSlower}, true
	case "save", "s":
		return core.Input{Intent: core.IntentSave}, true
	case "quit", "exit", "q":
		return core.Input{Intent: core.IntentQuit}, true
	}
	if len(word) == 1 && word[0] >= '1' && int(word[0]-'1') < len(sim.AllActions) {
		return core.ActionInput(string(sim.AllActions[word[0]-'1'])), true
	}
	if id := sim.ActionID(word); id.Known() {
		return core.ActionInput(word), true
	}
	return core.Input{}, false
}
