package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/storage-mogul/internal/platform/tui"
	"github.com/vovakirdan/storage-mogul/internal/storage"
)

var flagSlot string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal dashboard",
	Long: `Open the title menu. Continue the saved game or buy a facility
from the catalog and run it day by day.

Controls:
  Space/P    - Run or pause the clock
  N          - Advance one day
  +/-        - Faster/slower
  1-4        - Expand, campaign, pricing study, train AI manager
  Tab        - Select unit type for [ and ] rent changes
  O          - Toggle the one-month-free special
  Y          - Toggle payment plans
  e/E        - Evict sooner/later
  S          - Save now
  Esc/B      - Back to menu (saves)
  Q/Ctrl+C   - Quit (saves)

Examples:
  mogul play
  mogul play --preset easy
  mogul play --slot weekend --speed turbo
  mogul play --catalog ./my-catalog.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSlot, "slot", "", "Save slot (default from settings)")
}

func runPlay(_ *cobra.Command, _ []string) {
	e, err := loadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.AppOptions{
		Catalog:  e.catalog,
		Settings: e.settings,
		Player:   e.player,
		Slot:     flagSlot,
		Seed:     flagSeed,
		Speed:    e.speed,
		Width:    width,
		Height:   height,
	}

	// The dashboard owns the terminal, so log to a file next to the database.
	logFile, logErr := openLogFile(e.settings.DBPath)
	if logErr == nil {
		defer logFile.Close()
		logger := newLogger()
		logger.SetOutput(logFile)
		opts.Logger = logger
	}

	store, err := storage.Open(e.settings.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open saves database: %v\n", err)
		store = nil
	}
	if store != nil {
		opts.Store = store
	}

	runErr := tui.RunApp(opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
