// mogul is a terminal tycoon game about running a self-storage facility.
//
// Usage:
//
//	mogul play               - Buy a facility and run it in the dashboard
//	mogul sim                - Simulate days headlessly and print a report
//	mogul project <facility> - Forecast the first years after a purchase
//	mogul regions            - List trade areas and facilities for sale
//	mogul saves              - List, inspect or delete saved games
//	mogul serve              - Start SSH server for remote play
//	mogul config <name>      - Print an embedded default config
//
// Global flags:
//
//	--seed <value>    - Override the deal-derived RNG seed
//	--db <path>       - Set database path (default: ~/.mogul/mogul.db)
//	--config <path>   - Settings YAML
//	--catalog <path>  - Catalog YAML
//	--preset <name>   - Difficulty preset: easy, normal, hard
//	--speed <value>   - Starting speed multiplier or preset name
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/storage-mogul/internal/config"
	"github.com/vovakirdan/storage-mogul/internal/sim"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagCatalog string
	flagPreset  string
	flagSpeed   string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mogul",
	Short: "Storage Mogul - Run a self-storage empire in your terminal",
	Long: `Storage Mogul is a tycoon game about buying a self-storage facility
with a mortgage and growing it one simulated day at a time.

Available commands:
  play     - Open the title menu and play
  sim      - Run days headlessly and print a report
  project  - Forecast a purchase before you make it
  regions  - Show trade areas and listings
  saves    - Manage saved games and past runs
  serve    - Start SSH server for remote play
  config   - Print embedded default configs

Examples:
  mogul play
  mogul play --preset hard --speed fast
  mogul sim --days 365 --facility ridge-depot
  mogul project harbor-one --down 0.3
  mogul serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = derive from the deal)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to saves database (default from settings)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "1", "Starting speed: multiplier or slow, normal, fast, turbo")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// env is everything the commands resolve from the global flags.
type env struct {
	settings config.Settings
	catalog  config.Catalog
	player   sim.PlayerProfile
	speed    float64
	logger   *log.Logger
}

// loadEnv reads settings and catalog and applies the preset and speed flags.
func loadEnv() (env, error) {
	logger := newLogger()

	settings, err := config.LoadSettings(flagConfig)
	if err != nil {
		return env{}, err
	}
	catalog, err := config.LoadCatalog(flagCatalog)
	if err != nil {
		if flagCatalog != "" {
			return env{}, err
		}
		logger.Warn("using built-in catalog", "err", err)
	}

	preset, err := config.ParseDifficulty(flagPreset)
	if err != nil {
		return env{}, err
	}
	speed, err := parseSpeed(flagSpeed)
	if err != nil {
		return env{}, err
	}
	if flagDBPath != "" {
		settings.DBPath = flagDBPath
	}

	return env{
		settings: settings,
		catalog:  catalog,
		player:   config.ApplyPreset(catalog.Player, preset),
		speed:    settings.ClampSpeed(speed),
		logger:   logger,
	}, nil
}

// start builds the opening configuration for facilityID, or the catalog
// default when it is empty, and applies the seed flag.
func (e env) start(facilityID string) (sim.StartConfig, error) {
	var (
		start sim.StartConfig
		err   error
	)
	if facilityID == "" {
		start, err = e.catalog.DefaultStart(e.player)
	} else {
		start, err = e.catalog.Start(facilityID, e.player)
	}
	if err != nil {
		return sim.StartConfig{}, err
	}
	if flagSeed != 0 {
		start.Seed = flagSeed
	}
	return start, nil
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mogul",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// parseSpeed accepts a multiplier or a speed preset name.
func parseSpeed(v string) (float64, error) {
	switch p := config.SpeedPreset(v); p {
	case config.SpeedSlow, config.SpeedNormal, config.SpeedFast, config.SpeedTurbo:
		return config.SpeedForPreset(p), nil
	}
	speed, err := strconv.ParseFloat(v, 64)
	if err != nil || speed <= 0 {
		return 0, fmt.Errorf("invalid speed %q (want a positive number or slow, normal, fast, turbo)", v)
	}
	return speed, nil
}

// openLogFile opens mogul.log beside the database for appending.
func openLogFile(dbPath string) (*os.File, error) {
	dir := filepath.Dir(config.ExpandPath(dbPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "mogul.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
