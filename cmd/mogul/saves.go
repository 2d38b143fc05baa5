package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/storage-mogul/internal/config"
	"github.com/vovakirdan/storage-mogul/internal/storage"
)

var (
	flagRuns   bool
	flagLimit  int
	flagDelete string
	flagRunID  string
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved games and past runs",
	Long: `Show the save slots in the database, the best archived runs, or
delete a slot.

Examples:
  mogul saves
  mogul saves --runs --limit 20
  mogul saves --run 3f0c...
  mogul saves --delete autosave`,
	Run: runSaves,
}

func init() {
	savesCmd.Flags().BoolVar(&flagRuns, "runs", false, "Show archived runs ranked by valuation")
	savesCmd.Flags().IntVar(&flagLimit, "limit", 10, "Runs to show")
	savesCmd.Flags().StringVar(&flagDelete, "delete", "", "Delete the named save slot")
	savesCmd.Flags().StringVar(&flagRunID, "run", "", "Show one archived run by ID")
}

func runSaves(_ *cobra.Command, _ []string) {
	e, err := loadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(e.settings.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening saves database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagDelete != "":
		err = deleteSave(store, flagDelete)
	case flagRunID != "":
		err = showRun(store, e.catalog, flagRunID)
	case flagRuns:
		err = listRuns(store, e.catalog, flagLimit)
	default:
		err = listSaves(store)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listSaves(store *storage.Store) error {
	saves, err := store.ListSaves()
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("No saved games.")
		fmt.Println()
		fmt.Println("Run 'mogul play' to start one.")
		return nil
	}

	fmt.Printf("  %-20s %-16s %6s  %-36s %s\n", "Slot", "Facility", "Day", "Label", "Saved")
	fmt.Printf("  %-20s %-16s %6s  %-36s %s\n", "----", "--------", "---", "-----", "-----")
	for _, s := range saves {
		fmt.Printf("  %-20s %-16s %6d  %-36s %s\n", s.Slot, s.Scenario, s.Tick, s.Label, humanize.Time(s.SavedAt))
	}
	return nil
}

func listRuns(store *storage.Store, catalog config.Catalog, limit int) error {
	runs, err := store.TopRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-22s %6s %14s %6s  %-12s %s\n", "Rank", "Facility", "Days", "Valuation", "Credit", "Outcome", "Date")
	fmt.Printf("  %-4s  %-22s %6s %14s %6s  %-12s %s\n", "----", "--------", "----", "---------", "------", "-------", "----")
	for i, r := range runs {
		outcome := success.Sprintf("%-12s", "Retired")
		if r.Insolvent {
			outcome = danger.Sprintf("%-12s", "Receivership")
		}
		fmt.Printf("  %-4d  %-22s %6d %14s %6.0f  %s %s\n", i+1, facilityName(catalog, r.Facility), r.Days,
			"$"+humanize.Comma(int64(r.Valuation)), r.CreditScore, outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func showRun(store *storage.Store, catalog config.Catalog, runID string) error {
	r, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no run %q", runID)
	}
	accent.Printf("Run %s\n", r.RunID)
	row(os.Stdout, "Facility", facilityName(catalog, r.Facility))
	row(os.Stdout, "Region", r.Region)
	row(os.Stdout, "Slot", r.Slot)
	row(os.Stdout, "Days", humanize.Comma(int64(r.Days)))
	row(os.Stdout, "Valuation", "$"+humanize.Comma(int64(r.Valuation)))
	row(os.Stdout, "Credit", fmt.Sprintf("%.0f", r.CreditScore))
	row(os.Stdout, "Receivership", fmt.Sprint(r.Insolvent))
	row(os.Stdout, "Recorded", r.CreatedAt.Format(time.RFC1123))
	return nil
}

func deleteSave(store *storage.Store, slot string) error {
	entry, err := store.LoadGame(slot)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("no save in slot %q", slot)
	}
	if err := store.DeleteGame(slot); err != nil {
		return err
	}
	fmt.Printf("Deleted %s (%s).\n", slot, entry.Label)
	return nil
}

func facilityName(catalog config.Catalog, id string) string {
	if f, ok := catalog.Facility(id); ok {
		return f.Name
	}
	return id
}
