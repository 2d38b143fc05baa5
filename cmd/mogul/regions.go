package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List trade areas and facilities for sale",
	Long:  `Shows every trade area in the catalog with the facilities listed in it.`,
	Run:   runRegions,
}

func runRegions(_ *cobra.Command, _ []string) {
	e, err := loadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(e.catalog.TradeAreas) == 0 {
		fmt.Println("No trade areas in the catalog.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, f := range e.catalog.Facilities {
		maxIDLen = max(maxIDLen, len(f.ID))
	}

	for _, area := range e.catalog.TradeAreas {
		accent.Printf("%s (%s)\n", area.Name, area.ID)
		fmt.Printf("  demand %.2f  competition %.2f  base rate %.2f%%  climate risk %.2f\n",
			area.DemandIndex, area.Competition, area.BaseRate*100, area.ClimateRisk)
		if area.Description != "" {
			fmt.Printf("  %s\n", area.Description)
		}
		fmt.Println()

		listings := e.catalog.FacilitiesIn(area.ID)
		if len(listings) == 0 {
			fmt.Println("  No listings.")
			fmt.Println()
			continue
		}
		fmt.Printf("  %-*s  %-24s %12s %8s %6s %6s\n", maxIDLen, "ID", "Name", "Price", "Sqft", "Units", "Occ")
		for _, f := range listings {
			price := fmt.Sprintf("%12s", "$"+humanize.Comma(int64(f.Price)))
			if f.Price > e.player.MaxPurchase {
				price = danger.Sprint(price)
			}
			fmt.Printf("  %-*s  %-24s %s %8s %6d %5.0f%%\n", maxIDLen, f.ID, f.Name, price,
				humanize.Comma(int64(f.SizeSqft)), f.TotalUnits, f.Occupancy*100)
		}
		if next := e.catalog.ExpansionRegions(area.ID); len(next) > 0 {
			fmt.Printf("  Expansion: %v\n", next)
		}
		fmt.Println()
	}

	fmt.Println("Run 'mogul project <id>' to forecast a deal or 'mogul play' to buy one.")
}
