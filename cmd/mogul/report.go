package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/vovakirdan/storage-mogul/internal/sim"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

// printReport writes the end-of-simulation summary for st.
func printReport(w io.Writer, st *sim.GameState, events int) {
	accent.Fprintf(w, "%s - %s\n", st.Facility.Name, st.Clock.String())
	fmt.Fprintf(w, "  Day %s, goal stage %d: %s\n", humanize.Comma(int64(st.Tick)), st.GoalStage, st.Goal.Label)
	if st.Insolvent {
		danger.Fprintln(w, "  In receivership")
	}
	fmt.Fprintln(w)

	row(w, "Cash", signed(st.Financials.Cash))
	row(w, "Debt", neutral.Sprint(sim.FormatMoney(st.Financials.Debt)))
	row(w, "Valuation", neutral.Sprint(sim.FormatMoney(st.Financials.Valuation)))
	row(w, "Credit score", creditColor(st.Player.CreditScore).Sprintf("%.0f", st.Player.CreditScore))
	row(w, "Occupancy", fmt.Sprintf("%.0f/%d (%.1f%%)",
		st.Facility.OccupiedUnits, st.Facility.TotalUnits, st.Facility.OccupancyRate*100))
	row(w, "Delinquency", fmt.Sprintf("%.1f%%", st.Financials.DelinquentShare*100))
	row(w, "Reputation", fmt.Sprintf("%.0f", st.Facility.Reputation))
	row(w, "Demand", fmt.Sprintf("%.2f (%s)", st.Market.DemandIndex, st.Market.Trend))
	if len(st.Player.RegionsUnlocked) > 0 {
		row(w, "Regions", fmt.Sprint(st.Player.RegionsUnlocked))
	}

	if events <= 0 || len(st.Events) == 0 {
		return
	}
	fmt.Fprintln(w)
	accent.Fprintln(w, "Recent events")
	for i, ev := range st.Events {
		if i == events {
			break
		}
		c := neutral
		switch ev.Tone {
		case sim.TonePositive:
			c = success
		case sim.ToneWarning:
			c = warn
		}
		fmt.Fprintf(w, "  %-12s ", sim.FormatDate(ev.Year, ev.Month, ev.Day))
		c.Fprintln(w, ev.Message)
	}
}

func row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-14s %s\n", label, value)
}

func signed(v float64) string {
	if v < 0 {
		return danger.Sprint(sim.FormatMoney(v))
	}
	return success.Sprint(sim.FormatMoney(v))
}

func creditColor(score float64) *color.Color {
	switch {
	case score >= 700:
		return success
	case score >= 600:
		return warn
	default:
		return danger
	}
}
