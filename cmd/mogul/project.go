package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/storage-mogul/internal/sim"
)

var (
	flagDown    float64
	flagTerm    int
	flagRate    string
	flagMonthly bool
)

var projectCmd = &cobra.Command{
	Use:   "project [facility]",
	Short: "Forecast a purchase",
	Long: `Preview the loan for a facility and forecast the months after
buying it: cash, credit, payoff and any forced sale.

Without a facility the first listing in the catalog is used. Financing
defaults to the catalog terms.

Examples:
  mogul project
  mogul project ridge-depot --down 0.35 --term 15
  mogul project sunbelt-megabox --rate variable --monthly`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProject,
}

func init() {
	projectCmd.Flags().Float64Var(&flagDown, "down", 0, "Down payment fraction (0 = catalog default)")
	projectCmd.Flags().IntVar(&flagTerm, "term", 0, "Loan term in years (0 = catalog default)")
	projectCmd.Flags().StringVar(&flagRate, "rate", "", "Rate type: fixed or variable (default from catalog)")
	projectCmd.Flags().BoolVar(&flagMonthly, "monthly", false, "Print every month instead of every year")
}

func runProject(_ *cobra.Command, args []string) {
	e, err := loadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	facilityID := ""
	if len(args) == 1 {
		facilityID = args[0]
	} else if len(e.catalog.Facilities) > 0 {
		facilityID = e.catalog.Facilities[0].ID
	}

	financing := e.catalog.Financing
	if flagDown > 0 {
		financing.DownPaymentPercent = flagDown
	}
	if flagTerm > 0 {
		financing.TermYears = flagTerm
	}
	switch sim.RateType(flagRate) {
	case "":
	case sim.RateFixed, sim.RateVariable:
		financing.RateType = sim.RateType(flagRate)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown rate type %q\n", flagRate)
		os.Exit(1)
	}

	start, err := e.catalog.StartWith(facilityID, financing, e.player)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagSeed != 0 {
		start.Seed = flagSeed
	}

	printLoan(start)
	if !start.Loan.Valid {
		danger.Println("\nThis deal is out of reach with the current profile.")
		return
	}
	printProjection(sim.Project(start), flagMonthly)
}

func printLoan(start sim.StartConfig) {
	loan := start.Loan
	accent.Printf("%s, %s (%s)\n", start.Facility.Name, start.Facility.City, start.Region.Name)
	row(os.Stdout, "Price", sim.FormatMoney(start.Facility.Price))
	row(os.Stdout, "Down payment", sim.FormatMoney(loan.DownPayment))
	row(os.Stdout, "Loan", fmt.Sprintf("%s (max %s)", sim.FormatMoney(loan.LoanAmount), sim.FormatMoney(loan.MaxLoanAllowed)))
	row(os.Stdout, "Rate", fmt.Sprintf("%.2f%% %s over %d months", loan.InterestRate*100, loan.RateType, loan.TermMonths))
	row(os.Stdout, "Payment", sim.FormatMoney(loan.MonthlyPayment)+"/mo")
	row(os.Stdout, "Cash after", signed(start.CashAfterPurchase))
}

func printProjection(p sim.Projection, monthly bool) {
	fmt.Println()
	accent.Println("Forecast")
	row(os.Stdout, "Revenue", sim.FormatMoney(p.RevenueMonthly)+"/mo")
	row(os.Stdout, "Expenses", sim.FormatMoney(p.ExpensesMonthly)+"/mo")
	row(os.Stdout, "Net", signed(p.NetIncomeMonthly)+"/mo")
	runway := "never runs out"
	if !math.IsInf(p.RunwayMonths, 1) {
		runway = fmt.Sprintf("%.1f months", p.RunwayMonths)
	}
	row(os.Stdout, "Runway", runway)
	row(os.Stdout, "Net worth", fmt.Sprintf("%s (%+.1f%%)", sim.FormatMoney(p.NetWorthAfterPurchase), p.NetWorthChangePercent))
	row(os.Stdout, "Credit", fmt.Sprintf("%.0f (%+.0f)", p.FinalCreditScore, p.TotalCreditDelta))
	switch {
	case p.ForcedSaleMonth > 0:
		row(os.Stdout, "Outcome", danger.Sprintf("forced sale in month %d", p.ForcedSaleMonth))
	case p.PayoffMonth > 0:
		row(os.Stdout, "Outcome", success.Sprintf("loan paid off in month %d", p.PayoffMonth))
	default:
		row(os.Stdout, "Outcome", neutral.Sprint("still paying at the horizon"))
	}

	fmt.Println()
	fmt.Printf("  %-6s %14s %14s %14s %7s  %s\n", "Month", "Cash", "Loan", "Net worth", "Credit", "Events")
	for _, m := range p.Timeline {
		if !monthly && m.Month%12 != 0 && len(m.Events) == 0 && m.Month != len(p.Timeline) {
			continue
		}
		fmt.Printf("  %-6d %14s %14s %14s %7.0f  %s\n", m.Month,
			sim.FormatMoney(m.Cash), sim.FormatMoney(m.LoanBalance), sim.FormatMoney(m.NetWorth),
			m.CreditScore, strings.Join(m.Events, "; "))
	}
}
