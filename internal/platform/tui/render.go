package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/storage-mogul/internal/sim"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(0, 1)
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1)
)

// toneStyles maps event tones to styles.
var toneStyles = map[sim.Tone]lipgloss.Style{
	sim.ToneInfo:     lipgloss.NewStyle(),
	sim.TonePositive: goodStyle,
	sim.ToneWarning:  warnStyle,
}

const sparkRunes = "▁▂▃▄▅▆▇█"

// renderDashboard lays out the full dashboard for m.
func renderDashboard(m DashboardModel) string {
	st := m.state
	var b strings.Builder

	b.WriteString(renderHeader(st))
	b.WriteString("\n")

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(renderFinances(st, m.cashFlow)),
		" ",
		panelStyle.Render(renderOperations(st, m.cashFlow, m.category)),
		" ",
		panelStyle.Render(renderMarket(st)),
	)
	b.WriteString(top)
	b.WriteString("\n")

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(renderActions(st)),
		" ",
		panelStyle.Render(renderEvents(st, eventRows(m.height))),
	)
	b.WriteString(bottom)
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(badStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func eventRows(height int) int {
	if height <= 0 {
		return 8
	}
	return max(4, min(sim.EventLogCap, height-26))
}

func renderHeader(st *sim.GameState) string {
	status := runningStyle.Render(fmt.Sprintf("RUNNING %gx", st.Clock.Speed))
	switch {
	case st.Insolvent:
		status = bannerStyle.Render("RECEIVERSHIP")
	case st.Paused:
		status = pausedStyle.Render(fmt.Sprintf("PAUSED %gx", st.Clock.Speed))
	}
	return fmt.Sprintf("%s  %s  %s  %s  %s",
		titleStyle.Render("STORAGE MOGUL"),
		valueStyle.Render(st.Facility.Name),
		labelStyle.Render(st.City),
		st.Clock.String(),
		status,
	)
}

func renderFinances(st *sim.GameState, cf sim.CashFlow) string {
	fin := st.Financials
	rows := []string{
		titleStyle.Render("Finances"),
		kv("Cash", money(fin.Cash)),
		kv("Debt", sim.FormatMoney(fin.Debt)),
		kv("Net / day", money(fin.NetLastTick)),
		kv("Revenue / day", sim.FormatMoney(cf.DailyRevenue)),
		kv("Expenses / day", sim.FormatMoney(cf.DailyExpenses)),
		kv("Valuation", sim.FormatMoney(fin.Valuation)),
		kv("Deferred maint.", sim.FormatMoney(fin.DeferredMaintenance)),
		kv("Credit score", creditText(st.Player.CreditScore)),
		kv("Cash trend", sparkline(st.History.Cash, 18)),
	}
	return strings.Join(rows, "\n")
}

func renderOperations(st *sim.GameState, cf sim.CashFlow, focused int) string {
	f := st.Facility
	rows := []string{
		titleStyle.Render("Operations"),
		kv("Units", fmt.Sprintf("%s / %s", humanize.Comma(int64(math.Round(f.OccupiedUnits))), humanize.Comma(int64(f.TotalUnits)))),
		kv("Occupancy", bar(f.OccupancyRate, 12)+fmt.Sprintf(" %.1f%%", f.OccupancyRate*100)),
		kv("Delinquent", fmt.Sprintf("%.1f%%", f.Delinquency.Rate*100)),
		kv("Collections", fmt.Sprintf("%.1f%%", cf.CollectionRate*100)),
		kv("Reputation", fmt.Sprintf("%.0f", f.Reputation)),
		kv("Automation", fmt.Sprintf("%.2f", st.Automation.Level)),
		"",
	}
	for i, c := range categories {
		tier := tierFor(f.Pricing, c)
		line := fmt.Sprintf("%-18s %s / %s", categoryLabel(c), sim.FormatMoney(tier.Standard), sim.FormatMoney(tier.Prime))
		if i == focused {
			line = focusStyle.Render(line)
		}
		rows = append(rows, line)
	}
	offer := "none"
	if f.Pricing.Specials.Offer == sim.OfferOneMonthFree {
		offer = fmt.Sprintf("1 month free (%.0f%%)", f.Pricing.Specials.AdoptionRate*100)
	}
	plans := "off"
	if f.Delinquency.AllowPaymentPlans {
		plans = "on"
	}
	rows = append(rows,
		kv("Special", offer),
		kv("Payment plans", plans),
		kv("Evict after", fmt.Sprintf("%.0f days", f.Delinquency.EvictionDays)),
	)
	return strings.Join(rows, "\n")
}

func renderMarket(st *sim.GameState) string {
	mk := st.Market
	trend := string(mk.Trend)
	switch mk.Trend {
	case sim.TrendSurging:
		trend = goodStyle.Render(trend)
	case sim.TrendSoftening:
		trend = badStyle.Render(trend)
	}
	goal := st.Goal
	progress := 0.0
	if goal.Target > 0 {
		progress = goal.Progress / goal.Target
	}
	rows := []string{
		titleStyle.Render("Market"),
		kv("Demand", fmt.Sprintf("%.2f", mk.DemandIndex)),
		kv("Trend", trend),
		kv("Competition", fmt.Sprintf("%.2f", mk.CompetitionPressure)),
		kv("Climate risk", fmt.Sprintf("%.2f", mk.ClimateRisk)),
		kv("Demand trend", sparkline(st.History.Demand, 18)),
		"",
		titleStyle.Render("Directive"),
		goal.Label,
		bar(progress, 20) + fmt.Sprintf(" %.0f%%", math.Min(progress, 1)*100),
	}
	if goal.Completed {
		rows = append(rows, goodStyle.Render("Complete"))
	}
	return strings.Join(rows, "\n")
}

func renderActions(st *sim.GameState) string {
	rows := []string{titleStyle.Render("Actions")}
	for i, def := range sim.Actions() {
		status := sim.FormatMoney(def.Cost)
		style := lipgloss.NewStyle()
		switch {
		case !st.IsUnlocked(def.ID):
			status = "locked"
			style = dimStyle
		case st.Cooldowns[def.ID] > 0:
			status = fmt.Sprintf("ready in %d days", st.Cooldowns[def.ID])
			style = warnStyle
		case st.Financials.Cash < def.Cost:
			style = badStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%d  %-34s %s", i+1, def.Title, status)))
	}
	return strings.Join(rows, "\n")
}

func renderEvents(st *sim.GameState, n int) string {
	rows := []string{titleStyle.Render("Events")}
	for i, e := range st.Events {
		if i >= n {
			break
		}
		date := sim.FormatDate(e.Year, e.Month, e.Day)
		rows = append(rows, dimStyle.Render(date)+"  "+toneStyles[e.Tone].Render(e.Message))
	}
	return strings.Join(rows, "\n")
}

func kv(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-16s", label)) + value
}

func money(v float64) string {
	if v < 0 {
		return badStyle.Render(sim.FormatMoney(v))
	}
	return valueStyle.Render(sim.FormatMoney(v))
}

func creditText(score float64) string {
	text := fmt.Sprintf("%.0f", score)
	switch {
	case score >= 750:
		return goodStyle.Render(text)
	case score < 580:
		return badStyle.Render(text)
	default:
		return text
	}
}

func categoryLabel(c sim.UnitCategory) string {
	switch c {
	case sim.CategoryClimateControlled:
		return "Climate controlled"
	case sim.CategoryDriveUp:
		return "Drive-up"
	case sim.CategoryVault:
		return "Vault"
	default:
		return string(c)
	}
}

// bar renders frac in [0,1] as a fixed-width gauge.
func bar(frac float64, width int) string {
	if math.IsNaN(frac) {
		frac = 0
	}
	filled := int(math.Round(math.Max(0, math.Min(frac, 1)) * float64(width)))
	return goodStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// sparkline renders the last width samples of series scaled to their range.
func sparkline(series []float64, width int) string {
	if len(series) > width {
		series = series[len(series)-width:]
	}
	if len(series) == 0 {
		return ""
	}
	lo, hi := series[0], series[0]
	for _, v := range series {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	runes := []rune(sparkRunes)
	var b strings.Builder
	for _, v := range series {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(runes)-1))
		}
		b.WriteRune(runes[idx])
	}
	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
