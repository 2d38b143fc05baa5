package sim

import "github.com/vovakirdan/storage-mogul/internal/core"

// pushSample appends v and drops the oldest entries beyond HistoryCap.
func pushSample(series []float64, v float64) []float64 {
	series = append(series, v)
	if over := len(series) - HistoryCap; over > 0 {
		series = append(series[:0:0], series[over:]...)
	}
	return series
}

// clampSeries keeps only finite values and the newest HistoryCap of them.
// An empty result is replaced by a single fallback sample.
func clampSeries(series []float64, fallback float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if core.IsFinite(v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return []float64{fallback}
	}
	if over := len(out) - HistoryCap; over > 0 {
		out = out[over:]
	}
	return out
}

func recordHistory(s *GameState) {
	h := &s.History
	h.Cash = pushSample(h.Cash, s.Financials.Cash)
	h.Net = pushSample(h.Net, s.Financials.NetLastTick)
	h.MonthlyNet = pushSample(h.MonthlyNet, s.Financials.NetMonthly)
	h.Occupancy = pushSample(h.Occupancy, s.Facility.OccupancyRate)
	h.Demand = pushSample(h.Demand, s.Market.DemandIndex)
}
