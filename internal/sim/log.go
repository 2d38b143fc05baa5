package sim

import "fmt"

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// PushLog prepends an entry stamped with the current tick and date and
// trims the log to EventLogCap entries.
func PushLog(s *GameState, message string, tone Tone) {
	s.LogSequence++
	entry := LogEntry{
		ID:      s.LogSequence,
		Tick:    s.Tick,
		Tone:    tone,
		Message: message,
		Year:    s.Clock.Year,
		Month:   s.Clock.Month,
		Day:     s.Clock.Day,
	}
	events := make([]LogEntry, 0, EventLogCap)
	events = append(events, entry)
	for _, e := range s.Events {
		if len(events) == EventLogCap {
			break
		}
		events = append(events, e)
	}
	s.Events = events
}

// MonthName returns the three-letter month name, Jan for out-of-range input.
func MonthName(month int) string {
	if month < 1 || month > len(monthNames) {
		return monthNames[0]
	}
	return monthNames[month-1]
}

// FormatDate renders a calendar date as "Feb 6, 2043".
func FormatDate(year, month, day int) string {
	return fmt.Sprintf("%s %d, %d", MonthName(month), day, year)
}

// String renders the clock as "Feb 6, 2043".
func (c Clock) String() string {
	return FormatDate(c.Year, c.Month, c.Day)
}

// advanceClock moves the calendar forward one day and reports whether a
// month boundary was crossed.
func advanceClock(c *Clock) bool {
	c.Day++
	rolled := false
	for c.Day > DaysPerMonth {
		c.Day -= DaysPerMonth
		c.Month++
		rolled = true
		if c.Month > MonthsPerYear {
			c.Month = 1
			c.Year++
		}
	}
	return rolled
}
