package dailyrotate

import "time"

// Calendar computes period boundaries. It carries the time zone and the
// first day of the week explicitly so that boundary math never depends on
// process-wide defaults.
type Calendar struct {
	// Location is the zone boundaries are aligned to. Nil means UTC.
	Location *time.Location
	// FirstDayOfWeek is where Weekly periods start.
	FirstDayOfWeek time.Weekday
}

// NextBoundary returns the start of the period following the one that
// contains t. Fields finer than g are zeroed before the unit is added, so
// any instant inside a period maps to the same boundary.
//
// Minutely and Hourly periods advance by absolute durations, so a repeated
// wall-clock hour at a DST fall-back is its own period. Coarser periods use
// calendar arithmetic and follow midnight in c.Location, which makes days
// 23 or 25 hours long across DST changes and months 28 to 31 days long.
//
// InvalidGranularity returns t unchanged.
func (c Calendar) NextBoundary(t time.Time, g Granularity) time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)

	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	subMinute := time.Duration(sec)*time.Second + time.Duration(t.Nanosecond())

	switch g {
	case Minutely:
		return t.Add(-subMinute).Add(time.Minute)
	case Hourly:
		return t.Add(-subMinute - time.Duration(minute)*time.Minute).Add(time.Hour)
	case HalfDaily:
		if hour < 12 {
			return time.Date(year, month, day, 12, 0, 0, 0, loc)
		}
		return time.Date(year, month, day+1, 0, 0, 0, 0, loc)
	case Daily:
		return time.Date(year, month, day+1, 0, 0, 0, 0, loc)
	case Weekly:
		days := (int(c.FirstDayOfWeek) - int(t.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return time.Date(year, month, day+days, 0, 0, 0, 0, loc)
	case Monthly:
		return time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
	default:
		return t
	}
}
