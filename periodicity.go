package dailyrotate

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Granularity is the period at which a date pattern's formatted output
// changes, ordered from finest to coarsest.
type Granularity int

const (
	InvalidGranularity Granularity = iota // pattern has no time-varying part
	Minutely
	Hourly
	HalfDaily
	Daily
	Weekly
	Monthly
)

func (g Granularity) String() string {
	switch g {
	case Minutely:
		return "minutely"
	case Hourly:
		return "hourly"
	case HalfDaily:
		return "half-daily"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return "invalid"
	}
}

// DetectGranularity infers the rotation granularity of a strftime pattern.
// The Unix epoch and the next boundary after it are formatted for every
// granularity from Minutely to Monthly, and the first one whose outputs
// differ wins. The calendar is pinned to UTC regardless of c.Location so
// that local offsets cannot shift the probe across a boundary.
//
// A pattern without time-varying fields yields InvalidGranularity. An
// unparsable pattern returns an error.
func DetectGranularity(pattern string, c Calendar) (Granularity, error) {
	p, err := strftime.New(pattern)
	if err != nil {
		return InvalidGranularity, fmt.Errorf("invalid strftime pattern: %w", err)
	}
	return detectGranularity(p, c.FirstDayOfWeek), nil
}

func detectGranularity(p *strftime.Strftime, firstDay time.Weekday) Granularity {
	neutral := Calendar{Location: time.UTC, FirstDayOfWeek: firstDay}
	epoch := time.Unix(0, 0).UTC()
	r0 := p.FormatString(epoch)
	for g := Minutely; g <= Monthly; g++ {
		r1 := p.FormatString(neutral.NextBoundary(epoch, g))
		if r0 != r1 {
			return g
		}
	}
	return InvalidGranularity
}
