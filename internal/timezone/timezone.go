package timezone

import (
	"math"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Mexico_City"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock is the single source of "now" for the salon calendar.
type Clock interface {
	Now() time.Time
}

type SalonClock struct {
	loc *time.Location
}

func NewSalonClock(tz string) *SalonClock {
	return &SalonClock{loc: Location(tz)}
}

func (c *SalonClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always returns the same instant. Used by tests and replays.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

// Today returns the salon's calendar date as YYYY-MM-DD.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date in the clock's location.
func ParseDate(c Clock, s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, c.Now().Location())
}

// DaysUntil counts whole calendar days from today to date (negative when past).
func DaysUntil(c Clock, date string) (int, error) {
	d, err := ParseDate(c, date)
	if err != nil {
		return 0, err
	}
	now := c.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	target := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(target.Sub(today).Hours() / 24)), nil
}
