package appointment

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

var ErrInvalidSchedule = errors.New("invalid schedule")

// Schedule is the base list of bookable times-of-day the salon offers daily.
type Schedule struct {
	slots []string
	index map[string]struct{}
}

var defaultSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "12:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30", "18:00",
}

func DefaultSchedule() *Schedule {
	s, _ := NewSchedule(defaultSlots)
	return s
}

// NewSchedule validates, sorts and de-duplicates the given HH:MM slots.
func NewSchedule(slots []string) (*Schedule, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: no slots", ErrInvalidSchedule)
	}

	index := make(map[string]struct{}, len(slots))
	out := make([]string, 0, len(slots))
	for _, raw := range slots {
		t, err := ParseTimeOfDay(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSchedule, raw)
		}
		if _, dup := index[t]; dup {
			continue
		}
		index[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)

	return &Schedule{slots: out, index: index}, nil
}

// GenerateSchedule walks the working day in fixed steps, skipping every slot
// that starts inside the lunch break.
func GenerateSchedule(open, close, lunchStart, lunchEnd string, stepMinutes int) (*Schedule, error) {
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("%w: step must be positive", ErrInvalidSchedule)
	}

	parseHM := func(hm string) (time.Time, error) {
		return time.Parse(timezone.TimeLayout, hm)
	}

	dayStart, err := parseHM(open)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q", ErrInvalidSchedule, open)
	}
	dayEnd, err := parseHM(close)
	if err != nil {
		return nil, fmt.Errorf("%w: close %q", ErrInvalidSchedule, close)
	}

	hasLunch := lunchStart != "" && lunchEnd != ""
	var ls, le time.Time
	if hasLunch {
		if ls, err = parseHM(lunchStart); err != nil {
			return nil, fmt.Errorf("%w: lunch_start %q", ErrInvalidSchedule, lunchStart)
		}
		if le, err = parseHM(lunchEnd); err != nil {
			return nil, fmt.Errorf("%w: lunch_end %q", ErrInvalidSchedule, lunchEnd)
		}
	}

	step := time.Duration(stepMinutes) * time.Minute
	var slots []string
	for cur := dayStart; !cur.After(dayEnd); cur = cur.Add(step) {
		// almuerzo
		if hasLunch && !cur.Before(ls) && cur.Before(le) {
			continue
		}
		slots = append(slots, cur.Format(timezone.TimeLayout))
	}

	return NewSchedule(slots)
}

func (s *Schedule) Slots() []string {
	out := make([]string, len(s.slots))
	copy(out, s.slots)
	return out
}

func (s *Schedule) Contains(t string) bool {
	_, ok := s.index[t]
	return ok
}

// ParseTimeOfDay normalizes "9:00" / "09:00" to "09:00".
func ParseTimeOfDay(s string) (string, error) {
	t, err := time.Parse(timezone.TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format(timezone.TimeLayout), nil
}
