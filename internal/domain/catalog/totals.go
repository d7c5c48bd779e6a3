package catalog

import "fmt"

// ServiceList is the ordered selection of services on an appointment.
type ServiceList []ServiceID

func (l ServiceList) Contains(id ServiceID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

func (l ServiceList) Names() []string {
	out := make([]string, 0, len(l))
	for _, id := range l {
		out = append(out, id.String())
	}
	return out
}

type Totals struct {
	Price       float64
	DurationMin int
	Duration    string
}

func (l ServiceList) Totals() Totals {
	var t Totals
	for _, id := range l {
		s, ok := ByID(id)
		if !ok {
			continue
		}
		t.Price += s.Price
		t.DurationMin += s.DurationMin
	}
	t.Duration = FormatDuration(t.DurationMin)
	return t
}

// FormatDuration renders minutes as "1h 45min" from an hour up, "45 min" below.
func FormatDuration(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%d min", minutes)
}
