package appointment

// AvailabilityInput asks for the free base slots on one salon date.
type AvailabilityInput struct {
	Date string
}

type Availability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
	Full  bool     `json:"full"`
}

// FreeSlots removes every taken effective time from the base schedule,
// preserving the schedule's ascending order. An empty result means fully booked.
func FreeSlots(base []string, taken []string) []string {
	busy := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		busy[t] = struct{}{}
	}

	out := make([]string, 0, len(base))
	for _, slot := range base {
		if _, ok := busy[slot]; ok {
			continue
		}
		out = append(out, slot)
	}
	return out
}
