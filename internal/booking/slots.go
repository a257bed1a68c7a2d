package booking

import (
	"fmt"
	"time"
)

const (
	// FirstSlotHour is the start of the first bookable slot (09:00).
	FirstSlotHour = 9
	// LastSlotHour is the start of the last bookable slot (16:00).
	LastSlotHour = 16
	// SlotInterval is the spacing between slot start times.
	SlotInterval = 30 * time.Minute

	// SlotValueLayout is the wire format of a slot value.
	SlotValueLayout = "15:04"
	// SlotLabelLayout is the human 12-hour format of a slot.
	SlotLabelLayout = "3:04 PM"
)

// TimeSlot is a bookable half-hour start time.
type TimeSlot struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// slotUniverse backs lookups; GenerateTimeSlots hands out fresh copies.
var slotUniverse = GenerateTimeSlots()

// GenerateTimeSlots returns every half hour from 09:00 through 16:00
// inclusive. There is no 16:30 slot.
func GenerateTimeSlots() []TimeSlot {
	start := time.Date(2000, time.January, 1, FirstSlotHour, 0, 0, 0, time.UTC)
	end := time.Date(2000, time.January, 1, LastSlotHour, 0, 0, 0, time.UTC)

	slots := make([]TimeSlot, 0, int(end.Sub(start)/SlotInterval)+1)
	for t := start; !t.After(end); t = t.Add(SlotInterval) {
		slots = append(slots, TimeSlot{
			Value: t.Format(SlotValueLayout),
			Label: t.Format(SlotLabelLayout),
		})
	}
	return slots
}

// FindSlot looks up a slot by its HH:MM value.
func FindSlot(value string) (TimeSlot, bool) {
	for _, slot := range slotUniverse {
		if slot.Value == value {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// IsValidSlot reports whether value is one of the bookable slots.
func IsValidSlot(value string) bool {
	_, ok := FindSlot(value)
	return ok
}

// FormatTime12 converts an HH:MM value to its 12-hour label, e.g. "14:00" to
// "2:00 PM". It accepts any valid clock time, not only slot values.
func FormatTime12(value string) (string, error) {
	t, err := time.Parse(SlotValueLayout, value)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: %w", value, err)
	}
	return t.Format(SlotLabelLayout), nil
}
