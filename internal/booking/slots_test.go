package booking

import (
	"testing"
	"time"
)

func TestGenerateTimeSlotsBoundsAndSpacing(t *testing.T) {
	slots := GenerateTimeSlots()

	if len(slots) != 15 {
		t.Fatalf("expected 15 slots, got %d", len(slots))
	}
	if slots[0].Value != "09:00" || slots[0].Label != "9:00 AM" {
		t.Fatalf("unexpected first slot %+v", slots[0])
	}
	last := slots[len(slots)-1]
	if last.Value != "16:00" || last.Label != "4:00 PM" {
		t.Fatalf("unexpected last slot %+v", last)
	}

	prev, _ := time.Parse(SlotValueLayout, slots[0].Value)
	for _, slot := range slots[1:] {
		cur, err := time.Parse(SlotValueLayout, slot.Value)
		if err != nil {
			t.Fatalf("bad slot value %q: %v", slot.Value, err)
		}
		if cur.Sub(prev) != 30*time.Minute {
			t.Fatalf("slots %s and %s are not 30 minutes apart", prev.Format(SlotValueLayout), slot.Value)
		}
		prev = cur
	}

	for _, slot := range slots {
		if slot.Value == "16:30" {
			t.Fatal("16:30 must not be bookable")
		}
	}
}

func TestGenerateTimeSlotsReturnsFreshCopy(t *testing.T) {
	a := GenerateTimeSlots()
	a[0].Value = "mutated"

	b := GenerateTimeSlots()
	if b[0].Value != "09:00" {
		t.Fatal("callers must not be able to mutate the slot universe")
	}
	if !IsValidSlot("09:00") {
		t.Fatal("lookup universe was mutated")
	}
}

func TestNoonAndAfternoonLabels(t *testing.T) {
	tests := map[string]string{
		"12:00": "12:00 PM",
		"12:30": "12:30 PM",
		"13:00": "1:00 PM",
		"11:30": "11:30 AM",
	}
	for value, want := range tests {
		slot, ok := FindSlot(value)
		if !ok {
			t.Fatalf("slot %s missing", value)
		}
		if slot.Label != want {
			t.Errorf("label for %s = %q, want %q", value, slot.Label, want)
		}
	}
}

func TestIsValidSlot(t *testing.T) {
	for _, v := range []string{"08:30", "16:30", "9:00", "", "10:15"} {
		if IsValidSlot(v) {
			t.Errorf("expected %q to be rejected", v)
		}
	}
	if !IsValidSlot("14:00") {
		t.Fatal("expected 14:00 to be valid")
	}
}

func TestFormatTime12(t *testing.T) {
	got, err := FormatTime12("14:00")
	if err != nil || got != "2:00 PM" {
		t.Fatalf("FormatTime12(14:00) = %q, %v", got, err)
	}
	got, err = FormatTime12("00:30")
	if err != nil || got != "12:30 AM" {
		t.Fatalf("FormatTime12(00:30) = %q, %v", got, err)
	}
	if _, err := FormatTime12("25:00"); err == nil {
		t.Fatal("expected error for invalid time")
	}
}
