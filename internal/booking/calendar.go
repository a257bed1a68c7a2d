package booking

import (
	"fmt"
	"time"
)

const (
	// GridDays is the size of a month grid: six full weeks.
	GridDays = 42
	// DateLayout is the wire format of a calendar date.
	DateLayout = "2006-01-02"
	// MeetingDateLayout renders e.g. "Tuesday, June 10, 2025".
	MeetingDateLayout = "Monday, January 2, 2006"
)

// CalendarDay is one cell of the month grid. Every flag is derived from the
// injected "today" and the current selection.
type CalendarDay struct {
	Date       time.Time `json:"date"`
	InMonth    bool      `json:"inMonth"`
	IsToday    bool      `json:"isToday"`
	IsPast     bool      `json:"isPast"`
	IsSelected bool      `json:"isSelected"`
}

// Selectable reports whether the day can be picked in the month grid.
func (d CalendarDay) Selectable() bool {
	return d.InMonth && !d.IsPast
}

// DateOf strips the clock from t, keeping the calendar date as seen in t's
// location, and returns it as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// IsPastDate reports whether date is strictly earlier than today. The time of
// day is ignored, so today itself is never past.
func IsPastDate(date, today time.Time) bool {
	return DateOf(date).Before(DateOf(today))
}

// GenerateCalendarGrid returns 42 consecutive dates starting on the Sunday
// on or before the 1st of month. Out-of-range months roll over into the
// neighbouring year (month 13 is January of year+1, month 0 is December of
// year-1).
func GenerateCalendarGrid(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]time.Time, GridDays)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// NavigateMonth moves delta months from year/month with year rollover.
func NavigateMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// BuildCalendar derives the month grid for year/month relative to today and
// the optional selected date.
func BuildCalendar(year int, month time.Month, today time.Time, selected *time.Time) []CalendarDay {
	displayYear, displayMonth := NavigateMonth(year, month, 0)
	grid := GenerateCalendarGrid(year, month)

	days := make([]CalendarDay, len(grid))
	for i, date := range grid {
		days[i] = CalendarDay{
			Date:       date,
			InMonth:    date.Year() == displayYear && date.Month() == displayMonth,
			IsToday:    SameDay(date, today),
			IsPast:     IsPastDate(date, today),
			IsSelected: selected != nil && SameDay(date, *selected),
		}
	}
	return days
}

// WeekDates returns the Sunday..Saturday span containing date.
func WeekDates(date time.Time) []time.Time {
	day := DateOf(date)
	start := day.AddDate(0, 0, -int(day.Weekday()))

	week := make([]time.Time, 7)
	for i := range week {
		week[i] = start.AddDate(0, 0, i)
	}
	return week
}

// FormatWeekRange renders a week span, e.g. "Jun 8-14, 2025". Spans that
// cross a month or year name both ends.
func FormatWeekRange(week []time.Time) string {
	if len(week) == 0 {
		return ""
	}
	start, end := week[0], week[len(week)-1]

	switch {
	case start.Year() != end.Year():
		return fmt.Sprintf("%s, %d - %s, %d", start.Format("Jan 2"), start.Year(), end.Format("Jan 2"), end.Year())
	case start.Month() != end.Month():
		return fmt.Sprintf("%s - %s, %d", start.Format("Jan 2"), end.Format("Jan 2"), start.Year())
	default:
		return fmt.Sprintf("%s %d-%d, %d", start.Format("Jan"), start.Day(), end.Day(), start.Year())
	}
}

// DaySlots is one column of the week view.
type DaySlots struct {
	Date   time.Time    `json:"date"`
	IsPast bool         `json:"isPast"`
	Slots  []SlotOption `json:"slots"`
}

// SlotOption is a slot rendered for a particular day.
type SlotOption struct {
	TimeSlot
	Disabled bool `json:"disabled"`
	Selected bool `json:"selected"`
}

// BuildWeekView lays out the slot universe for each day of the week that
// contains selected. Past days have all their slots disabled. A slot is
// marked selected only on the selected day.
func BuildWeekView(selected time.Time, selectedTime string, today time.Time) []DaySlots {
	week := WeekDates(selected)
	view := make([]DaySlots, len(week))
	for i, date := range week {
		past := IsPastDate(date, today)
		options := make([]SlotOption, len(slotUniverse))
		for j, slot := range slotUniverse {
			options[j] = SlotOption{
				TimeSlot: slot,
				Disabled: past,
				Selected: slot.Value == selectedTime && SameDay(date, selected),
			}
		}
		view[i] = DaySlots{Date: date, IsPast: past, Slots: options}
	}
	return view
}
