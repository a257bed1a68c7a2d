package transport

import (
	"drishti_backend/internal/booking"
)

// SubmitResponse is returned for an accepted submission.
type SubmitResponse struct {
	Success bool       `json:"success"`
	Data    SubmitData `json:"data"`
}

type SubmitData struct {
	ID string `json:"id"`
}

type SlotsResponse struct {
	Slots []booking.TimeSlot `json:"slots"`
}

type CalendarQuery struct {
	Year  int `form:"year" validate:"omitempty,min=1,max=9999"`
	Month int `form:"month" validate:"omitempty,min=1,max=12"`
}

type CalendarResponse struct {
	Year     int           `json:"year"`
	Month    int           `json:"month"`
	Title    string        `json:"title"`
	Today    string        `json:"today"`
	Timezone string        `json:"timezone"`
	Days     []CalendarDay `json:"days"`
}

type CalendarDay struct {
	Date       string `json:"date"`
	InMonth    bool   `json:"inMonth"`
	IsToday    bool   `json:"isToday"`
	IsPast     bool   `json:"isPast"`
	Selectable bool   `json:"selectable"`
}
