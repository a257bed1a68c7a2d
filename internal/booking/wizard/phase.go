package wizard

import (
	"errors"
	"fmt"
)

// Phase is the step the booking dialog is in. Exactly one phase is active at
// a time; the schedule step has one phase per layout plus the mobile time
// sheet overlay.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseDetails
	PhaseScheduleCalendar
	PhaseScheduleInputs
	PhaseScheduleTimeSheet
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseDetails:
		return "details"
	case PhaseScheduleCalendar:
		return "schedule_calendar"
	case PhaseScheduleInputs:
		return "schedule_inputs"
	case PhaseScheduleTimeSheet:
		return "schedule_time_sheet"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Scheduling reports whether p belongs to the second step.
func (p Phase) Scheduling() bool {
	return p == PhaseScheduleCalendar || p == PhaseScheduleInputs || p == PhaseScheduleTimeSheet
}

// Event drives a phase change.
type Event int

const (
	EventOpen Event = iota
	EventAdvanceDesktop
	EventAdvanceMobile
	EventBack
	EventOpenTimeSheet
	EventCloseTimeSheet
	EventSubmitted
	EventClose
)

func (e Event) String() string {
	switch e {
	case EventOpen:
		return "open"
	case EventAdvanceDesktop:
		return "advance_desktop"
	case EventAdvanceMobile:
		return "advance_mobile"
	case EventBack:
		return "back"
	case EventOpenTimeSheet:
		return "open_time_sheet"
	case EventCloseTimeSheet:
		return "close_time_sheet"
	case EventSubmitted:
		return "submitted"
	case EventClose:
		return "close"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// ErrInvalidTransition is returned for an event the current phase does not
// accept.
var ErrInvalidTransition = errors.New("invalid wizard transition")

type edge struct {
	from  Phase
	event Event
}

var transitions = map[edge]Phase{
	{PhaseClosed, EventOpen}: PhaseDetails,

	{PhaseDetails, EventAdvanceDesktop}: PhaseScheduleCalendar,
	{PhaseDetails, EventAdvanceMobile}:  PhaseScheduleInputs,

	{PhaseScheduleCalendar, EventBack}:  PhaseDetails,
	{PhaseScheduleInputs, EventBack}:    PhaseDetails,
	{PhaseScheduleTimeSheet, EventBack}: PhaseDetails,

	{PhaseScheduleInputs, EventOpenTimeSheet}:     PhaseScheduleTimeSheet,
	{PhaseScheduleTimeSheet, EventCloseTimeSheet}: PhaseScheduleInputs,

	{PhaseScheduleCalendar, EventSubmitted}: PhaseClosed,
	{PhaseScheduleInputs, EventSubmitted}:   PhaseClosed,
}

// Transition returns the phase reached from p on e. Close is accepted from
// every phase.
func Transition(p Phase, e Event) (Phase, error) {
	if e == EventClose {
		return PhaseClosed, nil
	}
	next, ok := transitions[edge{from: p, event: e}]
	if !ok {
		return p, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, p, e)
	}
	return next, nil
}
