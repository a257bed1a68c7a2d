// Package wizard drives the two-step booking dialog: contact details first,
// then an optional meeting slot, then a single submission.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"drishti_backend/internal/booking"
)

// Layout selects the schedule step variant.
type Layout int

const (
	LayoutDesktop Layout = iota
	LayoutMobile
)

func (l Layout) advanceEvent() Event {
	if l == LayoutMobile {
		return EventAdvanceMobile
	}
	return EventAdvanceDesktop
}

// Clock returns the current instant. Its location decides what "today" is.
type Clock func() time.Time

// Submitter transmits a completed lead.
type Submitter interface {
	Submit(ctx context.Context, lead booking.Lead) error
}

// FieldRejection is implemented by submit errors that carry per-field
// messages from the endpoint.
type FieldRejection interface {
	FieldErrors() booking.FieldErrors
}

// SubmissionFailedNotice is the retryable message shown after a failed submit.
const SubmissionFailedNotice = "Failed to submit form. Please try again."

var (
	// ErrSubmitInFlight is returned while a submission is outstanding.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrSubmissionFailed wraps every failed submit. Show SubmissionFailedNotice.
	ErrSubmissionFailed = errors.New("submission failed")
	// ErrNotReady is returned by Submit when a date or time is missing.
	ErrNotReady = errors.New("select a date and time before submitting")
	// ErrDateRequired is returned when the time sheet is opened without a date.
	ErrDateRequired = errors.New("select a date first")
	// ErrUnknownSlot is returned for a time outside the slot universe.
	ErrUnknownSlot = errors.New("unknown time slot")
	// ErrUnknownField is returned for a field that is not a details field.
	ErrUnknownField = errors.New("unknown field")
)

// CalendarView is the month grid currently on display.
type CalendarView struct {
	Year  int
	Month time.Month
	Title string
	Days  []booking.CalendarDay
}

// WeekView is the desktop slot grid for the week of the selected date.
type WeekView struct {
	Range string
	Days  []booking.DaySlots
}

// Snapshot is a read-only copy of the form for rendering.
type Snapshot struct {
	Phase        Phase
	Layout       Layout
	Lead         booking.Lead
	Errors       booking.FieldErrors
	SelectedDate *time.Time
	SelectedTime string
	DisplayYear  int
	DisplayMonth time.Month
	Submitting   bool
	CanSubmit    bool
	LastError    error
}

// Form is one booking dialog. It is safe for concurrent use.
type Form struct {
	layout    Layout
	clock     Clock
	submitter Submitter
	schema    *booking.Schema

	mu           sync.Mutex
	phase        Phase
	lead         booking.Lead
	errors       booking.FieldErrors
	selectedDate *time.Time
	selectedTime string
	displayYear  int
	displayMonth time.Month
	submitting   bool
	lastErr      error
	// session changes on every open and close so a submit that completes
	// after the dialog was closed leaves the new session alone.
	session uint64
}

// New creates a closed form.
func New(layout Layout, clock Clock, submitter Submitter, schema *booking.Schema) *Form {
	if clock == nil {
		clock = time.Now
	}
	f := &Form{
		layout:    layout,
		clock:     clock,
		submitter: submitter,
		schema:    schema,
	}
	f.resetLocked()
	return f
}

func (f *Form) today() time.Time {
	return booking.DateOf(f.clock())
}

func (f *Form) resetLocked() {
	today := f.today()
	f.lead = booking.Lead{}
	f.errors = booking.FieldErrors{}
	f.selectedDate = nil
	f.selectedTime = ""
	f.displayYear, f.displayMonth = today.Year(), today.Month()
	f.submitting = false
	f.lastErr = nil
	f.session++
}

func (f *Form) fireLocked(e Event) error {
	next, err := Transition(f.phase, e)
	if err != nil {
		return err
	}
	f.phase = next
	return nil
}

// Open shows the dialog with an empty lead and today's month.
func (f *Form) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fireLocked(EventOpen); err != nil {
		return err
	}
	f.resetLocked()
	return nil
}

// Close discards everything from any phase.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	_ = f.fireLocked(EventClose)
	f.resetLocked()
}

// SetField updates one details field and clears its error.
func (f *Form) SetField(field booking.Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseDetails {
		return fmt.Errorf("%w: edit %s in %s", ErrInvalidTransition, field, f.phase)
	}
	if !isDetailField(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	f.lead.Set(field, value)
	delete(f.errors, field)
	return nil
}

func isDetailField(field booking.Field) bool {
	for _, f := range booking.DetailFields {
		if f == field {
			return true
		}
	}
	return false
}

// Next validates the details step and moves to the schedule step. On
// failure every invalid field carries a message and the phase is unchanged;
// the returned FieldErrors is a copy.
func (f *Form) Next() (booking.FieldErrors, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseDetails {
		return nil, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, f.layout.advanceEvent(), f.phase)
	}

	errs := f.schema.ValidateDetails(f.lead.Normalized())
	f.errors = errs
	if !errs.Empty() {
		return copyErrors(errs), nil
	}
	return nil, f.fireLocked(f.layout.advanceEvent())
}

// Back returns to the details step, keeping every value.
func (f *Form) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrSubmitInFlight
	}
	return f.fireLocked(EventBack)
}

// SelectDate picks a meeting date. Dates before today are ignored.
func (f *Form) SelectDate(date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireScheduleLocked("select date"); err != nil {
		return err
	}
	if booking.IsPastDate(date, f.today()) {
		return nil
	}
	d := booking.DateOf(date)
	f.selectedDate = &d
	f.displayYear, f.displayMonth = d.Year(), d.Month()
	return nil
}

// SelectTime picks a slot. On mobile it also closes the time sheet.
func (f *Form) SelectTime(value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireScheduleLocked("select time"); err != nil {
		return err
	}
	if !booking.IsValidSlot(value) {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, value)
	}
	f.selectedTime = value
	if f.phase == PhaseScheduleTimeSheet {
		return f.fireLocked(EventCloseTimeSheet)
	}
	return nil
}

// SelectSlot picks a date and time together from the week view. Slots on
// past days are ignored.
func (f *Form) SelectSlot(date time.Time, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireScheduleLocked("select slot"); err != nil {
		return err
	}
	if !booking.IsValidSlot(value) {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, value)
	}
	if booking.IsPastDate(date, f.today()) {
		return nil
	}
	d := booking.DateOf(date)
	f.selectedDate = &d
	f.selectedTime = value
	f.displayYear, f.displayMonth = d.Year(), d.Month()
	return nil
}

// OpenTimeSheet shows the mobile time picker for the selected date.
func (f *Form) OpenTimeSheet() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrSubmitInFlight
	}
	if f.phase == PhaseScheduleInputs && f.selectedDate == nil {
		return ErrDateRequired
	}
	return f.fireLocked(EventOpenTimeSheet)
}

// CloseTimeSheet dismisses the mobile time picker without picking.
func (f *Form) CloseTimeSheet() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.fireLocked(EventCloseTimeSheet)
}

func (f *Form) requireScheduleLocked(op string) error {
	if f.submitting {
		return ErrSubmitInFlight
	}
	if !f.phase.Scheduling() {
		return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, op, f.phase)
	}
	return nil
}

// PrevMonth shows the previous month.
func (f *Form) PrevMonth() {
	f.navigate(-1)
}

// NextMonth shows the next month.
func (f *Form) NextMonth() {
	f.navigate(1)
}

func (f *Form) navigate(delta int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.displayYear, f.displayMonth = booking.NavigateMonth(f.displayYear, f.displayMonth, delta)
}

// Calendar derives the displayed month grid.
func (f *Form) Calendar() CalendarView {
	f.mu.Lock()
	defer f.mu.Unlock()

	return CalendarView{
		Year:  f.displayYear,
		Month: f.displayMonth,
		Title: fmt.Sprintf("%s %d", f.displayMonth, f.displayYear),
		Days:  booking.BuildCalendar(f.displayYear, f.displayMonth, f.today(), f.selectedDate),
	}
}

// WeekView derives the slot grid for the week of the selected date. It is
// empty until a date is selected.
func (f *Form) WeekView() WeekView {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.selectedDate == nil {
		return WeekView{}
	}
	return WeekView{
		Range: booking.FormatWeekRange(booking.WeekDates(*f.selectedDate)),
		Days:  booking.BuildWeekView(*f.selectedDate, f.selectedTime, f.today()),
	}
}

// TimeSheetSlots lists the slots of the mobile picker. All of them are
// disabled when the selected date has become past.
func (f *Form) TimeSheetSlots() []booking.SlotOption {
	f.mu.Lock()
	defer f.mu.Unlock()

	past := f.selectedDate == nil || booking.IsPastDate(*f.selectedDate, f.today())
	slots := booking.GenerateTimeSlots()
	out := make([]booking.SlotOption, len(slots))
	for i, slot := range slots {
		out[i] = booking.SlotOption{
			TimeSlot: slot,
			Disabled: past,
			Selected: slot.Value == f.selectedTime,
		}
	}
	return out
}

// CanSubmit reports whether the submit control is enabled.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.canSubmitLocked()
}

func (f *Form) canSubmitLocked() bool {
	if f.phase != PhaseScheduleCalendar && f.phase != PhaseScheduleInputs {
		return false
	}
	return f.selectedDate != nil && f.selectedTime != "" && !f.submitting
}

// Submit sends the normalized lead with the selected meeting. The submitter
// runs without the lock held. On success the form closes and resets; on
// failure every value is kept, LastError holds ErrSubmissionFailed, and
// submitting may be retried. A rejection naming details fields returns the
// form to Details with those messages attached.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if !f.canSubmitLocked() {
		phase := f.phase
		f.mu.Unlock()
		if phase != PhaseScheduleCalendar && phase != PhaseScheduleInputs {
			return fmt.Errorf("%w: %s on %s", ErrInvalidTransition, EventSubmitted, phase)
		}
		return ErrNotReady
	}

	lead := f.lead.Normalized()
	lead.PreferredDate = f.selectedDate.Format(booking.DateLayout)
	lead.PreferredTime = f.selectedTime
	session := f.session
	f.submitting = true
	f.lastErr = nil
	f.mu.Unlock()

	err := f.submitter.Submit(ctx, lead)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session != session {
		return err
	}
	f.submitting = false
	if err != nil {
		f.lastErr = ErrSubmissionFailed
		f.applyRejectionLocked(err)
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	if err := f.fireLocked(EventSubmitted); err != nil {
		return err
	}
	f.resetLocked()
	return nil
}

func (f *Form) applyRejectionLocked(err error) {
	var rejection FieldRejection
	if !errors.As(err, &rejection) {
		return
	}
	details := booking.FieldErrors{}
	for field, msg := range rejection.FieldErrors() {
		if isDetailField(field) {
			details[field] = msg
		}
	}
	if details.Empty() {
		return
	}
	if err := f.fireLocked(EventBack); err == nil {
		f.errors = details
	}
}

// LastError returns the notice from the last failed submit, if any.
func (f *Form) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.lastErr
}

// Phase returns the current phase.
func (f *Form) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.phase
}

// Snapshot copies the form state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	var selected *time.Time
	if f.selectedDate != nil {
		d := *f.selectedDate
		selected = &d
	}
	return Snapshot{
		Phase:        f.phase,
		Layout:       f.layout,
		Lead:         f.lead,
		Errors:       copyErrors(f.errors),
		SelectedDate: selected,
		SelectedTime: f.selectedTime,
		DisplayYear:  f.displayYear,
		DisplayMonth: f.displayMonth,
		Submitting:   f.submitting,
		CanSubmit:    f.canSubmitLocked(),
		LastError:    f.lastErr,
	}
}

func copyErrors(errs booking.FieldErrors) booking.FieldErrors {
	out := make(booking.FieldErrors, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}
