package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"drishti_backend/internal/booking"
	"drishti_backend/internal/booking/wizard"
)

var errQuit = errors.New("booking cancelled")

var fieldPrompts = map[booking.Field]string{
	booking.FieldClubName:          "Club name",
	booking.FieldName:              "Your name",
	booking.FieldRole:              "Role (coach/player/owner)",
	booking.FieldEmail:             "Email",
	booking.FieldPhone:             "Phone",
	booking.FieldState:             "State",
	booking.FieldCity:              "City",
	booking.FieldInterestedProduct: "Product (preview/postmatch)",
}

// session drives a wizard.Form from line-oriented input. Typing "back"
// returns to the details step and "quit" closes the dialog.
type session struct {
	form *wizard.Form
	in   *bufio.Scanner
	out  io.Writer
}

func newSession(form *wizard.Form, in io.Reader, out io.Writer) *session {
	return &session{form: form, in: bufio.NewScanner(in), out: out}
}

func (s *session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *session) prompt(label string) (string, error) {
	s.printf("%s: ", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSpace(s.in.Text())
	if strings.EqualFold(line, "quit") {
		return "", errQuit
	}
	return line, nil
}

func (s *session) run(ctx context.Context) error {
	if err := s.form.Open(); err != nil {
		return err
	}
	defer s.form.Close()

	pending := booking.DetailFields
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch s.form.Phase() {
		case wizard.PhaseDetails:
			if err := s.details(pending); err != nil {
				return s.finish(err)
			}
			errs, err := s.form.Next()
			if err != nil {
				return err
			}
			pending = pending[:0:0]
			for _, f := range booking.DetailFields {
				if msg, bad := errs[f]; bad {
					s.printf("  %s: %s\n", fieldPrompts[f], msg)
					pending = append(pending, f)
				}
			}

		case wizard.PhaseScheduleCalendar, wizard.PhaseScheduleInputs, wizard.PhaseScheduleTimeSheet:
			done, err := s.schedule(ctx)
			if err != nil {
				return s.finish(err)
			}
			if done {
				s.printf("Thanks! Your request was sent. We will be in touch shortly.\n")
				return nil
			}
			if s.form.Phase() == wizard.PhaseDetails {
				pending = s.rejected()
			}

		case wizard.PhaseClosed:
			return nil
		}
	}
}

// rejected lists the details fields to ask again after returning to step
// one: those the endpoint rejected, or all of them after a plain "back".
func (s *session) rejected() []booking.Field {
	errs := s.form.Snapshot().Errors
	if errs.Empty() {
		return booking.DetailFields
	}
	var fields []booking.Field
	for _, f := range booking.DetailFields {
		if msg, bad := errs[f]; bad {
			s.printf("  %s: %s\n", fieldPrompts[f], msg)
			fields = append(fields, f)
		}
	}
	return fields
}

func (s *session) finish(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		s.printf("\nBooking cancelled.\n")
		return nil
	}
	return err
}

func (s *session) details(fields []booking.Field) error {
	for _, f := range fields {
		label := fieldPrompts[f]
		current := s.form.Snapshot().Lead.Get(f)
		if current != "" {
			label += " [" + current + "]"
		}
		value, err := s.prompt(label)
		if err != nil {
			return err
		}
		if value == "" && current != "" {
			continue
		}
		if err := s.form.SetField(f, value); err != nil {
			return err
		}
	}
	return nil
}

// schedule runs one pass of the schedule step. It reports true once the lead
// was submitted.
func (s *session) schedule(ctx context.Context) (bool, error) {
	s.printCalendar()

	dateInput, err := s.prompt("Preferred date (YYYY-MM-DD, < or > to change month, back)")
	if err != nil {
		return false, err
	}
	switch dateInput {
	case "back":
		return false, s.form.Back()
	case "<":
		s.form.PrevMonth()
		return false, nil
	case ">":
		s.form.NextMonth()
		return false, nil
	}

	date, err := booking.ParseDate(dateInput)
	if err != nil {
		s.printf("  Please enter a date like 2025-06-10.\n")
		return false, nil
	}
	if err := s.form.SelectDate(date); err != nil {
		return false, err
	}
	if s.form.Snapshot().SelectedDate == nil {
		s.printf("  That date has already passed.\n")
		return false, nil
	}

	if s.form.Snapshot().Layout == wizard.LayoutMobile {
		if err := s.form.OpenTimeSheet(); err != nil {
			return false, err
		}
		s.printTimeSheet()
	} else {
		s.printWeek()
	}

	timeInput, err := s.prompt("Preferred time (HH:MM)")
	if err != nil {
		return false, err
	}
	if err := s.form.SelectTime(timeInput); err != nil {
		if errors.Is(err, wizard.ErrUnknownSlot) {
			s.printf("  Pick one of the listed times.\n")
			if s.form.Phase() == wizard.PhaseScheduleTimeSheet {
				return false, s.form.CloseTimeSheet()
			}
			return false, nil
		}
		return false, err
	}

	if !s.form.CanSubmit() {
		return false, nil
	}
	snap := s.form.Snapshot()
	label, _ := booking.FormatTime12(snap.SelectedTime)
	confirm, err := s.prompt(fmt.Sprintf("Submit request for %s at %s? (y/n)",
		snap.SelectedDate.Format(booking.MeetingDateLayout), label))
	if err != nil {
		return false, err
	}
	if !strings.EqualFold(confirm, "y") {
		return false, nil
	}

	if err := s.form.Submit(ctx); err != nil {
		if errors.Is(err, wizard.ErrSubmissionFailed) {
			s.printf("  %s\n", wizard.SubmissionFailedNotice)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *session) printCalendar() {
	cal := s.form.Calendar()
	s.printf("\n%s\n  Su  Mo  Tu  We  Th  Fr  Sa\n", cal.Title)
	for i, day := range cal.Days {
		switch {
		case !day.InMonth:
			s.printf("    ")
		case day.IsSelected:
			s.printf("[%2d]", day.Date.Day())
		case day.IsPast:
			s.printf("  --")
		case day.IsToday:
			s.printf(" %2d*", day.Date.Day())
		default:
			s.printf(" %2d ", day.Date.Day())
		}
		if i%7 == 6 {
			s.printf("\n")
		}
	}
}

func (s *session) printWeek() {
	week := s.form.WeekView()
	s.printf("\nWeek of %s\n", week.Range)
	for _, day := range week.Days {
		if day.IsPast {
			continue
		}
		s.printf("%s:", day.Date.Format("Mon Jan 2"))
		for _, slot := range day.Slots {
			s.printf(" %s", slot.Value)
		}
		s.printf("\n")
	}
}

func (s *session) printTimeSheet() {
	s.printf("\nAvailable times:\n")
	for _, slot := range s.form.TimeSheetSlots() {
		if slot.Disabled {
			continue
		}
		s.printf("  %s  %s\n", slot.Value, slot.Label)
	}
}
