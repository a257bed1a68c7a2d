package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"drishti_backend/internal/booking"
	"drishti_backend/internal/booking/wizard"
	"drishti_backend/platform/validator"
)

type recordingSubmitter struct {
	leads []booking.Lead
	fail  int
}

func (r *recordingSubmitter) Submit(_ context.Context, lead booking.Lead) error {
	r.leads = append(r.leads, lead)
	if r.fail > 0 {
		r.fail--
		return errors.New("connection reset")
	}
	return nil
}

func newTestSession(layout wizard.Layout, sub wizard.Submitter, script ...string) (*session, *bytes.Buffer) {
	clock := func() time.Time { return time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC) }
	form := wizard.New(layout, clock, sub, booking.MustSchema(validator.New()))
	var out bytes.Buffer
	return newSession(form, strings.NewReader(strings.Join(script, "\n")+"\n"), &out), &out
}

var details = []string{
	"Hyderabad FC", "Priya Sharma", "coach", "priya@example.com",
	"9876543210", "Telangana", "Hyderabad", "preview",
}

func TestSessionDesktopHappyPath(t *testing.T) {
	sub := &recordingSubmitter{}
	script := append(append([]string{}, details...), "2025-06-12", "14:00", "y")
	s, out := newTestSession(wizard.LayoutDesktop, sub, script...)

	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sub.leads) != 1 {
		t.Fatalf("expected one submission, got %d", len(sub.leads))
	}
	lead := sub.leads[0]
	if lead.ClubName != "Hyderabad FC" || lead.PreferredDate != "2025-06-12" || lead.PreferredTime != "14:00" {
		t.Fatalf("unexpected lead %+v", lead)
	}
	if !strings.Contains(out.String(), "Week of Jun 8-14, 2025") {
		t.Fatalf("week view not shown:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Thursday, June 12, 2025 at 2:00 PM") {
		t.Fatalf("confirmation not shown:\n%s", out.String())
	}
}

func TestSessionReasksInvalidFields(t *testing.T) {
	sub := &recordingSubmitter{}
	bad := append([]string{}, details...)
	bad[3] = "priya-at-example"
	script := append(bad, "priya@example.com", "2025-06-12", "10:00", "y")
	s, out := newTestSession(wizard.LayoutDesktop, sub, script...)

	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Please enter a valid email address") {
		t.Fatalf("validation message missing:\n%s", out.String())
	}
	if len(sub.leads) != 1 || sub.leads[0].Email != "priya@example.com" {
		t.Fatalf("unexpected submissions %+v", sub.leads)
	}
}

func TestSessionMobileRetriesAfterFailure(t *testing.T) {
	sub := &recordingSubmitter{fail: 1}
	script := append(append([]string{}, details...),
		"2025-06-11", "09:30", "y",
		"2025-06-11", "09:30", "y",
	)
	s, out := newTestSession(wizard.LayoutMobile, sub, script...)

	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sub.leads) != 2 {
		t.Fatalf("expected a failed and a retried submission, got %d", len(sub.leads))
	}
	if sub.leads[0] != sub.leads[1] {
		t.Fatal("retry must resend the same lead")
	}
	if !strings.Contains(out.String(), "Failed to submit form. Please try again.") {
		t.Fatalf("failure notice missing:\n%s", out.String())
	}
}

func TestSessionQuit(t *testing.T) {
	sub := &recordingSubmitter{}
	s, out := newTestSession(wizard.LayoutDesktop, sub, "Hyderabad FC", "quit")

	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sub.leads) != 0 || !strings.Contains(out.String(), "Booking cancelled.") {
		t.Fatalf("unexpected result %d\n%s", len(sub.leads), out.String())
	}
}
