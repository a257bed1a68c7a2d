package service

import (
	"context"
	"fmt"
	"time"

	"drishti_backend/internal/booking"
	"drishti_backend/internal/contact/transport"
	"drishti_backend/internal/email"
	"drishti_backend/internal/observability/metrics"
	"drishti_backend/platform/apperr"
	"drishti_backend/platform/config"
	"drishti_backend/platform/errorreport"
	"drishti_backend/platform/logger"
	"drishti_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	msgInvalidInput  = "Invalid input"
	msgSendFailed    = "Failed to send email"
	receivedAtLayout = "January 2, 2006 at 3:04 PM MST"
	opSubmit         = "contact.Submit"
	captionSeparator = " • "
	unknownProduct   = "unknown"
)

// Service accepts contact submissions and notifies sales.
type Service struct {
	schema    *booking.Schema
	sender    email.Sender
	recipient string
	location  *time.Location
	medium    string
	duration  time.Duration
	now       func() time.Time
	newID     func() string
	metrics   *metrics.ContactMetrics
	reporter  *errorreport.Reporter
	log       *logger.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides how submission references are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithMetrics attaches submission metrics.
func WithMetrics(m *metrics.ContactMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithReporter attaches an error reporter.
func WithReporter(r *errorreport.Reporter) Option {
	return func(s *Service) { s.reporter = r }
}

func New(cfg config.ContactConfig, schema *booking.Schema, sender email.Sender, log *logger.Logger, opts ...Option) (*Service, error) {
	loc, err := time.LoadLocation(cfg.GetMeetingTimezone())
	if err != nil {
		return nil, fmt.Errorf("load meeting timezone: %w", err)
	}

	s := &Service{
		schema:    schema,
		sender:    sender,
		recipient: cfg.GetContactRecipient(),
		location:  loc,
		medium:    cfg.GetMeetingMedium(),
		duration:  cfg.GetMeetingDuration(),
		now:       time.Now,
		newID:     uuid.NewString,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit validates lead and sends exactly one notification. The returned ID
// references the submission in logs and in the mail footer.
func (s *Service) Submit(ctx context.Context, lead booking.Lead) (string, error) {
	lead = lead.Normalized()
	product := productLabel(lead.InterestedProduct)

	if errs := s.schema.Validate(lead); !errs.Empty() {
		s.metrics.ObserveSubmission(metrics.OutcomeInvalid, product)
		return "", apperr.Validation(msgInvalidInput).WithOp(opSubmit).WithDetails(errs)
	}

	id := s.newID()
	ctx = context.WithValue(ctx, logger.SubmissionIDKey, id)
	log := s.log.WithContext(ctx)

	msg, err := s.render(lead, id)
	if err != nil {
		log.Error("render lead notification", "error", err)
		s.metrics.ObserveSubmission(metrics.OutcomeRenderFailed, product)
		s.reporter.Capture(ctx, err, map[string]string{"stage": "render"})
		return "", apperr.Unavailable(msgSendFailed, err).WithOp(opSubmit)
	}

	if err := s.send(ctx, log, msg, lead); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) render(lead booking.Lead, id string) (email.Message, error) {
	notification, err := s.buildNotification(lead, id)
	if err != nil {
		return email.Message{}, err
	}
	return email.RenderLeadNotification(s.recipient, notification)
}

func (s *Service) send(ctx context.Context, log *logger.Logger, msg email.Message, lead booking.Lead) error {
	product := productLabel(lead.InterestedProduct)

	start := time.Now()
	err := s.sender.Send(ctx, msg)
	s.metrics.ObserveSend(s.sender.Name(), err == nil, time.Since(start).Seconds())

	if err != nil {
		log.MailFailed(s.sender.Name(), msg.To, err)
		s.metrics.ObserveSubmission(metrics.OutcomeSendFailed, product)
		s.reporter.Capture(ctx, err, map[string]string{"stage": "send", "provider": s.sender.Name()})
		return apperr.Unavailable(msgSendFailed, err).WithOp(opSubmit)
	}

	log.MailSent(s.sender.Name(), msg.To, msg.Subject)
	s.metrics.ObserveSubmission(metrics.OutcomeSent, product)
	if lead.HasMeeting() {
		s.metrics.ObserveMeetingRequested()
	}
	return nil
}

// productLabel keeps the metric label set bounded to catalog products.
func productLabel(p booking.Product) string {
	if _, ok := p.Info(); ok {
		return string(p)
	}
	return unknownProduct
}

func (s *Service) buildNotification(lead booking.Lead, id string) (email.LeadNotification, error) {
	info, ok := lead.InterestedProduct.Info()
	if !ok {
		return email.LeadNotification{}, fmt.Errorf("unknown product %q", lead.InterestedProduct)
	}

	n := email.LeadNotification{
		ClubName:           lead.ClubName,
		ContactName:        lead.ContactName,
		Role:               cases.Title(language.English).String(string(lead.Role)),
		Email:              lead.Email,
		Phone:              phone.Display(lead.Phone),
		Location:           fmt.Sprintf("%s, %s", lead.City, lead.State),
		ProductName:        info.Name,
		ProductDescription: info.Description,
		ReceivedAt:         s.now().In(s.location).Format(receivedAtLayout),
		Reference:          id,
	}

	if lead.HasMeeting() {
		date, err := booking.ParseDate(lead.PreferredDate)
		if err != nil {
			return email.LeadNotification{}, err
		}
		clock, err := booking.FormatTime12(lead.PreferredTime)
		if err != nil {
			return email.LeadNotification{}, err
		}
		n.Meeting = &email.MeetingDetails{
			Date:    date.Format(booking.MeetingDateLayout),
			Time:    clock,
			Caption: formatDuration(s.duration) + captionSeparator + s.medium + captionSeparator + s.location.String(),
		}
	}
	return n, nil
}

func formatDuration(d time.Duration) string {
	if d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	minutes := int(d / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// Slots returns the bookable slot universe.
func (s *Service) Slots() transport.SlotsResponse {
	return transport.SlotsResponse{Slots: booking.GenerateTimeSlots()}
}

// Calendar returns the month grid for year/month relative to today in the
// meeting timezone. Zero values select the current month.
func (s *Service) Calendar(year int, month time.Month) transport.CalendarResponse {
	today := booking.DateOf(s.now().In(s.location))
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = today.Month()
	}

	days := booking.BuildCalendar(year, month, today, nil)
	out := make([]transport.CalendarDay, len(days))
	for i, d := range days {
		out[i] = transport.CalendarDay{
			Date:       d.Date.Format(booking.DateLayout),
			InMonth:    d.InMonth,
			IsToday:    d.IsToday,
			IsPast:     d.IsPast,
			Selectable: d.Selectable(),
		}
	}

	return transport.CalendarResponse{
		Year:     year,
		Month:    int(month),
		Title:    fmt.Sprintf("%s %d", month, year),
		Today:    today.Format(booking.DateLayout),
		Timezone: s.location.String(),
		Days:     out,
	}
}
