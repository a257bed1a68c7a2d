package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"drishti_backend/platform/config"
	"drishti_backend/platform/logger"
)

var testMessage = Message{
	To:      "sales@techatdrishti.com",
	Subject: "New Contact Form Submission - Drishti Technologies",
	HTML:    "<p>hello</p>",
	Text:    "hello",
}

func TestNewSenderSelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{config.EmailProviderNoop, "noop"},
		{config.EmailProviderBrevo, "brevo"},
		{config.EmailProviderSendGrid, "sendgrid"},
		{config.EmailProviderSMTP, "smtp"},
	}
	for _, tt := range tests {
		s, err := NewSender(context.Background(), &config.Config{EmailProvider: tt.provider}, logger.Discard())
		if err != nil {
			t.Fatalf("%s: %v", tt.provider, err)
		}
		if s.Name() != tt.want {
			t.Fatalf("%s: Name() = %q", tt.provider, s.Name())
		}
	}

	if _, err := NewSender(context.Background(), &config.Config{EmailProvider: "pigeon"}, logger.Discard()); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestMissingCredentialsFailAtSendTime(t *testing.T) {
	senders := []Sender{
		NewBrevoSender("", "from@example.com", "Drishti"),
		NewSendGridSender("", "from@example.com", "Drishti"),
		NewSMTPSender("", 587, "", "", "from@example.com", "Drishti"),
	}
	for _, s := range senders {
		if err := s.Send(context.Background(), testMessage); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("%s: expected ErrNotConfigured, got %v", s.Name(), err)
		}
	}
}

func TestBrevoSenderPostsPayload(t *testing.T) {
	var got brevoEmailRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewBrevoSender("key-123", "onboarding@techatdrishti.com", "Drishti Website")
	s.endpoint = srv.URL

	if err := s.Send(context.Background(), testMessage); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if apiKey != "key-123" {
		t.Fatalf("api-key header = %q", apiKey)
	}
	if got.Sender.Email != "onboarding@techatdrishti.com" || got.Sender.Name != "Drishti Website" {
		t.Fatalf("sender = %+v", got.Sender)
	}
	if len(got.To) != 1 || got.To[0].Email != testMessage.To {
		t.Fatalf("to = %+v", got.To)
	}
	if got.Subject != testMessage.Subject || got.HTMLContent != testMessage.HTML || got.TextContent != testMessage.Text {
		t.Fatalf("content = %+v", got)
	}
}

func TestBrevoSenderReportsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized"}`))
	}))
	defer srv.Close()

	s := NewBrevoSender("bad", "from@example.com", "Drishti")
	s.endpoint = srv.URL

	err := s.Send(context.Background(), testMessage)
	if err == nil || !strings.Contains(err.Error(), "status 401") {
		t.Fatalf("expected status error, got %v", err)
	}
}

type fakeSendGrid struct {
	got    *mail.SGMailV3
	status int
	err    error
}

func (f *fakeSendGrid) SendWithContext(_ context.Context, m *mail.SGMailV3) (*rest.Response, error) {
	f.got = m
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status, Body: "{}"}, nil
}

func TestSendGridSender(t *testing.T) {
	fake := &fakeSendGrid{status: http.StatusAccepted}
	s := &SendGridSender{client: fake, fromEmail: "from@example.com", fromName: "Drishti"}

	if err := s.Send(context.Background(), testMessage); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if fake.got.Subject != testMessage.Subject || fake.got.From.Address != "from@example.com" {
		t.Fatalf("unexpected mail %+v", fake.got)
	}
	if len(fake.got.Content) != 2 {
		t.Fatalf("expected text and html parts, got %d", len(fake.got.Content))
	}

	fake.status = http.StatusBadRequest
	if err := s.Send(context.Background(), testMessage); err == nil {
		t.Fatal("expected error on 400")
	}
}

type fakeSES struct {
	got *sesv2.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSender(t *testing.T) {
	fake := &fakeSES{}
	s := NewSESSender(fake, "from@example.com", "Drishti")

	if err := s.Send(context.Background(), testMessage); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if aws.ToString(fake.got.FromEmailAddress) != "Drishti <from@example.com>" {
		t.Fatalf("from = %q", aws.ToString(fake.got.FromEmailAddress))
	}
	if fake.got.Destination.ToAddresses[0] != testMessage.To {
		t.Fatalf("to = %v", fake.got.Destination.ToAddresses)
	}
	body := fake.got.Content.Simple.Body
	if aws.ToString(body.Html.Data) != testMessage.HTML || aws.ToString(body.Text.Data) != testMessage.Text {
		t.Fatal("body parts not set")
	}

	cause := errors.New("AccessDenied")
	fake.err = cause
	if err := s.Send(context.Background(), testMessage); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestSMTPMessageCarriesBothParts(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 587, "", "", "from@example.com", "Drishti Website")

	m, err := s.buildMsg(testMessage)
	if err != nil {
		t.Fatalf("buildMsg: %v", err)
	}
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	raw := buf.String()
	for _, want := range []string{"Subject: " + testMessage.Subject, "text/plain", "text/html", "sales@techatdrishti.com"} {
		if !strings.Contains(raw, want) {
			t.Errorf("raw message missing %q", want)
		}
	}

	if _, err := s.buildMsg(Message{To: "not an address"}); err == nil {
		t.Fatal("expected invalid recipient to fail")
	}
}
