package email

import (
	"strings"
	"testing"
)

func sampleNotification() LeadNotification {
	return LeadNotification{
		ClubName:           "Bengaluru FC Academy",
		ContactName:        "Asha Rao",
		Role:               "Coach",
		Email:              "asha@example.com",
		Phone:              "+91 98765 43210",
		Location:           "Bengaluru, Karnataka",
		ProductName:        "PreView",
		ProductDescription: "Semi-Automatic VAR",
		Meeting: &MeetingDetails{
			Date:    "Tuesday, June 10, 2025",
			Time:    "2:00 PM",
			Caption: "30 minutes • Google Meet • Asia/Kolkata",
		},
		ReceivedAt: "June 9, 2025 at 6:15 PM IST",
		Reference:  "0d6f3a36-3a55-4e5c-9a8f-1d7c2b7e9f10",
	}
}

func TestRenderLeadNotificationWithMeeting(t *testing.T) {
	msg, err := RenderLeadNotification("sales@techatdrishti.com", sampleNotification())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if msg.To != "sales@techatdrishti.com" {
		t.Fatalf("to = %q", msg.To)
	}
	if msg.Subject != "New Contact Form Submission - Drishti Technologies" {
		t.Fatalf("subject = %q", msg.Subject)
	}

	for _, body := range []string{msg.HTML, msg.Text} {
		for _, want := range []string{
			"Tuesday, June 10, 2025",
			"2:00 PM",
			"30 minutes • Google Meet • Asia/Kolkata",
			"Bengaluru FC Academy",
			"Coach",
			"+91 98765 43210",
			"Bengaluru, Karnataka",
			"PreView",
			"Semi-Automatic VAR",
			"0d6f3a36-3a55-4e5c-9a8f-1d7c2b7e9f10",
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
		if strings.Contains(body, "No specific meeting time requested") {
			t.Error("meeting notice must not appear when a meeting is requested")
		}
	}
}

func TestRenderLeadNotificationWithoutMeeting(t *testing.T) {
	n := sampleNotification()
	n.Meeting = nil

	msg, err := RenderLeadNotification("sales@techatdrishti.com", n)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, body := range []string{msg.HTML, msg.Text} {
		if !strings.Contains(body, "No specific meeting time requested") {
			t.Error("expected the no-meeting notice")
		}
		if strings.Contains(body, "Requested Meeting") || strings.Contains(body, "REQUESTED MEETING") {
			t.Error("meeting card must be omitted")
		}
	}
}

func TestRenderLeadNotificationEscapesHTML(t *testing.T) {
	n := sampleNotification()
	n.ClubName = `<script>alert("x")</script>`

	msg, err := RenderLeadNotification("sales@techatdrishti.com", n)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Fatal("user input must be escaped in the HTML part")
	}
	if !strings.Contains(msg.HTML, "&lt;script&gt;") {
		t.Fatal("expected escaped markup in the HTML part")
	}
}
