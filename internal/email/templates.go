package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
}

// LeadNotification is the display-ready content of a new lead mail. Every
// field is already formatted.
type LeadNotification struct {
	ClubName           string
	ContactName        string
	Role               string
	Email              string
	Phone              string
	Location           string
	ProductName        string
	ProductDescription string
	Meeting            *MeetingDetails
	ReceivedAt         string
	Reference          string
}

// MeetingDetails is the requested call, e.g. "Tuesday, June 10, 2025" at
// "2:00 PM".
type MeetingDetails struct {
	Date    string
	Time    string
	Caption string
}

type leadNotificationEmailData struct {
	baseEmailData
	LeadNotification
}

// RenderLeadNotification builds the sales notification for a new lead.
func RenderLeadNotification(to string, n LeadNotification) (Message, error) {
	data := leadNotificationEmailData{
		baseEmailData: baseEmailData{
			Title:      subjectLeadNotification,
			Heading:    "New Contact Form Submission",
			Subheading: "A new lead has been submitted through the website contact form.",
		},
		LeadNotification: n,
	}

	html, err := renderEmailTemplate("lead_notification.html", data)
	if err != nil {
		return Message{}, err
	}
	text, err := renderTextTemplate("lead_notification.txt", data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: subjectLeadNotification,
		HTML:    html,
		Text:    text,
	}, nil
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderTextTemplate(name string, data any) (string, error) {
	tmpl, err := texttemplate.New(name).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse text template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute text template %s: %w", name, err)
	}
	return buf.String(), nil
}
