package email

const (
	subjectLeadNotification = "New Contact Form Submission - Drishti Technologies"
)
