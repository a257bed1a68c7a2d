// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailProvider() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetBrevoAPIKey() string
	GetSendGridAPIKey() string
	GetAWSRegion() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
}

// ContactConfig provides settings for the contact/booking submission flow.
type ContactConfig interface {
	GetContactRecipient() string
	GetMeetingTimezone() string
	GetMeetingMedium() string
	GetMeetingDuration() time.Duration
}

// ObservabilityConfig provides settings for error reporting.
type ObservabilityConfig interface {
	GetEnv() string
	GetSentryDSN() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Email providers understood by the mail layer.
const (
	EmailProviderNoop     = "noop"
	EmailProviderBrevo    = "brevo"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderSES      = "ses"
	EmailProviderSMTP     = "smtp"
)

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	CORSAllowAll     bool
	CORSOrigins      []string
	EmailProvider    string
	EmailFromName    string
	EmailFromAddress string
	BrevoAPIKey      string
	SendGridAPIKey   string
	AWSRegion        string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	ContactRecipient string
	MeetingTimezone  string
	MeetingMedium    string
	MeetingDuration  time.Duration
	SentryDSN        string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// EmailConfig implementation
func (c *Config) GetEmailProvider() string    { return c.EmailProvider }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetBrevoAPIKey() string      { return c.BrevoAPIKey }
func (c *Config) GetSendGridAPIKey() string   { return c.SendGridAPIKey }
func (c *Config) GetAWSRegion() string        { return c.AWSRegion }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }

// ContactConfig implementation
func (c *Config) GetContactRecipient() string       { return c.ContactRecipient }
func (c *Config) GetMeetingTimezone() string        { return c.MeetingTimezone }
func (c *Config) GetMeetingMedium() string          { return c.MeetingMedium }
func (c *Config) GetMeetingDuration() time.Duration { return c.MeetingDuration }

// ObservabilityConfig implementation
func (c *Config) GetEnv() string       { return c.Env }
func (c *Config) GetSentryDSN() string { return c.SentryDSN }

// Load reads configuration from environment variables.
// CORS_ORIGINS defaults to the local front end; setting it empty turns CORS
// off.
// Missing mail credentials are not an error here: the chosen provider is still
// built and individual sends fail, which the contact endpoint reports as a
// generic failure.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpPort, err := parsePort(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT: %w", err)
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		EmailProvider:    strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", EmailProviderBrevo))),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Drishti Website"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", "onboarding@techatdrishti.com"),
		BrevoAPIKey:      getEnv("BREVO_API_KEY", ""),
		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		AWSRegion:        getEnv("AWS_REGION", "ap-south-1"),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         smtpPort,
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		ContactRecipient: getEnv("CONTACT_RECIPIENT", "sales@techatdrishti.com"),
		MeetingTimezone:  getEnv("MEETING_TIMEZONE", "Asia/Kolkata"),
		MeetingMedium:    getEnv("MEETING_MEDIUM", "Google Meet"),
		MeetingDuration:  mustDuration(getEnv("MEETING_DURATION", "30m")),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
	}

	switch cfg.EmailProvider {
	case EmailProviderNoop, EmailProviderBrevo, EmailProviderSendGrid, EmailProviderSES, EmailProviderSMTP:
	default:
		return nil, fmt.Errorf("EMAIL_PROVIDER %q is not supported", cfg.EmailProvider)
	}
	if cfg.ContactRecipient == "" {
		return nil, fmt.Errorf("CONTACT_RECIPIENT is required")
	}
	if _, err := time.LoadLocation(cfg.MeetingTimezone); err != nil {
		return nil, fmt.Errorf("MEETING_TIMEZONE: %w", err)
	}
	if cfg.MeetingDuration <= 0 {
		return nil, fmt.Errorf("MEETING_DURATION must be a positive duration")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func parsePort(value string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", value)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
