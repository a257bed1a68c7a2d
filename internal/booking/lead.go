// Package booking holds the contact/booking domain: the lead schema, the
// fixed slot universe, and calendar derivations. Everything here is pure; the
// current date is always passed in.
package booking

import (
	"strings"

	"drishti_backend/platform/phone"
	"drishti_backend/platform/sanitize"
)

// Role is the lead's relationship to the club.
type Role string

const (
	RoleCoach  Role = "coach"
	RolePlayer Role = "player"
	RoleOwner  Role = "owner"
)

// Product is the canonical product identifier used end to end, from the form
// through the endpoint to the notification.
type Product string

const (
	ProductPreview   Product = "preview"
	ProductPostMatch Product = "postmatch"
)

// ProductInfo is the display form of a product.
type ProductInfo struct {
	Name        string
	Description string
}

var productCatalog = map[Product]ProductInfo{
	ProductPreview:   {Name: "PreView", Description: "Semi-Automatic VAR"},
	ProductPostMatch: {Name: "PostMatch", Description: "Performance Analytics Platform"},
}

// Info returns the display name and description of p.
func (p Product) Info() (ProductInfo, bool) {
	info, ok := productCatalog[p]
	return info, ok
}

// Field names a lead attribute by its wire name.
type Field string

const (
	FieldClubName          Field = "clubName"
	FieldName              Field = "name"
	FieldRole              Field = "role"
	FieldEmail             Field = "email"
	FieldPhone             Field = "phone"
	FieldState             Field = "state"
	FieldCity              Field = "city"
	FieldInterestedProduct Field = "interestedProduct"
	FieldPreferredDate     Field = "preferredDate"
	FieldPreferredTime     Field = "preferredTime"
)

// DetailFields are the step-one fields, all required.
var DetailFields = []Field{
	FieldClubName,
	FieldName,
	FieldRole,
	FieldEmail,
	FieldPhone,
	FieldState,
	FieldCity,
	FieldInterestedProduct,
}

// Lead is the contact/booking submission.
type Lead struct {
	ClubName          string  `json:"clubName" validate:"min=2"`
	ContactName       string  `json:"name" validate:"min=2"`
	Role              Role    `json:"role" validate:"oneof=coach player owner"`
	Email             string  `json:"email" validate:"email"`
	Phone             string  `json:"phone" validate:"min=10"`
	State             string  `json:"state" validate:"min=2"`
	City              string  `json:"city" validate:"min=2"`
	InterestedProduct Product `json:"interestedProduct" validate:"oneof=preview postmatch"`
	PreferredDate     string  `json:"preferredDate,omitempty" validate:"omitempty,isodate"`
	PreferredTime     string  `json:"preferredTime,omitempty" validate:"omitempty,timeslot"`
}

// Get returns the raw value of field f.
func (l Lead) Get(f Field) string {
	switch f {
	case FieldClubName:
		return l.ClubName
	case FieldName:
		return l.ContactName
	case FieldRole:
		return string(l.Role)
	case FieldEmail:
		return l.Email
	case FieldPhone:
		return l.Phone
	case FieldState:
		return l.State
	case FieldCity:
		return l.City
	case FieldInterestedProduct:
		return string(l.InterestedProduct)
	case FieldPreferredDate:
		return l.PreferredDate
	case FieldPreferredTime:
		return l.PreferredTime
	}
	return ""
}

// Set assigns value to field f. It reports false for unknown fields.
func (l *Lead) Set(f Field, value string) bool {
	switch f {
	case FieldClubName:
		l.ClubName = value
	case FieldName:
		l.ContactName = value
	case FieldRole:
		l.Role = Role(value)
	case FieldEmail:
		l.Email = value
	case FieldPhone:
		l.Phone = value
	case FieldState:
		l.State = value
	case FieldCity:
		l.City = value
	case FieldInterestedProduct:
		l.InterestedProduct = Product(value)
	case FieldPreferredDate:
		l.PreferredDate = value
	case FieldPreferredTime:
		l.PreferredTime = value
	default:
		return false
	}
	return true
}

// Normalized returns a copy with markup stripped, whitespace collapsed, enum
// values lower-cased, and parseable phone numbers in E.164. The wizard and
// the endpoint both validate this form of the lead.
func (l Lead) Normalized() Lead {
	return Lead{
		ClubName:          sanitize.Line(l.ClubName),
		ContactName:       sanitize.Line(l.ContactName),
		Role:              Role(strings.ToLower(sanitize.Line(string(l.Role)))),
		Email:             sanitize.Line(l.Email),
		Phone:             phone.NormalizeE164(sanitize.Line(l.Phone)),
		State:             sanitize.Line(l.State),
		City:              sanitize.Line(l.City),
		InterestedProduct: Product(strings.ToLower(sanitize.Line(string(l.InterestedProduct)))),
		PreferredDate:     strings.TrimSpace(l.PreferredDate),
		PreferredTime:     strings.TrimSpace(l.PreferredTime),
	}
}

// HasMeeting reports whether both a date and a time were requested.
func (l Lead) HasMeeting() bool {
	return l.PreferredDate != "" && l.PreferredTime != ""
}
