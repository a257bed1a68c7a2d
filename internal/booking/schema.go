package booking

import (
	"strings"

	"drishti_backend/platform/validator"

	govalidator "github.com/go-playground/validator/v10"
)

// MsgRequired is reported for an empty required field.
const MsgRequired = "This field is required"

var fieldMessages = map[Field]string{
	FieldClubName:          "Club name must be at least 2 characters",
	FieldName:              "Name must be at least 2 characters",
	FieldRole:              "Please select your role",
	FieldEmail:             "Please enter a valid email address",
	FieldPhone:             "Please enter a valid phone number",
	FieldState:             "Please enter your state",
	FieldCity:              "Please enter your city",
	FieldInterestedProduct: "Please select a product",
	FieldPreferredDate:     "Please select a preferred date",
	FieldPreferredTime:     "Please select a preferred time",
}

// FieldErrors maps each invalid field to a user-facing message.
type FieldErrors map[Field]string

// Empty reports whether no field failed.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// Schema validates leads. The same schema runs in the wizard and at the
// submission endpoint.
type Schema struct {
	val *validator.Validator
}

// NewSchema registers the booking rules on val.
func NewSchema(val *validator.Validator) (*Schema, error) {
	if err := val.RegisterValidation("isodate", func(fl govalidator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	}); err != nil {
		return nil, err
	}
	if err := val.RegisterValidation("timeslot", func(fl govalidator.FieldLevel) bool {
		return IsValidSlot(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	return &Schema{val: val}, nil
}

// MustSchema is NewSchema for static wiring; it panics on registration failure.
func MustSchema(val *validator.Validator) *Schema {
	s, err := NewSchema(val)
	if err != nil {
		panic("booking schema: " + err.Error())
	}
	return s
}

// ValidateDetails checks the step-one fields. Empty fields report
// MsgRequired; filled fields that break a rule report the rule's message.
func (s *Schema) ValidateDetails(lead Lead) FieldErrors {
	return s.validate(lead, false)
}

// Validate checks the whole lead, including the optional meeting fields when
// they are present.
func (s *Schema) Validate(lead Lead) FieldErrors {
	return s.validate(lead, true)
}

func (s *Schema) validate(lead Lead, includeMeeting bool) FieldErrors {
	errs := FieldErrors{}
	for _, f := range DetailFields {
		if strings.TrimSpace(lead.Get(f)) == "" {
			errs[f] = MsgRequired
		}
	}

	for _, v := range validator.Violations(s.val.Struct(lead)) {
		f := Field(v.Field)
		if _, seen := errs[f]; seen {
			continue
		}
		if !includeMeeting && (f == FieldPreferredDate || f == FieldPreferredTime) {
			continue
		}
		errs[f] = fieldMessages[f]
	}
	return errs
}
