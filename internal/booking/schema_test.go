package booking

import (
	"testing"

	"drishti_backend/platform/validator"
)

func validLead() Lead {
	return Lead{
		ClubName:          "Bengaluru FC Academy",
		ContactName:       "Asha Rao",
		Role:              RoleCoach,
		Email:             "asha@example.com",
		Phone:             "9876543210",
		State:             "Karnataka",
		City:              "Bengaluru",
		InterestedProduct: ProductPreview,
	}
}

func TestValidateDetailsAcceptsValidLead(t *testing.T) {
	s := MustSchema(validator.New())
	if errs := s.ValidateDetails(validLead()); !errs.Empty() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateDetailsFlagsEveryEmptyField(t *testing.T) {
	s := MustSchema(validator.New())

	errs := s.ValidateDetails(Lead{})
	if len(errs) != len(DetailFields) {
		t.Fatalf("expected %d errors, got %v", len(DetailFields), errs)
	}
	for _, f := range DetailFields {
		if errs[f] != MsgRequired {
			t.Errorf("%s: got %q, want %q", f, errs[f], MsgRequired)
		}
	}
}

func TestValidateDetailsRuleMessages(t *testing.T) {
	s := MustSchema(validator.New())

	lead := validLead()
	lead.ClubName = "X"
	lead.Email = "not-an-email"
	lead.Phone = "12345"
	lead.Role = "referee"
	lead.InterestedProduct = "vision-plus"

	errs := s.ValidateDetails(lead)
	want := FieldErrors{
		FieldClubName:          "Club name must be at least 2 characters",
		FieldEmail:             "Please enter a valid email address",
		FieldPhone:             "Please enter a valid phone number",
		FieldRole:              "Please select your role",
		FieldInterestedProduct: "Please select a product",
	}
	if len(errs) != len(want) {
		t.Fatalf("expected %v, got %v", want, errs)
	}
	for f, msg := range want {
		if errs[f] != msg {
			t.Errorf("%s: got %q, want %q", f, errs[f], msg)
		}
	}
}

func TestValidateDetailsWhitespaceCountsAsEmpty(t *testing.T) {
	s := MustSchema(validator.New())

	lead := validLead()
	lead.City = "   "
	errs := s.ValidateDetails(lead)
	if errs[FieldCity] != MsgRequired {
		t.Fatalf("expected required error for blank city, got %v", errs)
	}
}

func TestValidateMeetingFields(t *testing.T) {
	s := MustSchema(validator.New())

	lead := validLead()
	lead.PreferredDate = "2025-06-10"
	lead.PreferredTime = "14:00"
	if errs := s.Validate(lead); !errs.Empty() {
		t.Fatalf("expected valid meeting, got %v", errs)
	}

	lead.PreferredDate = "10/06/2025"
	lead.PreferredTime = "16:30"
	errs := s.Validate(lead)
	if errs[FieldPreferredDate] == "" || errs[FieldPreferredTime] == "" {
		t.Fatalf("expected meeting field errors, got %v", errs)
	}
	if !s.ValidateDetails(lead).Empty() {
		t.Fatal("step-one validation must ignore meeting fields")
	}

	lead.PreferredDate = ""
	lead.PreferredTime = ""
	if errs := s.Validate(lead); !errs.Empty() {
		t.Fatalf("meeting fields are optional, got %v", errs)
	}
}

func TestLeadGetSetRoundTrip(t *testing.T) {
	var lead Lead
	for _, f := range append(DetailFields, FieldPreferredDate, FieldPreferredTime) {
		if !lead.Set(f, "v-"+string(f)) {
			t.Fatalf("Set(%s) rejected", f)
		}
		if got := lead.Get(f); got != "v-"+string(f) {
			t.Fatalf("Get(%s) = %q", f, got)
		}
	}
	if lead.Set(Field("nickname"), "x") {
		t.Fatal("unknown field must be rejected")
	}
}

func TestNormalized(t *testing.T) {
	lead := Lead{
		ClubName:          "  <b>Chennai</b>   Titans ",
		Role:              " Coach ",
		Phone:             " 98765 43210 ",
		InterestedProduct: "PostMatch",
		PreferredDate:     " 2025-06-10 ",
	}
	n := lead.Normalized()
	if n.ClubName != "Chennai Titans" {
		t.Fatalf("ClubName = %q", n.ClubName)
	}
	if n.Role != RoleCoach || n.InterestedProduct != ProductPostMatch {
		t.Fatalf("enums not normalized: %q %q", n.Role, n.InterestedProduct)
	}
	if n.PreferredDate != "2025-06-10" {
		t.Fatalf("PreferredDate = %q", n.PreferredDate)
	}
	if n.Phone != "+919876543210" {
		t.Fatalf("Phone = %q", n.Phone)
	}
}

func TestNormalizedKeepsUnparseablePhone(t *testing.T) {
	n := Lead{Phone: "  12345 "}.Normalized()
	if n.Phone != "12345" {
		t.Fatalf("Phone = %q", n.Phone)
	}
}

func TestProductInfo(t *testing.T) {
	info, ok := ProductPreview.Info()
	if !ok || info.Name != "PreView" {
		t.Fatalf("preview info = %+v, %v", info, ok)
	}
	if _, ok := Product("vision-plus").Info(); ok {
		t.Fatal("legacy identifier must not resolve")
	}
}
