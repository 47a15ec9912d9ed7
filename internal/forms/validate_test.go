package forms

import (
	"testing"

	"holdco-backend/internal/model"
)

func TestValidateContactMessage(t *testing.T) {
	valid := model.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Message: "I have a question.",
	}
	if errs := ValidateStruct(valid); errs != nil {
		t.Errorf("valid message rejected: %v", errs)
	}

	missing := model.ContactMessage{Email: "ada@example.com"}
	errs := ValidateStruct(missing)
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %v", errs)
	}
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"Name", "Subject", "Message"} {
		if !fields[f] {
			t.Errorf("missing field error for %s", f)
		}
	}
}

func TestValidateEmailShape(t *testing.T) {
	bad := model.ContactMessage{Name: "A", Email: "not-an-email", Subject: "s", Message: "m"}
	errs := ValidateStruct(bad)
	if len(errs) != 1 || errs[0].Field != "Email" {
		t.Errorf("expected single Email error, got %v", errs)
	}
	if errs[0].Reason != "must be a valid email address" {
		t.Errorf("reason = %q", errs[0].Reason)
	}
}

func TestValidateOfferAmount(t *testing.T) {
	offer := model.PropertyOffer{
		PropertyID: "p1",
		Name:       "Ada",
		Email:      "ada@example.com",
		Amount:     0,
	}
	errs := ValidateStruct(offer)
	if len(errs) != 1 || errs[0].Field != "Amount" {
		t.Errorf("expected Amount error, got %v", errs)
	}
}
