package validator

import "testing"

type sampleRequest struct {
	Email    string `json:"email_address" validate:"required,email"`
	Quantity int    `json:"quantity_to_purchase" validate:"required,gt=0"`
	Internal string `validate:"omitempty,min=2"`
}

func TestValidateStruct_ReportsWireFieldNames(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Email: "nope", Quantity: -1})
	if len(errs) != 2 {
		t.Fatalf("got %d failures, want 2: %+v", len(errs), errs)
	}

	tags := map[string]string{}
	for _, e := range errs {
		tags[e.FailedField] = e.Tag
	}
	// Detail carries the json names, not Go struct namespaces
	if tags["email_address"] != "email" {
		t.Errorf("email_address failure = %q, want email", tags["email_address"])
	}
	if tags["quantity_to_purchase"] != "gt" {
		t.Errorf("quantity_to_purchase failure = %q, want gt", tags["quantity_to_purchase"])
	}
}

func TestValidateStruct_FallsBackToGoNameWithoutJSONTag(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{Email: "a@b.com", Quantity: 1, Internal: "x"})
	if len(errs) != 1 {
		t.Fatalf("got %d failures, want 1: %+v", len(errs), errs)
	}
	if errs[0].FailedField != "Internal" {
		t.Errorf("FailedField = %q, want Internal", errs[0].FailedField)
	}
}

func TestValidateStruct_ValidInput(t *testing.T) {
	if errs := ValidateStruct(&sampleRequest{Email: "a@b.com", Quantity: 3}); len(errs) != 0 {
		t.Fatalf("expected no failures, got %+v", errs)
	}
}
