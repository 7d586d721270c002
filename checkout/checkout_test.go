package checkout

import "testing"

func validDetails() Details {
	return Details{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Nic:   "991234567V",
	}
}

func TestValidate_AllFieldsValid(t *testing.T) {
	normalized, fieldErrors := Validate(validDetails())
	if fieldErrors != nil {
		t.Fatalf("unexpected errors: %v", fieldErrors)
	}
	if normalized != validDetails() {
		t.Fatalf("unexpected normalized details: %+v", normalized)
	}
}

func TestValidate_TrimsWhitespace(t *testing.T) {
	details := Details{
		Name:  "  Jane Doe  ",
		Email: " jane@example.com ",
		Nic:   " 991234567V ",
	}

	normalized, fieldErrors := Validate(details)
	if fieldErrors != nil {
		t.Fatalf("unexpected errors: %v", fieldErrors)
	}
	if normalized != validDetails() {
		t.Fatalf("expected trimmed details, got %+v", normalized)
	}
}

func TestValidate_MissingNameOnly(t *testing.T) {
	details := validDetails()
	details.Name = "   "

	_, fieldErrors := Validate(details)
	if len(fieldErrors) != 1 {
		t.Fatalf("expected exactly one error, got %v", fieldErrors)
	}
	if fieldErrors["name"] != "Full name is required" {
		t.Fatalf("unexpected name error: %q", fieldErrors["name"])
	}
}

func TestValidate_CollectsAllFieldErrors(t *testing.T) {
	_, fieldErrors := Validate(Details{Email: "not-an-email", Nic: "123"})
	if len(fieldErrors) != 3 {
		t.Fatalf("expected three errors, got %v", fieldErrors)
	}
	if fieldErrors["email"] != "Enter a valid email address" {
		t.Fatalf("unexpected email error: %q", fieldErrors["email"])
	}
	if fieldErrors["nic"] != "NIC must be at least 5 characters" {
		t.Fatalf("unexpected nic error: %q", fieldErrors["nic"])
	}
}

func TestValidate_NicExactlyFiveCharacters(t *testing.T) {
	details := validDetails()
	details.Nic = "12345"

	if _, fieldErrors := Validate(details); fieldErrors != nil {
		t.Fatalf("unexpected errors: %v", fieldErrors)
	}
}

func TestValidateField(t *testing.T) {
	cases := []struct {
		field string
		value string
		want  string
	}{
		{"name", "", "Full name is required"},
		{"name", "   ", "Full name is required"},
		{"name", "Jane", ""},
		{"email", "jane", "Enter a valid email address"},
		{"email", "jane@example.com", ""},
		{"nic", "1234", "NIC must be at least 5 characters"},
		{"nic", "12345", ""},
		{"unknown", "", ""},
	}
	for _, tc := range cases {
		if got := ValidateField(tc.field, tc.value); got != tc.want {
			t.Errorf("ValidateField(%q, %q) = %q, want %q", tc.field, tc.value, got, tc.want)
		}
	}
}
