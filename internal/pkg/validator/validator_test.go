package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsDataURI(t *testing.T) {
	valid := []string{
		"data:image/jpeg;base64,/9j/4AAQ",
		"data:image/png;base64,iVBORw0KGgo=",
	}
	invalid := []string{
		"",
		"/9j/4AAQ",
		"data:image/jpeg,/9j/4AAQ",
		"data:text/plain;base64,aGVsbG8=",
		"https://example.com/photo.jpg",
	}
	for _, s := range valid {
		if !IsDataURI(s) {
			t.Errorf("IsDataURI(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsDataURI(s) {
			t.Errorf("IsDataURI(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "reason", Message: "required"},
		{Field: "photo", Message: "invalid"},
	}
	got := errs.Error()
	want := "reason: required; photo: invalid"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "reason", Message: "required"},
		{Field: "photo", Message: "invalid"},
	}
	got := errs.ToMap()
	want := map[string]string{"reason": "required", "photo": "invalid"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
