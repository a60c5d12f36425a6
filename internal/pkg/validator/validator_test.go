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


func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"123E4567-E89B-12D3-A456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
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



func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "staff_id", Message: "invalid"},
		{Field: "date", Message: "required"},
	}
	got := errs.Error()
	want := "staff_id: invalid; date: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "staff_id", Message: "invalid"},
		{Field: "date", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"staff_id": "invalid", "date": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2024-01", "1999-12", "2024-10"}
	invalid := []string{"2024-13", "2024-00", "2024-1", "24-01", "2024/01", ""}
	for _, m := range valid {
		if !IsValidMonth(m) {
			t.Errorf("IsValidMonth(%q) = false, want true", m)
		}
	}
	for _, m := range invalid {
		if IsValidMonth(m) {
			t.Errorf("IsValidMonth(%q) = true, want false", m)
		}
	}
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2024-02")
	if err != nil {
		t.Fatalf("MonthRange returned error: %v", err)
	}
	if got := start.Format(DateLayout); got != "2024-02-01" {
		t.Errorf("start = %s, want 2024-02-01", got)
	}
	if got := end.Format(DateLayout); got != "2024-03-01" {
		t.Errorf("end = %s, want 2024-03-01", got)
	}
	if _, _, err := MonthRange("2024-2"); err == nil {
		t.Errorf("MonthRange(2024-2) expected error")
	}
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Errorf("empty ValidationErrors.Err() should be nil")
	}
	errs.Add("amount", "must be greater than 0")
	if errs.Err() == nil {
		t.Errorf("non-empty ValidationErrors.Err() should not be nil")
	}
}

type structSample struct {
	Type  string  `json:"type" validate:"required,oneof=advance payment adjustment"`
	Month string  `json:"month" validate:"omitempty,month"`
	Date  string  `json:"date" validate:"required,date"`
	Note  *string `json:"note,omitempty" validate:"omitempty,max=5"`
}

func TestStruct(t *testing.T) {
	if err := Struct(structSample{Type: "advance", Month: "2024-05", Date: "2024-05-03"}); err != nil {
		t.Fatalf("Struct(valid) = %v, want nil", err)
	}

	long := "too long note"
	err := Struct(structSample{Type: "bonus", Month: "2024-5", Date: "", Note: &long})
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Struct(invalid) returned %T, want ValidationErrors", err)
	}
	got := errs.ToMap()
	want := map[string]string{
		"type":  "must be one of: advance, payment, adjustment",
		"month": "must be in YYYY-MM format",
		"date":  "is required",
		"note":  "must not exceed 5",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Struct errors[%q] = %q, want %q", k, got[k], v)
		}
	}
}

type idSample struct {
	CustomerID string   `json:"customer_id" validate:"required,uuid7"`
	OrderIDs   []string `json:"order_ids" validate:"omitempty,dive,uuid7"`
}

func TestStruct_UUIDTag(t *testing.T) {
	valid := "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"
	if err := Struct(idSample{CustomerID: valid, OrderIDs: []string{valid}}); err != nil {
		t.Fatalf("Struct(valid ids) = %v, want nil", err)
	}

	err := Struct(idSample{CustomerID: "abc", OrderIDs: []string{valid, "1"}})
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Struct(bad ids) returned %T, want ValidationErrors", err)
	}
	got := errs.ToMap()
	if got["customer_id"] != "must be a valid UUID" {
		t.Errorf("customer_id = %q, want UUID message", got["customer_id"])
	}
	if got["order_ids[1]"] != "must be a valid UUID" {
		t.Errorf("order_ids[1] = %q, want UUID message", got["order_ids[1]"])
	}
}

func TestValidationErrors_AddIDAndDate(t *testing.T) {
	var errs ValidationErrors
	errs.AddID("staff_id", "")
	errs.AddID("staff_id", "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b")
	errs.AddDate("date_from", "")
	errs.AddDate("date_from", "2024-02-30")
	errs.AddID("party_id", "not-a-uuid")
	errs.AddDate("date_to", "2024-03-01")

	if len(errs) != 2 {
		t.Fatalf("len(errs) = %d, want 2: %v", len(errs), errs)
	}
	if errs[0].Field != "date_from" || errs[1].Field != "party_id" {
		t.Errorf("fields = %q, %q, want date_from, party_id in call order", errs[0].Field, errs[1].Field)
	}
}
