package forms

import (
	"testing"
	"time"

	"github.com/govhub/helpdesk-portal/internal/domain"
)

func validDepartment() DepartmentForm {
	return DepartmentForm{
		DepartmentName:        "Health Services",
		DepartmentDescription: "Clinics",
		PhoneNumber:           "0112345678",
		EmailAddress:          "health@gov.lk",
		OperatingHours:        "08:30",
		AppointmentReasons:    []string{"Checkup", " ", "Vaccination"},
	}
}

func TestDepartmentBadEmailFlagsOnlyThatField(t *testing.T) {
	f := validDepartment()
	f.EmailAddress = "not-an-email"

	errs := f.Validate()
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want exactly emailAddress", errs)
	}
	if errs.Get("emailAddress") == "" {
		t.Fatal("missing emailAddress error")
	}
}

func TestDepartmentValidationRules(t *testing.T) {
	f := DepartmentForm{DepartmentName: "X!", PhoneNumber: "123"}
	errs := f.Validate()
	for _, field := range []string{"departmentName", "departmentDescription", "phoneNumber", "emailAddress", "operatingHours"} {
		if errs.Get(field) == "" {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
	if !validDepartment().Validate().Valid() {
		t.Fatal("valid department rejected")
	}
}

func TestAppointmentReasonEditing(t *testing.T) {
	f := NewDepartmentForm()
	f.SetReason(0, "Checkup")
	f.AddReason()
	f.SetReason(1, "Renewal")
	f.AddReason()
	f.RemoveReason(0)
	f.RemoveReason(7)

	if len(f.AppointmentReasons) != 2 || f.AppointmentReasons[0] != "Renewal" || f.AppointmentReasons[1] != "" {
		t.Fatalf("reasons = %q", f.AppointmentReasons)
	}
}

func TestDepartmentPayloadDropsBlankReasons(t *testing.T) {
	d := validDepartment().Department(Edit("d1"))
	if d.ID != "d1" {
		t.Fatalf("id = %q", d.ID)
	}
	if len(d.AppointmentReasons) != 2 || d.AppointmentReasons[1] != "Vaccination" {
		t.Fatalf("reasons = %q", d.AppointmentReasons)
	}
	if validDepartment().Department(Create()).ID != "" {
		t.Fatal("create payload must not carry an id")
	}
}

func TestDepartmentFormFromDefaultsReasonRow(t *testing.T) {
	f := DepartmentFormFrom(domain.Department{DepartmentName: "Tax"})
	if len(f.AppointmentReasons) != 1 || f.AppointmentReasons[0] != "" {
		t.Fatalf("reasons = %q", f.AppointmentReasons)
	}
}

func validStaff() StaffForm {
	return StaffForm{
		FirstName:    "Ann",
		LastName:     "Lee",
		DateOfBirth:  "1990-04-01",
		HireDate:     "2020-01-01",
		EmailAddress: "ann.lee@gov.lk",
		PhoneNumber:  "0771234567",
		Password:     "secret123",
	}
}

func TestStaffValidation(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if errs := validStaff().Validate(Create(), now); !errs.Valid() {
		t.Fatalf("valid staff rejected: %v", errs)
	}

	f := validStaff()
	f.DateOfBirth = "2030-01-01"
	f.PhoneNumber = "12345"
	f.Password = "password"
	errs := f.Validate(Create(), now)
	if errs.Get("dateOfBirth") != "Date of Birth cannot be in the future" {
		t.Fatalf("dob error = %q", errs.Get("dateOfBirth"))
	}
	if errs.Get("phoneNumber") == "" || errs.Get("password") == "" {
		t.Fatalf("errors = %v", errs)
	}
}

func TestStaffPasswordOptionalOnEdit(t *testing.T) {
	f := validStaff()
	f.Password = ""
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if errs := f.Validate(Edit("s1"), now); !errs.Valid() {
		t.Fatalf("edit without password rejected: %v", errs)
	}
	if errs := f.Validate(Create(), now); errs.Get("password") != "Password is required" {
		t.Fatalf("create without password: %v", errs)
	}
	if s := f.Staff(Edit("s1")); s.Password != "" || s.ID != "s1" || s.Role != domain.RoleStaff {
		t.Fatalf("payload = %+v", s)
	}
}

func TestStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"abc12345": true,
		"12345678": false,
		"abcdefgh": false,
		"a1":       false,
	}
	for in, want := range cases {
		if StrongPassword(in) != want {
			t.Fatalf("StrongPassword(%q) = %v", in, !want)
		}
	}
}

func TestDateHelpers(t *testing.T) {
	if got := DateInput("1990-04-01T00:00:00.000Z"); got != "1990-04-01" {
		t.Fatalf("DateInput = %q", got)
	}
	if got := DateToISO("2024-06-02"); got != "2024-06-02T00:00:00.000Z" {
		t.Fatalf("DateToISO = %q", got)
	}
}

func TestTicketFormEditSkipsValidation(t *testing.T) {
	if errs := (TicketForm{}).Validate(Edit("t1")); !errs.Valid() {
		t.Fatalf("edit mode errors = %v", errs)
	}
	errs := (TicketForm{}).Validate(Create())
	if errs.Get("customerID") == "" || errs.Get("issueDescription") == "" {
		t.Fatalf("create errors = %v", errs)
	}
	if (TicketForm{CustomerID: "c", DepartmentID: "d", IssueDescription: "x"}).Ticket().Status != domain.TicketStatusPending {
		t.Fatal("new tickets default to Pending")
	}
}

func TestRejectFormRequiresReason(t *testing.T) {
	if (RejectForm{Reason: "   "}).Validate().Valid() {
		t.Fatal("blank reason accepted")
	}
}
