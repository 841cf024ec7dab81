package forms

import (
	"strings"
	"time"

	"github.com/govhub/helpdesk-portal/internal/domain"
)

// StaffForm is the add/edit staff form.
type StaffForm struct {
	FirstName    string `form:"firstName"`
	LastName     string `form:"lastName"`
	DateOfBirth  string `form:"dateOfBirth"`
	Gender       string `form:"gender"`
	PhoneNumber  string `form:"phoneNumber"`
	EmailAddress string `form:"emailAddress"`
	Address      string `form:"address"`
	DepartmentID string `form:"departmentID"`
	Role         string `form:"role"`
	Password     string `form:"password"`
	HireDate     string `form:"hireDate"`
}

// StaffFormFrom pre-fills the form. The password is never pre-filled.
func StaffFormFrom(s domain.Staff) StaffForm {
	return StaffForm{
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		DateOfBirth:  DateInput(s.DateOfBirth),
		Gender:       s.Gender,
		PhoneNumber:  s.PhoneNumber,
		EmailAddress: s.EmailAddress,
		Address:      s.Address,
		DepartmentID: s.DepartmentID,
		Role:         string(s.Role),
		HireDate:     DateInput(s.HireDate),
	}
}

// Validate runs the per-field checks. On edit a blank password keeps the
// current one.
func (f StaffForm) Validate(mode Mode, now time.Time) Errors {
	errs := Errors{}
	if f.FirstName == "" {
		errs.add("firstName", "First Name is required")
	}
	if f.LastName == "" {
		errs.add("lastName", "Last Name is required")
	}
	switch {
	case f.DateOfBirth == "":
		errs.add("dateOfBirth", "Date of Birth is required")
	case f.DateOfBirth > now.Format(dateLayout):
		errs.add("dateOfBirth", "Date of Birth cannot be in the future")
	}
	if f.HireDate == "" {
		errs.add("hireDate", "Hire Date is required")
	}
	switch {
	case f.EmailAddress == "":
		errs.add("emailAddress", "Email Address is required")
	case !ValidEmail(f.EmailAddress):
		errs.add("emailAddress", "Email is not valid")
	}
	switch {
	case f.PhoneNumber == "":
		errs.add("phoneNumber", "Phone Number is required")
	case !staffPhoneRe.MatchString(f.PhoneNumber):
		errs.add("phoneNumber", "Phone Number is not valid")
	}
	switch {
	case f.Password == "" && !mode.IsEdit():
		errs.add("password", "Password is required")
	case f.Password != "" && !StrongPassword(f.Password):
		errs.add("password", "Password must be at least 8 characters and include both letters and numbers")
	}
	return errs
}

// Staff builds the payload sent to the backend.
func (f StaffForm) Staff(mode Mode) domain.Staff {
	s := domain.Staff{
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		DateOfBirth:  f.DateOfBirth,
		Gender:       f.Gender,
		PhoneNumber:  f.PhoneNumber,
		EmailAddress: f.EmailAddress,
		Address:      f.Address,
		DepartmentID: f.DepartmentID,
		Role:         domain.Role(f.Role),
		HireDate:     f.HireDate,
		Password:     f.Password,
	}
	if s.Role == "" {
		s.Role = domain.RoleStaff
	}
	if mode.IsEdit() {
		s.ID = mode.ID
	}
	return s
}
