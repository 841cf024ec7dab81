package forms

import (
	"strings"

	"github.com/govhub/helpdesk-portal/internal/domain"
)

// DepartmentForm is the add/edit department form.
type DepartmentForm struct {
	DepartmentName        string   `form:"departmentName"`
	DepartmentDescription string   `form:"departmentDescription"`
	PhoneNumber           string   `form:"phoneNumber"`
	EmailAddress          string   `form:"emailAddress"`
	DepartmentHeadID      string   `form:"departmentHeadID"`
	OperatingHours        string   `form:"operatingHours"`
	AppointmentReasons    []string `form:"appointmentReasons"`
}

// NewDepartmentForm returns an empty form with one blank reason row.
func NewDepartmentForm() DepartmentForm {
	return DepartmentForm{AppointmentReasons: []string{""}}
}

// DepartmentFormFrom pre-fills the form from a fetched department.
func DepartmentFormFrom(d domain.Department) DepartmentForm {
	f := DepartmentForm{
		DepartmentName:        d.DepartmentName,
		DepartmentDescription: d.DepartmentDescription,
		PhoneNumber:           d.PhoneNumber,
		EmailAddress:          d.EmailAddress,
		DepartmentHeadID:      d.DepartmentHeadID,
		OperatingHours:        d.OperatingHours,
		AppointmentReasons:    append([]string(nil), d.AppointmentReasons...),
	}
	if len(f.AppointmentReasons) == 0 {
		f.AppointmentReasons = []string{""}
	}
	return f
}

// AddReason appends a blank reason row.
func (f *DepartmentForm) AddReason() {
	f.AppointmentReasons = append(f.AppointmentReasons, "")
}

// RemoveReason drops the reason at i. Out of range indexes are ignored.
func (f *DepartmentForm) RemoveReason(i int) {
	if i < 0 || i >= len(f.AppointmentReasons) {
		return
	}
	f.AppointmentReasons = append(f.AppointmentReasons[:i:i], f.AppointmentReasons[i+1:]...)
}

// SetReason replaces the reason at i.
func (f *DepartmentForm) SetReason(i int, v string) {
	if i < 0 || i >= len(f.AppointmentReasons) {
		return
	}
	f.AppointmentReasons[i] = v
}

// Validate runs the per-field checks.
func (f DepartmentForm) Validate() Errors {
	errs := Errors{}
	if !departmentNameRe.MatchString(f.DepartmentName) {
		errs.add("departmentName", "Department Name should be 2-50 characters long and contain only letters, numbers, and spaces.")
	}
	if strings.TrimSpace(f.DepartmentDescription) == "" {
		errs.add("departmentDescription", "Department Description is required.")
	}
	if !departmentPhone.MatchString(f.PhoneNumber) {
		errs.add("phoneNumber", "Phone Number should be 7-15 digits long.")
	}
	if !ValidEmail(f.EmailAddress) {
		errs.add("emailAddress", "Enter a valid email address.")
	}
	if f.OperatingHours == "" {
		errs.add("operatingHours", "Enter a valid time in HH:MM format.")
	}
	return errs
}

// Department builds the payload sent to the backend.
func (f DepartmentForm) Department(mode Mode) domain.Department {
	reasons := make([]string, 0, len(f.AppointmentReasons))
	for _, r := range f.AppointmentReasons {
		if r = strings.TrimSpace(r); r != "" {
			reasons = append(reasons, r)
		}
	}
	d := domain.Department{
		DepartmentName:        strings.TrimSpace(f.DepartmentName),
		DepartmentDescription: strings.TrimSpace(f.DepartmentDescription),
		PhoneNumber:           f.PhoneNumber,
		EmailAddress:          f.EmailAddress,
		DepartmentHeadID:      f.DepartmentHeadID,
		OperatingHours:        f.OperatingHours,
		AppointmentReasons:    reasons,
	}
	if mode.IsEdit() {
		d.ID = mode.ID
	}
	return d
}
