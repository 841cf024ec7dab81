package forms

import (
	"strings"

	"github.com/govhub/helpdesk-portal/internal/domain"
)

// TicketForm is the add/edit ticket form. In edit mode only Feedback is
// editable; the other fields are shown read-only.
type TicketForm struct {
	CustomerID       string `form:"customerID"`
	StaffID          string `form:"staffID"`
	DepartmentID     string `form:"departmentID"`
	IssueDescription string `form:"issueDescription"`
	Status           string `form:"status"`
	CreatedDate      string `form:"createdDate"`
	AppointmentDate  string `form:"appointmentDate"`
	ClosedDate       string `form:"closedDate"`
	Notes            string `form:"notes"`
	Feedback         string `form:"feedback"`
}

func TicketFormFrom(t domain.Ticket) TicketForm {
	return TicketForm{
		CustomerID:       t.CustomerID,
		StaffID:          t.StaffID,
		DepartmentID:     t.DepartmentID,
		IssueDescription: t.IssueDescription,
		Status:           string(t.Status),
		CreatedDate:      DateInput(t.CreatedDate),
		AppointmentDate:  DateInput(t.AppointmentDate),
		ClosedDate:       DateInput(t.ClosedDate),
		Notes:            t.Notes,
		Feedback:         t.Feedback,
	}
}

// Validate checks the create fields. Edit mode only carries feedback, which is free text.
func (f TicketForm) Validate(mode Mode) Errors {
	errs := Errors{}
	if mode.IsEdit() {
		return errs
	}
	if strings.TrimSpace(f.CustomerID) == "" {
		errs.add("customerID", "Customer ID is required")
	}
	if strings.TrimSpace(f.DepartmentID) == "" {
		errs.add("departmentID", "Department is required")
	}
	if strings.TrimSpace(f.IssueDescription) == "" {
		errs.add("issueDescription", "Issue Description is required")
	}
	return errs
}

// Ticket builds the create payload.
func (f TicketForm) Ticket() domain.Ticket {
	status := domain.TicketStatus(f.Status)
	if status == "" {
		status = domain.TicketStatusPending
	}
	return domain.Ticket{
		CustomerID:       strings.TrimSpace(f.CustomerID),
		StaffID:          strings.TrimSpace(f.StaffID),
		DepartmentID:     f.DepartmentID,
		IssueDescription: strings.TrimSpace(f.IssueDescription),
		Status:           status,
		CreatedDate:      DateToISO(f.CreatedDate),
		AppointmentDate:  DateToISO(f.AppointmentDate),
		ClosedDate:       DateToISO(f.ClosedDate),
		Notes:            f.Notes,
		Feedback:         f.Feedback,
	}
}

// SolveForm carries the feedback recorded when solving a ticket.
type SolveForm struct {
	Feedback string `form:"feedback"`
}

// RejectForm carries the rejection reason.
type RejectForm struct {
	Reason string `form:"rejectionReason"`
}

func (f RejectForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Reason) == "" {
		errs.add("rejectionReason", "Please provide a reason for rejection")
	}
	return errs
}
