package domain

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "Pending"
	TicketStatusSolved   TicketStatus = "Solved"
	TicketStatusRejected TicketStatus = "Rejected"
	TicketStatusApproved TicketStatus = "Approved"
)

// IsClosed reports whether the ticket can no longer be solved or rejected.
func (s TicketStatus) IsClosed() bool {
	return s == TicketStatusApproved || s == TicketStatusRejected
}

// Ticket is a customer support request routed to a department.
type Ticket struct {
	ID               string       `json:"_id,omitempty"`
	CustomerID       string       `json:"customerID"`
	StaffID          string       `json:"staffID,omitempty"`
	DepartmentID     string       `json:"departmentID"`
	IssueDescription string       `json:"issueDescription"`
	Status           TicketStatus `json:"status,omitempty"`
	CreatedDate      string       `json:"createdDate,omitempty"`
	AppointmentDate  string       `json:"appointmentDate,omitempty"`
	ClosedDate       string       `json:"closedDate,omitempty"`
	Notes            string       `json:"notes,omitempty"`
	Feedback         string       `json:"feedback,omitempty"`
	RejectionReason  string       `json:"rejectionReason,omitempty"`
}

// TicketRow is a ticket joined with its department's name for list views.
type TicketRow struct {
	Ticket
	DepartmentName string
}
