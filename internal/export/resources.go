package export

import (
	"strings"

	"github.com/govhub/helpdesk-portal/internal/domain"
)

func DepartmentTable(depts []domain.Department) Table {
	t := Table{
		Title:   "Departments",
		Headers: []string{"ID", "Department Name", "Description", "Phone Number", "Email Address", "Department Head ID", "Operating Hours"},
	}
	for _, d := range depts {
		t.Rows = append(t.Rows, []string{
			d.ID, d.DepartmentName, d.DepartmentDescription, d.PhoneNumber,
			d.EmailAddress, d.DepartmentHeadID, d.OperatingHours,
		})
	}
	return t
}

// StaffTable lists staff with their department resolved through names.
func StaffTable(staff []domain.Staff, names map[string]string) Table {
	t := Table{
		Title:   "Staff",
		Headers: []string{"ID", "Name", "Email Address", "Phone Number", "Role", "Department", "Hire Date"},
	}
	for _, s := range staff {
		dept, ok := names[s.DepartmentID]
		if !ok {
			dept = s.DepartmentID
		}
		t.Rows = append(t.Rows, []string{
			s.ID, s.FullName(), s.EmailAddress, s.PhoneNumber, s.Role.Label(), dept, s.HireDate,
		})
	}
	return t
}

func TicketTable(rows []domain.TicketRow) Table {
	t := Table{
		Title:   "Tickets",
		Headers: []string{"ID", "Customer ID", "Department", "Issue Description", "Status", "Created Date", "Closed Date"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.ID, r.CustomerID, r.DepartmentName, r.IssueDescription,
			string(r.Status), r.CreatedDate, orNA(r.ClosedDate),
		})
	}
	return t
}

func DepartmentReport(d domain.Department) Report {
	return Report{
		Title: "Department Report",
		Fields: []Field{
			{"Department ID", d.ID},
			{"Department Name", d.DepartmentName},
			{"Description", d.DepartmentDescription},
			{"Phone Number", d.PhoneNumber},
			{"Email Address", d.EmailAddress},
			{"Department Head ID", d.DepartmentHeadID},
			{"Operating Hours", d.OperatingHours},
			{"Appointment Reasons", orNA(strings.Join(d.AppointmentReasons, ", "))},
		},
	}
}

func StaffReport(s domain.Staff) Report {
	return Report{
		Title: "Staff Report",
		Fields: []Field{
			{"Staff ID", s.ID},
			{"Name", s.FullName()},
			{"Date of Birth", s.DateOfBirth},
			{"Gender", s.Gender},
			{"Phone Number", s.PhoneNumber},
			{"Email Address", s.EmailAddress},
			{"Address", s.Address},
			{"Department ID", s.DepartmentID},
			{"Hire Date", s.HireDate},
		},
	}
}

// TicketReport renders a ticket with whichever related records loaded.
func TicketReport(t domain.Ticket, customer *domain.Customer, dept *domain.Department) Report {
	customerID, customerName, deptName := "N/A", "N/A", "N/A"
	if customer != nil {
		customerID, customerName = customer.ID, customer.FullName()
	}
	if dept != nil {
		deptName = dept.DepartmentName
	}
	fields := []Field{
		{"Ticket ID", t.ID},
		{"Customer ID", customerID},
		{"Customer Name", customerName},
		{"Department", deptName},
		{"Issue Description", t.IssueDescription},
		{"Status", string(t.Status)},
		{"Created Date", t.CreatedDate},
		{"Closed Date", orNA(t.ClosedDate)},
		{"Notes", t.Notes},
		{"Feedback", orNA(t.Feedback)},
	}
	if t.Status == domain.TicketStatusRejected {
		reason := t.RejectionReason
		if strings.TrimSpace(reason) == "" {
			reason = "No reason provided"
		}
		fields = append(fields, Field{"Rejection Reason", reason})
	}
	return Report{Title: "Ticket Report", Fields: fields}
}
