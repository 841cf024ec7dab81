package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/govhub/helpdesk-portal/internal/domain"
)

// EventType enumerates audit events raised by portal actions.
type EventType string

const (
	EventSessionStarted      EventType = "session_started"
	EventSessionEnded        EventType = "session_ended"
	EventDepartmentSaved     EventType = "department_saved"
	EventDepartmentDeleted   EventType = "department_deleted"
	EventStaffSaved          EventType = "staff_saved"
	EventStaffDeleted        EventType = "staff_deleted"
	EventTicketSaved         EventType = "ticket_saved"
	EventTicketSolved        EventType = "ticket_solved"
	EventTicketRejected      EventType = "ticket_rejected"
	EventTicketDeleted       EventType = "ticket_deleted"
	EventAnnouncementPosted  EventType = "announcement_posted"
	EventAnnouncementDeleted EventType = "announcement_deleted"
	EventMessageSent         EventType = "message_sent"
)

// AllEventTypes lists every type, for sinks that record everything.
var AllEventTypes = []EventType{
	EventSessionStarted, EventSessionEnded,
	EventDepartmentSaved, EventDepartmentDeleted,
	EventStaffSaved, EventStaffDeleted,
	EventTicketSaved, EventTicketSolved, EventTicketRejected, EventTicketDeleted,
	EventAnnouncementPosted, EventAnnouncementDeleted,
	EventMessageSent,
}

// Actor identifies the staff member behind an event.
type Actor struct {
	StaffID      string      `json:"staff_id"`
	Role         domain.Role `json:"role"`
	DepartmentID string      `json:"department_id,omitempty"`
}

// ActorFor builds the actor for staff.
func ActorFor(staff domain.Staff) Actor {
	return Actor{StaffID: staff.ID, Role: staff.Role, DepartmentID: staff.DepartmentID}
}

// Event is one audit record.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Actor      Actor     `json:"actor"`
	ResourceID string    `json:"resource_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, actor Actor, resourceID string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Actor:      actor,
		ResourceID: resourceID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// TicketStatusPayload accompanies solve and reject events.
type TicketStatusPayload struct {
	Status domain.TicketStatus `json:"status"`
	Reason string              `json:"reason,omitempty"`
}

// AnnouncementPayload accompanies announcement_posted.
type AnnouncementPayload struct {
	DepartmentID string `json:"department_id"`
}

// MessagePayload accompanies message_sent.
type MessagePayload struct {
	RecipientDepartment string `json:"recipient_department"`
}

// SavedPayload accompanies create/update events.
type SavedPayload struct {
	Created bool `json:"created"`
}
