package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/events"
	"github.com/govhub/helpdesk-portal/internal/repository"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

// UnknownDepartment labels tickets whose department no longer resolves.
const UnknownDepartment = "Unknown Department"

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	departments repository.DepartmentRepository
	customers   repository.CustomerRepository
	now         func() time.Time
	publisher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	DepartmentRepo repository.DepartmentRepository
	CustomerRepo   repository.CustomerRepository
	Dispatcher     events.Dispatcher
}

// NewTicketService builds the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		departments: deps.DepartmentRepo,
		customers:   deps.CustomerRepo,
		now:         time.Now,
		publisher:   publisher{dispatcher: deps.Dispatcher},
	}
}

// TicketDetail is a ticket with the records it references. Customer and
// Department are nil when their lookup failed; the failures are kept in
// RelatedErrors so the page can report each one.
type TicketDetail struct {
	Ticket        domain.Ticket
	Customer      *domain.Customer
	Department    *domain.Department
	RelatedErrors []error
}

// List returns the tickets visible to caller joined with department names.
// Everyone except admins is limited to their own department.
func (s *TicketService) List(ctx context.Context, caller Caller) ([]domain.TicketRow, error) {
	var (
		tickets []domain.Ticket
		depts   []domain.Department
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tickets, err = s.tickets.List(gctx, caller.Token)
		return err
	})
	g.Go(func() error {
		var err error
		depts, err = s.departments.List(gctx, caller.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := domain.DepartmentNames(depts)
	rows := make([]domain.TicketRow, 0, len(tickets))
	for _, t := range visibleTickets(caller.Staff, tickets) {
		name, ok := names[t.DepartmentID]
		if !ok {
			name = UnknownDepartment
		}
		rows = append(rows, domain.TicketRow{Ticket: t, DepartmentName: name})
	}
	return rows, nil
}

func visibleTickets(viewer domain.Staff, all []domain.Ticket) []domain.Ticket {
	if viewer.Role.IsAdmin() {
		return all
	}
	out := make([]domain.Ticket, 0, len(all))
	for _, t := range all {
		if t.DepartmentID == viewer.DepartmentID {
			out = append(out, t)
		}
	}
	return out
}

// Pending returns the pending tickets of the caller's department.
func (s *TicketService) Pending(ctx context.Context, caller Caller) ([]domain.Ticket, error) {
	all, err := s.tickets.List(ctx, caller.Token)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Ticket, 0)
	for _, t := range all {
		if t.Status == domain.TicketStatusPending && t.DepartmentID == caller.Staff.DepartmentID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TicketService) Get(ctx context.Context, caller Caller, id string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, caller.Token, id)
}

// Detail loads the ticket, then its customer, then its department. Only the
// ticket itself is required.
func (s *TicketService) Detail(ctx context.Context, caller Caller, id string) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, caller.Token, id)
	if err != nil {
		return nil, err
	}
	detail := &TicketDetail{Ticket: *ticket}
	if ticket.CustomerID != "" {
		customer, err := s.customers.GetByID(ctx, caller.Token, ticket.CustomerID)
		if err != nil {
			detail.RelatedErrors = append(detail.RelatedErrors, err)
		} else {
			detail.Customer = customer
		}
	}
	if ticket.DepartmentID != "" {
		dept, err := s.departments.GetByID(ctx, caller.Token, ticket.DepartmentID)
		if err != nil {
			detail.RelatedErrors = append(detail.RelatedErrors, err)
		} else {
			detail.Department = dept
		}
	}
	return detail, nil
}

func (s *TicketService) Create(ctx context.Context, caller Caller, ticket *domain.Ticket) error {
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusPending
	}
	if err := s.tickets.Create(ctx, caller.Token, ticket); err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventTicketSaved, ticket.ID, events.SavedPayload{Created: true})
	return nil
}

// UpdateFeedback changes only the feedback of an existing ticket.
func (s *TicketService) UpdateFeedback(ctx context.Context, caller Caller, id, feedback string) error {
	body := map[string]string{"feedback": feedback}
	if err := s.tickets.Update(ctx, caller.Token, id, body); err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventTicketSaved, id, events.SavedPayload{Created: false})
	return nil
}

// Solve marks the ticket solved by the caller with feedback.
func (s *TicketService) Solve(ctx context.Context, caller Caller, id, feedback string) error {
	ticket, err := s.resolvable(ctx, caller, id)
	if err != nil {
		return err
	}
	ticket.Feedback = feedback
	ticket.Status = domain.TicketStatusSolved
	ticket.StaffID = caller.Staff.ID
	ticket.ClosedDate = stamp(s.now())
	if err := s.tickets.Update(ctx, caller.Token, id, ticket); err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventTicketSolved, id, events.TicketStatusPayload{Status: domain.TicketStatusSolved})
	return nil
}

// Reject closes the ticket as rejected with reason.
func (s *TicketService) Reject(ctx context.Context, caller Caller, id, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperrors.NewValidationError("Please provide a reason for rejection", nil)
	}
	if _, err := s.resolvable(ctx, caller, id); err != nil {
		return err
	}
	body := map[string]string{
		"status":          string(domain.TicketStatusRejected),
		"rejectionReason": reason,
		"staffID":         caller.Staff.ID,
		"closedDate":      stamp(s.now()),
	}
	if err := s.tickets.Update(ctx, caller.Token, id, body); err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventTicketRejected, id, events.TicketStatusPayload{Status: domain.TicketStatusRejected, Reason: reason})
	return nil
}

// QuickReject rejects from the dashboard's pending list through the
// dedicated reject endpoint.
func (s *TicketService) QuickReject(ctx context.Context, caller Caller, id, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperrors.NewValidationError("Please provide a reason for rejection", nil)
	}
	if caller.Role().IsManager() {
		return apperrors.NewForbidden("managers cannot reject tickets")
	}
	if err := s.tickets.Reject(ctx, caller.Token, id, reason); err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventTicketRejected, id, events.TicketStatusPayload{Status: domain.TicketStatusRejected, Reason: reason})
	return nil
}

func (s *TicketService) Delete(ctx context.Context, caller Caller, id string) error {
	if !CanDeleteTicket(caller.Staff) {
		return apperrors.NewForbidden("admin role required")
	}
	if err := s.tickets.Delete(ctx, caller.Token, id); err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventTicketDeleted, id, nil)
	return nil
}

func (s *TicketService) resolvable(ctx context.Context, caller Caller, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, caller.Token, id)
	if err != nil {
		return nil, err
	}
	if !CanResolveTicket(caller.Staff, *ticket) {
		return nil, apperrors.NewForbidden("this ticket cannot be resolved by you")
	}
	return ticket, nil
}
