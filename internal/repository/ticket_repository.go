package repository

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/govhub/helpdesk-portal/internal/backend"
	"github.com/govhub/helpdesk-portal/internal/domain"
)

// TicketRepository reads and writes tickets on the backend.
type TicketRepository interface {
	List(ctx context.Context, token string) ([]domain.Ticket, error)
	GetByID(ctx context.Context, token, id string) (*domain.Ticket, error)
	Create(ctx context.Context, token string, ticket *domain.Ticket) error
	// Update sends body as-is; callers decide which fields a PUT carries.
	Update(ctx context.Context, token, id string, body any) error
	Reject(ctx context.Context, token, id, reason string) error
	Delete(ctx context.Context, token, id string) error
}

type ticketRepository struct {
	api *backend.Client
}

// NewTicketRepository builds the repository.
func NewTicketRepository(api *backend.Client) TicketRepository {
	return &ticketRepository{api: api}
}

func (r *ticketRepository) List(ctx context.Context, token string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	if err := r.api.Get(ctx, token, "/tickets", "/tickets", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, token, id string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.api.Get(ctx, token, "/tickets/"+url.PathEscape(id), "/tickets/:id", &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Create(ctx context.Context, token string, ticket *domain.Ticket) error {
	var raw json.RawMessage
	if err := r.api.Post(ctx, token, "/tickets", "/tickets", ticket, &raw); err != nil {
		return err
	}
	ticket.ID = createdID(raw)
	return nil
}

func (r *ticketRepository) Update(ctx context.Context, token, id string, body any) error {
	return r.api.Put(ctx, token, "/tickets/"+url.PathEscape(id), "/tickets/:id", body, nil)
}

func (r *ticketRepository) Reject(ctx context.Context, token, id, reason string) error {
	body := map[string]string{"rejectionReason": reason}
	return r.api.Put(ctx, token, "/tickets/"+url.PathEscape(id)+"/reject", "/tickets/:id/reject", body, nil)
}

func (r *ticketRepository) Delete(ctx context.Context, token, id string) error {
	return r.api.Delete(ctx, token, "/tickets/"+url.PathEscape(id), "/tickets/:id", nil)
}
