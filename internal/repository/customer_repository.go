package repository

import (
	"context"
	"net/url"

	"github.com/govhub/helpdesk-portal/internal/backend"
	"github.com/govhub/helpdesk-portal/internal/domain"
)

// CustomerRepository is read-only; customers are managed elsewhere.
type CustomerRepository interface {
	GetByID(ctx context.Context, token, id string) (*domain.Customer, error)
}

type customerRepository struct {
	api *backend.Client
}

func NewCustomerRepository(api *backend.Client) CustomerRepository {
	return &customerRepository{api: api}
}

func (r *customerRepository) GetByID(ctx context.Context, token, id string) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.api.Get(ctx, token, "/customers/"+url.PathEscape(id), "/customers/:id", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
