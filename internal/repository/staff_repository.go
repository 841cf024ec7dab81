package repository

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/govhub/helpdesk-portal/internal/backend"
	"github.com/govhub/helpdesk-portal/internal/domain"
)

// StaffRepository reads and writes staff members on the backend.
type StaffRepository interface {
	List(ctx context.Context, token string) ([]domain.Staff, error)
	GetByID(ctx context.Context, token, id string) (*domain.Staff, error)
	Create(ctx context.Context, token string, staff *domain.Staff) error
	Update(ctx context.Context, token string, staff *domain.Staff) error
	Delete(ctx context.Context, token, id string) error
}

type staffRepository struct {
	api *backend.Client
}

// NewStaffRepository builds the repository.
func NewStaffRepository(api *backend.Client) StaffRepository {
	return &staffRepository{api: api}
}

func (r *staffRepository) List(ctx context.Context, token string) ([]domain.Staff, error) {
	var out []domain.Staff
	if err := r.api.Get(ctx, token, "/staff", "/staff", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *staffRepository) GetByID(ctx context.Context, token, id string) (*domain.Staff, error) {
	var staff domain.Staff
	if err := r.api.Get(ctx, token, "/staff/"+url.PathEscape(id), "/staff/:id", &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) Create(ctx context.Context, token string, staff *domain.Staff) error {
	var raw json.RawMessage
	if err := r.api.Post(ctx, token, "/staff", "/staff", staff, &raw); err != nil {
		return err
	}
	staff.ID = createdID(raw)
	return nil
}

func (r *staffRepository) Update(ctx context.Context, token string, staff *domain.Staff) error {
	return r.api.Put(ctx, token, "/staff/"+url.PathEscape(staff.ID), "/staff/:id", staff, nil)
}

func (r *staffRepository) Delete(ctx context.Context, token, id string) error {
	return r.api.Delete(ctx, token, "/staff/"+url.PathEscape(id), "/staff/:id", nil)
}
