package repository

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/govhub/helpdesk-portal/internal/backend"
	"github.com/govhub/helpdesk-portal/internal/domain"
)

// DepartmentRepository reads and writes departments on the backend.
type DepartmentRepository interface {
	List(ctx context.Context, token string) ([]domain.Department, error)
	GetByID(ctx context.Context, token, id string) (*domain.Department, error)
	Create(ctx context.Context, token string, dept *domain.Department) error
	Update(ctx context.Context, token string, dept *domain.Department) error
	Delete(ctx context.Context, token, id string) error
}

type departmentRepository struct {
	api *backend.Client
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(api *backend.Client) DepartmentRepository {
	return &departmentRepository{api: api}
}

func (r *departmentRepository) List(ctx context.Context, token string) ([]domain.Department, error) {
	var out []domain.Department
	if err := r.api.Get(ctx, token, "/departments", "/departments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *departmentRepository) GetByID(ctx context.Context, token, id string) (*domain.Department, error) {
	var dept domain.Department
	if err := r.api.Get(ctx, token, "/departments/"+url.PathEscape(id), "/departments/:id", &dept); err != nil {
		return nil, err
	}
	return &dept, nil
}

// Create posts dept and stores the id the backend assigned.
func (r *departmentRepository) Create(ctx context.Context, token string, dept *domain.Department) error {
	var raw json.RawMessage
	if err := r.api.Post(ctx, token, "/departments", "/departments", dept, &raw); err != nil {
		return err
	}
	dept.ID = createdID(raw)
	return nil
}

func (r *departmentRepository) Update(ctx context.Context, token string, dept *domain.Department) error {
	return r.api.Put(ctx, token, "/departments/"+url.PathEscape(dept.ID), "/departments/:id", dept, nil)
}

func (r *departmentRepository) Delete(ctx context.Context, token, id string) error {
	return r.api.Delete(ctx, token, "/departments/"+url.PathEscape(id), "/departments/:id", nil)
}
