package service

import (
	"context"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/events"
	"github.com/govhub/helpdesk-portal/internal/forms"
	"github.com/govhub/helpdesk-portal/internal/repository"
)

// DepartmentService manages departments. Reads are open to managers; every
// mutation is admin-only.
type DepartmentService struct {
	departments repository.DepartmentRepository
	staff       repository.StaffRepository
	publisher
}

// OrgDependencies bundles repositories for department and staff services.
type OrgDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	StaffRepo      repository.StaffRepository
	Dispatcher     events.Dispatcher
}

// NewDepartmentService builds the service.
func NewDepartmentService(deps OrgDependencies) *DepartmentService {
	return &DepartmentService{
		departments: deps.DepartmentRepo,
		staff:       deps.StaffRepo,
		publisher:   publisher{dispatcher: deps.Dispatcher},
	}
}

func (s *DepartmentService) List(ctx context.Context, caller Caller) ([]domain.Department, error) {
	return s.departments.List(ctx, caller.Token)
}

func (s *DepartmentService) Get(ctx context.Context, caller Caller, id string) (*domain.Department, error) {
	return s.departments.GetByID(ctx, caller.Token, id)
}

// Save creates or updates dept according to mode.
func (s *DepartmentService) Save(ctx context.Context, caller Caller, mode forms.Mode, dept *domain.Department) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	var err error
	if mode.IsEdit() {
		dept.ID = mode.ID
		err = s.departments.Update(ctx, caller.Token, dept)
	} else {
		err = s.departments.Create(ctx, caller.Token, dept)
	}
	if err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventDepartmentSaved, dept.ID, events.SavedPayload{Created: !mode.IsEdit()})
	return nil
}

func (s *DepartmentService) Delete(ctx context.Context, caller Caller, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := s.departments.Delete(ctx, caller.Token, id); err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventDepartmentDeleted, id, nil)
	return nil
}

// ListHeads returns the staff eligible to head a department.
func (s *DepartmentService) ListHeads(ctx context.Context, caller Caller) ([]domain.Staff, error) {
	all, err := s.staff.List(ctx, caller.Token)
	if err != nil {
		return nil, err
	}
	heads := make([]domain.Staff, 0, len(all))
	for _, st := range all {
		if st.Role.IsDepartmentHead() {
			heads = append(heads, st)
		}
	}
	return heads, nil
}
