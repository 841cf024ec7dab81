package service

import (
	"context"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/events"
	"github.com/govhub/helpdesk-portal/internal/forms"
	"github.com/govhub/helpdesk-portal/internal/repository"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

// StaffService manages staff records on behalf of admins and department heads.
type StaffService struct {
	staff repository.StaffRepository
	publisher
}

// NewStaffService builds the service.
func NewStaffService(deps OrgDependencies) *StaffService {
	return &StaffService{
		staff:     deps.StaffRepo,
		publisher: publisher{dispatcher: deps.Dispatcher},
	}
}

// List returns the staff visible to the caller. Only admins see admins and
// department heads see their own department only.
func (s *StaffService) List(ctx context.Context, caller Caller) ([]domain.Staff, error) {
	all, err := s.staff.List(ctx, caller.Token)
	if err != nil {
		return nil, err
	}
	return VisibleStaff(caller.Staff, all), nil
}

// VisibleStaff filters all down to what viewer may see.
func VisibleStaff(viewer domain.Staff, all []domain.Staff) []domain.Staff {
	if viewer.Role.IsAdmin() {
		return all
	}
	out := make([]domain.Staff, 0, len(all))
	for _, st := range all {
		if st.Role.IsAdmin() {
			continue
		}
		if viewer.Role.IsDepartmentHead() && st.DepartmentID != viewer.DepartmentID {
			continue
		}
		out = append(out, st)
	}
	return out
}

func (s *StaffService) Get(ctx context.Context, caller Caller, id string) (*domain.Staff, error) {
	return s.staff.GetByID(ctx, caller.Token, id)
}

// Save creates (admin only) or updates a staff member.
func (s *StaffService) Save(ctx context.Context, caller Caller, mode forms.Mode, st *domain.Staff) error {
	if !mode.IsEdit() {
		if !CanAddStaff(caller.Staff) {
			return apperrors.NewForbidden("only admins can add staff")
		}
		if err := s.staff.Create(ctx, caller.Token, st); err != nil {
			return err
		}
		s.publish(ctx, caller, events.EventStaffSaved, st.ID, events.SavedPayload{Created: true})
		return nil
	}

	st.ID = mode.ID
	if err := s.authorize(ctx, caller, mode.ID); err != nil {
		return err
	}
	if !caller.Role().IsAdmin() {
		if st.DepartmentID != caller.Staff.DepartmentID {
			return apperrors.NewForbidden("staff can only be assigned to your department")
		}
		if st.Role.IsAdmin() {
			return apperrors.NewForbidden("only admins can grant the admin role")
		}
	}
	if err := s.staff.Update(ctx, caller.Token, st); err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventStaffSaved, st.ID, events.SavedPayload{Created: false})
	return nil
}

func (s *StaffService) Delete(ctx context.Context, caller Caller, id string) error {
	if err := s.authorize(ctx, caller, id); err != nil {
		return err
	}
	if err := s.staff.Delete(ctx, caller.Token, id); err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventStaffDeleted, id, nil)
	return nil
}

// authorize lets admins through directly; department heads need the target
// loaded to check its department.
func (s *StaffService) authorize(ctx context.Context, caller Caller, id string) error {
	switch {
	case caller.Role().IsAdmin():
		return nil
	case !caller.Role().IsDepartmentHead():
		return apperrors.NewForbidden("you cannot manage staff")
	}
	target, err := s.staff.GetByID(ctx, caller.Token, id)
	if err != nil {
		return err
	}
	if !CanManageStaff(caller.Staff, *target) {
		return apperrors.NewForbidden("staff member belongs to another department")
	}
	return nil
}
