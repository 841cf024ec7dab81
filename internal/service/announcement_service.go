package service

import (
	"context"
	"strings"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/events"
	"github.com/govhub/helpdesk-portal/internal/repository"
)

// AnnouncementService manages department announcements. Department heads
// post and delete; everyone in the department reads.
type AnnouncementService struct {
	announcements repository.AnnouncementRepository
	publisher
}

func NewAnnouncementService(announcements repository.AnnouncementRepository, dispatcher events.Dispatcher) *AnnouncementService {
	return &AnnouncementService{announcements: announcements, publisher: publisher{dispatcher: dispatcher}}
}

// List returns the announcements of the caller's department.
func (s *AnnouncementService) List(ctx context.Context, caller Caller) ([]domain.Announcement, error) {
	return s.announcements.ListForDepartment(ctx, caller.Token, caller.Staff.DepartmentID)
}

func (s *AnnouncementService) Post(ctx context.Context, caller Caller, content string) error {
	if err := requireDepartmentHead(caller); err != nil {
		return err
	}
	post := repository.AnnouncementPost{
		DepartmentID: caller.Staff.DepartmentID,
		Content:      strings.TrimSpace(content),
		PostedBy:     caller.Staff.ID,
		UserRole:     caller.Role(),
	}
	id, err := s.announcements.Create(ctx, caller.Token, post)
	if err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventAnnouncementPosted, id, events.AnnouncementPayload{DepartmentID: post.DepartmentID})
	return nil
}

func (s *AnnouncementService) Delete(ctx context.Context, caller Caller, id string) error {
	if err := requireDepartmentHead(caller); err != nil {
		return err
	}
	if err := s.announcements.Delete(ctx, caller.Token, id, caller.Role(), caller.Staff.DepartmentID); err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventAnnouncementDeleted, id, nil)
	return nil
}
