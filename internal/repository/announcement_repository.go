package repository

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/govhub/helpdesk-portal/internal/backend"
	"github.com/govhub/helpdesk-portal/internal/domain"
)

// AnnouncementPost is the body the backend expects when posting.
type AnnouncementPost struct {
	DepartmentID string      `json:"departmentID"`
	Content      string      `json:"content"`
	PostedBy     string      `json:"postedBy"`
	UserRole     domain.Role `json:"userRole"`
}

// AnnouncementRepository manages department announcements.
type AnnouncementRepository interface {
	ListForDepartment(ctx context.Context, token, departmentID string) ([]domain.Announcement, error)
	// Create returns the new announcement's id, or "" when the backend omits it.
	Create(ctx context.Context, token string, post AnnouncementPost) (string, error)
	Delete(ctx context.Context, token, id string, role domain.Role, departmentID string) error
}

type announcementRepository struct {
	api *backend.Client
}

func NewAnnouncementRepository(api *backend.Client) AnnouncementRepository {
	return &announcementRepository{api: api}
}

func (r *announcementRepository) ListForDepartment(ctx context.Context, token, departmentID string) ([]domain.Announcement, error) {
	var out []domain.Announcement
	if err := r.api.Get(ctx, token, "/announcements/"+url.PathEscape(departmentID), "/announcements/:departmentId", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *announcementRepository) Create(ctx context.Context, token string, post AnnouncementPost) (string, error) {
	var raw json.RawMessage
	if err := r.api.Post(ctx, token, "/announcements", "/announcements", post, &raw); err != nil {
		return "", err
	}
	return createdID(raw), nil
}

func (r *announcementRepository) Delete(ctx context.Context, token, id string, role domain.Role, departmentID string) error {
	body := map[string]string{"userRole": string(role), "departmentID": departmentID}
	return r.api.Delete(ctx, token, "/announcements/"+url.PathEscape(id), "/announcements/:id", body)
}
