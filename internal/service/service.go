package service

import (
	"context"
	"time"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/events"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

// Caller is the signed-in staff member on whose behalf a service acts.
type Caller struct {
	Token string
	Staff domain.Staff
}

func (c Caller) Role() domain.Role { return c.Staff.Role }

// backendTime matches the ISO-8601 form the backend stores dates in.
const backendTime = "2006-01-02T15:04:05.000Z"

func stamp(now time.Time) string {
	return now.UTC().Format(backendTime)
}

func requireAdmin(caller Caller) error {
	if !caller.Role().IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

func requireDepartmentHead(caller Caller) error {
	if !caller.Role().IsDepartmentHead() {
		return apperrors.NewForbidden("department head role required")
	}
	return nil
}

// publisher is embedded by services that emit audit events.
type publisher struct {
	dispatcher events.Dispatcher
}

func (p publisher) publish(ctx context.Context, caller Caller, eventType events.EventType, resourceID string, payload any) {
	if p.dispatcher == nil {
		return
	}
	_ = p.dispatcher.Publish(ctx, events.New(eventType, events.ActorFor(caller.Staff), resourceID, payload))
}
