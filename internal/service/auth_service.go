package service

import (
	"context"
	"errors"
	"strings"

	"github.com/govhub/helpdesk-portal/internal/events"
	"github.com/govhub/helpdesk-portal/internal/repository"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

// AuthService exchanges credentials for a backend token. The caller owns the
// resulting session.
type AuthService struct {
	auth repository.AuthRepository
	publisher
}

// NewAuthService builds the service.
func NewAuthService(authRepo repository.AuthRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{auth: authRepo, publisher: publisher{dispatcher: dispatcher}}
}

// Login authenticates against the backend.
func (s *AuthService) Login(ctx context.Context, email, password string) (*repository.LoginResult, error) {
	result, err := s.auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, apperrors.NewUnavailable(errors.New("login response carried no token"))
	}
	s.publish(ctx, Caller{Token: result.Token, Staff: result.Staff}, events.EventSessionStarted, result.Staff.ID, nil)
	return result, nil
}

// Logout records the end of a session.
func (s *AuthService) Logout(ctx context.Context, caller Caller) {
	s.publish(ctx, caller, events.EventSessionEnded, caller.Staff.ID, nil)
}
