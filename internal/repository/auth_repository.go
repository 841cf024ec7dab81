package repository

import (
	"context"

	"github.com/govhub/helpdesk-portal/internal/backend"
	"github.com/govhub/helpdesk-portal/internal/domain"
)

// LoginResult is the backend's answer to a successful staff login.
type LoginResult struct {
	Token string       `json:"token"`
	Staff domain.Staff `json:"staff"`
}

// AuthRepository exchanges staff credentials for a backend token.
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authRepository struct {
	api *backend.Client
}

// NewAuthRepository builds the repository.
func NewAuthRepository(api *backend.Client) AuthRepository {
	return &authRepository{api: api}
}

func (r *authRepository) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := r.api.Post(ctx, "", "/staff/login", "/staff/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
