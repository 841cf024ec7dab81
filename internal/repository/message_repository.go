package repository

import (
	"context"
	"encoding/json"

	"github.com/govhub/helpdesk-portal/internal/backend"
	"github.com/govhub/helpdesk-portal/internal/domain"
)

// MessageRepository reads and sends inter-department messages.
type MessageRepository interface {
	List(ctx context.Context, token string) ([]domain.Message, error)
	Recent(ctx context.Context, token string) ([]domain.Message, error)
	Create(ctx context.Context, token string, msg *domain.Message) error
}

type messageRepository struct {
	api *backend.Client
}

func NewMessageRepository(api *backend.Client) MessageRepository {
	return &messageRepository{api: api}
}

func (r *messageRepository) List(ctx context.Context, token string) ([]domain.Message, error) {
	var out []domain.Message
	if err := r.api.Get(ctx, token, "/messages", "/messages", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *messageRepository) Recent(ctx context.Context, token string) ([]domain.Message, error) {
	var out []domain.Message
	if err := r.api.Get(ctx, token, "/messages/recent", "/messages/recent", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *messageRepository) Create(ctx context.Context, token string, msg *domain.Message) error {
	var raw json.RawMessage
	if err := r.api.Post(ctx, token, "/messages", "/messages", msg, &raw); err != nil {
		return err
	}
	msg.ID = createdID(raw)
	return nil
}
