package service

import (
	"context"
	"strings"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/events"
	"github.com/govhub/helpdesk-portal/internal/repository"
)

// MessageService backs the inter-department message center.
type MessageService struct {
	messages repository.MessageRepository
	publisher
}

func NewMessageService(messages repository.MessageRepository, dispatcher events.Dispatcher) *MessageService {
	return &MessageService{messages: messages, publisher: publisher{dispatcher: dispatcher}}
}

func (s *MessageService) List(ctx context.Context, caller Caller) ([]domain.Message, error) {
	return s.messages.List(ctx, caller.Token)
}

func (s *MessageService) Recent(ctx context.Context, caller Caller) ([]domain.Message, error) {
	return s.messages.Recent(ctx, caller.Token)
}

// Send posts content to recipientDepartment as the caller.
func (s *MessageService) Send(ctx context.Context, caller Caller, recipientDepartment, content string) error {
	msg := &domain.Message{
		SenderID:            caller.Staff.ID,
		SenderName:          caller.Staff.FullName(),
		SenderDepartment:    caller.Staff.DepartmentID,
		RecipientDepartment: recipientDepartment,
		Content:             strings.TrimSpace(content),
	}
	if err := s.messages.Create(ctx, caller.Token, msg); err != nil {
		return err
	}
	s.publish(ctx, caller, events.EventMessageSent, msg.ID, events.MessagePayload{RecipientDepartment: recipientDepartment})
	return nil
}
