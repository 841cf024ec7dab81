package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/govhub/helpdesk-portal/internal/domain"
)

// ErrNotFound is returned for missing, expired or undecodable sessions.
var ErrNotFound = errors.New("session not found")

// FlashLevel selects how a notification is styled.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
	FlashInfo    FlashLevel = "info"
)

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Level   FlashLevel `cbor:"level"`
	Message string     `cbor:"message"`
}

// Session is the logged-in staff member, their backend token and pending
// notifications. It lives server-side; the browser only holds ID.
type Session struct {
	ID        string       `cbor:"id"`
	Token     string       `cbor:"token"`
	Staff     domain.Staff `cbor:"staff"`
	Flashes   []Flash      `cbor:"flashes,omitempty"`
	CreatedAt time.Time    `cbor:"created_at"`
	ExpiresAt time.Time    `cbor:"expires_at"`
}

// New starts a session for staff that ends at expiresAt.
func New(token string, staff domain.Staff, now, expiresAt time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		Staff:     staff,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
}

// Expired reports whether the session is past its lifetime.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// AddFlash queues a notification.
func (s *Session) AddFlash(level FlashLevel, message string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Message: message})
}

// PopFlashes returns and clears queued notifications.
func (s *Session) PopFlashes() []Flash {
	out := s.Flashes
	s.Flashes = nil
	return out
}

// Store persists sessions by id.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
