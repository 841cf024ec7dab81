package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/config"
	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/session"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal is the signed-in staff member for the current request.
type Principal struct {
	Session   *session.Session
	dirty     bool
	destroyed bool
}

func (p *Principal) Staff() domain.Staff { return p.Session.Staff }
func (p *Principal) Role() domain.Role   { return p.Session.Staff.Role }
func (p *Principal) Token() string       { return p.Session.Token }

// Flash queues a notification for the next rendered page.
func (p *Principal) Flash(level session.FlashLevel, message string) {
	p.Session.AddFlash(level, message)
	p.dirty = true
}

// TakeFlashes drains queued notifications.
func (p *Principal) TakeFlashes() []session.Flash {
	flashes := p.Session.PopFlashes()
	if len(flashes) > 0 {
		p.dirty = true
	}
	return flashes
}

// AuthMiddleware loads the session named by the cookie and persists changes
// made to it during the request.
type AuthMiddleware struct {
	store  session.Store
	cfg    config.SessionConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(store session.Store, cfg config.SessionConfig, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{store: store, cfg: cfg, logger: logger, now: time.Now}
}

// Handle attaches a Principal when a live session exists. It never rejects;
// RequireSession does that.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if id := c.Cookies(m.cfg.CookieName); id != "" {
		s, err := m.store.Get(c.UserContext(), id)
		switch {
		case err == nil && !s.Expired(m.now()):
			c.Locals(principalKey, &Principal{Session: s})
		case err == nil || errors.Is(err, session.ErrNotFound):
			m.clearCookie(c)
		default:
			m.logger.Error("session store unavailable", zap.Error(err))
			return apperrors.NewDomainError("SESSION_STORE_UNAVAILABLE", "session store unavailable", http.StatusServiceUnavailable, nil)
		}
	}

	err := c.Next()

	if p, ok := PrincipalFromContext(c); ok && p.dirty && !p.destroyed {
		if saveErr := m.store.Save(c.UserContext(), p.Session); saveErr != nil {
			m.logger.Error("persist session", zap.String("session_id", p.Session.ID), zap.Error(saveErr))
		}
	}
	return err
}

// Start creates and stores a session for a fresh login and sets the cookie.
func (m *AuthMiddleware) Start(c *fiber.Ctx, token string, staff domain.Staff) (*Principal, error) {
	now := m.now()
	expires := SessionExpiry(token, m.cfg.TTL(), now)
	if !expires.After(now) {
		return nil, apperrors.NewUnauthorized("the helpdesk issued an expired token")
	}
	s := session.New(token, staff, now, expires)
	if err := m.store.Save(c.UserContext(), s); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HTTPOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	p := &Principal{Session: s}
	c.Locals(principalKey, p)
	return p, nil
}

// Destroy removes the current session from the store and expires the cookie.
func (m *AuthMiddleware) Destroy(c *fiber.Ctx) error {
	m.clearCookie(c)
	p, ok := PrincipalFromContext(c)
	if !ok {
		return nil
	}
	p.destroyed = true
	return m.store.Delete(c.UserContext(), p.Session.ID)
}

func (m *AuthMiddleware) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// PrincipalFromContext retrieves the signed-in staff member.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal != nil
}
