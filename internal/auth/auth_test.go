package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/config"
	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/session"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	s, err := tok.SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestSessionExpiryUsesEarlierBound(t *testing.T) {
	now := time.Now().Truncate(time.Second)

	soon := now.Add(30 * time.Minute)
	if got := SessionExpiry(signedToken(t, soon), 8*time.Hour, now); !got.Equal(soon) {
		t.Fatalf("expiry = %v, want token exp %v", got, soon)
	}
	if got := SessionExpiry(signedToken(t, now.Add(48*time.Hour)), time.Hour, now); !got.Equal(now.Add(time.Hour)) {
		t.Fatalf("expiry = %v, want ttl bound", got)
	}
	if got := SessionExpiry("opaque-token", time.Hour, now); !got.Equal(now.Add(time.Hour)) {
		t.Fatalf("opaque token expiry = %v", got)
	}
	if got := SessionExpiry(signedToken(t, now.Add(-time.Minute)), time.Hour, now); !got.Equal(now) {
		t.Fatalf("expired token expiry = %v", got)
	}
}

func newTestApp(t *testing.T) (*fiber.App, *AuthMiddleware, session.Store) {
	t.Helper()
	codec, err := session.NewCodec([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	store := session.NewMemoryStore(codec)
	mw := NewAuthMiddleware(store, config.SessionConfig{CookieName: "sid", TTLMinutes: 60}, zap.NewNop())

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
	}})
	app.Use(mw.Handle)
	app.Post("/login", func(c *fiber.Ctx) error {
		p, err := mw.Start(c, c.Query("token", "tok"), domain.Staff{ID: "s1", Role: domain.Role(c.Query("role"))})
		if err != nil {
			return err
		}
		p.Flash(session.FlashSuccess, "welcome")
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/private", RequireSession(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/admin", RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app, mw, store
}

func login(t *testing.T, app *fiber.App, role string) *http.Cookie {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login?role="+role, nil))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" {
			return ck
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestRequireSessionRedirectsAnonymous(t *testing.T) {
	app, _, _ := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != LoginPath {
		t.Fatalf("status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestSessionCookieAdmitsAndPersistsFlash(t *testing.T) {
	app, _, store := newTestApp(t)
	ck := login(t, app, "staff")

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: ck.Value})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	s, err := store.Get(context.Background(), ck.Value)
	if err != nil {
		t.Fatalf("stored session: %v", err)
	}
	if len(s.Flashes) != 1 || s.Flashes[0].Message != "welcome" {
		t.Fatalf("flashes = %+v", s.Flashes)
	}
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	app, _, _ := newTestApp(t)
	ck := login(t, app, "dhead")

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: ck.Value})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestUnknownCookieIsCleared(t *testing.T) {
	app, _, _ := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "missing"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	cleared := false
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" && ck.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("stale cookie not cleared")
	}
}

func TestStartRejectsExpiredToken(t *testing.T) {
	app, _, store := newTestApp(t)
	stale := signedToken(t, time.Now().Add(-time.Minute))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login?token="+stale, nil))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(resp.Cookies()) != 0 {
		t.Fatalf("cookies = %v", resp.Cookies())
	}
	if n := store.(*session.MemoryStore).Len(); n != 0 {
		t.Fatalf("sessions = %d", n)
	}
}
