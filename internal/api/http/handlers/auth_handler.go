package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/auth"
	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/forms"
	"github.com/govhub/helpdesk-portal/internal/service"
	"github.com/govhub/helpdesk-portal/internal/view"
	"github.com/govhub/helpdesk-portal/internal/web"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

// AuthHandler signs staff in and out.
type AuthHandler struct {
	Base
	auth     *service.AuthService
	sessions *auth.AuthMiddleware
}

func NewAuthHandler(base Base, authService *service.AuthService, sessions *auth.AuthMiddleware) *AuthHandler {
	return &AuthHandler{Base: base, auth: authService, sessions: sessions}
}

type loginData struct {
	Form    forms.LoginForm
	Errors  forms.Errors
	Expired bool
}

// LoginPage GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	pg := view.NewPage("Login", "", domain.Staff{})
	pg.Data = loginData{Expired: c.Query("expired") != ""}
	return h.renderLayout(c, "login", pg, web.LayoutAuth)
}

// Login POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var f forms.LoginForm
	_ = c.BodyParser(&f)
	pg := view.NewPage("Login", "", domain.Staff{})

	if errs := f.Validate(); !errs.Valid() {
		pg.Data = loginData{Form: forms.LoginForm{Email: f.Email}, Errors: errs}
		c.Status(fiber.StatusUnprocessableEntity)
		return h.renderLayout(c, "login", pg, web.LayoutAuth)
	}

	result, err := h.auth.Login(c.UserContext(), f.Email, f.Password)
	if err != nil {
		pg.Notes.Error("Login failed! " + apperrors.UserMessage(err))
		pg.Data = loginData{Form: forms.LoginForm{Email: f.Email}}
		c.Status(apperrors.ToDomainError(err).HTTPStatus)
		return h.renderLayout(c, "login", pg, web.LayoutAuth)
	}
	if _, err := h.sessions.Start(c, result.Token, result.Staff); err != nil {
		if !apperrors.IsUnauthorized(err) {
			return err
		}
		pg.Notes.Error("Login failed! " + apperrors.UserMessage(err))
		pg.Data = loginData{Form: forms.LoginForm{Email: f.Email}}
		c.Status(fiber.StatusUnauthorized)
		return h.renderLayout(c, "login", pg, web.LayoutAuth)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.auth.Logout(c.UserContext(), callerFrom(c))
	if err := h.sessions.Destroy(c); err != nil {
		h.logger.Warn("session delete failed", zap.Error(err))
	}
	return c.Redirect(auth.LoginPath, fiber.StatusSeeOther)
}
