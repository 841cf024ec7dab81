package http

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/api/dto"
	"github.com/govhub/helpdesk-portal/internal/auth"
	"github.com/govhub/helpdesk-portal/internal/backend"
	"github.com/govhub/helpdesk-portal/internal/config"
	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/observability"
	"github.com/govhub/helpdesk-portal/internal/view"
	"github.com/govhub/helpdesk-portal/internal/web"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

// expiredPath is where a request lands after the backend rejects its token.
const expiredPath = auth.LoginPath + "?expired=1"

// MiddlewareConfig bundles what the global middleware chain needs.
type MiddlewareConfig struct {
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	Sessions *auth.AuthMiddleware
	Timeout  time.Duration
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: observability.RequestIDKey,
	}))
	app.Use(requestContextMiddleware(cfg.Timeout))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(helmet.New(helmet.Config{
		XFrameOptions:  "SAMEORIGIN",
		ReferrerPolicy: "strict-origin-when-cross-origin",
	}))
	app.Use(errorHandlingMiddleware(cfg.Logger, cfg.Metrics, cfg.Sessions))
	app.Use(cfg.Sessions.Handle)
}

// requestContextMiddleware bounds each request and tags backend calls with
// the request id.
func requestContextMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if rid, ok := c.Locals(observability.RequestIDKey).(string); ok {
			ctx = backend.WithRequestID(ctx, rid)
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// LoginRateLimiter bounds sign-in attempts per client address.
func LoginRateLimiter(cfg config.RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.LoginMax,
		Expiration: cfg.LoginWindow(),
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "-login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return apperrors.NewDomainError("RATE_LIMITED", "Too many login attempts. Please wait a minute and try again.", fiber.StatusTooManyRequests, nil)
		},
	})
}

// errorHandlingMiddleware turns returned errors and panics into responses.
// A backend 401 ends the session and sends the browser to the login screen.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, sessions *auth.AuthMiddleware) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err == nil {
				return
			}
			domainErr := toDomainError(err)
			metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)
			if domainErr.HTTPStatus >= 500 {
				logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
			}

			if domainErr.Code == "UNAUTHORIZED" && !wantsJSON(c) {
				if _, ok := auth.PrincipalFromContext(c); ok {
					if delErr := sessions.Destroy(c); delErr != nil {
						logger.Warn("session delete failed", zap.Error(delErr))
					}
					err = c.Redirect(expiredPath, fiber.StatusSeeOther)
					return
				}
				err = c.Redirect(auth.LoginPath, fiber.StatusSeeOther)
				return
			}

			c.Status(domainErr.HTTPStatus)
			if wantsJSON(c) {
				err = c.JSON(dto.ErrorResponse{Error: dto.ErrorDetail{
					Code:    domainErr.Code,
					Message: domainErr.Message,
					Details: domainErr.Details,
				}})
				return
			}
			err = renderError(c, domainErr)
		}()
		return c.Next()
	}
}

func toDomainError(err error) *apperrors.DomainError {
	if fe, ok := err.(*fiber.Error); ok {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "PAYLOAD_TOO_LARGE"
		}
		return apperrors.NewDomainError(code, fe.Message, fe.Code, nil)
	}
	return apperrors.ToDomainError(err)
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) ||
		strings.HasPrefix(c.Path(), "/health/")
}

func renderError(c *fiber.Ctx, e *apperrors.DomainError) error {
	var staff domain.Staff
	layout := web.LayoutAuth
	if p, ok := auth.PrincipalFromContext(c); ok {
		staff = p.Staff()
		layout = web.LayoutMain
	}
	pg := view.NewPage("Error", "", staff)
	pg.Data = struct {
		Status  int
		Message string
	}{Status: e.HTTPStatus, Message: e.Message}
	return c.Render("error", pg, layout)
}
