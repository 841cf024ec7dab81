package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/auth"
	"github.com/govhub/helpdesk-portal/internal/export"
	"github.com/govhub/helpdesk-portal/internal/observability"
	"github.com/govhub/helpdesk-portal/internal/service"
	"github.com/govhub/helpdesk-portal/internal/session"
	"github.com/govhub/helpdesk-portal/internal/view"
	"github.com/govhub/helpdesk-portal/internal/web"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

const (
	msgDeletionCanceled = "Deletion canceled"
	mimeXLSX            = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Base carries what every screen handler needs to render pages.
type Base struct {
	logger  *zap.Logger
	metrics *observability.Metrics
}

func NewBase(logger *zap.Logger, metrics *observability.Metrics) Base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Base{logger: logger, metrics: metrics}
}

func callerFrom(c *fiber.Ctx) service.Caller {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Caller{}
	}
	return service.Caller{Token: p.Token(), Staff: p.Staff()}
}

// page starts a full page and moves pending session flashes onto it.
func (b Base) page(c *fiber.Ctx, title, active string) *view.Page {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return view.NewPage(title, active, callerFrom(c).Staff)
	}
	pg := view.NewPage(title, active, p.Staff())
	pg.Notes.Merge(p.TakeFlashes())
	return pg
}

func (b Base) render(c *fiber.Ctx, tmpl string, pg *view.Page) error {
	return b.renderLayout(c, tmpl, pg, web.LayoutMain)
}

func (b Base) renderLayout(c *fiber.Ctx, tmpl string, pg *view.Page, layout string) error {
	for _, n := range pg.Notifications() {
		b.metrics.RecordNotification(string(n.Level))
	}
	return c.Render(tmpl, pg, layout)
}

// soft turns a failed load into one error notification on pg. Expired
// backend sessions are returned so the error handler can sign the user out.
func (b Base) soft(c *fiber.Ctx, pg *view.Page, err error, msg string) error {
	if err == nil {
		return nil
	}
	if apperrors.IsUnauthorized(err) {
		return err
	}
	b.logger.Warn("load failed",
		zap.String("path", c.Path()),
		zap.String("notice", msg),
		zap.Error(err))
	pg.Notes.Error(msg)
	return nil
}

// redirect queues a flash for the next page and sends a 303.
func (b Base) redirect(c *fiber.Ctx, level session.FlashLevel, msg, to string) error {
	if p, ok := auth.PrincipalFromContext(c); ok && msg != "" {
		p.Flash(level, msg)
	}
	return c.Redirect(to, fiber.StatusSeeOther)
}

// fail reports a failed action on the next page. The backend's message is
// shown when it sent one.
func (b Base) fail(c *fiber.Ctx, err error, prefix, to string) error {
	if apperrors.IsUnauthorized(err) {
		return err
	}
	b.logger.Warn("action failed", zap.String("path", c.Path()), zap.Error(err))
	return b.redirect(c, session.FlashError, prefix+apperrors.UserMessage(err), to)
}

// confirmPage renders the Yes/No prompt in front of a delete.
func (b Base) confirmPage(c *fiber.Ctx, active, resource, name, action string) error {
	if name == "" {
		name = c.Params("id")
	}
	pg := b.page(c, "Confirm Deletion", active)
	pg.Data = confirmData{Resource: resource, Name: name, Action: action}
	return b.render(c, "confirm", pg)
}

type confirmData struct {
	Resource string
	Name     string
	Action   string
}

func confirmed(c *fiber.Ctx) bool {
	return c.FormValue("confirm") == "yes"
}

func scopeFrom(c *fiber.Ctx) export.Scope {
	var ids []string
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		if string(k) == "ids" {
			ids = append(ids, string(v))
		}
	})
	return export.ParseScope(c.Query("scope"), c.Query("page"), c.Query("size"), ids)
}

func sendTable(c *fiber.Ctx, format, basename string, t export.Table) error {
	switch format {
	case "xlsx":
		c.Set(fiber.HeaderContentType, mimeXLSX)
		attachment(c, basename+".xlsx")
		return export.WriteXLSX(c, t)
	default:
		c.Type("pdf")
		attachment(c, basename+".pdf")
		return export.WritePDF(c, t)
	}
}

func sendReport(c *fiber.Ctx, basename string, r export.Report) error {
	c.Type("pdf")
	attachment(c, basename+".pdf")
	return export.WriteReportPDF(c, r)
}

func attachment(c *fiber.Ctx, filename string) {
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+url.PathEscape(filename)+`"`)
}
