package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/service"
	"github.com/govhub/helpdesk-portal/internal/session"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

// DashboardHandler serves the landing page.
type DashboardHandler struct {
	Base
	dashboards *service.DashboardService
}

func NewDashboardHandler(base Base, dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{Base: base, dashboards: dashboards}
}

type announcementsPanel struct {
	Show    bool
	Items   []domain.Announcement
	CanPost bool
}

// Notice is set only when the panel is served as a fragment; the full page
// shows its failures with the other notifications.
type leaderboardPanel struct {
	Ranks     service.Slice[[]domain.StaffRank]
	Duration  domain.Duration
	Ranking   domain.Ranking
	Durations []domain.Duration
	Notice    string
}

type solvedCountPanel struct {
	Count     service.Slice[int]
	Own       domain.Duration
	Duration  domain.Duration
	Ranking   domain.Ranking
	Durations []domain.Duration
	Notice    string
}

type dashboardData struct {
	Admin         *service.AdminDashboard
	Staff         *service.StaffDashboard
	Durations     []domain.Duration
	Announcements announcementsPanel
	Leaderboard   leaderboardPanel
	SolvedCount   solvedCountPanel
}

// Index GET /. Admins and department heads get the organisation summary,
// everyone else their personal one. Each failed slice adds one notification.
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	caller := callerFrom(c)
	duration := domain.ParseDuration(c.Query("duration"))
	ranking := domain.ParseRanking(c.Query("ranking"))
	pg := h.page(c, "Dashboard", "Dashboard")

	data := dashboardData{Durations: domain.Durations}
	var failures []service.SliceError
	if caller.Role().IsManager() {
		d := h.dashboards.Admin(c.UserContext(), caller, duration, ranking)
		data.Admin = d
		data.Announcements = announcementsPanel{
			Show:    caller.Role().IsDepartmentHead(),
			Items:   d.Announcements.Value,
			CanPost: service.CanPostAnnouncements(caller.Staff),
		}
		data.Leaderboard = h.leaderboard(d.Leaderboard, duration, ranking)
		failures = d.Failures()
	} else {
		own := domain.ParseDuration(c.Query("own"))
		d := h.dashboards.Staff(c.UserContext(), caller, service.StaffOptions{
			Duration:    duration,
			OwnDuration: own,
			Ranking:     ranking,
		})
		data.Staff = d
		data.Announcements = announcementsPanel{Show: true, Items: d.Announcements.Value}
		data.Leaderboard = h.leaderboard(d.Leaderboard, duration, ranking)
		data.SolvedCount = solvedCountPanel{Count: d.SolvedCount, Own: own, Duration: duration, Ranking: ranking, Durations: domain.Durations}
		failures = d.Failures()
	}
	for _, f := range failures {
		if err := h.soft(c, pg, f.Err, "Failed to load "+f.Name); err != nil {
			return err
		}
	}
	pg.Data = data

	if data.Admin != nil {
		return h.render(c, "dashboard/admin", pg)
	}
	return h.render(c, "dashboard/staff", pg)
}

// Leaderboard GET /dashboard/leaderboard. Script-driven selectors ask for the
// fragment alone; plain form posts land back on the dashboard.
func (h *DashboardHandler) Leaderboard(c *fiber.Ctx) error {
	duration := domain.ParseDuration(c.Query("duration"))
	ranking := domain.ParseRanking(c.Query("ranking"))
	if c.Get("X-Fragment") == "" {
		return c.Redirect(dashboardURL(c.Query("own"), duration, ranking), fiber.StatusSeeOther)
	}
	ranks := h.dashboards.Leaderboard(c.UserContext(), callerFrom(c), duration, ranking)
	notice, err := h.fragmentNotice(c, ranks.Err, "staff leaderboard")
	if err != nil {
		return err
	}
	panel := h.leaderboard(ranks, duration, ranking)
	panel.Notice = notice
	return c.Render("partials/leaderboard", panel)
}

// SolvedCount GET /dashboard/solved-count backs the "My Solved Tickets"
// selector. Only the count endpoint is called.
func (h *DashboardHandler) SolvedCount(c *fiber.Ctx) error {
	own := domain.ParseDuration(c.Query("own"))
	duration := domain.ParseDuration(c.Query("duration"))
	ranking := domain.ParseRanking(c.Query("ranking"))
	if c.Get("X-Fragment") == "" {
		return c.Redirect(dashboardURL(string(own), duration, ranking), fiber.StatusSeeOther)
	}
	count := h.dashboards.SolvedCount(c.UserContext(), callerFrom(c), own)
	notice, err := h.fragmentNotice(c, count.Err, "solved ticket count")
	if err != nil {
		return err
	}
	return c.Render("partials/solved_count", solvedCountPanel{
		Count:     count,
		Own:       own,
		Duration:  duration,
		Ranking:   ranking,
		Durations: domain.Durations,
		Notice:    notice,
	})
}

// fragmentNotice is soft for fragments: the one error notification travels
// inside the fragment itself.
func (h *DashboardHandler) fragmentNotice(c *fiber.Ctx, err error, name string) (string, error) {
	if err == nil {
		return "", nil
	}
	if apperrors.IsUnauthorized(err) {
		return "", err
	}
	h.logger.Warn("fragment load failed", zap.String("path", c.Path()), zap.Error(err))
	h.metrics.RecordNotification(string(session.FlashError))
	return "Failed to load " + name, nil
}

func (h *DashboardHandler) leaderboard(ranks service.Slice[[]domain.StaffRank], d domain.Duration, r domain.Ranking) leaderboardPanel {
	return leaderboardPanel{Ranks: ranks, Duration: d, Ranking: r, Durations: domain.Durations}
}

func dashboardURL(own string, d domain.Duration, r domain.Ranking) string {
	q := url.Values{"duration": {string(d)}, "ranking": {string(r)}}
	if own != "" {
		q.Set("own", own)
	}
	return "/?" + q.Encode()
}
