package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/repository"
)

// Slice is one independently fetched dashboard value. A failed fetch leaves
// Value at its zero value and records Err; sibling slices are unaffected.
type Slice[T any] struct {
	Value T
	Err   error
}

func (s Slice[T]) OK() bool { return s.Err == nil }

// fill runs fetch and stores its outcome in dst. It never fails the group.
func fill[T any](g *errgroup.Group, dst *Slice[T], fetch func() (T, error)) {
	g.Go(func() error {
		v, err := fetch()
		if err != nil {
			*dst = Slice[T]{Err: err}
			return nil
		}
		*dst = Slice[T]{Value: v}
		return nil
	})
}

// SliceError names a failed dashboard slice.
type SliceError struct {
	Name string
	Err  error
}

// AdminDashboard is the summary shown to admins and department heads.
type AdminDashboard struct {
	Duration domain.Duration
	Ranking  domain.Ranking

	DepartmentCount    Slice[int]
	SolvedTicketCount  Slice[int]
	StaffCount         Slice[int]
	CustomerCount      Slice[int]
	SolvedByDepartment Slice[[]domain.DepartmentSolved]
	SolvedVsPending    Slice[domain.SolvedPending]
	TicketSeries       Slice[domain.TicketSeries]
	Leaderboard        Slice[[]domain.StaffRank]
	// Announcements is only loaded for department heads.
	Announcements Slice[[]domain.Announcement]
}

// Failures lists the slices that did not load, in display order.
func (d *AdminDashboard) Failures() []SliceError {
	return collect(
		SliceError{"department count", d.DepartmentCount.Err},
		SliceError{"solved ticket count", d.SolvedTicketCount.Err},
		SliceError{"staff count", d.StaffCount.Err},
		SliceError{"customer count", d.CustomerCount.Err},
		SliceError{"solved tickets by department", d.SolvedByDepartment.Err},
		SliceError{"solved vs pending tickets", d.SolvedVsPending.Err},
		SliceError{"ticket history", d.TicketSeries.Err},
		SliceError{"staff leaderboard", d.Leaderboard.Err},
		SliceError{"announcements", d.Announcements.Err},
	)
}

// StaffDashboard is the personal summary shown to front-line staff.
type StaffDashboard struct {
	Duration    domain.Duration
	OwnDuration domain.Duration
	Ranking     domain.Ranking

	SolvedCount   Slice[int]
	Leaderboard   Slice[[]domain.StaffRank]
	Performance   Slice[domain.StaffPerformance]
	RecentSolved  Slice[*domain.Ticket]
	History       Slice[[]domain.Ticket]
	Pending       Slice[[]domain.Ticket]
	Announcements Slice[[]domain.Announcement]
}

func (d *StaffDashboard) Failures() []SliceError {
	return collect(
		SliceError{"solved ticket count", d.SolvedCount.Err},
		SliceError{"staff leaderboard", d.Leaderboard.Err},
		SliceError{"performance", d.Performance.Err},
		SliceError{"recently solved ticket", d.RecentSolved.Err},
		SliceError{"solved ticket history", d.History.Err},
		SliceError{"pending tickets", d.Pending.Err},
		SliceError{"announcements", d.Announcements.Err},
	)
}

func collect(all ...SliceError) []SliceError {
	var out []SliceError
	for _, e := range all {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// DashboardService assembles dashboards from the summary endpoints.
type DashboardService struct {
	dashboard     repository.DashboardRepository
	tickets       *TicketService
	announcements repository.AnnouncementRepository
}

// DashboardDependencies bundles collaborators for the dashboard service.
type DashboardDependencies struct {
	DashboardRepo    repository.DashboardRepository
	AnnouncementRepo repository.AnnouncementRepository
	Tickets          *TicketService
}

func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		dashboard:     deps.DashboardRepo,
		tickets:       deps.Tickets,
		announcements: deps.AnnouncementRepo,
	}
}

// Admin issues the eight summary calls concurrently, plus the department's
// announcements for department heads. Each call fills only its own slice.
func (s *DashboardService) Admin(ctx context.Context, caller Caller, d domain.Duration, r domain.Ranking) *AdminDashboard {
	out := &AdminDashboard{Duration: d, Ranking: r}
	token := caller.Token
	var g errgroup.Group
	fill(&g, &out.DepartmentCount, func() (int, error) { return s.dashboard.DepartmentCount(ctx, token) })
	fill(&g, &out.SolvedTicketCount, func() (int, error) { return s.dashboard.SolvedTicketCount(ctx, token) })
	fill(&g, &out.StaffCount, func() (int, error) { return s.dashboard.StaffCount(ctx, token) })
	fill(&g, &out.CustomerCount, func() (int, error) { return s.dashboard.CustomerCount(ctx, token) })
	fill(&g, &out.SolvedByDepartment, func() ([]domain.DepartmentSolved, error) { return s.dashboard.SolvedByDepartment(ctx, token) })
	fill(&g, &out.SolvedVsPending, func() (domain.SolvedPending, error) { return s.dashboard.SolvedVsPending(ctx, token) })
	fill(&g, &out.TicketSeries, func() (domain.TicketSeries, error) { return s.dashboard.TicketSeries(ctx, token) })
	fill(&g, &out.Leaderboard, func() ([]domain.StaffRank, error) { return s.dashboard.StaffLeaderboard(ctx, token, d, r) })
	if caller.Role().IsDepartmentHead() {
		fill(&g, &out.Announcements, func() ([]domain.Announcement, error) {
			return s.announcements.ListForDepartment(ctx, token, caller.Staff.DepartmentID)
		})
	}
	_ = g.Wait()
	return out
}

// StaffOptions selects the windows of a staff dashboard.
type StaffOptions struct {
	Duration    domain.Duration
	OwnDuration domain.Duration
	Ranking     domain.Ranking
}

// Staff loads the personal dashboard of the caller.
func (s *DashboardService) Staff(ctx context.Context, caller Caller, opts StaffOptions) *StaffDashboard {
	out := &StaffDashboard{Duration: opts.Duration, OwnDuration: opts.OwnDuration, Ranking: opts.Ranking}
	token, me := caller.Token, caller.Staff
	var g errgroup.Group
	fill(&g, &out.SolvedCount, func() (int, error) {
		return s.dashboard.StaffSolvedCount(ctx, token, me.ID, opts.OwnDuration)
	})
	fill(&g, &out.Leaderboard, func() ([]domain.StaffRank, error) {
		return s.dashboard.StaffLeaderboard(ctx, token, opts.Duration, opts.Ranking)
	})
	fill(&g, &out.Performance, func() (domain.StaffPerformance, error) {
		return s.dashboard.StaffPerformance(ctx, token, me.ID)
	})
	fill(&g, &out.RecentSolved, func() (*domain.Ticket, error) {
		return s.dashboard.RecentSolvedTicket(ctx, token, me.ID)
	})
	fill(&g, &out.History, func() ([]domain.Ticket, error) {
		return s.dashboard.SolvedTicketHistory(ctx, token, me.ID)
	})
	fill(&g, &out.Pending, func() ([]domain.Ticket, error) {
		return s.tickets.Pending(ctx, caller)
	})
	fill(&g, &out.Announcements, func() ([]domain.Announcement, error) {
		return s.announcements.ListForDepartment(ctx, token, me.DepartmentID)
	})
	_ = g.Wait()
	return out
}

// Leaderboard refetches only the leaderboard, for the selector fragment.
func (s *DashboardService) Leaderboard(ctx context.Context, caller Caller, d domain.Duration, r domain.Ranking) Slice[[]domain.StaffRank] {
	ranks, err := s.dashboard.StaffLeaderboard(ctx, caller.Token, d, r)
	return Slice[[]domain.StaffRank]{Value: ranks, Err: err}
}

// SolvedCount refetches only the caller's own solved count, for its selector.
func (s *DashboardService) SolvedCount(ctx context.Context, caller Caller, d domain.Duration) Slice[int] {
	n, err := s.dashboard.StaffSolvedCount(ctx, caller.Token, caller.Staff.ID, d)
	return Slice[int]{Value: n, Err: err}
}
