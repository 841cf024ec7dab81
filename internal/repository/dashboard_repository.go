package repository

import (
	"context"
	"net/url"

	"github.com/govhub/helpdesk-portal/internal/backend"
	"github.com/govhub/helpdesk-portal/internal/domain"
)

// DashboardRepository wraps the pre-aggregated summary endpoints. Each method
// maps to exactly one backend call.
type DashboardRepository interface {
	DepartmentCount(ctx context.Context, token string) (int, error)
	SolvedTicketCount(ctx context.Context, token string) (int, error)
	StaffCount(ctx context.Context, token string) (int, error)
	CustomerCount(ctx context.Context, token string) (int, error)
	SolvedByDepartment(ctx context.Context, token string) ([]domain.DepartmentSolved, error)
	SolvedVsPending(ctx context.Context, token string) (domain.SolvedPending, error)
	TicketSeries(ctx context.Context, token string) (domain.TicketSeries, error)
	StaffLeaderboard(ctx context.Context, token string, d domain.Duration, r domain.Ranking) ([]domain.StaffRank, error)

	StaffSolvedCount(ctx context.Context, token, staffID string, d domain.Duration) (int, error)
	StaffPerformance(ctx context.Context, token, staffID string) (domain.StaffPerformance, error)
	RecentSolvedTicket(ctx context.Context, token, staffID string) (*domain.Ticket, error)
	SolvedTicketHistory(ctx context.Context, token, staffID string) ([]domain.Ticket, error)
}

type dashboardRepository struct {
	api *backend.Client
}

func NewDashboardRepository(api *backend.Client) DashboardRepository {
	return &dashboardRepository{api: api}
}

func (r *dashboardRepository) count(ctx context.Context, token, path string) (int, error) {
	var out domain.Count
	if err := r.api.Get(ctx, token, path, path, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (r *dashboardRepository) DepartmentCount(ctx context.Context, token string) (int, error) {
	return r.count(ctx, token, "/dashboard/departments/count")
}

func (r *dashboardRepository) SolvedTicketCount(ctx context.Context, token string) (int, error) {
	return r.count(ctx, token, "/dashboard/tickets/solved/count")
}

func (r *dashboardRepository) StaffCount(ctx context.Context, token string) (int, error) {
	return r.count(ctx, token, "/dashboard/staff/count")
}

func (r *dashboardRepository) CustomerCount(ctx context.Context, token string) (int, error) {
	return r.count(ctx, token, "/dashboard/customers/count")
}

func (r *dashboardRepository) SolvedByDepartment(ctx context.Context, token string) ([]domain.DepartmentSolved, error) {
	var out []domain.DepartmentSolved
	const path = "/dashboard/departments/solvedTickets"
	if err := r.api.Get(ctx, token, path, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *dashboardRepository) SolvedVsPending(ctx context.Context, token string) (domain.SolvedPending, error) {
	var out domain.SolvedPending
	const path = "/dashboard/tickets/solvedTickets"
	err := r.api.Get(ctx, token, path, path, &out)
	return out, err
}

func (r *dashboardRepository) TicketSeries(ctx context.Context, token string) (domain.TicketSeries, error) {
	var out domain.TicketSeries
	const path = "/dashboard/tickets/solvedAndPendingTickets"
	err := r.api.Get(ctx, token, path, path, &out)
	return out, err
}

func (r *dashboardRepository) StaffLeaderboard(ctx context.Context, token string, d domain.Duration, rank domain.Ranking) ([]domain.StaffRank, error) {
	body := map[string]string{"duration": string(d), "performance": string(rank)}
	var out []domain.StaffRank
	const path = "/dashboard/staff/solvedTickets"
	if err := r.api.Post(ctx, token, path, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *dashboardRepository) StaffSolvedCount(ctx context.Context, token, staffID string, d domain.Duration) (int, error) {
	body := map[string]string{"duration": string(d)}
	var out domain.Count
	if err := r.api.Post(ctx, token, "/dashboard/staff/solvedTickets/"+url.PathEscape(staffID), "/dashboard/staff/solvedTickets/:id", body, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// StaffPerformance returns the entry for staffID out of the per-staff map.
func (r *dashboardRepository) StaffPerformance(ctx context.Context, token, staffID string) (domain.StaffPerformance, error) {
	body := map[string]string{"staffID": staffID}
	var out map[string]domain.StaffPerformance
	const path = "/dashboard/staff/performance"
	if err := r.api.Post(ctx, token, path, path, body, &out); err != nil {
		return domain.StaffPerformance{}, err
	}
	return out[staffID], nil
}

func (r *dashboardRepository) RecentSolvedTicket(ctx context.Context, token, staffID string) (*domain.Ticket, error) {
	var out *domain.Ticket
	if err := r.api.Get(ctx, token, "/dashboard/staff/recentSolvedTickets/"+url.PathEscape(staffID), "/dashboard/staff/recentSolvedTickets/:id", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *dashboardRepository) SolvedTicketHistory(ctx context.Context, token, staffID string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	if err := r.api.Get(ctx, token, "/dashboard/staff/solvedTicketsHistory/"+url.PathEscape(staffID), "/dashboard/staff/solvedTicketsHistory/:id", &out); err != nil {
		return nil, err
	}
	return out, nil
}
