package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/backend"
	"github.com/govhub/helpdesk-portal/internal/config"
	"github.com/govhub/helpdesk-portal/internal/domain"
)

func newAPI(t *testing.T, mux *http.ServeMux) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return backend.New(config.BackendConfig{BaseURL: srv.URL}, zap.NewNop(), nil)
}

func TestStaffPerformancePicksOwnEntry(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dashboard/staff/performance", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["staffID"] != "s1" {
			t.Errorf("staffID = %q", body["staffID"])
		}
		_, _ = w.Write([]byte(`{"s1":{"days":["Mon","Tue"],"count":[3,4]},"s2":{"days":["Mon"],"count":[9]}}`))
	})
	repo := NewDashboardRepository(newAPI(t, mux))

	perf, err := repo.StaffPerformance(context.Background(), "tok", "s1")
	if err != nil {
		t.Fatalf("performance: %v", err)
	}
	if len(perf.Days) != 2 || perf.Count[1] != 4 {
		t.Fatalf("unexpected performance %+v", perf)
	}
}

func TestStaffLeaderboardSendsSelectors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dashboard/staff/solvedTickets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["duration"] != "thisWeek" || body["performance"] != "worst" {
			t.Errorf("body = %v", body)
		}
		_, _ = w.Write([]byte(`[{"staffName":"Ann Lee","count":2}]`))
	})
	repo := NewDashboardRepository(newAPI(t, mux))

	ranks, err := repo.StaffLeaderboard(context.Background(), "tok", domain.DurationThisWeek, domain.RankingWorst)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(ranks) != 1 || ranks[0].StaffName != "Ann Lee" {
		t.Fatalf("unexpected ranks %+v", ranks)
	}
}

func TestRecentSolvedTicketNull(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/dashboard/staff/recentSolvedTickets/s1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})
	repo := NewDashboardRepository(newAPI(t, mux))

	ticket, err := repo.RecentSolvedTicket(context.Background(), "tok", "s1")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if ticket != nil {
		t.Fatalf("expected nil ticket, got %+v", ticket)
	}
}

func TestAnnouncementDeleteCarriesRole(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/announcements/a1", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if r.Method != http.MethodDelete || body["userRole"] != "dhead" || body["departmentID"] != "d1" {
			t.Errorf("method=%s body=%v", r.Method, body)
		}
	})
	repo := NewAnnouncementRepository(newAPI(t, mux))
	if err := repo.Delete(context.Background(), "tok", "a1", domain.RoleDepartmentHead, "d1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
