package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/events"
	"github.com/govhub/helpdesk-portal/internal/forms"
	"github.com/govhub/helpdesk-portal/internal/repository"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

var (
	admin = domain.Staff{ID: "a1", Role: domain.RoleAdmin, DepartmentID: "d1"}
	head  = domain.Staff{ID: "h1", Role: domain.RoleDepartmentHead, DepartmentID: "d1"}
	clerk = domain.Staff{ID: "s1", FirstName: "Sam", LastName: "Lee", Role: domain.RoleStaff, DepartmentID: "d1"}
)

func callerFor(s domain.Staff) Caller { return Caller{Token: "tok", Staff: s} }

type fakeTickets struct {
	repository.TicketRepository
	list     []domain.Ticket
	byID     map[string]domain.Ticket
	listErr  error
	updates  []any
	rejected []string
	deleted  []string
}

func (f *fakeTickets) List(context.Context, string) ([]domain.Ticket, error) {
	return f.list, f.listErr
}

func (f *fakeTickets) GetByID(_ context.Context, _, id string) (*domain.Ticket, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	return &t, nil
}

func (f *fakeTickets) Update(_ context.Context, _, _ string, body any) error {
	f.updates = append(f.updates, body)
	return nil
}

func (f *fakeTickets) Reject(_ context.Context, _, id, _ string) error {
	f.rejected = append(f.rejected, id)
	return nil
}

func (f *fakeTickets) Delete(_ context.Context, _, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeDepartments struct {
	repository.DepartmentRepository
	list []domain.Department
	err  error
}

func (f *fakeDepartments) List(context.Context, string) ([]domain.Department, error) {
	return f.list, f.err
}

func (f *fakeDepartments) GetByID(_ context.Context, _, id string) (*domain.Department, error) {
	for _, d := range f.list {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, apperrors.NewNotFound("department", nil)
}

type fakeCustomers struct {
	repository.CustomerRepository
	err error
}

func (f *fakeCustomers) GetByID(_ context.Context, _, id string) (*domain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Customer{ID: id, FirstName: "Ann"}, nil
}

func newTicketService(tickets *fakeTickets, depts *fakeDepartments, customers *fakeCustomers) *TicketService {
	svc := NewTicketService(TicketDependencies{TicketRepo: tickets, DepartmentRepo: depts, CustomerRepo: customers})
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestTicketListScopesAndJoinsDepartments(t *testing.T) {
	tickets := &fakeTickets{list: []domain.Ticket{
		{ID: "t1", DepartmentID: "d1"},
		{ID: "t2", DepartmentID: "d2"},
		{ID: "t3", DepartmentID: "gone"},
	}}
	depts := &fakeDepartments{list: []domain.Department{{ID: "d1", DepartmentName: "Revenue"}, {ID: "d2", DepartmentName: "Health"}}}
	svc := newTicketService(tickets, depts, &fakeCustomers{})

	rows, err := svc.List(context.Background(), callerFor(admin))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 || rows[0].DepartmentName != "Revenue" || rows[2].DepartmentName != UnknownDepartment {
		t.Fatalf("admin rows = %+v", rows)
	}

	rows, err = svc.List(context.Background(), callerFor(clerk))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "t1" {
		t.Fatalf("staff rows = %+v", rows)
	}
}

func TestTicketListFailsWhenDepartmentsFail(t *testing.T) {
	svc := newTicketService(&fakeTickets{}, &fakeDepartments{err: errors.New("down")}, &fakeCustomers{})
	if _, err := svc.List(context.Background(), callerFor(admin)); err == nil {
		t.Fatal("expected error")
	}
}

func TestSolveSendsFullTicketWithResolution(t *testing.T) {
	tickets := &fakeTickets{byID: map[string]domain.Ticket{
		"t1": {ID: "t1", CustomerID: "c1", DepartmentID: "d1", IssueDescription: "road", Status: domain.TicketStatusPending},
	}}
	svc := newTicketService(tickets, &fakeDepartments{}, &fakeCustomers{})

	if err := svc.Solve(context.Background(), callerFor(clerk), "t1", "fixed"); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(tickets.updates) != 1 {
		t.Fatalf("updates = %d", len(tickets.updates))
	}
	got := tickets.updates[0].(*domain.Ticket)
	if got.Status != domain.TicketStatusSolved || got.Feedback != "fixed" || got.StaffID != "s1" ||
		got.ClosedDate != "2024-03-01T09:30:00.000Z" || got.IssueDescription != "road" {
		t.Fatalf("body = %+v", got)
	}
}

func TestResolveGates(t *testing.T) {
	tickets := &fakeTickets{byID: map[string]domain.Ticket{
		"open":     {ID: "open", Status: domain.TicketStatusPending},
		"approved": {ID: "approved", Status: domain.TicketStatusApproved},
	}}
	svc := newTicketService(tickets, &fakeDepartments{}, &fakeCustomers{})
	ctx := context.Background()

	if err := svc.Reject(ctx, callerFor(head), "open", "no"); !apperrors.HasCode(err, "FORBIDDEN") {
		t.Fatalf("dhead reject err = %v", err)
	}
	if err := svc.Reject(ctx, callerFor(clerk), "approved", "no"); !apperrors.HasCode(err, "FORBIDDEN") {
		t.Fatalf("approved reject err = %v", err)
	}
	if err := svc.Reject(ctx, callerFor(clerk), "open", "  "); !apperrors.HasCode(err, "VALIDATION_FAILED") {
		t.Fatalf("blank reason err = %v", err)
	}
	if err := svc.Reject(ctx, callerFor(clerk), "open", "duplicate"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	body := tickets.updates[0].(map[string]string)
	if body["status"] != "Rejected" || body["rejectionReason"] != "duplicate" || body["staffID"] != "s1" {
		t.Fatalf("body = %v", body)
	}
	if err := svc.QuickReject(ctx, callerFor(clerk), "open", ""); !apperrors.HasCode(err, "VALIDATION_FAILED") {
		t.Fatalf("quick reject err = %v", err)
	}
	if len(tickets.rejected) != 0 {
		t.Fatalf("rejected = %v", tickets.rejected)
	}
	if err := svc.Delete(ctx, callerFor(head), "open"); !apperrors.HasCode(err, "FORBIDDEN") {
		t.Fatalf("delete err = %v", err)
	}
}

func TestDetailToleratesMissingRelations(t *testing.T) {
	tickets := &fakeTickets{byID: map[string]domain.Ticket{"t1": {ID: "t1", CustomerID: "c1", DepartmentID: "missing"}}}
	svc := newTicketService(tickets, &fakeDepartments{}, &fakeCustomers{err: errors.New("down")})

	detail, err := svc.Detail(context.Background(), callerFor(admin), "t1")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Customer != nil || detail.Department != nil || len(detail.RelatedErrors) != 2 {
		t.Fatalf("detail = %+v", detail)
	}
}

func TestVisibleStaff(t *testing.T) {
	all := []domain.Staff{
		{ID: "a", Role: domain.RoleAdmin, DepartmentID: "d1"},
		{ID: "b", Role: domain.RoleStaff, DepartmentID: "d1"},
		{ID: "c", Role: domain.RoleStaff, DepartmentID: "d2"},
	}
	if got := VisibleStaff(admin, all); len(got) != 3 {
		t.Fatalf("admin sees %d", len(got))
	}
	if got := VisibleStaff(head, all); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("dhead sees %+v", got)
	}
	if got := VisibleStaff(clerk, all); len(got) != 2 {
		t.Fatalf("staff sees %+v", got)
	}
	if !CanManageStaff(head, all[1]) || CanManageStaff(head, all[2]) || CanManageStaff(clerk, all[1]) {
		t.Fatal("unexpected manage gates")
	}
}

type fakeStaff struct {
	repository.StaffRepository
	byID    map[string]domain.Staff
	updated []domain.Staff
}

func (f *fakeStaff) GetByID(_ context.Context, _, id string) (*domain.Staff, error) {
	s := f.byID[id]
	return &s, nil
}

func (f *fakeStaff) Update(_ context.Context, _ string, s *domain.Staff) error {
	f.updated = append(f.updated, *s)
	return nil
}

func TestDepartmentHeadEditsOnlyOwnDepartment(t *testing.T) {
	repo := &fakeStaff{byID: map[string]domain.Staff{
		"mine":  {ID: "mine", DepartmentID: "d1"},
		"other": {ID: "other", DepartmentID: "d2"},
	}}
	svc := NewStaffService(OrgDependencies{StaffRepo: repo})
	ctx := context.Background()

	if err := svc.Save(ctx, callerFor(head), forms.Edit("other"), &domain.Staff{DepartmentID: "d2"}); !apperrors.HasCode(err, "FORBIDDEN") {
		t.Fatalf("other dept err = %v", err)
	}
	if err := svc.Save(ctx, callerFor(head), forms.Create(), &domain.Staff{}); !apperrors.HasCode(err, "FORBIDDEN") {
		t.Fatalf("create err = %v", err)
	}
	if err := svc.Save(ctx, callerFor(head), forms.Edit("mine"), &domain.Staff{DepartmentID: "d1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(repo.updated) != 1 || repo.updated[0].ID != "mine" {
		t.Fatalf("updated = %+v", repo.updated)
	}
	promote := &domain.Staff{DepartmentID: "d1", Role: domain.RoleAdmin}
	if err := svc.Save(ctx, callerFor(head), forms.Edit("mine"), promote); !apperrors.HasCode(err, "FORBIDDEN") {
		t.Fatalf("promote err = %v", err)
	}
	if len(repo.updated) != 1 {
		t.Fatalf("promotion reached the backend: %+v", repo.updated)
	}
}

func (f *fakeStaff) Create(_ context.Context, _ string, s *domain.Staff) error {
	s.ID = "s9"
	return nil
}

func (f *fakeTickets) Create(_ context.Context, _ string, tk *domain.Ticket) error {
	tk.ID = "t9"
	return nil
}

func TestCreatedEventsCarryNewIDs(t *testing.T) {
	var seen []events.Event
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	events.SubscribeAll(dispatcher, func(_ context.Context, e events.Event) error {
		seen = append(seen, e)
		return nil
	})
	ctx := context.Background()

	staff := NewStaffService(OrgDependencies{StaffRepo: &fakeStaff{}, Dispatcher: dispatcher})
	if err := staff.Save(ctx, callerFor(admin), forms.Create(), &domain.Staff{}); err != nil {
		t.Fatalf("create staff: %v", err)
	}
	tickets := NewTicketService(TicketDependencies{TicketRepo: &fakeTickets{}, Dispatcher: dispatcher})
	if err := tickets.Create(ctx, callerFor(clerk), &domain.Ticket{}); err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	if len(seen) != 2 || seen[0].ResourceID != "s9" || seen[1].ResourceID != "t9" {
		t.Fatalf("events = %+v", seen)
	}
	for _, e := range seen {
		if p, ok := e.Payload.(events.SavedPayload); !ok || !p.Created {
			t.Fatalf("payload = %+v", e.Payload)
		}
	}
}

type fakeDashboard struct {
	repository.DashboardRepository
	failStaffCount bool
}

func (f *fakeDashboard) DepartmentCount(context.Context, string) (int, error) { return 4, nil }
func (f *fakeDashboard) SolvedTicketCount(context.Context, string) (int, error) {
	return 10, nil
}
func (f *fakeDashboard) StaffCount(context.Context, string) (int, error) {
	if f.failStaffCount {
		return 0, apperrors.NewBackendError(500, "boom")
	}
	return 7, nil
}
func (f *fakeDashboard) CustomerCount(context.Context, string) (int, error) { return 30, nil }
func (f *fakeDashboard) SolvedByDepartment(context.Context, string) ([]domain.DepartmentSolved, error) {
	return []domain.DepartmentSolved{{DepartmentName: "Revenue", Count: 3}}, nil
}
func (f *fakeDashboard) SolvedVsPending(context.Context, string) (domain.SolvedPending, error) {
	return domain.SolvedPending{Solved: 3, Pending: 2}, nil
}
func (f *fakeDashboard) TicketSeries(context.Context, string) (domain.TicketSeries, error) {
	return domain.TicketSeries{Dates: []string{"2024-03-01"}}, nil
}
func (f *fakeDashboard) StaffLeaderboard(context.Context, string, domain.Duration, domain.Ranking) ([]domain.StaffRank, error) {
	return []domain.StaffRank{{StaffName: "Sam", Count: 2}}, nil
}

func TestAdminDashboardIsolatesFailedSlice(t *testing.T) {
	svc := NewDashboardService(DashboardDependencies{DashboardRepo: &fakeDashboard{failStaffCount: true}})
	d := svc.Admin(context.Background(), callerFor(admin), domain.DurationToday, domain.RankingBest)

	failures := d.Failures()
	if len(failures) != 1 || failures[0].Name != "staff count" {
		t.Fatalf("failures = %+v", failures)
	}
	if d.StaffCount.Value != 0 || d.StaffCount.OK() {
		t.Fatalf("staff count = %+v", d.StaffCount)
	}
	if d.DepartmentCount.Value != 4 || d.CustomerCount.Value != 30 || len(d.Leaderboard.Value) != 1 {
		t.Fatalf("dashboard = %+v", d)
	}
}

type fakeAnnouncements struct {
	repository.AnnouncementRepository
	posted []repository.AnnouncementPost
}

func (f *fakeAnnouncements) Create(_ context.Context, _ string, post repository.AnnouncementPost) (string, error) {
	f.posted = append(f.posted, post)
	return "n1", nil
}

func TestAnnouncementsRequireDepartmentHead(t *testing.T) {
	repo := &fakeAnnouncements{}
	var mu sync.Mutex
	var seen []events.Event
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	dispatcher.Subscribe(events.EventAnnouncementPosted, func(_ context.Context, e events.Event) error {
		mu.Lock()
		seen = append(seen, e)
		mu.Unlock()
		return nil
	})
	svc := NewAnnouncementService(repo, dispatcher)

	if err := svc.Post(context.Background(), callerFor(admin), "hi"); !apperrors.HasCode(err, "FORBIDDEN") {
		t.Fatalf("admin post err = %v", err)
	}
	if err := svc.Post(context.Background(), callerFor(head), " Office closed Friday "); err != nil {
		t.Fatalf("post: %v", err)
	}
	if len(repo.posted) != 1 || repo.posted[0].Content != "Office closed Friday" || repo.posted[0].PostedBy != "h1" || repo.posted[0].UserRole != domain.RoleDepartmentHead {
		t.Fatalf("posted = %+v", repo.posted)
	}
	if len(seen) != 1 || seen[0].ResourceID != "n1" {
		t.Fatalf("events = %+v", seen)
	}
}
