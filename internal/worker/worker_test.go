package worker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/events"
	"github.com/govhub/helpdesk-portal/internal/observability"
)

type fakeDeleter struct {
	n   int64
	err error
}

func (f *fakeDeleter) DeleteExpired(context.Context) (int64, error) { return f.n, f.err }

func TestSweepSessions(t *testing.T) {
	n, err := SweepSessions(context.Background(), &fakeDeleter{n: 3}, zap.NewNop())
	if err != nil || n != 3 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if _, err := SweepSessions(context.Background(), &fakeDeleter{err: errors.New("db down")}, zap.NewNop()); err == nil {
		t.Fatal("expected error")
	}
}

func TestStartSessionSweeperRejectsBadSchedule(t *testing.T) {
	if _, err := StartSessionSweeper("not a schedule", &fakeDeleter{}, zap.NewNop()); err == nil {
		t.Fatal("expected parse error")
	}
	c, err := StartSessionSweeper("@every 1h", &fakeDeleter{}, zap.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	<-c.Stop().Done()
}

func TestAuditLoggerCountsEvents(t *testing.T) {
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	StartAuditWorkers(dispatcher, NewAuditLogger(zap.NewNop(), metrics), nil)

	actor := events.ActorFor(domain.Staff{ID: "s1", Role: domain.RoleStaff})
	_ = dispatcher.Publish(context.Background(), events.New(events.EventTicketSolved, actor, "t1", nil))
	_ = dispatcher.Publish(context.Background(), events.New(events.EventTicketSolved, actor, "t2", nil))

	expected := `
# HELP portal_audit_events_total Audit events raised by portal actions.
# TYPE portal_audit_events_total counter
portal_audit_events_total{type="ticket_solved"} 2
`
	if err := testutil.GatherAndCompare(metrics.Registry, strings.NewReader(expected), "portal_audit_events_total"); err != nil {
		t.Fatal(err)
	}
}
