package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/config"
	"github.com/govhub/helpdesk-portal/internal/domain"
)

func TestPublishContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	var calls int
	d.Subscribe(EventTicketSolved, func(context.Context, Event) error {
		calls++
		return errors.New("sink down")
	})
	d.Subscribe(EventTicketSolved, func(context.Context, Event) error {
		calls++
		return nil
	})

	ev := New(EventTicketSolved, ActorFor(domain.Staff{ID: "s1", Role: domain.RoleStaff}), "t1", TicketStatusPayload{Status: domain.TicketStatusSolved})
	if err := d.Publish(context.Background(), ev); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d", calls)
	}
	if ev.ID == "" || ev.Actor.StaffID != "s1" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestSubscribeAllCoversEveryType(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	seen := map[EventType]bool{}
	SubscribeAll(d, func(_ context.Context, e Event) error {
		seen[e.Type] = true
		return nil
	})
	for _, et := range AllEventTypes {
		_ = d.Publish(context.Background(), New(et, Actor{}, "", nil))
	}
	if len(seen) != len(AllEventTypes) {
		t.Fatalf("seen %d of %d", len(seen), len(AllEventTypes))
	}
}

func TestKafkaPublisherDisabledWithoutBrokers(t *testing.T) {
	p := NewKafkaPublisher(config.KafkaConfig{}, zap.NewNop())
	if p != nil {
		t.Fatal("expected nil publisher")
	}
	if err := p.Handle(context.Background(), Event{}); err != nil {
		t.Fatalf("nil publisher handle: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("nil publisher close: %v", err)
	}
}
