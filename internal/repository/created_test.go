package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/govhub/helpdesk-portal/internal/domain"
)

func TestCreateStoresAssignedID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/departments", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"d9","departmentName":"Revenue"}`))
	})
	mux.HandleFunc("/tickets", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Ticket created","ticket":{"_id":"t9"}}`))
	})
	mux.HandleFunc("/staff", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/announcements", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"n9"}`))
	})
	api := newAPI(t, mux)
	ctx := context.Background()

	dept := &domain.Department{DepartmentName: "Revenue"}
	if err := NewDepartmentRepository(api).Create(ctx, "tok", dept); err != nil || dept.ID != "d9" {
		t.Fatalf("department id=%q err=%v", dept.ID, err)
	}
	ticket := &domain.Ticket{}
	if err := NewTicketRepository(api).Create(ctx, "tok", ticket); err != nil || ticket.ID != "t9" {
		t.Fatalf("ticket id=%q err=%v", ticket.ID, err)
	}
	staff := &domain.Staff{}
	if err := NewStaffRepository(api).Create(ctx, "tok", staff); err != nil || staff.ID != "" {
		t.Fatalf("staff id=%q err=%v", staff.ID, err)
	}
	id, err := NewAnnouncementRepository(api).Create(ctx, "tok", AnnouncementPost{Content: "hi"})
	if err != nil || id != "n9" {
		t.Fatalf("announcement id=%q err=%v", id, err)
	}
}

func TestCreatedIDIgnoresPlainMessages(t *testing.T) {
	for _, raw := range []string{`"created"`, `{"message":"ok"}`, `[]`, `{"count":3}`} {
		if id := createdID([]byte(raw)); id != "" {
			t.Fatalf("%s gave %q", raw, id)
		}
	}
}
