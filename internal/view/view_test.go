package view

import (
	"errors"
	"sync"
	"testing"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/session"
)

func TestLoadFailureLeavesEmptyData(t *testing.T) {
	s := Load(func() ([]string, error) { return []string{"stale"}, errors.New("down") })
	if !s.Failed() || len(s.Data) != 0 {
		t.Fatalf("screen = %+v", s)
	}
	ok := Load(func() ([]string, error) { return []string{"a"}, nil })
	if ok.State != Ready || len(ok.Data) != 1 {
		t.Fatalf("screen = %+v", ok)
	}
}

func TestNotifierConcurrent(t *testing.T) {
	var n Notifier
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.Error("x")
		}()
	}
	wg.Wait()
	n.Merge([]session.Flash{{Level: session.FlashSuccess, Message: "saved"}})
	if n.Count(session.FlashError) != 8 || n.Items()[0].Message != "saved" {
		t.Fatalf("items = %+v", n.Items())
	}
}

func TestNavItemsByRole(t *testing.T) {
	labels := func(items []NavItem) []string {
		var out []string
		for _, i := range items {
			out = append(out, i.Label)
		}
		return out
	}
	if got := labels(NavItems(domain.RoleStaff)); len(got) != 3 || got[1] != "Ticket" {
		t.Fatalf("staff nav = %v", got)
	}
	if got := labels(NavItems(domain.RoleDepartmentHead)); len(got) != 5 || got[1] != "Department" {
		t.Fatalf("dhead nav = %v", got)
	}
}
