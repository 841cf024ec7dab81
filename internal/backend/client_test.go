package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/config"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.BackendConfig{BaseURL: srv.URL + "/api/", TimeoutSeconds: 2}, zap.NewNop(), nil)
}

func TestDoSendsTokenAndDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/departments/d1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("X-Request-Id"); got != "rid-1" {
			t.Errorf("request id = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"_id": "d1", "departmentName": "Health"})
	})

	var out struct {
		ID   string `json:"_id"`
		Name string `json:"departmentName"`
	}
	ctx := WithRequestID(context.Background(), "rid-1")
	if err := c.Get(ctx, "tok", "/departments/d1", "/departments/:id", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.ID != "d1" || out.Name != "Health" {
		t.Fatalf("decoded %+v", out)
	}
}

func TestDoMapsBackendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	err := c.Post(context.Background(), "", "/staff/login", "", map[string]string{"email": "a"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := apperrors.UserMessage(err); msg != "Invalid credentials" {
		t.Fatalf("message = %q", msg)
	}
}

func TestDoDetectsUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	err := c.Get(context.Background(), "stale", "/tickets", "", nil)
	if !apperrors.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(config.BackendConfig{BaseURL: url, TimeoutSeconds: 1}, zap.NewNop(), nil)
	err := c.Get(context.Background(), "", "/tickets", "", nil)
	if !apperrors.HasCode(err, "BACKEND_UNAVAILABLE") {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestDeleteSendsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["userRole"] != "dhead" {
			t.Errorf("body = %v err=%v", body, err)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if err := c.Delete(context.Background(), "", "/announcements/a1", "", map[string]string{"userRole": "dhead"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
