package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewBackendErrorKeepsServerMessage(t *testing.T) {
	err := NewBackendError(http.StatusBadRequest, "Email already exists")
	de := ToDomainError(err)
	if de.Code != "VALIDATION_FAILED" {
		t.Fatalf("code = %s", de.Code)
	}
	if UserMessage(err) != "Email already exists" {
		t.Fatalf("message = %q", UserMessage(err))
	}
}

func TestIsUnauthorizedThroughWrapping(t *testing.T) {
	err := fmt.Errorf("list tickets: %w", NewBackendError(http.StatusUnauthorized, ""))
	if !IsUnauthorized(err) {
		t.Fatal("expected wrapped 401 to be detected")
	}
	if IsUnauthorized(NewBackendError(http.StatusForbidden, "")) {
		t.Fatal("403 must not be treated as 401")
	}
}

func TestToDomainErrorDefaults(t *testing.T) {
	if de := ToDomainError(errors.New("boom")); de.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("status = %d", de.HTTPStatus)
	}
	if de := ToDomainError(context.DeadlineExceeded); de.Code != "TIMEOUT" {
		t.Fatalf("code = %s", de.Code)
	}
	if ToDomainError(nil) != nil {
		t.Fatal("nil must map to nil")
	}
}

func TestBackendServerErrorIsBadGateway(t *testing.T) {
	de := ToDomainError(NewBackendError(http.StatusInternalServerError, ""))
	if de.HTTPStatus != http.StatusBadGateway || de.Message != "Internal Server Error" {
		t.Fatalf("unexpected %+v", de)
	}
}
