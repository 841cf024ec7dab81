package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/govhub/helpdesk-portal/internal/domain"
)

func newCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	return c
}

func sampleSession(ttl time.Duration) *Session {
	now := time.Now()
	s := New("tok-1", domain.Staff{ID: "s1", FirstName: "Ann", LastName: "Lee", Role: domain.RoleDepartmentHead, DepartmentID: "d1"}, now, now.Add(ttl))
	s.AddFlash(FlashSuccess, "Logged in")
	return s
}

func TestCodecRoundTrip(t *testing.T) {
	c := newCodec(t)
	in := sampleSession(time.Hour)

	sealed, err := c.Seal(in)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	out, err := c.Open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if out.ID != in.ID || out.Token != "tok-1" || out.Staff.ID != "s1" || out.Staff.Role != domain.RoleDepartmentHead {
		t.Fatalf("unexpected session %+v", out)
	}
	if !out.ExpiresAt.Equal(in.ExpiresAt) {
		t.Fatalf("expires %v != %v", out.ExpiresAt, in.ExpiresAt)
	}
	if len(out.Flashes) != 1 || out.Flashes[0].Message != "Logged in" {
		t.Fatalf("flashes = %+v", out.Flashes)
	}
}

func TestCodecRejectsTamperedAndForeign(t *testing.T) {
	c := newCodec(t)
	sealed, _ := c.Seal(sampleSession(time.Hour))
	sealed[len(sealed)-1] ^= 0xff
	if _, err := c.Open(sealed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("tampered payload: %v", err)
	}

	other, _ := NewCodec([]byte("another-secret-another-secret-xx"))
	good, _ := c.Seal(sampleSession(time.Hour))
	if _, err := other.Open(good); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign key: %v", err)
	}
	if _, err := c.Open([]byte("short")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("short payload: %v", err)
	}
}

func TestPopFlashesClears(t *testing.T) {
	s := sampleSession(time.Hour)
	s.AddFlash(FlashError, "boom")
	if got := s.PopFlashes(); len(got) != 2 {
		t.Fatalf("flashes = %d", len(got))
	}
	if len(s.PopFlashes()) != 0 {
		t.Fatal("flashes not cleared")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(newCodec(t))
	now := time.Now()
	store.now = func() time.Time { return now }

	s := sampleSession(time.Minute)
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Get(context.Background(), s.ID); err != nil {
		t.Fatalf("get: %v", err)
	}

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := store.Get(context.Background(), s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatal("expired session not evicted")
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, newCodec(t))
	ctx := context.Background()

	s := sampleSession(10 * time.Minute)
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL(redisKeyPrefix + s.ID); ttl <= 0 || ttl > 10*time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}
	got, err := store.Get(ctx, s.ID)
	if err != nil || got.Staff.FirstName != "Ann" {
		t.Fatalf("get: %+v, %v", got, err)
	}

	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRedisStoreTTLLapse(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, newCodec(t))

	s := sampleSession(time.Minute)
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(context.Background(), s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after ttl, got %v", err)
	}
}
