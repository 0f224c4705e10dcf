package cache

import (
	"context"
	"testing"
	"time"

	"leadsync_backend/internal/leads/repository"
	"leadsync_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, 300*time.Second, logger.New("development")), mr
}

func testLead() repository.Lead {
	return repository.Lead{
		ID:        uuid.New(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Source:    repository.SourceManual,
	}
}

func TestSetThenGetReturnsSnapshot(t *testing.T) {
	c, _ := newTestCache(t)
	lead := testLead()

	c.Set(context.Background(), lead)

	got, ok := c.Get(context.Background(), lead.ID)
	if !ok {
		t.Fatal("expected cache hit after set")
	}
	if got.Email != lead.Email || got.ID != lead.ID {
		t.Fatalf("cached snapshot mismatch: got %+v", got)
	}
}

func TestSetAppliesTTL(t *testing.T) {
	c, mr := newTestCache(t)
	lead := testLead()

	c.Set(context.Background(), lead)

	ttl := mr.TTL(Key(lead.ID))
	if ttl != 300*time.Second {
		t.Fatalf("expected 300s TTL, got %s", ttl)
	}
}

func TestGetMissOnUnknownKey(t *testing.T) {
	c, _ := newTestCache(t)

	if _, ok := c.Get(context.Background(), uuid.New()); ok {
		t.Fatal("expected miss for unknown lead id")
	}
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c, mr := newTestCache(t)
	lead := testLead()

	c.Set(context.Background(), lead)
	mr.FastForward(301 * time.Second)

	if _, ok := c.Get(context.Background(), lead.ID); ok {
		t.Fatal("expected miss after TTL expiry")
	}
}

func TestInvalidateDeletesEntry(t *testing.T) {
	c, mr := newTestCache(t)
	lead := testLead()

	c.Set(context.Background(), lead)
	if err := c.Invalidate(context.Background(), lead.ID); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	if mr.Exists(Key(lead.ID)) {
		t.Fatal("expected cache entry to be deleted")
	}
}

func TestGetTreatsRedisFailureAsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	lead := testLead()

	c.Set(context.Background(), lead)
	mr.Close()

	if _, ok := c.Get(context.Background(), lead.ID); ok {
		t.Fatal("expected miss when redis is unreachable")
	}
}
