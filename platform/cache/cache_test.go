package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type row struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func countingLoader(calls *int, result []row) func(context.Context) ([]row, error) {
	return func(context.Context) ([]row, error) {
		*calls++
		return result, nil
	}
}

func TestGetOrLoadMemoryStoreHonoursTTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(func() time.Time { return now })
	ctx := context.Background()

	calls := 0
	loader := countingLoader(&calls, []row{{ID: 1, Name: "Ana"}})

	for i := 0; i < 3; i++ {
		got, err := GetOrLoad(ctx, store, "prospects", time.Minute, loader)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Ana" {
			t.Fatalf("unexpected value: %+v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected loader to run once while fresh, ran %d times", calls)
	}

	now = now.Add(time.Minute)
	if _, err := GetOrLoad(ctx, store, "prospects", time.Minute, loader); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected reload after expiry, loader ran %d times", calls)
	}
}

func TestGetOrLoadZeroTTLBypassesStore(t *testing.T) {
	store := NewMemoryStore()
	calls := 0
	loader := countingLoader(&calls, []row{{ID: 2}})

	for i := 0; i < 2; i++ {
		if _, err := GetOrLoad(context.Background(), store, "k", 0, loader); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected loader on every call, ran %d times", calls)
	}
}

func TestGetOrLoadDoesNotCacheLoaderErrors(t *testing.T) {
	store := NewMemoryStore()
	boom := errors.New("backend down")

	_, err := GetOrLoad(context.Background(), store, "k", time.Minute, func(context.Context) ([]row, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok, _ := store.Get(context.Background(), "k"); ok {
		t.Fatal("failed load must not be stored")
	}
}

func TestRedisStoreRoundTripAndInvalidate(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+mr.Addr(), "crm:")
	if err != nil {
		t.Fatalf("new redis store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	calls := 0
	loader := countingLoader(&calls, []row{{ID: 7, Name: "Luis"}})

	if _, err := GetOrLoad(ctx, store, "prospects:all", time.Minute, loader); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mr.Exists("crm:prospects:all") {
		t.Fatal("expected prefixed key in redis")
	}

	got, err := GetOrLoad(ctx, store, "prospects:all", time.Minute, loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 || got[0].Name != "Luis" {
		t.Fatalf("expected cached value, calls=%d value=%+v", calls, got)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := GetOrLoad(ctx, store, "prospects:all", time.Minute, loader); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected reload after redis expiry, calls=%d", calls)
	}

	if err := Invalidate(ctx, store, "prospects:all"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists("crm:prospects:all") {
		t.Fatal("expected key to be deleted")
	}
}
