package feedcache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "feed", "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCachePutGet(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()
	const url = "https://feed.example/db.json"

	if _, ok, err := cache.Get(ctx, url, time.Hour); err != nil || ok {
		t.Fatalf("empty cache returned ok=%v err=%v", ok, err)
	}

	if err := cache.Put(ctx, url, []byte(`[{"name":"a"}]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	body, ok, err := cache.Get(ctx, url, time.Hour)
	if err != nil || !ok {
		t.Fatalf("Get after Put: ok=%v err=%v", ok, err)
	}
	if string(body) != `[{"name":"a"}]` {
		t.Errorf("body = %q", body)
	}

	if err := cache.Put(ctx, url, []byte(`[]`)); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	body, _, _ = cache.Get(ctx, url, time.Hour)
	if string(body) != `[]` {
		t.Errorf("body after replace = %q", body)
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()
	const url = "https://feed.example/db.json"

	if err := cache.Put(ctx, url, []byte(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, err := cache.Get(ctx, url, time.Nanosecond); err != nil {
		t.Fatalf("Get: %v", err)
	} else if ok {
		t.Error("expired entry served")
	}
	if _, ok, err := cache.Get(ctx, url, 0); err != nil || !ok {
		t.Errorf("ttl=0 should disable expiry: ok=%v err=%v", ok, err)
	}
}

func TestCacheClear(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	if err := cache.Put(ctx, "https://a", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(ctx, "https://b", []byte("b")); err != nil {
		t.Fatal(err)
	}
	removed, err := cache.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
}
