package feedback

import (
	"testing"
	"time"

	"prepcoach/coach/internal/models"
)

func TestContextCacheSetGet(t *testing.T) {
	cache := NewContextCache(time.Minute)

	exchange := &models.ExchangeContext{
		RequestID: "req-1",
		SessionID: "sess-1",
		Category:  "Backend",
		Question:  "q",
		Reply:     "a",
	}
	cache.Set("req-1", exchange)

	got, exists := cache.Get("req-1")
	if !exists {
		t.Fatal("expected exchange to be cached")
	}
	if got.Category != "Backend" {
		t.Fatalf("unexpected exchange: %+v", got)
	}
	if cache.Size() != 1 {
		t.Fatalf("expected size 1, got %d", cache.Size())
	}
}

func TestContextCacheExpiry(t *testing.T) {
	cache := NewContextCache(10 * time.Millisecond)

	cache.Set("req-1", &models.ExchangeContext{RequestID: "req-1"})
	time.Sleep(20 * time.Millisecond)

	if _, exists := cache.Get("req-1"); exists {
		t.Fatal("expected entry to expire")
	}

	cache.cleanup()
	if cache.Size() != 0 {
		t.Fatalf("expected cleanup to remove expired entries, size %d", cache.Size())
	}
}

func TestContextCacheDelete(t *testing.T) {
	cache := NewContextCache(time.Minute)

	cache.Set("req-1", &models.ExchangeContext{RequestID: "req-1"})
	cache.Delete("req-1")

	if _, exists := cache.Get("req-1"); exists {
		t.Fatal("expected entry to be deleted")
	}
}

func TestContextCacheMissing(t *testing.T) {
	cache := NewContextCache(time.Minute)
	if _, exists := cache.Get("nope"); exists {
		t.Fatal("expected miss for unknown request ID")
	}
}
