package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDisabledCache(t *testing.T) {
	cache, err := NewCacheService("", nil)
	if err != nil {
		t.Fatalf("NewCacheService: %v", err)
	}
	if cache.Available() {
		t.Fatal("cache without URL should be disabled")
	}

	ctx := context.Background()
	var dest map[string]any
	if err := cache.Get(ctx, "k", &dest); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get error = %v, want ErrCacheMiss", err)
	}
	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("Set error = %v", err)
	}
	if err := cache.Publish(ctx, EventsChannel, NewEvent(EventMaterialCreated, nil)); err != nil {
		t.Errorf("Publish error = %v", err)
	}
	if ps := cache.Subscribe(ctx, EventsChannel); ps != nil {
		t.Error("Subscribe should return nil when disabled")
	}
	if err := cache.Close(); err != nil {
		t.Errorf("Close error = %v", err)
	}
}

func TestNilCacheIsUnavailable(t *testing.T) {
	var cache *CacheService
	if cache.Available() {
		t.Error("nil cache should be unavailable")
	}
}

func TestInvalidRedisURL(t *testing.T) {
	cache, err := NewCacheService("not-a-url://", nil)
	if err == nil {
		t.Fatal("expected error for invalid URL")
	}
	if cache == nil || cache.Available() {
		t.Error("invalid URL should still yield a disabled cache")
	}
}

func TestNewEvent(t *testing.T) {
	before := time.Now().UTC()
	ev := NewEvent(EventPredictionCompleted, map[string]string{"id": "m1"})
	if ev.Type != EventPredictionCompleted {
		t.Errorf("Type = %q", ev.Type)
	}
	if ev.Timestamp.Before(before) {
		t.Errorf("Timestamp = %v, want >= %v", ev.Timestamp, before)
	}
}
