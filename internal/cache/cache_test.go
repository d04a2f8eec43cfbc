package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vrtu/musharaka/internal/calculations"
)

func TestProjectionKey(t *testing.T) {
	in := calculations.ProjectionInput{
		PropertyPrice: 800000,
		DepositAmount: 200000,
		Term:          25,
		PropertyType:  calculations.PropertyExisting,
		BedroomCount:  3,
	}

	k1, err := ProjectionKey(in, 0.05)
	if err != nil {
		t.Fatalf("ProjectionKey() error = %v", err)
	}
	k2, _ := ProjectionKey(in, 0.05)
	if k1 != k2 {
		t.Errorf("expected stable key, got %s and %s", k1, k2)
	}
	if !strings.HasPrefix(k1, "projection:") {
		t.Errorf("unexpected key format %s", k1)
	}

	other := in
	other.AdditionalSharePayment = 1
	k3, _ := ProjectionKey(other, 0.05)
	k4, _ := ProjectionKey(in, 0.07)
	if k3 == k1 || k4 == k1 {
		t.Error("expected different inputs to produce different keys")
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	if _, ok, err := c.Get(ctx, "missing"); ok || err != nil {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set(ctx, "a", "1", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Set(ctx, "b", "2", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if v, ok, _ := c.Get(ctx, "a"); !ok || v != "1" {
		t.Errorf("expected hit for a, got %q %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Error("expected a to expire")
	}
	if v, ok, _ := c.Get(ctx, "b"); !ok || v != "2" {
		t.Error("expected b without ttl to persist")
	}
	if c.Len() != 1 {
		t.Errorf("expected expired entry to be evicted, len %d", c.Len())
	}
}

func TestRedisCacheReportsBackendErrors(t *testing.T) {
	// nothing listens on port 1, so every command fails to connect
	rc := NewRedisCache("127.0.0.1:1")
	defer rc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	v, ok, err := rc.Get(ctx, "projection:0000000000000000")
	if err == nil {
		t.Fatal("expected connection failure to surface as an error")
	}
	if ok || v != "" {
		t.Errorf("expected no value on failure, got %q %v", v, ok)
	}
}
