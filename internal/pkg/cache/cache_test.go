package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/canvasstudy/internal/domain"
)

func TestKeyDependsOnFileVersion(t *testing.T) {
	t.Parallel()

	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	base := Key("https://canvas.example.edu/", "42", &t1)
	if !strings.HasPrefix(base, keyPrefix) || len(base) != len(keyPrefix)+40 {
		t.Fatalf("unexpected key %q", base)
	}
	if Key("https://canvas.example.edu", "42", &t1) != base {
		t.Fatalf("trailing slash should not change the key")
	}
	if Key("https://canvas.example.edu", "42", &t1) == Key("https://canvas.example.edu", "42", &t2) {
		t.Fatalf("modification time should change the key")
	}
	if Key("https://canvas.example.edu", "42", &t1) == Key("https://canvas.example.edu", "43", &t1) {
		t.Fatalf("file id should change the key")
	}
	if Key("https://a.example.edu", "42", nil) == Key("https://b.example.edu", "42", nil) {
		t.Fatalf("base URL should change the key")
	}
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	t.Parallel()

	var c ExtractionCache = Noop{}
	if err := c.Set(context.Background(), "k", &domain.ExtractedText{Text: "x"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := c.Get(context.Background(), "k")
	if err != nil || ok || got != nil {
		t.Fatalf("expected miss, got %v %v %v", got, ok, err)
	}
}

func TestRedisCacheReportsUnreachableServer(t *testing.T) {
	t.Parallel()

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := newRedisCache(rdb, 0)
	defer c.Close()

	if c.ttl != 24*time.Hour {
		t.Fatalf("expected default ttl, got %s", c.ttl)
	}
	if _, ok, err := c.Get(context.Background(), "k"); err == nil || ok {
		t.Fatalf("expected error from unreachable server, got ok=%v err=%v", ok, err)
	}
	if err := c.Set(context.Background(), "k", &domain.ExtractedText{Text: "x"}); err == nil {
		t.Fatalf("expected error from unreachable server")
	}
	if err := c.Set(context.Background(), "k", nil); err != nil {
		t.Fatalf("nil entry should be ignored, got %v", err)
	}
}

func TestNewRedisCacheFailsWithoutServer(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if _, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatalf("expected connection error")
	}
}
