package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache_SetGetDelete(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	key := Key(42, 3)
	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get on empty cache = ok=%v err=%v, want miss", ok, err)
	}

	if err := c.Set(ctx, key, []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok || string(data) != "payload" {
		t.Fatalf("Get after Set = data=%q ok=%v err=%v, want payload/true/nil", data, ok, err)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Fatal("Get after Delete should miss")
	}
}

func TestFileCache_Expiry(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()
	key := Key(1, 1)

	if err := c.Set(ctx, key, []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Fatal("expired entry should be a miss")
	}
}

func TestNullCache_AlwaysMisses(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("NullCache should always miss")
	}
}

func TestKey_DeterministicAndDistinct(t *testing.T) {
	a := Key(1, 5)
	b := Key(1, 5)
	if a != b {
		t.Errorf("Key(1,5) not deterministic: %q vs %q", a, b)
	}
	if c := Key(1, 6); c == a {
		t.Error("Key(1,6) collided with Key(1,5)")
	}
}
