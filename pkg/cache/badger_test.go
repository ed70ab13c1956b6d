package cache

import (
	"context"
	"testing"
	"time"
)

func newTestBadger(t *testing.T) *BadgerCache {
	t.Helper()
	c, err := NewBadgerCache(BadgerConfig{InMemory: true})
	if err != nil {
		t.Fatalf("NewBadgerCache error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestBadgerCache(t *testing.T) {
	ctx := context.Background()
	c := newTestBadger(t)

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Fatalf("Get = %q, hit %v, err %v", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key should succeed: %v", err)
	}
}

func TestBadgerCacheClear(t *testing.T) {
	ctx := context.Background()
	c := newTestBadger(t)
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestBadgerCacheRequiresDir(t *testing.T) {
	if _, err := NewBadgerCache(BadgerConfig{}); err == nil {
		t.Error("NewBadgerCache without a directory should fail")
	}
}

func TestBadgerCacheJSON(t *testing.T) {
	ctx := context.Background()
	c := newTestBadger(t)
	type payload struct{ Index int }
	if err := SetJSON(ctx, c, "k", payload{Index: 3}, 0); err != nil {
		t.Fatal(err)
	}
	var got payload
	if err := GetJSON(ctx, c, "k", &got); err != nil {
		t.Fatal(err)
	}
	if got.Index != 3 {
		t.Errorf("GetJSON = %+v", got)
	}
}
