package fmtcache_test

import (
	"testing"

	"canonfmt/internal/fmtcache"
)

func openTestCache(t *testing.T) *fmtcache.DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := fmtcache.Open("canonfmt-test")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return c
}

func TestDiskCache_PutGet(t *testing.T) {
	c := openTestCache(t)

	var key fmtcache.Digest
	key[0] = 1

	payload, err := fmtcache.NewPayload("yaml", 42, true)
	if err != nil {
		t.Fatalf("NewPayload failed: %v", err)
	}
	if err := c.Put(key, payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got fmtcache.Payload
	ok, err := c.Get(key, &got)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Dialect != "yaml" || got.Size != 42 || !got.Formatted {
		t.Fatalf("unexpected payload: %+v", got)
	}

	var other fmtcache.Digest
	other[0] = 2
	if ok, _ := c.Get(other, &got); ok {
		t.Fatal("expected miss on different digest")
	}
}

func TestDiskCache_NilSafe(t *testing.T) {
	var c *fmtcache.DiskCache

	var key fmtcache.Digest
	if err := c.Put(key, &fmtcache.Payload{}); err != nil {
		t.Fatalf("nil Put must be a no-op, got %v", err)
	}
	var out fmtcache.Payload
	if ok, err := c.Get(key, &out); ok || err != nil {
		t.Fatalf("nil Get must miss, got ok=%v err=%v", ok, err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("nil DropAll must be a no-op, got %v", err)
	}
}

func TestDiskCache_DropAll(t *testing.T) {
	c := openTestCache(t)

	var key fmtcache.Digest
	key[0] = 7
	payload, err := fmtcache.NewPayload("jsonc", 10, true)
	if err != nil {
		t.Fatalf("NewPayload failed: %v", err)
	}
	if err := c.Put(key, payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll failed: %v", err)
	}

	var out fmtcache.Payload
	if ok, _ := c.Get(key, &out); ok {
		t.Fatal("expected miss after DropAll")
	}

	if err := c.DropAll(); err != nil {
		t.Fatalf("second DropAll must be a no-op, got %v", err)
	}
}

func TestPayloadFresh(t *testing.T) {
	payload, err := fmtcache.NewPayload("yaml", 100, true)
	if err != nil {
		t.Fatalf("NewPayload failed: %v", err)
	}

	if !payload.Fresh("yaml", 100) {
		t.Fatal("expected fresh")
	}
	if payload.Fresh("jsonc", 100) {
		t.Fatal("dialect mismatch must not be fresh")
	}
	if payload.Fresh("yaml", 99) {
		t.Fatal("size mismatch must not be fresh")
	}

	stale := *payload
	stale.Schema = 0
	if stale.Fresh("yaml", 100) {
		t.Fatal("old schema must not be fresh")
	}

	var nilPayload *fmtcache.Payload
	if nilPayload.Fresh("yaml", 100) {
		t.Fatal("nil payload must not be fresh")
	}
}
