package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

const cachedBulletin = "Vilnius, Lithuania (EYVI) 54-38N 025-06E 156M\n" +
	"Aug 29, 2026 - 10:30 AM EDT / 2026.08.29 1430 UTC\n" +
	"Temperature: 68 F (20 C)\n"

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCachePutGet(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2026, 8, 29, 14, 45, 0, 0, time.UTC)))
	defer SetClock(nil)

	c := openTestCache(t)

	if err := c.Put("EYVI", cachedBulletin); err != nil {
		t.Fatalf("Put: %v", err)
	}

	report, ok, err := c.Get("EYVI")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get: fresh report not returned")
	}
	if report != cachedBulletin {
		t.Errorf("Get = %q, want cached bulletin", report)
	}
}

func TestCacheMiss(t *testing.T) {
	c := openTestCache(t)

	_, ok, err := c.Get("KJFK")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get: hit for station never stored")
	}
}

func TestCacheExpiry(t *testing.T) {
	// Observation at 14:30 UTC; the entry goes stale 65 minutes later.
	fake := clockwork.NewFakeClockAt(time.Date(2026, 8, 29, 14, 45, 0, 0, time.UTC))
	SetClock(fake)
	defer SetClock(nil)

	c := openTestCache(t)

	if err := c.Put("EYVI", cachedBulletin); err != nil {
		t.Fatalf("Put: %v", err)
	}

	fake.Advance(45 * time.Minute)
	if _, ok, _ := c.Get("EYVI"); !ok {
		t.Error("Get at +60m from observation: want fresh")
	}

	fake.Advance(10 * time.Minute)
	if _, ok, _ := c.Get("EYVI"); ok {
		t.Error("Get at +70m from observation: want stale")
	}
}

func TestCacheFreshnessUsesObservationTime(t *testing.T) {
	// Fetching an already-old bulletin must not reset its freshness.
	fake := clockwork.NewFakeClockAt(time.Date(2026, 8, 29, 16, 0, 0, 0, time.UTC))
	SetClock(fake)
	defer SetClock(nil)

	c := openTestCache(t)

	if err := c.Put("EYVI", cachedBulletin); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, _ := c.Get("EYVI"); ok {
		t.Error("Get: bulletin observed 90 minutes ago should be stale")
	}
}

func TestCachePurge(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2026, 8, 29, 14, 45, 0, 0, time.UTC)))
	defer SetClock(nil)

	c := openTestCache(t)

	if err := c.Put("EYVI", cachedBulletin); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Purge("EYVI"); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if _, ok, _ := c.Get("EYVI"); ok {
		t.Error("Get after Purge: want miss")
	}
}

func TestCachePutReplaces(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2026, 8, 29, 14, 45, 0, 0, time.UTC)))
	defer SetClock(nil)

	c := openTestCache(t)

	if err := c.Put("EYVI", "old bulletin"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Put("EYVI", cachedBulletin); err != nil {
		t.Fatalf("Put: %v", err)
	}

	report, ok, err := c.Get("EYVI")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if report != cachedBulletin {
		t.Errorf("Get = %q, want replaced bulletin", report)
	}
}
