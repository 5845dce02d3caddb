package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestSyntheticProviderCacheHit(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	cache := OpenFileCache(filepath.Join(t.TempDir(), "cache.json"), zap.NewNop())
	cache.now = func() time.Time { return now }

	gen := NewGenerator()
	gen.now = func() time.Time { return now }

	p := NewSyntheticProvider(gen, cache, zap.NewNop())

	first, err := p.GetJobs(ctx, "python, sql", "Remote", 10)
	if err != nil {
		t.Fatal(err)
	}

	// Within the window an identical query must return the cached list
	// unmodified, not a regenerated one.
	gen.now = func() time.Time { return now.Add(time.Hour) }
	second, err := p.GetJobs(ctx, "python, sql", "Remote", 10)
	if err != nil {
		t.Fatal(err)
	}

	if second.Len() != first.Len() {
		t.Fatalf("cached result has %d jobs, first had %d", second.Len(), first.Len())
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID {
			t.Fatalf("cached job %d differs: %s vs %s", i, first.Items[i].ID, second.Items[i].ID)
		}
	}
}

func TestSyntheticProviderRegeneratesAfterWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	cache := OpenFileCache(filepath.Join(t.TempDir(), "cache.json"), zap.NewNop())
	cache.now = func() time.Time { return now }

	gen := NewGenerator()
	gen.now = func() time.Time { return now }

	p := NewSyntheticProvider(gen, cache, zap.NewNop())

	first, err := p.GetJobs(ctx, "go", "", 10)
	if err != nil {
		t.Fatal(err)
	}

	later := now.Add(FreshnessWindow + time.Minute)
	cache.now = func() time.Time { return later }
	gen.now = func() time.Time { return later }

	second, err := p.GetJobs(ctx, "go", "", 10)
	if err != nil {
		t.Fatal(err)
	}

	if first.Items[0].ID == second.Items[0].ID {
		t.Fatalf("expected regenerated jobs after the freshness window")
	}

	if got := cache.entries[CacheKey("go", "")].Timestamp; got != later.Unix() {
		t.Fatalf("cache timestamp not updated: got %d, want %d", got, later.Unix())
	}
}

func TestSyntheticProviderNilCache(t *testing.T) {
	gen := NewGenerator()
	gen.now = func() time.Time { return time.Unix(1_700_000_000, 0) }

	p := NewSyntheticProvider(gen, nil, zap.NewNop())

	jobs, err := p.GetJobs(context.Background(), "python", "", 5)
	if err != nil {
		t.Fatal(err)
	}
	if jobs.Len() != 5 {
		t.Fatalf("expected 5 jobs, got %d", jobs.Len())
	}
}

func TestSyntheticProviderDistinctKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	cache := OpenFileCache(filepath.Join(t.TempDir(), "cache.json"), zap.NewNop())
	cache.now = func() time.Time { return now }

	gen := NewGenerator()
	gen.now = func() time.Time { return now }

	p := NewSyntheticProvider(gen, cache, zap.NewNop())

	if _, err := p.GetJobs(ctx, "python", "Remote", 10); err != nil {
		t.Fatal(err)
	}
	if _, err := p.GetJobs(ctx, "python", "Berlin", 10); err != nil {
		t.Fatal(err)
	}

	if len(cache.entries) != 2 {
		t.Fatalf("expected 2 cache entries, got %d", len(cache.entries))
	}
}
