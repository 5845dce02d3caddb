package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akorchagin/career-matcher/internal/job"
)

// FreshnessWindow is how long a cached search result stays valid.
const FreshnessWindow = 24 * time.Hour

// CachedSearch is one cache entry: the jobs produced for a search key and
// the moment they were generated, as epoch seconds.
type CachedSearch struct {
	Timestamp int64      `json:"timestamp"`
	Jobs      []*job.Job `json:"jobs"`
}

// CacheStore keeps search results across runs. Lookup returns only fresh
// entries; stale ones are ignored and overwritten by the next Store for the
// same key.
type CacheStore interface {
	Lookup(ctx context.Context, key string) ([]*job.Job, bool)
	Store(ctx context.Context, key string, jobs []*job.Job) error
	Close() error
}

// CacheKey normalizes a (skills, location) pair into a cache key.
func CacheKey(skillsText, location string) string {
	key := fmt.Sprintf("%s_%s", skillsText, location)
	return strings.ReplaceAll(strings.ToLower(key), " ", "_")
}

// FileCache persists all entries as a single JSON document, loaded at open
// and rewritten wholesale on every store. Entries are never evicted.
type FileCache struct {
	path    string
	entries map[string]*CachedSearch
	logger  *zap.Logger
	now     func() time.Time
}

// OpenFileCache loads the cache document at path. A missing file starts an
// empty cache; an unreadable one is logged and replaced by an empty cache on
// the next flush.
func OpenFileCache(path string, logger *zap.Logger) *FileCache {
	c := &FileCache{
		path:    path,
		entries: make(map[string]*CachedSearch),
		logger:  logger,
		now:     time.Now,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c
	}
	if err == nil {
		err = json.Unmarshal(data, &c.entries)
	}
	if err != nil {
		logger.Warn("starting with an empty job cache", zap.String("path", path), zap.Error(err))
		c.entries = make(map[string]*CachedSearch)
	}

	return c
}

func (c *FileCache) Lookup(_ context.Context, key string) ([]*job.Job, bool) {
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	age := c.now().Unix() - entry.Timestamp
	if age < 0 || age >= int64(FreshnessWindow.Seconds()) {
		return nil, false
	}
	return entry.Jobs, true
}

func (c *FileCache) Store(_ context.Context, key string, jobs []*job.Job) error {
	c.entries[key] = &CachedSearch{
		Timestamp: c.now().Unix(),
		Jobs:      jobs,
	}
	return c.flush()
}

// flush rewrites the whole document. The temp file plus rename keeps a
// concurrent reader from seeing a partial write.
func (c *FileCache) flush() error {
	data, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("encoding job cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".job-cache-*")
	if err != nil {
		return fmt.Errorf("writing job cache: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing job cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing job cache: %w", err)
	}

	return os.Rename(tmp.Name(), c.path)
}

func (c *FileCache) Close() error {
	return c.flush()
}
