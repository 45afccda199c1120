package server

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/yourusername/division-oracle/internal/metrics"
	"github.com/yourusername/division-oracle/internal/snapshot"
)

const snapshotKey = "snapshot"

// cachedSnapshot is a decoded snapshot together with the exact bytes on disk
type cachedSnapshot struct {
	raw  []byte
	snap *snapshot.Snapshot
}

// SnapshotCache keeps the published snapshot in memory for a TTL so requests do not re-read the file
type SnapshotCache struct {
	path  string
	cache *cache.Cache
	mu    sync.Mutex
	// onLoad is called after every successful read from disk
	onLoad func(path string, size int)
}

// NewSnapshotCache creates a cache over the snapshot file at path. A zero TTL re-reads on every request.
func NewSnapshotCache(path string, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = time.Nanosecond
	}
	return &SnapshotCache{
		path:  path,
		cache: cache.New(ttl, 0),
	}
}

// Get returns the raw and decoded snapshot, loading it from disk when absent or expired
func (c *SnapshotCache) Get() ([]byte, *snapshot.Snapshot, error) {
	if entry, ok := c.lookup(); ok {
		return entry.raw, entry.snap, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another request may have loaded it while we waited
	if entry, ok := c.lookup(); ok {
		return entry.raw, entry.snap, nil
	}
	metrics.RecordSnapshotCache(false)

	raw, snap, err := snapshot.ReadBytes(c.path)
	if err != nil {
		return nil, nil, err
	}
	c.cache.SetDefault(snapshotKey, &cachedSnapshot{raw: raw, snap: snap})
	if c.onLoad != nil {
		c.onLoad(c.path, len(raw))
	}
	return raw, snap, nil
}

func (c *SnapshotCache) lookup() (*cachedSnapshot, bool) {
	v, ok := c.cache.Get(snapshotKey)
	if !ok {
		return nil, false
	}
	metrics.RecordSnapshotCache(true)
	return v.(*cachedSnapshot), true
}

// Invalidate drops the cached snapshot
func (c *SnapshotCache) Invalidate() {
	c.cache.Delete(snapshotKey)
}

// Path returns the snapshot file the cache reads
func (c *SnapshotCache) Path() string {
	return c.path
}
