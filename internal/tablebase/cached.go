package tablebase

import (
	"sync"

	"github.com/hailam/tbprobe/internal/board"
	"github.com/hailam/tbprobe/internal/storage"
)

// CachedProber wraps another prober with an in-memory cache and an
// optional persistent one. This keeps repeat probes off the network.
type CachedProber struct {
	inner   Prober
	disk    *storage.Cache // nil when persistence is disabled
	cache   map[uint64]ProbeResult
	mu      sync.RWMutex
	maxSize int
	hits    uint64
	misses  uint64
}

// NewCachedProber creates a cached prober wrapping the given prober.
// disk may be nil.
func NewCachedProber(inner Prober, cacheSize int, disk *storage.Cache) *CachedProber {
	return &CachedProber{
		inner:   inner,
		disk:    disk,
		cache:   make(map[uint64]ProbeResult, cacheSize),
		maxSize: cacheSize,
	}
}

func (cp *CachedProber) Probe(pos *board.Position) ProbeResult {
	key := pos.Key()

	cp.mu.RLock()
	result, ok := cp.cache[key]
	cp.mu.RUnlock()
	if ok {
		cp.mu.Lock()
		cp.hits++
		cp.mu.Unlock()
		return result
	}

	if cp.disk != nil {
		if entry, found, err := cp.disk.Get(key); err == nil && found {
			result = ProbeResult{Found: entry.Found, WDL: WDL(entry.WDL), DTZ: entry.DTZ}
			cp.remember(key, result)
			return result
		}
	}

	result = cp.inner.Probe(pos)
	cp.remember(key, result)
	if cp.disk != nil && result.Found {
		// Disk write failures only cost us a future re-probe.
		_ = cp.disk.Put(key, storage.Entry{Found: true, WDL: int(result.WDL), DTZ: result.DTZ})
	}
	return result
}

func (cp *CachedProber) remember(key uint64, result ProbeResult) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	cp.misses++
	if len(cp.cache) >= cp.maxSize {
		// Simple eviction: clear half the cache.
		i := 0
		for k := range cp.cache {
			if i >= cp.maxSize/2 {
				break
			}
			delete(cp.cache, k)
			i++
		}
	}
	cp.cache[key] = result
}

func (cp *CachedProber) ProbeRoot(pos *board.Position) RootResult {
	// Root probing is not cached: it is rare and carries move lists.
	return cp.inner.ProbeRoot(pos)
}

func (cp *CachedProber) MaxPieces() int {
	return cp.inner.MaxPieces()
}

func (cp *CachedProber) Available() bool {
	return cp.inner.Available()
}

// HitRate returns the cache hit rate as a percentage.
func (cp *CachedProber) HitRate() float64 {
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	total := cp.hits + cp.misses
	if total == 0 {
		return 0
	}
	return float64(cp.hits) / float64(total) * 100
}

// CacheSize returns the current number of in-memory entries.
func (cp *CachedProber) CacheSize() int {
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	return len(cp.cache)
}

// Clear clears the in-memory cache and counters. The disk cache keeps its
// entries.
func (cp *CachedProber) Clear() {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	cp.cache = make(map[uint64]ProbeResult, cp.maxSize)
	cp.hits = 0
	cp.misses = 0
}

// Close releases the persistent cache, if any.
func (cp *CachedProber) Close() error {
	if cp.disk != nil {
		return cp.disk.Close()
	}
	return nil
}
