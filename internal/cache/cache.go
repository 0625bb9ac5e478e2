// Package cache holds rendered scouting responses keyed by store revision.
//
// A local write bumps the revision, so entries built from older records are
// never looked up again. Purge empties the cache when another instance
// announces a write.
package cache

import (
	"crypto/md5"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Lifetimes per response family. Revision keys already handle staleness; the
// TTL only bounds memory for revisions nobody asks for anymore.
const (
	TTLPoints  = 24 * time.Hour   // point table, fixed for the process lifetime
	TTLBoard   = 10 * time.Minute // leaderboard, team detail, compare, team index
	TTLRecords = 1 * time.Minute  // raw record listings
)

type entry struct {
	data      []byte
	etag      string
	expiresAt time.Time
}

// Cache maps revision keys to encoded JSON bodies and their ETags.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	enabled bool
	purges  int
}

// New returns a cache. A disabled cache stores nothing but still computes
// ETags, so conditional requests keep working with CACHE_ENABLED=false.
func New(enabled bool) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		enabled: enabled,
	}
	if enabled {
		go c.evictLoop()
	}
	return c
}

// Key builds a cache key such as "teams:42:avgTotalPoints:desc:false:".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Get returns the body and ETag stored under key, unless missing or expired.
func (c *Cache) Get(key string) (data []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.entries[key]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, "", false
	}
	return e.data, e.etag, true
}

// Set stores an encoded body for ttl and returns its ETag.
func (c *Cache) Set(key string, data []byte, ttl time.Duration) string {
	etag := ComputeETag(data)
	if !c.enabled {
		return etag
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		data:      data,
		etag:      etag,
		expiresAt: time.Now().Add(ttl),
	}
	return etag
}

// Purge drops every entry and returns how many there were. The records
// listener calls it when a newer revision is announced.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	c.purges++
	return n
}

// Stats reports entry counts and purges for the health endpoint.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := 0
	now := time.Now()
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			active++
		}
	}
	return map[string]interface{}{
		"enabled":      c.enabled,
		"total_keys":   len(c.entries),
		"active_keys":  active,
		"expired_keys": len(c.entries) - active,
		"purges":       c.purges,
	}
}

// evictLoop sweeps expired entries every five minutes.
func (c *Cache) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		c.evict()
	}
}

func (c *Cache) evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// ComputeETag returns a weak ETag derived from the body's MD5 digest.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch reports whether an If-None-Match header matches etag.
// The header may list several tags separated by commas.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
