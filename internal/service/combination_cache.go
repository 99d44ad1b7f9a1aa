package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"team-draft/internal/draft"
)

type cacheEntry struct {
	combinations []draft.Pairing
	expires      time.Time
}

// combinationCache keeps ranked combinations per player set for a while, so
// stepping through rerolls does not recompute all splits each time.
// Concurrent misses for one key share a single computation.
type combinationCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
	group   singleflight.Group
}

func newCombinationCache(ttl time.Duration) *combinationCache {
	return &combinationCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached combinations for key or computes and stores them.
// The returned slice is shared and must not be modified.
func (c *combinationCache) Get(key string, compute func() ([]draft.Pairing, error)) ([]draft.Pairing, bool, error) {
	if combinations, ok := c.lookup(key); ok {
		return combinations, true, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// another flight may have filled the entry since the lookup above
		if combinations, ok := c.lookup(key); ok {
			return combinations, nil
		}
		combinations, err := compute()
		if err != nil {
			return nil, err
		}
		c.set(key, combinations)
		return combinations, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]draft.Pairing), false, nil
}

func (c *combinationCache) lookup(key string) ([]draft.Pairing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return e.combinations, true
}

func (c *combinationCache) set(key string, combinations []draft.Pairing) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{combinations: combinations, expires: now.Add(c.ttl)}
}

func (c *combinationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// fingerprint identifies a player set together with everything a cached
// pairing carries, so any score, lane, name or game id change yields a new key.
func fingerprint(players []draft.Player) string {
	sorted := make([]draft.Player, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var b strings.Builder
	for _, p := range sorted {
		fmt.Fprintf(&b, "%d:%d:%s:%s:%q:%q;", p.ID, p.Score, p.MainLane, p.SubLane, p.Name, p.GameID)
	}
	return b.String()
}
