package domain

import (
	"sort"
	"time"
)

// CacheEntry describes one stored result payload.
type CacheEntry struct {
	JobID     string    `json:"job_id"`
	Name      string    `json:"name"`
	WrittenAt time.Time `json:"written_at"`
	Size      int64     `json:"size"`
}

// EvictionPolicy selects the entries a prune run removes.
type EvictionPolicy interface {
	// Evict returns the subset of entries to delete.
	Evict(entries []CacheEntry, now time.Time) []CacheEntry
}

// KeepAll never evicts anything.
type KeepAll struct{}

// Evict implements EvictionPolicy.
func (KeepAll) Evict([]CacheEntry, time.Time) []CacheEntry {
	return nil
}

// MaxAge evicts entries written longer ago than the configured age.
type MaxAge time.Duration

// Evict implements EvictionPolicy.
func (a MaxAge) Evict(entries []CacheEntry, now time.Time) []CacheEntry {
	if a <= 0 {
		return nil
	}
	cutoff := now.Add(-time.Duration(a))
	var out []CacheEntry
	for _, e := range entries {
		if e.WrittenAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// MaxEntries keeps only the newest entries across the whole cache.
type MaxEntries int

// Evict implements EvictionPolicy.
func (n MaxEntries) Evict(entries []CacheEntry, _ time.Time) []CacheEntry {
	if n <= 0 || len(entries) <= int(n) {
		return nil
	}
	sorted := make([]CacheEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WrittenAt.After(sorted[j].WrittenAt)
	})
	return sorted[n:]
}

// Chain evicts the union of what its policies evict.
type Chain []EvictionPolicy

// Evict implements EvictionPolicy.
func (c Chain) Evict(entries []CacheEntry, now time.Time) []CacheEntry {
	seen := make(map[string]struct{})
	var out []CacheEntry
	for _, p := range c {
		for _, e := range p.Evict(entries, now) {
			key := e.JobID + "/" + e.Name
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

// PolicyFromConfig builds the eviction policy described by the cache config.
func PolicyFromConfig(cfg CacheConfig) EvictionPolicy {
	var chain Chain
	if cfg.MaxAge > 0 {
		chain = append(chain, MaxAge(cfg.MaxAge))
	}
	if cfg.MaxEntries > 0 {
		chain = append(chain, MaxEntries(cfg.MaxEntries))
	}
	if len(chain) == 0 {
		return KeepAll{}
	}
	return chain
}
