package cache

import (
	"container/list"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

// Pinner keeps snapshots alive while cache entries reference them.
// The snapshot ledger implements it.
type Pinner interface {
	Pin(id core.ID)
	Unpin(id core.ID)
}

// Payload is the content stored under one cache key. Search entries carry
// Results and Related; detail entries carry Detail plus the optional Summary
// and Graph. Domains may be left nil to derive it from the payload.
type Payload struct {
	Results      []core.SearchResult
	Related      []string
	Detail       *core.PageDetail
	Summary      *core.Summary
	Graph        *core.KnowledgeGraph
	Domains      []string
	SnapshotRefs []core.ID
}

// Lookup is the outcome of a cache probe. A partial hit carries the
// still-fresh result slots plus the indices of the stale ones; the caller
// re-fetches the stale slots and merges them back with MergePartial.
type Lookup struct {
	Hit          bool
	Partial      bool
	Results      []core.SearchResult
	Related      []string
	Detail       *core.PageDetail
	Summary      *core.Summary
	Graph        *core.KnowledgeGraph
	SnapshotRefs []core.ID
	StaleSlots   []int
}

const (
	defaultCapacity = 256
	defaultGrace    = 5 * time.Minute
)

// Cache is an intent-aware result cache with domain-level invalidation.
// All operations are safe for concurrent use and never fail the caller;
// write-through faults are logged and absorbed.
type Cache struct {
	mu       sync.RWMutex
	entries  map[core.CacheKey]*list.Element
	order    *list.List // *core.CacheEntry values, oldest store first
	policy   Policy
	capacity int
	grace    time.Duration
	pinner   Pinner
	repo     storage.CacheRepository
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Cache.
type Option func(*Cache) error

// WithPolicy sets the TTL policy table.
// Default is DefaultPolicy().
func WithPolicy(policy Policy) Option {
	return func(c *Cache) error {
		if policy == nil {
			policy = DefaultPolicy()
		}
		c.policy = policy
		return nil
	}
}

// WithCapacity bounds the number of resident entries.
// Default is 256, with a minimum of 1.
func WithCapacity(capacity int) Option {
	return func(c *Cache) error {
		if capacity < 1 {
			capacity = 1
		}
		c.capacity = capacity
		return nil
	}
}

// WithGrace sets how long an expired entry may linger before the sweep
// removes it. Default is 5 minutes.
func WithGrace(grace time.Duration) Option {
	return func(c *Cache) error {
		if grace < 0 {
			grace = 0
		}
		c.grace = grace
		return nil
	}
}

// WithPinner registers the snapshot pinner consulted on store and eviction.
func WithPinner(pinner Pinner) Option {
	return func(c *Cache) error {
		c.pinner = pinner
		return nil
	}
}

// WithRepository attaches a write-through repository. Entries are reloaded
// from it at construction time; already-expired entries are never
// resurrected.
func WithRepository(repo storage.CacheRepository) Option {
	return func(c *Cache) error {
		c.repo = repo
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates a cache. When a repository is attached, persisted entries are
// reloaded and their snapshot refs re-pinned before the cache is returned.
func New(opts ...Option) (*Cache, error) {
	c := &Cache{
		entries:  make(map[core.CacheKey]*list.Element),
		order:    list.New(),
		policy:   DefaultPolicy(),
		capacity: defaultCapacity,
		grace:    defaultGrace,
		logger:   slog.Default(),
		now:      time.Now,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.repo != nil {
		if err := c.restore(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRestoreFailed, err)
		}
	}

	return c, nil
}

// restore reloads persisted entries, dropping any that expired while the
// process was down. Runs before the cache is shared, so no lock is held.
func (c *Cache) restore() error {
	persisted, err := c.repo.ListEntries(context.Background())
	if err != nil {
		return err
	}

	now := c.now()
	live := make([]*core.CacheEntry, 0, len(persisted))
	var dead []core.CacheKey
	for _, entry := range persisted {
		if now.Sub(entry.CreatedAt) > entry.TTL {
			dead = append(dead, entry.Key)
			continue
		}
		live = append(live, entry)
	}

	// Rebuild store order oldest first
	sort.Slice(live, func(i, j int) bool { return live[i].CreatedAt.Before(live[j].CreatedAt) })
	for _, entry := range live {
		c.pin(entry.SnapshotRefs)
		c.entries[entry.Key] = c.order.PushBack(entry)
	}

	dead = append(dead, c.enforceCapacityLocked()...)
	c.deleteFromRepo(dead)
	return nil
}

// Lookup probes the cache. Expired entries miss; entries whose domains have
// all been invalidated miss; entries with a mix of stale and fresh slots
// return a partial hit. A stale slot is never served as fresh.
func (c *Cache) Lookup(key core.CacheKey) Lookup {
	c.mu.RLock()
	defer c.mu.RUnlock()

	elem, ok := c.entries[key]
	if !ok {
		return Lookup{}
	}
	entry, ok := elem.Value.(*core.CacheEntry)
	if !ok || entry == nil {
		c.logger.Error("cache degraded: corrupt entry", "key", key.String())
		return Lookup{}
	}
	if c.now().Sub(entry.CreatedAt) > entry.TTL {
		return Lookup{}
	}

	if len(entry.StaleDomains) == 0 {
		return Lookup{
			Hit:          true,
			Results:      append([]core.SearchResult(nil), entry.Results...),
			Related:      append([]string(nil), entry.Related...),
			Detail:       entry.Detail,
			Summary:      entry.Summary,
			Graph:        entry.Graph,
			SnapshotRefs: append([]core.ID(nil), entry.SnapshotRefs...),
		}
	}

	// Detail entries have no per-slot granularity: any staleness misses.
	if len(entry.Results) == 0 {
		return Lookup{}
	}

	stale := make(map[string]bool, len(entry.StaleDomains))
	for _, d := range entry.StaleDomains {
		stale[d] = true
	}

	fresh := make([]core.SearchResult, 0, len(entry.Results))
	var staleSlots []int
	for i, r := range entry.Results {
		if stale[strings.ToLower(r.Domain)] {
			staleSlots = append(staleSlots, i)
			continue
		}
		fresh = append(fresh, r)
	}

	if len(staleSlots) == 0 {
		return Lookup{
			Hit:          true,
			Results:      fresh,
			Related:      append([]string(nil), entry.Related...),
			Detail:       entry.Detail,
			Summary:      entry.Summary,
			Graph:        entry.Graph,
			SnapshotRefs: append([]core.ID(nil), entry.SnapshotRefs...),
		}
	}
	if len(fresh) == 0 {
		return Lookup{}
	}

	return Lookup{
		Hit:        true,
		Partial:    true,
		Results:    fresh,
		Related:    append([]string(nil), entry.Related...),
		StaleSlots: staleSlots,
	}
}

// Store creates or replaces the entry under key. The lifetime comes from the
// policy by intent. Snapshot refs of the new payload are pinned and those of
// any replaced entry unpinned.
func (c *Cache) Store(key core.CacheKey, payload Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &core.CacheEntry{
		Key:          key,
		Results:      payload.Results,
		Related:      payload.Related,
		Detail:       payload.Detail,
		Summary:      payload.Summary,
		Graph:        payload.Graph,
		Domains:      payload.domains(),
		SnapshotRefs: payload.SnapshotRefs,
		CreatedAt:    c.now().UTC(),
		TTL:          c.policy.TTL(key.Intent),
	}

	// Pin the new refs before releasing the old ones so shared snapshots
	// never drop to a zero refcount in between.
	c.pin(entry.SnapshotRefs)
	if elem, ok := c.entries[key]; ok {
		old := elem.Value.(*core.CacheEntry)
		c.unpin(old.SnapshotRefs)
		c.order.Remove(elem)
	}
	c.entries[key] = c.order.PushBack(entry)

	evicted := c.enforceCapacityLocked()
	c.persist(entry)
	c.deleteFromRepo(evicted)
}

// AttachSummary sets the summary of an existing entry without refreshing its
// lifetime. Reports whether the entry was present.
func (c *Cache) AttachSummary(key core.CacheKey, summary *core.Summary) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return false
	}

	old := elem.Value.(*core.CacheEntry)
	updated := *old
	updated.Summary = summary
	elem.Value = &updated

	c.persist(&updated)
	return true
}

// MergePartial combines the still-fresh slots of an entry with freshly
// fetched replacements for the stale ones, keyed by slot index. The merged
// entry gets a fresh lifetime and cleared staleness. Returns the merged
// results in rank order, or false when the entry is gone.
func (c *Cache) MergePartial(key core.CacheKey, replacements map[int]core.SearchResult) ([]core.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	old := elem.Value.(*core.CacheEntry)
	if len(old.Results) == 0 {
		return nil, false
	}

	merged := append([]core.SearchResult(nil), old.Results...)
	for slot, result := range replacements {
		if slot < 0 || slot >= len(merged) {
			c.logger.Debug("dropping out-of-range replacement slot", "slot", slot, "key", key.String())
			continue
		}
		result.Rank = slot + 1
		merged[slot] = result
	}

	raw := make([]string, 0, len(merged))
	for _, r := range merged {
		raw = append(raw, r.Domain)
	}

	entry := &core.CacheEntry{
		Key:          old.Key,
		Results:      merged,
		Related:      old.Related,
		Detail:       old.Detail,
		Summary:      old.Summary,
		Graph:        old.Graph,
		Domains:      normalizeDomains(raw),
		SnapshotRefs: old.SnapshotRefs,
		CreatedAt:    c.now().UTC(),
		TTL:          c.policy.TTL(old.Key.Intent),
	}

	c.order.Remove(elem)
	c.entries[key] = c.order.PushBack(entry)
	c.persist(entry)

	return append([]core.SearchResult(nil), merged...), true
}

// InvalidateDomain marks every entry touching the domain as stale without
// deleting anything. Matching is a case-insensitive substring test against
// each entry's registered domains. Returns the number of entries touched.
func (c *Cache) InvalidateDomain(domain string) int {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	touched := 0
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*core.CacheEntry)

		stale := make(map[string]bool, len(entry.StaleDomains))
		for _, d := range entry.StaleDomains {
			stale[d] = true
		}

		changed := false
		for _, d := range entry.Domains {
			if strings.Contains(d, domain) && !stale[d] {
				entry.StaleDomains = append(entry.StaleDomains, d)
				stale[d] = true
				changed = true
			}
		}
		if changed {
			touched++
			c.persist(entry)
		}
	}
	return touched
}

// EvictExpired removes entries expired beyond the grace window, unpinning
// their snapshot refs, and enforces the capacity bound. Returns the number
// of entries removed.
func (c *Cache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var removed []core.CacheKey
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		entry := elem.Value.(*core.CacheEntry)
		if now.Sub(entry.CreatedAt) > entry.TTL+c.grace {
			c.order.Remove(elem)
			delete(c.entries, entry.Key)
			c.unpin(entry.SnapshotRefs)
			removed = append(removed, entry.Key)
		}
		elem = next
	}

	removed = append(removed, c.enforceCapacityLocked()...)
	c.deleteFromRepo(removed)
	return len(removed)
}

// Len reports the number of resident entries, stale ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

// enforceCapacityLocked evicts least-recently-stored entries until the
// capacity bound holds. Caller holds the write lock.
func (c *Cache) enforceCapacityLocked() []core.CacheKey {
	var evicted []core.CacheKey
	for c.order.Len() > c.capacity {
		elem := c.order.Front()
		entry := elem.Value.(*core.CacheEntry)
		c.order.Remove(elem)
		delete(c.entries, entry.Key)
		c.unpin(entry.SnapshotRefs)
		evicted = append(evicted, entry.Key)
	}
	return evicted
}

func (c *Cache) persist(entry *core.CacheEntry) {
	if c.repo == nil {
		return
	}
	if err := c.repo.PutEntry(context.Background(), entry); err != nil {
		c.logger.Warn("cache write-through failed", "key", entry.Key.String(), "err", err)
	}
}

func (c *Cache) deleteFromRepo(keys []core.CacheKey) {
	if c.repo == nil || len(keys) == 0 {
		return
	}
	if err := c.repo.DeleteEntries(context.Background(), keys...); err != nil {
		c.logger.Warn("cache eviction write-through failed", "count", len(keys), "err", err)
	}
}

func (c *Cache) pin(ids []core.ID) {
	if c.pinner == nil {
		return
	}
	for _, id := range ids {
		c.pinner.Pin(id)
	}
}

func (c *Cache) unpin(ids []core.ID) {
	if c.pinner == nil {
		return
	}
	for _, id := range ids {
		c.pinner.Unpin(id)
	}
}

// domains resolves the domain set of a payload: the explicit list when
// given, otherwise the domains referenced by its results and detail.
func (p Payload) domains() []string {
	if p.Domains != nil {
		return normalizeDomains(p.Domains)
	}
	raw := make([]string, 0, len(p.Results)+1)
	for _, r := range p.Results {
		raw = append(raw, r.Domain)
	}
	if p.Detail != nil {
		raw = append(raw, p.Detail.Domain)
	}
	return normalizeDomains(raw)
}

func normalizeDomains(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, d := range in {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
