package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
	storagebadger "github.com/poiesic/scout/storage/badger"
)

// recordingPinner tracks pin refcounts for eviction assertions.
type recordingPinner struct {
	mu     sync.Mutex
	counts map[core.ID]int
}

func newRecordingPinner() *recordingPinner {
	return &recordingPinner{counts: make(map[core.ID]int)}
}

func (p *recordingPinner) Pin(id core.ID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[id]++
}

func (p *recordingPinner) Unpin(id core.ID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[id]--
}

func (p *recordingPinner) count(id core.ID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[id]
}

func testKey(query string, intent core.Intent) core.CacheKey {
	return core.CacheKey{NormalizedQuery: query, Page: 1, Count: 10, Intent: intent}
}

func testResults() []core.SearchResult {
	return []core.SearchResult{
		{Rank: 1, Title: "Go generics", URL: "https://go.dev/doc", Domain: "go.dev"},
		{Rank: 2, Title: "Generics tutorial", URL: "https://example.com/t", Domain: "example.com"},
		{Rank: 3, Title: "Generics deep dive", URL: "https://go.dev/blog", Domain: "go.dev"},
	}
}

func TestPolicyTTL(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 15*time.Minute, p.TTL(core.IntentNews))
	assert.Equal(t, 30*time.Minute, p.TTL(core.IntentFinance))
	assert.Equal(t, time.Hour, p.TTL(core.IntentGeneral))
	assert.Equal(t, time.Hour, p.TTL(core.IntentShopping))
	assert.Equal(t, time.Hour, p.TTL(core.IntentLocal))
	assert.Equal(t, 24*time.Hour, p.TTL(core.IntentTechnical))
	assert.Equal(t, 24*time.Hour, p.TTL(core.IntentAcademic))

	// Unknown intents fall back to general, then to the built-in default
	assert.Equal(t, time.Hour, p.TTL(core.Intent(99)))
	custom := Policy{core.IntentNews: time.Minute}
	assert.Equal(t, time.Minute, custom.TTL(core.IntentNews))
	assert.Equal(t, fallbackTTL, custom.TTL(core.IntentGeneral))
}

func TestLookup_Miss(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	probe := c.Lookup(testKey("never stored", core.IntentGeneral))
	assert.False(t, probe.Hit)
}

func TestStoreAndLookup_FullHit(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	key := testKey("golang generics", core.IntentTechnical)
	c.Store(key, Payload{
		Results:      testResults(),
		Related:      []string{"go 1.25 generics"},
		SnapshotRefs: []core.ID{11},
	})

	probe := c.Lookup(key)
	assert.True(t, probe.Hit)
	assert.False(t, probe.Partial)
	require.Len(t, probe.Results, 3)
	assert.Equal(t, "go.dev", probe.Results[0].Domain)
	assert.Equal(t, []string{"go 1.25 generics"}, probe.Related)
	assert.Equal(t, []core.ID{11}, probe.SnapshotRefs)
	assert.Empty(t, probe.StaleSlots)
}

func TestLookup_Expired(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	current := time.Now().UTC()
	c.now = func() time.Time { return current }

	key := testKey("market update", core.IntentNews)
	c.Store(key, Payload{Results: testResults()})
	assert.True(t, c.Lookup(key).Hit)

	current = current.Add(16 * time.Minute)
	assert.False(t, c.Lookup(key).Hit, "news entries expire after 15 minutes")
}

func TestInvalidateDomain_MarksNotDeletes(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	key := testKey("solo result", core.IntentGeneral)
	c.Store(key, Payload{Results: []core.SearchResult{
		{Rank: 1, Title: "Solo", URL: "https://News.Example.COM/a", Domain: "News.Example.COM"},
	}})

	assert.Equal(t, 1, c.InvalidateDomain("example"), "substring match is case-insensitive")
	assert.Equal(t, 0, c.InvalidateDomain("example"), "already-stale domains are not re-counted")
	assert.Equal(t, 0, c.InvalidateDomain("unrelated.net"))
	assert.Equal(t, 0, c.InvalidateDomain("  "))

	// All slots stale means a miss, but the entry is kept resident
	assert.False(t, c.Lookup(key).Hit)
	assert.Equal(t, 1, c.Len())
}

func TestLookup_PartialHit(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	key := testKey("golang generics", core.IntentTechnical)
	c.Store(key, Payload{Results: testResults(), Related: []string{"go type parameters"}})

	assert.Equal(t, 1, c.InvalidateDomain("example.com"))

	probe := c.Lookup(key)
	assert.True(t, probe.Hit)
	assert.True(t, probe.Partial)
	assert.Equal(t, []int{1}, probe.StaleSlots)
	require.Len(t, probe.Results, 2)
	assert.Equal(t, 1, probe.Results[0].Rank)
	assert.Equal(t, 3, probe.Results[1].Rank)
	assert.Equal(t, []string{"go type parameters"}, probe.Related)
}

func TestMergePartial(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	key := testKey("golang generics", core.IntentTechnical)
	c.Store(key, Payload{Results: testResults()})
	c.InvalidateDomain("example.com")

	replacement := core.SearchResult{Rank: 9, Title: "Fresh", URL: "https://fresh.io/x", Domain: "fresh.io"}
	merged, ok := c.MergePartial(key, map[int]core.SearchResult{1: replacement})
	require.True(t, ok)
	require.Len(t, merged, 3)
	assert.Equal(t, "fresh.io", merged[1].Domain)
	assert.Equal(t, 2, merged[1].Rank, "replacements take the rank of their slot")
	assert.Equal(t, "go.dev", merged[0].Domain)

	// Staleness cleared: the next probe is a full hit
	probe := c.Lookup(key)
	assert.True(t, probe.Hit)
	assert.False(t, probe.Partial)
	require.Len(t, probe.Results, 3)

	// The merged entry registers the replacement's domain
	assert.Equal(t, 1, c.InvalidateDomain("fresh.io"))
	assert.Equal(t, 0, c.InvalidateDomain("example.com"), "replaced domain no longer registered")
}

func TestMergePartial_RefreshesLifetime(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	current := time.Now().UTC()
	c.now = func() time.Time { return current }

	key := testKey("latest headlines", core.IntentNews)
	c.Store(key, Payload{Results: testResults()})
	c.InvalidateDomain("example.com")

	current = current.Add(10 * time.Minute)
	_, ok := c.MergePartial(key, map[int]core.SearchResult{
		1: {Title: "Replacement", URL: "https://other.org/n", Domain: "other.org"},
	})
	require.True(t, ok)

	// 10 more minutes would have expired the original store
	current = current.Add(10 * time.Minute)
	assert.True(t, c.Lookup(key).Hit)
}

func TestMergePartial_MissingKey(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	merged, ok := c.MergePartial(testKey("gone", core.IntentGeneral), map[int]core.SearchResult{0: {}})
	assert.False(t, ok)
	assert.Nil(t, merged)
}

func TestAttachSummary(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	key := core.CacheKey{NormalizedQuery: "https://go.dev/doc", Page: 1, Count: 1, Intent: core.IntentTechnical}
	c.Store(key, Payload{Detail: &core.PageDetail{URL: "https://go.dev/doc", Domain: "go.dev", ContentSnippet: "Documentation."}})

	created := c.entries[key].Value.(*core.CacheEntry).CreatedAt

	ok := c.AttachSummary(key, &core.Summary{URL: "https://go.dev/doc", Text: "Docs overview.", Limit: 300})
	require.True(t, ok)

	probe := c.Lookup(key)
	assert.True(t, probe.Hit)
	require.NotNil(t, probe.Summary)
	assert.Equal(t, 300, probe.Summary.Limit)
	require.NotNil(t, probe.Detail)

	// Attaching a summary does not refresh the entry's lifetime
	assert.True(t, c.entries[key].Value.(*core.CacheEntry).CreatedAt.Equal(created))

	assert.False(t, c.AttachSummary(testKey("missing", core.IntentGeneral), &core.Summary{}))
}

func TestStore_CapacityEvictsOldest(t *testing.T) {
	pinner := newRecordingPinner()
	c, err := New(WithCapacity(2), WithPinner(pinner))
	require.NoError(t, err)

	k1 := testKey("first", core.IntentGeneral)
	k2 := testKey("second", core.IntentGeneral)
	k3 := testKey("third", core.IntentGeneral)

	c.Store(k1, Payload{Results: testResults()[:1], SnapshotRefs: []core.ID{1}})
	c.Store(k2, Payload{Results: testResults()[:1], SnapshotRefs: []core.ID{2}})
	c.Store(k3, Payload{Results: testResults()[:1], SnapshotRefs: []core.ID{3}})

	assert.Equal(t, 2, c.Len())
	assert.False(t, c.Lookup(k1).Hit, "least-recently-stored entry is evicted")
	assert.True(t, c.Lookup(k2).Hit)
	assert.True(t, c.Lookup(k3).Hit)

	assert.Equal(t, 0, pinner.count(1), "evicted entry releases its snapshot refs")
	assert.Equal(t, 1, pinner.count(2))
	assert.Equal(t, 1, pinner.count(3))
}

func TestStore_ReplaceSwapsPins(t *testing.T) {
	pinner := newRecordingPinner()
	c, err := New(WithPinner(pinner))
	require.NoError(t, err)

	key := testKey("refreshed", core.IntentGeneral)
	c.Store(key, Payload{Results: testResults()[:1], SnapshotRefs: []core.ID{7, 8}})
	c.Store(key, Payload{Results: testResults()[:1], SnapshotRefs: []core.ID{8, 9}})

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, pinner.count(7))
	assert.Equal(t, 1, pinner.count(8), "refs shared across store generations keep a single pin")
	assert.Equal(t, 1, pinner.count(9))
}

func TestEvictExpired_GraceWindow(t *testing.T) {
	pinner := newRecordingPinner()
	c, err := New(WithPinner(pinner))
	require.NoError(t, err)

	current := time.Now().UTC()
	c.now = func() time.Time { return current }

	key := testKey("breaking story", core.IntentNews)
	c.Store(key, Payload{Results: testResults()[:1], SnapshotRefs: []core.ID{5}})

	// Expired for lookups but still inside the 5 minute grace window
	current = current.Add(17 * time.Minute)
	assert.False(t, c.Lookup(key).Hit)
	assert.Equal(t, 0, c.EvictExpired())
	assert.Equal(t, 1, c.Len())

	current = current.Add(4 * time.Minute)
	assert.Equal(t, 1, c.EvictExpired())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, pinner.count(5))
}

func TestWriteThroughPersistence(t *testing.T) {
	_, cacheRepo, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		cacheRepo.Close()
		backend.Close()
	}()

	c, err := New(WithRepository(cacheRepo))
	require.NoError(t, err)

	ctx := context.Background()
	key := testKey("golang generics", core.IntentTechnical)
	c.Store(key, Payload{Results: testResults()})

	persisted, err := cacheRepo.GetEntry(ctx, key)
	require.NoError(t, err)
	assert.Len(t, persisted.Results, 3)
	assert.Empty(t, persisted.StaleDomains)

	c.InvalidateDomain("example.com")
	persisted, err = cacheRepo.GetEntry(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com"}, persisted.StaleDomains)
}

func TestRestore_DropsExpiredAndRepins(t *testing.T) {
	_, cacheRepo, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		cacheRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	now := time.Now().UTC()

	live := &core.CacheEntry{
		Key:          testKey("fresh", core.IntentGeneral),
		Results:      testResults()[:1],
		Domains:      []string{"go.dev"},
		SnapshotRefs: []core.ID{42},
		CreatedAt:    now.Add(-time.Minute),
		TTL:          time.Hour,
	}
	dead := &core.CacheEntry{
		Key:       testKey("stale", core.IntentGeneral),
		Results:   testResults()[:1],
		Domains:   []string{"go.dev"},
		CreatedAt: now.Add(-2 * time.Hour),
		TTL:       time.Hour,
	}
	require.NoError(t, cacheRepo.PutEntry(ctx, live))
	require.NoError(t, cacheRepo.PutEntry(ctx, dead))

	pinner := newRecordingPinner()
	c, err := New(WithRepository(cacheRepo), WithPinner(pinner))
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Lookup(live.Key).Hit)
	assert.False(t, c.Lookup(dead.Key).Hit)
	assert.Equal(t, 1, pinner.count(42), "surviving entries re-pin their snapshots")

	// Expired entries are removed from the repository, never resurrected
	_, err = cacheRepo.GetEntry(ctx, dead.Key)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
