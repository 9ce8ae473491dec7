package ledger

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
	storagebadger "github.com/poiesic/scout/storage/badger"
)

func newTestLedger(t *testing.T, opts ...Option) (*Ledger, storage.SnapshotRepository) {
	t.Helper()

	snapshotRepo, cacheRepo, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		cacheRepo.Close()
		snapshotRepo.Close()
		backend.Close()
	})

	l, err := New(snapshotRepo, opts...)
	require.NoError(t, err)
	return l, snapshotRepo
}

func TestNew_RequiresRepository(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestCapture_Basics(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	id, err := l.Capture(ctx, "The quick brown fox.", "https://example.com/fox", map[string]string{"source": "test"})
	require.NoError(t, err)
	require.NotZero(t, id)

	record, err := l.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/fox", record.SourceURL)
	assert.Equal(t, "The quick brown fox.", record.Content)
	assert.Equal(t, "The quick brown fox.", record.Preview)
	assert.Equal(t, core.ContentDigest("The quick brown fox."), record.ContentHash)
	assert.Equal(t, "test", record.Metadata["source"])
	assert.False(t, record.CapturedAt.IsZero())
	assert.True(t, record.TimeBucket.Equal(record.CapturedAt.Truncate(time.Hour)))
}

func TestCapture_DedupWithinBucket(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	// Pin the clock so no capture straddles a bucket boundary
	now := time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	first, err := l.Capture(ctx, "Same page content.", "https://example.com/p", nil)
	require.NoError(t, err)
	second, err := l.Capture(ctx, "Same page content.", "https://example.com/p", nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, l.Len())

	// Whitespace-only differences canonicalize away
	third, err := l.Capture(ctx, "Same   page \t content.\n", "https://example.com/p", nil)
	require.NoError(t, err)
	assert.Equal(t, first, third)
	assert.Equal(t, 1, l.Len())
}

func TestCapture_NewBucketNewSnapshot(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	base := time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	first, err := l.Capture(ctx, "Rolling content.", "https://example.com/r", nil)
	require.NoError(t, err)

	l.now = func() time.Time { return base.Add(2 * time.Hour) }
	second, err := l.Capture(ctx, "Rolling content.", "https://example.com/r", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, l.Len())
}

func TestCapture_DistinctURLsDistinctSnapshots(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	a, err := l.Capture(ctx, "Shared body.", "https://example.com/a", nil)
	require.NoError(t, err)
	b, err := l.Capture(ctx, "Shared body.", "https://example.com/b", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCapture_EmptyContent(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.Capture(context.Background(), "   \n\t\n", "https://example.com/void", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestCapture_PreviewBounded(t *testing.T) {
	l, _ := newTestLedger(t)

	long := strings.Repeat("lorem ipsum ", 60)
	id, err := l.Capture(context.Background(), long, "https://example.com/long", nil)
	require.NoError(t, err)

	record, err := l.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, previewLimit, len([]rune(record.Preview)))
	assert.True(t, strings.HasSuffix(record.Preview, "…"))
}

func TestGet_NotFound(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.Get(context.Background(), core.ID(404))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEviction_OldestUnpinnedFirst(t *testing.T) {
	l, _ := newTestLedger(t, WithCapacity(2))
	ctx := context.Background()

	id1, err := l.Capture(ctx, "Version one.", "https://example.com/1", nil)
	require.NoError(t, err)
	id2, err := l.Capture(ctx, "Version two.", "https://example.com/2", nil)
	require.NoError(t, err)
	id3, err := l.Capture(ctx, "Version three.", "https://example.com/3", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, l.Len())
	_, err = l.Get(ctx, id1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = l.Get(ctx, id2)
	assert.NoError(t, err)
	_, err = l.Get(ctx, id3)
	assert.NoError(t, err)
}

func TestEviction_SkipsPinned(t *testing.T) {
	l, _ := newTestLedger(t, WithCapacity(2))
	ctx := context.Background()

	id1, err := l.Capture(ctx, "Pinned page.", "https://example.com/pin", nil)
	require.NoError(t, err)
	id2, err := l.Capture(ctx, "Disposable page.", "https://example.com/tmp", nil)
	require.NoError(t, err)

	l.Pin(id1)
	id3, err := l.Capture(ctx, "Newcomer page.", "https://example.com/new", nil)
	require.NoError(t, err)

	_, err = l.Get(ctx, id1)
	assert.NoError(t, err, "pinned snapshot survives eviction")
	_, err = l.Get(ctx, id2)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = l.Get(ctx, id3)
	assert.NoError(t, err)
}

func TestCapture_AllPinnedLedgerFull(t *testing.T) {
	l, _ := newTestLedger(t, WithCapacity(1))
	ctx := context.Background()

	id, err := l.Capture(ctx, "Only resident.", "https://example.com/solo", nil)
	require.NoError(t, err)
	l.Pin(id)

	_, err = l.Capture(ctx, "Wants in.", "https://example.com/next", nil)
	assert.ErrorIs(t, err, ErrLedgerFull)

	// Releasing the pin makes room again
	l.Unpin(id)
	next, err := l.Capture(ctx, "Wants in.", "https://example.com/next", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	_, err = l.Get(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = l.Get(ctx, next)
	assert.NoError(t, err)
}

func TestPin_Refcounting(t *testing.T) {
	l, _ := newTestLedger(t, WithCapacity(1))
	ctx := context.Background()

	id, err := l.Capture(ctx, "Shared ref.", "https://example.com/ref", nil)
	require.NoError(t, err)

	l.Pin(id)
	l.Pin(id)
	l.Unpin(id)

	// One reference still held
	_, err = l.Capture(ctx, "Pushes capacity.", "https://example.com/push", nil)
	assert.ErrorIs(t, err, ErrLedgerFull)

	l.Unpin(id)
	_, err = l.Capture(ctx, "Pushes capacity.", "https://example.com/push", nil)
	assert.NoError(t, err)
}

func TestDiff(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	idA, err := l.Capture(ctx, "alpha\nbeta\ngamma", "https://example.com/v", nil)
	require.NoError(t, err)
	idB, err := l.Capture(ctx, "alpha\ndelta\ngamma\nomega", "https://example.com/v", nil)
	require.NoError(t, err)

	changes, err := l.Diff(ctx, idA, idB)
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, core.ChangeModified, changes[0].Op)
	assert.Equal(t, 1, changes[0].FromStart)
	assert.Equal(t, 2, changes[0].FromEnd)
	assert.Equal(t, 1, changes[0].ToStart)
	assert.Equal(t, 2, changes[0].ToEnd)
	assert.Equal(t, []string{"delta"}, changes[0].Lines)

	assert.Equal(t, core.ChangeAdded, changes[1].Op)
	assert.Equal(t, 3, changes[1].ToStart)
	assert.Equal(t, 4, changes[1].ToEnd)
	assert.Equal(t, []string{"omega"}, changes[1].Lines)
}

func TestDiff_Removal(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	idA, err := l.Capture(ctx, "one\ntwo\nthree", "https://example.com/d", nil)
	require.NoError(t, err)
	idB, err := l.Capture(ctx, "one\nthree", "https://example.com/d", nil)
	require.NoError(t, err)

	changes, err := l.Diff(ctx, idA, idB)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, core.ChangeRemoved, changes[0].Op)
	assert.Equal(t, 1, changes[0].FromStart)
	assert.Equal(t, 2, changes[0].FromEnd)
	assert.Equal(t, []string{"two"}, changes[0].Lines)
}

func TestDiff_Deterministic(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	idA, err := l.Capture(ctx, "red\ngreen\nblue", "https://example.com/c", nil)
	require.NoError(t, err)
	idB, err := l.Capture(ctx, "red\nyellow\nblue", "https://example.com/c", nil)
	require.NoError(t, err)

	first, err := l.Diff(ctx, idA, idB)
	require.NoError(t, err)
	second, err := l.Diff(ctx, idA, idB)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDiff_MissingSnapshot(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.Diff(context.Background(), core.ID(1), core.ID(2))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUnifiedDiff(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	idA, err := l.Capture(ctx, "alpha\nbeta\ngamma", "https://example.com/u", nil)
	require.NoError(t, err)
	idB, err := l.Capture(ctx, "alpha\ndelta\ngamma", "https://example.com/u", nil)
	require.NoError(t, err)

	diff, err := l.UnifiedDiff(ctx, idA, idB)
	require.NoError(t, err)
	assert.Contains(t, diff, "-beta")
	assert.Contains(t, diff, "+delta")
	assert.Contains(t, diff, "snapshot-")
}

func TestReopen_RebuildsIndex(t *testing.T) {
	snapshotRepo, cacheRepo, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		cacheRepo.Close()
		snapshotRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	now := time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC)

	first, err := New(snapshotRepo)
	require.NoError(t, err)
	first.now = func() time.Time { return now }
	id1, err := first.Capture(ctx, "Persisted one.", "https://example.com/p1", nil)
	require.NoError(t, err)
	_, err = first.Capture(ctx, "Persisted two.", "https://example.com/p2", nil)
	require.NoError(t, err)

	reopened, err := New(snapshotRepo)
	require.NoError(t, err)
	reopened.now = func() time.Time { return now }
	assert.Equal(t, 2, reopened.Len())

	// Dedup still holds across the reopen
	again, err := reopened.Capture(ctx, "Persisted one.", "https://example.com/p1", nil)
	require.NoError(t, err)
	assert.Equal(t, id1, again)
	assert.Equal(t, 2, reopened.Len())
}
