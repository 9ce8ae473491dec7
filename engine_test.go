package scout

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scout/backend/mock"
	"github.com/poiesic/scout/cache"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/research"
)

// mockOptions wires mock collaborators so no engine test touches the
// network.
func mockOptions() []EngineOption {
	return []EngineOption{
		WithSearchBackend(mock.NewSearchBackend()),
		WithDetailFetcher(mock.NewDetailFetcher()),
		WithSummarizer(mock.NewSummarizer()),
		WithEntityLinker(mock.NewEntityLinker()),
	}
}

// newTestEngine opens an in-memory engine over fresh mocks and registers
// cleanup. Tests that exercise Close construct their engine inline instead.
func newTestEngine(t *testing.T, opts ...EngineOption) (*Engine, *mock.SearchBackend) {
	t.Helper()

	search := mock.NewSearchBackend()
	full := append([]EngineOption{
		WithSearchBackend(search),
		WithDetailFetcher(mock.NewDetailFetcher()),
		WithSummarizer(mock.NewSummarizer()),
		WithEntityLinker(mock.NewEntityLinker()),
	}, opts...)

	e, err := New("", full...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e, search
}

func TestNew(t *testing.T) {
	t.Run("create in-memory engine with defaults", func(t *testing.T) {
		e, err := New("")
		require.NoError(t, err)
		require.NotNil(t, e)
		defer e.Close()

		// Verify components are initialized
		assert.NotNil(t, e.Cache())
		assert.NotNil(t, e.Ledger())
		assert.NotNil(t, e.backend)
		assert.NotNil(t, e.orch)
		assert.NotNil(t, e.logger)
	})

	t.Run("create on-disk engine", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "scout_db")
		e, err := New(dir, mockOptions()...)
		require.NoError(t, err)
		require.NotNil(t, e)
		defer e.Close()
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to open the store at a file path instead of a directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		e, err := New(tmpFile, mockOptions()...)
		assert.Error(t, err)
		assert.Nil(t, e)
	})
}

func TestEngine_Close(t *testing.T) {
	e, err := New("", mockOptions()...)
	require.NoError(t, err)
	require.NotNil(t, e)

	err = e.Close()
	assert.NoError(t, err)
}

func TestEngine_Research(t *testing.T) {
	e, search := newTestEngine(t)
	ctx := context.Background()

	report, err := e.Research(ctx, core.ResearchRequest{
		Query:            "release cadence history",
		Count:            3,
		DetailCount:      1,
		CaptureSnapshots: true,
	})
	require.NoError(t, err)

	assert.Equal(t, research.StateDone, report.State)
	assert.Len(t, report.Results, 3)
	require.Len(t, report.Slots, 1)
	assert.Equal(t, research.TaskOK, report.Slots[0].DetailStatus)
	assert.Equal(t, research.TaskOK, report.Slots[0].SummaryStatus)
	assert.NotZero(t, report.Slots[0].SnapshotID)
	assert.Equal(t, 1, search.CallCount())

	// The captured snapshot is visible through the admin surface.
	snaps, err := e.Snapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, report.Slots[0].SnapshotID, snaps[0].Id)

	changes, err := e.DiffSnapshots(ctx, snaps[0].Id, snaps[0].Id)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestEngine_SearchCachesAndInvalidates(t *testing.T) {
	e, search := newTestEngine(t)
	ctx := context.Background()

	req := core.SearchRequest{Query: "edge cache warmup", Count: 2}
	page, err := e.Search(ctx, req)
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, 1, search.CallCount())

	// Repeat serves from cache.
	_, err = e.Search(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, search.CallCount())

	// Invalidation forces a refresh on the next call.
	touched := e.InvalidateDomain("example.com")
	assert.GreaterOrEqual(t, touched, 1)

	_, err = e.Search(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, search.CallCount())
}

func TestEngine_CachePersistence(t *testing.T) {
	ctx := context.Background()
	req := core.SearchRequest{Query: "durable entry", Count: 2}

	t.Run("entries survive restart", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "scout_db")
		search := mock.NewSearchBackend()
		opts := []EngineOption{
			WithCachePersistence(),
			WithSearchBackend(search),
			WithDetailFetcher(mock.NewDetailFetcher()),
			WithSummarizer(mock.NewSummarizer()),
		}

		e1, err := New(dir, opts...)
		require.NoError(t, err)
		first, err := e1.Search(ctx, req)
		require.NoError(t, err)
		require.NoError(t, e1.Close())

		e2, err := New(dir, opts...)
		require.NoError(t, err)
		defer e2.Close()

		second, err := e2.Search(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 1, search.CallCount())
		assert.Equal(t, first.Results, second.Results)
	})

	t.Run("no persistence without the option", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "scout_db")
		search := mock.NewSearchBackend()
		opts := []EngineOption{
			WithSearchBackend(search),
			WithDetailFetcher(mock.NewDetailFetcher()),
			WithSummarizer(mock.NewSummarizer()),
		}

		e1, err := New(dir, opts...)
		require.NoError(t, err)
		_, err = e1.Search(ctx, req)
		require.NoError(t, err)
		require.NoError(t, e1.Close())

		e2, err := New(dir, opts...)
		require.NoError(t, err)
		defer e2.Close()

		_, err = e2.Search(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 2, search.CallCount())
	})
}

func TestEngine_SnapshotsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "scout_db")

	e1, err := New(dir, mockOptions()...)
	require.NoError(t, err)

	report, err := e1.Research(ctx, core.ResearchRequest{
		Query:            "archived page",
		Count:            2,
		DetailCount:      1,
		CaptureSnapshots: true,
	})
	require.NoError(t, err)
	id := report.Slots[0].SnapshotID
	require.NotZero(t, id)
	require.NoError(t, e1.Close())

	e2, err := New(dir, mockOptions()...)
	require.NoError(t, err)
	defer e2.Close()

	snaps, err := e2.Snapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, id, snaps[0].Id)

	record, err := e2.Ledger().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, report.Slots[0].Result.URL, record.SourceURL)
}

func TestEngine_SweeperEvictsExpired(t *testing.T) {
	e, _ := newTestEngine(t,
		WithSweepInterval(10*time.Millisecond),
		WithCacheGrace(0),
		WithPolicy(cache.Policy{core.IntentGeneral: time.Millisecond}),
	)

	_, err := e.Search(context.Background(), core.SearchRequest{Query: "fleeting entry", Count: 2})
	require.NoError(t, err)
	require.Equal(t, 1, e.Cache().Len())

	assert.Eventually(t, func() bool { return e.Cache().Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestEngine_EvictExpiredOnDemand(t *testing.T) {
	e, _ := newTestEngine(t,
		WithCacheGrace(0),
		WithPolicy(cache.Policy{core.IntentGeneral: time.Millisecond}),
	)

	_, err := e.Search(context.Background(), core.SearchRequest{Query: "short lived", Count: 2})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return e.EvictExpired() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, e.Cache().Len())
}
