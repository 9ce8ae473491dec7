package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/scout/cache"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

const (
	defaultCapacity   = 200
	defaultTimeBucket = time.Hour
	previewLimit      = 240
)

// Ledger is a content-addressed store of captured page snapshots with
// bounded retention. Snapshots referenced by live cache entries are pinned
// through the cache.Pinner interface and survive eviction.
type Ledger struct {
	mu       sync.Mutex
	repo     storage.SnapshotRepository
	order    []core.ID // oldest capture first
	resident map[core.ID]bool
	pins     map[core.ID]int
	capacity int
	bucket   time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

var _ cache.Pinner = (*Ledger)(nil)

// Option configures a Ledger.
type Option func(*Ledger) error

// WithCapacity bounds the number of resident snapshots.
// Default is 200, with a minimum of 1.
func WithCapacity(capacity int) Option {
	return func(l *Ledger) error {
		if capacity < 1 {
			capacity = 1
		}
		l.capacity = capacity
		return nil
	}
}

// WithTimeBucket sets the capture-time bucket folded into snapshot IDs.
// Default is one hour.
func WithTimeBucket(bucket time.Duration) Option {
	return func(l *Ledger) error {
		if bucket <= 0 {
			bucket = defaultTimeBucket
		}
		l.bucket = bucket
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// New creates a ledger over the given repository and rebuilds the age index
// from whatever the repository already holds.
func New(repo storage.SnapshotRepository, opts ...Option) (*Ledger, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	l := &Ledger{
		repo:     repo,
		resident: make(map[core.ID]bool),
		pins:     make(map[core.ID]int),
		capacity: defaultCapacity,
		bucket:   defaultTimeBucket,
		logger:   slog.Default(),
		now:      time.Now,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	records, err := repo.ListSnapshots(context.Background())
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		l.order = append(l.order, record.Id)
		l.resident[record.Id] = true
	}

	// A shrunken capacity takes effect immediately; nothing is pinned yet
	for len(l.order) > l.capacity {
		if err := l.evictOldestLocked(context.Background()); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Capture canonicalizes content and stores it under a content-addressed ID.
// Re-capturing unchanged content in the same time bucket returns the
// existing ID without storing anything.
func (l *Ledger) Capture(ctx context.Context, content, sourceURL string, metadata map[string]string) (core.ID, error) {
	canonical := Canonicalize(content)
	if canonical == "" {
		return 0, ErrEmptyContent
	}

	capturedAt := l.now().UTC()
	bucket := capturedAt.Truncate(l.bucket)
	id := core.IDFromContent(canonical + "\x00" + sourceURL + "\x00" + bucket.Format(time.RFC3339))

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resident[id] {
		return id, nil
	}
	exists, err := l.repo.HasSnapshot(ctx, id)
	if err != nil {
		return 0, err
	}
	if exists {
		l.order = append(l.order, id)
		l.resident[id] = true
		return id, nil
	}

	if len(l.order) >= l.capacity {
		if err := l.evictOldestLocked(ctx); err != nil {
			return 0, err
		}
	}

	record := &core.SnapshotRecord{
		Id:          id,
		SourceURL:   sourceURL,
		ContentHash: core.ContentDigest(canonical),
		Preview:     preview(canonical),
		Content:     canonical,
		Metadata:    metadata,
		TimeBucket:  bucket,
		CapturedAt:  capturedAt,
	}
	if err := l.repo.PutSnapshot(ctx, record); err != nil {
		return 0, err
	}

	l.order = append(l.order, id)
	l.resident[id] = true
	return id, nil
}

// Get returns the snapshot record for id, or storage.ErrNotFound.
func (l *Ledger) Get(ctx context.Context, id core.ID) (*core.SnapshotRecord, error) {
	return l.repo.GetSnapshot(ctx, id)
}

// List returns all resident snapshots in capture order, oldest first.
func (l *Ledger) List(ctx context.Context) ([]*core.SnapshotRecord, error) {
	return l.repo.ListSnapshots(ctx)
}

// Pin increments the reference count of a snapshot, protecting it from
// eviction. Unknown IDs are tolerated.
func (l *Ledger) Pin(id core.ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pins[id]++
}

// Unpin decrements the reference count of a snapshot.
func (l *Ledger) Unpin(id core.ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pins[id] <= 1 {
		delete(l.pins, id)
		return
	}
	l.pins[id]--
}

// Len reports the number of resident snapshots.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// Diff compares two snapshots and returns line-level change spans, added,
// removed and modified, deterministic for the same pair of IDs.
func (l *Ledger) Diff(ctx context.Context, idA, idB core.ID) ([]core.ChangeRecord, error) {
	a, b, err := l.pair(ctx, idA, idB)
	if err != nil {
		return nil, err
	}
	return changeRecords(strings.Split(a.Content, "\n"), strings.Split(b.Content, "\n")), nil
}

// UnifiedDiff renders the comparison of two snapshots as a unified diff.
func (l *Ledger) UnifiedDiff(ctx context.Context, idA, idB core.ID) (string, error) {
	a, b, err := l.pair(ctx, idA, idB)
	if err != nil {
		return "", err
	}
	return unifiedDiff(
		fmt.Sprintf("snapshot-%d", uint64(idA)),
		fmt.Sprintf("snapshot-%d", uint64(idB)),
		a.Content, b.Content,
	)
}

func (l *Ledger) pair(ctx context.Context, idA, idB core.ID) (*core.SnapshotRecord, *core.SnapshotRecord, error) {
	a, err := l.repo.GetSnapshot(ctx, idA)
	if err != nil {
		return nil, nil, err
	}
	b, err := l.repo.GetSnapshot(ctx, idB)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// evictOldestLocked removes the oldest unpinned snapshot. Caller holds the
// lock. Returns ErrLedgerFull when everything resident is pinned.
func (l *Ledger) evictOldestLocked(ctx context.Context) error {
	for i, id := range l.order {
		if l.pins[id] > 0 {
			continue
		}
		if err := l.repo.DeleteSnapshots(ctx, id); err != nil {
			return err
		}
		l.order = append(l.order[:i], l.order[i+1:]...)
		delete(l.resident, id)
		l.logger.Debug("evicted snapshot", "id", uint64(id))
		return nil
	}
	return ErrLedgerFull
}

// preview flattens canonical content to a single bounded line.
func preview(canonical string) string {
	collapsed := collapseSpaces(canonical)
	runes := []rune(collapsed)
	if len(runes) <= previewLimit {
		return collapsed
	}
	return string(runes[:previewLimit-1]) + "…"
}
