// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package scout

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/scout/backend"
	"github.com/poiesic/scout/backend/duckduckgo"
	"github.com/poiesic/scout/backend/extract"
	"github.com/poiesic/scout/backend/kg"
	"github.com/poiesic/scout/cache"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/ledger"
	"github.com/poiesic/scout/research"
	"github.com/poiesic/scout/storage"
	"github.com/poiesic/scout/storage/badger"
)

// defaultSweepInterval is how often the background sweeper evicts expired
// cache entries.
const defaultSweepInterval = time.Minute

// Engine bundles the semantic cache, the snapshot ledger and the research
// orchestrator over one badger store. A process typically owns a single
// Engine and shares it across callers.
type Engine struct {
	backend      *badger.Backend
	snapshotRepo storage.SnapshotRepository
	cacheRepo    storage.CacheRepository
	cache        *cache.Cache
	ledger       *ledger.Ledger
	orch         *research.Orchestrator
	logger       *slog.Logger

	sweepStop chan struct{}
	sweepDone chan struct{}
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger         *slog.Logger
	policy         cache.Policy
	cacheCapacity  int
	cacheGrace     time.Duration
	cacheGraceSet  bool
	ledgerCapacity int
	snapshotBucket time.Duration
	maxInFlight    int
	taskTimeout    time.Duration
	sweepInterval  time.Duration
	search         backend.SearchBackend
	fetcher        backend.DetailFetcher
	summarizer     backend.Summarizer
	linker         backend.EntityLinker
	persistCache   bool
}

// WithLogger sets the engine logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPolicy overrides the per-intent cache lifetime table.
func WithPolicy(policy cache.Policy) EngineOption {
	return func(o *engineOptions) { o.policy = policy }
}

// WithCacheCapacity bounds the number of live cache entries.
func WithCacheCapacity(capacity int) EngineOption {
	return func(o *engineOptions) { o.cacheCapacity = capacity }
}

// WithCacheGrace sets how long expired cache entries linger before the
// sweep removes them. Zero evicts on the next sweep.
func WithCacheGrace(grace time.Duration) EngineOption {
	return func(o *engineOptions) {
		o.cacheGrace = grace
		o.cacheGraceSet = true
	}
}

// WithLedgerCapacity bounds the number of resident snapshots.
func WithLedgerCapacity(capacity int) EngineOption {
	return func(o *engineOptions) { o.ledgerCapacity = capacity }
}

// WithSnapshotBucket sets the time bucket within which recaptures of
// unchanged content dedup to the same snapshot.
func WithSnapshotBucket(bucket time.Duration) EngineOption {
	return func(o *engineOptions) { o.snapshotBucket = bucket }
}

// WithMaxInFlight bounds simultaneous research tasks across all runs.
func WithMaxInFlight(size int) EngineOption {
	return func(o *engineOptions) { o.maxInFlight = size }
}

// WithTaskTimeout sets the per-task deadline for research runs.
func WithTaskTimeout(timeout time.Duration) EngineOption {
	return func(o *engineOptions) { o.taskTimeout = timeout }
}

// WithSweepInterval sets the cadence of the background eviction sweep.
// Default is one minute.
func WithSweepInterval(interval time.Duration) EngineOption {
	return func(o *engineOptions) {
		if interval > 0 {
			o.sweepInterval = interval
		}
	}
}

// WithSearchBackend replaces the default DuckDuckGo search client.
func WithSearchBackend(search backend.SearchBackend) EngineOption {
	return func(o *engineOptions) { o.search = search }
}

// WithDetailFetcher replaces the default DuckDuckGo page fetcher.
func WithDetailFetcher(fetcher backend.DetailFetcher) EngineOption {
	return func(o *engineOptions) { o.fetcher = fetcher }
}

// WithSummarizer replaces the default extractive summarizer.
func WithSummarizer(summarizer backend.Summarizer) EngineOption {
	return func(o *engineOptions) { o.summarizer = summarizer }
}

// WithEntityLinker replaces the default local entity linker.
func WithEntityLinker(linker backend.EntityLinker) EngineOption {
	return func(o *engineOptions) { o.linker = linker }
}

// WithCachePersistence writes cache entries through to the store so they
// survive restarts. Entries that expired while the process was down are
// dropped on reload.
func WithCachePersistence() EngineOption {
	return func(o *engineOptions) { o.persistCache = true }
}

// New opens the store at filePath and wires an engine over it. An empty
// path opens an in-memory store, for tests and ephemeral runs.
func New(filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		logger:        slog.Default(),
		sweepInterval: defaultSweepInterval,
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	store, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		return nil, err
	}

	// Create snapshot repository
	snapshotRepo, err := badger.NewSnapshotRepository(store)
	if err != nil {
		store.Close()
		return nil, err
	}

	// Cache entries persist only on request; snapshots always do.
	var cacheRepo storage.CacheRepository
	if options.persistCache {
		repo, err := badger.NewCacheRepository(store)
		if err != nil {
			snapshotRepo.Close()
			store.Close()
			return nil, err
		}
		cacheRepo = repo
	}

	// Create snapshot ledger
	ledgerOpts := []ledger.Option{ledger.WithLogger(options.logger)}
	if options.ledgerCapacity > 0 {
		ledgerOpts = append(ledgerOpts, ledger.WithCapacity(options.ledgerCapacity))
	}
	if options.snapshotBucket > 0 {
		ledgerOpts = append(ledgerOpts, ledger.WithTimeBucket(options.snapshotBucket))
	}
	snapshots, err := ledger.New(snapshotRepo, ledgerOpts...)
	if err != nil {
		if cacheRepo != nil {
			cacheRepo.Close()
		}
		snapshotRepo.Close()
		store.Close()
		return nil, err
	}

	// Create the cache after the ledger: reloading persisted entries
	// re-pins their snapshot refs.
	cacheOpts := []cache.Option{
		cache.WithPinner(snapshots),
		cache.WithLogger(options.logger),
	}
	if options.policy != nil {
		cacheOpts = append(cacheOpts, cache.WithPolicy(options.policy))
	}
	if options.cacheCapacity > 0 {
		cacheOpts = append(cacheOpts, cache.WithCapacity(options.cacheCapacity))
	}
	if options.cacheGraceSet {
		cacheOpts = append(cacheOpts, cache.WithGrace(options.cacheGrace))
	}
	if cacheRepo != nil {
		cacheOpts = append(cacheOpts, cache.WithRepository(cacheRepo))
	}
	resultCache, err := cache.New(cacheOpts...)
	if err != nil {
		if cacheRepo != nil {
			cacheRepo.Close()
		}
		snapshotRepo.Close()
		store.Close()
		return nil, err
	}

	// Default collaborators; one DuckDuckGo client serves both search and
	// detail fetching so they share a rate limiter.
	searchBackend := options.search
	fetcher := options.fetcher
	if searchBackend == nil || fetcher == nil {
		client, err := duckduckgo.New()
		if err != nil {
			if cacheRepo != nil {
				cacheRepo.Close()
			}
			snapshotRepo.Close()
			store.Close()
			return nil, err
		}
		if searchBackend == nil {
			searchBackend = client
		}
		if fetcher == nil {
			fetcher = client
		}
	}

	summarizer := options.summarizer
	if summarizer == nil {
		summarizer = extract.New()
	}
	linker := options.linker
	if linker == nil {
		linker = kg.New()
	}

	// Create orchestrator
	orchOpts := []research.Option{
		research.WithLinker(linker),
		research.WithLogger(options.logger),
	}
	if options.maxInFlight > 0 {
		orchOpts = append(orchOpts, research.WithMaxInFlight(options.maxInFlight))
	}
	if options.taskTimeout > 0 {
		orchOpts = append(orchOpts, research.WithTaskTimeout(options.taskTimeout))
	}
	orch, err := research.NewOrchestrator(resultCache, snapshots, searchBackend, fetcher, summarizer, orchOpts...)
	if err != nil {
		if cacheRepo != nil {
			cacheRepo.Close()
		}
		snapshotRepo.Close()
		store.Close()
		return nil, err
	}

	e := &Engine{
		backend:      store,
		snapshotRepo: snapshotRepo,
		cacheRepo:    cacheRepo,
		cache:        resultCache,
		ledger:       snapshots,
		orch:         orch,
		logger:       options.logger,
		sweepStop:    make(chan struct{}),
		sweepDone:    make(chan struct{}),
	}
	go e.sweep(options.sweepInterval)
	return e, nil
}

// sweep evicts expired cache entries on a fixed cadence until Close.
func (e *Engine) sweep(interval time.Duration) {
	defer close(e.sweepDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if evicted := e.cache.EvictExpired(); evicted > 0 {
				e.logger.Debug("evicted expired cache entries", "count", evicted)
			}
		case <-e.sweepStop:
			return
		}
	}
}

// Close stops the sweeper, aborts in-flight research tasks and closes the
// store. The engine must not be used afterwards.
func (e *Engine) Close() error {
	close(e.sweepStop)
	<-e.sweepDone

	e.orch.Close()

	if e.cacheRepo != nil {
		if err := e.cacheRepo.Close(); err != nil {
			e.logger.Error("error closing cache repository", "err", err)
			return err
		}
	}
	if err := e.snapshotRepo.Close(); err != nil {
		e.logger.Error("error closing snapshot repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Research executes one research run: a cached search hop, detail fetches
// for the top results and a summary per fetched detail.
func (e *Engine) Research(ctx context.Context, req core.ResearchRequest) (*research.Report, error) {
	return e.orch.Run(ctx, req)
}

// Search resolves a single search request through the cache, without detail
// fetching or summarization.
func (e *Engine) Search(ctx context.Context, req core.SearchRequest) (*backend.SearchPage, error) {
	return e.orch.RunSearch(ctx, req)
}

// InvalidateDomain marks every cached entry touching the domain as stale.
// Returns the number of entries touched.
func (e *Engine) InvalidateDomain(domain string) int {
	return e.cache.InvalidateDomain(domain)
}

// EvictExpired drops entries expired beyond the grace window, on top of the
// background sweep. Returns the number of entries removed.
func (e *Engine) EvictExpired() int {
	return e.cache.EvictExpired()
}

// Snapshots lists the resident snapshots in capture order.
func (e *Engine) Snapshots(ctx context.Context) ([]*core.SnapshotRecord, error) {
	return e.ledger.List(ctx)
}

// DiffSnapshots reports the line-level changes between two snapshots.
func (e *Engine) DiffSnapshots(ctx context.Context, idA, idB core.ID) ([]core.ChangeRecord, error) {
	return e.ledger.Diff(ctx, idA, idB)
}

// Cache exposes the semantic result cache.
func (e *Engine) Cache() *cache.Cache {
	return e.cache
}

// Ledger exposes the snapshot ledger.
func (e *Engine) Ledger() *ledger.Ledger {
	return e.ledger
}
