package research

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/scout/backend"
	"github.com/poiesic/scout/cache"
	"github.com/poiesic/scout/canonical"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/ledger"
	"github.com/poiesic/scout/rerank"
)

const (
	defaultMaxInFlight = 4
	defaultTaskTimeout = 15 * time.Second
)

// Orchestrator executes research plans against the cache and the backends.
// One orchestrator owns one worker pool shared by all of its runs, capping
// simultaneous outbound calls. Safe for concurrent use.
type Orchestrator struct {
	cache       *cache.Cache
	ledger      *ledger.Ledger
	search      backend.SearchBackend
	fetcher     backend.DetailFetcher
	summarizer  backend.Summarizer
	linker      backend.EntityLinker
	pool        *ants.Pool
	taskTimeout time.Duration
	monitor     RunMonitor
	logger      *slog.Logger

	// Task contexts derive from lifetime, not from the caller: a caller
	// that abandons a run must not abort the fetches already in flight,
	// since their results still warm the cache.
	lifetime context.Context
	stop     context.CancelFunc
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithMaxInFlight bounds how many tasks execute at once across all runs.
// Default is 4, with a minimum of 1.
func WithMaxInFlight(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		if o.pool != nil {
			o.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithTaskTimeout sets the per-task deadline.
// Default is 15 seconds.
func WithTaskTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) error {
		if timeout <= 0 {
			timeout = defaultTaskTimeout
		}
		o.taskTimeout = timeout
		return nil
	}
}

// WithMonitor registers a run monitor.
// Default is a no-op monitor.
func WithMonitor(monitor RunMonitor) Option {
	return func(o *Orchestrator) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		o.monitor = monitor
		return nil
	}
}

// WithLinker attaches an entity linker. Without one, detail tasks skip
// knowledge graph construction.
func WithLinker(linker backend.EntityLinker) Option {
	return func(o *Orchestrator) error {
		o.linker = linker
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates an orchestrator over the given collaborators.
func NewOrchestrator(
	resultCache *cache.Cache,
	snapshots *ledger.Ledger,
	search backend.SearchBackend,
	fetcher backend.DetailFetcher,
	summarizer backend.Summarizer,
	opts ...Option,
) (*Orchestrator, error) {
	if resultCache == nil {
		return nil, ErrCacheRequired
	}
	if snapshots == nil {
		return nil, ErrLedgerRequired
	}
	if search == nil {
		return nil, ErrSearchBackendRequired
	}
	if fetcher == nil {
		return nil, ErrDetailFetcherRequired
	}
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}

	pool, err := ants.NewPool(defaultMaxInFlight)
	if err != nil {
		return nil, err
	}

	lifetime, stop := context.WithCancel(context.Background())
	o := &Orchestrator{
		cache:       resultCache,
		ledger:      snapshots,
		search:      search,
		fetcher:     fetcher,
		summarizer:  summarizer,
		pool:        pool,
		taskTimeout: defaultTaskTimeout,
		monitor:     &noopMonitor{},
		logger:      slog.Default(),
		lifetime:    lifetime,
		stop:        stop,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(o); err != nil {
			o.Close()
			return nil, err
		}
	}

	return o, nil
}

// Close cancels the lifetime context, aborting in-flight tasks, and releases
// the worker pool. The orchestrator must not be used afterwards.
func (o *Orchestrator) Close() {
	o.stop()
	if o.pool != nil {
		o.pool.Release()
	}
}

// runState is the bookkeeping of one run. It is owned by the coordinating
// goroutine; workers hand their outputs back over the completions channel
// and never touch it directly.
type runState struct {
	req        core.ResearchRequest
	searchReq  core.SearchRequest
	key        core.CacheKey
	confidence float64
	state      RunState

	tasks      map[string]Task
	waiting    map[string]int
	dependents map[string][]string
	statuses   map[string]TaskStatus
	notes      map[string]string
	ready      []string
	finished   int

	trace      []TraceEvent
	cacheState CacheState
	results    []core.SearchResult
	related    []string
	details    map[int]*detailOutcome
	summaries  map[int]*core.Summary
	searchErr  error

	completions chan taskResult
}

func (r *runState) addTrace(task string, status TaskStatus, note string) {
	r.trace = append(r.trace, TraceEvent{At: time.Now().UTC(), Task: task, Status: status, Note: note})
}

// taskResult carries a task's outputs back to the coordinator. Exactly one
// of search, detail and summary is set on success.
type taskResult struct {
	id      string
	slot    int
	status  TaskStatus
	err     error
	search  *searchOutcome
	detail  *detailOutcome
	summary *core.Summary
}

type searchOutcome struct {
	results    []core.SearchResult
	related    []string
	cacheState CacheState
}

type detailOutcome struct {
	key        core.CacheKey
	detail     *core.PageDetail
	summary    *core.Summary
	graph      *core.KnowledgeGraph
	snapshotID core.ID
}

// Run executes one research request: a search hop, detail fetches for the
// top results, and a summary per fetched detail. Failed or skipped slots
// degrade the report without failing the run; only validation errors and a
// failed search hop are returned as errors. On a failed search hop the
// report is still returned alongside the error, carrying the task trace.
func (o *Orchestrator) Run(ctx context.Context, req core.ResearchRequest) (*Report, error) {
	if err := core.ValidateResearchRequest(&req); err != nil {
		return nil, err
	}
	req.Normalize()

	started := time.Now()
	o.monitor.RunStarted(req.Query)

	plan, err := BuildPlan(req.DetailCount)
	if err != nil {
		return nil, err
	}

	run := newRunState(req, plan)
	_, run.confidence = canonical.ClassifyIntent(req.Query)

	o.logger.Info("research run starting",
		"query", req.Query,
		"intent", run.key.Intent,
		"tasks", plan.Len())
	o.transition(run, StateExecuting)

	for run.finished < len(run.tasks) {
		for len(run.ready) > 0 {
			id := run.ready[0]
			run.ready = run.ready[1:]
			o.startTask(run, run.tasks[id])
		}

		select {
		case res := <-run.completions:
			o.finishTask(run, res)
		case <-ctx.Done():
			o.logger.Info("research run abandoned", "query", req.Query, "err", ctx.Err())
			return nil, ctx.Err()
		case <-o.lifetime.Done():
			return nil, o.lifetime.Err()
		}
	}

	o.transition(run, StateAggregating)
	report := o.buildReport(run)
	report.Elapsed = time.Since(started)

	if run.searchErr != nil {
		o.transition(run, StateFailed)
		report.State = run.state
		o.monitor.RunFinished(report)
		return report, fmt.Errorf("%w: %w", ErrSearchFailed, run.searchErr)
	}

	o.transition(run, StateDone)
	report.State = run.state
	o.monitor.RunFinished(report)
	o.logger.Info("research run finished",
		"query", req.Query,
		"cache", report.CacheState,
		"elapsed", report.Elapsed)
	return report, nil
}

// RunSearch resolves one search request through the cache, without detail
// fetching or summarization. It is the engine's plain search path.
func (o *Orchestrator) RunSearch(ctx context.Context, req core.SearchRequest) (*backend.SearchPage, error) {
	if err := core.ValidateSearchRequest(&req); err != nil {
		return nil, err
	}
	req.Normalize()

	outcome, err := o.resolveSearch(ctx, req, canonical.Canonicalize(req))
	if err != nil {
		return nil, err
	}
	return &backend.SearchPage{Results: outcome.results, Related: outcome.related}, nil
}

func newRunState(req core.ResearchRequest, plan *Plan) *runState {
	run := &runState{
		req:         req,
		state:       StatePlanning,
		tasks:       make(map[string]Task, plan.Len()),
		waiting:     make(map[string]int, plan.Len()),
		dependents:  make(map[string][]string),
		statuses:    make(map[string]TaskStatus, plan.Len()),
		notes:       make(map[string]string),
		details:     make(map[int]*detailOutcome),
		summaries:   make(map[int]*core.Summary),
		completions: make(chan taskResult, plan.Len()),
	}

	run.searchReq = core.SearchRequest{Query: req.Query, Count: req.Count, Related: true}
	run.searchReq.Normalize()
	run.key = canonical.Canonicalize(run.searchReq)

	for _, task := range plan.Tasks() {
		run.tasks[task.ID] = task
		run.waiting[task.ID] = len(task.DependsOn)
		for _, dep := range task.DependsOn {
			run.dependents[dep] = append(run.dependents[dep], task.ID)
		}
		if len(task.DependsOn) == 0 {
			run.ready = append(run.ready, task.ID)
		}
	}
	return run
}

// startTask submits one task to the pool. The job closure captures its
// inputs here, in the coordinating goroutine, so workers never read run
// state. Every submitted task sends exactly one result; the channel buffer
// holds the whole plan, so sends never block even after the coordinator is
// gone.
func (o *Orchestrator) startTask(run *runState, task Task) {
	run.statuses[task.ID] = TaskRunning
	run.addTrace(task.ID, TaskRunning, "")
	o.monitor.TaskStarted(task.ID)

	job := o.taskJob(run, task)
	err := o.pool.Submit(func() {
		taskCtx, cancel := context.WithTimeout(o.lifetime, o.taskTimeout)
		defer cancel()
		run.completions <- job(taskCtx)
	})
	if err != nil {
		run.completions <- taskResult{id: task.ID, slot: task.Slot, status: TaskFailed, err: err}
	}
}

func (o *Orchestrator) taskJob(run *runState, task Task) func(context.Context) taskResult {
	switch task.Kind {
	case KindSearch:
		req, key := run.searchReq, run.key
		return func(ctx context.Context) taskResult {
			outcome, err := o.resolveSearch(ctx, req, key)
			if err != nil {
				return taskResult{id: task.ID, status: TaskFailed, err: err}
			}
			return taskResult{id: task.ID, status: TaskOK, search: outcome}
		}
	case KindDetail:
		result := run.results[task.Slot]
		intent := run.key.Intent
		capture := run.req.CaptureSnapshots
		return func(ctx context.Context) taskResult {
			out, err := o.resolveDetail(ctx, result, intent, capture)
			if err != nil {
				return taskResult{id: task.ID, slot: task.Slot, status: TaskFailed, err: err}
			}
			return taskResult{id: task.ID, slot: task.Slot, status: TaskOK, detail: out}
		}
	default:
		out := run.details[task.Slot]
		maxLength := run.req.SummaryLength
		return func(ctx context.Context) taskResult {
			summary, err := o.resolveSummary(ctx, out, maxLength)
			if err != nil {
				return taskResult{id: task.ID, slot: task.Slot, status: TaskFailed, err: err}
			}
			return taskResult{id: task.ID, slot: task.Slot, status: TaskOK, summary: summary}
		}
	}
}

// finishTask records a completion, stores its outputs, and either unblocks
// or skips the dependents.
func (o *Orchestrator) finishTask(run *runState, res taskResult) {
	run.finished++
	run.statuses[res.id] = res.status

	note := ""
	if res.err != nil {
		note = res.err.Error()
		run.notes[res.id] = note
	}
	run.addTrace(res.id, res.status, note)
	o.monitor.TaskFinished(res.id, res.status, res.err)

	if res.status != TaskOK {
		o.logger.Warn("task failed", "task", res.id, "err", res.err)
		if res.id == searchTaskID {
			run.searchErr = res.err
		}
		o.skipDependents(run, res.id)
		return
	}

	switch {
	case res.search != nil:
		run.results = res.search.results
		run.related = res.search.related
		run.cacheState = res.search.cacheState
	case res.detail != nil:
		run.details[res.slot] = res.detail
	case res.summary != nil:
		run.summaries[res.slot] = res.summary
	}

	for _, dep := range run.dependents[res.id] {
		run.waiting[dep]--
		if run.waiting[dep] > 0 {
			continue
		}
		task := run.tasks[dep]
		if task.Kind == KindDetail && task.Slot >= len(run.results) {
			o.skipTask(run, dep, fmt.Sprintf("no result at rank %d", task.Slot+1))
			continue
		}
		run.ready = append(run.ready, dep)
	}
}

func (o *Orchestrator) skipDependents(run *runState, id string) {
	reason := fmt.Sprintf("upstream task %s %s", id, run.statuses[id])
	for _, dep := range run.dependents[id] {
		if run.statuses[dep] != TaskPending {
			continue
		}
		o.skipTask(run, dep, reason)
	}
}

func (o *Orchestrator) skipTask(run *runState, id, reason string) {
	run.finished++
	run.statuses[id] = TaskSkipped
	run.notes[id] = reason
	run.addTrace(id, TaskSkipped, reason)
	o.monitor.TaskFinished(id, TaskSkipped, nil)
	o.skipDependents(run, id)
}

// resolveSearch answers a search request from the cache when it can. A full
// hit costs no backend call; a partial hit re-fetches once and merges the
// replacements into the stale slots; a miss fetches, reranks and stores.
func (o *Orchestrator) resolveSearch(ctx context.Context, req core.SearchRequest, key core.CacheKey) (*searchOutcome, error) {
	probe := o.cache.Lookup(key)

	if probe.Hit && !probe.Partial {
		o.logger.Debug("search served from cache", "key", key.String())
		return &searchOutcome{results: probe.Results, related: probe.Related, cacheState: CacheHit}, nil
	}

	page, err := o.search.Search(ctx, req)
	if err != nil {
		if probe.Partial {
			return nil, fmt.Errorf("refreshing stale slots: %w", err)
		}
		return nil, err
	}

	if probe.Partial {
		replacements := make(map[int]core.SearchResult, len(probe.StaleSlots))
		for _, slot := range probe.StaleSlots {
			if slot < len(page.Results) {
				replacements[slot] = page.Results[slot]
			}
		}
		if merged, ok := o.cache.MergePartial(key, replacements); ok {
			o.logger.Debug("merged stale slots",
				"key", key.String(),
				"refreshed", len(replacements))
			return &searchOutcome{results: merged, related: probe.Related, cacheState: CachePartial}, nil
		}
		// The entry vanished between probe and merge; treat the fetched
		// page as a plain miss.
	}

	results := rerank.Rerank(req.Query, page.Results, key.Intent)
	o.cache.Store(key, cache.Payload{Results: results, Related: page.Related})
	return &searchOutcome{results: results, related: page.Related, cacheState: CacheMiss}, nil
}

// resolveDetail answers a detail fetch from the cache when it can. On a miss
// it fetches the page, optionally captures a snapshot and links entities,
// and stores the entry under the detail's canonical key.
func (o *Orchestrator) resolveDetail(ctx context.Context, result core.SearchResult, intent core.Intent, capture bool) (*detailOutcome, error) {
	key := canonical.CanonicalizeDetail(result.URL, intent)

	if probe := o.cache.Lookup(key); probe.Hit && probe.Detail != nil {
		o.logger.Debug("detail served from cache", "url", result.URL)
		out := &detailOutcome{key: key, detail: probe.Detail, summary: probe.Summary, graph: probe.Graph}
		if len(probe.SnapshotRefs) > 0 {
			out.snapshotID = probe.SnapshotRefs[0]
		}
		return out, nil
	}

	detail, err := o.fetcher.FetchDetail(ctx, result.URL)
	if err != nil {
		return nil, err
	}

	out := &detailOutcome{key: key, detail: detail}

	var refs []core.ID
	if capture {
		id, err := o.ledger.Capture(ctx, detail.ContentSnippet, detail.URL, map[string]string{
			"title":  detail.Title,
			"domain": detail.Domain,
		})
		if err != nil {
			o.logger.Warn("snapshot capture failed", "url", detail.URL, "err", err)
		} else {
			refs = append(refs, id)
			out.snapshotID = id
		}
	}

	if o.linker != nil && len(detail.Entities) > 0 {
		graph, err := o.linker.Link(ctx, detail.Entities, detail.Domain)
		if err != nil {
			o.logger.Warn("entity linking failed", "url", detail.URL, "err", err)
		} else {
			out.graph = graph
		}
	}

	o.cache.Store(key, cache.Payload{
		Detail:       detail,
		Graph:        out.graph,
		SnapshotRefs: refs,
	})
	return out, nil
}

// resolveSummary reuses the cached summary when it was produced under the
// same length budget; otherwise it summarizes and attaches the result to the
// detail's cache entry.
func (o *Orchestrator) resolveSummary(ctx context.Context, out *detailOutcome, maxLength int) (*core.Summary, error) {
	if out.summary != nil && out.summary.Limit == maxLength {
		return out.summary, nil
	}

	summary, err := o.summarizer.Summarize(ctx, out.detail, maxLength)
	if err != nil {
		return nil, err
	}
	o.cache.AttachSummary(out.key, summary)
	return summary, nil
}

func (o *Orchestrator) transition(run *runState, to RunState) {
	if run.state == to {
		return
	}
	from := run.state
	run.state = to
	o.monitor.StateChanged(from, to)
}

// buildReport assembles slots in rank order from whatever the tasks
// produced. Planned slots beyond the result count appear only in the trace.
func (o *Orchestrator) buildReport(run *runState) *Report {
	slotCount := run.req.DetailCount
	if len(run.results) < slotCount {
		slotCount = len(run.results)
	}

	slots := make([]Slot, 0, slotCount)
	for i := 0; i < slotCount; i++ {
		slot := Slot{
			Rank:          i + 1,
			Result:        run.results[i],
			DetailStatus:  run.statuses[detailTaskID(i)],
			SummaryStatus: run.statuses[summarizeTaskID(i)],
		}
		if out := run.details[i]; out != nil {
			slot.Detail = out.detail
			slot.Graph = out.graph
			slot.SnapshotID = out.snapshotID
		}
		if summary := run.summaries[i]; summary != nil {
			slot.Summary = summary
		}
		if slot.DetailStatus != TaskOK {
			slot.FailureReason = run.notes[detailTaskID(i)]
		} else if slot.SummaryStatus != TaskOK {
			slot.FailureReason = run.notes[summarizeTaskID(i)]
		}
		slots = append(slots, slot)
	}

	return &Report{
		Query:      run.req.Query,
		Intent:     run.key.Intent,
		Confidence: run.confidence,
		CacheState: run.cacheState,
		Results:    run.results,
		Related:    run.related,
		Slots:      slots,
		Trace:      run.trace,
	}
}
