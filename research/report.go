package research

import (
	"time"

	"github.com/poiesic/scout/core"
)

// TaskStatus describes where a task is in its lifecycle. The zero value is
// TaskPending.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskOK
	TaskFailed
	TaskSkipped
)

func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskRunning:
		return "running"
	case TaskOK:
		return "ok"
	case TaskFailed:
		return "failed"
	case TaskSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// RunState is the run-level state machine: planning, executing, aggregating,
// then done or failed.
type RunState int

const (
	StatePlanning RunState = iota + 1
	StateExecuting
	StateAggregating
	StateDone
	StateFailed
)

func (s RunState) String() string {
	switch s {
	case StatePlanning:
		return "planning"
	case StateExecuting:
		return "executing"
	case StateAggregating:
		return "aggregating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CacheState records how the cache answered the run's search hop.
type CacheState int

const (
	CacheMiss CacheState = iota
	CacheHit
	CachePartial
)

func (s CacheState) String() string {
	switch s {
	case CacheHit:
		return "hit"
	case CachePartial:
		return "partial"
	default:
		return "miss"
	}
}

// TraceEvent is one task transition, recorded in run order.
type TraceEvent struct {
	At     time.Time
	Task   string
	Status TaskStatus
	Note   string
}

// Slot is the aggregated outcome for one result slot: the search result
// itself plus whatever the detail and summarize tasks produced for it.
// SnapshotID is zero when no snapshot was captured.
type Slot struct {
	Rank          int
	Result        core.SearchResult
	Detail        *core.PageDetail
	Summary       *core.Summary
	Graph         *core.KnowledgeGraph
	SnapshotID    core.ID
	DetailStatus  TaskStatus
	SummaryStatus TaskStatus
	FailureReason string
}

// Report is the aggregated outcome of a research run. Slots follow the
// search result rank order regardless of task completion order. A report
// with failed or skipped slots still has State StateDone; only a failed
// search hop yields StateFailed.
type Report struct {
	State      RunState
	Query      string
	Intent     core.Intent
	Confidence float64
	CacheState CacheState
	Results    []core.SearchResult
	Related    []string
	Slots      []Slot
	Trace      []TraceEvent
	Elapsed    time.Duration
}
