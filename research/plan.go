package research

import "fmt"

// TaskKind discriminates what a plan task executes.
type TaskKind int

const (
	KindSearch TaskKind = iota + 1
	KindDetail
	KindSummarize
)

func (k TaskKind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindDetail:
		return "detail"
	case KindSummarize:
		return "summarize"
	default:
		return "unknown"
	}
}

// Task is one node of a research plan. Slot is the result slot a detail or
// summarize task works on.
type Task struct {
	ID        string
	Kind      TaskKind
	Slot      int
	DependsOn []string
}

// Plan is an immutable, validated task DAG. Plans are built per request and
// never reused across runs.
type Plan struct {
	tasks []Task
}

const searchTaskID = "search"

func detailTaskID(slot int) string    { return fmt.Sprintf("detail:%d", slot) }
func summarizeTaskID(slot int) string { return fmt.Sprintf("summarize:%d", slot) }

// BuildPlan assembles the standard research plan: one search root, a detail
// task per requested slot, and a summarize task behind each detail.
func BuildPlan(detailCount int) (*Plan, error) {
	if detailCount < 0 {
		detailCount = 0
	}

	tasks := make([]Task, 0, 1+2*detailCount)
	tasks = append(tasks, Task{ID: searchTaskID, Kind: KindSearch})
	for i := 0; i < detailCount; i++ {
		tasks = append(tasks,
			Task{ID: detailTaskID(i), Kind: KindDetail, Slot: i, DependsOn: []string{searchTaskID}},
			Task{ID: summarizeTaskID(i), Kind: KindSummarize, Slot: i, DependsOn: []string{detailTaskID(i)}},
		)
	}
	return NewPlan(tasks)
}

// NewPlan validates the task set: ids must be unique, dependencies must name
// tasks in the plan, and the dependency graph must be acyclic.
func NewPlan(tasks []Task) (*Plan, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyPlan
	}

	known := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if known[task.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, task.ID)
		}
		known[task.ID] = true
	}

	indegree := make(map[string]int, len(tasks))
	dependents := make(map[string][]string)
	for _, task := range tasks {
		for _, dep := range task.DependsOn {
			if !known[dep] {
				return nil, fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, task.ID, dep)
			}
			indegree[task.ID]++
			dependents[dep] = append(dependents[dep], task.ID)
		}
	}

	// Kahn's algorithm; any task left unordered sits on a cycle.
	queue := make([]string, 0, len(tasks))
	for _, task := range tasks {
		if indegree[task.ID] == 0 {
			queue = append(queue, task.ID)
		}
	}
	ordered := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		ordered++
		for _, next := range dependents[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if ordered != len(tasks) {
		return nil, ErrCycleDetected
	}

	return &Plan{tasks: append([]Task(nil), tasks...)}, nil
}

// Tasks returns the plan's tasks in construction order.
func (p *Plan) Tasks() []Task {
	return append([]Task(nil), p.tasks...)
}

// Len reports the number of tasks in the plan.
func (p *Plan) Len() int {
	return len(p.tasks)
}
