package research

// RunMonitor provides hooks to observe a research run.
// Implement this interface to track state changes and task transitions.
// All methods are called from the run's coordinating goroutine; a monitor
// shared by concurrent runs must be safe for concurrent use. RunFinished is
// not called when the caller abandons the run before it completes.
type RunMonitor interface {
	RunStarted(query string)
	StateChanged(from, to RunState)
	TaskStarted(id string)
	TaskFinished(id string, status TaskStatus, err error)
	RunFinished(report *Report)
}

// noopMonitor is a no-op implementation of RunMonitor
type noopMonitor struct{}

var _ RunMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) RunStarted(_ string)                          {}
func (n *noopMonitor) StateChanged(_, _ RunState)                   {}
func (n *noopMonitor) TaskStarted(_ string)                         {}
func (n *noopMonitor) TaskFinished(_ string, _ TaskStatus, _ error) {}
func (n *noopMonitor) RunFinished(_ *Report)                        {}
