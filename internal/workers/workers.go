package workers

// Workers aggregates the process's background workers so main can start
// them together.
type Workers struct {
	workers []Worker
}

// NewWorkers builds the aggregate from the given workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every registered worker.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
