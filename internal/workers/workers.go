package workers

// Workers aggregates the application's background workers so startup can
// launch them as one unit.
type Workers struct {
	workers []Worker
}

// NewWorkers bundles the given workers.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Run starts every worker in its own goroutine and returns immediately.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		go worker.Run()
	}
}
