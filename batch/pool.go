package batch

import (
	"sync"

	"github.com/nkruglikov/bigartm/internal/logging"
)

// Worker is the function a Pool runs for each dequeued ProcessorInput. A
// non-nil error is logged and swallowed: a failed batch still reports
// its task complete so the operation can drain (see package xerrors doc
// comment on worker-level failures).
type Worker func(ProcessorInput) error

// Pool is a fixed number of long-lived goroutines draining a Queue. It
// generalizes the teacher's parallel.For — a one-shot bounded range
// fan-out — into an open pool that keeps consuming work across many
// ProcessBatches calls for the life of an orchestrator Instance.
type Pool struct {
	queue *Queue
	work  Worker
	wg    sync.WaitGroup
}

// NewPool starts n workers draining queue, each invoking work per item
// and then reporting completion to the item's Manager.
func NewPool(n int, queue *Queue, work Worker) *Pool {
	p := &Pool{queue: queue, work: work}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		item, ok := p.queue.Pop()
		if !ok {
			return
		}
		if err := p.work(item); err != nil {
			logging.Warn("worker failed on batch", logging.Fields{
				"task_id": item.TaskID.String(),
				"source":  item.SourceMatrixName,
				"error":   err.Error(),
			})
		}
		if item.Manager != nil {
			item.Manager.Remove(item.TaskID)
		}
	}
}

// Stop closes the underlying queue and waits for every worker to drain
// and exit.
func (p *Pool) Stop() {
	p.queue.Close()
	p.wg.Wait()
}
