package engine

import (
	"errors"
	"sync"

	"github.com/naz3eh/zkp-service/internal/model"
)

// ErrQueueClosed is returned by Submit once the engine is shutting down and
// the work queue no longer accepts jobs.
var ErrQueueClosed = errors.New("work queue is closed")

// queue is an unbounded FIFO channel between submitters and workers. Many
// producers and many consumers may use it concurrently; each job is handed
// to exactly one consumer. There is deliberately no depth limit: sustained
// submission faster than drain grows memory without bound.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []model.ProofJob
	closed bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends a job. It fails with ErrQueueClosed after close.
func (q *queue) push(j model.ProofJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, j)
	queueDepth.Set(float64(len(q.items)))
	q.cond.Signal()
	return nil
}

// pop blocks until a job is available and removes it. It returns ok=false
// once the queue is closed and fully drained.
func (q *queue) pop() (model.ProofJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return model.ProofJob{}, false
	}

	j := q.items[0]
	q.items = q.items[1:]
	queueDepth.Set(float64(len(q.items)))
	return j, true
}

// close stops accepting jobs and wakes all blocked consumers. Jobs already
// queued are still delivered.
func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

// depth returns the number of queued jobs not yet handed to a worker.
func (q *queue) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
