package hydrate

import (
	"sync"

	"github.com/rehydrate-io/rehydrate/lib/storage"
	"github.com/rs/zerolog"
)

// persistJob is one unit of work for the writer goroutine: either a record
// write or a clear. done, when non-nil, receives the operation's result.
type persistJob struct {
	record map[string]any
	clear  bool
	done   chan error
}

// persistQueue is an unbounded single-consumer queue of persistence jobs.
// Unboundedness matters: the producer is the store's mutating code path,
// which must never block on a slow storage backend. A single consumer
// guarantees that jobs for one token complete in the order they were issued.
type persistQueue struct {
	storage storage.Storage
	token   string
	logger  zerolog.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	jobs   []persistJob
	closed bool

	drained sync.WaitGroup
}

// newPersistQueue creates the queue and starts its writer goroutine.
func newPersistQueue(s storage.Storage, token string, logger zerolog.Logger) *persistQueue {
	q := &persistQueue{
		storage: s,
		token:   token,
		logger:  logger,
	}
	q.cond = sync.NewCond(&q.mu)
	q.drained.Add(1)
	go q.run()
	return q
}

// push appends a job, returning false if the queue is already closed.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (q *persistQueue) push(j persistJob) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.jobs = append(q.jobs, j)
	q.cond.Signal()
	q.mu.Unlock()
	return true
}

// run is the writer goroutine. It drains remaining jobs after close and
// only then exits.
func (q *persistQueue) run() {
	defer q.drained.Done()
	for {
		q.mu.Lock()
		for len(q.jobs) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.jobs) == 0 {
			q.mu.Unlock()
			return
		}
		j := q.jobs[0]
		q.jobs = q.jobs[1:]
		q.mu.Unlock()

		q.perform(j)
	}
}

// perform executes one job. Write failures are counted and logged, never
// retried.
func (q *persistQueue) perform(j persistJob) {
	if j.clear {
		err := q.storage.Delete(q.token)
		if j.done != nil {
			j.done <- err
		}
		return
	}

	writesTotal.Inc()
	if err := q.storage.Write(q.token, j.record); err != nil {
		writeFailuresTotal.Inc()
		q.logger.Warn().Err(err).Str("token", q.token).Msg("state not persisted, storage write failed")
	}
	if j.done != nil {
		j.done <- nil
	}
}

// close stops accepting jobs and blocks until the queue is drained and the
// writer goroutine has exited. Safe to call more than once.
func (q *persistQueue) close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.drained.Wait()
		return
	}
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
	q.drained.Wait()
}
