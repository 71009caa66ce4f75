package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/naz3eh/zkp-service/internal/model"
	"github.com/naz3eh/zkp-service/internal/prover"
	"github.com/naz3eh/zkp-service/internal/status"
)

// ErrMissingCircuit is returned by Submit when no circuit path is given.
var ErrMissingCircuit = errors.New("circuit path is required")

// Config controls the worker pool.
type Config struct {
	// Workers is the pool size. Zero or negative means runtime.NumCPU().
	Workers int

	// MockMode forces the mock backend for every job regardless of the
	// per-request flag. Read once at startup from the environment.
	MockMode bool

	// ProveTimeout bounds a single backend invocation. Zero means no
	// timeout: a hung external prover blocks its worker indefinitely.
	ProveTimeout time.Duration
}

// Engine accepts proof jobs, queues them, and executes them on a fixed pool
// of background workers. Submission never blocks on execution; callers poll
// the status store for the outcome.
type Engine struct {
	store    status.Store
	mock     prover.Prover
	external prover.Prover
	logger   *slog.Logger
	queue    *queue
	wg       sync.WaitGroup

	workers      int
	mockMode     bool
	proveTimeout time.Duration
}

// NewEngine creates an engine. Start must be called before any submitted job
// will execute.
func NewEngine(s status.Store, mock, external prover.Prover, cfg Config, logger *slog.Logger) *Engine {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{
		store:        s,
		mock:         mock,
		external:     external,
		logger:       logger,
		queue:        newQueue(),
		workers:      workers,
		mockMode:     cfg.MockMode,
		proveTimeout: cfg.ProveTimeout,
	}
}

// Start launches the worker pool.
func (e *Engine) Start() {
	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker(i)
	}
	e.logger.Info("worker pool started", "workers", e.workers, "mock_mode", e.mockMode)
}

// Shutdown closes the work queue and waits for the workers to drain it and
// exit. Submit fails with ErrQueueClosed from the moment the queue closes.
func (e *Engine) Shutdown() {
	e.queue.close()
	e.wg.Wait()
	e.logger.Info("worker pool stopped")
}

// Workers returns the configured pool size.
func (e *Engine) Workers() int {
	return e.workers
}

// QueueDepth returns the number of jobs waiting for a worker.
func (e *Engine) QueueDepth() int {
	return e.queue.depth()
}

// Submit registers a new proof job and enqueues it for execution, returning
// the job id as soon as the enqueue succeeds. The job is recorded as pending
// before it becomes visible to any worker. The effective backend is the mock
// one when either the process-wide mock switch or the per-request flag is
// set.
func (e *Engine) Submit(circuitPath string, input json.RawMessage, mock bool) (string, error) {
	if circuitPath == "" {
		return "", ErrMissingCircuit
	}

	job := model.ProofJob{
		ID:          model.NewJobID(),
		CircuitPath: circuitPath,
		Input:       input,
		Mock:        mock || e.mockMode,
	}

	if err := e.store.Create(job.ID); err != nil {
		return "", fmt.Errorf("register job: %w", err)
	}
	if err := e.queue.push(job); err != nil {
		// The queue closed between registration and enqueue. Roll the
		// pending record back so the rejection stays synchronous instead
		// of leaving a job that will never run.
		e.store.Delete(job.ID)
		return "", err
	}

	e.logger.Debug("job submitted", "task_id", job.ID, "circuit_path", job.CircuitPath, "mock", job.Mock)
	return job.ID, nil
}

// worker pulls one job at a time from the queue until the queue is closed
// and drained. A panic while processing marks the job failed and retires
// this worker, reducing the pool's effective concurrency.
func (e *Engine) worker(id int) {
	defer e.wg.Done()
	for {
		job, ok := e.queue.pop()
		if !ok {
			return
		}
		if !e.safeProcess(job) {
			e.logger.Error("worker retired after crash", "worker", id)
			return
		}
	}
}

func (e *Engine) safeProcess(job model.ProofJob) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("worker crashed while processing job", "task_id", job.ID, "panic", r)
			if err := e.store.Set(job.ID, model.ProofStatus{
				State: model.StatusFailed,
				Error: fmt.Sprintf("internal error: %v", r),
			}); err != nil {
				e.logger.Error("failed to record crashed job", "task_id", job.ID, "error", err)
			}
			ok = false
		}
	}()

	e.process(job)
	return true
}

// process runs the job lifecycle: in_progress → completed/failed. Backend
// failures are captured as the job's terminal state, never propagated.
func (e *Engine) process(job model.ProofJob) {
	if err := e.store.Set(job.ID, model.ProofStatus{State: model.StatusInProgress}); err != nil {
		e.logger.Error("failed to transition to in_progress", "task_id", job.ID, "error", err)
		return
	}

	workersBusy.Inc()
	defer workersBusy.Dec()

	backend, p := backendExternal, e.external
	if job.Mock {
		backend, p = backendMock, e.mock
	}

	ctx := context.Background()
	if e.proveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.proveTimeout)
		defer cancel()
	}

	start := time.Now()
	proof, err := p.Prove(ctx, prover.ProofSpec{
		JobID:       job.ID,
		CircuitPath: job.CircuitPath,
		Input:       job.Input,
	})
	proofDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())

	if err != nil {
		jobsTotal.WithLabelValues(backend, model.StatusFailed).Inc()
		e.logger.Info("proof generation failed",
			"task_id", job.ID,
			"backend", backend,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		if serr := e.store.Set(job.ID, model.ProofStatus{State: model.StatusFailed, Error: err.Error()}); serr != nil {
			e.logger.Error("failed to record failed job", "task_id", job.ID, "error", serr)
		}
		return
	}

	jobsTotal.WithLabelValues(backend, model.StatusCompleted).Inc()
	e.logger.Info("proof generated",
		"task_id", job.ID,
		"backend", backend,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if serr := e.store.Set(job.ID, model.ProofStatus{State: model.StatusCompleted, Proof: proof}); serr != nil {
		e.logger.Error("failed to record completed job", "task_id", job.ID, "error", serr)
	}
}
