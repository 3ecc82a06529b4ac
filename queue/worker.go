package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tenantkit/tenantkit/tenant"
)

// Worker claims tasks from storage and runs the matching handler. Each task
// executes in its own tenant scope: the snapshot captured at enqueue time is
// applied before the handler runs and the scope is dropped with the task, so
// tenant identity never leaks between jobs.
type Worker struct {
	storage      Storage
	handlers     map[string]Handler
	key          tenant.Key
	pullInterval time.Duration
	logger       *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithPullInterval sets how often the worker polls for pending tasks.
func WithPullInterval(d time.Duration) WorkerOption {
	return func(w *Worker) {
		if d > 0 {
			w.pullInterval = d
		}
	}
}

// WithWorkerLogger sets the worker's logger.
func WithWorkerLogger(log *slog.Logger) WorkerOption {
	return func(w *Worker) {
		if log != nil {
			w.logger = log
		}
	}
}

// WithWorkerTenantKey sets the scope key task snapshots are applied under.
// Must match the enqueuer's key.
func WithWorkerTenantKey(key tenant.Key) WorkerOption {
	return func(w *Worker) {
		if key != "" {
			w.key = key
		}
	}
}

// NewWorker creates a task worker.
func NewWorker(storage Storage, opts ...WorkerOption) (*Worker, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}

	w := &Worker{
		storage:      storage,
		handlers:     make(map[string]Handler),
		key:          tenant.DefaultKey,
		pullInterval: time.Second,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// RegisterHandlers registers task handlers by name.
func (w *Worker) RegisterHandlers(handlers ...Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, h := range handlers {
		if h != nil {
			w.handlers[h.Name()] = h
		}
	}
}

// Start begins processing tasks in the background until the context is
// cancelled or Stop is called.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return errors.New("worker already started")
	}
	if len(w.handlers) == 0 {
		return ErrNoHandlers
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.run(ctx)
	return nil
}

// Stop cancels processing and waits for the in-flight task to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pullInterval)
	defer ticker.Stop()

	for {
		w.drain(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// drain processes pending tasks until storage is empty or the context ends.
func (w *Worker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		task, err := w.storage.ClaimTask(ctx)
		if err != nil {
			if !errors.Is(err, ErrNoTask) {
				w.logger.ErrorContext(ctx, "failed to claim task", slog.Any("error", err))
			}
			return
		}
		w.process(ctx, task)
	}
}

func (w *Worker) process(ctx context.Context, task *Task) {
	w.mu.Lock()
	handler, ok := w.handlers[task.Name]
	w.mu.Unlock()

	if !ok {
		msg := fmt.Sprintf("%v: %s", ErrUnknownTask, task.Name)
		_ = w.storage.FailTask(ctx, task.ID, msg)
		w.logger.WarnContext(ctx, "unknown task",
			slog.String("task", task.Name), slog.String("task_id", task.ID.String()))
		return
	}

	// Fresh scope per task: the job is its own unit of work.
	scope := tenant.NewScope()
	taskCtx := tenant.NewContext(ctx, scope)
	if task.Tenant != nil {
		if err := scope.Apply(*task.Tenant); err != nil {
			_ = w.storage.FailTask(ctx, task.ID, err.Error())
			return
		}
	}
	defer scope.Reset()

	if err := w.handle(taskCtx, handler, task); err != nil {
		_ = w.storage.FailTask(ctx, task.ID, err.Error())
		w.logger.ErrorContext(taskCtx, "task failed",
			slog.String("task", task.Name),
			slog.String("task_id", task.ID.String()),
			slog.Any("error", err))
		return
	}

	_ = w.storage.CompleteTask(ctx, task.ID)
}

// handle invokes the handler with panic containment so one bad task cannot
// take down the worker loop.
func (w *Worker) handle(ctx context.Context, handler Handler, task *Task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("task %q panicked: %v", task.Name, rec)
		}
	}()
	return handler.Handle(ctx, task.Payload)
}
