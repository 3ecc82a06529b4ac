package queue

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Storage persists tasks between enqueueing and processing.
type Storage interface {
	// CreateTask stores a new pending task.
	CreateTask(ctx context.Context, task *Task) error

	// ClaimTask atomically claims the oldest pending task.
	// Returns ErrNoTask when nothing is pending.
	ClaimTask(ctx context.Context) (*Task, error)

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, taskID uuid.UUID) error

	// FailTask records a failure; the task goes back to pending until its
	// retries are exhausted, then stays failed.
	FailTask(ctx context.Context, taskID uuid.UUID, errMsg string) error
}

// MemoryStorage implements Storage in memory, for testing and local development.
type MemoryStorage struct {
	mu      sync.Mutex
	tasks   map[uuid.UUID]*Task
	pending []uuid.UUID // FIFO order
}

// NewMemoryStorage creates an in-memory storage implementation.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{tasks: make(map[uuid.UUID]*Task)}
}

func (ms *MemoryStorage) CreateTask(ctx context.Context, task *Task) error {
	if task == nil {
		return ErrPayloadNil
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	// Clone to prevent external modifications.
	taskCopy := *task
	ms.tasks[task.ID] = &taskCopy
	ms.pending = append(ms.pending, task.ID)
	return nil
}

func (ms *MemoryStorage) ClaimTask(ctx context.Context) (*Task, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if len(ms.pending) == 0 {
		return nil, ErrNoTask
	}

	id := ms.pending[0]
	ms.pending = ms.pending[1:]

	task := ms.tasks[id]
	task.Status = TaskStatusProcessing

	taskCopy := *task
	return &taskCopy, nil
}

func (ms *MemoryStorage) CompleteTask(ctx context.Context, taskID uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if task, ok := ms.tasks[taskID]; ok {
		task.Status = TaskStatusCompleted
	}
	return nil
}

func (ms *MemoryStorage) FailTask(ctx context.Context, taskID uuid.UUID, errMsg string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, ok := ms.tasks[taskID]
	if !ok {
		return nil
	}

	task.RetryCount++
	task.Error = &errMsg
	if task.RetryCount > task.MaxRetries {
		task.Status = TaskStatusFailed
		return nil
	}

	task.Status = TaskStatusPending
	if !slices.Contains(ms.pending, taskID) {
		ms.pending = append(ms.pending, taskID)
	}
	return nil
}

// TaskByID returns a copy of the stored task, for assertions in tests.
func (ms *MemoryStorage) TaskByID(taskID uuid.UUID) (*Task, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, ok := ms.tasks[taskID]
	if !ok {
		return nil, false
	}
	taskCopy := *task
	return &taskCopy, true
}
