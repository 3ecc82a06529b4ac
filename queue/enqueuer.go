package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/tenant"
)

// DefaultMaxRetries is applied to tasks enqueued without an override.
const DefaultMaxRetries int8 = 3

// Enqueuer stores tasks for later processing. When the enqueuing context
// carries a tenant scope, the entry under the configured key is snapshotted
// into the task envelope so the worker can restore it.
type Enqueuer struct {
	storage    Storage
	key        tenant.Key
	maxRetries int8
}

// EnqueuerOption configures an Enqueuer.
type EnqueuerOption func(*Enqueuer)

// WithTenantKey sets the scope key snapshotted into task envelopes.
func WithTenantKey(key tenant.Key) EnqueuerOption {
	return func(e *Enqueuer) {
		if key != "" {
			e.key = key
		}
	}
}

// WithMaxRetries sets the default retry budget for enqueued tasks.
func WithMaxRetries(n int8) EnqueuerOption {
	return func(e *Enqueuer) {
		if n >= 0 {
			e.maxRetries = n
		}
	}
}

// NewEnqueuer creates a new Enqueuer.
func NewEnqueuer(storage Storage, opts ...EnqueuerOption) (*Enqueuer, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}

	e := &Enqueuer{
		storage:    storage,
		key:        tenant.DefaultKey,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Enqueue stores a task with the given name and JSON-serializable payload.
// It returns the created task's ID.
func (e *Enqueuer) Enqueue(ctx context.Context, name string, payload any) (uuid.UUID, error) {
	if payload == nil {
		return uuid.Nil, ErrPayloadNil
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal payload of type %T: %w", payload, err)
	}

	task := &Task{
		ID:         uuid.New(),
		Name:       name,
		Payload:    payloadBytes,
		Status:     TaskStatusPending,
		MaxRetries: e.maxRetries,
		CreatedAt:  time.Now(),
	}

	if snap, ok := tenant.SnapshotFromContext(ctx, e.key); ok {
		task.Tenant = &snap
	}

	if err := e.storage.CreateTask(ctx, task); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create task %q: %w", name, err)
	}
	return task.ID, nil
}
