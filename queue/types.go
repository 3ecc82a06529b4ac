package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/tenant"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task is the envelope stored by the queue. Tenant carries the snapshot of
// the enqueuing request's tenant entry, so the identity rides along with the
// work and is restored in the worker before the handler runs. The whole
// envelope is plain structured data and serializes to JSON.
type Task struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	Payload    json.RawMessage  `json:"payload,omitempty"`
	Tenant     *tenant.Snapshot `json:"tenant,omitempty"`
	Status     TaskStatus       `json:"status"`
	RetryCount int8             `json:"retry_count"`
	MaxRetries int8             `json:"max_retries"`
	Error      *string          `json:"error,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
