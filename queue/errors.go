package queue

import "errors"

var (
	// ErrStorageNil is returned when a nil storage is provided.
	ErrStorageNil = errors.New("storage cannot be nil")

	// ErrPayloadNil is returned when enqueueing a nil payload.
	ErrPayloadNil = errors.New("payload cannot be nil")

	// ErrNoHandlers is returned when starting a worker with no registered handlers.
	ErrNoHandlers = errors.New("no task handlers registered")

	// ErrUnknownTask is returned when a claimed task has no registered handler.
	ErrUnknownTask = errors.New("no handler registered for task")

	// ErrNoTask is returned by storage when no pending task is available.
	ErrNoTask = errors.New("no pending task available")
)
