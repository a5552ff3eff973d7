package coordinator

import "errors"

// Errors returned synchronously from coordinator operations. Resolver errors
// are not returned here; they surface as the task's terminal Failed state
// with the library's message carried verbatim.
var (
	// ErrInvalidInput means an empty URL or a missing output directory
	ErrInvalidInput = errors.New("invalid input")

	// ErrSlotBusy means a task of the same kind is still active
	ErrSlotBusy = errors.New("slot busy")

	// ErrNotFound means no task exists with the given id
	ErrNotFound = errors.New("task not found")

	// ErrNotActive means the task already reached a terminal state
	ErrNotActive = errors.New("task is not active")
)
