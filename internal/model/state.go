package model

// TaskState represents the lifecycle state of a task
type TaskState string

const (
	// StatePending means the task is registered but its worker has not started yet
	StatePending TaskState = "Pending"

	// StateRunning means the worker is executing the resolver call
	StateRunning TaskState = "Running"

	// StateCompleted means the task finished successfully
	StateCompleted TaskState = "Completed"

	// StateFailed means the resolver reported an error
	StateFailed TaskState = "Failed"

	// StateCancelled means the task was cancelled by the user
	StateCancelled TaskState = "Cancelled"
)

// String returns the string representation of TaskState
func (ts TaskState) String() string {
	return string(ts)
}

// IsActive returns true while the task still occupies its slot
func (ts TaskState) IsActive() bool {
	return ts == StatePending || ts == StateRunning
}

// IsTerminal returns true once the task reached a final state. Terminal states
// are never left again; the terminal event is the last event for a task.
func (ts TaskState) IsTerminal() bool {
	return ts == StateCompleted || ts == StateFailed || ts == StateCancelled
}
