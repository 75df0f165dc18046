package core

// TaskContext identifies the runtime slot a client runs in, typically one
// task of a parallelized job. Clients owned by the same task share identity
// defaults, so restarting the task reproduces the same client name and
// producer group.
//
// A nil TaskContext is allowed; identity defaults then fall back to random
// UUIDs.
type TaskContext interface {
	// TaskID is the numeric index of this task within its job.
	TaskID() int
}

// StaticTask is a fixed task ID, for callers outside any scheduler.
type StaticTask int

func (t StaticTask) TaskID() int { return int(t) }
