package execution

// Status is the lifecycle state of a remote job or endpoint deployment.
//
// NOTE: These values are persisted in predictor snapshots and are part of the
// stable on-disk contract.
type Status string

const (
	// StatusNotCreated means no remote job has been submitted yet.
	StatusNotCreated Status = "NotCreated"

	// StatusInProgress means the remote job has been submitted and is running.
	StatusInProgress Status = "InProgress"

	// StatusCompleted means the remote job finished successfully.
	StatusCompleted Status = "Completed"

	// StatusFailed means the remote job finished unsuccessfully. Failures are
	// reported through status, never as an error from a Describe call.
	StatusFailed Status = "Failed"

	// StatusStopping means a stop was requested and is in flight.
	StatusStopping Status = "Stopping"

	// StatusStopped means the remote job was stopped before finishing.
	StatusStopped Status = "Stopped"
)

// Terminal reports whether no further transition can occur from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusStopped:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}
