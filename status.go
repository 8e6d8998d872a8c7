package pgembed

import "github.com/faokunega/pg-embed/internal/status"

// Status is the lifecycle manager's state machine value, re-exported from
// internal/status so callers observing Server.Status() don't need to
// import an internal package.
type Status = status.Status

const (
	Uninitialized = status.Uninitialized
	Initializing  = status.Initializing
	Initialized   = status.Initialized
	Starting      = status.Starting
	Started       = status.Started
	Stopping      = status.Stopping
	Stopped       = status.Stopped
	Failure       = status.Failure
)
