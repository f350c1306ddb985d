package client

import internalclient "github.com/quiltkit/quiltd/internal/client"

var (
	// ErrDaemonNotRunning is returned when the daemon is not running
	ErrDaemonNotRunning = internalclient.ErrDaemonNotRunning

	// ErrPermissionDenied is returned when the user does not have permission to perform the requested action
	ErrPermissionDenied = internalclient.ErrPermissionDenied

	// ErrNotFound is returned when 404 is returned from the daemon
	ErrNotFound = internalclient.ErrNotFound
)
