package bridge

import "errors"

var (
	// ErrBridgeNotRunning is returned when the bridge service socket does not exist
	ErrBridgeNotRunning = errors.New("display bridge service not running")

	// ErrPermissionDenied is returned when the bridge socket is not accessible
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNoDeviceFound is returned when the bridge reports an empty device list
	ErrNoDeviceFound = errors.New("no display device found")
)
