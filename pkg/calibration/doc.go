// Package calibration defines the types shared between the daemon, the CLI
// client and the bridge-service adapter. It contains:
//
//   - Measurement: the {value: N} envelope used on the wire
//   - Record: the per-display calibration constants
//   - Device / DevicesResponse: the bridge service device-list contract
//
// These types are kept in one place so the JSON contracts stay consistent
// across daemon, client and adapter code.
package calibration
