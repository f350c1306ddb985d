// Package config holds the display configuration store: the calibration
// record reported by the bridge service (or a placeholder until one
// arrives), the user-adjustable rendering parameters, and the quilt
// geometry derived from both.
//
// Every setter publishes exactly one config.changed event through the
// injected events.Hub. Derived values are recomputed on every read; there
// is no cache to invalidate. Setters perform no range validation: the store
// is as permissive as the renderers it feeds.
package config
