package config

import (
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quiltkit/quiltd/pkg/calibration"
	"github.com/quiltkit/quiltd/pkg/events"
)

// parameters are the user-adjustable rendering knobs. Setters accept any
// value without range checks; nonsense inputs (zero screen height, negative
// view counts) propagate into the derived getters as NaN/Inf, which is the
// documented contract with renderers.
type parameters struct {
	TileHeight int
	NumViews   int
	TrackballX float64
	TrackballY float64
	TargetX    float64
	TargetY    float64
	TargetZ    float64
	TargetDiam float64
	Fovy       float64
	Depthiness float64
	InlineView int
}

// defaultParameters must match the reference geometry model exactly.
// TargetY is the eye-height constant.
var defaultParameters = parameters{
	TileHeight: 320,
	NumViews:   2,
	TrackballX: 0,
	TrackballY: 0,
	TargetX:    0,
	TargetY:    1.6,
	TargetZ:    -0.5,
	TargetDiam: 2.0,
	Fovy:       13.0 / 180.0 * math.Pi,
	Depthiness: 1.25,
	InlineView: 1,
}

// Store owns the display calibration record and the rendering parameters,
// and publishes one config.changed event per mutation. Derived geometry is
// recomputed from current state on every read and never cached.
//
// There is deliberately no package-level instance: the daemon constructs one
// Store and injects it into handlers, the bridge adapter and the scheduler.
type Store struct {
	mu  sync.RWMutex
	p   parameters
	cal calibration.Record
	hub *events.Hub
}

// New returns a store holding the placeholder calibration and default
// parameters. hub may be nil, in which case mutations are silent.
func New(hub *events.Hub) *Store {
	return &Store{
		p:   defaultParameters,
		cal: calibration.Placeholder(),
		hub: hub,
	}
}

func (s *Store) publish(field string) {
	s.hub.Publish(events.ConfigChanged, events.ConfigChangedEvent{
		Field: field,
		Ts:    time.Now().Unix(),
	})
}

// Calibration returns a copy of the current calibration record. The record
// is a value type; callers can never alias the store's internals.
func (s *Store) Calibration() calibration.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cal
}

// SetCalibration replaces the calibration record wholesale.
func (s *Store) SetCalibration(rec calibration.Record) {
	s.mu.Lock()
	s.cal = rec
	s.mu.Unlock()
	s.publish("calibration")
}

func (s *Store) TileHeight() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.TileHeight
}

func (s *Store) SetTileHeight(v int) {
	s.mu.Lock()
	s.p.TileHeight = v
	s.mu.Unlock()
	s.publish("tileHeight")
}

func (s *Store) NumViews() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.NumViews
}

func (s *Store) SetNumViews(v int) {
	s.mu.Lock()
	s.p.NumViews = v
	s.mu.Unlock()
	s.publish("numViews")
}

func (s *Store) TrackballX() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.TrackballX
}

func (s *Store) SetTrackballX(v float64) {
	s.mu.Lock()
	s.p.TrackballX = v
	s.mu.Unlock()
	s.publish("trackballX")
}

func (s *Store) TrackballY() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.TrackballY
}

func (s *Store) SetTrackballY(v float64) {
	s.mu.Lock()
	s.p.TrackballY = v
	s.mu.Unlock()
	s.publish("trackballY")
}

func (s *Store) TargetX() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.TargetX
}

func (s *Store) SetTargetX(v float64) {
	s.mu.Lock()
	s.p.TargetX = v
	s.mu.Unlock()
	s.publish("targetX")
}

func (s *Store) TargetY() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.TargetY
}

func (s *Store) SetTargetY(v float64) {
	s.mu.Lock()
	s.p.TargetY = v
	s.mu.Unlock()
	s.publish("targetY")
}

func (s *Store) TargetZ() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.TargetZ
}

func (s *Store) SetTargetZ(v float64) {
	s.mu.Lock()
	s.p.TargetZ = v
	s.mu.Unlock()
	s.publish("targetZ")
}

func (s *Store) TargetDiam() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.TargetDiam
}

func (s *Store) SetTargetDiam(v float64) {
	s.mu.Lock()
	s.p.TargetDiam = v
	s.mu.Unlock()
	s.publish("targetDiam")
}

func (s *Store) Fovy() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Fovy
}

func (s *Store) SetFovy(v float64) {
	s.mu.Lock()
	s.p.Fovy = v
	s.mu.Unlock()
	s.publish("fovy")
}

func (s *Store) Depthiness() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Depthiness
}

func (s *Store) SetDepthiness(v float64) {
	s.mu.Lock()
	s.p.Depthiness = v
	s.mu.Unlock()
	s.publish("depthiness")
}

func (s *Store) InlineView() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.InlineView
}

func (s *Store) SetInlineView(v int) {
	s.mu.Lock()
	s.p.InlineView = v
	s.mu.Unlock()
	s.publish("inlineView")
}

// LogrusFields dumps the mutable state for startup logging.
func (s *Store) LogrusFields() logrus.Fields {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return logrus.Fields{
		"configVersion": s.cal.ConfigVersion,
		"tileHeight":    s.p.TileHeight,
		"numViews":      s.p.NumViews,
		"targetDiam":    s.p.TargetDiam,
		"fovy":          s.p.Fovy,
		"depthiness":    s.p.Depthiness,
		"inlineView":    s.p.InlineView,
	}
}
